package activation

// PressHandler covers the immediate/press family: tap, press, delayed_press,
// hold, hold_no_retrigger, all, delayed_hold and hold_toggle variants. It is
// also the registry fallback for unrecognized modes.
type PressHandler struct{}

func (h PressHandler) Execute(ctx Context, ex Executor) bool {
	if ctx.KeyDown {
		return h.keyDown(ctx, ex)
	}
	return h.keyUp(ctx, ex)
}

func (h PressHandler) keyDown(ctx Context, ex Executor) bool {
	delayed := ctx.Mode.Delayed()

	if ctx.Meta.OnPress && !delayed {
		ex.ExecutePressNoRepeat(ctx.Input)
	}

	if delayed {
		ex.ScheduleDelayedHold(ctx.Input, ctx.ActionKey, ctx.delayedDelay())
	} else if ctx.Meta.Retriggerable || ctx.Mode.PlainHold() {
		// Immediate Down would defeat a scheduled one, hence the else.
		ex.ExecuteDown(ctx.Input, ctx.ActionKey)
	}

	return true
}

func (h PressHandler) keyUp(ctx Context, ex Executor) bool {
	delayed := ctx.Mode.Delayed()

	if delayed {
		// A short tap must not fire at all; cancel is a no-op if the timer
		// already went off.
		ex.CancelDelayedHold(ctx.ActionKey)
	}

	firedOnPress := ctx.Meta.OnPress && !delayed
	if ctx.Meta.MultiTapBlock != 0 && firedOnPress {
		// The tap already fired on press; suppress the release trigger.
	} else if ctx.Meta.OnRelease {
		switch {
		case ctx.Meta.ReleaseTriggerDelay > 0:
			ex.ScheduleDelayedPress(ctx.Input, ctx.ActionKey, seconds(ctx.Meta.ReleaseTriggerDelay))
		case ctx.Meta.ReleaseTriggerThreshold > 0:
			ex.ScheduleDelayedPress(ctx.Input, ctx.ActionKey, seconds(ctx.Meta.ReleaseTriggerThreshold))
		default:
			ex.ExecutePressNoRepeat(ctx.Input)
		}
	}

	// A held binding must always be physically released downstream, even when
	// the release trigger was suppressed. ExecuteUp is idempotent, so the
	// delayed case is safe whether or not its timer fired.
	if ctx.Meta.Retriggerable || ctx.Mode.PlainHold() || delayed {
		ex.ExecuteUp(ctx.Input, ctx.ActionKey)
	}

	return true
}
