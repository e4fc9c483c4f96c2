package activation

// SmartToggleHandler models a press that toggles once on a short press but
// twice on a long hold: once when the hold threshold elapses, once more on the
// eventual release. The pending/fired distinction lives entirely in the
// executor's delayed-press table.
type SmartToggleHandler struct{}

func (h SmartToggleHandler) Execute(ctx Context, ex Executor) bool {
	if ctx.KeyDown {
		delay := seconds(ctx.Meta.ReleaseTriggerDelay)
		if delay <= 0 {
			delay = ctx.delayedDelay()
		}
		ex.ScheduleDelayedPress(ctx.Input, ctx.ActionKey, delay)
		return true
	}

	// Short press: the scheduled toggle is still pending, cancel it and fire
	// the single toggle now. Long hold: the first toggle already fired, this
	// press fires the second. Either way exactly one press goes out here.
	ex.CancelDelayedPress(ctx.ActionKey)
	ex.ExecutePressNoRepeat(ctx.Input)
	return true
}
