package main

import (
	"time"

	"keydeck/beep"
	"keydeck/dispatch"
	"keydeck/hotkey"
	"keydeck/log"
	"keydeck/togglekey"
)

// runToggleButton drives the dedicated two-state Toggle Key button: short
// presses execute the bound action and flip on success, long holds flip at
// the threshold. The core decides; this loop applies its effects.
func runToggleButton(hk hotkey.Hotkey, core *togglekey.Core, disp *dispatch.Dispatcher, action string, stop <-chan struct{}) {
	defer hk.Unregister()

	var pressID uint64
	var holdTimer *time.Timer

	for {
		select {
		case <-stop:
			if holdTimer != nil {
				holdTimer.Stop()
			}
			return

		case <-hk.Keydown():
			pressID = core.OnKeyDown(time.Now())
			id := pressID
			if holdTimer != nil {
				holdTimer.Stop()
			}
			holdTimer = time.AfterFunc(core.Threshold(), func() {
				applyToggleEffects(core.OnHoldThresholdElapsed(id).Effects)
			})

		case <-hk.Keyup():
			if holdTimer != nil {
				holdTimer.Stop()
				holdTimer = nil
			}
			d := core.OnKeyUp(time.Now(), pressID)
			applyToggleEffects(d.Effects)
			if d.RunExecute {
				go func(execID uint64) {
					ok := disp.HandleKeyEvent(action, true)
					if ok {
						ok = disp.HandleKeyEvent(action, false)
					}
					applyToggleEffects(core.OnExecutionCompleted(execID, ok))
					if !ok {
						beep.PlayError()
					}
				}(d.ExecuteID)
			}
		}
	}
}

func applyToggleEffects(effects []togglekey.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case togglekey.EffectSetVisualState:
			log.ToggleState(e.State)
		case togglekey.EffectPlayClickSound:
			beep.PlayClick()
		}
	}
}
