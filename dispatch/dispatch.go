// Package dispatch is the host-runtime boundary: it resolves a button event
// against the action catalog and hands it to the activation-mode engine on a
// background task.
package dispatch

import (
	"sync"
	"time"

	"keydeck/activation"
	"keydeck/binding"
	"keydeck/catalog"
	"keydeck/log"
)

// Dispatcher turns (action name, key-down) events into engine executions.
type Dispatcher struct {
	cat             catalog.Catalog
	reg             *activation.Registry
	ex              activation.Executor
	delayedFallback time.Duration

	wg sync.WaitGroup
}

func New(cat catalog.Catalog, reg *activation.Registry, ex activation.Executor, delayedFallback time.Duration) *Dispatcher {
	return &Dispatcher{
		cat:             cat,
		reg:             reg,
		ex:              ex,
		delayedFallback: delayedFallback,
	}
}

// HandleKeyEvent accepts one physical key-down/up for the named action. It
// returns false without mutating any state when the event cannot be resolved
// (catalog not loaded, unknown action, nothing bound); the execution itself
// runs on a fire-and-forget goroutine whose outcome is logged, never rethrown.
func (d *Dispatcher) HandleKeyEvent(actionName string, keyDown bool) bool {
	if !d.cat.IsLoaded() {
		log.Warnf("dropping %s: catalog not loaded", actionName)
		return false
	}

	act, ok := d.cat.Lookup(actionName)
	if !ok {
		log.Warnf("dropping %s: action not in catalog", actionName)
		return false
	}

	in, err := binding.Parse(act.Keyboard, act.Mouse)
	if err != nil {
		log.Warnf("dropping %s: %v", act.Name, err)
		return false
	}

	meta, ok := d.cat.ActivationModes()[string(act.Mode)]
	if !ok {
		meta = activation.DefaultMetadata(act.Mode)
	}

	ctx := activation.Context{
		ActionKey:       act.Name,
		Input:           in,
		KeyDown:         keyDown,
		Mode:            act.Mode,
		Meta:            meta,
		DelayedFallback: d.delayedFallback,
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("execution panic for %s: %v", act.Name, r)
			}
		}()
		start := time.Now()
		ok := d.reg.Execute(ctx, d.ex)
		log.Execution(act.Name, string(act.Mode), keyDown, ok, time.Since(start))
	}()
	return true
}

// Wait drains in-flight executions. Used at shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
