// Package shutdown funnels termination signals into a single callback.
package shutdown

import (
	"os"
)

// OnSignal runs fn once when a termination signal arrives.
func OnSignal(fn func()) {
	sig := make(chan os.Signal, 1)
	notify(sig)
	go func() {
		<-sig
		fn()
	}()
}
