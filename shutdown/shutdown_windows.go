//go:build windows

package shutdown

import (
	"os"
	"os/signal"
)

func notify(sig chan os.Signal) {
	signal.Notify(sig, os.Interrupt)
}
