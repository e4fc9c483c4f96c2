//go:build !windows

package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

func notify(sig chan os.Signal) {
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
}
