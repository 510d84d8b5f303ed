//go:build unix

package xrainbow

import (
	"os"

	"golang.org/x/sys/unix"
)

// ShutdownSignals are the signals which stop the rainbow by default. SIGSEGV
// is only seen when sent by another process; faults in Go code panic instead.
var ShutdownSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGSEGV}
