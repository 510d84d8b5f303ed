//go:build !unix

package xrainbow

import "os"

// ShutdownSignals are the signals which stop the rainbow by default.
var ShutdownSignals = []os.Signal{os.Interrupt}
