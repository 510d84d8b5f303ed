//go:build !linux

package xrainbow

import "runtime"

// Yield gives up the processor to other goroutines.
func Yield() {
	runtime.Gosched()
}
