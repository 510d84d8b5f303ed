package xrainbow

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Yield gives up the processor to other goroutines and threads.
func Yield() {
	runtime.Gosched()
	unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0)
}
