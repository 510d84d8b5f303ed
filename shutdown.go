package xrainbow

import (
	"os"
	"os/signal"
	"sync/atomic"
)

// Shutdown is a flag which is set asynchronously to stop the main loop. Only
// the first request is recorded, and it is never reset. The zero value is ready
// to use.
type Shutdown struct {
	requested atomic.Bool
	sig       atomic.Pointer[os.Signal]
}

// Request sets the flag, recording sig (which may be nil) if it is the first
// request.
func (s *Shutdown) Request(sig os.Signal) {
	if s.requested.CompareAndSwap(false, true) {
		s.sig.Store(&sig)
	}
}

// Requested checks whether the flag is set.
func (s *Shutdown) Requested() bool {
	return s.requested.Load()
}

// Signal returns the signal passed to the first request, if any.
func (s *Shutdown) Signal() os.Signal {
	if sig := s.sig.Load(); sig != nil {
		return *sig
	}
	return nil
}

// Notify requests a shutdown when any of the specified signals (or
// [ShutdownSignals] if none) are received. The returned function stops
// listening for the signals.
func (s *Shutdown) Notify(sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = ShutdownSignals
	}
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, sigs...)
	go func() {
		for {
			select {
			case sig := <-ch:
				s.Request(sig)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
