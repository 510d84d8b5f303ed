package xrainbow

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pgaskin/xrainbow/gamma"
)

// ErrClock is returned when the monotonic clock cannot be read.
var ErrClock = errors.New("monotonic clock unavailable")

// Gamma controls the gamma of a display. It is implemented by [gamma.Display].
type Gamma interface {
	// Set applies a gamma triple with all channels in [gamma.MinGamma,
	// gamma.MaxGamma].
	Set(gamma.Color) error

	// Close restores neutral gamma and releases the display. It must be safe
	// to call more than once.
	Close() error
}

// Clock is a monotonic time source. The returned durations are relative to an
// arbitrary fixed point.
type Clock interface {
	Now() (time.Duration, error)
}

// MonotonicClock returns the system monotonic clock.
func MonotonicClock() Clock {
	return monotonicClock{}
}

// State is the state of a [Driver].
type State int32

const (
	Idle State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// StopReason is the condition which ended a run.
type StopReason int

const (
	StopError StopReason = iota
	StopTimeLimit
	StopShutdown
)

func (r StopReason) String() string {
	switch r {
	case StopError:
		return "error"
	case StopTimeLimit:
		return "time limit"
	case StopShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result describes a finished run.
type Result struct {
	Reason     StopReason
	Iterations int64
	Elapsed    time.Duration // at the last iteration
	Last       gamma.Color   // last color applied before teardown
}

// Driver runs the rainbow on a display. A Driver must only be run once.
type Driver struct {
	Config   Config
	Gamma    Gamma
	Clock    Clock        // defaults to MonotonicClock
	Shutdown *Shutdown    // if nil, only the time limit stops the run
	Pause    func()       // called after each iteration, defaults to sleeping for Config.Interval or Yield
	Logger   *slog.Logger // defaults to discarding logs

	state atomic.Int32
}

// State gets the current state. It is safe to call concurrently with Run.
func (d *Driver) State() State {
	return State(d.state.Load())
}

func (d *Driver) setState(s State) {
	d.state.Store(int32(s))
}

// Run cycles the gamma until the time limit is reached or a shutdown is
// requested. The gamma is closed (restoring neutral gamma) before Run returns,
// including when it returns an error or panics. A nil error is returned if the
// run ended normally.
func (d *Driver) Run() (res Result, err error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := d.Clock
	if clock == nil {
		clock = MonotonicClock()
	}
	shutdown := d.Shutdown
	if shutdown == nil {
		shutdown = new(Shutdown)
	}
	pause := d.Pause
	if pause == nil {
		if interval := d.Config.Interval; interval > 0 {
			pause = func() { time.Sleep(interval) }
		} else {
			pause = Yield
		}
	}

	defer func() {
		d.setState(Stopping)
		if cerr := d.Gamma.Close(); cerr != nil {
			logger.Error("failed to restore display gamma", "error", cerr)
			err = errors.Join(err, cerr)
		}
		d.setState(Stopped)
		logger.Debug("rainbow stopped", "reason", res.Reason, "iterations", res.Iterations, "elapsed", res.Elapsed)
	}()

	if err := d.Config.Validate(); err != nil {
		return res, fmt.Errorf("invalid config: %w", err)
	}

	start, err := clock.Now()
	if err != nil {
		return res, err
	}

	d.setState(Running)
	logger.Debug("rainbow started", "time_limit", d.Config.TimeLimit, "speed", d.Config.Speed, "luminosity", d.Config.Luminosity)

	for {
		now, err := clock.Now()
		if err != nil {
			return res, err
		}
		elapsed := now - start

		c := ColorAt(elapsed.Seconds()*d.Config.Speed, d.Config.Luminosity).Clamp()
		if err := d.Gamma.Set(c); err != nil {
			return res, fmt.Errorf("set gamma %v: %w", c, err)
		}
		res.Iterations++
		res.Elapsed = elapsed
		res.Last = c

		pause()

		if shutdown.Requested() {
			res.Reason = StopShutdown
			logger.Info("shutdown requested", "signal", shutdown.Signal())
			return res, nil
		}
		if !d.Config.Unbounded() && elapsed.Seconds() >= d.Config.TimeLimit {
			res.Reason = StopTimeLimit
			return res, nil
		}
	}
}
