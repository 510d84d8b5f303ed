// Package xrainbow cycles the gamma of an X11 display through a rainbow of
// colors until a time limit elapses or it is asked to stop, restoring neutral
// gamma afterwards.
package xrainbow

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 1
)

// Version returns the version string.
func Version() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}

// Luminosity bounds.
const (
	MinLuminosity = 0.1
	MaxLuminosity = 9.9
)

// Config contains the read-only configuration for a run.
type Config struct {
	TimeLimit  float64       // seconds, negative for no limit
	Speed      float64       // multiplier on elapsed time, must be positive
	Luminosity float64       // baseline channel value in [MinLuminosity, MaxLuminosity]
	Interval   time.Duration // pause between iterations, zero to only yield the processor
}

// DefaultConfig returns the default configuration (no time limit, normal speed,
// luminosity 1/3, yield between iterations).
func DefaultConfig() Config {
	return Config{
		TimeLimit:  -1,
		Speed:      1,
		Luminosity: 1.0 / 3.0,
	}
}

// Unbounded checks whether the config has no time limit.
func (c Config) Unbounded() bool {
	return c.TimeLimit < 0
}

// Validate checks the config for out-of-range values.
func (c Config) Validate() error {
	var errs []error
	if math.IsNaN(c.TimeLimit) {
		errs = append(errs, fmt.Errorf("time limit must be a number"))
	}
	if !(c.Speed > 0) || math.IsInf(c.Speed, 1) {
		errs = append(errs, fmt.Errorf("speed %v must be in (0; INFINITY)", c.Speed))
	}
	if !(c.Luminosity >= MinLuminosity && c.Luminosity <= MaxLuminosity) {
		errs = append(errs, fmt.Errorf("luminosity %v must be in [%v; %v]", c.Luminosity, MinLuminosity, MaxLuminosity))
	}
	if c.Interval < 0 {
		errs = append(errs, fmt.Errorf("interval %s must not be negative", c.Interval))
	}
	return errors.Join(errs...)
}
