// Package gamma is a minimal pure-go implementation of X11 display gamma
// control using either XF86VidMode or RandR.
package gamma

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"sync"
)

// Limits for a single gamma channel, as enforced by the X server for
// XF86VidMode.
const (
	MinGamma = 0.1
	MaxGamma = 10.0
)

// Color is a red, green, blue gamma triple. A component value of 1 is neutral.
type Color [3]float64

// Neutral is the gamma triple which leaves colors untouched.
var Neutral = Color{1, 1, 1}

// Valid checks whether all channels are within [MinGamma, MaxGamma].
func (c Color) Valid() bool {
	for _, v := range c {
		if !(v >= MinGamma && v <= MaxGamma) { // also catches NaN
			return false
		}
	}
	return true
}

// Clamp limits all channels to [MinGamma, MaxGamma].
func (c Color) Clamp() Color {
	for i, v := range c {
		switch {
		case math.IsNaN(v):
			c[i] = 1
		case v < MinGamma:
			c[i] = MinGamma
		case v > MaxGamma:
			c[i] = MaxGamma
		}
	}
	return c
}

func (c Color) String() string {
	b := append([]byte(nil), '(')
	for i, v := range c {
		if i != 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, v, 'f', 3, 64)
	}
	return string(append(b, ')'))
}

// Backend selects the X11 extension used to set the gamma.
type Backend string

const (
	BackendAuto    Backend = "auto"    // vidmode, falling back to randr
	BackendVidMode Backend = "vidmode" // XF86VidMode gamma on the default screen
	BackendRandR   Backend = "randr"   // RandR gamma ramps on all CRTCs of the default screen
)

// ParseBackend parses a backend name. An empty string is [BackendAuto].
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendVidMode, BackendRandR:
		return b, nil
	default:
		return "", fmt.Errorf("unknown gamma backend %q", s)
	}
}

// backend is implemented by the extension-specific setters. Methods are
// called with the Display lock held.
type backend interface {
	set(Color) error
	close()
}

// Display holds exclusive gamma control of an X11 screen. It is safe for
// concurrent usage.
type Display struct {
	logger *slog.Logger
	name   Backend

	mu     sync.Mutex
	b      backend
	closed bool
}

// Open connects to the specified X11 display (empty for the default) and
// takes control of the default screen's gamma. If logger is not nil, it is
// used for debug logs from this package.
func Open(display string, kind Backend, logger *slog.Logger) (*Display, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var (
		b   backend
		err error
	)
	switch kind {
	case BackendVidMode:
		b, err = newVidMode(display, logger)
	case BackendRandR:
		b, err = newRandR(display, logger)
	case BackendAuto, "":
		kind = BackendVidMode
		if b, err = newVidMode(display, logger); err != nil {
			logger.Debug("gamma: vidmode unavailable, trying randr", "error", err)
			var err1 error
			kind = BackendRandR
			if b, err1 = newRandR(display, logger); err1 != nil {
				err = errors.Join(err, err1)
			} else {
				err = nil
			}
		}
	default:
		return nil, fmt.Errorf("unknown gamma backend %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to display %q: %w", display, err)
	}
	logger.Debug("gamma: opened display", "display", display, "backend", kind)
	return &Display{logger: logger, name: kind, b: b}, nil
}

// Backend returns the backend in use.
func (d *Display) Backend() Backend {
	return d.name
}

// Set applies a gamma triple. It panics if any channel is outside [MinGamma,
// MaxGamma]. After Close, it returns [os.ErrClosed].
func (d *Display) Set(c Color) error {
	if !c.Valid() {
		panic(fmt.Sprintf("gamma: color %v out of range [%v, %v]", c, MinGamma, MaxGamma))
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return os.ErrClosed
	}
	return d.b.set(c)
}

// Close restores neutral gamma and closes the connection. It is safe to call
// more than once.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	err := d.b.set(Neutral)
	if err != nil {
		d.logger.Warn("gamma: failed to restore neutral gamma", "error", err)
		err = fmt.Errorf("restore neutral gamma: %w", err)
	}
	d.b.close()
	d.logger.Debug("gamma: closed display")
	return err
}

// Ramp computes a gamma ramp the same way the X server does for XF86VidMode,
// raising each normalized index to 1/gamma. A component value of 1 is linear.
func Ramp[C ~uint8 | ~uint16 | ~uint32](r, g, b []C, c Color) {
	ramp(r, c[0])
	ramp(g, c[1])
	ramp(b, c[2])
}

func ramp[C ~uint8 | ~uint16 | ~uint32](x []C, gamma float64) {
	switch len(x) {
	case 0:
		return
	case 1:
		x[0] = ^C(0)
		return
	}
	for index := range len(x) {
		x[index] = C(math.Pow(float64(index)/float64(len(x)-1), 1/gamma) * float64(^C(0)))
	}
}
