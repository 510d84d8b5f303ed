package xrainbow

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

type monotonicClock struct{}

func (monotonicClock) Now() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, fmt.Errorf("%w: clock_gettime: %w", ErrClock, err)
	}
	return time.Duration(ts.Nano()), nil
}
