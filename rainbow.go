package xrainbow

import (
	"math"

	"github.com/pgaskin/xrainbow/gamma"
)

// ColorAt computes the rainbow color at t time units. Every unit, the color
// fades linearly from one primary to the next (red, green, blue, red), so the
// cycle has a period of 3. All channels are offset by base, and they always sum
// to 3*base+1. Negative t is treated as zero.
//
// The result may exceed [gamma.MaxGamma] for large base values.
func ColorAt(t, base float64) gamma.Color {
	if !(t >= 0) || math.IsInf(t, 1) {
		t = 0
	}
	t = math.Mod(t, 3) // exact, and keeps the index conversion in range
	var (
		c    = gamma.Color{base, base, base}
		i    = int64(t)
		frac = math.Mod(t, 1)
	)
	c[i%3] += 1 - frac
	c[(i+1)%3] += frac
	return c
}
