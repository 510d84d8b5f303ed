package gamma

import (
	"errors"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	applied []Color
	closed  int
	err     error
}

func (f *fakeBackend) set(c Color) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, c)
	return nil
}

func (f *fakeBackend) close() {
	f.closed++
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestColorValid(t *testing.T) {
	for _, tc := range []struct {
		Color Color
		Valid bool
	}{
		{Neutral, true},
		{Color{0.1, 10, 5}, true},
		{Color{0.09, 1, 1}, false},
		{Color{1, 10.01, 1}, false},
		{Color{1, 1, math.NaN()}, false},
		{Color{1, 1, math.Inf(1)}, false},
	} {
		assert.Equal(t, tc.Valid, tc.Color.Valid(), "%v", tc.Color)
	}
}

func TestColorClamp(t *testing.T) {
	assert.Equal(t, Color{MinGamma, 1, MaxGamma}, Color{0, 1, 10.9}.Clamp())
	assert.Equal(t, Color{1, 2, 3}, Color{1, 2, 3}.Clamp())
	assert.True(t, Color{math.NaN(), -1, 100}.Clamp().Valid())
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "(1.000,0.500,10.000)", Color{1, 0.5, 10}.String())
}

func TestParseBackend(t *testing.T) {
	for in, exp := range map[string]Backend{
		"":        BackendAuto,
		"auto":    BackendAuto,
		"vidmode": BackendVidMode,
		"randr":   BackendRandR,
	} {
		b, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, exp, b, in)
	}
	_, err := ParseBackend("wayland")
	assert.Error(t, err)
}

func TestRamp(t *testing.T) {
	r, g, b := make([]uint16, 256), make([]uint16, 256), make([]uint16, 256)
	Ramp(r, g, b, Color{1, 2, 0.5})

	for _, x := range [][]uint16{r, g, b} {
		assert.Equal(t, uint16(0), x[0])
		assert.Equal(t, uint16(0xFFFF), x[len(x)-1])
		for i := 1; i < len(x); i++ {
			assert.GreaterOrEqual(t, x[i], x[i-1], "ramp must be monotonic")
		}
	}

	// linear at 1, brighter above 1, darker below 1
	assert.InDelta(t, 0xFFFF*128/255, r[128], 1)
	assert.Greater(t, g[128], r[128])
	assert.Less(t, b[128], r[128])
}

func TestRampSmall(t *testing.T) {
	var empty []uint8
	Ramp(empty, empty, empty, Neutral)

	one := []uint8{0}
	Ramp(one, one, one, Neutral)
	assert.Equal(t, uint8(0xFF), one[0])
}

func TestDisplaySet(t *testing.T) {
	f := &fakeBackend{}
	d := &Display{logger: discard(), b: f}

	require.NoError(t, d.Set(Color{2, 1, 0.5}))
	assert.Equal(t, []Color{{2, 1, 0.5}}, f.applied)

	assert.Panics(t, func() {
		d.Set(Color{10.5, 1, 1})
	})
	assert.Len(t, f.applied, 1, "out of range color must not be applied")
}

func TestDisplayCloseIdempotent(t *testing.T) {
	f := &fakeBackend{}
	d := &Display{logger: discard(), b: f}

	require.NoError(t, d.Set(Color{3, 1, 1}))
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.Equal(t, 1, f.closed)
	assert.Equal(t, Neutral, f.applied[len(f.applied)-1])
	assert.Len(t, f.applied, 2)

	assert.ErrorIs(t, d.Set(Neutral), os.ErrClosed)
}

func TestDisplayCloseError(t *testing.T) {
	errBroken := errors.New("broken pipe")
	f := &fakeBackend{err: errBroken}
	d := &Display{logger: discard(), b: f}

	assert.ErrorIs(t, d.Close(), errBroken)
	assert.Equal(t, 1, f.closed, "connection must be released even if restoring fails")
	assert.NoError(t, d.Close())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("", Backend("wayland"), nil)
	assert.Error(t, err)
}
