package xrainbow

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	for _, tc := range []struct {
		Name   string
		Mutate func(*Config)
		Valid  bool
	}{
		{"luminosity below floor", func(c *Config) { c.Luminosity = 0.05 }, false},
		{"luminosity floor", func(c *Config) { c.Luminosity = 0.1 }, true},
		{"luminosity ceiling", func(c *Config) { c.Luminosity = 9.9 }, true},
		{"luminosity above ceiling", func(c *Config) { c.Luminosity = 9.91 }, false},
		{"luminosity nan", func(c *Config) { c.Luminosity = math.NaN() }, false},
		{"speed zero", func(c *Config) { c.Speed = 0 }, false},
		{"speed negative", func(c *Config) { c.Speed = -1 }, false},
		{"speed infinite", func(c *Config) { c.Speed = math.Inf(1) }, false},
		{"speed small", func(c *Config) { c.Speed = 1e-9 }, true},
		{"negative time limit", func(c *Config) { c.TimeLimit = -5 }, true},
		{"zero time limit", func(c *Config) { c.TimeLimit = 0 }, true},
		{"nan time limit", func(c *Config) { c.TimeLimit = math.NaN() }, false},
		{"interval", func(c *Config) { c.Interval = time.Millisecond }, true},
		{"negative interval", func(c *Config) { c.Interval = -time.Millisecond }, false},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			c := DefaultConfig()
			tc.Mutate(&c)
			if tc.Valid {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}

func TestConfigUnbounded(t *testing.T) {
	assert.True(t, DefaultConfig().Unbounded())
	assert.True(t, Config{TimeLimit: -5}.Unbounded())
	assert.False(t, Config{TimeLimit: 0}.Unbounded())
	assert.False(t, Config{TimeLimit: 2}.Unbounded())
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "1.0.1", Version())
}
