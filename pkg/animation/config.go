package animation

import (
	"time"

	apperr "github.com/matzehuels/autotype/pkg/errors"
)

// Default cadence. At 20 ticks per second and 10 steps per tick a target of
// about 1800 characters is typed in roughly nine seconds.
const (
	DefaultTickInterval    = 50 * time.Millisecond
	DefaultElementsPerTick = 10
	DefaultResetInterval   = 60 * time.Second
	DefaultFillInterval    = 500 * time.Millisecond
)

// Config holds the animation cadence.
type Config struct {
	// TickInterval is the time between batch pulls.
	TickInterval time.Duration
	// ElementsPerTick is the number of steps pulled per tick.
	ElementsPerTick int
	// ResetInterval is the time between restarts of the sequence.
	ResetInterval time.Duration
	// FillInterval is the time between autofill passes. Zero disables
	// autofill.
	FillInterval time.Duration
}

// DefaultConfig returns the default cadence.
func DefaultConfig() Config {
	return Config{
		TickInterval:    DefaultTickInterval,
		ElementsPerTick: DefaultElementsPerTick,
		ResetInterval:   DefaultResetInterval,
		FillInterval:    DefaultFillInterval,
	}
}

// Validate checks that the cadence can be scheduled.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "tick interval must be positive, got %s", c.TickInterval)
	}
	if c.ElementsPerTick <= 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "elements per tick must be positive, got %d", c.ElementsPerTick)
	}
	if c.ResetInterval <= 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "reset interval must be positive, got %s", c.ResetInterval)
	}
	if c.FillInterval < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "fill interval must not be negative, got %s", c.FillInterval)
	}
	return nil
}

// TypingTime estimates how long typing chars characters takes.
func (c Config) TypingTime(chars int) time.Duration {
	if c.ElementsPerTick <= 0 {
		return 0
	}
	ticks := (chars + c.ElementsPerTick - 1) / c.ElementsPerTick
	return time.Duration(ticks) * c.TickInterval
}
