package drive

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// MaxFrequency is the highest supported loop frequency in Hz.
const MaxFrequency = 200.0

// LoopConfig configures a drive loop.
type LoopConfig struct {
	Frequency float64 `json:"frequency_hz"`
}

// DefaultLoopConfig returns a 50 Hz loop.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{Frequency: 50}
}

// Validate ensures all parts of the config are valid.
func (cfg *LoopConfig) Validate(path string) error {
	if cfg.Frequency == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "frequency_hz")
	}
	if math.IsNaN(cfg.Frequency) || cfg.Frequency < 0 || cfg.Frequency > MaxFrequency {
		return utils.NewConfigValidationError(path,
			errors.Errorf("loop frequency shouldn't be negative or above %vHz, got %v", MaxFrequency, cfg.Frequency))
	}
	// the tick period must fit in a time.Duration
	if float64(time.Second)/cfg.Frequency >= math.MaxInt64 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("loop frequency %vHz is too low to tick", cfg.Frequency))
	}
	return nil
}

// Period returns the time between ticks.
func (cfg LoopConfig) Period() time.Duration {
	return time.Duration(float64(time.Second) * (1.0 / cfg.Frequency))
}
