package swerve

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// WheelConfig describes one wheel of a base.
type WheelConfig struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
	Width    float64 `json:"width"`
}

// Validate ensures all parts of the config are valid.
func (cfg *WheelConfig) Validate(path string) error {
	if cfg.Diameter == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "diameter")
	}
	if cfg.Width == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "width")
	}
	var err error
	if cfg.Diameter < 0 {
		err = multierr.Append(err, errors.Errorf("diameter must be positive, got %v", cfg.Diameter))
	}
	if cfg.Width < 0 {
		err = multierr.Append(err, errors.Errorf("width must be positive, got %v", cfg.Width))
	}
	if err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// ValidateWheels validates every wheel config and requires at least one wheel. Wheels sharing a
// position are rejected since they cannot be told apart when rendered or rotated.
func ValidateWheels(path string, wheels []WheelConfig) error {
	if len(wheels) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "wheels")
	}
	seen := make(map[[2]float64]int, len(wheels))
	for idx := range wheels {
		wheelPath := fmt.Sprintf("%s.%s.%d", path, "wheels", idx)
		if err := wheels[idx].Validate(wheelPath); err != nil {
			return err
		}
		key := [2]float64{wheels[idx].X, wheels[idx].Y}
		if other, ok := seen[key]; ok {
			return utils.NewConfigValidationError(wheelPath,
				errors.Errorf("wheel shares position (%v, %v) with wheel %d", key[0], key[1], other))
		}
		seen[key] = idx
	}
	return nil
}

// DefaultWheels returns a 20 wide by 30 long base with a 4x1 wheel at each corner.
func DefaultWheels() []WheelConfig {
	const (
		diameter = 4.0
		width    = 1.0
		halfW    = 20 / 2.0
		halfL    = 30 / 2.0
	)
	return []WheelConfig{
		{X: halfW, Y: halfL, Diameter: diameter, Width: width},
		{X: -halfW, Y: -halfL, Diameter: diameter, Width: width},
		{X: halfW, Y: -halfL, Diameter: diameter, Width: width},
		{X: -halfW, Y: halfL, Diameter: diameter, Width: width},
	}
}
