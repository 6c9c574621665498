// Package config defines the on-disk configuration of a swerve base and how it is read.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"go.viam.com/swerve/drive"
	"go.viam.com/swerve/input"
	"go.viam.com/swerve/logging"
	"go.viam.com/swerve/swerve"
)

// A Config describes a swerve base, the loop driving it and how input is mixed into commands.
type Config struct {
	Wheels []swerve.WheelConfig          `json:"wheels"`
	Loop   drive.LoopConfig              `json:"loop"`
	Input  input.MixerConfig             `json:"input"`
	Log    []logging.LoggerPatternConfig `json:"log,omitempty"`

	ConfigFilePath string `json:"-"`
}

// Default returns the config of the demo base: 20 wide by 30 long with a 4x1 wheel at each corner,
// driven at 50 Hz.
func Default() *Config {
	return &Config{
		Wheels: swerve.DefaultWheels(),
		Loop:   drive.DefaultLoopConfig(),
	}
}

// Ensure validates every section of the config and returns all failures together.
func (c *Config) Ensure() error {
	var err error
	err = multierr.Append(err, swerve.ValidateWheels("base", c.Wheels))
	err = multierr.Append(err, c.Loop.Validate("loop"))
	err = multierr.Append(err, c.Input.Validate("input"))
	for idx, lpc := range c.Log {
		err = multierr.Append(err, lpc.Validate(fmt.Sprintf("%s.%d", "log", idx)))
	}
	return err
}
