package config

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/swerve/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Ensure(), test.ShouldBeNil)
	test.That(t, cfg.Wheels, test.ShouldHaveLength, 4)
	test.That(t, cfg.Loop.Frequency, test.ShouldEqual, 50.0)
	test.That(t, cfg.Input.Deadband, test.ShouldEqual, 0.0)
}

func TestEnsure(t *testing.T) {
	cfg := Default()
	cfg.Wheels[0].Diameter = 0
	cfg.Loop.Frequency = 1000
	cfg.Input.Deadband = 2
	cfg.Log = []logging.LoggerPatternConfig{{Pattern: "swerve.*", Level: "debug"}, {Pattern: "a..b", Level: "info"}}

	err := cfg.Ensure()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "base.wheels.0")
	test.That(t, err.Error(), test.ShouldContainSubstring, "loop")
	test.That(t, err.Error(), test.ShouldContainSubstring, "deadband")
	test.That(t, err.Error(), test.ShouldContainSubstring, "log.1")
	test.That(t, err.Error(), test.ShouldNotContainSubstring, "log.0")
}
