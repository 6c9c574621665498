package input

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// MixerConfig describes how axes are turned into commands.
type MixerConfig struct {
	// Deadband zeroes any axis whose magnitude is below it.
	Deadband float64 `json:"deadband,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *MixerConfig) Validate(path string) error {
	if cfg.Deadband < 0 || cfg.Deadband >= 1 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("deadband must be in [0, 1), got %v", cfg.Deadband))
	}
	return nil
}

// A Command is a robot level motion request for the swerve solver: a translation vector in wheel
// bearing space and a rotation rate (counter-clockwise positive).
type Command struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// IsZero returns true if the command asks for no motion at all.
func (c Command) IsZero() bool {
	return c.X == 0 && c.Y == 0 && c.Rotation == 0
}

// A Mixer combines a translation joystick and a rotation axis into a Command.
type Mixer struct {
	cfg         MixerConfig
	Translation Joystick
	Rotation    *Axis
}

// NewMixer returns a mixer reading translation from AbsoluteX/AbsoluteY and rotation from
// AbsoluteRX.
func NewMixer(cfg MixerConfig) *Mixer {
	return &Mixer{
		cfg:         cfg,
		Translation: NewJoystick(AbsoluteX, AbsoluteY),
		Rotation:    NewAxis(AbsoluteRX),
	}
}

// HandleEvent routes a position event to the matching axis. A disconnect centers every axis so a
// lost controller stops the base. It returns whether any axis moved.
func (m *Mixer) HandleEvent(event Event) bool {
	switch event.Event {
	case Disconnect:
		before := m.Version()
		m.Zero()
		return m.Version() != before
	case PositionChangeAbs:
	default:
		return false
	}
	var changed bool
	switch event.Control {
	case m.Translation.X.Control():
		_, changed = m.Translation.X.SetPosition(event.Value)
	case m.Translation.Y.Control():
		_, changed = m.Translation.Y.SetPosition(event.Value)
	case m.Rotation.Control():
		_, changed = m.Rotation.SetPosition(event.Value)
	}
	return changed
}

// Zero centers every axis.
func (m *Mixer) Zero() {
	m.Translation.Zero()
	m.Rotation.SetPosition(0)
}

// Version changes whenever any axis moves.
func (m *Mixer) Version() uint64 {
	return m.Translation.Version() + m.Rotation.Version()
}

// Command returns the command for the current axis positions.
//
// The normalized stick is turned a quarter turn clockwise into wheel bearing space and rotation is
// negated (pushing right turns clockwise). Rotation is scaled down by the translation magnitude so
// that the two together cannot ask for more than unit speed.
func (m *Mixer) Command() Command {
	trans := normalize(m.deadband(m.Translation.X.Position()), -m.deadband(m.Translation.Y.Position()))
	rot := -m.deadband(m.Rotation.Position())
	rot *= 1.0 - trans.R()
	return Command{X: trans.Y, Y: -trans.X, Rotation: rot}
}

// Poll returns the current command and the mixer version.
func (m *Mixer) Poll(ctx context.Context) (Command, uint64, error) {
	if err := ctx.Err(); err != nil {
		return Command{}, 0, err
	}
	return m.Command(), m.Version(), nil
}

func (m *Mixer) deadband(v float64) float64 {
	if math.Abs(v) < m.cfg.Deadband {
		return 0
	}
	return v
}
