package input

import (
	"math"

	"go.viam.com/swerve/spatialmath"
)

// A Joystick is a pair of axes. Y follows screen convention: pushing up is negative.
type Joystick struct {
	X *Axis
	Y *Axis
}

// NewJoystick returns a joystick built from the given controls.
func NewJoystick(x, y Control) Joystick {
	return Joystick{X: NewAxis(x), Y: NewAxis(y)}
}

// Normalized returns the stick position with y pointing up and the radius limited to 1, so that
// pushing into a corner is no faster than pushing straight ahead.
func (j Joystick) Normalized() spatialmath.Point {
	return normalize(j.X.Position(), -j.Y.Position())
}

func normalize(x, y float64) spatialmath.Point {
	if x == 0 && y == 0 {
		return spatialmath.Point{X: x, Y: y}
	}
	sin, cos := math.Sincos(math.Atan2(y, x))
	return spatialmath.Point{X: math.Abs(x) * cos, Y: math.Abs(y) * sin}
}

// Zero centers both axes.
func (j Joystick) Zero() {
	j.X.SetPosition(0)
	j.Y.SetPosition(0)
}

// Version changes whenever either axis moves.
func (j Joystick) Version() uint64 {
	return j.X.Version() + j.Y.Version()
}
