package spatialmath

import (
	"fmt"
	"math"

	"go.viam.com/swerve/utils"
)

// PolarVector is a point or 2D vector (r, theta) in a polar coordinate system.
//
// R is a signed magnitude: a negative R points along Theta+π. Theta is in radians measured
// counter-clockwise from due east and is not normalized to any range.
type PolarVector struct {
	R     float64 `json:"r"`
	Theta float64 `json:"theta"`
}

// X returns the Cartesian x component, r·cos(θ).
func (v PolarVector) X() float64 {
	return math.Cos(v.Theta) * v.R
}

// Y returns the Cartesian y component, r·sin(θ).
func (v PolarVector) Y() float64 {
	return math.Sin(v.Theta) * v.R
}

// ToCartesian returns the equivalent Cartesian point.
func (v PolarVector) ToCartesian() Point {
	return Point{X: v.X(), Y: v.Y()}
}

// ToCartesianInto stores the equivalent Cartesian coordinates in dst and returns it.
func (v PolarVector) ToCartesianInto(dst *Point) *Point {
	dst.Set(v.X(), v.Y())
	return dst
}

// ThetaDegrees returns Theta in degrees.
func (v PolarVector) ThetaDegrees() float64 {
	return utils.RadToDeg(v.Theta)
}

// SetThetaDegrees sets Theta from degrees.
func (v *PolarVector) SetThetaDegrees(theta float64) {
	v.Theta = utils.DegToRad(theta)
}

// Bearing returns the compass bearing in radians: clockwise from due north.
func (v PolarVector) Bearing() float64 {
	return AngleToBearing(v.Theta)
}

// SetBearing sets Theta from a compass bearing in radians.
func (v *PolarVector) SetBearing(bearing float64) {
	v.Theta = BearingToAngle(bearing)
}

// BearingDegrees returns the compass bearing in degrees.
func (v PolarVector) BearingDegrees() float64 {
	return utils.RadToDeg(v.Bearing())
}

// SetBearingDegrees sets Theta from a compass bearing in degrees.
func (v *PolarVector) SetBearingDegrees(bearing float64) {
	v.SetBearing(utils.DegToRad(bearing))
}

func (v PolarVector) String() string {
	return fmt.Sprintf("(%v, ∠%v)", v.R, v.ThetaDegrees())
}
