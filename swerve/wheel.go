// Package swerve implements inverse kinematics for a base made of independently steerable
// ("swerve") wheels.
//
// Two kinematics modes are provided and kept separate. Wheel.SetDirection (and its broadcast form
// Fleet.SetDirection) composes a translation vector with a rotation rate for one wheel, minimizes
// steering travel and inverts the drive motor when that is shorter. Fleet.SetTranslation and
// Fleet.SetTurn instead rotate every wheel about a pivot point and normalize speeds so that the
// fastest wheel runs at unit speed.
package swerve

import (
	"fmt"
	"math"

	"go.viam.com/swerve/spatialmath"
)

// ZeroSpeedThreshold is the commanded speed below which a wheel is stopped and its steering angle
// left where it is, so floating point noise near zero does not spin the wheel.
const ZeroSpeedThreshold = 1e-9

const (
	defaultDiameter = 10.0
	defaultWidth    = 4.0
)

// A Wheel is a single swerve module: a fixed offset from the center of the robot, the physical
// dimensions of the tire and the current steering angle and speed.
//
// The zero value is not ready for use; call NewWheel or NewCenteredWheel.
type Wheel struct {
	position spatialmath.Point
	diameter float64
	width    float64

	// state.Theta is the axle angle on the unit circle and state.R the signed wheel speed.
	state spatialmath.PolarVector

	// unit vector along atan2(y, x) of the position, (0, 0) for a wheel at the robot center.
	cosRot float64
	sinRot float64
}

// NewWheel returns a wheel centered at (x, y) relative to the center of the robot. Units are not
// enforced but must be consistent. A new wheel points due east (axle angle 0) at speed 1.
func NewWheel(x, y, diameter, width float64) *Wheel {
	w := &Wheel{
		diameter: diameter,
		width:    width,
		state:    spatialmath.PolarVector{R: 1.0, Theta: 0},
	}
	w.SetPosition(x, y)
	return w
}

// NewCenteredWheel returns a wheel at the center of the robot with a diameter of 10 and a width of
// 4. It is only useful when SetPosition is called afterwards.
func NewCenteredWheel() *Wheel {
	return NewWheel(0, 0, defaultDiameter, defaultWidth)
}

// SetPosition moves the wheel to (x, y) relative to the center of the robot.
func (w *Wheel) SetPosition(x, y float64) {
	w.position.Set(x, y)
	if x == 0 && y == 0 {
		// a wheel at the center can never contribute to rotation
		w.cosRot = 0
		w.sinRot = 0
		return
	}
	rotAng := math.Atan2(y, x)
	w.cosRot = math.Cos(rotAng)
	w.sinRot = math.Sin(rotAng)
}

// X returns the horizontal offset of the wheel from the center of the robot.
func (w *Wheel) X() float64 {
	return w.position.X
}

// Y returns the vertical offset of the wheel from the center of the robot.
func (w *Wheel) Y() float64 {
	return w.position.Y
}

// Position returns a copy of the wheel offset.
func (w *Wheel) Position() spatialmath.Point {
	return w.position
}

// Diameter returns the tire diameter.
func (w *Wheel) Diameter() float64 {
	return w.diameter
}

// SetDiameter sets the tire diameter.
func (w *Wheel) SetDiameter(diameter float64) {
	w.diameter = diameter
}

// Width returns the tire tread width.
func (w *Wheel) Width() float64 {
	return w.width
}

// SetWidth sets the tire tread width.
func (w *Wheel) SetWidth(width float64) {
	w.width = width
}

// AxleTheta returns the axle angle in radians (0 is due east, counter-clockwise positive).
func (w *Wheel) AxleTheta() float64 {
	return w.state.Theta
}

// SetAxleTheta sets the axle angle in radians.
func (w *Wheel) SetAxleTheta(theta float64) {
	w.state.Theta = theta
}

// WheelBearing returns the wheel bearing in radians, clockwise from due north.
func (w *Wheel) WheelBearing() float64 {
	return -w.state.Theta
}

// SetWheelBearing sets the wheel bearing in radians, clockwise from due north.
func (w *Wheel) SetWheelBearing(bearing float64) {
	w.state.Theta = -bearing
}

// Velocity returns the commanded wheel speed. A negative value drives the wheel in reverse.
func (w *Wheel) Velocity() float64 {
	return w.state.R
}

// SetVelocity sets the commanded wheel speed.
func (w *Wheel) SetVelocity(velocity float64) {
	w.state.R = velocity
}

// State returns the current (speed, axle angle) pair.
func (w *Wheel) State() spatialmath.PolarVector {
	return w.state
}

// VelocityVector returns the wheel's velocity in robot space. The front of the tire is the +y
// axis of the wheel's own frame, so this is (0, speed) rotated by the axle angle.
func (w *Wheel) VelocityVector() spatialmath.Point {
	sin, cos := math.Sincos(w.state.Theta)
	return spatialmath.Point{X: -sin * w.state.R, Y: cos * w.state.R}
}

// SetDirection steers the wheel for a robot translation of (ux, uy) combined with a rotation rate.
//
// The steering angle never moves more than a quarter turn per call: when the shortest path to the
// new heading is longer than that, the wheel steers to the opposite heading and the speed is
// negated instead. A commanded speed below ZeroSpeedThreshold stops the wheel and keeps the
// current steering angle.
func (w *Wheel) SetDirection(ux, uy, rotation float64) {
	if rotation != 0 {
		ux += rotation * w.cosRot
		uy += rotation * w.sinRot
	}

	r := spatialmath.ComputeR(ux, uy)
	if math.Abs(r) < ZeroSpeedThreshold {
		w.state.R = 0
		return
	}

	newTheta := math.Atan2(uy, ux)
	delta := spatialmath.ShortestPath(w.state.Theta, newTheta)
	if math.Abs(delta) > math.Pi/2 {
		if newTheta < 0 {
			newTheta += math.Pi
		} else {
			newTheta -= math.Pi
		}
		r = -r
	}
	w.state.Theta = newTheta
	w.state.R = r
}

// Transform maps local, a point relative to the center of the wheel in the wheel's own rotated
// frame, into robot space. The axle angle is applied regardless of the sign of the speed. The
// result is stored in dst, which may alias local; a nil dst allocates a new point.
func (w *Wheel) Transform(local spatialmath.Point, dst *spatialmath.Point) *spatialmath.Point {
	if dst == nil {
		dst = &spatialmath.Point{}
	}
	rotated := spatialmath.PolarVector{R: local.R(), Theta: local.Theta() + w.state.Theta}
	dst.Set(rotated.X()+w.position.X, rotated.Y()+w.position.Y)
	return dst
}

// Corners returns the four corners of the tire tread in robot space, in drawing order.
func (w *Wheel) Corners() [4]spatialmath.Point {
	hw := w.width / 2
	hd := w.diameter / 2
	corners := [4]spatialmath.Point{{X: -hw, Y: -hd}, {X: -hw, Y: hd}, {X: hw, Y: hd}, {X: hw, Y: -hd}}
	for i := range corners {
		w.Transform(corners[i], &corners[i])
	}
	return corners
}

// ComputeForTurnAround returns the axle angle for a wheel rotating around (cx, cy). The result is
// atan2(dx, dy) of the offset from the pivot to the wheel, i.e. measured from the +y axis.
func (w *Wheel) ComputeForTurnAround(cx, cy float64) float64 {
	dx := w.position.X - cx
	dy := w.position.Y - cy
	return spatialmath.ComputeTheta(dy, dx)
}

// ComputeDistance returns the distance from the center of the wheel to (cx, cy).
func (w *Wheel) ComputeDistance(cx, cy float64) float64 {
	return spatialmath.ComputeR(w.position.X-cx, w.position.Y-cy)
}

func (w *Wheel) String() string {
	return fmt.Sprintf("wheel at %v: %v", w.position, w.state)
}
