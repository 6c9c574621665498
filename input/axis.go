package input

import (
	"math"

	"go.viam.com/swerve/utils"
)

// An Axis is a single joystick axis with a position in [-1.0, +1.0].
type Axis struct {
	control  Control
	position float64
	version  uint64
}

// NewAxis returns an axis for control at position 0.
func NewAxis(control Control) *Axis {
	return &Axis{control: control}
}

// Control returns the control this axis reports.
func (a *Axis) Control() Control {
	return a.control
}

// Position returns the current position in [-1.0, +1.0].
func (a *Axis) Position() float64 {
	return a.position
}

// SetPosition moves the axis, clamping to [-1.0, +1.0]. It returns the previous position and
// whether the position changed. NaN is ignored.
func (a *Axis) SetPosition(position float64) (float64, bool) {
	old := a.position
	if math.IsNaN(position) {
		return old, false
	}
	a.position = utils.Clamp(position, -1, 1)
	if a.position == old {
		return old, false
	}
	a.version++
	return old, true
}

// Version returns a counter that is incremented every time the position changes.
func (a *Axis) Version() uint64 {
	return a.version
}
