package swerve

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/swerve/logging"
	"go.viam.com/swerve/spatialmath"
	"go.viam.com/swerve/utils"
)

// WheelState is a snapshot of one wheel: its static geometry and its current steering angle and
// speed.
type WheelState struct {
	Index    int     `json:"index"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
	Width    float64 `json:"width"`
	Theta    float64 `json:"theta"`
	Speed    float64 `json:"speed"`
}

// A Fleet is the ordered set of wheels making up a base.
//
// The pivot mode commands (SetTranslation, SetTurn) are lazy: they only record the command and
// the wheels are recomputed the next time the fleet is read. A Fleet is not safe for concurrent
// use.
type Fleet struct {
	logger logging.Logger
	wheels []*Wheel

	translationHeading float64
	pivot              spatialmath.Point
	rotationRequested  bool
	dirty              bool
}

// NewFleet returns an empty fleet.
func NewFleet(logger logging.Logger) *Fleet {
	return &Fleet{logger: logger}
}

// NewFleetFromConfig returns a fleet holding one wheel per wheel config, in order.
func NewFleetFromConfig(wheels []WheelConfig, logger logging.Logger) *Fleet {
	f := NewFleet(logger)
	for _, wc := range wheels {
		f.Add(NewWheel(wc.X, wc.Y, wc.Diameter, wc.Width))
	}
	return f
}

// Add appends a wheel and returns it.
func (f *Fleet) Add(w *Wheel) *Wheel {
	f.wheels = append(f.wheels, w)
	f.dirty = true
	return w
}

// Len returns the number of wheels.
func (f *Fleet) Len() int {
	f.apply()
	return len(f.wheels)
}

// Wheel returns the wheel at index i. It panics if i is out of range.
func (f *Fleet) Wheel(i int) *Wheel {
	f.apply()
	return f.wheels[i]
}

// Wheels returns the wheels in insertion order. The slice is shared with the fleet.
func (f *Fleet) Wheels() []*Wheel {
	f.apply()
	return f.wheels
}

// SetTranslation sets the heading, in radians, every wheel is steered to in pivot mode.
func (f *Fleet) SetTranslation(heading float64) {
	if f.translationHeading != heading {
		f.dirty = true
		f.translationHeading = heading
	}
}

// SetTurn sets the point, relative to the center of the robot, that the fleet rotates about in
// pivot mode. A pivot at the origin turns rotation off.
func (f *Fleet) SetTurn(cx, cy float64) {
	if f.pivot.X != cx || f.pivot.Y != cy {
		f.dirty = true
		f.rotationRequested = cx != 0 || cy != 0
		f.pivot.Set(cx, cy)
	}
}

// apply recomputes the pivot mode command if it changed since the last read.
func (f *Fleet) apply() {
	if !f.dirty {
		return
	}
	f.dirty = false
	if len(f.wheels) == 0 {
		return
	}

	dists := make([]float64, len(f.wheels))
	for i, w := range f.wheels {
		theta := f.translationHeading
		dist := 1.0
		if f.rotationRequested {
			theta += w.ComputeForTurnAround(f.pivot.X, f.pivot.Y)
			dist = w.ComputeDistance(f.pivot.X, f.pivot.Y)
		}
		w.SetAxleTheta(theta)
		w.SetVelocity(dist)
		dists[i] = dist
	}

	maxDist := math.Max(0, floats.Max(dists))
	if maxDist > 0 {
		for _, w := range f.wheels {
			// fraction of the fastest wheel's speed
			w.SetVelocity(w.Velocity() / maxDist)
		}
	}
	f.logger.Debugw("recomputed wheel fleet",
		"heading", f.translationHeading, "pivot", f.pivot.String(), "rotate", f.rotationRequested, "max_dist", maxDist)
}

// SetDirection runs the per-wheel solver on every wheel with the same command.
func (f *Fleet) SetDirection(ux, uy, rotation float64) {
	for _, w := range f.Wheels() {
		w.SetDirection(ux, uy, rotation)
	}
}

// Bounds returns the smallest rectangle, in robot space, that contains every wheel no matter how
// it is steered. An empty fleet has empty bounds.
func (f *Fleet) Bounds() r2.Rect {
	bounds := r2.EmptyRect()
	for _, w := range f.Wheels() {
		size := math.Hypot(w.Diameter(), w.Width())
		p := w.Position()
		bounds = bounds.Union(r2.RectFromCenterSize(p.R2Point(), r2.Point{X: size, Y: size}))
	}
	return bounds
}

// NetVelocity returns the average of the wheel velocity vectors in robot space. An empty fleet has
// zero net velocity.
func (f *Fleet) NetVelocity() spatialmath.Point {
	wheels := f.Wheels()
	if len(wheels) == 0 {
		return spatialmath.Point{}
	}
	xs := make([]float64, len(wheels))
	ys := make([]float64, len(wheels))
	for i, w := range wheels {
		v := w.VelocityVector()
		xs[i] = v.X
		ys[i] = v.Y
	}
	n := float64(len(wheels))
	return spatialmath.Point{X: floats.Sum(xs) / n, Y: floats.Sum(ys) / n}
}

// States returns a snapshot of every wheel in insertion order.
func (f *Fleet) States() []WheelState {
	return lo.Map(f.Wheels(), func(w *Wheel, i int) WheelState {
		return WheelState{
			Index:    i,
			X:        w.X(),
			Y:        w.Y(),
			Diameter: w.Diameter(),
			Width:    w.Width(),
			Theta:    w.AxleTheta(),
			Speed:    w.Velocity(),
		}
	})
}

// String prints a table of each wheel with columns of position, size, axle angle, bearing and
// speed.
func (f *Fleet) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Position", "Size", "Angle", "Bearing", "Speed"})
	for _, s := range f.States() {
		t.AppendRow(table.Row{
			s.Index,
			fmt.Sprintf("X:%.2f, Y:%.2f", s.X, s.Y),
			fmt.Sprintf("%.2f x %.2f", s.Diameter, s.Width),
			fmt.Sprintf("%.2f", utils.RadToDeg(s.Theta)),
			fmt.Sprintf("%.2f", utils.RadToDeg(-s.Theta)),
			fmt.Sprintf("%.3f", s.Speed),
		})
	}
	return t.Render()
}
