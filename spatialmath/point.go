// Package spatialmath defines the planar coordinate primitives used by the swerve kinematics: a
// Cartesian Point and a PolarVector, plus the angle helpers that relate them.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"go.viam.com/swerve/utils"
)

// Point is a location (x, y) in a Cartesian coordinate system. There are no units associated
// with the values; callers only need to be consistent.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint returns a point initialized to (x, y).
func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

// PointFromR2 converts a golang/geo r2.Point.
func PointFromR2(p r2.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// ComputeTheta returns the polar angle of (x, y) in radians measured counter-clockwise from due
// east. atan2(0, 0) is whatever math.Atan2 returns for it.
func ComputeTheta(x, y float64) float64 {
	return math.Atan2(y, x)
}

// ComputeR returns the distance of (x, y) from the origin.
func ComputeR(x, y float64) float64 {
	return math.Sqrt(ComputeR2(x, y))
}

// ComputeR2 returns the squared distance of (x, y) from the origin. Use it to compare magnitudes
// without paying for the square root.
func ComputeR2(x, y float64) float64 {
	return utils.Square(x) + utils.Square(y)
}

// Set replaces both coordinates.
func (p *Point) Set(x, y float64) {
	p.X = x
	p.Y = y
}

// Theta is ComputeTheta for the point.
func (p *Point) Theta() float64 {
	return ComputeTheta(p.X, p.Y)
}

// R is ComputeR for the point.
func (p *Point) R() float64 {
	return ComputeR(p.X, p.Y)
}

// R2 is ComputeR2 for the point.
func (p *Point) R2() float64 {
	return ComputeR2(p.X, p.Y)
}

// Translate shifts the point so that (x0, y0) becomes the new origin and returns the point.
func (p *Point) Translate(x0, y0 float64) *Point {
	p.X -= x0
	p.Y -= y0
	return p
}

// RotatePolar returns the polar form of the point relative to (x0, y0) after adding rotation
// radians to its angle. The point itself is not modified.
func (p *Point) RotatePolar(x0, y0, rotation float64) PolarVector {
	dx := p.X - x0
	dy := p.Y - y0
	return PolarVector{R: ComputeR(dx, dy), Theta: ComputeTheta(dx, dy) + rotation}
}

// Rotate rotates the point counter-clockwise by rotation radians about (x0, y0), storing the
// result in place, and returns the point.
func (p *Point) Rotate(x0, y0, rotation float64) *Point {
	polar := p.RotatePolar(x0, y0, rotation)
	polar.ToCartesianInto(p)
	return p.Translate(-x0, -y0)
}

// ToPolar returns the (r, theta) representation of the point.
func (p *Point) ToPolar() PolarVector {
	return PolarVector{R: p.R(), Theta: p.Theta()}
}

// R2Point converts to a golang/geo r2.Point.
func (p *Point) R2Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// R3Vector lifts the point into the ground plane of an r3.Vector (Z is zero).
func (p *Point) R3Vector() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y}
}

// Distance returns the Euclidean distance between two points.
func (p *Point) Distance(other Point) float64 {
	return ComputeR(p.X-other.X, p.Y-other.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}
