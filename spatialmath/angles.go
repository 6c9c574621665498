package spatialmath

import "math"

// AngleToBearing converts a mathematical angle (counter-clockwise from east) to a compass
// bearing (clockwise from north). Both are in radians.
func AngleToBearing(theta float64) float64 {
	return math.Pi/2 - theta
}

// BearingToAngle is the inverse of AngleToBearing.
func BearingToAngle(bearing float64) float64 {
	return math.Pi/2 - bearing
}

// ShortestPath returns the signed amount to add to oldTheta to end up at newTheta on the unit
// circle. The inputs are expected in [-π, π], which puts the result in [-π, π].
func ShortestPath(oldTheta, newTheta float64) float64 {
	change := newTheta - oldTheta
	if change > math.Pi {
		change -= math.Pi * 2
	} else if change < -math.Pi {
		change += math.Pi * 2
	}
	return change
}
