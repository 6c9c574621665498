package input

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAxisSetPosition(t *testing.T) {
	a := NewAxis(AbsoluteX)
	test.That(t, a.Control(), test.ShouldEqual, AbsoluteX)
	test.That(t, a.Position(), test.ShouldEqual, 0.0)
	test.That(t, a.Version(), test.ShouldEqual, uint64(0))

	old, changed := a.SetPosition(0.5)
	test.That(t, old, test.ShouldEqual, 0.0)
	test.That(t, changed, test.ShouldBeTrue)
	test.That(t, a.Position(), test.ShouldEqual, 0.5)
	test.That(t, a.Version(), test.ShouldEqual, uint64(1))

	old, changed = a.SetPosition(0.5)
	test.That(t, old, test.ShouldEqual, 0.5)
	test.That(t, changed, test.ShouldBeFalse)
	test.That(t, a.Version(), test.ShouldEqual, uint64(1))

	t.Run("clamped", func(t *testing.T) {
		_, changed := a.SetPosition(3)
		test.That(t, changed, test.ShouldBeTrue)
		test.That(t, a.Position(), test.ShouldEqual, 1.0)

		// clamps to the same value
		_, changed = a.SetPosition(2)
		test.That(t, changed, test.ShouldBeFalse)

		a.SetPosition(math.Inf(-1))
		test.That(t, a.Position(), test.ShouldEqual, -1.0)
	})

	t.Run("nan ignored", func(t *testing.T) {
		before := a.Version()
		old, changed := a.SetPosition(math.NaN())
		test.That(t, changed, test.ShouldBeFalse)
		test.That(t, old, test.ShouldEqual, -1.0)
		test.That(t, a.Position(), test.ShouldEqual, -1.0)
		test.That(t, a.Version(), test.ShouldEqual, before)
	})
}

func TestControlString(t *testing.T) {
	test.That(t, AbsoluteRX.String(), test.ShouldEqual, "AbsoluteRX")
	test.That(t, Control(7).String(), test.ShouldEqual, "Unknown")
}

func TestJoystickNormalized(t *testing.T) {
	j := NewJoystick(AbsoluteX, AbsoluteY)
	p := j.Normalized()
	test.That(t, p.X, test.ShouldEqual, 0.0)
	test.That(t, p.Y, test.ShouldEqual, 0.0)

	t.Run("up is positive y", func(t *testing.T) {
		j.X.SetPosition(0)
		j.Y.SetPosition(-1)
		p := j.Normalized()
		test.That(t, p.X, test.ShouldAlmostEqual, 0.0)
		test.That(t, p.Y, test.ShouldAlmostEqual, 1.0)
	})

	t.Run("corner has unit radius", func(t *testing.T) {
		j.X.SetPosition(1)
		j.Y.SetPosition(1)
		p := j.Normalized()
		test.That(t, p.R(), test.ShouldAlmostEqual, 1.0)
		test.That(t, p.X, test.ShouldAlmostEqual, math.Sqrt2/2)
		test.That(t, p.Y, test.ShouldAlmostEqual, -math.Sqrt2/2)
	})

	t.Run("never exceeds unit radius", func(t *testing.T) {
		for _, x := range []float64{-1, -0.6, -0.1, 0, 0.3, 0.75, 1} {
			for _, y := range []float64{-1, -0.4, 0, 0.2, 0.9, 1} {
				j.X.SetPosition(x)
				j.Y.SetPosition(y)
				n := j.Normalized()
				test.That(t, n.R(), test.ShouldBeLessThanOrEqualTo, 1.0+1e-9)
			}
		}
	})

	t.Run("zero", func(t *testing.T) {
		j.X.SetPosition(0.4)
		before := j.Version()
		j.Zero()
		test.That(t, j.X.Position(), test.ShouldEqual, 0.0)
		test.That(t, j.Y.Position(), test.ShouldEqual, 0.0)
		test.That(t, j.Version(), test.ShouldBeGreaterThan, before)
	})
}
