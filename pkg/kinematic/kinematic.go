package kinematic

// This package includes vector and transform math for camera motion.

import (
	"math"
)

// Vector3 is a point or direction in world space.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns the component-wise sum of two vectors.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns the vector scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Lerp returns the linear interpolation between v and o at parameter t.
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Transform is a camera placement: a position and an Euler rotation in radians.
type Transform struct {
	Position Vector3
	Rotation Vector3
}

// Lerp returns the transform interpolated between t and o at parameter f.
func (t Transform) Lerp(o Transform, f float64) Transform {
	return Transform{
		Position: t.Position.Lerp(o.Position, f),
		Rotation: t.Rotation.Lerp(o.Rotation, f),
	}
}

// Equal reports whether two transforms are exactly equal.
func (t Transform) Equal(o Transform) bool {
	return t.Position == o.Position && t.Rotation == o.Rotation
}

// EaseInOut maps elapsed time in [0, total] onto an eased parameter in [0, 1].
// The curve is -0.5*cos(pi*elapsed/total) + 0.5.
func EaseInOut(elapsed float64, total float64) float64 {
	if total <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 1
	}
	return -0.5*math.Cos(math.Pi*elapsed/total) + 0.5
}
