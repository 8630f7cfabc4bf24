package vmath

import "github.com/go-gl/mathgl/mgl64"

// Vec2 is the float64 2D vector shared by every simulation package
// World space: +X right, +Y up
type Vec2 = mgl64.Vec2

// Zero is the zero vector
var Zero = Vec2{0, 0}

// V2 builds a vector from components
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// WithY returns v with its vertical component replaced
func WithY(v Vec2, y float64) Vec2 {
	return Vec2{v[0], y}
}

// DistanceSq returns squared distance between a and b without sqrt
func DistanceSq(a, b Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// ApproxEqualV compares both components within eps
func ApproxEqualV(a, b Vec2, eps float64) bool {
	return ApproxEqual(a[0], b[0], eps) && ApproxEqual(a[1], b[1], eps)
}
