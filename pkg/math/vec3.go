// Package math provides the float32 vector and matrix types handed to
// renderers.
package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec3From narrows float64 coordinates to a Vec3.
func Vec3From(x, y, z float64) Vec3 {
	return Vec3{float32(x), float32(y), float32(z)}
}
