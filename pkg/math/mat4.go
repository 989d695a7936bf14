package math

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale returns a uniform scale matrix.
func Scale(s float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = s, s, s
	return m
}

// quarterTurns holds exact (cos, sin) pairs for 0, 90, 180 and 270 degrees.
var quarterTurns = [4][2]float32{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// QuarterTurnY returns a rotation of n quarter turns about the Y axis.
// Entries are exactly 0 or ±1, so rotated lattice points stay on the lattice.
func QuarterTurnY(n int) Mat4 {
	cs := quarterTurns[((n%4)+4)%4]
	c, s := cs[0], cs[1]

	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// TransformPoint applies m to the point p (w = 1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// ModelMatrix composes translate · rotate · scale for a voxel group.
func ModelMatrix(position Vec3, turns int, scale float32) Mat4 {
	return Translate(position).Mul(QuarterTurnY(turns)).Mul(Scale(scale))
}
