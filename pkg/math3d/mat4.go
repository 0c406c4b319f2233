package math3d

import "math"

// Mat4 is a 4x4 matrix in row-major order.
type Mat4 struct {
	M [16]float64
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Mul returns the matrix product a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a.M[row*4+k] * b.M[k*4+col]
			}
			r.M[row*4+col] = sum
		}
	}
	return r
}

// MulVec3 transforms a point (implicit W = 1). Translation applies.
func (a Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		a.M[0]*v.X + a.M[1]*v.Y + a.M[2]*v.Z + a.M[3],
		a.M[4]*v.X + a.M[5]*v.Y + a.M[6]*v.Z + a.M[7],
		a.M[8]*v.X + a.M[9]*v.Y + a.M[10]*v.Z + a.M[11],
	}
}

// MulVec3Dir transforms a direction (implicit W = 0). Translation is ignored;
// use this for normals under rotation and uniform scale.
func (a Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		a.M[0]*v.X + a.M[1]*v.Y + a.M[2]*v.Z,
		a.M[4]*v.X + a.M[5]*v.Y + a.M[6]*v.Z,
		a.M[8]*v.X + a.M[9]*v.Y + a.M[10]*v.Z,
	}
}

// MulVec4 transforms a homogeneous point.
func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		a.M[0]*v.X + a.M[1]*v.Y + a.M[2]*v.Z + a.M[3]*v.W,
		a.M[4]*v.X + a.M[5]*v.Y + a.M[6]*v.Z + a.M[7]*v.W,
		a.M[8]*v.X + a.M[9]*v.Y + a.M[10]*v.Z + a.M[11]*v.W,
		a.M[12]*v.X + a.M[13]*v.Y + a.M[14]*v.Z + a.M[15]*v.W,
	}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m.M[3] = v.X
	m.M[7] = v.Y
	m.M[11] = v.Z
	return m
}

// Scale returns a scale matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m.M[0] = v.X
	m.M[5] = v.Y
	m.M[10] = v.Z
	return m
}

// RotateX returns a rotation matrix around the X axis (radians).
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.M[5] = c
	m.M[6] = -s
	m.M[9] = s
	m.M[10] = c
	return m
}

// RotateY returns a rotation matrix around the Y axis (radians).
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.M[0] = c
	m.M[2] = s
	m.M[8] = -s
	m.M[10] = c
	return m
}

// RotateZ returns a rotation matrix around the Z axis (radians).
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.M[0] = c
	m.M[1] = -s
	m.M[4] = s
	m.M[5] = c
	return m
}

// Perspective returns a right-handed perspective projection matrix.
// fov is the vertical field of view in radians.
func Perspective(fov, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fov/2)
	var m Mat4
	m.M[0] = f / aspect
	m.M[5] = f
	m.M[10] = (far + near) / (near - far)
	m.M[11] = (2 * far * near) / (near - far)
	m.M[14] = -1
	return m
}

// LookAt returns a view matrix for a camera at eye looking at target.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	newUp := right.Cross(forward)

	m := Identity()
	m.M[0], m.M[1], m.M[2] = right.X, right.Y, right.Z
	m.M[4], m.M[5], m.M[6] = newUp.X, newUp.Y, newUp.Z
	m.M[8], m.M[9], m.M[10] = -forward.X, -forward.Y, -forward.Z
	m.M[3] = -right.Dot(eye)
	m.M[7] = -newUp.Dot(eye)
	m.M[11] = forward.Dot(eye)
	return m
}
