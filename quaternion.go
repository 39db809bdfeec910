package cyclex

// Quaternion represents a rotation, used when decoding TRS transforms from scene files.
type Quaternion struct {
	X, Y, Z, W float32
}

// NewQuaternion creates a new Quaternion with the x, y, z, and w components provided.
func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x, y, z, w}
}

// Normalized returns a copy of the Quaternion, normalized to unit length.
func (quat Quaternion) Normalized() Quaternion {
	v := Vector4{quat.X, quat.Y, quat.Z, quat.W}.Unit()
	return Quaternion{v.X, v.Y, v.Z, v.W}
}

// ToMatrix4 returns a rotation Matrix4 representing the Quaternion's rotation.
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Normalized()

	x := q.X
	y := q.Y
	z := q.Z
	w := q.W

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y*y+z*z)
	mat[0][1] = 2 * (x*y + z*w)
	mat[0][2] = 2 * (x*z - y*w)

	mat[1][0] = 2 * (x*y - z*w)
	mat[1][1] = 1 - 2*(x*x+z*z)
	mat[1][2] = 2 * (y*z + x*w)

	mat[2][0] = 2 * (x*z + y*w)
	mat[2][1] = 2 * (y*z - x*w)
	mat[2][2] = 1 - 2*(x*x+y*y)

	return mat

}
