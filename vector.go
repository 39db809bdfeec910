package cyclex

import (
	"strconv"

	"github.com/chewxy/math32"
)

// Vector3 represents a 3D vector, used for point positions and transform components.
// Vector3 functions that modify the calling Vector3 return copies of the modified Vector3,
// meaning you can do method-chaining easily.
type Vector3 struct {
	X float32 // The X (1st) component of the vector
	Y float32 // The Y (2nd) component of the vector
	Z float32 // The Z (3rd) component of the vector
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns a copy of the calling vector, added together with the other Vector3 provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Invert returns a copy of the Vector3 with all components inverted.
func (vec Vector3) Invert() Vector3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Scale returns a copy of the Vector3, scaled by the scalar provided.
func (vec Vector3) Scale(scalar float32) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Cross returns the cross product of the calling Vector3 and the other Vector3 provided.
func (vec Vector3) Cross(other Vector3) Vector3 {
	ogY := vec.Y
	ogZ := vec.Z
	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogZ*other.X - other.Z*vec.X
	vec.X = ogY*other.Z - other.Y*ogZ
	return vec
}

// Dot returns the dot product of the calling Vector3 and the other Vector3 provided.
func (vec Vector3) Dot(other Vector3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Magnitude returns the length of the Vector3.
func (vec Vector3) Magnitude() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// Unit returns a copy of the Vector3, normalized to a length of 1. A zero-length
// Vector3 is returned unchanged.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	if l < 1e-8 || l == 1 {
		return vec
	}
	vec.X /= l
	vec.Y /= l
	vec.Z /= l
	return vec
}

// Equals returns true if the two Vector3s are nearly equal (within a small epsilon,
// to absorb floating point error).
func (vec Vector3) Equals(other Vector3) bool {
	eps := float32(0.0001)
	return math32.Abs(vec.X-other.X) < eps && math32.Abs(vec.Y-other.Y) < eps && math32.Abs(vec.Z-other.Z) < eps
}

func (vec Vector3) String() string {
	return "{" + strconv.FormatFloat(float64(vec.X), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Y), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Z), 'f', -1, 32) + "}"
}

// Vector4 represents a 4D vector; it is mainly used for rows of a Matrix4.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewVector4 creates a new Vector4 with the specified x, y, z, and w components.
func NewVector4(x, y, z, w float32) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// Magnitude returns the length of the Vector4.
func (vec Vector4) Magnitude() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z + vec.W*vec.W)
}

// Unit returns a copy of the Vector4, normalized to a length of 1.
func (vec Vector4) Unit() Vector4 {
	l := vec.Magnitude()
	if l < 1e-8 || l == 1 {
		return vec
	}
	vec.X /= l
	vec.Y /= l
	vec.Z /= l
	vec.W /= l
	return vec
}

// Invert returns a copy of the Vector4 with all components inverted.
func (vec Vector4) Invert() Vector4 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	vec.W = -vec.W
	return vec
}
