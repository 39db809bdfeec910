package cyclex

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Matrix4 represents a 4x4 matrix for translation, scale, and rotation. A Matrix4 in cyclex
// is row-major (i.e. the X axis of a rotation Matrix4 is matrix[0]), matching the scene
// sources it reads from.
type Matrix4 [4][4]float32

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {

	mat := Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return mat

}

// NewMatrix4Translate returns a new identity Matrix4, but with the x, y, and z translation
// components set as provided.
func NewMatrix4Translate(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a new identity Matrix4, but with the scale components set as
// provided. 1, 1, 1 is the default.
func NewMatrix4Scale(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4Rotate returns a new Matrix4 designed to rotate by the angle given (in radians)
// along the axis given [x, y, z]. This rotation works as though you pierced the object
// utilizing the matrix through by the axis, and then rotated it counter-clockwise by the
// angle in radians.
func NewMatrix4Rotate(x, y, z, angle float32) Matrix4 {

	// Default to spinning on +Y axis if there is no valid axis
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	mat := NewMatrix4()
	vector := Vector3{X: x, Y: y, Z: z}.Unit()
	s := math32.Sin(angle)
	c := math32.Cos(angle)
	m := 1 - c

	mat[0][0] = m*vector.X*vector.X + c
	mat[0][1] = m*vector.X*vector.Y + vector.Z*s
	mat[0][2] = m*vector.Z*vector.X - vector.Y*s

	mat[1][0] = m*vector.X*vector.Y - vector.Z*s
	mat[1][1] = m*vector.Y*vector.Y + c
	mat[1][2] = m*vector.Y*vector.Z + vector.X*s

	mat[2][0] = m*vector.Z*vector.X + vector.Y*s
	mat[2][1] = m*vector.Y*vector.Z - vector.X*s
	mat[2][2] = m*vector.Z*vector.Z + c

	return mat

}

// Clone clones the Matrix4, returning a new copy.
func (matrix Matrix4) Clone() Matrix4 {
	newMat := NewMatrix4()
	for y := 0; y < len(matrix); y++ {
		for x := 0; x < len(matrix[y]); x++ {
			newMat[y][x] = matrix[y][x]
		}
	}
	return newMat
}

// Row returns the indiced row from the Matrix4 as a Vector4.
func (matrix Matrix4) Row(rowIndex int) Vector4 {
	return Vector4{
		X: matrix[rowIndex][0],
		Y: matrix[rowIndex][1],
		Z: matrix[rowIndex][2],
		W: matrix[rowIndex][3],
	}
}

// SetRow sets the row in rowIndex of the Matrix4 to the 4D vector passed.
func (matrix *Matrix4) SetRow(rowIndex int, vec Vector4) {
	matrix[rowIndex][0] = vec.X
	matrix[rowIndex][1] = vec.Y
	matrix[rowIndex][2] = vec.Z
	matrix[rowIndex][3] = vec.W
}

// Transposed transposes the Matrix4, switching it from being row-major to column-major.
func (matrix Matrix4) Transposed() Matrix4 {

	newMat := NewMatrix4()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			newMat[i][j] = matrix[j][i]
		}
	}

	return newMat

}

// MultVec multiplies the vector provided by the Matrix4, giving a vector that has been
// rotated, scaled, or translated as desired.
func (matrix Matrix4) MultVec(vect Vector3) Vector3 {

	return Vector3{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}

}

// Mult multiplies a Matrix4 by another provided Matrix4 - this effectively combines them.
// Note that transforms combine in application order with row vectors, so a local transform
// composed onto a parent's cumulative transform is local.Mult(parent).
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {

	newMat := NewMatrix4()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			newMat[i][j] = matrix[i][0]*other[0][j] + matrix[i][1]*other[1][j] + matrix[i][2]*other[2][j] + matrix[i][3]*other[3][j]
		}
	}

	return newMat

}

// Equals returns true if the matrix equals the same values in the provided other Matrix4.
func (matrix Matrix4) Equals(other Matrix4) bool {

	eps := float32(0.0001) // epsilon floating point error value
	for i := 0; i < len(matrix); i++ {
		for j := 0; j < len(matrix[i]); j++ {
			if math32.Abs(matrix[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

var identityMatrix = NewMatrix4()

// IsIdentity returns true if the matrix is an unmodified identity matrix.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(identityMatrix)
}

// ToFloats returns the Matrix4 as a flat array of 16 float32s, in row-major order.
func (matrix Matrix4) ToFloats() [16]float32 {
	return [16]float32{
		matrix[0][0], matrix[0][1], matrix[0][2], matrix[0][3],
		matrix[1][0], matrix[1][1], matrix[1][2], matrix[1][3],
		matrix[2][0], matrix[2][1], matrix[2][2], matrix[2][3],
		matrix[3][0], matrix[3][1], matrix[3][2], matrix[3][3],
	}
}

// SetFloats sets the Matrix4's values from a flat slice of 16 float32s in row-major order.
func (matrix *Matrix4) SetFloats(floats []float32) Matrix4 {
	for i := 0; i < 16; i++ {
		matrix[i/4][i%4] = floats[i]
	}
	return *matrix
}

func (matrix Matrix4) String() string {
	s := strings.Builder{}
	s.WriteString("{")
	for i, row := range matrix {
		for j, v := range row {
			s.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
			if i < 3 || j < 3 {
				s.WriteString(", ")
			}
		}
		if i < len(matrix)-1 {
			s.WriteString("\n")
		}
	}
	s.WriteString("}")
	return s.String()
}
