package cyclex

import (
	"testing"
)

func TestMatrixComposition(t *testing.T) {

	// With row vectors, composing a local transform onto a parent is local.Mult(parent),
	// so a point in a child space ends up translated by both.
	parent := NewMatrix4Translate(10, 0, 0)
	local := NewMatrix4Translate(0, 5, 0)

	combined := local.Mult(parent)

	moved := combined.MultVec(Vector3{})
	if !moved.Equals(Vector3{X: 10, Y: 5, Z: 0}) {
		t.Fatal("composed translation moved the origin to the wrong place:", moved)
	}

}

func TestMatrixIdentity(t *testing.T) {

	if !NewMatrix4().IsIdentity() {
		t.Fatal("a fresh Matrix4 should be identity")
	}

	mat := NewMatrix4Translate(1, 2, 3).Mult(NewMatrix4())
	if !mat.Equals(NewMatrix4Translate(1, 2, 3)) {
		t.Fatal("multiplying by identity should not change a matrix")
	}

	if NewMatrix4Scale(1, 1, -1).IsIdentity() {
		t.Fatal("a Z-flip matrix is not identity")
	}

}

func TestMatrixRotate(t *testing.T) {

	// Rotating +X a quarter turn counter-clockwise around +Y should give -Z.
	rot := NewMatrix4Rotate(0, 1, 0, 3.14159265/2)

	rotated := rot.MultVec(Vector3{X: 1})
	if !rotated.Equals(Vector3{Z: -1}) {
		t.Fatal("rotation about +Y gave the wrong result:", rotated)
	}

}

func TestMatrixFloatsRoundTrip(t *testing.T) {

	mat := NewMatrix4Translate(1, 2, 3).Mult(NewMatrix4Scale(2, 2, 2))

	floats := mat.ToFloats()

	restored := NewMatrix4()
	restored.SetFloats(floats[:])

	if !restored.Equals(mat) {
		t.Fatal("ToFloats/SetFloats did not round-trip")
	}

}
