package geometry

import (
	"math"
	"testing"
)

func within(a, b, eps Scalar) bool { return math.Abs(a-b) <= eps }

func TestIdentity3Apply(t *testing.T) {
	m := Identity3()
	v := Vector3{1, 2, 3}
	got := m.Apply(v)
	if !within(got.X, v.X, 1e-12) || !within(got.Y, v.Y, 1e-12) || !within(got.Z, v.Z, 1e-12) {
		t.Fatalf("Apply(identity) = %v, want %v", got, v)
	}
}

func TestMatrix3At(t *testing.T) {
	m := NewMatrix3([9]Scalar{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	if got := m.At(1, 2); got != 6 {
		t.Fatalf("At(1,2) = %v, want 6", got)
	}
}

func TestMatrixApplyScale(t *testing.T) {
	m := NewMatrix3([9]Scalar{
		2, 0, 0,
		0, 2, 0,
		0, 0, 2,
	})
	got := m.Apply(Vector3{1, 2, 3})
	want := Vector3{2, 4, 6}
	if !within(got.X, want.X, 1e-12) || !within(got.Y, want.Y, 1e-12) || !within(got.Z, want.Z, 1e-12) {
		t.Fatalf("Apply = %v, want %v", got, want)
	}
}

func TestMatrixMulIdentity(t *testing.T) {
	m := NewMatrix3([9]Scalar{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	id := Identity3()
	got := m.Mul(id)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !within(got.At(r, c), m.At(r, c), 1e-12) {
				t.Fatalf("Mul(identity) mismatch at (%d,%d): %v vs %v", r, c, got.At(r, c), m.At(r, c))
			}
		}
	}
}
