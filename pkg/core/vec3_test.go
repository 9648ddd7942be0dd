package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Add(b); got != NewVec3(5, -3, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, 7, -3) {
		t.Errorf("Subtract = %v", got)
	}
	if got := a.Dot(b); got != 4-10+18 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, -10, 18) {
		t.Errorf("MultiplyVec = %v", got)
	}
	if got := b.DivideVec(NewVec3(2, -5, 3)); got != NewVec3(2, 1, 2) {
		t.Errorf("DivideVec = %v", got)
	}
	if got := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)); got != NewVec3(0, 0, 1) {
		t.Errorf("Cross = %v", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 4, 0).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %v", n.Length())
	}
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Normalizing zero vector should return zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-3, 0).NearZero() {
		t.Error("Expected vector with one large component not to be near zero")
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(7, 8, 9)
	for axis, want := range map[Axis]float64{AxisX: 7, AxisY: 8, AxisZ: 9} {
		if got := v.Axis(axis); got != want {
			t.Errorf("Axis(%v) = %v, want %v", axis, got, want)
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 1, 1), NewVec3(0, 2, 0), 0.25)
	if got := ray.At(1.5); got != NewVec3(1, 4, 1) {
		t.Errorf("At(1.5) = %v", got)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %v", ray.Time)
	}
}
