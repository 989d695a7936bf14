package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(QuarterTurnY(1))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}

	got := m.TransformPoint(Vec3{1, 2, 3})
	if want := (Vec3{6, 12, 18}); got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestScale(t *testing.T) {
	got := Scale(2).TransformPoint(Vec3{1, -2, 3})
	if want := (Vec3{2, -4, 6}); got != want {
		t.Errorf("Scale: got %v, want %v", got, want)
	}
}

func TestQuarterTurnY(t *testing.T) {
	tests := []struct {
		turns int
		want  Vec3
	}{
		{0, Vec3{1, 0, 0}},
		{1, Vec3{0, 0, -1}},
		{2, Vec3{-1, 0, 0}},
		{3, Vec3{0, 0, 1}},
		{4, Vec3{1, 0, 0}},
		{-1, Vec3{0, 0, 1}},
		{-6, Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		got := QuarterTurnY(tt.turns).TransformPoint(Vec3{1, 0, 0})
		// Exact comparison: quarter turns must not introduce rounding noise
		if got != tt.want {
			t.Errorf("QuarterTurnY(%d) * (1,0,0) = %v, want %v", tt.turns, got, tt.want)
		}
	}
}

func TestQuarterTurnYComposes(t *testing.T) {
	if got := QuarterTurnY(1).Mul(QuarterTurnY(3)); got != Identity() {
		t.Errorf("R(1) * R(3) = %v, want identity", got)
	}
	if got, want := QuarterTurnY(1).Mul(QuarterTurnY(1)), QuarterTurnY(2); got != want {
		t.Errorf("R(1) * R(1) = %v, want %v", got, want)
	}
}

func TestModelMatrix(t *testing.T) {
	m := ModelMatrix(Vec3{10, 0, 0}, 1, 2)
	got := m.TransformPoint(Vec3{1, 1, 0})
	// scale -> (2,2,0), rotate -> (0,2,-2), translate -> (10,2,-2)
	if want := (Vec3{10, 2, -2}); got != want {
		t.Errorf("ModelMatrix: got %v, want %v", got, want)
	}
}
