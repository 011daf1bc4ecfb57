package vector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func approxVec(a, b Vector2) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func TestArithmetic(t *testing.T) {
	a := New(1, 2)
	b := New(3, -4)

	if got := a.Add(b); !got.Equal(New(4, -2)) {
		t.Errorf("Add = %v, want (4, -2)", got)
	}
	if got := a.Sub(b); !got.Equal(New(-2, 6)) {
		t.Errorf("Sub = %v, want (-2, 6)", got)
	}
	if got := a.Scale(2.5); !got.Equal(New(2.5, 5)) {
		t.Errorf("Scale = %v, want (2.5, 5)", got)
	}
	if !a.Equal(New(1, 2)) {
		t.Errorf("operands must not be mutated, a = %v", a)
	}
}

func TestDiv(t *testing.T) {
	got, err := New(3, 6).Div(3)
	if err != nil {
		t.Fatalf("Div(3) error: %v", err)
	}
	if !got.Equal(New(1, 2)) {
		t.Errorf("Div(3) = %v, want (1, 2)", got)
	}

	_, err = New(3, 6).Div(0)
	if !errors.Is(err, ErrDivideByZero) {
		t.Errorf("Div(0) error = %v, want ErrDivideByZero", err)
	}
}

func TestInvertTwiceIsIdentity(t *testing.T) {
	for _, v := range []Vector2{New(0, 0), New(1, -2), New(-3.5, 1e9)} {
		if got := v.Invert().Invert(); !got.Equal(v) {
			t.Errorf("%v.Invert().Invert() = %v", v, got)
		}
	}
}

func TestMagnitude(t *testing.T) {
	v := New(3, 4)
	if got := v.Magnitude(); !approx(got, 5) {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := v.SquareMagnitude(); got != 25 {
		t.Errorf("SquareMagnitude = %v, want 25", got)
	}
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2
	}{
		{"axis", New(10, 0)},
		{"diagonal", New(-3, 4)},
		{"tiny", New(1e-6, 2e-6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Normalise().Magnitude(); !approx(got, 1) {
				t.Errorf("|Normalise(%v)| = %v, want 1", tt.v, got)
			}
		})
	}

	if got := Zero.Normalise(); !got.IsZero() {
		t.Errorf("Normalise(zero) = %v, want zero", got)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2
		rad  float64
		want Vector2
	}{
		{"quarter turn", New(1, 0), math.Pi / 2, New(0, 1)},
		{"half turn", New(1, 2), math.Pi, New(-1, -2)},
		{"zero", New(5, 7), 0, New(5, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Rotate(tt.rad); !approxVec(got, tt.want) {
				t.Errorf("Rotate = %v, want %v", got, tt.want)
			}
		})
	}

	if got := New(0, 1).RotateDegrees(90); !approxVec(got, New(-1, 0)) {
		t.Errorf("RotateDegrees(90) = %v, want (-1, 0)", got)
	}
}

func TestDotCross(t *testing.T) {
	pairs := [][2]Vector2{
		{New(1, 2), New(3, 4)},
		{New(-1, 0.5), New(7, -2)},
		{New(0, 0), New(1, 1)},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if Dot(a, b) != Dot(b, a) {
			t.Errorf("Dot not symmetric for %v, %v", a, b)
		}
		if Cross(a, b) != -Cross(b, a) {
			t.Errorf("Cross not antisymmetric for %v, %v", a, b)
		}
	}

	if got := Cross(New(1, 0), New(0, 1)); got != 1 {
		t.Errorf("Cross(x, y) = %v, want 1", got)
	}
	if got := Dot(New(1, 2), New(3, 4)); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
}

func TestAssignForms(t *testing.T) {
	v := New(1, 1)
	v.AddAssign(New(2, 3))
	v.SubAssign(New(1, 0))
	v.ScaleAssign(2)
	if !v.Equal(New(4, 8)) {
		t.Errorf("v = %v, want (4, 8)", v)
	}
}
