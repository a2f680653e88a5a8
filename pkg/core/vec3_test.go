package core

import (
	"math"
	"testing"
)

func TestVec3_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		axis     Vec3
		angle    float64
		expected Vec3
	}{
		{
			name:     "No rotation",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 0, 1),
			angle:    0,
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "90 degree rotation around Z axis",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 0, 1),
			angle:    math.Pi / 2,
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "90 degree rotation around Y axis",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 1, 0),
			angle:    math.Pi / 2,
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "90 degree rotation around X axis",
			vector:   NewVec3(0, 1, 0),
			axis:     NewVec3(1, 0, 0),
			angle:    math.Pi / 2,
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "180 degree rotation around Y axis",
			vector:   NewVec3(1, 0, 0),
			axis:     NewVec3(0, 1, 0),
			angle:    math.Pi,
			expected: NewVec3(-1, 0, 0),
		},
		{
			name:     "Rotation preserves vectors parallel to the axis",
			vector:   NewVec3(0, 2, 0),
			axis:     NewVec3(0, 1, 0),
			angle:    math.Pi / 3,
			expected: NewVec3(0, 2, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Rotate(tt.axis, tt.angle)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_RotatePreservesLength(t *testing.T) {
	v := NewVec3(1.5, -2.25, 0.75)
	axis := NewVec3(1, 1, 1).Normalize()

	rotated := v.Rotate(axis, 1.234)

	const tolerance = 1e-9
	if math.Abs(rotated.Length()-v.Length()) > tolerance {
		t.Errorf("Expected rotation to preserve length %v, got %v", v.Length(), rotated.Length())
	}
}

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Add(b); got != NewVec3(5, -3, 9) {
		t.Errorf("Add: expected (5,-3,9), got %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, 7, -3) {
		t.Errorf("Subtract: expected (-3,7,-3), got %v", got)
	}
	if got := a.Multiply(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Multiply: expected (2,4,6), got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, -10, 18) {
		t.Errorf("MultiplyVec: expected (4,-10,18), got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: expected 12, got %v", got)
	}
	if got := a.Negate(); got != NewVec3(-1, -2, -3) {
		t.Errorf("Negate: expected (-1,-2,-3), got %v", got)
	}
}

func TestVec3_CrossProduct(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := NewVec3(0, 0, 1)

	if got := x.Cross(y); got != z {
		t.Errorf("Expected x cross y = z, got %v", got)
	}
	if got := y.Cross(z); got != x {
		t.Errorf("Expected y cross z = x, got %v", got)
	}
	if got := z.Cross(x); got != y {
		t.Errorf("Expected z cross x = y, got %v", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	unit := v.Normalize()

	const tolerance = 1e-9
	if math.Abs(unit.Length()-1.0) > tolerance {
		t.Errorf("Expected unit length, got %v", unit.Length())
	}
	if unit.Subtract(NewVec3(0.6, 0.8, 0)).Length() > tolerance {
		t.Errorf("Expected (0.6,0.8,0), got %v", unit)
	}

	// Zero vector normalizes to zero rather than NaN
	zero := NewVec3(0, 0, 0).Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5)
	clamped := v.Clamp(0, 1)

	if clamped != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0,0.5,1), got %v", clamped)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))

	if got := ray.At(0); got != NewVec3(1, 2, 3) {
		t.Errorf("Expected origin at t=0, got %v", got)
	}
	if got := ray.At(2.5); got != NewVec3(1, 2, 0.5) {
		t.Errorf("Expected (1,2,0.5) at t=2.5, got %v", got)
	}
}
