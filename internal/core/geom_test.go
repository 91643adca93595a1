package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if r.Right() != 40 {
		t.Errorf("Right() = %d, expected 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, expected 60", r.Bottom())
	}
}

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"touching edge", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, true},
		{"separate horizontal", Box{0, 0, 10, 10}, Box{11, 0, 10, 10}, false},
		{"separate vertical", Box{0, 0, 10, 10}, Box{0, 11, 10, 10}, false},
		{"contained", Box{0, 0, 100, 100}, Box{40, 40, 5, 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tt.expected)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.expected {
				t.Errorf("Overlaps() reversed = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBoxClosestPoint(t *testing.T) {
	b := Box{X: 10, Y: 10, W: 20, H: 10}

	tests := []struct {
		name   string
		x, y   float64
		cx, cy float64
	}{
		{"inside", 15, 15, 15, 15},
		{"left", 0, 15, 10, 15},
		{"above right", 40, 0, 30, 10},
		{"below", 20, 50, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := b.ClosestPoint(tt.x, tt.y)
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("ClosestPoint(%v, %v) = (%v, %v), expected (%v, %v)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
		})
	}
}

func TestBoxCenter(t *testing.T) {
	x, y := Box{X: 10, Y: 20, W: 30, H: 10}.Center()
	if x != 25 || y != 25 {
		t.Errorf("Center() = (%v, %v), expected (25, 25)", x, y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v, expected 0", got)
	}
}

func TestSignAndFinite(t *testing.T) {
	if Sign(-2) != -1 || Sign(0) != 1 || Sign(3) != 1 {
		t.Error("Sign() returned an unexpected value")
	}
	if Finite(math.NaN()) || Finite(math.Inf(1)) || !Finite(1) {
		t.Error("Finite() returned an unexpected value")
	}
}
