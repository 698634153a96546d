package utils

import (
	"math/rand"
	"testing"
)

func TestIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"完全重叠", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, true},
		{"部分重叠", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"包含", Rect{0, 0, 100, 100}, Rect{40, 40, 5, 5}, true},
		{"右边缘相接", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"下边缘相接", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"X轴分离", Rect{0, 0, 10, 10}, Rect{20, 0, 10, 10}, false},
		{"Y轴分离", Rect{0, 0, 10, 10}, Rect{0, 20, 10, 10}, false},
		{"仅X轴重叠", Rect{0, 0, 10, 10}, Rect{5, 30, 10, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.a, tt.b); got != tt.expected {
				t.Errorf("Intersects(%v, %v) = %v, 期望 %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

// TestIntersectsSymmetricAndReflexive 对称性与自反性
func TestIntersectsSymmetricAndReflexive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := Rect{rng.Float64() * 100, rng.Float64() * 100, 1 + rng.Float64()*30, 1 + rng.Float64()*30}
		b := Rect{rng.Float64() * 100, rng.Float64() * 100, 1 + rng.Float64()*30, 1 + rng.Float64()*30}

		if Intersects(a, b) != Intersects(b, a) {
			t.Fatalf("not symmetric for %v / %v", a, b)
		}
		if !Intersects(a, a) {
			t.Fatalf("rect %v should intersect itself", a)
		}
	}
}

func TestRectScale(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 40}
	s := r.Scale(2)

	if s.W != 40 || s.H != 80 {
		t.Errorf("Expected 40x80, got %vx%v", s.W, s.H)
	}
	cx, cy := r.Center()
	scx, scy := s.Center()
	if cx != scx || cy != scy {
		t.Errorf("Scale should keep center, got (%v,%v) vs (%v,%v)", scx, scy, cx, cy)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 {
		t.Error("Clamp below range should return lo")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Error("Clamp above range should return hi")
	}
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp in range should return v")
	}
}
