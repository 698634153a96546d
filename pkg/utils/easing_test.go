package utils

import (
	"math"
	"testing"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875},
		{"越界截断", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEaseInOutSine(t *testing.T) {
	if v := EaseInOutSine(0); math.Abs(v) > 1e-9 {
		t.Errorf("EaseInOutSine(0) = %v, 期望 0", v)
	}
	if v := EaseInOutSine(0.5); math.Abs(v-0.5) > 1e-9 {
		t.Errorf("EaseInOutSine(0.5) = %v, 期望 0.5", v)
	}
	if v := EaseInOutSine(1); math.Abs(v-1) > 1e-9 {
		t.Errorf("EaseInOutSine(1) = %v, 期望 1", v)
	}
}

func TestLerp(t *testing.T) {
	if Lerp(10, 20, 0.5) != 15 {
		t.Errorf("Lerp(10, 20, 0.5) = %v, 期望 15", Lerp(10, 20, 0.5))
	}
}
