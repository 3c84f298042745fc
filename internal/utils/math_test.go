package utils

import (
	"testing"
)

func TestRandomFloat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomFloat()
		if v < 0.0 || v >= 1.0 {
			t.Fatalf("RandomFloat out of range: %f", v)
		}
	}
}

func TestRandomInt(t *testing.T) {
	min, max := 3, 9
	for i := 0; i < 1000; i++ {
		v := RandomInt(min, max)
		if v < min || v > max {
			t.Fatalf("RandomInt out of range: %d", v)
		}
	}

	// Degenerate range returns min
	if v := RandomInt(5, 5); v != 5 {
		t.Errorf("Expected 5, got %d", v)
	}
	if v := RandomInt(7, 2); v != 7 {
		t.Errorf("Expected min when min > max, got %d", v)
	}
}

func TestRandomWear(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomWear()
		if v < 0.0 || v >= 1.0 {
			t.Fatalf("RandomWear out of range: %f", v)
		}
	}
}
