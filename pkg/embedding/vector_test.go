package embedding

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	got := Normalize([]float32{3, 4})
	var magnitude float64
	for _, v := range got {
		magnitude += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(magnitude)-1) > 1e-6 {
		t.Errorf("normalized magnitude = %v, want 1", math.Sqrt(magnitude))
	}
	if math.Abs(float64(got[0])-0.6) > 1e-6 || math.Abs(float64(got[1])-0.8) > 1e-6 {
		t.Errorf("Normalize([3 4]) = %v, want [0.6 0.8]", got)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	got := Normalize([]float32{0, 0, 0})
	for _, v := range got {
		if v != 0 {
			t.Errorf("zero vector should stay zero, got %v", got)
		}
	}
}
