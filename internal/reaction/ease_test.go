package reaction

import "testing"

func TestElasticEaseBoundaries(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := ElasticEase(tt.in); got != tt.want {
			t.Fatalf("ElasticEase(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if mid := ElasticEase(0.5); mid < 0 || mid > 1.5 {
		t.Fatalf("expected ElasticEase(0.5) in [0, 1.5], got %v", mid)
	}
}

func TestElasticEaseOvershoots(t *testing.T) {
	if got := ElasticEase(0.2); got <= 1 {
		t.Fatalf("expected overshoot above 1 at t=0.2, got %v", got)
	}
	for i := 1; i < 100; i++ {
		v := ElasticEase(float64(i) / 100)
		if v < 0 || v > 1.5 {
			t.Fatalf("ElasticEase(%v) = %v escaped [0, 1.5]", float64(i)/100, v)
		}
	}
}
