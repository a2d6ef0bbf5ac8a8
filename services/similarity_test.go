package services

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdentity(t *testing.T) {
	v := []float32{0.5, -1.25, 3.0, 0.75}
	got := CosineSimilarity(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("similarity(v, v) = %v, want 1", got)
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 0}, {0, 1}},
		{{1, 2, 3}, {-1, -2, -3}},
		{{0.1, 0.9}, {0.9, 0.1}},
		{{5, 5, 5}, {1, 2, 3}},
	}
	for _, pair := range pairs {
		got := CosineSimilarity(pair[0], pair[1])
		if got < -1.0-1e-9 || got > 1.0+1e-9 {
			t.Errorf("similarity(%v, %v) = %v, out of [-1, 1]", pair[0], pair[1], got)
		}
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	got := CosineSimilarity([]float32{1, 2}, []float32{-1, -2})
	if math.Abs(got+1.0) > 1e-9 {
		t.Fatalf("similarity of opposite vectors = %v, want -1", got)
	}
}

func TestCosineSimilarityGuards(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{"both empty", nil, nil},
		{"one empty", []float32{1, 2}, nil},
		{"mismatched lengths", []float32{1, 2, 3}, []float32{1, 2}},
		{"zero vector", []float32{1, 2}, []float32{0, 0}},
		{"both zero", []float32{0, 0}, []float32{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("similarity = %v, want 0", got)
			}
		})
	}
}
