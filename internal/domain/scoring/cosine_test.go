package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCosine_IdenticalVectors(t *testing.T) {
	a := []float32{1, 2, 3}
	if got := Cosine(a, a); !almostEqual(got, 1.0) {
		t.Errorf("Cosine(a, a) = %v, want 1.0", got)
	}
}

func TestCosine_ScaledVectors(t *testing.T) {
	a := []float32{1, 2}
	b := []float32{2, 4}
	if got := Cosine(a, b); !almostEqual(got, 1.0) {
		t.Errorf("Cosine(a, 2a) = %v, want 1.0", got)
	}
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	if got := Cosine(a, b); !almostEqual(got, 0) {
		t.Errorf("Cosine(orthogonal) = %v, want 0", got)
	}
}

func TestCosine_OppositeVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}
	if got := Cosine(a, b); !almostEqual(got, -1.0) {
		t.Errorf("Cosine(opposite) = %v, want -1.0", got)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	a := []float32{0, 0}
	b := []float32{1, 1}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(zero, b) = %v, want 0", got)
	}
	if got := Cosine(b, a); got != 0 {
		t.Errorf("Cosine(b, zero) = %v, want 0", got)
	}
}

func TestCosine_MismatchedLengths(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(mismatched) = %v, want 0", got)
	}
}

func TestSimilarities_CatalogOrder(t *testing.T) {
	query := []float32{1, 0}
	vectors := [][]float32{
		{1, 0},
		{0, 1},
		{1, 1},
	}

	sims := Similarities(query, vectors)
	if len(sims) != 3 {
		t.Fatalf("len(sims) = %d, want 3", len(sims))
	}
	if !almostEqual(sims[0], 1.0) {
		t.Errorf("sims[0] = %v, want 1.0", sims[0])
	}
	if !almostEqual(sims[1], 0) {
		t.Errorf("sims[1] = %v, want 0", sims[1])
	}
	if !almostEqual(sims[2], 1/math.Sqrt2) {
		t.Errorf("sims[2] = %v, want %v", sims[2], 1/math.Sqrt2)
	}
}

func TestSimilarities_Empty(t *testing.T) {
	sims := Similarities([]float32{1}, nil)
	if len(sims) != 0 {
		t.Errorf("len(sims) = %d, want 0", len(sims))
	}
}
