package scoring

import "math"

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// and zero-magnitude inputs yield 0; callers enforce dimensions upstream.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Similarities computes the cosine similarity of the query against every
// catalog vector, in catalog order.
func Similarities(query []float32, vectors [][]float32) []float64 {
	sims := make([]float64, len(vectors))
	for i, v := range vectors {
		sims[i] = Cosine(query, v)
	}
	return sims
}
