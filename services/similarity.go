package services

import "math"

// CosineSimilarity returns the cosine similarity of two vectors in [-1, 1].
// Mismatched lengths, empty vectors, and zero-magnitude vectors all score 0 so
// a sentinel embedding can never outrank a real one and ranking never sees NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
