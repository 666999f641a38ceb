package utils

import "math"

// CosineSimilarity computes dot(a,b) / (|a|*|b|). The dot product runs over
// the shared prefix when lengths differ, while magnitudes cover each full
// vector, so extra dimensions dilute rather than inflate the score.
// A zero-magnitude vector yields 0 rather than an error, so an empty or
// all-zero embedding never poisons a ranking pass with NaN.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}

	var magA, magB float64
	for _, v := range a {
		magA += float64(v) * float64(v)
	}
	for _, v := range b {
		magB += float64(v) * float64(v)
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
