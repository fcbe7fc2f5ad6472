package search

import "math"

// cosineSimilarity returns dot(a,b)/(|a|*|b|). A zero or mismatched-length
// vector scores 0, so a degenerate embedding is treated as "no match" rather
// than propagating NaN.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, aNorm, bNorm float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		aNorm += float64(a[i]) * float64(a[i])
		bNorm += float64(b[i]) * float64(b[i])
	}
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	return dot / (math.Sqrt(aNorm) * math.Sqrt(bNorm))
}
