package inference

import (
	"fmt"
	"math"
)

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero-magnitude vector yields 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same length: %d != %d", len(a), len(b))
	}

	var dot, aMag, bMag float64
	for i := range a {
		dot += a[i] * b[i]
		aMag += a[i] * a[i]
		bMag += b[i] * b[i]
	}

	if aMag == 0 || bMag == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(aMag) * math.Sqrt(bMag)), nil
}
