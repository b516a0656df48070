package embedding

import "math"

// Normalize scales a vector to unit length. Cosine similarity is computed as
// a plain inner product everywhere in this system, which is only correct when
// both sides have magnitude 1.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
