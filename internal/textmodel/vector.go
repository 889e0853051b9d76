// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textmodel

import "math"

// Vector is a dense term-weight vector in a model's fitted feature space.
// A nil Vector means "no profile".
type Vector []float64

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b. It returns 0 when the
// vectors differ in length, either has zero norm, or the result is not finite.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	return sim
}

// Mean returns the element-wise average of vs, which must share a length.
func Mean(vs []Vector) Vector {
	if len(vs) == 0 {
		return nil
	}
	mean := make(Vector, len(vs[0]))
	for _, v := range vs {
		for i, x := range v {
			mean[i] += x
		}
	}
	n := float64(len(vs))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}

func (v Vector) normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] /= norm
	}
}
