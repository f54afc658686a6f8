// Package distance provides the vector-similarity kernels used by the
// entity and intent resolvers.
//
// Candidate embeddings are L2-normalized once at index build time, so
// cosine similarity reduces to a dot product at query time. The float32
// kernel is dispatched at startup: on CPUs with AVX2 the Gonum BLAS
// implementation is used (Gonum routes Sdot through SIMD kernels), with a
// plain Go loop as the portable fallback.
package distance

import (
	"errors"
	"log/slog"
	"math"

	"github.com/klauspost/cpuid/v2"
	"gonum.org/v1/gonum/blas/gonum"
)

// Precision selects how an embedding matrix is stored in memory.
type Precision string

const (
	// Float32 keeps vectors at full single precision.
	Float32 Precision = "float32"
	// Float16 halves the memory footprint of precomputed matrices at a
	// small accuracy cost. Scoring converts element-wise, no assembly.
	Float16 Precision = "float16"
)

// KnownPrecision reports whether p is a supported storage precision.
func KnownPrecision(p Precision) bool {
	return p == Float32 || p == Float16
}

// DotFunc computes the dot product of two equal-length float32 vectors.
type DotFunc func(v1, v2 []float32) (float64, error)

var dotF32 DotFunc = dotProductGo

func init() {
	if cpuid.CPU.Has(cpuid.AVX2) {
		dotF32 = dotProductGonum
		slog.Debug("distance kernel: gonum BLAS (AVX2 detected)")
		return
	}
	slog.Debug("distance kernel: pure Go fallback")
}

// Dot returns the dot product of v1 and v2 using the dispatched kernel.
// For unit vectors this equals the cosine similarity.
func Dot(v1, v2 []float32) (float64, error) {
	return dotF32(v1, v2)
}

// CosineSimilarity returns the cosine of the angle between v1 and v2,
// without requiring the inputs to be normalized. A zero vector yields 0.
func CosineSimilarity(v1, v2 []float32) (float64, error) {
	dot, err := dotF32(v1, v2)
	if err != nil {
		return 0, err
	}
	n1 := norm(v1)
	n2 := norm(v2)
	if n1 == 0 || n2 == 0 {
		return 0, nil
	}
	return dot / (n1 * n2), nil
}

// Normalize scales v to unit length in place and returns it. A zero
// vector is returned unchanged.
func Normalize(v []float32) []float32 {
	n := norm(v)
	if n == 0 {
		return v
	}
	inv := float32(1.0 / n)
	for i := range v {
		v[i] *= inv
	}
	return v
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// --- Reference implementation (pure Go) ---

func dotProductGo(v1, v2 []float32) (float64, error) {
	if len(v1) != len(v2) {
		return 0, errors.New("dot product: vectors must have the same length")
	}
	var sum float32
	for i := range v1 {
		sum += v1[i] * v2[i]
	}
	return float64(sum), nil
}

// --- Gonum BLAS implementation ---

var gonumEngine = gonum.Implementation{}

func dotProductGonum(v1, v2 []float32) (float64, error) {
	if len(v1) != len(v2) {
		return 0, errors.New("dot product: vectors must have the same length")
	}
	return float64(gonumEngine.Sdot(len(v1), v1, 1, v2, 1)), nil
}
