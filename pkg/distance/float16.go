package distance

import (
	"errors"

	"github.com/x448/float16"
)

// QuantizeFloat16 converts a float32 vector to IEEE 754 half precision.
// Embedding values live in [-1, 1] after normalization, well inside the
// float16 range, so the only loss is mantissa precision.
func QuantizeFloat16(v []float32) []uint16 {
	out := make([]uint16, len(v))
	for i, x := range v {
		out[i] = float16.Fromfloat32(x).Bits()
	}
	return out
}

// DequantizeFloat16 converts a half-precision vector back to float32.
func DequantizeFloat16(v []uint16) []float32 {
	out := make([]float32, len(v))
	for i, bits := range v {
		out[i] = float16.Frombits(bits).Float32()
	}
	return out
}

// DotFloat16 computes the dot product between a float32 query vector and a
// half-precision stored vector, converting element-wise.
func DotFloat16(query []float32, stored []uint16) (float64, error) {
	if len(query) != len(stored) {
		return 0, errors.New("dot product: vectors must have the same length")
	}
	var sum float32
	for i := range query {
		sum += query[i] * float16.Frombits(stored[i]).Float32()
	}
	return float64(sum), nil
}
