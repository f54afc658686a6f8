package kg

import (
	"fmt"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/distance"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
)

// similarityIndex holds L2-normalized embeddings for a fixed candidate
// set. It is built once at engine start and read-only afterwards, so
// scoring is safe from any number of goroutines.
type similarityIndex struct {
	precision distance.Precision
	f32       [][]float32
	f16       [][]uint16
	count     int
}

// buildSimilarityIndex embeds every candidate through emb, normalizes the
// vectors, and stores them at the requested precision.
func buildSimilarityIndex(emb embeddings.Embedder, candidates []string, precision distance.Precision) (*similarityIndex, error) {
	if !distance.KnownPrecision(precision) {
		return nil, fmt.Errorf("unsupported embedding precision %q", precision)
	}
	ix := &similarityIndex{precision: precision, count: len(candidates)}
	for _, candidate := range candidates {
		vec, err := emb.Embed(candidate)
		if err != nil {
			return nil, infrastructure(fmt.Sprintf("embedding candidate %q", candidate), err)
		}
		distance.Normalize(vec)
		if precision == distance.Float16 {
			ix.f16 = append(ix.f16, distance.QuantizeFloat16(vec))
		} else {
			ix.f32 = append(ix.f32, vec)
		}
	}
	return ix, nil
}

// score returns the cosine similarity between a normalized query vector
// and candidate i.
func (ix *similarityIndex) score(i int, query []float32) (float64, error) {
	if ix.precision == distance.Float16 {
		return distance.DotFloat16(query, ix.f16[i])
	}
	return distance.Dot(query, ix.f32[i])
}

// best returns the index and score of the highest-scoring candidate, or
// -1 when the index is empty. Ties keep the earlier candidate, so results
// are deterministic for a fixed candidate order.
func (ix *similarityIndex) best(query []float32) (int, float64, error) {
	bestIdx := -1
	bestScore := 0.0
	for i := 0; i < ix.count; i++ {
		s, err := ix.score(i, query)
		if err != nil {
			return -1, 0, err
		}
		if bestIdx == -1 || s > bestScore {
			bestIdx = i
			bestScore = s
		}
	}
	return bestIdx, bestScore, nil
}
