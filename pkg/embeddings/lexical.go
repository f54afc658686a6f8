package embeddings

import (
	"hash/fnv"
	"math"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/textanalyzer"
)

// DefaultLexicalDimensions is the hash-space size of the lexical embedder.
// Large enough that the few hundred distinct stems in this domain rarely
// collide.
const DefaultLexicalDimensions = 2048

// LexicalEmbedder is a deterministic in-process embedder: feature hashing
// over stemmed, stop-word-filtered tokens, L2-normalized. Two texts score
// high exactly when they share content words, which is what the substring
// fallback and the intent exemplars need. It is the default provider, so
// resolving a question never blocks on I/O.
type LexicalEmbedder struct {
	Dimensions int
}

// NewLexicalEmbedder returns a lexical embedder with the given hash-space
// size. Non-positive dimensions fall back to the default.
func NewLexicalEmbedder(dimensions int) *LexicalEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultLexicalDimensions
	}
	return &LexicalEmbedder{Dimensions: dimensions}
}

// Embed implements the Embedder interface. The result is unit-length
// unless the text contains no content tokens, in which case it is the
// zero vector.
func (e *LexicalEmbedder) Embed(text string) ([]float32, error) {
	vec := make([]float32, e.Dimensions)
	tokens := textanalyzer.Analyze(text)
	if len(tokens) == 0 {
		return vec, nil
	}
	for _, token := range tokens {
		bucket, sign := hashToken(token, e.Dimensions)
		vec[bucket] += sign
	}
	normalize(vec)
	return vec, nil
}

// hashToken maps a token to a bucket and a +/-1 sign. The sign bit keeps
// colliding tokens from always reinforcing each other.
func hashToken(token string, dimensions int) (int, float32) {
	h := fnv.New64a()
	h.Write([]byte(token))
	sum := h.Sum64()
	bucket := int(sum % uint64(dimensions))
	sign := float32(1)
	if sum&(1<<63) != 0 {
		sign = -1
	}
	return bucket, sign
}

func normalize(vec []float32) {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
}
