package kg

import (
	"strings"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/distance"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
)

// entityKey caches the match forms of one entity so the per-question scan
// does no normalization work.
type entityKey struct {
	ref   EntityRef
	norm  string // NormalizeName form, hyphens kept
	loose string // norm with hyphens spaced and punctuation dropped
}

// EntityResolver maps a free-text question to exactly one known entity.
// Exact substring matching runs first and is authoritative; the embedding
// index is only consulted when no entity name appears verbatim in the
// question.
type EntityResolver struct {
	keys      []entityKey
	index     *similarityIndex
	threshold float64
}

// NewEntityResolver embeds every entity name in g and builds the fallback
// similarity index. The candidate order follows g.Entities(), which is
// fixed, so tie-breaks are stable across restarts.
func NewEntityResolver(g *Graph, emb embeddings.Embedder, threshold float64, precision distance.Precision) (*EntityResolver, error) {
	refs := g.Entities()
	keys := make([]entityKey, len(refs))
	names := make([]string, len(refs))
	for i, ref := range refs {
		norm := NormalizeName(ref.Name)
		keys[i] = entityKey{ref: ref, norm: norm, loose: loosen(norm)}
		names[i] = ref.Name
	}
	index, err := buildSimilarityIndex(emb, names, precision)
	if err != nil {
		return nil, err
	}
	return &EntityResolver{keys: keys, index: index, threshold: threshold}, nil
}

// Resolve returns the entity the question is about. embedQuestion supplies
// the question's normalized embedding lazily, so exact matches never pay
// for an embedding call.
func (r *EntityResolver) Resolve(question string, embedQuestion func() ([]float32, error)) (EntityRef, error) {
	if ref, ok := r.exactMatch(question); ok {
		return ref, nil
	}
	qvec, err := embedQuestion()
	if err != nil {
		return EntityRef{}, infrastructure("embedding question", err)
	}
	i, score, err := r.index.best(qvec)
	if err != nil {
		return EntityRef{}, infrastructure("scoring entity candidates", err)
	}
	if i < 0 || score < r.threshold {
		return EntityRef{}, unresolvedEntity("no known entity matched the question (best score %.2f, threshold %.2f)", score, r.threshold)
	}
	return r.keys[i].ref, nil
}

// exactMatch scans every entity name for a normalized substring hit in the
// question. Ties go to the longest span first ("Jean Grey-Summers" beats
// "Jean Grey"), then to the higher-priority type, then to scan order.
func (r *EntityResolver) exactMatch(question string) (EntityRef, bool) {
	qNorm := NormalizeName(question)
	qLoose := loosen(qNorm)
	best := -1
	bestLen := 0
	for i, key := range r.keys {
		hit := strings.Contains(qNorm, key.norm)
		if !hit && key.loose != "" {
			hit = strings.Contains(qLoose, key.loose)
		}
		if !hit {
			continue
		}
		switch {
		case best < 0, len(key.norm) > bestLen:
			best, bestLen = i, len(key.norm)
		case len(key.norm) == bestLen && typePriority[key.ref.Type] < typePriority[r.keys[best].ref.Type]:
			best = i
		}
	}
	if best < 0 {
		return EntityRef{}, false
	}
	return r.keys[best].ref, true
}

// loosen strips punctuation from an already-normalized string, treating
// hyphens as spaces, so "spider man" matches "spider-man" and "what powers
// does storm have?" matches "storm".
func loosen(norm string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == '-':
			return ' '
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			return r
		}
		return -1
	}, norm)
	return strings.Join(strings.Fields(mapped), " ")
}
