package kg

import (
	"log/slog"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/distance"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
)

// Options tunes the resolvers. The thresholds are heuristics calibrated
// against the bundled dataset, exposed as configuration rather than baked
// into the code.
type Options struct {
	// EntityThreshold is the minimum cosine similarity for the embedding
	// fallback to accept an entity match.
	EntityThreshold float64

	// IntentFloor is the minimum exemplar similarity below which a
	// Character question is reported as ambiguous.
	IntentFloor float64

	// IntentEpsilon is the score margin within which a near-tie between
	// intents falls back to the powers relation.
	IntentEpsilon float64

	// Precision selects how the resolver embedding matrices are stored.
	Precision distance.Precision
}

// DefaultOptions returns the thresholds the service ships with.
func DefaultOptions() Options {
	return Options{
		EntityThreshold: 0.45,
		IntentFloor:     0.15,
		IntentEpsilon:   0.02,
		Precision:       distance.Float32,
	}
}

// Engine wires the entity resolver, intent resolver, planner and executor
// into one question-answering pipeline. The embedding indexes are built
// once here and shared, read-only, across all concurrent Ask calls.
type Engine struct {
	graph    *Graph
	embedder embeddings.Embedder
	entities *EntityResolver
	intents  *IntentResolver
}

// NewEngine builds the resolver indexes for the given graph. This is the
// expensive step (one embedding call per entity and per exemplar); Ask
// itself embeds at most once per question.
func NewEngine(g *Graph, emb embeddings.Embedder, opts Options) (*Engine, error) {
	entities, err := NewEntityResolver(g, emb, opts.EntityThreshold, opts.Precision)
	if err != nil {
		return nil, err
	}
	intents, err := NewIntentResolver(emb, opts.IntentFloor, opts.IntentEpsilon, opts.Precision)
	if err != nil {
		return nil, err
	}
	return &Engine{
		graph:    g,
		embedder: emb,
		entities: entities,
		intents:  intents,
	}, nil
}

// Graph exposes the underlying store for the stats and neighborhood
// endpoints.
func (e *Engine) Graph() *Graph { return e.graph }

// Ask runs the full pipeline for one question. It never returns an error:
// failures at any stage are recovered into a QueryResult tagged with the
// failure kind, so callers get one uniform shape.
func (e *Engine) Ask(question string) QueryResult {
	// The question is embedded at most once, lazily, and the vector is
	// shared between the entity fallback and the intent comparison.
	var qvec []float32
	embedOnce := func() ([]float32, error) {
		if qvec == nil {
			vec, err := e.embedder.Embed(question)
			if err != nil {
				return nil, err
			}
			distance.Normalize(vec)
			qvec = vec
		}
		return qvec, nil
	}

	ref, err := e.entities.Resolve(question, embedOnce)
	if err != nil {
		slog.Debug("entity resolution failed", "question", question, "err", err)
		return failure(QueryPlan{}, err)
	}

	chain, target, dir, err := e.intents.Resolve(ref.Type, question, embedOnce)
	if err != nil {
		slog.Debug("intent resolution failed", "question", question, "entity", ref.Name, "err", err)
		return failure(QueryPlan{}, err)
	}

	plan, err := BuildPlan(ref.Name, ref.Type, chain, target, dir)
	if err != nil {
		return failure(QueryPlan{}, err)
	}

	result := Execute(plan, e.graph)
	slog.Debug("question answered",
		"question", question,
		"entity", ref.Name,
		"query_type", result.QueryType,
		"results", len(result.Results))
	return result
}
