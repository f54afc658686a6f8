package kg

import (
	"errors"
	"testing"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/distance"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
)

func newTestResolver(t *testing.T, g *Graph) *EntityResolver {
	t.Helper()
	opts := DefaultOptions()
	r, err := NewEntityResolver(g, embeddings.NewLexicalEmbedder(0), opts.EntityThreshold, opts.Precision)
	if err != nil {
		t.Fatalf("NewEntityResolver: %v", err)
	}
	return r
}

// embedWith returns the lazy question-embedding closure Resolve expects.
func embedWith(emb embeddings.Embedder, question string) func() ([]float32, error) {
	return func() ([]float32, error) {
		vec, err := emb.Embed(question)
		if err != nil {
			return nil, err
		}
		distance.Normalize(vec)
		return vec, nil
	}
}

func resolve(t *testing.T, r *EntityResolver, question string) (EntityRef, error) {
	t.Helper()
	return r.Resolve(question, embedWith(embeddings.NewLexicalEmbedder(0), question))
}

// Every entity name present verbatim in a question resolves to that entity
// with its correct type, regardless of case.
func TestResolveExactNameAnyCase(t *testing.T) {
	g := marvelGraph(t)
	r := newTestResolver(t, g)

	for _, ref := range g.Entities() {
		for _, question := range []string{
			"Tell me about " + ref.Name + " please",
			"TELL ME ABOUT " + ref.Name + " PLEASE",
		} {
			got, err := resolve(t, r, question)
			if err != nil {
				t.Errorf("Resolve(%q): %v", question, err)
				continue
			}
			if got.Name != ref.Name || got.Type != ref.Type {
				t.Errorf("Resolve(%q) = %v, want %v", question, got, ref)
			}
		}
	}
}

func TestResolvePunctuationInsensitive(t *testing.T) {
	g := marvelGraph(t)
	r := newTestResolver(t, g)

	// "spider man" without the hyphen still matches "Spider-Man".
	got, err := resolve(t, r, "what powers does spider man have?")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Spider-Man" {
		t.Errorf("got %q, want Spider-Man", got.Name)
	}

	// The dataset's non-breaking hyphen variant also matches.
	got, err = resolve(t, r, "what powers does Spider‑Man have?")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Spider-Man" {
		t.Errorf("got %q, want Spider-Man", got.Name)
	}
}

func TestResolveLongestSpanWins(t *testing.T) {
	g := NewGraph()
	for name, typ := range map[string]EntityType{
		"Jean":      Character,
		"Jean Grey": Character,
	} {
		if err := g.AddEntity(name, typ); err != nil {
			t.Fatal(err)
		}
	}
	r := newTestResolver(t, g)

	got, err := resolve(t, r, "What powers does Jean Grey have?")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Jean Grey" {
		t.Errorf("got %q, want the longer span Jean Grey", got.Name)
	}
}

func TestResolveTypePriorityBreaksTies(t *testing.T) {
	g := NewGraph()
	// Two matches of equal length, different types: the Character wins.
	if err := g.AddEntity("Storm", Character); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEntity("Blaze", Power); err != nil {
		t.Fatal(err)
	}
	r := newTestResolver(t, g)

	got, err := resolve(t, r, "does storm control blaze?")
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != Character || got.Name != "Storm" {
		t.Errorf("got %v, want the Character Storm", got)
	}
}

// With no verbatim name in the question, the embedding fallback picks the
// semantically closest entity.
func TestResolveEmbeddingFallback(t *testing.T) {
	g := marvelGraph(t)
	r := newTestResolver(t, g)

	got, err := resolve(t, r, "who has strength that is enhanced?")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Enhanced Strength" || got.Type != Power {
		t.Errorf("got %v, want the Power Enhanced Strength", got)
	}
}

func TestResolveUnknownEntity(t *testing.T) {
	g := marvelGraph(t)
	r := newTestResolver(t, g)

	_, err := resolve(t, r, "What powers does Batman have?")
	if err == nil {
		t.Fatal("expected an unresolved-entity error")
	}
	kind, ok := KindOf(err)
	if !ok || kind != FailUnresolvedEntity {
		t.Errorf("error kind = %v, want %v", kind, FailUnresolvedEntity)
	}
}

func TestResolveEmbedderFailure(t *testing.T) {
	g := marvelGraph(t)
	r := newTestResolver(t, g)

	embedErr := errors.New("endpoint down")
	_, err := r.Resolve("What powers does Batman have?", func() ([]float32, error) {
		return nil, embedErr
	})
	if err == nil {
		t.Fatal("expected an infrastructure error")
	}
	kind, _ := KindOf(err)
	if kind != FailInfrastructure {
		t.Errorf("error kind = %v, want %v", kind, FailInfrastructure)
	}
	if !errors.Is(err, embedErr) {
		t.Error("infrastructure error should wrap the embedder failure")
	}
}
