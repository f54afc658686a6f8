package kg

import (
	"errors"
	"slices"
	"testing"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(marvelGraph(t), embeddings.NewLexicalEmbedder(0), DefaultOptions())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestAskCharacterPowers(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("What powers does Spider-Man have?")
	if !result.Success {
		t.Fatalf("expected success, got %q (%s)", result.Error, result.ErrorKind)
	}

	wantPlan := QueryPlan{
		StartEntity:   "Spider-Man",
		StartType:     Character,
		RelationChain: []RelationLabel{PossessesPower},
		TargetType:    Power,
		Direction:     Forward,
	}
	if result.Plan.StartEntity != wantPlan.StartEntity ||
		result.Plan.StartType != wantPlan.StartType ||
		!slices.Equal(result.Plan.RelationChain, wantPlan.RelationChain) ||
		result.Plan.TargetType != wantPlan.TargetType ||
		result.Plan.Direction != wantPlan.Direction {
		t.Errorf("plan = %+v, want %+v", result.Plan, wantPlan)
	}

	want := []string{"Superhuman Agility", "Enhanced Strength"}
	if !slices.Equal(result.Results, want) {
		t.Errorf("results = %v, want %v", result.Results, want)
	}
	if result.QueryType != "Character → Power" {
		t.Errorf("query type = %q", result.QueryType)
	}
}

func TestAskGeneConfers(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("What powers does Regenerative Mutation confer?")
	if !result.Success {
		t.Fatalf("expected success, got %q (%s)", result.Error, result.ErrorKind)
	}
	if result.Plan.StartType != Gene || !slices.Equal(result.Plan.RelationChain, []RelationLabel{Confers}) || result.Plan.TargetType != Power {
		t.Errorf("plan = %+v, want Gene -[CONFERS]-> Power", result.Plan)
	}
	want := []string{"Accelerated Healing", "Enhanced Senses"}
	if !slices.Equal(result.Results, want) {
		t.Errorf("results = %v, want %v", result.Results, want)
	}
}

func TestAskTeamMembers(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("What characters belong to X-Men?")
	if !result.Success {
		t.Fatalf("expected success, got %q (%s)", result.Error, result.ErrorKind)
	}
	if result.Plan.StartType != Team || !slices.Equal(result.Plan.RelationChain, []RelationLabel{MemberOf}) || result.Plan.Direction != Reverse {
		t.Errorf("plan = %+v, want Team <-[MEMBER_OF]- Character", result.Plan)
	}
	want := []string{"Wolverine", "Cyclops", "Storm", "Jean Grey"}
	if !slices.Equal(result.Results, want) {
		t.Errorf("results = %v, want %v", result.Results, want)
	}
}

func TestAskPowerHolders(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("Which heroes have Enhanced Strength?")
	if !result.Success {
		t.Fatalf("expected success, got %q (%s)", result.Error, result.ErrorKind)
	}
	if result.Plan.StartType != Power || result.Plan.Direction != Reverse {
		t.Errorf("plan = %+v, want a reverse Power lookup", result.Plan)
	}
	if !slices.Equal(result.Results, []string{"Spider-Man"}) {
		t.Errorf("results = %v, want [Spider-Man]", result.Results)
	}
}

func TestAskCharacterTeam(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("What team does Wolverine belong to?")
	if !result.Success {
		t.Fatalf("expected success, got %q (%s)", result.Error, result.ErrorKind)
	}
	if !slices.Equal(result.Results, []string{"X-Men"}) {
		t.Errorf("results = %v, want [X-Men]", result.Results)
	}
}

func TestAskCharacterGene(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("Which gene mutation does Storm carry?")
	if !result.Success {
		t.Fatalf("expected success, got %q (%s)", result.Error, result.ErrorKind)
	}
	if !slices.Equal(result.Results, []string{"Weather Manipulation"}) {
		t.Errorf("results = %v, want [Weather Manipulation]", result.Results)
	}
}

func TestAskUnknownEntity(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("What powers does Batman have?")
	if result.Success {
		t.Fatalf("expected failure, got results %v", result.Results)
	}
	if result.ErrorKind != FailUnresolvedEntity {
		t.Errorf("error kind = %v, want %v", result.ErrorKind, FailUnresolvedEntity)
	}
	if result.Results == nil || len(result.Results) != 0 {
		t.Errorf("failed results must be an empty non-nil slice, got %v", result.Results)
	}
	if result.QueryType != "Unknown" {
		t.Errorf("query type = %q, want Unknown", result.QueryType)
	}
}

func TestAskAmbiguousIntent(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Ask("Tell me everything regarding Wolverine")
	if result.Success {
		t.Fatalf("expected failure, got results %v", result.Results)
	}
	if result.ErrorKind != FailAmbiguousIntent {
		t.Errorf("error kind = %v, want %v", result.ErrorKind, FailAmbiguousIntent)
	}
}

func TestAskEmbedderFailureIsInfrastructure(t *testing.T) {
	engine, err := NewEngine(marvelGraph(t), embeddings.NewLexicalEmbedder(0), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	engine.embedder = failingEmbedder{}

	// Exact match plus fixed routing never embeds, so it still works.
	result := engine.Ask("Who belongs to X-Men?")
	if !result.Success {
		t.Fatalf("exact-match question with fixed routing should not need the embedder, got %q", result.Error)
	}

	// A fallback question does, and the failure is tagged infrastructure.
	result = engine.Ask("What powers does Batman have?")
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorKind != FailInfrastructure {
		t.Errorf("error kind = %v, want %v", result.ErrorKind, FailInfrastructure)
	}
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(string) ([]float32, error) {
	return nil, errTestEmbedder
}

var errTestEmbedder = errors.New("test embedder is down")
