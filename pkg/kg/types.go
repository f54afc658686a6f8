// Package kg implements the knowledge-graph query engine: an in-memory
// typed graph of Marvel entities, resolvers that turn a free-text question
// into a traversal plan, and an executor that turns the plan into facts.
//
// The graph is built once at startup and is immutable afterwards, so every
// exported read path is safe for concurrent use without locking.
package kg

import "fmt"

// EntityType classifies a node in the knowledge graph.
type EntityType string

const (
	Character EntityType = "Character"
	Power     EntityType = "Power"
	Gene      EntityType = "Gene"
	Team      EntityType = "Team"
)

// entityTypes lists the closed set of node types accepted by the store.
var entityTypes = []EntityType{Character, Power, Gene, Team}

// KnownEntityType reports whether t is part of the schema.
func KnownEntityType(t EntityType) bool {
	for _, et := range entityTypes {
		if t == et {
			return true
		}
	}
	return false
}

// typePriority orders entity types for resolver tie-breaking.
// Characters are by far the most common question subject.
var typePriority = map[EntityType]int{
	Character: 0,
	Power:     1,
	Gene:      2,
	Team:      3,
}

// RelationLabel identifies a directed edge type between two entity types.
type RelationLabel string

const (
	PossessesPower RelationLabel = "POSSESSES_POWER" // Character -> Power
	HasMutation    RelationLabel = "HAS_MUTATION"    // Character -> Gene
	Confers        RelationLabel = "CONFERS"         // Gene -> Power
	MemberOf       RelationLabel = "MEMBER_OF"       // Character -> Team
)

// Direction selects which end of an edge a traversal starts from.
type Direction string

const (
	// Forward follows an edge from its declared source to its target.
	Forward Direction = "forward"
	// Reverse follows an edge from its declared target back to its source.
	Reverse Direction = "reverse"
)

// edgeSignature declares the node types a relation label may connect.
type edgeSignature struct {
	Source EntityType
	Target EntityType
}

// labelSignatures is the authoritative edge schema. The store rejects any
// edge whose endpoints do not satisfy its label's signature.
var labelSignatures = map[RelationLabel]edgeSignature{
	PossessesPower: {Source: Character, Target: Power},
	HasMutation:    {Source: Character, Target: Gene},
	Confers:        {Source: Gene, Target: Power},
	MemberOf:       {Source: Character, Target: Team},
}

// KnownLabel reports whether label is part of the edge schema.
func KnownLabel(label RelationLabel) bool {
	_, ok := labelSignatures[label]
	return ok
}

// SignatureOf returns the declared source/target types for a label.
func SignatureOf(label RelationLabel) (source, target EntityType, err error) {
	sig, ok := labelSignatures[label]
	if !ok {
		return "", "", fmt.Errorf("unknown relation label %q", label)
	}
	return sig.Source, sig.Target, nil
}
