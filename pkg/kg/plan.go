package kg

import "fmt"

// QueryPlan is an immutable description of one graph traversal: start at
// StartEntity and follow RelationChain in Direction. Once built it is never
// mutated; the executor consumes exactly what the planner produced.
type QueryPlan struct {
	StartEntity   string          `json:"start_entity"`
	StartType     EntityType      `json:"start_type"`
	RelationChain []RelationLabel `json:"relation_chain"`
	TargetType    EntityType      `json:"target_type"`
	Direction     Direction       `json:"direction"`
}

// BuildPlan validates and assembles a QueryPlan. The chain is copied so
// callers cannot alias the plan's internals.
func BuildPlan(entity string, typ EntityType, chain []RelationLabel, target EntityType, dir Direction) (QueryPlan, error) {
	plan := QueryPlan{
		StartEntity:   entity,
		StartType:     typ,
		RelationChain: append([]RelationLabel(nil), chain...),
		TargetType:    target,
		Direction:     dir,
	}
	if err := plan.validate(); err != nil {
		return QueryPlan{}, err
	}
	return plan, nil
}

// validate enforces the planner/executor contract. Violations are bugs in
// the calling code, not bad user input, so they carry the malformed-plan
// kind.
func (p QueryPlan) validate() error {
	if p.StartEntity == "" {
		return malformedPlan("plan has no start entity")
	}
	if !KnownEntityType(p.StartType) {
		return malformedPlan("plan start type %q is not in the schema", p.StartType)
	}
	if !KnownEntityType(p.TargetType) {
		return malformedPlan("plan target type %q is not in the schema", p.TargetType)
	}
	if len(p.RelationChain) == 0 {
		return malformedPlan("plan for %q has an empty relation chain", p.StartEntity)
	}
	for _, label := range p.RelationChain {
		if !KnownLabel(label) {
			return malformedPlan("plan for %q uses unknown relation %q", p.StartEntity, label)
		}
	}
	if p.Direction != Forward && p.Direction != Reverse {
		return malformedPlan("plan for %q has invalid direction %q", p.StartEntity, p.Direction)
	}
	return nil
}

// QueryType renders the plan's shape for logs and API responses, e.g.
// "Character → Power".
func (p QueryPlan) QueryType() string {
	return fmt.Sprintf("%s → %s", p.StartType, p.TargetType)
}

// QueryResult is the outcome of one question. Success reflects whether the
// pipeline ran to completion: an empty traversal is still a success with an
// explanatory note, while resolver failures set Error and ErrorKind.
type QueryResult struct {
	Success   bool        `json:"success"`
	Plan      QueryPlan   `json:"plan"`
	Results   []string    `json:"results"`
	QueryType string      `json:"query_type"`
	Note      string      `json:"note,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind FailureKind `json:"error_kind,omitempty"`
}
