package server

import "github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"

// QuestionRequest is the payload for POST /question.
type QuestionRequest struct {
	Question string `json:"question"`
	// Narrative asks for an LLM-generated prose answer alongside the raw
	// facts. Ignored when the service has no chat model configured.
	Narrative bool `json:"narrative,omitempty"`
}

// QuestionResponse mirrors kg.QueryResult plus the request id and the
// optional narrative answer.
type QuestionResponse struct {
	QueryID   string         `json:"query_id"`
	Question  string         `json:"question"`
	Success   bool           `json:"success"`
	QueryType string         `json:"query_type"`
	Results   []string       `json:"results"`
	Plan      *kg.QueryPlan  `json:"plan,omitempty"`
	Note      string         `json:"note,omitempty"`
	Answer    string         `json:"answer,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorKind kg.FailureKind `json:"error_kind,omitempty"`
}

// NeighborJSON is one labeled connection in a neighborhood response.
type NeighborJSON struct {
	Relation string `json:"relation"`
	Entity   string `json:"entity"`
	Type     string `json:"type"`
}

// NeighborhoodResponse is the payload for GET /graph/{entity}.
type NeighborhoodResponse struct {
	Entity   string         `json:"entity"`
	Type     string         `json:"type"`
	Outgoing []NeighborJSON `json:"outgoing"`
	Incoming []NeighborJSON `json:"incoming"`
}

// ErrorResponse is the uniform error envelope for non-pipeline failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
