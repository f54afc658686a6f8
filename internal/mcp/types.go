package mcp

// --- Tool Arguments ---

type AskQuestionArgs struct {
	Question  string `json:"question" jsonschema:"The natural-language question about a Marvel character, power, gene or team,required"`
	Narrative bool   `json:"narrative,omitempty" jsonschema:"description=If true, also return an LLM-generated prose answer grounded in the graph facts."`
}

type AskQuestionResult struct {
	Success   bool     `json:"success"`
	QueryType string   `json:"query_type"`
	Results   []string `json:"results"`
	Note      string   `json:"note,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

type ExploreEntityArgs struct {
	Name string `json:"name" jsonschema:"The entity name to inspect (e.g. 'Wolverine' or 'X-Men'),required"`
}

type Connection struct {
	Relation string `json:"relation"`
	Entity   string `json:"entity"`
	Type     string `json:"type"`
}

type ExploreEntityResult struct {
	Entity   string       `json:"entity"`
	Type     string       `json:"type"`
	Outgoing []Connection `json:"outgoing"`
	Incoming []Connection `json:"incoming"`
}

type GraphStatsArgs struct{}

type GraphStatsResult struct {
	Nodes       int            `json:"total_nodes"`
	Edges       int            `json:"total_edges"`
	NodesByType map[string]int `json:"node_types"`
	EdgesByType map[string]int `json:"edge_types"`
}
