// Package mcp exposes the question engine as Model Context Protocol tools,
// so an LLM agent can query the knowledge graph over stdio.
package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/narrative"
)

const serverVersion = "1.0.0"

// NewServer registers the graph tools on an MCP server. generator may be
// nil; ask_question then never returns a prose answer.
func NewServer(engine *kg.Engine, generator *narrative.Generator) *mcp.Server {
	service := NewService(engine, generator)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "Marvel Knowledge Graph",
		Version: serverVersion,
	}, nil)

	// ask_question gets an explicit schema: the description carries usage
	// guidance that struct tags are too cramped for.
	mcp.AddTool(s, &mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a natural-language question about Marvel characters, their powers, gene mutations and team memberships, by traversing a knowledge graph.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"question": {
					Type:        "string",
					Description: "The question, mentioning one known entity. Examples: 'What powers does Wolverine have?', 'Who is on the X-Men?', 'Which gene gives Storm her abilities?'",
				},
				"narrative": {
					Type:        "boolean",
					Description: "If true, also return an LLM-generated prose answer grounded in the graph facts.",
				},
			},
			Required: []string{"question"},
		},
	}, service.AskQuestion)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "explore_entity",
		Description: "List the direct graph connections of one entity, in both directions.",
	}, service.ExploreEntity)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Report how many nodes and edges the knowledge graph contains, by type.",
	}, service.GraphStats)

	return s
}
