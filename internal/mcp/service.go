package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/narrative"
)

// Service adapts the query engine to MCP tool handlers.
type Service struct {
	engine    *kg.Engine
	generator *narrative.Generator // nil disables narrative answers
}

func NewService(engine *kg.Engine, generator *narrative.Generator) *Service {
	return &Service{engine: engine, generator: generator}
}

// --- Tool Handlers ---

// AskQuestion runs the full pipeline. Pipeline failures are reported inside
// the result rather than as protocol errors, so the model can read the
// failure kind and rephrase.
func (s *Service) AskQuestion(ctx context.Context, req *mcp.CallToolRequest, args AskQuestionArgs) (*mcp.CallToolResult, AskQuestionResult, error) {
	if args.Question == "" {
		return nil, AskQuestionResult{}, fmt.Errorf("question must not be empty")
	}

	result := s.engine.Ask(args.Question)
	out := AskQuestionResult{
		Success:   result.Success,
		QueryType: result.QueryType,
		Results:   result.Results,
		Note:      result.Note,
		Error:     result.Error,
		ErrorKind: string(result.ErrorKind),
	}

	if result.Success && args.Narrative && s.generator != nil {
		answer, err := s.generator.Generate(ctx, args.Question, result)
		if err != nil {
			slog.Warn("narrative generation failed", "question", args.Question, "err", err)
			out.Note = "narrative answer unavailable"
		} else {
			out.Answer = answer
		}
	}
	return nil, out, nil
}

// ExploreEntity returns an entity's direct connections in both directions.
func (s *Service) ExploreEntity(ctx context.Context, req *mcp.CallToolRequest, args ExploreEntityArgs) (*mcp.CallToolResult, ExploreEntityResult, error) {
	g := s.engine.Graph()
	typ, ok := g.TypeOf(args.Name)
	if !ok {
		return nil, ExploreEntityResult{}, fmt.Errorf("unknown entity: %q", args.Name)
	}
	canonical, _ := g.CanonicalName(args.Name)

	return nil, ExploreEntityResult{
		Entity:   canonical,
		Type:     string(typ),
		Outgoing: toConnections(g.OutEdges(args.Name)),
		Incoming: toConnections(g.InEdges(args.Name)),
	}, nil
}

// GraphStats reports dataset size by type.
func (s *Service) GraphStats(ctx context.Context, req *mcp.CallToolRequest, args GraphStatsArgs) (*mcp.CallToolResult, GraphStatsResult, error) {
	stats := s.engine.Graph().Stats()
	out := GraphStatsResult{
		Nodes:       stats.Nodes,
		Edges:       stats.Edges,
		NodesByType: make(map[string]int, len(stats.NodesByType)),
		EdgesByType: make(map[string]int, len(stats.EdgesByType)),
	}
	for typ, count := range stats.NodesByType {
		out.NodesByType[string(typ)] = count
	}
	for label, count := range stats.EdgesByType {
		out.EdgesByType[string(label)] = count
	}
	return nil, out, nil
}

func toConnections(edges []kg.Edge) []Connection {
	out := make([]Connection, 0, len(edges))
	for _, e := range edges {
		out = append(out, Connection{
			Relation: string(e.Label),
			Entity:   e.Peer,
			Type:     string(e.Type),
		})
	}
	return out
}
