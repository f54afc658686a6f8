package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
)

func testService(t *testing.T) *Service {
	t.Helper()
	g := kg.NewGraph()
	for name, typ := range map[string]kg.EntityType{
		"Wolverine":             kg.Character,
		"X-Men":                 kg.Team,
		"Regenerative Mutation": kg.Gene,
		"Accelerated Healing":   kg.Power,
	} {
		require.NoError(t, g.AddEntity(name, typ))
	}
	require.NoError(t, g.AddEdge("Wolverine", "X-Men", kg.MemberOf))
	require.NoError(t, g.AddEdge("Wolverine", "Regenerative Mutation", kg.HasMutation))
	require.NoError(t, g.AddEdge("Regenerative Mutation", "Accelerated Healing", kg.Confers))
	require.NoError(t, g.AddEdge("Wolverine", "Accelerated Healing", kg.PossessesPower))

	engine, err := kg.NewEngine(g, embeddings.NewLexicalEmbedder(0), kg.DefaultOptions())
	require.NoError(t, err)
	return NewService(engine, nil)
}

func TestAskQuestionTool(t *testing.T) {
	s := testService(t)

	_, out, err := s.AskQuestion(context.Background(), nil, AskQuestionArgs{
		Question: "What powers does Wolverine have?",
	})
	require.NoError(t, err)
	require.True(t, out.Success)
	require.Equal(t, "Character → Power", out.QueryType)
	require.Equal(t, []string{"Accelerated Healing"}, out.Results)

	// Pipeline failures come back inside the result, not as tool errors.
	_, out, err = s.AskQuestion(context.Background(), nil, AskQuestionArgs{
		Question: "What powers does Batman have?",
	})
	require.NoError(t, err)
	require.False(t, out.Success)
	require.Equal(t, string(kg.FailUnresolvedEntity), out.ErrorKind)

	_, _, err = s.AskQuestion(context.Background(), nil, AskQuestionArgs{})
	require.Error(t, err)
}

func TestExploreEntityTool(t *testing.T) {
	s := testService(t)

	_, out, err := s.ExploreEntity(context.Background(), nil, ExploreEntityArgs{Name: "wolverine"})
	require.NoError(t, err)
	require.Equal(t, "Wolverine", out.Entity)
	require.Equal(t, "Character", out.Type)
	require.Len(t, out.Outgoing, 3)
	require.Empty(t, out.Incoming)

	_, _, err = s.ExploreEntity(context.Background(), nil, ExploreEntityArgs{Name: "Batman"})
	require.Error(t, err)
}

func TestGraphStatsTool(t *testing.T) {
	s := testService(t)

	_, out, err := s.GraphStats(context.Background(), nil, GraphStatsArgs{})
	require.NoError(t, err)
	require.Equal(t, 4, out.Nodes)
	require.Equal(t, 4, out.Edges)
	require.Equal(t, 1, out.NodesByType["Character"])
	require.Equal(t, 1, out.EdgesByType["POSSESSES_POWER"])
}
