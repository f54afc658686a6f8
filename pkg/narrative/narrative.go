// Package narrative turns the raw entity lists produced by graph traversal
// into prose answers via an LLM. The model is instructed to stay inside the
// supplied facts; it adds phrasing and background, never new claims.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/llm"
)

const systemPrompt = `You are a Marvel Universe expert and S.H.I.E.L.D. analyst.
Your task is to provide accurate, informative answers about Marvel characters, their powers, genes, and team affiliations.

Use ONLY the provided context and facts. Be factual and precise. If the context doesn't contain enough information, say so.
Always cite specific characters, powers, genes, or teams mentioned in the context.

When character backgrounds are provided, use them to add rich context and storytelling to your responses.

Format your response in a clear, informative way that directly answers the user's question.`

// Generator renders a QueryResult into a natural-language answer.
type Generator struct {
	client   llm.Client
	snippets Snippets
}

// NewGenerator wires a chat client and the character background snippets.
// snippets may be nil; answers then carry facts only.
func NewGenerator(client llm.Client, snippets Snippets) *Generator {
	return &Generator{client: client, snippets: snippets}
}

// Generate asks the LLM for a prose answer grounded in the traversal
// result. It must only be called for successful results.
func (g *Generator) Generate(ctx context.Context, question string, result kg.QueryResult) (string, error) {
	userPrompt := fmt.Sprintf(`Question: %s

Context from Knowledge Graph:
%s

Please provide a comprehensive answer based on the above context.`, question, g.buildContext(result))

	answer, err := g.client.Chat(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("generating narrative answer: %w", err)
	}
	return answer, nil
}

// buildContext flattens the plan and results into the fact block the model
// is allowed to use.
func (g *Generator) buildContext(result kg.QueryResult) string {
	var parts []string

	plan := result.Plan
	if plan.StartEntity != "" {
		parts = append(parts, fmt.Sprintf("Entity: %s (%s)", plan.StartEntity, plan.StartType))
		if snippet, ok := g.snippets[plan.StartEntity]; ok {
			parts = append(parts, "Character Background: "+snippet)
		}
	}

	if len(plan.RelationChain) > 0 {
		labels := make([]string, len(plan.RelationChain))
		for i, label := range plan.RelationChain {
			labels[i] = string(label)
		}
		parts = append(parts, "Relationships: "+strings.Join(labels, " → "))
	}

	if len(result.Results) > 0 {
		parts = append(parts, "Results: "+strings.Join(result.Results, ", "))
		var details []string
		for _, name := range result.Results {
			if snippet, ok := g.snippets[name]; ok {
				details = append(details, name+": "+snippet)
			}
		}
		if len(details) > 0 {
			parts = append(parts, "Character Details:")
			parts = append(parts, details...)
		}
	} else if result.Note != "" {
		parts = append(parts, "Note: "+result.Note)
	}

	return strings.Join(parts, "\n")
}
