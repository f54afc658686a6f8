package kg

import (
	"strings"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/distance"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
)

// characterIntent couples one Character relation with the exemplar
// phrasings a question about that relation tends to use.
type characterIntent struct {
	label     RelationLabel
	target    EntityType
	exemplars []string
}

// characterIntents lists the relations a Character question can ask about.
// Order matters: index 0 (powers) is the fallback when scores tie, since
// power questions dominate real traffic.
var characterIntents = []characterIntent{
	{
		label:  PossessesPower,
		target: Power,
		exemplars: []string{
			"what powers does this character have",
			"what abilities does this hero possess",
			"list the superpowers of this character",
			"what can this character do",
		},
	},
	{
		label:  HasMutation,
		target: Gene,
		exemplars: []string{
			"what gene mutation does this character carry",
			"which mutation gives this character abilities",
			"what mutated genes does this mutant have",
		},
	},
	{
		label:  MemberOf,
		target: Team,
		exemplars: []string{
			"what team does this character belong to",
			"which group is this hero a member of",
			"what teams has this character joined",
		},
	},
}

// geneKeywords short-circuit the embedding comparison: a Character question
// that mentions genetics is always a mutation question, whatever the
// exemplar scores say.
var geneKeywords = []string{"gene", "mutation", "mutant", "dna"}

// IntentResolver decides which relation a question asks about. Non-Character
// entity types each support exactly one question shape, so only Character
// questions need the exemplar comparison.
type IntentResolver struct {
	index   *similarityIndex
	owner   []int // exemplar index -> characterIntents index
	floor   float64
	epsilon float64
}

// NewIntentResolver embeds the exemplar phrasings once up front.
func NewIntentResolver(emb embeddings.Embedder, floor, epsilon float64, precision distance.Precision) (*IntentResolver, error) {
	var phrases []string
	var owner []int
	for i, intent := range characterIntents {
		for _, ex := range intent.exemplars {
			phrases = append(phrases, ex)
			owner = append(owner, i)
		}
	}
	index, err := buildSimilarityIndex(emb, phrases, precision)
	if err != nil {
		return nil, err
	}
	return &IntentResolver{index: index, owner: owner, floor: floor, epsilon: epsilon}, nil
}

// Resolve returns the relation chain, target type and traversal direction
// for a question about an entity of the given type.
//
// Power and Team entities are question targets, not sources, so their plans
// walk the edges in reverse: "who has Flight" starts at the Power node and
// follows POSSESSES_POWER back to the characters.
func (r *IntentResolver) Resolve(typ EntityType, question string, embedQuestion func() ([]float32, error)) (chain []RelationLabel, target EntityType, dir Direction, err error) {
	switch typ {
	case Gene:
		return []RelationLabel{Confers}, Power, Forward, nil
	case Power:
		return []RelationLabel{PossessesPower}, Character, Reverse, nil
	case Team:
		return []RelationLabel{MemberOf}, Character, Reverse, nil
	case Character:
		return r.resolveCharacter(question, embedQuestion)
	}
	return nil, "", "", malformedPlan("no intent routing for entity type %q", typ)
}

func (r *IntentResolver) resolveCharacter(question string, embedQuestion func() ([]float32, error)) ([]RelationLabel, EntityType, Direction, error) {
	lower := strings.ToLower(question)
	for _, kw := range geneKeywords {
		if strings.Contains(lower, kw) {
			return []RelationLabel{HasMutation}, Gene, Forward, nil
		}
	}

	qvec, err := embedQuestion()
	if err != nil {
		return nil, "", "", infrastructure("embedding question", err)
	}
	scores := make([]float64, len(characterIntents))
	for i := range scores {
		scores[i] = -1
	}
	for j, intentIdx := range r.owner {
		s, err := r.index.score(j, qvec)
		if err != nil {
			return nil, "", "", infrastructure("scoring intent exemplars", err)
		}
		if s > scores[intentIdx] {
			scores[intentIdx] = s
		}
	}

	pick := pickCharacterIntent(scores, r.floor, r.epsilon)
	if pick < 0 {
		return nil, "", "", ambiguousIntent("could not tell what the question asks about this character; try mentioning powers, genes, or teams")
	}
	intent := characterIntents[pick]
	return []RelationLabel{intent.label}, intent.target, Forward, nil
}

// pickCharacterIntent selects an index into characterIntents from per-intent
// best-exemplar scores. A top score below floor means the question matched
// nothing well enough. When the runner-up is within epsilon of the winner
// the choice falls back to index 0 (powers) rather than flip on noise.
func pickCharacterIntent(scores []float64, floor, epsilon float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	if scores[best] < floor {
		return -1
	}
	if best != 0 && scores[0] >= scores[best]-epsilon {
		return 0
	}
	return best
}
