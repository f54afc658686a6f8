package graphml

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
)

// networkxSample mirrors the dialect networkx emits: <key> declarations
// with opaque ids, node type under "label", edge label under "type".
const networkxSample = `<?xml version='1.0' encoding='utf-8'?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="d2" for="edge" attr.name="type" attr.type="string" />
  <key id="d1" for="node" attr.name="name" attr.type="string" />
  <key id="d0" for="node" attr.name="label" attr.type="string" />
  <graph edgedefault="directed">
    <node id="Wolverine">
      <data key="d0">Character</data>
      <data key="d1">Wolverine</data>
    </node>
    <node id="X-Men">
      <data key="d0">Team</data>
      <data key="d1">X-Men</data>
    </node>
    <node id="Regenerative Mutation">
      <data key="d0">Gene</data>
      <data key="d1">Regenerative Mutation</data>
    </node>
    <node id="Accelerated Healing">
      <data key="d0">Power</data>
      <data key="d1">Accelerated Healing</data>
    </node>
    <edge source="Wolverine" target="X-Men">
      <data key="d2">MEMBER_OF</data>
    </edge>
    <edge source="Wolverine" target="Regenerative Mutation">
      <data key="d2">HAS_MUTATION</data>
    </edge>
    <edge source="Regenerative Mutation" target="Accelerated Healing">
      <data key="d2">CONFERS</data>
    </edge>
    <edge source="Wolverine" target="Accelerated Healing">
      <data key="d2">POSSESSES_POWER</data>
    </edge>
  </graph>
</graphml>
`

func TestDecodeNetworkxDialect(t *testing.T) {
	g, err := Decode(strings.NewReader(networkxSample))
	require.NoError(t, err)

	stats := g.Stats()
	require.Equal(t, 4, stats.Nodes)
	require.Equal(t, 4, stats.Edges)

	typ, ok := g.TypeOf("Wolverine")
	require.True(t, ok)
	require.Equal(t, kg.Character, typ)

	require.Equal(t, []string{"Accelerated Healing"}, g.Neighbors("Wolverine", kg.PossessesPower, kg.Forward))
	require.Equal(t, []string{"Wolverine"}, g.Neighbors("X-Men", kg.MemberOf, kg.Reverse))
}

func TestDecodeRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"not xml":      "this is not graphml",
		"no graph":     `<?xml version="1.0"?><graphml></graphml>`,
		"untyped node": `<graphml><graph><node id="Ghost"></node></graph></graphml>`,
		"bad edge type": `<graphml>
			<key id="d0" for="node" attr.name="label"/>
			<key id="d2" for="edge" attr.name="type"/>
			<graph>
				<node id="A"><data key="d0">Character</data></node>
				<node id="B"><data key="d0">Character</data></node>
				<edge source="A" target="B"><data key="d2">MEMBER_OF</data></edge>
			</graph>
		</graphml>`,
		"unknown label": `<graphml>
			<key id="d0" for="node" attr.name="label"/>
			<key id="d2" for="edge" attr.name="type"/>
			<graph>
				<node id="A"><data key="d0">Character</data></node>
				<node id="B"><data key="d0">Team</data></node>
				<edge source="A" target="B"><data key="d2">LEADS</data></edge>
			</graph>
		</graphml>`,
	}
	for name, doc := range cases {
		_, err := Decode(strings.NewReader(doc))
		require.Error(t, err, name)
	}
}

// Data keys without <key> declarations fall back to being attribute names,
// and "relation" wins over "type" for edges.
func TestDecodeAttributeFallbacks(t *testing.T) {
	doc := `<graphml><graph>
		<node id="A"><data key="type">Character</data></node>
		<node id="B"><data key="type">Team</data></node>
		<edge source="A" target="B">
			<data key="relation">MEMBER_OF</data>
			<data key="type">ignored-by-precedence</data>
		</edge>
	</graph></graphml>`

	g, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, g.Neighbors("A", kg.MemberOf, kg.Forward))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := kg.NewGraph()
	require.NoError(t, g.AddEntity("Storm", kg.Character))
	require.NoError(t, g.AddEntity("Weather Manipulation", kg.Gene))
	require.NoError(t, g.AddEntity("Weather Control", kg.Power))
	require.NoError(t, g.AddEntity("X-Men", kg.Team))
	require.NoError(t, g.AddEdge("Storm", "Weather Manipulation", kg.HasMutation))
	require.NoError(t, g.AddEdge("Weather Manipulation", "Weather Control", kg.Confers))
	require.NoError(t, g.AddEdge("Storm", "Weather Control", kg.PossessesPower))
	require.NoError(t, g.AddEdge("Storm", "X-Men", kg.MemberOf))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g))

	back, err := Decode(&buf)
	require.NoError(t, err)

	require.Equal(t, g.Stats(), back.Stats())
	for _, ref := range g.Entities() {
		typ, ok := back.TypeOf(ref.Name)
		require.True(t, ok, ref.Name)
		require.Equal(t, ref.Type, typ)
		for _, edge := range g.OutEdges(ref.Name) {
			got := back.Neighbors(ref.Name, edge.Label, kg.Forward)
			require.True(t, slices.Contains(got, edge.Peer),
				"edge %s -[%s]-> %s lost in round trip", ref.Name, edge.Label, edge.Peer)
		}
	}
}
