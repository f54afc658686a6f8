package kg

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"
)

// node is a typed entity plus its adjacency lists. Edge slices keep
// insertion order; traversal results must reflect load order, not a sort.
type node struct {
	name string // canonical display name, as loaded
	typ  EntityType
	out  []edgeRef
	in   []edgeRef
}

type edgeRef struct {
	label RelationLabel
	peer  *node
}

// EntityRef pairs an entity's canonical name with its type.
type EntityRef struct {
	Name string
	Type EntityType
}

// Stats summarizes graph size for the stats endpoint and the size gauges.
type Stats struct {
	Nodes       int                   `json:"total_nodes"`
	Edges       int                   `json:"total_edges"`
	NodesByType map[EntityType]int    `json:"node_types"`
	EdgesByType map[RelationLabel]int `json:"edge_types"`
}

// Graph is the in-memory knowledge graph store. Construction (AddEntity,
// AddEdge) is single-goroutine; once loaded the graph is read-only and all
// read methods are safe for concurrent use without locking.
type Graph struct {
	nodes btree.Map[string, *node] // normalized name -> node, ordered scans
	stats Stats
}

// NewGraph returns an empty graph store.
func NewGraph() *Graph {
	return &Graph{
		stats: Stats{
			NodesByType: make(map[EntityType]int),
			EdgesByType: make(map[RelationLabel]int),
		},
	}
}

// NormalizeName produces the lookup key for an entity name: lower case,
// collapsed whitespace, and Unicode hyphen variants folded to ASCII '-'.
// The source data mixes U+2010/U+2011 hyphens with plain '-' ("Spider‑Man"
// vs "Spider-Man"), and questions may use either.
func NormalizeName(name string) string {
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '‐', '‑', '‒', '–', '—', '−':
			return '-'
		}
		return r
	}, name)
	return strings.Join(strings.Fields(strings.ToLower(replaced)), " ")
}

// AddEntity registers an entity. Re-adding the same name with the same
// type is a no-op; registering it under a second type is a data-integrity
// error (every node has exactly one type).
func (g *Graph) AddEntity(name string, typ EntityType) error {
	if !KnownEntityType(typ) {
		return fmt.Errorf("unknown entity type %q for %q", typ, name)
	}
	key := NormalizeName(name)
	if key == "" {
		return fmt.Errorf("empty entity name")
	}
	if existing, ok := g.nodes.Get(key); ok {
		if existing.typ != typ {
			return fmt.Errorf("entity %q already registered as %s, cannot re-register as %s", existing.name, existing.typ, typ)
		}
		return nil
	}
	g.nodes.Set(key, &node{name: name, typ: typ})
	g.stats.Nodes++
	g.stats.NodesByType[typ]++
	return nil
}

// AddEdge connects two registered entities with a labeled directed edge.
// It enforces the label's type signature and rejects duplicate same-label
// edges between the same ordered pair (duplicates in the source artifact
// are a data-integrity error, not something to silently deduplicate).
func (g *Graph) AddEdge(source, target string, label RelationLabel) error {
	srcType, dstType, err := SignatureOf(label)
	if err != nil {
		return err
	}
	src, ok := g.nodes.Get(NormalizeName(source))
	if !ok {
		return fmt.Errorf("edge %s: source entity %q not registered", label, source)
	}
	dst, ok := g.nodes.Get(NormalizeName(target))
	if !ok {
		return fmt.Errorf("edge %s: target entity %q not registered", label, target)
	}
	if src.typ != srcType || dst.typ != dstType {
		return fmt.Errorf("edge %s requires %s -> %s, got %s(%s) -> %s(%s)",
			label, srcType, dstType, src.name, src.typ, dst.name, dst.typ)
	}
	for _, e := range src.out {
		if e.label == label && e.peer == dst {
			return fmt.Errorf("duplicate edge %s -[%s]-> %s", src.name, label, dst.name)
		}
	}
	src.out = append(src.out, edgeRef{label: label, peer: dst})
	dst.in = append(dst.in, edgeRef{label: label, peer: src})
	g.stats.Edges++
	g.stats.EdgesByType[label]++
	return nil
}

// Neighbors returns the distinct entity names reachable from entity by one
// edge of label in the given direction, in edge insertion order. A missing
// entity or an entity without such edges yields an empty slice, not an
// error.
func (g *Graph) Neighbors(entity string, label RelationLabel, dir Direction) []string {
	n, ok := g.nodes.Get(NormalizeName(entity))
	if !ok {
		return nil
	}
	edges := n.out
	if dir == Reverse {
		edges = n.in
	}
	var names []string
	seen := make(map[*node]struct{}, len(edges))
	for _, e := range edges {
		if e.label != label {
			continue
		}
		if _, dup := seen[e.peer]; dup {
			continue
		}
		seen[e.peer] = struct{}{}
		names = append(names, e.peer.name)
	}
	return names
}

// TypeOf returns the entity's type, or false when the name is unknown.
func (g *Graph) TypeOf(entity string) (EntityType, bool) {
	n, ok := g.nodes.Get(NormalizeName(entity))
	if !ok {
		return "", false
	}
	return n.typ, true
}

// Exists reports whether an entity with the given (normalized) name is
// registered. An empty typ matches any type.
func (g *Graph) Exists(name string, typ EntityType) bool {
	n, ok := g.nodes.Get(NormalizeName(name))
	if !ok {
		return false
	}
	return typ == "" || n.typ == typ
}

// CanonicalName maps any normalized spelling back to the stored name.
func (g *Graph) CanonicalName(name string) (string, bool) {
	n, ok := g.nodes.Get(NormalizeName(name))
	if !ok {
		return "", false
	}
	return n.name, true
}

// Entities returns every entity, ordered by normalized name. The fixed
// order keeps resolver scans and their tie-breaks deterministic.
func (g *Graph) Entities() []EntityRef {
	refs := make([]EntityRef, 0, g.nodes.Len())
	g.nodes.Scan(func(_ string, n *node) bool {
		refs = append(refs, EntityRef{Name: n.name, Type: n.typ})
		return true
	})
	return refs
}

// OutEdges returns entity's outgoing (label, target) pairs in insertion
// order. Used by the neighborhood endpoint.
func (g *Graph) OutEdges(entity string) []Edge {
	return g.edges(entity, Forward)
}

// InEdges returns entity's incoming (label, source) pairs in insertion
// order.
func (g *Graph) InEdges(entity string) []Edge {
	return g.edges(entity, Reverse)
}

// Edge is one labeled connection as seen from a chosen endpoint.
type Edge struct {
	Label RelationLabel
	Peer  string
	Type  EntityType
}

func (g *Graph) edges(entity string, dir Direction) []Edge {
	n, ok := g.nodes.Get(NormalizeName(entity))
	if !ok {
		return nil
	}
	refs := n.out
	if dir == Reverse {
		refs = n.in
	}
	out := make([]Edge, 0, len(refs))
	for _, e := range refs {
		out = append(out, Edge{Label: e.label, Peer: e.peer.name, Type: e.peer.typ})
	}
	return out
}

// Stats returns node and edge counts by type.
func (g *Graph) Stats() Stats {
	byType := make(map[EntityType]int, len(g.stats.NodesByType))
	for k, v := range g.stats.NodesByType {
		byType[k] = v
	}
	byLabel := make(map[RelationLabel]int, len(g.stats.EdgesByType))
	for k, v := range g.stats.EdgesByType {
		byLabel[k] = v
	}
	return Stats{
		Nodes:       g.stats.Nodes,
		Edges:       g.stats.Edges,
		NodesByType: byType,
		EdgesByType: byLabel,
	}
}
