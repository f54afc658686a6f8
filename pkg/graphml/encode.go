package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
)

const (
	xmlnsGraphML = "http://graphml.graphdrawing.org/xmlns"

	keyNodeLabel = "d0"
	keyNodeName  = "d1"
	keyEdgeType  = "d2"
)

// WriteFile serializes g to path in the same GraphML dialect the reader
// accepts, so a generated dataset round-trips.
func WriteFile(path string, g *kg.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating graphml file: %w", err)
	}
	defer f.Close()
	if err := Encode(f, g); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// Encode writes g as a GraphML document. Node ids are the canonical entity
// names; nodes carry "label" (type) and "name" data, edges carry "type".
func Encode(w io.Writer, g *kg.Graph) error {
	doc := xmlDocument{
		Xmlns: xmlnsGraphML,
		Keys: []xmlKey{
			{ID: keyNodeLabel, For: "node", AttrName: "label", AttrType: "string"},
			{ID: keyNodeName, For: "node", AttrName: "name", AttrType: "string"},
			{ID: keyEdgeType, For: "edge", AttrName: "type", AttrType: "string"},
		},
		Graphs: []xmlGraph{{EdgeDefault: "directed"}},
	}

	graph := &doc.Graphs[0]
	for _, ref := range g.Entities() {
		graph.Nodes = append(graph.Nodes, xmlNode{
			ID: ref.Name,
			Data: []xmlData{
				{Key: keyNodeLabel, Value: string(ref.Type)},
				{Key: keyNodeName, Value: ref.Name},
			},
		})
		for _, edge := range g.OutEdges(ref.Name) {
			graph.Edges = append(graph.Edges, xmlEdge{
				Source: ref.Name,
				Target: edge.Peer,
				Data:   []xmlData{{Key: keyEdgeType, Value: string(edge.Label)}},
			})
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
