// Package graphml reads and writes the GraphML dialect emitted by networkx,
// which is how the Marvel dataset is shipped. The reader resolves <key>
// declarations so files survive attribute-id renumbering, and tolerates the
// attribute-name variations seen in the wild ("label" vs "type" for node
// types, "relation"/"label"/"type" for edge labels).
package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
)

type xmlDocument struct {
	XMLName xml.Name   `xml:"graphml"`
	Xmlns   string     `xml:"xmlns,attr,omitempty"`
	Keys    []xmlKey   `xml:"key"`
	Graphs  []xmlGraph `xml:"graph"`
}

type xmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr,omitempty"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// LoadFile reads a GraphML file into a new graph store.
func LoadFile(path string) (*kg.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graphml file: %w", err)
	}
	defer f.Close()
	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return g, nil
}

// Decode parses a GraphML document from r and builds the typed graph.
// Nodes load before edges so forward references in the file are fine.
func Decode(r io.Reader) (*kg.Graph, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing graphml: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("graphml document contains no <graph> element")
	}

	// <data> elements reference <key> ids; map them back to attribute
	// names once, per element kind.
	nodeAttr := make(map[string]string)
	edgeAttr := make(map[string]string)
	for _, k := range doc.Keys {
		switch k.For {
		case "node":
			nodeAttr[k.ID] = k.AttrName
		case "edge":
			edgeAttr[k.ID] = k.AttrName
		}
	}

	g := kg.NewGraph()
	graph := doc.Graphs[0]

	names := make(map[string]string, len(graph.Nodes)) // node id -> display name
	for _, n := range graph.Nodes {
		attrs := resolve(n.Data, nodeAttr)
		typ := firstOf(attrs, "label", "type")
		if typ == "" {
			return nil, fmt.Errorf("node %q has no type attribute", n.ID)
		}
		name := firstOf(attrs, "name")
		if name == "" {
			name = n.ID
		}
		if err := g.AddEntity(name, kg.EntityType(typ)); err != nil {
			return nil, err
		}
		names[n.ID] = name
	}

	for _, e := range graph.Edges {
		attrs := resolve(e.Data, edgeAttr)
		label := firstOf(attrs, "relation", "label", "type", "name")
		if label == "" {
			return nil, fmt.Errorf("edge %q -> %q has no relation attribute", e.Source, e.Target)
		}
		source, ok := names[e.Source]
		if !ok {
			return nil, fmt.Errorf("edge references undeclared node %q", e.Source)
		}
		target, ok := names[e.Target]
		if !ok {
			return nil, fmt.Errorf("edge references undeclared node %q", e.Target)
		}
		if err := g.AddEdge(source, target, kg.RelationLabel(label)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func resolve(data []xmlData, keyToAttr map[string]string) map[string]string {
	attrs := make(map[string]string, len(data))
	for _, d := range data {
		name := keyToAttr[d.Key]
		if name == "" {
			// Some writers skip <key> declarations and use the
			// attribute name directly as the data key.
			name = d.Key
		}
		attrs[name] = d.Value
	}
	return attrs
}

func firstOf(attrs map[string]string, names ...string) string {
	for _, name := range names {
		if v := attrs[name]; v != "" {
			return v
		}
	}
	return ""
}
