// Command marvelkg-gen emits the bundled ten-hero dataset: the GraphML
// knowledge graph plus the character background snippets the narrative
// generator uses.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/graphml"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
)

// hero is one row of the source-of-truth list. Extend here.
type hero struct {
	Name    string
	Team    string
	Gene    string
	Powers  []string
	Snippet string
}

var heroes = []hero{
	{
		Name:   "Wolverine",
		Team:   "X-Men",
		Gene:   "Regenerative Mutation",
		Powers: []string{"Accelerated Healing", "Enhanced Senses"},
		Snippet: "Born as James Howlett in 19th-century Canada, Wolverine endured Weapon X " +
			"experiments that bonded adamantium to his skeleton. His healing factor, " +
			"heightened senses, and combat mastery make him the X-Men's fiercest defender.",
	},
	{
		Name:   "Cyclops",
		Team:   "X-Men",
		Gene:   "Optic-Blast",
		Powers: []string{"Optic Blasts"},
		Snippet: "Scott Summers unleashes concussive optic beams and leads the X-Men with " +
			"military precision. Ruby-quartz visors let him control power that could " +
			"otherwise shatter mountains.",
	},
	{
		Name:   "Storm",
		Team:   "X-Men",
		Gene:   "Weather Manipulation",
		Powers: []string{"Weather Control"},
		Snippet: "Ororo Munroe commands atmospheric forces, summoning hurricanes or gentle " +
			"rains at will. Worshipped as a goddess in Africa, she balances power with " +
			"deep empathy and meditation.",
	},
	{
		Name:   "Jean Grey",
		Team:   "X-Men",
		Gene:   "Omega Level Telepathy",
		Powers: []string{"Telepathy", "Telekinesis"},
		Snippet: "An omega-level mutant, Jean Grey wields formidable telepathy and telekinesis. " +
			"Her bond with the Phoenix Force makes her a symbol of rebirth and cosmic power.",
	},
	{
		Name:   "Spider-Man",
		Team:   "Avengers",
		Gene:   "Radioactive Spider Mutation",
		Powers: []string{"Superhuman Agility", "Enhanced Strength"},
		Snippet: "After a radioactive spider bite, Peter Parker gained wall-crawling, spider-sense, " +
			"and super strength. Guided by the mantra 'With great power comes great " +
			"responsibility,' he protects New York with wit and science.",
	},
	{
		Name:   "Hulk",
		Team:   "Avengers",
		Gene:   "Gamma Radiation Mutation",
		Powers: []string{"Superhuman Strength"},
		Snippet: "Gamma radiation turned Bruce Banner into the Hulk, whose strength scales with " +
			"anger. Feared as a walking cataclysm yet trusted by the Avengers in dire battles.",
	},
	{
		Name:   "Captain America",
		Team:   "Avengers",
		Gene:   "Super-Soldier Serum",
		Powers: []string{"Enhanced Strength"},
		Snippet: "Steve Rogers, enhanced to peak human condition by the Super-Soldier Serum, " +
			"wields an indestructible vibranium shield and serves as the moral compass of " +
			"the Avengers.",
	},
	{
		Name:   "Black Panther",
		Team:   "Avengers",
		Gene:   "Heart-Shaped Herb",
		Powers: []string{"Enhanced Senses", "Enhanced Strength"},
		Snippet: "T'Challa, king of Wakanda, gains heightened abilities from the heart-shaped herb " +
			"and dons a vibranium-woven suit, blending ancient tradition with futuristic tech.",
	},
	{
		Name:   "Magneto",
		Team:   "Brotherhood of Mutants",
		Gene:   "Magnetokinesis",
		Powers: []string{"Magnetism Control"},
		Snippet: "Erik Lehnsherr manipulates magnetic fields on a planetary scale, driven by a " +
			"resolve that mutants must never suffer oppression again.",
	},
	{
		Name:   "Scarlet Witch",
		Team:   "Avengers",
		Gene:   "Chaos Magic",
		Powers: []string{"Reality Manipulation"},
		Snippet: "Wanda Maximoff's chaos magic can rewrite reality itself. Her struggle for control " +
			"makes her both invaluable ally and existential threat.",
	},
}

func main() {
	outDir := flag.String("out", "data", "Output directory for the dataset files")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("failed to create output directory", "dir", *outDir, "err", err)
		os.Exit(1)
	}

	graph, err := buildGraph()
	if err != nil {
		slog.Error("failed to build graph", "err", err)
		os.Exit(1)
	}

	graphPath := filepath.Join(*outDir, "marvel_kg.graphml")
	if err := graphml.WriteFile(graphPath, graph); err != nil {
		slog.Error("failed to write graphml", "err", err)
		os.Exit(1)
	}

	snippetsPath := filepath.Join(*outDir, "text_snippets.json")
	if err := writeSnippets(snippetsPath); err != nil {
		slog.Error("failed to write snippets", "err", err)
		os.Exit(1)
	}

	stats := graph.Stats()
	slog.Info("dataset written",
		"graph", graphPath,
		"snippets", snippetsPath,
		"nodes", stats.Nodes,
		"edges", stats.Edges)
}

func buildGraph() (*kg.Graph, error) {
	g := kg.NewGraph()

	// Nodes first; AddEntity deduplicates shared teams, genes and powers.
	for _, h := range heroes {
		if err := g.AddEntity(h.Name, kg.Character); err != nil {
			return nil, err
		}
		if err := g.AddEntity(h.Team, kg.Team); err != nil {
			return nil, err
		}
		if err := g.AddEntity(h.Gene, kg.Gene); err != nil {
			return nil, err
		}
		for _, p := range h.Powers {
			if err := g.AddEntity(p, kg.Power); err != nil {
				return nil, err
			}
		}
	}

	for _, h := range heroes {
		if err := g.AddEdge(h.Name, h.Team, kg.MemberOf); err != nil {
			return nil, err
		}
		if err := g.AddEdge(h.Name, h.Gene, kg.HasMutation); err != nil {
			return nil, err
		}
		for _, p := range h.Powers {
			if err := addEdgeOnce(g, h.Gene, p, kg.Confers); err != nil {
				return nil, err
			}
			if err := g.AddEdge(h.Name, p, kg.PossessesPower); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// addEdgeOnce tolerates the duplicate a shared gene->power pair would
// produce when two heroes carry the same gene.
func addEdgeOnce(g *kg.Graph, source, target string, label kg.RelationLabel) error {
	for _, e := range g.OutEdges(source) {
		if e.Label == label && e.Peer == target {
			return nil
		}
	}
	return g.AddEdge(source, target, label)
}

func writeSnippets(path string) error {
	type row struct {
		Character string `json:"character"`
		Snippet   string `json:"snippet"`
	}
	rows := make([]row, 0, len(heroes))
	for _, h := range heroes {
		rows = append(rows, row{Character: h.Name, Snippet: h.Snippet})
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
