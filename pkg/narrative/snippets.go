package narrative

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snippets maps a character's canonical name to a short background blurb
// used to flavor generated answers.
type Snippets map[string]string

// LoadSnippets reads a JSON array of {"character": ..., "snippet": ...}
// rows, the companion artifact of the GraphML dataset.
func LoadSnippets(path string) (Snippets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snippets file: %w", err)
	}
	var rows []struct {
		Character string `json:"character"`
		Snippet   string `json:"snippet"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing snippets file %s: %w", path, err)
	}
	out := make(Snippets, len(rows))
	for _, row := range rows {
		if row.Character == "" {
			continue
		}
		out[row.Character] = row.Snippet
	}
	return out, nil
}
