package textanalyzer

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("What powers does Spider-Man have?")
	want := []string{"what", "powers", "does", "spider", "man", "have"}
	if !slices.Equal(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}

	if got := Tokenize("  \t\n "); len(got) != 0 {
		t.Errorf("Tokenize on whitespace = %v, want empty", got)
	}
}

func TestFilterStopWords(t *testing.T) {
	got := FilterStopWords([]string{"what", "powers", "does", "wolverine", "have"})
	want := []string{"powers", "wolverine"}
	if !slices.Equal(got, want) {
		t.Errorf("FilterStopWords = %v, want %v", got, want)
	}
}

func TestStem(t *testing.T) {
	cases := []struct{ in, want string }{
		{"power", "power"},
		{"powers", "power"},
		{"running", "run"},
		{"healing", "heal"},
		{"possess", "possess"},
		{"possesses", "possess"},
		{"mutation", "mutat"},
		{"mutations", "mutat"},
		{"ability", "abil"},
		{"abilities", "abil"},
		{"team", "team"},
		{"teams", "team"},
		// Exception forms.
		{"dying", "die"},
		{"news", "news"},
		// Too short to stem.
		{"do", "do"},
	}
	for _, c := range cases {
		if got := Stem(c.in); got != c.want {
			t.Errorf("Stem(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Inflected forms must land on the same stem; that equality is what the
// lexical embedder's similarity scores are built on.
func TestStemConflatesInflections(t *testing.T) {
	groups := [][]string{
		{"power", "powers", "powered"},
		{"mutation", "mutations"},
		{"ability", "abilities"},
		{"member", "members"},
		{"gene", "genes"},
	}
	for _, group := range groups {
		base := Stem(group[0])
		for _, word := range group[1:] {
			if got := Stem(word); got != base {
				t.Errorf("Stem(%q) = %q, want %q (same as %q)", word, got, base, group[0])
			}
		}
	}
}

func TestAnalyze(t *testing.T) {
	got := Analyze("What powers does Spider-Man have?")
	want := []string{"power", "spider", "man"}
	if !slices.Equal(got, want) {
		t.Errorf("Analyze = %v, want %v", got, want)
	}

	if got := Analyze("what does the"); len(got) != 0 {
		t.Errorf("Analyze on pure stop words = %v, want empty", got)
	}
}
