// Package textanalyzer provides the lexical primitives behind the local
// embedder: tokenization, stop-word filtering, and English stemming.
package textanalyzer

import (
	"regexp"
	"strings"
)

// tokenizerRegex extracts word tokens. \p{L}+ matches letter sequences in
// any script, so accented names survive tokenization.
var tokenizerRegex = regexp.MustCompile(`\p{L}+`)

// Tokenize splits text into lower-case word tokens.
func Tokenize(text string) []string {
	return tokenizerRegex.FindAllString(strings.ToLower(text), -1)
}

// englishStopWords covers common function words plus the question words
// that carry no signal for entity or intent matching ("what powers does X
// have" should score on "powers" and "X", not on "what"/"does").
var englishStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"do": {}, "does": {}, "for": {}, "from": {}, "has": {}, "have": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "she": {},
	"that": {}, "the": {}, "this": {}, "to": {}, "was": {}, "were": {}, "what": {},
	"which": {}, "who": {}, "will": {}, "with": {},
}

// FilterStopWords removes common English words from a token slice.
func FilterStopWords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, stop := englishStopWords[token]; !stop {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

// Analyze runs the full pipeline: tokenize, drop stop words, stem.
func Analyze(text string) []string {
	tokens := FilterStopWords(Tokenize(text))
	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = Stem(token)
	}
	return stemmed
}
