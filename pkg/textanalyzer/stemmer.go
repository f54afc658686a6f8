package textanalyzer

import "strings"

// Stem reduces an English word to its Porter2 stem, so that "powers",
// "powered" and "power" hash to the same feature bucket.
func Stem(word string) string {
	if len(word) <= 2 {
		return word
	}
	if stem, ok := stemExceptions[word]; ok {
		return stem
	}
	s := word
	if s[0] == '\'' {
		s = s[1:]
	}
	runes := []rune(s)
	if runes[0] == 'y' {
		runes[0] = 'Y'
	}
	s = string(runes)
	r1, r2 := regions(runes)

	s = step0(s)
	s = step1a(s)

	for _, e := range invariantWords {
		if s == e {
			return s
		}
	}

	s = step1b(s, r1)
	s = step1c(s)
	s = step2(s, r1)
	s = step3(s, r1, r2)
	s = step4(s, r2)
	s = step5(s, r1)

	return strings.ToLower(s)
}

// stemExceptions are the Porter2 special-cased forms.
var stemExceptions = map[string]string{
	"skis": "ski", "skies": "sky", "dying": "die", "lying": "lie", "tying": "tie",
	"idly": "idl", "gently": "gentl", "ugly": "ugli", "early": "earli",
	"only": "onli", "singly": "singl", "news": "news", "howe": "howe",
	"atlas": "atlas", "cosmos": "cosmos", "bias": "bias", "andes": "andes",
}

// invariantWords stop stemming after step 1a.
var invariantWords = []string{
	"inning", "outing", "canning", "herring", "earring",
	"proceed", "exceed", "succeed",
}

func isVowel(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return false
	}
	switch runes[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	case 'y':
		// 'y' counts as a vowel only after a consonant.
		if i == 0 {
			return false
		}
		switch runes[i-1] {
		case 'a', 'e', 'i', 'o', 'u':
			return false
		default:
			return true
		}
	}
	return false
}

// regions computes the Porter2 R1/R2 boundaries.
func regions(runes []rune) (r1, r2 int) {
	r1 = len(runes)
	r2 = len(runes)
	for i := 1; i < len(runes); i++ {
		if !isVowel(runes, i) && isVowel(runes, i-1) {
			r1 = i + 1
			break
		}
	}
	for i := r1 + 1; i < len(runes); i++ {
		if !isVowel(runes, i) && isVowel(runes, i-1) {
			r2 = i + 1
			break
		}
	}
	return
}

func endsShortSyllable(s string) bool {
	runes := []rune(s)
	l := len(runes)
	if l < 2 {
		return false
	}
	if l >= 3 && !isVowel(runes, l-3) && isVowel(runes, l-2) && !isVowel(runes, l-1) {
		last := runes[l-1]
		if last != 'w' && last != 'x' && last != 'y' {
			return true
		}
	}
	if l == 2 && isVowel(runes, 0) && !isVowel(runes, 1) {
		return true
	}
	return false
}

// replaceInRegion swaps a suffix only when it lies entirely inside the
// region starting at regionStart.
func replaceInRegion(s string, regionStart int, old, new string) (string, bool) {
	if strings.HasSuffix(s, old) && len(s)-len(old) >= regionStart {
		return s[:len(s)-len(old)] + new, true
	}
	return s, false
}

func step0(s string) string {
	switch {
	case strings.HasSuffix(s, "'s'"):
		return s[:len(s)-3]
	case strings.HasSuffix(s, "'s"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "'"):
		return s[:len(s)-1]
	}
	return s
}

func step1a(s string) string {
	if strings.HasSuffix(s, "sses") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "ies") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") && len(s) > 2 {
		runes := []rune(s[:len(s)-1])
		for i := range runes {
			if isVowel(runes, i) {
				return s[:len(s)-1]
			}
		}
	}
	return s
}

func step1b(s string, r1 int) string {
	if strings.HasSuffix(s, "eed") || strings.HasSuffix(s, "eedly") {
		if res, ok := replaceInRegion(s, r1, "eedly", "ee"); ok {
			return res
		}
		if res, ok := replaceInRegion(s, r1, "eed", "ee"); ok {
			return res
		}
		return s
	}
	stem := ""
	removed := false
	switch {
	case strings.HasSuffix(s, "edly"):
		stem, removed = s[:len(s)-4], true
	case strings.HasSuffix(s, "ed"):
		stem, removed = s[:len(s)-2], true
	case strings.HasSuffix(s, "ingly"):
		stem, removed = s[:len(s)-5], true
	case strings.HasSuffix(s, "ing"):
		stem, removed = s[:len(s)-3], true
	}
	if !removed {
		return s
	}
	runes := []rune(stem)
	hasVowel := false
	for i := range runes {
		if isVowel(runes, i) {
			hasVowel = true
			break
		}
	}
	if !hasVowel {
		return s
	}
	s = stem
	if strings.HasSuffix(s, "at") || strings.HasSuffix(s, "bl") || strings.HasSuffix(s, "iz") {
		return s + "e"
	}
	l := len(s)
	if l > 1 && s[l-1] == s[l-2] {
		last := s[l-1]
		if last != 'l' && last != 's' && last != 'z' {
			return s[:l-1]
		}
		return s
	}
	stemRunes := []rune(s)
	stemR1, _ := regions(stemRunes)
	if endsShortSyllable(s) && stemR1 == len(s) {
		return s + "e"
	}
	return s
}

func step1c(s string) string {
	runes := []rune(s)
	l := len(runes)
	if l > 2 && (runes[l-1] == 'y' || runes[l-1] == 'Y') && !isVowel(runes, l-2) {
		runes[l-1] = 'i'
		return string(runes)
	}
	return s
}

var step2Suffixes = []struct{ from, to string }{
	{"ational", "ate"}, {"tional", "tion"}, {"enci", "ence"}, {"anci", "ance"},
	{"izer", "ize"}, {"abli", "able"}, {"alli", "al"}, {"entli", "ent"},
	{"eli", "e"}, {"ousli", "ous"}, {"ization", "ize"}, {"ation", "ate"},
	{"ator", "ate"}, {"alism", "al"}, {"iveness", "ive"}, {"fulness", "ful"},
	{"ousness", "ous"}, {"aliti", "al"}, {"iviti", "ive"}, {"biliti", "ble"},
	{"logi", "log"},
}

func step2(s string, r1 int) string {
	for _, suf := range step2Suffixes {
		if res, ok := replaceInRegion(s, r1, suf.from, suf.to); ok {
			return res
		}
	}
	return s
}

var step3Suffixes = []struct{ from, to string }{
	{"icate", "ic"}, {"ative", ""}, {"alize", "al"}, {"iciti", "ic"},
	{"ical", "ic"}, {"ful", ""}, {"ness", ""},
}

func step3(s string, r1, r2 int) string {
	for _, suf := range step3Suffixes {
		region := r1
		if suf.from == "ative" {
			region = r2
		}
		if res, ok := replaceInRegion(s, region, suf.from, suf.to); ok {
			return res
		}
	}
	return s
}

var step4Suffixes = []string{
	"al", "ance", "ence", "er", "ic", "able", "ible", "ant", "ement",
	"ment", "ent", "ism", "ate", "iti", "ous", "ive", "ize",
}

func step4(s string, r2 int) string {
	if strings.HasSuffix(s, "ion") && len(s)-3 >= r2 {
		stem := s[:len(s)-3]
		if strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "t") {
			return stem
		}
	}
	for _, suf := range step4Suffixes {
		if res, ok := replaceInRegion(s, r2, suf, ""); ok {
			return res
		}
	}
	return s
}

func step5(s string, r1 int) string {
	if strings.HasSuffix(s, "e") {
		stem := s[:len(s)-1]
		if len(stem) >= r1 {
			stemRunes := []rune(stem)
			stemR1, _ := regions(stemRunes)
			if !endsShortSyllable(stem) || stemR1 != len(stem) {
				s = stem
			}
		}
	}
	if strings.HasSuffix(s, "ll") && len(s)-2 >= r1 {
		s = s[:len(s)-1]
	}
	return s
}
