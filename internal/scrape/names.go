package scrape

import "strings"

// nameVariants maps shortened first names to their common long forms so the
// roster name and the salary site name still match.
var nameVariants = map[string]string{
	"cam":  "cameron",
	"mike": "michael",
	"nic":  "nicolas",
	"herb": "herbert",
	"alex": "alexandre",
}

// MatchName reports whether two player names refer to the same person.
// Comparison is token based: every token of the shorter name must appear
// in the longer one, with punctuation stripped and variants expanded.
func MatchName(a, b string) bool {
	ta, tb := nameTokens(a), nameTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	if len(tb) < len(ta) {
		ta, tb = tb, ta
	}
	have := make(map[string]bool, len(tb))
	for _, tok := range tb {
		have[tok] = true
	}
	for _, tok := range ta {
		if have[tok] {
			continue
		}
		if long, ok := nameVariants[tok]; ok && have[long] {
			continue
		}
		return false
	}
	return true
}

// nameTokens lowercases and strips punctuation, dropping suffix tokens
// like "jr" that the salary site omits.
func nameTokens(name string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '\'', '’':
			return -1
		}
		return r
	}, strings.ToLower(name))

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		switch tok {
		case "jr", "sr", "ii", "iii", "iv":
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
