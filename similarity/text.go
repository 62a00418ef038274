package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Stop words ignored by keyword extraction
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "or": true, "all": true, "any": true, "each": true,
	"its": true, "may": true, "such": true, "these": true, "those": true,
	"were": true, "been": true, "has": true, "had": true, "into": true,
	"which": true, "who": true, "will": true, "would": true, "can": true,
	"than": true, "then": true, "there": true, "their": true, "they": true,
	"also": true, "other": true, "only": true, "when": true, "where": true,
}

// IsStopWord reports whether word is ignored by keyword extraction.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}

// NormalizeText performs Unicode NFKC normalization, strips control
// characters other than newlines and tabs, and trims whitespace.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.TrimSpace(normed)
}

// Tokenize splits normalized text into lowercase words with surrounding
// punctuation removed.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(NormalizeText(text), func(r rune) bool {
		return unicode.IsSpace(r) || r == '/' || r == ',' || r == ';' || r == '(' || r == ')'
	})
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}<>"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}
