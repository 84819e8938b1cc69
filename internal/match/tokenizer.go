package match

import (
	"strings"
	"unicode/utf8"
)

// minKeywordLen is the shortest token counted as a description keyword
const minKeywordLen = 4

// Tokenize splits text on whitespace into lowercase tokens.
// No stemming or punctuation stripping is applied.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Keywords returns the distinct tokens of text longer than three characters,
// in first-seen order
func Keywords(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minKeywordLen {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}

	return keywords
}

// SharedKeywords returns the keywords of a that also appear in b, in a's order
func SharedKeywords(a, b string) []string {
	other := make(map[string]struct{})
	for _, kw := range Keywords(b) {
		other[kw] = struct{}{}
	}

	var shared []string
	for _, kw := range Keywords(a) {
		if _, ok := other[kw]; ok {
			shared = append(shared, kw)
		}
	}
	return shared
}
