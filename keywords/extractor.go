package keywords

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// Tokenize lower-cases text and splits it on runs of non-word characters.
// Empty tokens are dropped; duplicates are kept in order.
func Tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Extract returns a copy of existing with every token of text added
// (subtract=false) or removed (subtract=true). A key whose count drops to zero
// is deleted. Subtracting a token that is not present leaves the map as is.
// A nil or empty text returns an unchanged copy.
func Extract(existing map[string]int, text *string, subtract bool) map[string]int {
	out := make(map[string]int, len(existing))
	for k, v := range existing {
		out[k] = v
	}
	if text == nil || *text == "" {
		return out
	}

	for _, tok := range Tokenize(*text) {
		if !subtract {
			out[tok]++
			continue
		}
		n, ok := out[tok]
		if !ok {
			continue
		}
		if n-1 <= 0 {
			delete(out, tok)
		} else {
			out[tok] = n - 1
		}
	}
	return out
}

// Fold builds an index from scratch by adding every text in order.
func Fold(texts ...*string) map[string]int {
	m := map[string]int{}
	for _, t := range texts {
		m = Extract(m, t, false)
	}
	return m
}
