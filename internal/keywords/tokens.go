package keywords

import (
	"strings"
	"unicode"
)

// stopwords are filler words never emitted alone and never allowed at the
// edge of an extracted phrase.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "or": true, "of": true, "to": true, "in": true,
	"on": true, "for": true, "with": true, "at": true, "by": true,
	"from": true, "as": true, "is": true, "are": true, "be": true,
	"it": true, "its": true, "this": true, "that": true, "these": true,
	"your": true, "you": true, "our": true, "my": true, "their": true,
	"own": true, "all": true, "any": true, "can": true, "will": true,
	"more": true, "most": true, "get": true, "use": true, "using": true,
}

// generic are store-listing boilerplate terms that carry no discoverability
// value on their own.
var generic = map[string]bool{
	"app": true, "apps": true, "application": true, "applications": true,
	"iphone": true, "ipad": true, "ios": true,
	"free": true, "best": true, "new": true, "pro": true, "lite": true,
	"hd": true,
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == '/' || r == '|' || r == '-' || r == '&'
}

// splitWords breaks free text on whitespace and the common separators
// ,/|-& and strips surrounding punctuation from each word.
func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, isSeparator)
	words := fields[:0]
	for _, f := range fields {
		w := strings.Trim(f, ".!?:;()[]{}'\"`*+~_")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// unusable reports whether a single lowercased word may not stand alone in
// a candidate or anchor the edge of a phrase.
func unusable(word string) bool {
	if len(word) < 2 || digitsOnly(word) {
		return true
	}
	return stopwords[word] || generic[word]
}
