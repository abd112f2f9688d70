// Package similarity scores how alike two text snippets are.
//
// Three independent metrics are provided: term-frequency cosine over word
// tokens, Jaccard overlap of token sets, and a normalized Levenshtein edit
// distance over raw characters. Every function is total: degenerate input maps
// to a fixed score instead of an error, and results always lie in [0, 1].
package similarity

import (
	"regexp"
	"strings"
)

// wordRun matches ASCII word characters only, so accented letters and other
// non-ASCII symbols act as separators.
var wordRun = regexp.MustCompile(`\w+`)

// Tokenize lower-cases text and returns its maximal runs of [0-9a-z_] in order,
// keeping duplicates. It returns nil when text holds no word characters.
func Tokenize(text string) []string {
	return wordRun.FindAllString(strings.ToLower(text), -1)
}
