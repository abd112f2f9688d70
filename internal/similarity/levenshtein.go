package similarity

import "strings"

// Levenshtein returns 1 - distance/max(m, n) for the whitespace-trimmed inputs,
// measured in code points. Two blank inputs are a perfect match (1); exactly
// one blank input scores 0.
func Levenshtein(a, b string) float64 {
	ra := []rune(strings.TrimFunc(a, isTrimSpace))
	rb := []rune(strings.TrimFunc(b, isTrimSpace))

	m, n := len(ra), len(rb)
	if m == 0 && n == 0 {
		return 1
	}
	if m == 0 || n == 0 {
		return 0
	}

	dist := editDistance(ra, rb)
	return clamp01(1 - float64(dist)/float64(max(m, n)))
}

// isTrimSpace reports the characters ECMAScript treats as white space or line
// terminators. It differs from unicode.IsSpace on U+0085 (kept) and U+FEFF (trimmed).
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00A0, 0x1680,
		0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// Distance returns the unit-cost edit distance between a and b in code points.
// Unlike Levenshtein it does not trim its inputs.
func Distance(a, b string) int {
	return editDistance([]rune(a), []rune(b))
}

// editDistance keeps two rows sized to the shorter operand.
func editDistance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
