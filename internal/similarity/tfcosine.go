package similarity

import (
	"math"
	"sort"
)

// TFCosine returns the cosine similarity of the term-frequency vectors of a and b.
// Frequencies are per input (count / own token count) with no IDF weighting.
// It returns 0 when either side has no tokens.
func TFCosine(a, b string) float64 {
	tokensA := Tokenize(a)
	tokensB := Tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	// Sorted vocabulary keeps the summation order independent of argument order.
	distinct := make(map[string]struct{}, len(tokensA)+len(tokensB))
	for _, tokens := range [][]string{tokensA, tokensB} {
		for _, t := range tokens {
			distinct[t] = struct{}{}
		}
	}
	terms := make([]string, 0, len(distinct))
	for t := range distinct {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}

	return cosine(termFrequencies(tokensA, vocab), termFrequencies(tokensB, vocab))
}

func termFrequencies(tokens []string, vocab map[string]int) []float64 {
	vec := make([]float64, len(vocab))
	if len(tokens) == 0 {
		return vec
	}
	for _, t := range tokens {
		vec[vocab[t]]++
	}
	n := float64(len(tokens))
	for i := range vec {
		vec[i] /= n
	}
	return vec
}

func cosine(a, b []float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0
	}
	return clamp01(dot / (magA * magB))
}

// clamp01 absorbs rounding that can push a ratio a hair outside [0, 1].
func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
