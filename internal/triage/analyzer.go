// Package triage ranks previously seen issues by how closely they resemble a new one.
package triage

import (
	"sort"

	"github.com/AobaIwaki123/simradar/internal/similarity"
)

// Candidate is an earlier issue that a new issue may duplicate.
type Candidate struct {
	Number int
	Title  string
	Body   string
}

// Text joins title and body the same way new issues are joined before scoring.
func (c Candidate) Text() string {
	return IssueText(c.Title, c.Body)
}

// IssueText is the text compared for an issue.
func IssueText(title, body string) string {
	return title + "\n" + body
}

// Match is a candidate that cleared the analyzer's thresholds.
type Match struct {
	Number int
	Scores similarity.Scores
	// Score is the primary metric's value, used for ordering.
	Score float64
}

// Analyzer scores candidates against a new issue.
type Analyzer struct {
	Primary    similarity.Metric
	Thresholds map[similarity.Metric]float64
	TopK       int
	// MaxTextLength truncates both texts to this many runes before scoring
	// to bound Levenshtein's quadratic cost. Zero disables truncation.
	MaxTextLength int
}

// Passes reports whether s clears every configured threshold. With no
// threshold for the primary metric, a positive primary score is required.
func (a *Analyzer) Passes(s similarity.Scores) bool {
	if _, ok := a.Thresholds[a.Primary]; !ok && s.Get(a.Primary) <= 0 {
		return false
	}
	for m, floor := range a.Thresholds {
		if s.Get(m) < floor {
			return false
		}
	}
	return true
}

// Rank scores every candidate except the one numbered self, keeps those that
// pass, and returns them best first, at most TopK of them (TopK <= 0 keeps all).
func (a *Analyzer) Rank(self int, text string, cands []Candidate) []Match {
	text = a.truncate(text)

	var matches []Match
	for _, c := range cands {
		if c.Number == self {
			continue
		}
		s := similarity.Compare(text, a.truncate(c.Text()))
		if !a.Passes(s) {
			continue
		}
		matches = append(matches, Match{Number: c.Number, Scores: s, Score: s.Get(a.Primary)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Number < matches[j].Number
	})
	if a.TopK > 0 && len(matches) > a.TopK {
		matches = matches[:a.TopK]
	}
	return matches
}

func (a *Analyzer) truncate(text string) string {
	if a.MaxTextLength <= 0 {
		return text
	}
	r := []rune(text)
	if len(r) <= a.MaxTextLength {
		return text
	}
	return string(r[:a.MaxTextLength])
}
