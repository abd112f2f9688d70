package github

import (
	"fmt"
	"strings"

	"github.com/AobaIwaki123/simradar/internal/similarity"
	"github.com/AobaIwaki123/simradar/internal/triage"
)

// BuildSimilarIssuesComment renders matches as a markdown list. It returns ""
// when there is nothing to report.
func BuildSimilarIssuesComment(primary similarity.Metric, matches []triage.Match) string {
	if len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("### 🔍 Possible duplicate issues\n\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "* #%d: %s %.2f (cosine %.2f / jaccard %.2f / levenshtein %.2f)\n",
			m.Number, primary, m.Score, m.Scores.TFCosine, m.Scores.Jaccard, m.Scores.Levenshtein)
	}
	b.WriteString("\n_(generated automatically)_")
	return b.String()
}
