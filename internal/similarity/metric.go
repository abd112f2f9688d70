package similarity

import (
	"errors"
	"fmt"
	"strings"
)

// Metric names one of the similarity measures.
type Metric string

const (
	MetricTFCosine    Metric = "tf_cosine"
	MetricJaccard     Metric = "jaccard"
	MetricLevenshtein Metric = "levenshtein"
)

// Metrics lists every metric in reporting order.
var Metrics = []Metric{MetricTFCosine, MetricJaccard, MetricLevenshtein}

// ErrUnknownMetric is returned by ParseMetric for names it does not recognise.
var ErrUnknownMetric = errors.New("unknown similarity metric")

// ParseMetric resolves a metric name, ignoring case and surrounding space.
func ParseMetric(name string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Score computes a single metric. Unknown metrics score 0.
func Score(m Metric, a, b string) float64 {
	switch m {
	case MetricTFCosine:
		return TFCosine(a, b)
	case MetricJaccard:
		return Jaccard(a, b)
	case MetricLevenshtein:
		return Levenshtein(a, b)
	}
	return 0
}

// Scores holds the result of every metric for one pair of texts.
type Scores struct {
	TFCosine    float64 `json:"tf_cosine"`
	Jaccard     float64 `json:"jaccard"`
	Levenshtein float64 `json:"levenshtein"`
}

// Compare runs all three metrics on a and b.
func Compare(a, b string) Scores {
	return Scores{
		TFCosine:    TFCosine(a, b),
		Jaccard:     Jaccard(a, b),
		Levenshtein: Levenshtein(a, b),
	}
}

// Get returns the score recorded for m, or 0 for an unknown metric.
func (s Scores) Get(m Metric) float64 {
	switch m {
	case MetricTFCosine:
		return s.TFCosine
	case MetricJaccard:
		return s.Jaccard
	case MetricLevenshtein:
		return s.Levenshtein
	}
	return 0
}

// Max returns the highest-scoring metric. Ties go to the earlier entry in Metrics.
func (s Scores) Max() (Metric, float64) {
	best, bestScore := Metrics[0], s.Get(Metrics[0])
	for _, m := range Metrics[1:] {
		if v := s.Get(m); v > bestScore {
			best, bestScore = m, v
		}
	}
	return best, bestScore
}
