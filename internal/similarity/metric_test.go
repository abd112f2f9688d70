package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics {
		got, err := ParseMetric(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseMetric("  Jaccard ")
	require.NoError(t, err)
	assert.Equal(t, MetricJaccard, got)

	_, err = ParseMetric("tfidf")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestScoreDispatch(t *testing.T) {
	a, b := "foo foo bar", "bar baz"
	assert.Equal(t, TFCosine(a, b), Score(MetricTFCosine, a, b))
	assert.Equal(t, Jaccard(a, b), Score(MetricJaccard, a, b))
	assert.Equal(t, Levenshtein(a, b), Score(MetricLevenshtein, a, b))
	assert.Equal(t, 0.0, Score(Metric("bogus"), a, b))
}

func TestScoresGetAndMax(t *testing.T) {
	s := Scores{TFCosine: 0.2, Jaccard: 0.9, Levenshtein: 0.4}
	assert.Equal(t, 0.9, s.Get(MetricJaccard))
	assert.Equal(t, 0.0, s.Get(Metric("bogus")))

	m, v := s.Max()
	assert.Equal(t, MetricJaccard, m)
	assert.Equal(t, 0.9, v)

	m, v = Scores{}.Max()
	assert.Equal(t, MetricTFCosine, m)
	assert.Equal(t, 0.0, v)
}
