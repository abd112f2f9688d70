package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AobaIwaki123/simradar/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, c.Server.Port)
	assert.Equal(t, DefaultPath, c.Server.Path)
	assert.Equal(t, DefaultTopK, c.GitHub.TopK)
	assert.Equal(t, DefaultCandidateLimit, c.Similarity.CandidateLimit)
	assert.Equal(t, similarity.MetricTFCosine, c.PrimaryMetric())
	assert.Equal(t, map[similarity.Metric]float64{similarity.MetricTFCosine: DefaultThreshold}, c.MetricThresholds())
}

func TestParseFull(t *testing.T) {
	c, err := Parse(strings.NewReader(`
server:
  port: 9090
  path: /hooks/github
github:
  top_k: 3
similarity:
  primary_metric: Jaccard
  thresholds:
    jaccard: 0.4
    levenshtein: 0.8
  candidate_limit: 50
  max_text_length: 4000
gcp:
  project_id: demo
  bq_dataset: radar
  bq_table: issues
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "/hooks/github", c.Server.Path)
	assert.Equal(t, 3, c.GitHub.TopK)
	assert.Equal(t, similarity.MetricJaccard, c.PrimaryMetric())
	assert.Equal(t, map[similarity.Metric]float64{
		similarity.MetricJaccard:     0.4,
		similarity.MetricLevenshtein: 0.8,
	}, c.MetricThresholds())
	assert.Equal(t, 50, c.Similarity.CandidateLimit)
	assert.Equal(t, 4000, c.Similarity.MaxTextLength)
	assert.Equal(t, "issues", c.GCP.BQTable)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"port":           "server:\n  port: 70000\n",
		"metric":         "similarity:\n  primary_metric: tfidf\n",
		"threshold name": "similarity:\n  thresholds:\n    bm25: 0.3\n",
		"threshold":      "similarity:\n  thresholds:\n    jaccard: 1.5\n",
		"top_k":          "github:\n  top_k: -1\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse(strings.NewReader("server: [not, a, map]"))
	assert.Error(t, err)
}

func TestParseMixedCaseMetricKeepsThreshold(t *testing.T) {
	const doc = `
similarity:
  primary_metric: Jaccard
  thresholds:
    jaccard: 0.9
`
	for i := 0; i < 200; i++ {
		c, err := Parse(strings.NewReader(doc))
		require.NoError(t, err)
		require.Equal(t, "jaccard", c.Similarity.Primary)
		require.Equal(t, map[similarity.Metric]float64{similarity.MetricJaccard: 0.9}, c.MetricThresholds())
	}
}

func TestParseDuplicateThresholdKeys(t *testing.T) {
	_, err := Parse(strings.NewReader(`
similarity:
  thresholds:
    jaccard: 0.9
    JACCARD: 0.3
`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8181\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, c.Server.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
