// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AobaIwaki123/simradar/internal/similarity"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration that decoded but cannot be used.
var ErrInvalid = errors.New("invalid config")

const (
	DefaultPort           = 8080
	DefaultPath           = "/webhook"
	DefaultTopK           = 5
	DefaultThreshold      = 0.5
	DefaultCandidateLimit = 200
)

type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Path string `yaml:"path"`
	} `yaml:"server"`
	GitHub struct {
		TopK int `yaml:"top_k"`
	} `yaml:"github"`
	Similarity struct {
		Primary        string             `yaml:"primary_metric"` // tf_cosine, jaccard, or levenshtein
		Thresholds     map[string]float64 `yaml:"thresholds"`     // metric name -> minimum score
		CandidateLimit int                `yaml:"candidate_limit"`
		MaxTextLength  int                `yaml:"max_text_length"` // runes; 0 means unlimited
	} `yaml:"similarity"`
	GCP struct {
		ProjectID string `yaml:"project_id"`
		BQDataset string `yaml:"bq_dataset"`
		BQTable   string `yaml:"bq_table"`
	} `yaml:"gcp"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML config from r, fills defaults and validates it.
func Parse(r io.Reader) (*Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.normalizeMetrics(); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// normalizeMetrics rewrites the primary metric and threshold keys to their
// canonical names so that differently cased spellings share one entry.
func (c *Config) normalizeMetrics() error {
	if c.Similarity.Primary != "" {
		m, err := similarity.ParseMetric(c.Similarity.Primary)
		if err != nil {
			return fmt.Errorf("%w: similarity.primary_metric: %v", ErrInvalid, err)
		}
		c.Similarity.Primary = string(m)
	}
	if c.Similarity.Thresholds == nil {
		return nil
	}
	thresholds := make(map[string]float64, len(c.Similarity.Thresholds))
	for name, v := range c.Similarity.Thresholds {
		m, err := similarity.ParseMetric(name)
		if err != nil {
			return fmt.Errorf("%w: similarity.thresholds: %v", ErrInvalid, err)
		}
		if _, dup := thresholds[string(m)]; dup {
			return fmt.Errorf("%w: similarity.thresholds: %s given more than once", ErrInvalid, m)
		}
		thresholds[string(m)] = v
	}
	c.Similarity.Thresholds = thresholds
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultPath
	}
	if c.GitHub.TopK == 0 {
		c.GitHub.TopK = DefaultTopK
	}
	if c.Similarity.Primary == "" {
		c.Similarity.Primary = string(similarity.MetricTFCosine)
	}
	if c.Similarity.CandidateLimit == 0 {
		c.Similarity.CandidateLimit = DefaultCandidateLimit
	}
	if c.Similarity.Thresholds == nil {
		c.Similarity.Thresholds = map[string]float64{}
	}
	if _, ok := c.Similarity.Thresholds[c.Similarity.Primary]; !ok {
		c.Similarity.Thresholds[c.Similarity.Primary] = DefaultThreshold
	}
}

// Validate checks ranges and metric names.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalid, c.Server.Port)
	}
	if c.GitHub.TopK < 0 {
		return fmt.Errorf("%w: github.top_k must not be negative", ErrInvalid)
	}
	if c.Similarity.CandidateLimit < 0 || c.Similarity.MaxTextLength < 0 {
		return fmt.Errorf("%w: similarity limits must not be negative", ErrInvalid)
	}
	if _, err := similarity.ParseMetric(c.Similarity.Primary); err != nil {
		return fmt.Errorf("%w: similarity.primary_metric: %v", ErrInvalid, err)
	}
	for name, v := range c.Similarity.Thresholds {
		if _, err := similarity.ParseMetric(name); err != nil {
			return fmt.Errorf("%w: similarity.thresholds: %v", ErrInvalid, err)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: similarity.thresholds.%s = %v, want [0,1]", ErrInvalid, name, v)
		}
	}
	return nil
}

// PrimaryMetric returns the validated ranking metric.
func (c *Config) PrimaryMetric() similarity.Metric {
	m, _ := similarity.ParseMetric(c.Similarity.Primary)
	return m
}

// MetricThresholds converts the configured thresholds to metric keys.
func (c *Config) MetricThresholds() map[similarity.Metric]float64 {
	out := make(map[similarity.Metric]float64, len(c.Similarity.Thresholds))
	for name, v := range c.Similarity.Thresholds {
		if m, err := similarity.ParseMetric(name); err == nil {
			out[m] = v
		}
	}
	return out
}
