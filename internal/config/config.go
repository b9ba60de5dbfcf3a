// Package config loads the application configuration for the CLI and
// server from a YAML file, falling back to defaults when the file is
// absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings for serving and scoring.
type Config struct {
	// ListenAddr is the HTTP listen address for `serve`.
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`

	// RedisAddr enables the redis-backed reference library when set.
	RedisAddr string `yaml:"redis_addr" json:"redis_addr"`

	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline"`
	Score    ScoreConfig    `yaml:"score" json:"score"`
}

// PipelineConfig tunes the refinement loop.
type PipelineConfig struct {
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`
}

// ScoreConfig tunes the quality scorer.
type ScoreConfig struct {
	Threshold             int     `yaml:"threshold" json:"threshold"`
	MinErrorHandlingRatio float64 `yaml:"min_error_handling_ratio" json:"min_error_handling_ratio"`
	MinAnnotations        int     `yaml:"min_annotations" json:"min_annotations"`
}

// Default returns the production defaults.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Pipeline:   PipelineConfig{MaxAttempts: 3},
		Score: ScoreConfig{
			Threshold:             80,
			MinErrorHandlingRatio: 0.3,
			MinAnnotations:        5,
		},
	}
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults apply, so a bare checkout works without any configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize backfills zero values so a sparse file keeps the defaults for
// everything it does not mention.
func (c *Config) normalize() {
	def := Default()
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.Pipeline.MaxAttempts <= 0 {
		c.Pipeline.MaxAttempts = def.Pipeline.MaxAttempts
	}
	if c.Score.Threshold <= 0 {
		c.Score.Threshold = def.Score.Threshold
	}
	if c.Score.MinErrorHandlingRatio <= 0 {
		c.Score.MinErrorHandlingRatio = def.Score.MinErrorHandlingRatio
	}
	if c.Score.MinAnnotations <= 0 {
		c.Score.MinAnnotations = def.Score.MinAnnotations
	}
}
