// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
	"time"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-explorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for talking to the arXiv API.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// RateLimit is the minimum interval between consecutive API calls (default 3s).
	RateLimit time.Duration `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// MaxResults is the number of papers requested per category fetch (default 200).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// DefaultDays is how far back `daily` looks when no --days flag is given (default 1).
	DefaultDays int `json:"default_days" yaml:"default_days" mapstructure:"default_days"`

	// DefaultLimit is the number of results shown when no --limit flag is given (default 20).
	DefaultLimit int `json:"default_limit" yaml:"default_limit" mapstructure:"default_limit"`

	// ProfileSize caps how many of the most recently liked papers feed the
	// user profile (default 50).
	ProfileSize int `json:"profile_size" yaml:"profile_size" mapstructure:"profile_size"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	// Path is the database file (default ~/.config/arxiv-explorer/explorer.db).
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ScoringConfig holds the recommendation weights. The weights are
// independent knobs and need not sum to 1.
type ScoringConfig struct {
	ContentWeight  float64 `json:"content_weight" yaml:"content_weight" mapstructure:"content_weight"`
	CategoryWeight float64 `json:"category_weight" yaml:"category_weight" mapstructure:"category_weight"`
	KeywordWeight  float64 `json:"keyword_weight" yaml:"keyword_weight" mapstructure:"keyword_weight"`
	RecencyWeight  float64 `json:"recency_weight" yaml:"recency_weight" mapstructure:"recency_weight"`

	// RecencyWindowDays is the age in whole days at which the recency bonus
	// reaches zero.
	RecencyWindowDays int `json:"recency_window_days" yaml:"recency_window_days" mapstructure:"recency_window_days"`
}

// DefaultScoringConfig returns the stock weights: content 0.5, category 0.2,
// keyword 0.1, recency 0.05 over a 30 day window.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ContentWeight:     0.5,
		CategoryWeight:    0.2,
		KeywordWeight:     0.1,
		RecencyWeight:     0.05,
		RecencyWindowDays: 30,
	}
}

// Validate rejects non-finite weights and a non-positive recency window.
func (c ScoringConfig) Validate() error {
	weights := map[string]float64{
		"content_weight":  c.ContentWeight,
		"category_weight": c.CategoryWeight,
		"keyword_weight":  c.KeywordWeight,
		"recency_weight":  c.RecencyWeight,
	}
	for name, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("scoring.%s must be a finite number, got %v", name, w)
		}
	}
	if c.RecencyWindowDays <= 0 {
		return fmt.Errorf("scoring.recency_window_days must be positive, got %d", c.RecencyWindowDays)
	}
	return nil
}

// ScheduleConfig configures the recurring digest run by `axp watch`.
type ScheduleConfig struct {
	// Cron is a five-field cron expression (default "0 8 * * *").
	Cron string `json:"cron" yaml:"cron" mapstructure:"cron"`

	// Timezone is an IANA location name (default "Local").
	Timezone string `json:"timezone" yaml:"timezone" mapstructure:"timezone"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	LogLevel string         `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Store    StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Scoring  ScoringConfig  `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
}
