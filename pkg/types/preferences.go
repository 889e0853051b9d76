// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// PreferredCategory is a category the user follows. Higher priority means
// more important; priorities start at 1.
type PreferredCategory struct {
	ID       int64     `json:"id" yaml:"-"`
	Category string    `json:"category" yaml:"category"`
	Priority int       `json:"priority" yaml:"priority"`
	AddedAt  time.Time `json:"added_at" yaml:"-"`
}

// Keyword sources.
const (
	KeywordExplicit = "explicit"
	KeywordInferred = "inferred"
)

// ParseKeywordSource validates a keyword source. Empty means explicit.
func ParseKeywordSource(s string) (string, error) {
	switch src := strings.ToLower(strings.TrimSpace(s)); src {
	case "", KeywordExplicit:
		return KeywordExplicit, nil
	case KeywordInferred:
		return KeywordInferred, nil
	}
	return "", fmt.Errorf("unknown keyword source %q: use explicit or inferred", s)
}

// KeywordInterest is a lower-cased keyword with a weight that is added to a
// paper's keyword score whenever the keyword appears in its text.
type KeywordInterest struct {
	ID      int64   `json:"id" yaml:"-"`
	Keyword string  `json:"keyword" yaml:"keyword"`
	Weight  float64 `json:"weight" yaml:"weight"`
	Source  string  `json:"source" yaml:"source,omitempty"`
}

// InteractionType records whether the user liked or dismissed a paper.
type InteractionType string

const (
	Interesting    InteractionType = "interesting"
	NotInteresting InteractionType = "not_interesting"
)

// PreferenceSnapshot is the portable form of the user's interests, used for
// YAML import and export.
type PreferenceSnapshot struct {
	Categories []PreferredCategory `json:"categories" yaml:"categories"`
	Keywords   []KeywordInterest   `json:"keywords" yaml:"keywords"`
}
