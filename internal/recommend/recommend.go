// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend scores candidate papers against the user's interests
// and returns them ranked.
//
// A paper's score is a weighted sum of four signals:
//
//	score = content·S_content + category·S_category + keyword·S_keyword + recency·S_recency
//
// S_content is the TF-IDF cosine similarity with the liked-paper profile,
// S_category is priority/maxPriority for the first of the paper's categories
// the user follows, S_keyword sums the weights of keywords found in the
// lower-cased title and abstract, and S_recency decays linearly from 1 on
// the publication day to 0 at the end of the recency window.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-explorer/internal/textmodel"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var (
	// ErrInvalidPaper reports a candidate that is missing a required field.
	ErrInvalidPaper = errors.New("invalid paper")

	// ErrInvalidKeyword reports a keyword interest with a non-finite weight,
	// or keyword weights so large that a score could overflow.
	ErrInvalidKeyword = errors.New("invalid keyword interest")
)

// Engine is long-lived: its text model fits once and keeps its vocabulary
// for every later profile and score.
type Engine struct {
	cfg   types.ScoringConfig
	model *textmodel.Model
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for recency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithModel supplies the text model, e.g. one with non-default options.
func WithModel(m *textmodel.Model) Option {
	return func(e *Engine) { e.model = m }
}

// NewEngine returns an engine using cfg. A non-finite weight or a zero or
// negative recency window falls back to its default.
func NewEngine(cfg types.ScoringConfig, opts ...Option) *Engine {
	def := types.DefaultScoringConfig()
	finiteOr(&cfg.ContentWeight, def.ContentWeight)
	finiteOr(&cfg.CategoryWeight, def.CategoryWeight)
	finiteOr(&cfg.KeywordWeight, def.KeywordWeight)
	finiteOr(&cfg.RecencyWeight, def.RecencyWeight)
	if cfg.RecencyWindowDays <= 0 {
		cfg.RecencyWindowDays = def.RecencyWindowDays
	}
	e := &Engine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.model == nil {
		e.model = textmodel.New()
	}
	return e
}

func finiteOr(w *float64, fallback float64) {
	if !isFinite(*w) {
		*w = fallback
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Config returns the weights in use.
func (e *Engine) Config() types.ScoringConfig { return e.cfg }

// IsFitted reports whether the text model has fixed its vocabulary.
func (e *Engine) IsFitted() bool { return e.model.IsFitted() }

// BuildProfile builds the interest profile from liked papers. It returns nil
// when there are no liked papers, meaning no personalization signal.
func (e *Engine) BuildProfile(liked []types.Paper) textmodel.Vector {
	docs := make([]string, len(liked))
	for i, p := range liked {
		docs[i] = p.Text()
	}
	return e.model.BuildProfile(docs)
}

// Breakdown holds the unweighted signals and the weighted total for one paper.
type Breakdown struct {
	Content  float64 `json:"content"`
	Category float64 `json:"category"`
	Keyword  float64 `json:"keyword"`
	Recency  float64 `json:"recency"`
	Total    float64 `json:"total"`
}

// ScorePapers scores every candidate and returns them sorted by descending
// score; equal scores keep their input order. A candidate without an ID or
// publication time fails the whole call.
func (e *Engine) ScorePapers(candidates []types.Paper, profile textmodel.Vector, preferred []types.PreferredCategory, keywords []types.KeywordInterest) ([]types.ScoredPaper, error) {
	s, err := e.newScorer(candidates, profile, preferred, keywords)
	if err != nil {
		return nil, err
	}

	results := make([]types.ScoredPaper, len(candidates))
	for i, p := range candidates {
		results[i] = types.ScoredPaper{Paper: p, Score: s.score(p).Total}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// Explain returns the per-signal breakdown of a single paper's score.
func (e *Engine) Explain(paper types.Paper, profile textmodel.Vector, preferred []types.PreferredCategory, keywords []types.KeywordInterest) (Breakdown, error) {
	s, err := e.newScorer([]types.Paper{paper}, profile, preferred, keywords)
	if err != nil {
		return Breakdown{}, err
	}
	return s.score(paper), nil
}

type weightedKeyword struct {
	keyword string
	weight  float64
}

// scorer holds the lookup tables built once per scoring call.
type scorer struct {
	e           *Engine
	profile     textmodel.Vector
	priorities  map[string]int
	maxPriority int
	keywords    []weightedKeyword
	now         time.Time
}

func (e *Engine) newScorer(candidates []types.Paper, profile textmodel.Vector, preferred []types.PreferredCategory, keywords []types.KeywordInterest) (*scorer, error) {
	for i, p := range candidates {
		if err := validatePaper(p); err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
	}

	s := &scorer{
		e:           e,
		profile:     profile,
		priorities:  make(map[string]int, len(preferred)),
		maxPriority: 1,
		now:         e.now(),
	}

	for i, c := range preferred {
		s.priorities[c.Category] = c.Priority
		if i == 0 || c.Priority > s.maxPriority {
			s.maxPriority = c.Priority
		}
	}

	// Later duplicates overwrite the weight but keep the first position.
	index := make(map[string]int, len(keywords))
	for _, k := range keywords {
		if !isFinite(k.Weight) {
			return nil, fmt.Errorf("%w: %q has weight %v", ErrInvalidKeyword, k.Keyword, k.Weight)
		}
		if k.Keyword == "" {
			continue
		}
		if i, ok := index[k.Keyword]; ok {
			s.keywords[i].weight = k.Weight
			continue
		}
		index[k.Keyword] = len(s.keywords)
		s.keywords = append(s.keywords, weightedKeyword{keyword: k.Keyword, weight: k.Weight})
	}

	if bound := s.maxMagnitude(); !isFinite(bound) {
		return nil, fmt.Errorf("%w: weights can push a score past the float64 range", ErrInvalidKeyword)
	}
	return s, nil
}

// maxMagnitude bounds |score| over every possible paper. Each signal is at
// most 1 in magnitude except category (priority ratio) and keyword (sum of
// matched weights), so a finite bound guarantees every total is finite.
func (s *scorer) maxMagnitude() float64 {
	cfg := s.e.cfg
	var kwSum float64
	for _, k := range s.keywords {
		kwSum += math.Abs(k.weight)
	}
	catMax := 1.0
	if s.maxPriority != 0 {
		for _, priority := range s.priorities {
			catMax = math.Max(catMax, math.Abs(float64(priority)/float64(s.maxPriority)))
		}
	}
	return math.Abs(cfg.ContentWeight) +
		math.Abs(cfg.CategoryWeight)*catMax +
		math.Abs(cfg.KeywordWeight)*kwSum +
		math.Abs(cfg.RecencyWeight)
}

func validatePaper(p types.Paper) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing identifier (title %q)", ErrInvalidPaper, p.Title)
	}
	if p.Published.IsZero() {
		return fmt.Errorf("%w: %s has no publication time", ErrInvalidPaper, p.ID)
	}
	return nil
}

func (s *scorer) score(p types.Paper) Breakdown {
	cfg := s.e.cfg
	b := Breakdown{
		Content:  s.content(p),
		Category: s.category(p),
		Keyword:  s.keyword(p),
		Recency:  s.recency(p),
	}
	b.Total = cfg.ContentWeight*b.Content +
		cfg.CategoryWeight*b.Category +
		cfg.KeywordWeight*b.Keyword +
		cfg.RecencyWeight*b.Recency
	return b
}

func (s *scorer) content(p types.Paper) float64 {
	if s.profile == nil {
		return 0
	}
	sim := s.e.model.Similarity(s.profile, p.Text())
	if !isFinite(sim) {
		return 0
	}
	return sim
}

// category uses only the first of the paper's tags that the user follows.
func (s *scorer) category(p types.Paper) float64 {
	for _, cat := range p.Categories {
		priority, ok := s.priorities[cat]
		if !ok {
			continue
		}
		if s.maxPriority <= 0 {
			return 1
		}
		return float64(priority) / float64(s.maxPriority)
	}
	return 0
}

func (s *scorer) keyword(p types.Paper) float64 {
	if len(s.keywords) == 0 {
		return 0
	}
	text := strings.ToLower(p.Text())
	var total float64
	for _, k := range s.keywords {
		if strings.Contains(text, k.keyword) {
			total += k.weight
		}
	}
	return total
}

func (s *scorer) recency(p types.Paper) float64 {
	window := s.e.cfg.RecencyWindowDays
	days := DaysOld(p.Published, s.now)
	if days >= window {
		return 0
	}
	return 1 - float64(days)/float64(window)
}

// DaysOld returns the whole days between published and now, never negative.
func DaysOld(published, now time.Time) int {
	age := now.Sub(published)
	if age <= 0 {
		return 0
	}
	return int(age / (24 * time.Hour))
}
