// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package triage assembles recommendation runs: it fetches candidate papers,
// builds the interest profile from liked papers and ranks the candidates.
package triage

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-explorer/internal/arxiv"
	"github.com/pdiddy/arxiv-explorer/internal/recommend"
	"github.com/pdiddy/arxiv-explorer/internal/store"
	"github.com/pdiddy/arxiv-explorer/internal/textmodel"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// ErrNoCategories is returned by Daily when the user follows no category.
var ErrNoCategories = errors.New("no preferred categories configured")

const (
	defaultFetchSize   = 200
	defaultProfileSize = 50
	defaultLimit       = 20
	topDays            = 7
)

// PaperSource fetches paper metadata from arXiv.
type PaperSource interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Paper, error)
	FetchByCategory(ctx context.Context, categories []string, days, maxResults int) ([]types.Paper, error)
	FetchByIDs(ctx context.Context, ids []string) ([]types.Paper, error)
}

// Library is the slice of the store the service reads and writes.
type Library interface {
	Categories(ctx context.Context) ([]types.PreferredCategory, error)
	Keywords(ctx context.Context) ([]types.KeywordInterest, error)
	InterestingPapers(ctx context.Context, limit int) ([]string, error)
	SavePapers(ctx context.Context, papers []types.Paper) error
	CachedPaper(ctx context.Context, id string) (types.Paper, error)
	CachedPapers(ctx context.Context, ids []string) (map[string]types.Paper, error)
}

// Service ranks papers for the user. It keeps one engine for its lifetime
// so every run shares the same fitted vocabulary.
type Service struct {
	source PaperSource
	lib    Library
	engine *recommend.Engine
	cfg    types.FetchConfig
}

// New returns a Service.
func New(source PaperSource, lib Library, engine *recommend.Engine, cfg types.FetchConfig) *Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultFetchSize
	}
	if cfg.ProfileSize <= 0 {
		cfg.ProfileSize = defaultProfileSize
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLimit
	}
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = 1
	}
	return &Service{source: source, lib: lib, engine: engine, cfg: cfg}
}

// Engine returns the scoring engine.
func (s *Service) Engine() *recommend.Engine { return s.engine }

// Daily ranks papers published in the followed categories over the last
// days days and returns the best limit of them. Zero values use the
// configured defaults.
func (s *Service) Daily(ctx context.Context, days, limit int) ([]types.ScoredPaper, error) {
	if days <= 0 {
		days = s.cfg.DefaultDays
	}
	cats, err := s.lib.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, ErrNoCategories
	}

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Category
	}

	start := time.Now()
	papers, err := s.source.FetchByCategory(ctx, names, days, s.cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("fetching recent papers: %w", err)
	}
	s.cache(ctx, papers)

	ranked, err := s.rank(ctx, papers, cats, true)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"days":       days,
		"categories": len(names),
		"candidates": len(papers),
		"elapsed":    time.Since(start).Round(time.Millisecond),
	}).Info("daily ranking complete")
	return s.truncate(ranked, limit), nil
}

// Top ranks the last week's papers.
func (s *Service) Top(ctx context.Context, limit int) ([]types.ScoredPaper, error) {
	return s.Daily(ctx, topDays, limit)
}

// Search runs a free-text arXiv search and ranks the results by category,
// keyword and recency only.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]types.ScoredPaper, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	papers, err := s.source.Search(ctx, arxiv.FreeTextQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching arXiv: %w", err)
	}
	s.cache(ctx, papers)

	cats, err := s.lib.Categories(ctx)
	if err != nil {
		return nil, err
	}
	ranked, err := s.rank(ctx, papers, cats, false)
	if err != nil {
		return nil, err
	}
	return s.truncate(ranked, limit), nil
}

// Paper returns a paper from the cache, fetching and caching it on a miss.
func (s *Service) Paper(ctx context.Context, id string) (types.Paper, error) {
	id = arxiv.NormalizeID(id)
	p, err := s.lib.CachedPaper(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.Paper{}, err
	}

	papers, err := s.source.FetchByIDs(ctx, []string{id})
	if err != nil {
		return types.Paper{}, fmt.Errorf("fetching %s: %w", id, err)
	}
	for _, p := range papers {
		if p.ID == id {
			s.cache(ctx, papers)
			return p, nil
		}
	}
	return types.Paper{}, fmt.Errorf("%s: %w", id, arxiv.ErrNotFound)
}

// Explain returns the score breakdown of one paper against the user's
// current interests.
func (s *Service) Explain(ctx context.Context, p types.Paper) (recommend.Breakdown, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return recommend.Breakdown{}, err
	}
	cats, err := s.lib.Categories(ctx)
	if err != nil {
		return recommend.Breakdown{}, err
	}
	kws, err := s.lib.Keywords(ctx)
	if err != nil {
		return recommend.Breakdown{}, err
	}
	return s.engine.Explain(p, profile, cats, kws)
}

// Profile builds the interest profile from the most recently liked papers.
// Liked papers missing from the cache are fetched once and cached; if that
// fetch fails the profile is built from what the cache holds.
func (s *Service) Profile(ctx context.Context) (textmodel.Vector, error) {
	ids, err := s.lib.InterestingPapers(ctx, s.cfg.ProfileSize)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cached, err := s.lib.CachedPapers(ctx, ids)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		fetched, err := s.source.FetchByIDs(ctx, missing)
		if err != nil {
			log.WithError(err).WithField("missing", len(missing)).Warn("could not fetch liked papers, using cache only")
		} else {
			s.cache(ctx, fetched)
			for _, p := range fetched {
				cached[p.ID] = p
			}
		}
	}

	liked := make([]types.Paper, 0, len(ids))
	for _, id := range ids {
		if p, ok := cached[id]; ok {
			liked = append(liked, p)
		}
	}
	log.WithFields(log.Fields{
		"liked":   len(ids),
		"fetched": len(missing),
		"used":    len(liked),
	}).Debug("building interest profile")
	return s.engine.BuildProfile(liked), nil
}

func (s *Service) rank(ctx context.Context, papers []types.Paper, cats []types.PreferredCategory, withProfile bool) ([]types.ScoredPaper, error) {
	var profile textmodel.Vector
	if withProfile {
		var err error
		if profile, err = s.Profile(ctx); err != nil {
			return nil, err
		}
	}
	kws, err := s.lib.Keywords(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.ScorePapers(papers, profile, cats, kws)
}

func (s *Service) cache(ctx context.Context, papers []types.Paper) {
	if err := s.lib.SavePapers(ctx, papers); err != nil {
		log.WithError(err).Warn("caching papers failed")
	}
}

func (s *Service) truncate(ranked []types.ScoredPaper, limit int) []types.ScoredPaper {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
