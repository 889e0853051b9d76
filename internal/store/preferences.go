// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// AddCategory follows category with the given priority, updating the
// priority if it is already followed.
func (s *Store) AddCategory(ctx context.Context, category string, priority int) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Errorf("category must not be empty")
	}
	if priority < 1 {
		return fmt.Errorf("priority must be at least 1, got %d", priority)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferred_categories (category, priority, added_at) VALUES (?, ?, ?)
		 ON CONFLICT(category) DO UPDATE SET priority=excluded.priority`,
		category, priority, s.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("adding category %s: %w", category, err)
	}
	return nil
}

// RemoveCategory stops following category. It reports whether it was followed.
func (s *Store) RemoveCategory(ctx context.Context, category string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM preferred_categories WHERE category = ?`, strings.TrimSpace(category))
	if err != nil {
		return false, fmt.Errorf("removing category %s: %w", category, err)
	}
	return affected(res)
}

// Categories returns the followed categories, highest priority first.
func (s *Store) Categories(ctx context.Context) ([]types.PreferredCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, priority, added_at FROM preferred_categories
		 ORDER BY priority DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var cats []types.PreferredCategory
	for rows.Next() {
		var c types.PreferredCategory
		var addedAt string
		if err := rows.Scan(&c.ID, &c.Category, &c.Priority, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.AddedAt = parseTime(addedAt)
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// AddKeyword records an explicit keyword interest. Keywords are stored
// lower-cased; adding an existing keyword replaces its weight.
func (s *Store) AddKeyword(ctx context.Context, keyword string, weight float64) error {
	return s.addKeyword(ctx, s.db, keyword, weight, types.KeywordExplicit)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) addKeyword(ctx context.Context, db execer, keyword string, weight float64, source string) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return fmt.Errorf("keyword must not be empty")
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("keyword %q: weight must be a finite number", keyword)
	}
	source, err := types.ParseKeywordSource(source)
	if err != nil {
		return fmt.Errorf("keyword %q: %w", keyword, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO keyword_interests (keyword, weight, source) VALUES (?, ?, ?)
		 ON CONFLICT(keyword) DO UPDATE SET weight=excluded.weight, source=excluded.source`,
		keyword, weight, source,
	)
	if err != nil {
		return fmt.Errorf("adding keyword %q: %w", keyword, err)
	}
	return nil
}

// RemoveKeyword deletes a keyword interest. It reports whether it existed.
func (s *Store) RemoveKeyword(ctx context.Context, keyword string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM keyword_interests WHERE keyword = ?`, strings.ToLower(strings.TrimSpace(keyword)))
	if err != nil {
		return false, fmt.Errorf("removing keyword %q: %w", keyword, err)
	}
	return affected(res)
}

// Keywords returns all keyword interests, heaviest first.
func (s *Store) Keywords(ctx context.Context) ([]types.KeywordInterest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, keyword, weight, source FROM keyword_interests
		 ORDER BY weight DESC, keyword ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying keywords: %w", err)
	}
	defer rows.Close()

	var kws []types.KeywordInterest
	for rows.Next() {
		var k types.KeywordInterest
		if err := rows.Scan(&k.ID, &k.Keyword, &k.Weight, &k.Source); err != nil {
			return nil, fmt.Errorf("scanning keyword: %w", err)
		}
		kws = append(kws, k)
	}
	return kws, rows.Err()
}

// MarkInteresting records that the user liked a paper, replacing any
// earlier dislike.
func (s *Store) MarkInteresting(ctx context.Context, paperID string) error {
	return s.setInteraction(ctx, paperID, types.Interesting, types.NotInteresting)
}

// MarkNotInteresting records that the user dismissed a paper, replacing
// any earlier like.
func (s *Store) MarkNotInteresting(ctx context.Context, paperID string) error {
	return s.setInteraction(ctx, paperID, types.NotInteresting, types.Interesting)
}

func (s *Store) setInteraction(ctx context.Context, paperID string, set, clear types.InteractionType) error {
	if paperID == "" {
		return fmt.Errorf("paper id must not be empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM paper_interactions WHERE arxiv_id = ? AND interaction_type = ?`,
		paperID, string(clear)); err != nil {
		return fmt.Errorf("clearing %s: %w", clear, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO paper_interactions (arxiv_id, interaction_type, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(arxiv_id, interaction_type) DO UPDATE SET created_at=excluded.created_at`,
		paperID, string(set), s.timestamp()); err != nil {
		return fmt.Errorf("recording %s: %w", set, err)
	}
	return tx.Commit()
}

// ClearInteraction forgets any like or dislike of a paper. It reports
// whether there was one.
func (s *Store) ClearInteraction(ctx context.Context, paperID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM paper_interactions WHERE arxiv_id = ?`, paperID)
	if err != nil {
		return false, fmt.Errorf("clearing interaction for %s: %w", paperID, err)
	}
	return affected(res)
}

// Interaction returns the user's reaction to a paper, or "" if none.
func (s *Store) Interaction(ctx context.Context, paperID string) (types.InteractionType, error) {
	var it string
	err := s.db.QueryRowContext(ctx,
		`SELECT interaction_type FROM paper_interactions WHERE arxiv_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`, paperID).Scan(&it)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying interaction for %s: %w", paperID, err)
	}
	return types.InteractionType(it), nil
}

// InterestingPapers returns the IDs of liked papers, most recently liked
// first. A limit of zero or less returns all of them.
func (s *Store) InterestingPapers(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT arxiv_id FROM paper_interactions WHERE interaction_type = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, string(types.Interesting), limit)
	if err != nil {
		return nil, fmt.Errorf("querying liked papers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning liked paper: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
