// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

const paperColumns = `arxiv_id, title, abstract, authors, categories, published, updated, pdf_url`

// SavePapers upserts paper metadata into the local cache.
func (s *Store) SavePapers(ctx context.Context, papers []types.Paper) error {
	if len(papers) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (`+paperColumns+`, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(arxiv_id) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract, authors=excluded.authors,
			categories=excluded.categories, published=excluded.published,
			updated=excluded.updated, pdf_url=excluded.pdf_url, cached_at=excluded.cached_at`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	cachedAt := s.timestamp()
	for _, p := range papers {
		if p.ID == "" {
			continue
		}
		authorsJSON, _ := json.Marshal(nonNil(p.Authors))
		categoriesJSON, _ := json.Marshal(nonNil(p.Categories))
		var updated sql.NullString
		if !p.Updated.IsZero() {
			updated = sql.NullString{String: formatTime(p.Updated), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Title, p.Abstract, string(authorsJSON), string(categoriesJSON),
			formatTime(p.Published), updated, p.PDFURL, cachedAt,
		)
		if err != nil {
			return fmt.Errorf("caching paper %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.WithField("papers", len(papers)).Debug("papers cached")
	return nil
}

// CachedPaper returns a paper from the local cache or ErrNotFound.
func (s *Store) CachedPaper(ctx context.Context, id string) (types.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE arxiv_id = ?`, id)
	p, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Paper{}, fmt.Errorf("paper %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.Paper{}, fmt.Errorf("reading cached paper %s: %w", id, err)
	}
	return p, nil
}

// CachedPapers returns the cached papers among ids, keyed by ID. Missing
// IDs are absent from the map.
func (s *Store) CachedPapers(ctx context.Context, ids []string) (map[string]types.Paper, error) {
	out := make(map[string]types.Paper, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE arxiv_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cached papers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cached paper: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(sc scanner) (types.Paper, error) {
	var (
		p                   types.Paper
		authors, categories string
		published           string
		updated, pdfURL     sql.NullString
	)
	if err := sc.Scan(&p.ID, &p.Title, &p.Abstract, &authors, &categories, &published, &updated, &pdfURL); err != nil {
		return types.Paper{}, err
	}
	if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
		return types.Paper{}, fmt.Errorf("decoding authors of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(categories), &p.Categories); err != nil {
		return types.Paper{}, fmt.Errorf("decoding categories of %s: %w", p.ID, err)
	}
	p.Published = parseTime(published)
	p.Updated = parseTime(updated.String)
	p.PDFURL = pdfURL.String
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
