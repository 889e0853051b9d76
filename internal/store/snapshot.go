// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// Preferences returns the followed categories and keyword interests.
func (s *Store) Preferences(ctx context.Context) (types.PreferenceSnapshot, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return types.PreferenceSnapshot{}, err
	}
	kws, err := s.Keywords(ctx)
	if err != nil {
		return types.PreferenceSnapshot{}, err
	}
	return types.PreferenceSnapshot{Categories: cats, Keywords: kws}, nil
}

// ExportPreferences writes the categories and keywords to w as YAML.
func (s *Store) ExportPreferences(ctx context.Context, w io.Writer) error {
	snap, err := s.Preferences(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	return enc.Close()
}

// ImportPreferences reads a YAML snapshot from r and merges it into the
// store: listed categories and keywords are added or updated, nothing is
// removed. The whole import is applied atomically.
func (s *Store) ImportPreferences(ctx context.Context, r io.Reader) (types.PreferenceSnapshot, error) {
	var snap types.PreferenceSnapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil && err != io.EOF {
		return types.PreferenceSnapshot{}, fmt.Errorf("decoding preferences: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.PreferenceSnapshot{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.timestamp()
	for _, c := range snap.Categories {
		cat := strings.TrimSpace(c.Category)
		if cat == "" {
			return types.PreferenceSnapshot{}, fmt.Errorf("category entry without a name")
		}
		priority := c.Priority
		if priority < 1 {
			priority = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO preferred_categories (category, priority, added_at) VALUES (?, ?, ?)
			 ON CONFLICT(category) DO UPDATE SET priority=excluded.priority`,
			cat, priority, now); err != nil {
			return types.PreferenceSnapshot{}, fmt.Errorf("importing category %s: %w", cat, err)
		}
	}
	for _, k := range snap.Keywords {
		weight := k.Weight
		if weight == 0 {
			weight = 1
		}
		if err := s.addKeyword(ctx, tx, k.Keyword, weight, k.Source); err != nil {
			return types.PreferenceSnapshot{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return types.PreferenceSnapshot{}, err
	}
	log.WithFields(log.Fields{
		"categories": len(snap.Categories),
		"keywords":   len(snap.Keywords),
	}).Info("preferences imported")
	return snap, nil
}
