// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// ListSummary is a reading list with its progress counts.
type ListSummary struct {
	types.ReadingList
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
}

// CreateList creates an empty reading list. It returns ErrDuplicate when
// a list with the same name exists.
func (s *Store) CreateList(ctx context.Context, name, description string) (types.ReadingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.ReadingList{}, fmt.Errorf("list name must not be empty")
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reading_lists (name, description, created_at) VALUES (?, ?, ?)`,
		name, description, formatTime(now))
	if isUniqueViolation(err) {
		return types.ReadingList{}, fmt.Errorf("list %q: %w", name, ErrDuplicate)
	}
	if err != nil {
		return types.ReadingList{}, fmt.Errorf("creating list %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.ReadingList{}, fmt.Errorf("reading list id: %w", err)
	}
	return types.ReadingList{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   parseTime(formatTime(now)),
	}, nil
}

// DeleteList removes a list and its entries. It reports whether the list existed.
func (s *Store) DeleteList(ctx context.Context, name string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reading_list_papers WHERE list_id IN (SELECT id FROM reading_lists WHERE name = ?)`,
		name); err != nil {
		return false, fmt.Errorf("deleting entries of %q: %w", name, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM reading_lists WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("deleting list %q: %w", name, err)
	}
	ok, err := affected(res)
	if err != nil {
		return false, err
	}
	return ok, tx.Commit()
}

// List returns the reading list called name, or ErrNotFound.
func (s *Store) List(ctx context.Context, name string) (types.ReadingList, error) {
	var (
		l         types.ReadingList
		desc      sql.NullString
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM reading_lists WHERE name = ?`, name,
	).Scan(&l.ID, &l.Name, &desc, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ReadingList{}, fmt.Errorf("list %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return types.ReadingList{}, fmt.Errorf("reading list %q: %w", name, err)
	}
	l.Description = desc.String
	l.CreatedAt = parseTime(createdAt)
	return l, nil
}

// Lists returns all reading lists in creation order with their progress.
func (s *Store) Lists(ctx context.Context) ([]ListSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, l.name, l.description, l.created_at,
			COUNT(p.id),
			COALESCE(SUM(CASE WHEN p.status = ? THEN 1 ELSE 0 END), 0)
		 FROM reading_lists l
		 LEFT JOIN reading_list_papers p ON p.list_id = l.id
		 GROUP BY l.id
		 ORDER BY l.created_at ASC, l.id ASC`, string(types.StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	defer rows.Close()

	var lists []ListSummary
	for rows.Next() {
		var (
			ls        ListSummary
			desc      sql.NullString
			createdAt string
		)
		if err := rows.Scan(&ls.ID, &ls.Name, &desc, &createdAt, &ls.Total, &ls.Completed); err != nil {
			return nil, fmt.Errorf("scanning list: %w", err)
		}
		ls.Description = desc.String
		ls.CreatedAt = parseTime(createdAt)
		lists = append(lists, ls)
	}
	return lists, rows.Err()
}

// AddToList appends a paper to the end of a list as unread. It reports
// false if the paper was already on the list.
func (s *Store) AddToList(ctx context.Context, name, paperID string) (bool, error) {
	l, err := s.List(ctx, name)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var maxPos int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM reading_list_papers WHERE list_id = ?`, l.ID,
	).Scan(&maxPos); err != nil {
		return false, fmt.Errorf("reading list positions: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO reading_list_papers (list_id, arxiv_id, status, position, added_at)
		 VALUES (?, ?, ?, ?, ?)`,
		l.ID, paperID, string(types.StatusUnread), maxPos+1, s.timestamp())
	if err != nil {
		return false, fmt.Errorf("adding %s to %q: %w", paperID, name, err)
	}
	added, err := affected(res)
	if err != nil {
		return false, err
	}
	return added, tx.Commit()
}

// RemoveFromList drops a paper from a list. It reports whether it was there.
func (s *Store) RemoveFromList(ctx context.Context, name, paperID string) (bool, error) {
	l, err := s.List(ctx, name)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reading_list_papers WHERE list_id = ? AND arxiv_id = ?`, l.ID, paperID)
	if err != nil {
		return false, fmt.Errorf("removing %s from %q: %w", paperID, name, err)
	}
	return affected(res)
}

// SetStatus updates the reading status of a paper on a list. It returns
// ErrNotFound if the paper is not on the list.
func (s *Store) SetStatus(ctx context.Context, name, paperID string, status types.ReadingStatus) error {
	if _, err := types.ParseReadingStatus(string(status)); err != nil {
		return err
	}
	l, err := s.List(ctx, name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE reading_list_papers SET status = ? WHERE list_id = ? AND arxiv_id = ?`,
		string(status), l.ID, paperID)
	if err != nil {
		return fmt.Errorf("updating status of %s: %w", paperID, err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s on list %q: %w", paperID, name, ErrNotFound)
	}
	return nil
}

// ListPapers returns the entries of a list in position order.
func (s *Store) ListPapers(ctx context.Context, name string) ([]types.ReadingListPaper, error) {
	l, err := s.List(ctx, name)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, list_id, arxiv_id, status, position, added_at FROM reading_list_papers
		 WHERE list_id = ? ORDER BY position ASC, id ASC`, l.ID)
	if err != nil {
		return nil, fmt.Errorf("querying papers of %q: %w", name, err)
	}
	defer rows.Close()

	var entries []types.ReadingListPaper
	for rows.Next() {
		var (
			e       types.ReadingListPaper
			status  string
			addedAt string
		)
		if err := rows.Scan(&e.ID, &e.ListID, &e.PaperID, &status, &e.Position, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning list entry: %w", err)
		}
		e.Status = types.ReadingStatus(status)
		e.AddedAt = parseTime(addedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
