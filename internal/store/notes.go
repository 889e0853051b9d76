// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// AddNote attaches a note to a paper. An empty note type means general.
func (s *Store) AddNote(ctx context.Context, paperID string, noteType types.NoteType, content string) (types.PaperNote, error) {
	content = strings.TrimSpace(content)
	if paperID == "" {
		return types.PaperNote{}, fmt.Errorf("paper id must not be empty")
	}
	if content == "" {
		return types.PaperNote{}, fmt.Errorf("note content must not be empty")
	}
	if noteType == "" {
		noteType = types.NoteGeneral
	}
	if _, err := types.ParseNoteType(string(noteType)); err != nil {
		return types.PaperNote{}, err
	}

	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO paper_notes (arxiv_id, note_type, content, created_at) VALUES (?, ?, ?, ?)`,
		paperID, string(noteType), content, formatTime(now))
	if err != nil {
		return types.PaperNote{}, fmt.Errorf("adding note to %s: %w", paperID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.PaperNote{}, fmt.Errorf("reading note id: %w", err)
	}
	return types.PaperNote{
		ID:        id,
		PaperID:   paperID,
		Type:      noteType,
		Content:   content,
		CreatedAt: parseTime(formatTime(now)),
	}, nil
}

// DeleteNote removes a note by ID. It reports whether the note existed.
func (s *Store) DeleteNote(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM paper_notes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting note %d: %w", id, err)
	}
	return affected(res)
}

// Notes returns notes newest first, optionally restricted to one paper
// and one note type. Empty filters match everything.
func (s *Store) Notes(ctx context.Context, paperID string, noteType types.NoteType) ([]types.PaperNote, error) {
	query := `SELECT id, arxiv_id, note_type, content, created_at FROM paper_notes WHERE 1=1`
	var args []any
	if paperID != "" {
		query += ` AND arxiv_id = ?`
		args = append(args, paperID)
	}
	if noteType != "" {
		query += ` AND note_type = ?`
		args = append(args, string(noteType))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []types.PaperNote
	for rows.Next() {
		var n types.PaperNote
		var nt, createdAt string
		if err := rows.Scan(&n.ID, &n.PaperID, &nt, &n.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		n.Type = types.NoteType(nt)
		n.CreatedAt = parseTime(createdAt)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
