// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// ReadingStatus tracks progress through a paper on a reading list.
type ReadingStatus string

const (
	StatusUnread    ReadingStatus = "unread"
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
)

// ParseReadingStatus validates s as a ReadingStatus.
func ParseReadingStatus(s string) (ReadingStatus, error) {
	switch st := ReadingStatus(s); st {
	case StatusUnread, StatusReading, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown reading status %q: use unread, reading, or completed", s)
}

// NoteType classifies a paper note.
type NoteType string

const (
	NoteGeneral  NoteType = "general"
	NoteQuestion NoteType = "question"
	NoteInsight  NoteType = "insight"
	NoteTodo     NoteType = "todo"
)

// ParseNoteType validates s as a NoteType.
func ParseNoteType(s string) (NoteType, error) {
	switch nt := NoteType(s); nt {
	case NoteGeneral, NoteQuestion, NoteInsight, NoteTodo:
		return nt, nil
	}
	return "", fmt.Errorf("unknown note type %q: use general, question, insight, or todo", s)
}

// PaperNote is a free-text note attached to a paper.
type PaperNote struct {
	ID        int64     `json:"id" yaml:"id"`
	PaperID   string    `json:"arxiv_id" yaml:"arxiv_id"`
	Type      NoteType  `json:"note_type" yaml:"note_type"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ReadingList is a named, ordered collection of papers.
type ReadingList struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// ReadingListPaper is one entry of a reading list.
type ReadingListPaper struct {
	ID       int64         `json:"id" yaml:"id"`
	ListID   int64         `json:"list_id" yaml:"list_id"`
	PaperID  string        `json:"arxiv_id" yaml:"arxiv_id"`
	Status   ReadingStatus `json:"status" yaml:"status"`
	Position int           `json:"position" yaml:"position"`
	AddedAt  time.Time     `json:"added_at" yaml:"added_at"`
}
