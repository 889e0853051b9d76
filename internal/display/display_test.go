// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/arxiv-explorer/internal/export"
	"github.com/pdiddy/arxiv-explorer/internal/recommend"
	"github.com/pdiddy/arxiv-explorer/internal/store"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

func init() {
	color.NoColor = true
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer title here", 8, "a longe…"},
		{"ünïcödé", 4, "ünï…"},
		{"anything", 0, "anything"},
		{"ab", 1, "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.max), tt.in)
	}
}

func TestTeaserFirstSentence(t *testing.T) {
	abstract := "We study jet tagging with graph networks. Results improve on prior work by 10%."
	assert.Equal(t, "We study jet tagging with graph networks.", Teaser(abstract, 200))
	assert.Equal(t, "We study…", Teaser(abstract, 9))
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "added %s", "hep-ph")
	Error(&buf, "failed")
	Info(&buf, "note")
	Warn(&buf, "careful")
	assert.Equal(t, "✓ added hep-ph\n✗ failed\n• note\n! careful\n", buf.String())
}

func TestPapersTable(t *testing.T) {
	var buf bytes.Buffer
	PapersTable(&buf, []types.ScoredPaper{
		{Paper: types.Paper{
			ID:         "2603.01234",
			Title:      "Jet Tagging with Graph Transformers",
			Categories: []string{"hep-ph", "cs.LG"},
			Published:  time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		}, Score: 0.2483},
	})
	out := buf.String()
	assert.Contains(t, out, "ARXIV ID")
	assert.Contains(t, out, "2603.01234")
	assert.Contains(t, out, "0.248")
	assert.Contains(t, out, "hep-ph")
	assert.NotContains(t, out, "cs.LG")
	assert.Contains(t, out, "2026-03-08")
}

func TestPaperDetail(t *testing.T) {
	var buf bytes.Buffer
	p := types.Paper{
		ID:        "2603.01234",
		Title:     "Jet Tagging",
		Abstract:  "We study jets.",
		Authors:   []string{"Ada Lovelace"},
		Published: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	PaperDetail(&buf, p, types.Interesting, []types.PaperNote{{ID: 7, Type: types.NoteQuestion, Content: "which dataset?"}})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Jet Tagging\n"))
	assert.Contains(t, out, "https://arxiv.org/abs/2603.01234")
	assert.Contains(t, out, "Marked:    interesting")
	assert.Contains(t, out, "[7] (question) which dataset?")
}

func TestScoreBreakdown(t *testing.T) {
	var buf bytes.Buffer
	ScoreBreakdown(&buf, types.DefaultScoringConfig(), recommend.Breakdown{Category: 1, Recency: 0.5, Total: 0.225})
	out := buf.String()
	assert.Contains(t, out, "category")
	assert.Contains(t, out, "0.2000")
	assert.Contains(t, out, "0.2250")
}

func TestPreferencesTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PreferencesTable(&buf, nil, nil)
	assert.Contains(t, buf.String(), "No preferred categories")
	assert.Contains(t, buf.String(), "No keyword interests")
}

func TestListTables(t *testing.T) {
	var buf bytes.Buffer
	ListsTable(&buf, []store.ListSummary{{ReadingList: types.ReadingList{Name: "thesis"}, Total: 3, Completed: 1}})
	ListEntriesTable(&buf, []export.ListEntry{{Paper: types.Paper{ID: "a", Title: "A"}, Status: types.StatusReading}})
	out := buf.String()
	assert.Contains(t, out, "thesis")
	assert.Contains(t, out, "◐")
	assert.Contains(t, out, "reading")
}
