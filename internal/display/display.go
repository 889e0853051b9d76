// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders papers, preferences and library objects for the
// terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-explorer/internal/export"
	"github.com/pdiddy/arxiv-explorer/internal/recommend"
	"github.com/pdiddy/arxiv-explorer/internal/store"
	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

const titleWidth = 60

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

func sentenceTokenizer() *sentences.DefaultSentenceTokenizer {
	tokenizerOnce.Do(func() {
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			log.WithError(err).Warn("sentence tokenizer unavailable")
			return
		}
		tokenizer = t
	})
	return tokenizer
}

// Teaser returns the first sentence of text, cut to max runes.
func Teaser(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if t := sentenceTokenizer(); t != nil {
		if sents := t.Tokenize(text); len(sents) > 0 {
			text = strings.TrimSpace(sents[0].Text)
		}
	}
	return Truncate(text, max)
}

// Truncate shortens s to at most max runes, marking the cut with "…".
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}

// Success prints a green confirmation line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// Info prints a neutral line.
func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.CyanString("•"), fmt.Sprintf(format, args...))
}

// Warn prints a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.YellowString("!"), fmt.Sprintf(format, args...))
}

// Error prints a red error line.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.RedString("✗"), fmt.Sprintf(format, args...))
}

// Score formats a score, coloured by strength.
func Score(s float64) string {
	text := strconv.FormatFloat(s, 'f', 3, 64)
	switch {
	case s >= 0.5:
		return color.GreenString(text)
	case s >= 0.2:
		return color.YellowString(text)
	}
	return text
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// PapersTable prints ranked papers with their scores.
func PapersTable(w io.Writer, papers []types.ScoredPaper) {
	table := newTable(w, []string{"#", "Score", "arXiv ID", "Category", "Title", "Published"})
	for i, p := range papers {
		table.Append([]string{
			strconv.Itoa(i + 1),
			Score(p.Score),
			p.ID,
			p.PrimaryCategory(),
			Truncate(p.Title, titleWidth),
			p.Published.Format("2006-01-02"),
		})
	}
	table.Render()
}

// PaperDetail prints the full record of one paper with the user's
// reaction and notes.
func PaperDetail(w io.Writer, p types.Paper, reaction types.InteractionType, notes []types.PaperNote) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s\n\n", bold(p.Title))
	fmt.Fprintf(w, "arXiv:     %s\n", p.ID)
	fmt.Fprintf(w, "Authors:   %s\n", export.ShortAuthors(p.Authors, 10))
	fmt.Fprintf(w, "Category:  %s\n", strings.Join(p.Categories, ", "))
	fmt.Fprintf(w, "Published: %s\n", p.Published.Format("2006-01-02"))
	if !p.Updated.IsZero() && !p.Updated.Equal(p.Published) {
		fmt.Fprintf(w, "Updated:   %s\n", p.Updated.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "Abstract:  %s\n", p.AbstractURL())
	if p.PDFURL != "" {
		fmt.Fprintf(w, "PDF:       %s\n", p.PDFURL)
	}
	switch reaction {
	case types.Interesting:
		fmt.Fprintf(w, "Marked:    %s\n", color.GreenString("interesting"))
	case types.NotInteresting:
		fmt.Fprintf(w, "Marked:    %s\n", color.RedString("not interesting"))
	}
	fmt.Fprintf(w, "\n%s\n", p.Abstract)

	if len(notes) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Notes"))
		for _, n := range notes {
			fmt.Fprintf(w, "  [%d] (%s) %s\n", n.ID, n.Type, n.Content)
		}
	}
}

// ScoreBreakdown prints the per-signal values behind a score.
func ScoreBreakdown(w io.Writer, cfg types.ScoringConfig, b recommend.Breakdown) {
	table := newTable(w, []string{"Signal", "Value", "Weight", "Contribution"})
	rows := []struct {
		name          string
		value, weight float64
	}{
		{"content", b.Content, cfg.ContentWeight},
		{"category", b.Category, cfg.CategoryWeight},
		{"keyword", b.Keyword, cfg.KeywordWeight},
		{"recency", b.Recency, cfg.RecencyWeight},
	}
	for _, r := range rows {
		table.Append([]string{
			r.name,
			strconv.FormatFloat(r.value, 'f', 3, 64),
			strconv.FormatFloat(r.weight, 'f', 2, 64),
			strconv.FormatFloat(r.value*r.weight, 'f', 4, 64),
		})
	}
	table.SetFooter([]string{"", "", "total", strconv.FormatFloat(b.Total, 'f', 4, 64)})
	table.Render()
}

// PreferencesTable prints followed categories and keyword interests.
func PreferencesTable(w io.Writer, cats []types.PreferredCategory, kws []types.KeywordInterest) {
	if len(cats) == 0 {
		Info(w, "No preferred categories. Add one with `axp prefs add-category`.")
	} else {
		table := newTable(w, []string{"Category", "Priority", "Added"})
		for _, c := range cats {
			table.Append([]string{c.Category, strconv.Itoa(c.Priority), c.AddedAt.Format("2006-01-02")})
		}
		table.Render()
	}
	fmt.Fprintln(w)
	if len(kws) == 0 {
		Info(w, "No keyword interests.")
		return
	}
	table := newTable(w, []string{"Keyword", "Weight", "Source"})
	for _, k := range kws {
		table.Append([]string{k.Keyword, strconv.FormatFloat(k.Weight, 'f', -1, 64), k.Source})
	}
	table.Render()
}

// NotesTable prints notes.
func NotesTable(w io.Writer, notes []types.PaperNote) {
	table := newTable(w, []string{"ID", "arXiv ID", "Type", "Note", "Created"})
	for _, n := range notes {
		table.Append([]string{
			strconv.FormatInt(n.ID, 10),
			n.PaperID,
			string(n.Type),
			Truncate(n.Content, titleWidth),
			n.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

// ListsTable prints reading lists with their progress.
func ListsTable(w io.Writer, lists []store.ListSummary) {
	table := newTable(w, []string{"Name", "Papers", "Done", "Description"})
	for _, l := range lists {
		table.Append([]string{
			l.Name,
			strconv.Itoa(l.Total),
			strconv.Itoa(l.Completed),
			Truncate(l.Description, 40),
		})
	}
	table.Render()
}

// ListEntriesTable prints the papers of a reading list with status icons.
func ListEntriesTable(w io.Writer, entries []export.ListEntry) {
	table := newTable(w, []string{"", "arXiv ID", "Title", "Status"})
	for _, e := range entries {
		table.Append([]string{
			export.StatusIcon(e.Status),
			e.Paper.ID,
			Truncate(e.Paper.Title, titleWidth),
			string(e.Status),
		})
	}
	table.Render()
}
