// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

func samplePapers() []types.Paper {
	return []types.Paper{
		{
			ID:         "1706.03762",
			Title:      "Attention Is All You Need",
			Authors:    []string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar", "Jakob Uszkoreit"},
			Categories: []string{"cs.CL", "cs.LG"},
			Published:  time.Date(2017, 6, 12, 17, 57, 34, 0, time.UTC),
			PDFURL:     "http://arxiv.org/pdf/1706.03762v7",
		},
		{
			ID:         "hep-ph/0101001",
			Title:      "Quarks, \"gluons\" & 50% of $everything$",
			Authors:    []string{"Smith, J."},
			Categories: []string{"hep-ph"},
			Published:  time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"md", Markdown, false},
		{"Markdown", Markdown, false},
		{"", Markdown, false},
		{"json", JSON, false},
		{"csv", CSV, false},
		{"yml", YAML, false},
		{"bib", BibTeX, false},
		{"csl", CSL, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".md", Markdown.Extension())
	assert.Equal(t, ".bib", BibTeX.Extension())
	assert.Equal(t, ".json", JSON.Extension())
	assert.Equal(t, ".csl.yaml", CSL.Extension())
}

func TestPapersMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Papers(&buf, Markdown, samplePapers()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Interesting Papers\n"))
	assert.Contains(t, out, "## [1706.03762](https://arxiv.org/abs/1706.03762)")
	assert.Contains(t, out, "**Attention Is All You Need**")
	assert.Contains(t, out, "- Authors: Ashish Vaswani, Noam Shazeer, Niki Parmar +1 more")
	assert.Contains(t, out, "- Categories: cs.CL, cs.LG")
	assert.Contains(t, out, "- Published: 2017-06-12")
}

func TestPapersJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Papers(&buf, JSON, samplePapers()))

	var got []PaperRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1706.03762", got[0].ID)
	assert.Equal(t, "2017-06-12", got[0].Published)
	assert.Contains(t, buf.String(), `\" & 50%`, "HTML characters are not escaped")
}

func TestPapersYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Papers(&buf, YAML, samplePapers()))

	var got []PaperRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, []string{"hep-ph"}, got[1].Categories)
}

func TestPapersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Papers(&buf, CSV, samplePapers()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"arxiv_id", "title", "authors", "categories", "published", "pdf_url"}, rows[0])
	assert.Equal(t, "Quarks, \"gluons\" & 50% of $everything$", rows[2][1])
	assert.Equal(t, "cs.CL; cs.LG", rows[1][3])
}

func TestPapersBibTeX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Papers(&buf, BibTeX, samplePapers()))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "@misc{"))
	assert.Contains(t, out, "@misc{vaswani2017atten,")
	assert.Contains(t, out, "  author = {Vaswani, Ashish and Shazeer, Noam and Parmar, Niki and Uszkoreit, Jakob},")
	assert.Contains(t, out, "  eprint = {1706.03762},")
	assert.Contains(t, out, "  primaryClass = {cs.CL},")
	assert.Contains(t, out, "  month = {jun},")
	assert.Contains(t, out, `\& 50\% of \$everything\$`)
}

func TestBibTeXKey(t *testing.T) {
	papers := samplePapers()
	assert.Equal(t, "vaswani2017atten", BibTeXKey(papers[0]))
	assert.Equal(t, "smith2001quark", BibTeXKey(papers[1]))
	assert.Equal(t, "arxivhepph0101001", BibTeXKey(types.Paper{ID: "hep-ph/0101001"}))
}

func TestBibTeXEscapesBackslashOnce(t *testing.T) {
	out := ToBibTeX(types.Paper{ID: "x", Title: `a\b_{c}`})
	assert.Contains(t, out, `title = {a\textbackslash{}b\_\{c\}},`)
}

func TestShortAuthors(t *testing.T) {
	assert.Equal(t, "", ShortAuthors(nil, 3))
	assert.Equal(t, "A, B", ShortAuthors([]string{"A", "B"}, 3))
	assert.Equal(t, "A +2 more", ShortAuthors([]string{"A", "B", "C"}, 1))
}

func listFixture() (types.ReadingList, []ListEntry) {
	papers := samplePapers()
	list := types.ReadingList{Name: "thesis", Description: "background"}
	return list, []ListEntry{
		{Paper: papers[0], Status: types.StatusCompleted},
		{Paper: papers[1], Status: types.StatusUnread},
	}
}

func TestListMarkdown(t *testing.T) {
	list, entries := listFixture()
	var buf bytes.Buffer
	require.NoError(t, List(&buf, Markdown, list, entries))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# thesis\n\nbackground\n"))
	assert.Contains(t, out, "- ● [1706.03762](https://arxiv.org/abs/1706.03762): Attention Is All You Need")
	assert.Contains(t, out, "- ○ [hep-ph/0101001]")
}

func TestListJSON(t *testing.T) {
	list, entries := listFixture()
	var buf bytes.Buffer
	require.NoError(t, List(&buf, JSON, list, entries))

	var got listRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "thesis", got.Name)
	require.Len(t, got.Papers, 2)
	assert.Equal(t, "completed", got.Papers[0].Status)
}

func TestListEmptyYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, List(&buf, YAML, types.ReadingList{Name: "empty"}, nil))
	assert.Contains(t, buf.String(), "papers: []")
}

func TestListUnsupportedFormat(t *testing.T) {
	list, entries := listFixture()
	assert.Error(t, List(&bytes.Buffer{}, CSV, list, entries))
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "○", StatusIcon(types.StatusUnread))
	assert.Equal(t, "◐", StatusIcon(types.StatusReading))
	assert.Equal(t, "●", StatusIcon(types.StatusCompleted))
}
