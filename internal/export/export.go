// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders liked papers and reading lists as Markdown, JSON,
// CSV, YAML, BibTeX or CSL-YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// Format names an output format.
type Format string

const (
	Markdown Format = "markdown"
	JSON     Format = "json"
	CSV      Format = "csv"
	YAML     Format = "yaml"
	BibTeX   Format = "bibtex"
	CSL      Format = "csl"
)

// ParseFormat accepts a format name or its common short form (md, yml, bib).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown", "":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "yaml", "yml":
		return YAML, nil
	case "bib", "bibtex":
		return BibTeX, nil
	case "csl", "csl-yaml":
		return CSL, nil
	}
	return "", fmt.Errorf("unknown export format %q: use markdown, json, csv, yaml, bibtex, or csl", s)
}

// Extension returns the usual file extension for f.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case BibTeX:
		return ".bib"
	case CSL:
		return ".csl.yaml"
	}
	return "." + string(f)
}

// PaperRecord is the exported form of a paper.
type PaperRecord struct {
	ID         string   `json:"arxiv_id" yaml:"arxiv_id"`
	Title      string   `json:"title" yaml:"title"`
	Authors    []string `json:"authors" yaml:"authors"`
	Categories []string `json:"categories" yaml:"categories"`
	Published  string   `json:"published" yaml:"published"`
	PDFURL     string   `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
	Abstract   string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

func record(p types.Paper) PaperRecord {
	return PaperRecord{
		ID:         p.ID,
		Title:      p.Title,
		Authors:    p.Authors,
		Categories: p.Categories,
		Published:  p.Published.Format("2006-01-02"),
		PDFURL:     p.PDFURL,
		Abstract:   p.Abstract,
	}
}

// Papers writes papers to w in format f.
func Papers(w io.Writer, f Format, papers []types.Paper) error {
	switch f {
	case Markdown:
		return papersMarkdown(w, papers)
	case JSON:
		return writeJSON(w, records(papers))
	case YAML:
		return writeYAML(w, records(papers))
	case CSV:
		return papersCSV(w, papers)
	case CSL:
		return papersCSL(w, papers)
	case BibTeX:
		for i, p := range papers {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if _, err := io.WriteString(w, ToBibTeX(p)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q for papers", f)
}

func records(papers []types.Paper) []PaperRecord {
	out := make([]PaperRecord, len(papers))
	for i, p := range papers {
		out[i] = record(p)
	}
	return out
}

func papersMarkdown(w io.Writer, papers []types.Paper) error {
	var sb strings.Builder
	sb.WriteString("# Interesting Papers\n\n")
	for _, p := range papers {
		fmt.Fprintf(&sb, "## [%s](%s)\n\n", p.ID, p.AbstractURL())
		fmt.Fprintf(&sb, "**%s**\n\n", p.Title)
		fmt.Fprintf(&sb, "- Authors: %s\n", ShortAuthors(p.Authors, 3))
		fmt.Fprintf(&sb, "- Categories: %s\n", strings.Join(p.Categories, ", "))
		fmt.Fprintf(&sb, "- Published: %s\n", p.Published.Format("2006-01-02"))
		if p.PDFURL != "" {
			fmt.Fprintf(&sb, "- PDF: %s\n", p.PDFURL)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func papersCSV(w io.Writer, papers []types.Paper) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"arxiv_id", "title", "authors", "categories", "published", "pdf_url"}); err != nil {
		return err
	}
	for _, p := range papers {
		row := []string{
			p.ID,
			p.Title,
			strings.Join(p.Authors, "; "),
			strings.Join(p.Categories, "; "),
			p.Published.Format("2006-01-02"),
			p.PDFURL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ShortAuthors joins the first n authors and counts the rest.
func ShortAuthors(authors []string, n int) string {
	if len(authors) <= n {
		return strings.Join(authors, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(authors[:n], ", "), len(authors)-n)
}

// ListEntry pairs a paper with its reading status.
type ListEntry struct {
	Paper  types.Paper
	Status types.ReadingStatus
}

type listRecord struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Papers      []listPaperRecord `json:"papers" yaml:"papers"`
}

type listPaperRecord struct {
	ID     string `json:"arxiv_id" yaml:"arxiv_id"`
	Title  string `json:"title" yaml:"title"`
	Status string `json:"status" yaml:"status"`
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
}

// StatusIcon returns the glyph used for a reading status.
func StatusIcon(s types.ReadingStatus) string {
	switch s {
	case types.StatusReading:
		return "◐"
	case types.StatusCompleted:
		return "●"
	}
	return "○"
}

// List writes a reading list to w. Markdown, JSON and YAML are supported.
func List(w io.Writer, f Format, list types.ReadingList, entries []ListEntry) error {
	rec := listRecord{Name: list.Name, Description: list.Description, Papers: []listPaperRecord{}}
	for _, e := range entries {
		rec.Papers = append(rec.Papers, listPaperRecord{
			ID:     e.Paper.ID,
			Title:  e.Paper.Title,
			Status: string(e.Status),
			PDFURL: e.Paper.PDFURL,
		})
	}

	switch f {
	case Markdown:
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n", list.Name)
		if list.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", list.Description)
		}
		for _, e := range entries {
			fmt.Fprintf(&sb, "- %s [%s](%s): %s\n", StatusIcon(e.Status), e.Paper.ID, e.Paper.AbstractURL(), e.Paper.Title)
		}
		_, err := io.WriteString(w, sb.String())
		return err
	case JSON:
		return writeJSON(w, rec)
	case YAML:
		return writeYAML(w, rec)
	}
	return fmt.Errorf("unsupported format %q for reading lists: use markdown, json, or yaml", f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
