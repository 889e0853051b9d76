// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// CSLItem is a bibliography entry in CSL-YAML form, readable by Pandoc
// and most reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title"`
	Number         string    `yaml:"number"`
	URL            string    `yaml:"URL"`
	Keyword        string    `yaml:"keyword,omitempty"`
}

// CSLName is a person's name split into CSL parts.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate holds CSL date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// ToCSL converts a paper to a CSL entry keyed by its BibTeX key.
func ToCSL(p types.Paper) CSLItem {
	item := CSLItem{
		ID:             BibTeXKey(p),
		Type:           "article",
		Title:          p.Title,
		ContainerTitle: "arXiv",
		Number:         p.ID,
		URL:            p.AbstractURL(),
		Keyword:        strings.Join(p.Categories, ", "),
	}
	for _, a := range p.Authors {
		if n := cslName(a); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}
	if !p.Published.IsZero() {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Published.Year(), int(p.Published.Month()), p.Published.Day()}}}
	}
	return item
}

// cslName splits "Given Family" on the last space and "Family, Given" on
// the comma. Single-word names become literals.
func cslName(name string) CSLName {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{Given: name[:idx], Family: name[idx+1:]}
}

func papersCSL(w io.Writer, papers []types.Paper) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = ToCSL(p)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return err
	}
	return enc.Close()
}
