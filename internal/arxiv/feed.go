// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// Atom feed structures. Element names match in any namespace, so
// arxiv:primary_category is picked up without declaring the schema.
type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID              string     `xml:"id"`
	Title           string     `xml:"title"`
	Summary         string     `xml:"summary"`
	Published       string     `xml:"published"`
	Updated         string     `xml:"updated"`
	Authors         []author   `xml:"author"`
	Links           []link     `xml:"link"`
	PrimaryCategory category   `xml:"primary_category"`
	Categories      []category `xml:"category"`
}

type author struct {
	Name string `xml:"name"`
}

type link struct {
	Href  string `xml:"href,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

type category struct {
	Term string `xml:"term,attr"`
}

func parseFeed(r io.Reader) ([]types.Paper, error) {
	var f feed
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	papers := make([]types.Paper, 0, len(f.Entries))
	for _, e := range f.Entries {
		p, ok := e.paper()
		if !ok {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// paper converts an entry, reporting false for entries that are not papers
// (arXiv reports query errors as entries) or lack a publication date.
func (e entry) paper() (types.Paper, bool) {
	id := extractID(e.ID)
	if id == "" {
		return types.Paper{}, false
	}
	published, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Published))
	if err != nil {
		log.WithField("id", id).WithError(err).Debug("skipping entry without publication date")
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:        id,
		Title:     collapseSpace(e.Title),
		Abstract:  collapseSpace(e.Summary),
		Published: published.UTC(),
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Updated)); err == nil {
		p.Updated = t.UTC()
	}
	for _, a := range e.Authors {
		if name := collapseSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}

	seen := make(map[string]bool)
	addCategory := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		p.Categories = append(p.Categories, term)
	}
	addCategory(e.PrimaryCategory.Term)
	for _, c := range e.Categories {
		addCategory(c.Term)
	}

	for _, l := range e.Links {
		if l.Type == "application/pdf" || l.Title == "pdf" {
			p.PDFURL = l.Href
			break
		}
	}
	return p, true
}

// extractID pulls the arXiv identifier out of an entry URL and drops the
// version suffix: "http://arxiv.org/abs/2301.07041v2" gives "2301.07041".
func extractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return NormalizeID(idURL[idx+len(prefix):])
}

// NormalizeID trims whitespace, an "arXiv:" prefix and any version suffix
// from an identifier typed by a user or found in a URL.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 6 && strings.EqualFold(id[:6], "arxiv:") {
		id = id[6:]
	}
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
