// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for arxiv-explorer: paper
// records fetched from arXiv, the user's stated interests, scored results
// and the library objects (notes, reading lists) built on top of them.
package types

import "time"

// Paper holds the metadata of one arXiv preprint.
type Paper struct {
	// ID is the arXiv identifier without version suffix (e.g. "2401.00001").
	ID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract with whitespace collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Categories lists the arXiv category tags. The first entry is the
	// primary category.
	Categories []string `json:"categories" yaml:"categories"`

	// Published is the first submission time. Required for scoring.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the last revision time; zero if never revised.
	Updated time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`

	// PDFURL links to the PDF rendition, if the feed provided one.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
}

// PrimaryCategory returns the first category tag, or "" if there are none.
func (p Paper) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0]
}

// Text returns the document used for content and keyword matching.
func (p Paper) Text() string {
	return p.Title + " " + p.Abstract
}

// AbstractURL returns the arXiv abstract page for the paper.
func (p Paper) AbstractURL() string {
	return "https://arxiv.org/abs/" + p.ID
}

// ScoredPaper is a Paper annotated with its composite recommendation score.
type ScoredPaper struct {
	Paper `json:"paper" yaml:"paper"`
	Score float64 `json:"score" yaml:"score"`
}
