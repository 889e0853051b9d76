// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textmodel is a TF-IDF vector-space model over paper text.
//
// A Model fits its vocabulary and IDF weights once, on the first non-empty
// corpus passed to BuildProfile, and keeps that coordinate system for the
// rest of its lifetime so that profiles and similarities from different
// calls stay comparable. Terms outside the fitted vocabulary are ignored.
package textmodel

import (
	"math"
	"sort"
	"sync"
)

const (
	defaultMaxFeatures = 5000
	defaultMaxNGram    = 2
)

// Model is safe for concurrent use. The fit transition is guarded so that
// at most one fit happens and readers never observe a partial vocabulary.
type Model struct {
	mu          sync.RWMutex
	fitted      bool
	vocabulary  map[string]int
	idf         []float64
	maxFeatures int
	analyzer    analyzer
}

// Option configures a Model.
type Option func(*Model)

// WithMaxFeatures caps the vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxFeatures = n
		}
	}
}

// WithMaxNGram sets the longest word n-gram counted as a term (1 = unigrams only).
func WithMaxNGram(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.analyzer.maxN = n
		}
	}
}

// WithStopWords replaces the stop-word list.
func WithStopWords(words []string) Option {
	return func(m *Model) {
		m.analyzer.stopWords = stopWordSet(words)
	}
}

// New returns an unfitted model: 5000 features, unigrams and bigrams,
// English stop words.
func New(opts ...Option) *Model {
	m := &Model{
		maxFeatures: defaultMaxFeatures,
		analyzer: analyzer{
			stopWords: stopWordSet(EnglishStopWords),
			maxN:      defaultMaxNGram,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsFitted reports whether the vocabulary has been fixed.
func (m *Model) IsFitted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fitted
}

// VocabularySize returns the number of fitted features, 0 before fitting.
func (m *Model) VocabularySize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.idf)
}

// BuildProfile returns the mean L2-normalized TF-IDF vector of docs. The
// first call with a corpus that yields any terms fits the model; later calls
// only project. It returns nil for an empty corpus, or when the model is
// still unfitted because no document produced a term.
func (m *Model) BuildProfile(docs []string) Vector {
	if len(docs) == 0 {
		return nil
	}
	if !m.fitOnce(docs) {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = m.transform(doc)
	}
	return Mean(vectors)
}

// Similarity projects text into the fitted space and returns its cosine
// similarity with profile, in [0, 1]. It returns 0 if the model was never
// fitted or the profile does not belong to this model's space.
func (m *Model) Similarity(profile Vector, text string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.fitted || len(profile) == 0 || len(profile) != len(m.idf) {
		return 0
	}
	sim := Cosine(profile, m.transform(text))
	return math.Max(0, math.Min(1, sim))
}

// Transform returns the L2-normalized TF-IDF vector of doc, or nil before fitting.
func (m *Model) Transform(doc string) Vector {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.fitted {
		return nil
	}
	return m.transform(doc)
}

// fitOnce fits on docs unless the model is already fitted. It reports
// whether the model is fitted afterwards.
func (m *Model) fitOnce(docs []string) bool {
	m.mu.RLock()
	fitted := m.fitted
	m.mu.RUnlock()
	if fitted {
		return true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fitted {
		return true
	}
	m.fit(docs)
	return m.fitted
}

// fit must be called with mu held for writing.
func (m *Model) fit(docs []string) {
	totals := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range m.analyzer.terms(doc) {
			totals[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}
	if len(totals) == 0 {
		return
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > m.maxFeatures {
		terms = terms[:m.maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	m.vocabulary = make(map[string]int, len(terms))
	m.idf = make([]float64, len(terms))
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	m.fitted = true
}

// transform must be called with mu held.
func (m *Model) transform(doc string) Vector {
	v := make(Vector, len(m.idf))
	for _, term := range m.analyzer.terms(doc) {
		if idx, ok := m.vocabulary[term]; ok {
			v[idx]++
		}
	}
	for i := range v {
		v[i] *= m.idf[i]
	}
	v.normalize()
	return v
}
