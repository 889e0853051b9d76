// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textmodel

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	neuralDoc = "Neural network optimization Gradient descent methods for training deep neural networks."
	similar   = "Neural network training New optimization techniques for deep neural networks."
	galaxy    = "Galaxy formation Cosmological simulations of galaxy formation in dark matter halos."
)

func TestAnalyzerTerms(t *testing.T) {
	a := analyzer{stopWords: stopWordSet(EnglishStopWords), maxN: 2}
	got := a.terms("The Deep learning of a Jet")
	assert.Equal(t, []string{"deep", "learning", "jet", "deep learning", "learning jet"}, got)
}

func TestAnalyzerDropsSingleCharacters(t *testing.T) {
	a := analyzer{stopWords: map[string]struct{}{}, maxN: 1}
	assert.Equal(t, []string{"qcd", "x2"}, a.terms("a QCD x2 b"))
}

func TestBuildProfileEmpty(t *testing.T) {
	m := New()
	assert.Nil(t, m.BuildProfile(nil))
	assert.False(t, m.IsFitted())
}

func TestBuildProfileOnlyStopWords(t *testing.T) {
	m := New()
	assert.Nil(t, m.BuildProfile([]string{"the and of", ""}))
	assert.False(t, m.IsFitted(), "a corpus with no terms must not freeze the model")

	profile := m.BuildProfile([]string{neuralDoc})
	require.NotNil(t, profile)
	assert.True(t, m.IsFitted())
}

func TestBuildProfileIsMeanOfDocuments(t *testing.T) {
	m := New()
	profile := m.BuildProfile([]string{neuralDoc, galaxy})
	require.Len(t, profile, m.VocabularySize())

	a := m.Transform(neuralDoc)
	b := m.Transform(galaxy)
	for i := range profile {
		assert.InDelta(t, (a[i]+b[i])/2, profile[i], 1e-12)
	}
}

func TestSelfSimilarityIsOne(t *testing.T) {
	m := New()
	profile := m.BuildProfile([]string{neuralDoc})
	assert.InDelta(t, 1.0, m.Similarity(profile, neuralDoc), 1e-9)
}

func TestSimilarityRanksRelatedText(t *testing.T) {
	m := New()
	profile := m.BuildProfile([]string{neuralDoc})

	simRelated := m.Similarity(profile, similar)
	simOther := m.Similarity(profile, galaxy)
	assert.Greater(t, simRelated, simOther)
	assert.Equal(t, 0.0, simOther)
}

func TestSimilarityUnfitted(t *testing.T) {
	m := New()
	assert.Equal(t, 0.0, m.Similarity(Vector{1, 2, 3}, neuralDoc))
}

func TestSimilarityForeignProfile(t *testing.T) {
	m := New()
	m.BuildProfile([]string{neuralDoc})
	assert.Equal(t, 0.0, m.Similarity(Vector{1}, neuralDoc))
	assert.Equal(t, 0.0, m.Similarity(nil, neuralDoc))
}

func TestVocabularyFrozenAfterFirstFit(t *testing.T) {
	m := New()
	m.BuildProfile([]string{neuralDoc})
	size := m.VocabularySize()

	profile := m.BuildProfile([]string{galaxy})
	assert.Equal(t, size, m.VocabularySize())
	assert.Len(t, profile, size)
	// Unknown terms contribute nothing, so the profile is the zero vector.
	assert.Equal(t, 0.0, profile.Norm())
	assert.Equal(t, 0.0, m.Similarity(profile, galaxy))
}

func TestMaxFeatures(t *testing.T) {
	m := New(WithMaxFeatures(3), WithMaxNGram(1))
	m.BuildProfile([]string{"quark quark quark gluon gluon photon lepton"})
	assert.Equal(t, 3, m.VocabularySize())

	// photon and lepton tie on count; the lexically later one is dropped.
	assert.Equal(t, 0.0, m.Transform("photon").Norm())
	assert.NotZero(t, m.Transform("lepton").Norm())
}

func TestIDFWeighting(t *testing.T) {
	m := New(WithMaxNGram(1))
	m.BuildProfile([]string{"quark gluon", "quark photon"})

	v := m.Transform("quark gluon")
	qi := m.vocabulary["quark"]
	gi := m.vocabulary["gluon"]
	// quark appears in both documents so it weighs less than gluon.
	assert.Less(t, v[qi], v[gi])
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	assert.InDelta(t, math.Log(3.0/2.0)+1, m.idf[gi], 1e-12)
	assert.InDelta(t, 1.0, m.idf[qi], 1e-12)
}

func TestConcurrentBuildFitsOnce(t *testing.T) {
	m := New()
	docs := [][]string{{neuralDoc}, {galaxy}, {similar}}

	var wg sync.WaitGroup
	profiles := make([]Vector, 30)
	for i := range profiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profiles[i] = m.BuildProfile(docs[i%len(docs)])
		}(i)
	}
	wg.Wait()

	size := m.VocabularySize()
	require.NotZero(t, size)
	for _, p := range profiles {
		assert.Len(t, p, size)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"identical", Vector{1, 2}, Vector{1, 2}, 1},
		{"orthogonal", Vector{1, 0}, Vector{0, 1}, 0},
		{"zero vector", Vector{0, 0}, Vector{1, 1}, 0},
		{"length mismatch", Vector{1}, Vector{1, 1}, 0},
		{"empty", Vector{}, Vector{}, 0},
		{"nan", Vector{math.NaN(), 1}, Vector{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-12)
		})
	}
}
