// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(types.DefaultScoringConfig(), WithClock(func() time.Time { return fixedNow }))
}

func paper(id string, daysAgo int, cats ...string) types.Paper {
	return types.Paper{
		ID:         id,
		Title:      "Paper " + id,
		Abstract:   "An abstract.",
		Categories: cats,
		Published:  fixedNow.Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func ids(scored []types.ScoredPaper) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.ID
	}
	return out
}

func TestScorePapersIsPermutation(t *testing.T) {
	e := newTestEngine()
	var candidates []types.Paper
	for i := 0; i < 25; i++ {
		candidates = append(candidates, paper(fmt.Sprintf("2603.%05d", i), i%40, "hep-ph"))
	}
	prefs := []types.PreferredCategory{{Category: "hep-ph", Priority: 1}}

	got, err := e.ScorePapers(candidates, nil, prefs, nil)
	require.NoError(t, err)
	require.Len(t, got, len(candidates))

	want := make([]string, len(candidates))
	for i, p := range candidates {
		want[i] = p.ID
	}
	assert.ElementsMatch(t, want, ids(got))
}

func TestScorePapersSortedAndStable(t *testing.T) {
	e := newTestEngine()
	candidates := []types.Paper{
		paper("a", 40), // zero
		paper("b", 0, "cs.AI"),
		paper("c", 50), // zero, after a
		paper("d", 0),
		paper("e", 60), // zero, after c
	}
	prefs := []types.PreferredCategory{{Category: "cs.AI", Priority: 1}}

	got, err := e.ScorePapers(candidates, nil, prefs, nil)
	require.NoError(t, err)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(got))
}

func TestScorePapersNoSignal(t *testing.T) {
	e := newTestEngine()
	candidates := []types.Paper{paper("a", 0, "hep-ph"), paper("b", 3), paper("c", 29), paper("d", 31)}

	got, err := e.ScorePapers(candidates, nil, nil, nil)
	require.NoError(t, err)

	byID := make(map[string]float64)
	for _, s := range got {
		byID[s.ID] = s.Score
	}
	assert.InDelta(t, 0.05*1, byID["a"], 1e-12)
	assert.InDelta(t, 0.05*(1-3.0/30), byID["b"], 1e-12)
	assert.InDelta(t, 0.05*(1-29.0/30), byID["c"], 1e-12)
	assert.Equal(t, 0.0, byID["d"])
}

func TestCategoryMonotonicity(t *testing.T) {
	e := newTestEngine()
	a := paper("a", 5, "hep-ph")
	b := paper("b", 5, "cs.AI")
	prefs := []types.PreferredCategory{
		{Category: "hep-ph", Priority: 2},
		{Category: "cs.AI", Priority: 1},
	}

	got, err := e.ScorePapers([]types.Paper{b, a}, nil, prefs, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids(got))
	assert.InDelta(t, 0.2*0.5, got[0].Score-got[1].Score, 1e-12)
}

func TestCategoryFirstMatchOnly(t *testing.T) {
	e := newTestEngine()
	prefs := []types.PreferredCategory{
		{Category: "hep-ph", Priority: 2},
		{Category: "hep-ex", Priority: 4},
	}

	b, err := e.Explain(paper("x", 40, "hep-ph", "hep-ex"), nil, prefs, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, b.Category, 1e-12)

	b, err = e.Explain(paper("y", 40, "math.CO", "hep-ex", "hep-ph"), nil, prefs, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b.Category, 1e-12)

	b, err = e.Explain(paper("z", 40, "math.CO"), nil, prefs, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Category)
}

func TestKeywordAdditivity(t *testing.T) {
	e := newTestEngine()
	p := paper("a", 40)
	p.Title = "Transformer Attention for Jet Tagging"
	p.Abstract = "We apply attention to jets."
	keywords := []types.KeywordInterest{
		{Keyword: "transformer", Weight: 1.0},
		{Keyword: "jet tagging", Weight: 1.5},
		{Keyword: "gravitational", Weight: 3.0},
	}

	got, err := e.ScorePapers([]types.Paper{p}, nil, nil, keywords)
	require.NoError(t, err)
	assert.InDelta(t, 0.1*2.5, got[0].Score, 1e-12)
}

func TestKeywordDuplicateLastWins(t *testing.T) {
	e := newTestEngine()
	p := paper("a", 40)
	p.Abstract = "Lattice QCD results."
	keywords := []types.KeywordInterest{
		{Keyword: "lattice", Weight: 1.0},
		{Keyword: "lattice", Weight: 2.0},
	}

	b, err := e.Explain(p, nil, nil, keywords)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, b.Keyword, 1e-12)
}

func TestRecencyBoundaries(t *testing.T) {
	e := newTestEngine()
	tests := []struct {
		name    string
		daysAgo int
		want    float64
	}{
		{"today", 0, 1},
		{"half window", 15, 0.5},
		{"window edge", 30, 0},
		{"beyond window", 90, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.Explain(paper("p", tt.daysAgo), nil, nil, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, b.Recency, 1e-12)
		})
	}
}

func TestRecencyFutureDateClamped(t *testing.T) {
	e := newTestEngine()
	p := paper("p", 0)
	p.Published = fixedNow.Add(36 * time.Hour)

	b, err := e.Explain(p, nil, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b.Recency, 1e-12)
}

func TestRecencyPartialDayTruncates(t *testing.T) {
	e := newTestEngine()
	p := paper("p", 0)
	p.Published = fixedNow.Add(-(29*24*time.Hour + 23*time.Hour))

	b, err := e.Explain(p, nil, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1-29.0/30, b.Recency, 1e-12)
}

func TestProfileRoundTrip(t *testing.T) {
	e := newTestEngine()
	liked := paper("liked", 40)
	liked.Title = "Neural network optimization"
	liked.Abstract = "Gradient descent methods for training deep neural networks."

	profile := e.BuildProfile([]types.Paper{liked})
	require.NotNil(t, profile)
	assert.True(t, e.IsFitted())

	b, err := e.Explain(liked, profile, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b.Content, 1e-9)
	assert.InDelta(t, 0.5, b.Total, 1e-9)
}

func TestBuildProfileNoLikes(t *testing.T) {
	e := newTestEngine()
	assert.Nil(t, e.BuildProfile(nil))
	assert.False(t, e.IsFitted())
}

func TestEndToEndScenario(t *testing.T) {
	e := newTestEngine()
	x := paper("X", 1, "hep-ph")
	y := paper("Y", 1, "cs.AI")
	prefs := []types.PreferredCategory{
		{Category: "hep-ph", Priority: 2},
		{Category: "cs.AI", Priority: 1},
	}

	got, err := e.ScorePapers([]types.Paper{y, x}, e.BuildProfile(nil), prefs, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"X", "Y"}, ids(got))

	recency := 0.05 * (1 - 1.0/30)
	assert.InDelta(t, 0.2+recency, got[0].Score, 1e-12)
	assert.InDelta(t, 0.1+recency, got[1].Score, 1e-12)
	assert.InDelta(t, 0.2483, got[0].Score, 1e-4)
	assert.InDelta(t, 0.1483, got[1].Score, 1e-4)
}

func TestInvalidPaper(t *testing.T) {
	e := newTestEngine()

	noDate := paper("a", 0)
	noDate.Published = time.Time{}
	_, err := e.ScorePapers([]types.Paper{paper("ok", 0), noDate}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPaper)

	_, err = e.ScorePapers([]types.Paper{paper("", 0)}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPaper)
}

func TestInvalidKeyword(t *testing.T) {
	e := newTestEngine()
	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := e.ScorePapers([]types.Paper{paper("a", 0)}, nil, nil,
			[]types.KeywordInterest{{Keyword: "x", Weight: w}})
		assert.ErrorIs(t, err, ErrInvalidKeyword)
	}
}

func TestKeywordWeightsThatOverflow(t *testing.T) {
	e := newTestEngine()
	p := paper("a", 0)
	p.Abstract = "Lattice QCD at finite density."

	tests := []struct {
		name     string
		keywords []types.KeywordInterest
	}{
		{"two maximal weights", []types.KeywordInterest{
			{Keyword: "lattice", Weight: math.MaxFloat64},
			{Keyword: "qcd", Weight: math.MaxFloat64},
		}},
		{"opposite maximal weights", []types.KeywordInterest{
			{Keyword: "lattice", Weight: math.MaxFloat64},
			{Keyword: "qcd", Weight: -math.MaxFloat64},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ScorePapers([]types.Paper{p}, nil, nil, tt.keywords)
			assert.ErrorIs(t, err, ErrInvalidKeyword)

			_, err = e.Explain(p, nil, nil, tt.keywords)
			assert.ErrorIs(t, err, ErrInvalidKeyword)
		})
	}
}

func TestLargeKeywordWeightStaysFinite(t *testing.T) {
	e := newTestEngine()
	p := paper("a", 0)
	p.Abstract = "Lattice QCD at finite density."

	got, err := e.ScorePapers([]types.Paper{p, paper("b", 0)}, nil, nil,
		[]types.KeywordInterest{{Keyword: "lattice", Weight: math.MaxFloat64}})
	require.NoError(t, err)
	for _, s := range got {
		assert.False(t, math.IsInf(s.Score, 0) || math.IsNaN(s.Score), "score %v", s.Score)
	}
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestNonFiniteWeightsFallBackToDefaults(t *testing.T) {
	cfg := types.ScoringConfig{
		ContentWeight:     math.NaN(),
		CategoryWeight:    math.Inf(1),
		KeywordWeight:     math.Inf(-1),
		RecencyWeight:     math.NaN(),
		RecencyWindowDays: 0,
	}
	e := NewEngine(cfg, WithClock(func() time.Time { return fixedNow }))
	assert.Equal(t, types.DefaultScoringConfig(), e.Config())

	got, err := e.ScorePapers([]types.Paper{paper("a", 0)}, nil, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, got[0].Score, 1e-12)
}

func TestEmptyCandidates(t *testing.T) {
	e := newTestEngine()
	got, err := e.ScorePapers(nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCustomWeights(t *testing.T) {
	cfg := types.ScoringConfig{CategoryWeight: 1, RecencyWindowDays: 10}
	e := NewEngine(cfg, WithClock(func() time.Time { return fixedNow }))
	prefs := []types.PreferredCategory{{Category: "hep-th", Priority: 3}}

	got, err := e.ScorePapers([]types.Paper{paper("a", 0, "hep-th")}, nil, prefs, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0].Score, 1e-12)
}

func TestDaysOld(t *testing.T) {
	assert.Equal(t, 0, DaysOld(fixedNow, fixedNow))
	assert.Equal(t, 0, DaysOld(fixedNow.Add(time.Hour), fixedNow))
	assert.Equal(t, 0, DaysOld(fixedNow.Add(-23*time.Hour), fixedNow))
	assert.Equal(t, 1, DaysOld(fixedNow.Add(-24*time.Hour), fixedNow))
	assert.Equal(t, 30, DaysOld(fixedNow.Add(-30*24*time.Hour), fixedNow))
}
