package analysis

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingseo/internal/domain/listing"
)

// zeroRand always picks the first candidate
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func seeded(seed uint64) *Analyzer {
	return NewAnalyzerWithRand(rand.New(rand.NewPCG(seed, seed)), AnalyzerConfig{}, nil)
}

func kitchenInput() listing.Input {
	return listing.Input{
		Title:        strings.Repeat("A", 50),
		Category:     "Kitchen",
		BulletPoints: "a\nb\nc\nd\ne",
		Description:  strings.Repeat("B", 600),
		SearchTerms:  "steel",
	}
}

func TestComputeScore_Scenario(t *testing.T) {
	// description, search terms and bullet count each add 5
	assert.Equal(t, 85, computeScore(kitchenInput()))
}

func TestComputeScore_AllHeuristics(t *testing.T) {
	in := listing.Input{
		Title:          "kitchen " + strings.Repeat("x", 100),
		Category:       "Kitchen",
		BulletPoints:   "1\n2\n\n3\n4\n5",
		Description:    strings.Repeat("d", 501),
		SearchTerms:    "pan",
		CompetitorASIN: "B08N5KWB9H",
	}
	assert.Equal(t, 100, computeScore(in))
}

func TestComputeScore_TitleMatchIsCaseSensitive(t *testing.T) {
	in := listing.Input{Title: "Kitchen Knife", Category: "Kitchen"}
	assert.Equal(t, 70, computeScore(in))

	in.Title = "kitchen knife"
	assert.Equal(t, 75, computeScore(in))
}

func TestComputeScore_BlankBulletsIgnored(t *testing.T) {
	in := listing.Input{Title: "t", Category: "c", BulletPoints: "a\n \nb\n\t\nc\nd"}
	assert.Equal(t, 70, computeScore(in))
}

func TestComputeScore_Monotonic(t *testing.T) {
	base := listing.Input{Title: "Plain title", Category: "Garden", BulletPoints: "one", Description: "short"}

	additions := map[string]func(*listing.Input){
		"long title":    func(in *listing.Input) { in.Title = strings.Repeat("t", 101) },
		"category":      func(in *listing.Input) { in.Title += " garden" },
		"bullets":       func(in *listing.Input) { in.BulletPoints = "1\n2\n3\n4\n5" },
		"description":   func(in *listing.Input) { in.Description = strings.Repeat("d", 501) },
		"search terms":  func(in *listing.Input) { in.SearchTerms = "rake" },
		"competitor id": func(in *listing.Input) { in.CompetitorASIN = "B000000000" },
	}

	before := computeScore(base)
	for name, add := range additions {
		t.Run(name, func(t *testing.T) {
			in := base
			add(&in)
			after := computeScore(in)
			assert.GreaterOrEqual(t, after, before)
			assert.LessOrEqual(t, after, 100)
		})
	}
}

func TestSummaryBands(t *testing.T) {
	assert.Contains(t, summaryFor(80), "good SEO optimization")
	assert.Contains(t, summaryFor(79), "moderate SEO optimization")
	assert.Contains(t, summaryFor(60), "moderate SEO optimization")
	assert.Contains(t, summaryFor(59), "needs significant SEO improvement")
}

func TestBuild_OptionalSections(t *testing.T) {
	a := seeded(1)

	report := a.Build(kitchenInput())
	require.NotNil(t, report.BackendTermsOptimization)
	assert.Nil(t, report.CompetitorAnalysis)

	in := kitchenInput()
	in.SearchTerms = ""
	in.CompetitorASIN = ""
	report = a.Build(in)
	assert.Nil(t, report.BackendTermsOptimization)
	assert.Nil(t, report.CompetitorAnalysis)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "backendTermsOptimization")
	assert.NotContains(t, string(raw), "competitorAnalysis")

	in.CompetitorASIN = "B08N5KWB9H"
	report = a.Build(in)
	require.NotNil(t, report.CompetitorAnalysis)
	assert.Len(t, report.CompetitorAnalysis.KeywordComparison, 5)
	assert.Len(t, report.CompetitorAnalysis.ActionItems, 5)
	assert.Len(t, report.CompetitorAnalysis.UniqueKeywords, 3)
	assert.Subset(t, categoryProfiles["kitchen"].competitorKeywords, report.CompetitorAnalysis.UniqueKeywords)
}

func TestBuild_TagsAreFourDistinctLabels(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		tags := seeded(seed).Build(kitchenInput()).Tags

		require.Len(t, tags, 4)
		assert.Subset(t, TagUniverse, tags)

		seen := map[string]bool{}
		for _, tag := range tags {
			assert.False(t, seen[tag], "duplicate tag %q", tag)
			seen[tag] = true
		}
	}
}

func TestBuild_SameSeedSameReport(t *testing.T) {
	in := kitchenInput()
	in.CompetitorASIN = "B08N5KWB9H"
	assert.Equal(t, seeded(42).Build(in), seeded(42).Build(in))
}

func TestBuild_DegenerateInput(t *testing.T) {
	report := seeded(7).Build(listing.Input{})

	// An empty category lower-cases to "" which every title contains
	assert.Equal(t, 75, report.SEOScore)
	assert.Equal(t, genericProfile.keywords[0], report.KeywordAnalysis.Keywords[0].Term)
	assert.Len(t, strings.Split(report.BulletPointsOptimization.OptimizedBulletPoints, "\n"), 5)
	assert.Len(t, report.ActionableInsights, 3)
}

func TestSampleDistinct(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "b"}, sampleDistinct(zeroRand{}, items, 2))
	assert.Len(t, sampleDistinct(zeroRand{}, items, 10), 3)
	assert.Equal(t, []string{"a", "b", "c"}, items, "input must not be reordered")
}

func TestSampleDistinct_CoversEveryElement(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	counts := map[string]int{}
	for i := 0; i < 600; i++ {
		for _, tag := range sampleDistinct(rng, TagUniverse, 1) {
			counts[tag]++
		}
	}
	require.Len(t, counts, len(TagUniverse))
	for tag, n := range counts {
		assert.Greater(t, n, 50, "tag %q drawn too rarely", tag)
	}
}

func TestAnalyze_HonoursCancellation(t *testing.T) {
	a := NewAnalyzerWithRand(zeroRand{}, AnalyzerConfig{Delay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := a.Analyze(ctx, kitchenInput())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestAnalyze_WaitsForDelay(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{Delay: 20 * time.Millisecond, Seed: 9}, nil)

	start := time.Now()
	report, err := a.Analyze(context.Background(), kitchenInput())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 85, report.SEOScore)
}

func TestReport_JSONRoundTrip(t *testing.T) {
	in := kitchenInput()
	in.CompetitorASIN = "B08N5KWB9H"
	report := seeded(11).Build(in)

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded listing.Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *report, decoded)
}

func TestBackendTermsNeverExceedLimit(t *testing.T) {
	for _, terms := range []string{"x", strings.Repeat("y", 199), strings.Repeat("z", 220), strings.Repeat("w ", 200)} {
		out := optimizeBackendTerms(listing.Input{Category: "toys", SearchTerms: terms})
		assert.LessOrEqual(t, utf8.RuneCountInString(out), 250)
	}
}
