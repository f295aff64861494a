// internal/service/analysis/analyzer.go

package analysis

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"listingseo/internal/domain/listing"
	"listingseo/internal/logger"
)

// Rand is the source of randomness used for sampling and jitter
type Rand interface {
	// IntN returns a pseudo-random int in [0, n)
	IntN(n int) int
}

// AnalyzerConfig contains configuration for the listing analyzer
type AnalyzerConfig struct {
	// Delay simulates report generation latency before Analyze returns
	Delay time.Duration

	// Seed fixes the random source; zero seeds from the clock
	Seed uint64
}

// Analyzer implements the listing.Analyzer interface
type Analyzer struct {
	rng    Rand
	config AnalyzerConfig
	logger logger.Logger
	mu     sync.Mutex
}

// NewAnalyzer creates an analyzer with a PCG source seeded from config
func NewAnalyzer(config AnalyzerConfig, log logger.Logger) *Analyzer {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewAnalyzerWithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), config, log)
}

// NewAnalyzerWithRand creates an analyzer drawing from the given source
func NewAnalyzerWithRand(rng Rand, config AnalyzerConfig, log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Analyzer{
		rng:    rng,
		config: config,
		logger: log,
	}
}

// Analyze waits for the configured delay and then builds the report.
// It returns ctx.Err() if the caller gives up before the delay elapses.
func (a *Analyzer) Analyze(ctx context.Context, input listing.Input) (*listing.Report, error) {
	a.logger.Debug("Generating SEO analysis",
		logger.String("category", input.Category),
		logger.Int("title_length", len([]rune(input.Title))),
		logger.Bool("has_search_terms", input.HasSearchTerms()),
		logger.Bool("has_competitor", input.HasCompetitor()),
	)

	if a.config.Delay > 0 {
		timer := time.NewTimer(a.config.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return a.Build(input), nil
}

// Build runs the report pipeline without any delay
func (a *Analyzer) Build(input listing.Input) *listing.Report {
	// The random source is not safe for concurrent use
	a.mu.Lock()
	defer a.mu.Unlock()

	score := computeScore(input)
	report := &listing.Report{
		SEOScore: score,
		Summary:  summaryFor(score),
		Tags:     sampleDistinct(a.rng, TagUniverse, tagCount),
		TitleOptimization: listing.TitleOptimization{
			OptimizedTitle:  optimizeTitle(a.rng, input),
			Recommendations: clone(titleRecommendations),
		},
		KeywordAnalysis: listing.KeywordAnalysis{
			Keywords:            keywords(a.rng, input.Category),
			MissedOpportunities: missedOpportunities(a.rng, input.Category),
			LongTailKeywords:    longTailKeywords(a.rng, input.Category),
		},
		BulletPointsOptimization: listing.BulletPointsOptimization{
			OptimizedBulletPoints: optimizeBulletPoints(input.BulletPoints),
			Recommendations:       clone(bulletRecommendations),
		},
		DescriptionOptimization: listing.DescriptionOptimization{
			OptimizedDescription: optimizeDescription(input),
			Recommendations:      clone(descriptionRecommendations),
		},
	}

	if input.HasSearchTerms() {
		report.BackendTermsOptimization = &listing.BackendTermsOptimization{
			OptimizedTerms:  optimizeBackendTerms(input),
			Recommendations: clone(backendTermsRecommendations),
		}
	}

	if input.HasCompetitor() {
		report.CompetitorAnalysis = &listing.CompetitorAnalysis{
			KeywordComparison: competitorComparison(),
			UniqueKeywords:    sampleDistinct(a.rng, profileFor(input.Category).competitorKeywords, uniqueKeywordCount),
			ActionItems:       clone(competitorActionItems),
		}
	}

	report.ActionableInsights = actionableInsights()

	return report
}

// sampleDistinct returns k distinct elements of items in random order using a
// partial Fisher-Yates shuffle over a copy
func sampleDistinct(rng Rand, items []string, k int) []string {
	pool := clone(items)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

func clone(items []string) []string {
	return append([]string(nil), items...)
}
