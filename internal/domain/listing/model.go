// internal/domain/listing/model.go

package listing

import (
	"encoding/json"
	"fmt"
	"time"
)

// Input is the set of listing fields submitted for analysis
type Input struct {
	Title          string `json:"title"`
	Category       string `json:"category"`
	BulletPoints   string `json:"bulletPoints"`
	Description    string `json:"description"`
	SearchTerms    string `json:"searchTerms,omitempty"`
	CompetitorASIN string `json:"competitorAsin,omitempty"`
}

// HasSearchTerms reports whether backend search terms were supplied
func (in Input) HasSearchTerms() bool {
	return in.SearchTerms != ""
}

// HasCompetitor reports whether a competitor ASIN was supplied
func (in Input) HasCompetitor() bool {
	return in.CompetitorASIN != ""
}

// Location is a place in the listing where a keyword can appear
type Location string

const (
	LocationTitle       Location = "title"
	LocationBullets     Location = "bullets"
	LocationDescription Location = "description"
	LocationBackend     Location = "backend"
	LocationMissing     Location = "missing"
)

// Usage describes where a keyword is used. It is either a single location
// (including "missing") or a set of visible locations.
type Usage struct {
	Locations []Location
}

// SingleUsage returns a usage with one location
func SingleUsage(loc Location) Usage {
	return Usage{Locations: []Location{loc}}
}

// MultiUsage returns a usage spanning several locations
func MultiUsage(locs ...Location) Usage {
	return Usage{Locations: append([]Location(nil), locs...)}
}

// IsMissing reports whether the keyword is absent from the listing
func (u Usage) IsMissing() bool {
	return len(u.Locations) == 1 && u.Locations[0] == LocationMissing
}

// MarshalJSON encodes a single location as a string and several as an array
func (u Usage) MarshalJSON() ([]byte, error) {
	switch len(u.Locations) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(u.Locations[0])
	default:
		return json.Marshal(u.Locations)
	}
}

// UnmarshalJSON accepts either a string or an array of strings
func (u *Usage) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		u.Locations = nil
		return nil
	}

	var single Location
	if err := json.Unmarshal(data, &single); err == nil {
		u.Locations = []Location{single}
		return nil
	}

	var multi []Location
	if err := json.Unmarshal(data, &multi); err != nil {
		return fmt.Errorf("usage must be a string or an array of strings: %w", err)
	}
	u.Locations = multi
	return nil
}

// Keyword is a scored keyword with its placement in the listing
type Keyword struct {
	Term         string `json:"term"`
	SearchVolume int    `json:"searchVolume"`
	Relevance    int    `json:"relevance"`
	Usage        Usage  `json:"usage"`
}

// TermVolume pairs a search phrase with its estimated volume
type TermVolume struct {
	Term         string `json:"term"`
	SearchVolume int    `json:"searchVolume"`
}

// KeywordAnalysis groups the keyword findings of a report
type KeywordAnalysis struct {
	Keywords            []Keyword    `json:"keywords"`
	MissedOpportunities []TermVolume `json:"missedOpportunities"`
	LongTailKeywords    []TermVolume `json:"longTailKeywords"`
}

// TitleOptimization is the rewritten title and its advice
type TitleOptimization struct {
	OptimizedTitle  string   `json:"optimizedTitle"`
	Recommendations []string `json:"recommendations"`
}

// BulletPointsOptimization is the rewritten bullet block and its advice
type BulletPointsOptimization struct {
	OptimizedBulletPoints string   `json:"optimizedBulletPoints"`
	Recommendations       []string `json:"recommendations"`
}

// DescriptionOptimization is the rewritten description and its advice
type DescriptionOptimization struct {
	OptimizedDescription string   `json:"optimizedDescription"`
	Recommendations      []string `json:"recommendations"`
}

// BackendTermsOptimization is the extended backend terms string and its advice
type BackendTermsOptimization struct {
	OptimizedTerms  string   `json:"optimizedTerms"`
	Recommendations []string `json:"recommendations"`
}

// Verdict compares a listing metric against a competitor
type Verdict string

const (
	VerdictBetter           Verdict = "Better"
	VerdictSimilar          Verdict = "Similar"
	VerdictNeedsImprovement Verdict = "Needs Improvement"
)

// MetricComparison is one row of the competitor comparison table
type MetricComparison struct {
	Metric      string  `json:"metric"`
	YourListing string  `json:"yourListing"`
	Competitor  string  `json:"competitor"`
	Comparison  Verdict `json:"comparison"`
}

// CompetitorAnalysis compares the listing with a competitor ASIN
type CompetitorAnalysis struct {
	KeywordComparison []MetricComparison `json:"keywordComparison"`
	UniqueKeywords    []string           `json:"uniqueKeywords"`
	ActionItems       []string           `json:"actionItems"`
}

// InsightItem is a single actionable recommendation
type InsightItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InsightGroup is a category of actionable recommendations
type InsightGroup struct {
	Category string        `json:"category"`
	Items    []InsightItem `json:"items"`
}

// Report is the complete SEO analysis of a listing. Optional sections are nil
// when the matching optional input field was not supplied.
type Report struct {
	SEOScore                 int                       `json:"seoScore"`
	Summary                  string                    `json:"summary"`
	Tags                     []string                  `json:"tags"`
	TitleOptimization        TitleOptimization         `json:"titleOptimization"`
	KeywordAnalysis          KeywordAnalysis           `json:"keywordAnalysis"`
	BulletPointsOptimization BulletPointsOptimization  `json:"bulletPointsOptimization"`
	DescriptionOptimization  DescriptionOptimization   `json:"descriptionOptimization"`
	BackendTermsOptimization *BackendTermsOptimization `json:"backendTermsOptimization,omitempty"`
	CompetitorAnalysis       *CompetitorAnalysis       `json:"competitorAnalysis,omitempty"`
	ActionableInsights       []InsightGroup            `json:"actionableInsights"`
}

// AnalysisEvent is published after a report has been generated
type AnalysisEvent struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"sessionId"`
	Category        string    `json:"category"`
	SEOScore        int       `json:"seoScore"`
	HasBackendTerms bool      `json:"hasBackendTerms"`
	HasCompetitor   bool      `json:"hasCompetitor"`
	CreatedAt       time.Time `json:"createdAt"`
}
