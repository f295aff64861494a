// internal/service/analysis/score.go

package analysis

import (
	"strings"
	"unicode/utf8"

	"listingseo/internal/domain/listing"
)

const (
	baseScore           = 70
	scoreIncrement      = 5
	longTitleThreshold  = 100
	longDescThreshold   = 500
	minBulletPointCount = 5
)

// computeScore adds a fixed increment for each shape heuristic the listing
// satisfies. Every check is evaluated independently.
func computeScore(in listing.Input) int {
	score := baseScore

	if utf8.RuneCountInString(in.Title) > longTitleThreshold {
		score += scoreIncrement
	}
	// Case-sensitive on the title side
	if strings.Contains(in.Title, strings.ToLower(in.Category)) {
		score += scoreIncrement
	}
	if len(splitBulletPoints(in.BulletPoints)) >= minBulletPointCount {
		score += scoreIncrement
	}
	if utf8.RuneCountInString(in.Description) > longDescThreshold {
		score += scoreIncrement
	}
	if in.HasSearchTerms() {
		score += scoreIncrement
	}
	if in.HasCompetitor() {
		score += scoreIncrement
	}

	return min(max(score, 0), 100)
}

func summaryFor(score int) string {
	switch {
	case score >= 80:
		return "Your product listing has good SEO optimization overall, with effective use of keywords in the title and bullet points. Some minor improvements can still boost your visibility further."
	case score >= 60:
		return "Your product listing has moderate SEO optimization. There are several opportunities to improve keyword usage and content structure to increase visibility and conversion."
	default:
		return "Your product listing needs significant SEO improvement. We've identified several major opportunities to enhance keyword usage, content structure, and overall optimization."
	}
}

// splitBulletPoints splits the bullet block on newlines and drops blank lines
func splitBulletPoints(block string) []string {
	var bullets []string
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
