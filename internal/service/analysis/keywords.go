// internal/service/analysis/keywords.go

package analysis

import (
	"listingseo/internal/domain/listing"
)

func keywords(rng Rand, category string) []listing.Keyword {
	terms := profileFor(category).keywords

	out := make([]listing.Keyword, 0, len(terms))
	for i, term := range terms {
		out = append(out, listing.Keyword{
			Term:         term,
			SearchVolume: keywordVolumeBase[i%len(keywordVolumeBase)] + rng.IntN(keywordVolumeJitter),
			Relevance:    keywordRelevanceBase[i%len(keywordRelevanceBase)],
			Usage:        listing.MultiUsage(usageOptions[rng.IntN(len(usageOptions))].Locations...),
		})
	}
	return out
}

func missedOpportunities(rng Rand, category string) []listing.TermVolume {
	terms := profileFor(category).opportunities
	return withVolumes(rng, terms[:min(opportunityCount, len(terms))], opportunityVolumeBase, opportunityVolumeJitter)
}

func longTailKeywords(rng Rand, category string) []listing.TermVolume {
	terms := profileFor(category).longTail
	return withVolumes(rng, terms[:min(longTailCount, len(terms))], longTailVolumeBase, longTailVolumeJitter)
}

func withVolumes(rng Rand, terms []string, base []int, jitter int) []listing.TermVolume {
	out := make([]listing.TermVolume, 0, len(terms))
	for i, term := range terms {
		out = append(out, listing.TermVolume{
			Term:         term,
			SearchVolume: base[i%len(base)] + rng.IntN(jitter),
		})
	}
	return out
}
