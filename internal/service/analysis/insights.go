// internal/service/analysis/insights.go

package analysis

import (
	"listingseo/internal/domain/listing"
)

const uniqueKeywordCount = 3

var competitorActionItems = []string{
	"Add more specific product features in your bullet points to match competitor detail level",
	"Incorporate the competitor's unique keywords in your listing where relevant",
	"Improve your title structure to highlight key benefits similar to competitor",
	"Add more technical specifications to your description like your competitor does",
	"Consider adding customer testimonial snippets in your description like your competitor",
}

// competitorComparison is a fixed table; it does not inspect either listing
func competitorComparison() []listing.MetricComparison {
	return []listing.MetricComparison{
		{Metric: "Keyword Density", YourListing: "4.2%", Competitor: "6.8%", Comparison: listing.VerdictNeedsImprovement},
		{Metric: "Title Optimization", YourListing: "72%", Competitor: "85%", Comparison: listing.VerdictNeedsImprovement},
		{Metric: "Bullet Point Clarity", YourListing: "85%", Competitor: "78%", Comparison: listing.VerdictBetter},
		{Metric: "Description Quality", YourListing: "76%", Competitor: "82%", Comparison: listing.VerdictSimilar},
		{Metric: "Backend Keywords", YourListing: "65%", Competitor: "92%", Comparison: listing.VerdictNeedsImprovement},
	}
}

func actionableInsights() []listing.InsightGroup {
	return []listing.InsightGroup{
		{
			Category: "Immediate Improvements",
			Items: []listing.InsightItem{
				{
					Title:       "Optimize your title",
					Description: "Restructure your title to place the most important keywords at the beginning and ensure your brand name is included.",
				},
				{
					Title:       "Enhance bullet points",
					Description: "Make your bullet points more scannable by starting with capital words and using symbols to draw attention.",
				},
				{
					Title:       "Expand backend search terms",
					Description: "Utilize all 250 characters available for backend search terms, focusing on keywords not already used in the visible listing.",
				},
			},
		},
		{
			Category: "Content Structure Improvements",
			Items: []listing.InsightItem{
				{
					Title:       "Improve description formatting",
					Description: "Break up your description into clear sections with headers and bullet points for better readability.",
				},
				{
					Title:       "Add specific measurements",
					Description: "Include exact dimensions, weights, and specifications to improve search relevance and reduce returns.",
				},
				{
					Title:       "Create a clear feature hierarchy",
					Description: "Organize bullet points in order of importance to the customer, highlighting the most compelling benefits first.",
				},
			},
		},
		{
			Category: "Keyword Strategy",
			Items: []listing.InsightItem{
				{
					Title:       "Target missed opportunities",
					Description: "Incorporate the identified missed keyword opportunities, especially in your title and first bullet point.",
				},
				{
					Title:       "Add long-tail keywords",
					Description: "Include specific long-tail keywords in your description to capture more targeted search traffic.",
				},
				{
					Title:       "Diversify keyword placement",
					Description: "Ensure important keywords appear in multiple places (title, bullets, description) for better ranking potential.",
				},
			},
		},
	}
}
