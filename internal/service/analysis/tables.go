// internal/service/analysis/tables.go

package analysis

import (
	"strings"

	"listingseo/internal/domain/listing"
)

// categoryProfile holds the static keyword content for one product category
type categoryProfile struct {
	keywords           []string
	opportunities      []string
	longTail           []string
	backendTerms       string
	competitorKeywords []string
}

var categoryProfiles = map[string]categoryProfile{
	"electronics": {
		keywords:      []string{"wireless headphones", "bluetooth earbuds", "noise cancelling", "audio device", "wireless earphones"},
		opportunities: []string{"affordable headphones", "long battery life", "quick charge", "sound quality", "microphone included"},
		longTail: []string{
			"best noise cancelling headphones under 100",
			"wireless earbuds for small ears",
			"headphones with longest battery life",
			"bluetooth headphones for working out",
			"best headphones for conference calls",
		},
		backendTerms:       "wireless bluetooth noise-cancelling audio headset earphones",
		competitorKeywords: []string{"noise isolation", "voice assistant", "fast charging", "surround sound", "true wireless"},
	},
	"kitchen": {
		keywords:      []string{"stainless steel", "non-stick", "dishwasher safe", "cooking utensils", "kitchen gadget"},
		opportunities: []string{"easy to clean", "heat resistant", "space saving", "multipurpose kitchen", "chef recommended"},
		longTail: []string{
			"best knife set for home cooks",
			"non-stick pans that last long",
			"kitchen gadgets for small spaces",
			"easy to clean blender for smoothies",
			"kitchen tools for arthritis sufferers",
		},
		backendTerms:       "cooking utensils tools gadgets non-stick dishwasher-safe",
		competitorKeywords: []string{"BPA-free", "food grade", "heat resistant", "dishwasher safe", "ergonomic handle"},
	},
	"beauty": {
		keywords:      []string{"organic skincare", "hypoallergenic", "dermatologist tested", "beauty product", "skin moisturizer"},
		opportunities: []string{"paraben free", "cruelty free", "anti aging", "sensitive skin", "natural ingredients"},
		longTail: []string{
			"best moisturizer for sensitive combination skin",
			"anti-aging serum for 40s",
			"fragrance-free skincare for eczema",
			"natural makeup for teenagers",
			"overnight hair mask for damaged hair",
		},
		backendTerms:       "skincare organic natural hypoallergenic fragrance-free",
		competitorKeywords: []string{"paraben free", "cruelty free", "vegan friendly", "clinically tested", "dermatologist recommended"},
	},
	"toys": {
		keywords:      []string{"educational toys", "kids games", "family games", "learning toys", "children toys"},
		opportunities: []string{"stem toys", "developmental toys", "ages 3-5", "battery operated", "gift for kids"},
		longTail: []string{
			"educational toys for 5 year old boys",
			"indoor activities for toddlers rainy day",
			"birthday gifts for 8 year old girls",
			"puzzle games for kids and adults",
			"toys that help with fine motor skills",
		},
		backendTerms:       "kids children educational learning development games",
		competitorKeywords: []string{"child safe", "educational value", "developmental skills", "STEM learning", "imaginative play"},
	},
	"clothing": {
		keywords:      []string{"comfortable fit", "breathable fabric", "machine washable", "casual wear", "stylish design"},
		opportunities: []string{"stretchy material", "all season", "lightweight", "plus size", "petite fit"},
		longTail: []string{
			"comfortable women's pants for office work",
			"breathable men's shirts for summer",
			"stretchy jeans for plus size women",
			"quick dry athletic shirts for gym",
			"affordable business casual outfits",
		},
		backendTerms:       "comfortable breathable machine-washable stylish fashion",
		competitorKeywords: []string{"moisture wicking", "wrinkle free", "stain resistant", "quick dry", "UV protection"},
	},
	"home": {
		keywords:      []string{"home decor", "interior design", "decorative accent", "living room", "modern design"},
		opportunities: []string{"easy assembly", "space saving", "modern farmhouse", "rustic decor", "minimalist design"},
		longTail: []string{
			"wall decor for small living room",
			"modern farmhouse decorative pillows",
			"bathroom organization for small spaces",
			"affordable rustic home accents",
			"minimalist wall art for bedroom",
		},
		backendTerms:       "decor decoration interior design modern contemporary",
		competitorKeywords: []string{"easy assembly", "space saving", "modern design", "durable construction", "versatile use"},
	},
	"sports": {
		keywords:      []string{"fitness equipment", "workout gear", "exercise machine", "training equipment", "sports accessory"},
		opportunities: []string{"home gym", "compact equipment", "adjustable weight", "beginner friendly", "professional quality"},
		longTail: []string{
			"best home gym equipment for small apartments",
			"affordable weight bench for beginners",
			"compact exercise bike for seniors",
			"resistance bands with workout guide",
			"adjustable dumbbells for home gym",
		},
		backendTerms:       "fitness exercise workout training equipment gear",
		competitorKeywords: []string{"impact resistant", "comfortable grip", "lightweight design", "adjustable settings", "professional grade"},
	},
}

var genericProfile = categoryProfile{
	keywords:      []string{"premium quality", "best value", "high performance", "top rated", "customer favorite"},
	opportunities: []string{"budget friendly", "fast shipping", "easy to use", "gift idea", "compact design"},
	longTail: []string{
		"best affordable products for beginners",
		"top rated items with fast shipping",
		"high quality alternatives to expensive brands",
		"easy to use products with good warranty",
		"best selling items with highest reviews",
	},
	backendTerms:       "premium quality durable reliable best top-rated",
	competitorKeywords: []string{"best selling", "high quality", "customer favorite", "satisfaction guaranteed", "premium materials"},
}

// profileFor returns the profile registered for a category, or the generic one
func profileFor(category string) categoryProfile {
	if p, ok := categoryProfiles[categoryKey(category)]; ok {
		return p
	}
	return genericProfile
}

// knownCategories lists the categories with dedicated keyword tables
func knownCategories() []string {
	return []string{"electronics", "kitchen", "beauty", "toys", "clothing", "home", "sports"}
}

// categoryKey lower-cases only; surrounding whitespace selects the generic profile
func categoryKey(category string) string {
	return strings.ToLower(category)
}

// Per-index volume and relevance bases, cycled by position.
var (
	keywordVolumeBase     = []int{15000, 12500, 8700, 7300, 6200}
	keywordRelevanceBase  = []int{9, 8, 7, 8, 9}
	opportunityVolumeBase = []int{5600, 4800, 4200, 3800, 3300}
	longTailVolumeBase    = []int{1200, 950, 820, 780, 650}
)

const (
	keywordVolumeJitter     = 2000
	opportunityVolumeJitter = 1000
	longTailVolumeJitter    = 300
	opportunityCount        = 3
	longTailCount           = 4
)

var usageOptions = []listing.Usage{
	listing.SingleUsage(listing.LocationTitle),
	listing.SingleUsage(listing.LocationBullets),
	listing.SingleUsage(listing.LocationDescription),
	listing.SingleUsage(listing.LocationBackend),
	listing.MultiUsage(listing.LocationTitle, listing.LocationBullets),
	listing.MultiUsage(listing.LocationTitle, listing.LocationDescription),
	listing.MultiUsage(listing.LocationBullets, listing.LocationDescription),
	listing.MultiUsage(listing.LocationTitle, listing.LocationBullets, listing.LocationDescription),
	listing.SingleUsage(listing.LocationMissing),
}

// TagUniverse is the fixed set of labels a report can be tagged with
var TagUniverse = []string{
	"Title Optimization",
	"Keyword Research",
	"Bullet Points",
	"Product Description",
	"Backend Search Terms",
	"Competitor Analysis",
}

const tagCount = 4
