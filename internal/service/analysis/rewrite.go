// internal/service/analysis/rewrite.go

package analysis

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"listingseo/internal/domain/listing"
)

const (
	checkmark          = "✅"
	bulletSlots        = 5
	maxBackendTerms    = 250
	backendExtendBelow = 200
	maxSizeOptions     = 10
)

var titleRecommendations = []string{
	"Place your most important keywords at the beginning of the title",
	"Include your brand name for better brand recognition",
	"Add key product features that differentiate your product",
	"Maintain a natural, readable title while incorporating keywords",
	"Keep title length under 200 characters for optimal display",
}

var bulletRecommendations = []string{
	"Start each bullet point with capital letters to grab attention",
	`Use symbols like "✅" to make your bullets stand out in the listing`,
	"Focus on benefits, not just features - explain why each feature matters",
	"Include specific measurements, materials, or specifications when relevant",
	"Keep bullet points concise but descriptive - aim for 15-20 words each",
}

var descriptionRecommendations = []string{
	"Use formatting like bold text and bullet points to improve readability",
	"Structure your description with clear sections to highlight different aspects",
	"Include keywords naturally throughout the description",
	"Address potential customer questions or concerns proactively",
	"End with a clear call-to-action to encourage purchases",
}

var backendTermsRecommendations = []string{
	"Use all available 250 characters for maximum keyword coverage",
	"Don't repeat words that are already in your title or bullets",
	"Separate terms with spaces, not commas or semicolons",
	"Include common misspellings and alternative spellings of key terms",
	"Focus on specific search terms customers might use to find your product",
}

// fillerBullets replace missing bullets, cycled by slot index
var fillerBullets = []string{
	"✅ PREMIUM QUALITY: Crafted with exceptional materials for durability and long-lasting performance - designed to exceed your expectations and provide reliable use for years to come",
	"✅ VERSATILE DESIGN: Perfect for multiple uses and occasions - adaptable functionality makes this an essential addition to your collection",
	"✅ USER-FRIENDLY FEATURES: Intuitive design with easy-to-use controls and simple operation - no complicated setup or learning curve",
	"✅ SATISFACTION GUARANTEED: Backed by our 100% satisfaction promise and responsive customer service - we stand behind our product quality",
}

const descriptionTemplate = `【Premium Quality %[1]s】 The %[2]s is designed with quality and performance in mind. We've crafted this product using the finest materials to ensure durability and satisfaction.

【Feature Highlights】
• Superior design optimized for comfort and ease of use
• Made with premium materials for exceptional durability
• Versatile functionality for multiple uses and applications
• Thoughtful details that enhance your experience

【Why Choose Our Product】
Our %[1]s stands out from the competition due to its exceptional quality, thoughtful design, and outstanding performance. We've listened to customer feedback to create a product that truly meets your needs.

【Perfect For】
This %[1]s is ideal for anyone looking for reliability, quality, and value. Whether you're a professional or enthusiast, you'll appreciate the attention to detail and superior performance.

【Our Promise】
We stand behind our products with complete confidence. Your satisfaction is our priority, which is why we offer a hassle-free guarantee and dedicated customer support.

Order now and experience the difference quality makes!`

func optimizeTitle(rng Rand, in listing.Input) string {
	words := strings.Split(in.Title, " ")
	head := words[:min(5, len(words))]
	tail := words[max(0, len(words)-3):]

	return fmt.Sprintf(
		"%s %s - Premium Quality %s for Home & Professional Use, Durable & Efficient Design (%d Size Options)",
		capitalize(in.Category),
		strings.Join(head, " "),
		strings.Join(tail, " "),
		rng.IntN(maxSizeOptions)+1,
	)
}

// optimizeBulletPoints always yields five lines, keeping the caller's bullets
// first and topping up from the filler pool
func optimizeBulletPoints(block string) string {
	original := splitBulletPoints(block)

	optimized := make([]string, 0, bulletSlots)
	for i := 0; i < bulletSlots; i++ {
		if i < len(original) {
			optimized = append(optimized, enhanceBullet(original[i]))
			continue
		}
		optimized = append(optimized, fillerBullets[i%len(fillerBullets)])
	}

	return strings.Join(optimized, "\n")
}

// enhanceBullet prefixes a checkmark and upper-cases the text before the first
// colon. Bullets that already carry the checkmark pass through unchanged.
func enhanceBullet(bullet string) string {
	if strings.Contains(bullet, checkmark) {
		return bullet
	}

	lead, _, _ := strings.Cut(strings.ToUpper(bullet), ":")
	_, rest, _ := strings.Cut(bullet, ":")
	if rest == "" {
		rest = bullet
	}

	return checkmark + " " + lead + ": " + rest
}

func optimizeDescription(in listing.Input) string {
	words := strings.Split(in.Title, " ")
	productName := strings.Join(words[:min(3, len(words))], " ")

	return fmt.Sprintf(descriptionTemplate, in.Category, productName)
}

// optimizeBackendTerms appends category terms while the caller's terms leave
// room. The budget counts characters, so a word may be cut.
func optimizeBackendTerms(in listing.Input) string {
	terms := strings.TrimSpace(in.SearchTerms)
	length := utf8.RuneCountInString(terms)

	if length < backendExtendBelow {
		extra := []rune(profileFor(in.Category).backendTerms)
		room := maxBackendTerms - length - 1
		if room < len(extra) {
			extra = extra[:room]
		}
		terms = strings.TrimSpace(terms + " " + string(extra))
	}

	if runes := []rune(terms); len(runes) > maxBackendTerms {
		terms = string(runes[:maxBackendTerms])
	}

	return terms
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
