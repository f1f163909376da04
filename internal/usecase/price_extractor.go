package usecase

import "regexp"

// pricePattern pairs a recognized price shape with a label so the match
// order below is a designed precedence, not incidental.
type pricePattern struct {
	label   string
	pattern *regexp.Regexp
}

// pricePatterns is the ordered table of recognized price shapes. The first
// table entry that matches a line supplies the price taken for an item, so
// specific shapes precede the general dollar amount: a half/full pair like
// "$10/15" must win over its "$10" prefix.
var pricePatterns = []pricePattern{
	{"half-full-range", regexp.MustCompile(`\$\d+/\d+`)},                     // $10/15 half/full portions
	{"labeled", regexp.MustCompile(`(?i)(?:price|cost):\s*\$\d+(?:\.\d+)?`)}, // Price: $10
	{"dollar", regexp.MustCompile(`\$\d+(?:\.\d+)?`)},                        // $10, $10.50
	{"bare-decimal", regexp.MustCompile(`\d+\.\d{2}`)},                       // 10.50 without a leading $
}

// ExtractPrices finds all substrings of text that look like a price.
// Matches are unioned across the pattern table with exact-string duplicates
// removed; first-match order per pattern is preserved.
func ExtractPrices(text string) []string {
	var prices []string
	seen := make(map[string]bool)

	for _, pp := range pricePatterns {
		for _, match := range pp.pattern.FindAllString(text, -1) {
			if seen[match] {
				continue
			}
			seen[match] = true
			prices = append(prices, match)
		}
	}

	return prices
}

// containsPrice reports whether text holds at least one recognized price
func containsPrice(text string) bool {
	for _, pp := range pricePatterns {
		if pp.pattern.MatchString(text) {
			return true
		}
	}
	return false
}
