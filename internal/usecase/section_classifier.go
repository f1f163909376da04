package usecase

import "strings"

// SectionOther is the fallback section for lines that match no known header
const SectionOther = "Other"

// knownSections is the canonical section vocabulary, checked before the
// fuzzier keyword table. Order matters: the first entry that matches wins.
var knownSections = []string{
	"Appetizers", "Salads", "Soups", "Breakfast", "Lunch", "Dinner",
	"Main Courses", "Entrees", "Sandwiches", "Burgers", "Pizza", "Pasta",
	"Seafood", "Steak", "Chicken", "Vegetarian", "Vegan", "Desserts",
	"Beverages", "Drinks", "Cocktails", "Wine", "Beer", "Coffee", "Tea",
	"Kids Menu", "Specials", "Daily Specials", "Happy Hour", "Sides", "Extras",
}

// sectionSynonym maps a set of keywords to one canonical section name
type sectionSynonym struct {
	keywords []string
	section  string
}

// sectionSynonyms is the ordered keyword-containment table applied when no
// canonical name matches directly
var sectionSynonyms = []sectionSynonym{
	{[]string{"appetizer", "starter", "small plates"}, "Appetizers"},
	{[]string{"main course", "entree", "mains"}, "Main Courses"},
	{[]string{"dessert", "sweet", "treats"}, "Desserts"},
	{[]string{"drink", "beverage", "bar"}, "Beverages"},
	{[]string{"breakfast", "morning"}, "Breakfast"},
	{[]string{"lunch", "midday"}, "Lunch"},
	{[]string{"dinner", "evening"}, "Dinner"},
	{[]string{"burger", "sandwich"}, "Burgers"},
	{[]string{"pizza", "pie"}, "Pizza"},
	{[]string{"pasta", "noodle"}, "Pasta"},
	{[]string{"salad", "greens"}, "Salads"},
	{[]string{"soup", "broth"}, "Soups"},
	{[]string{"kids", "children"}, "Kids Menu"},
	{[]string{"special", "featured"}, "Specials"},
}

// ClassifySection decides whether a line of text is a section header and, if
// so, which canonical name it carries. Matching is case-insensitive: first an
// exact or substring containment check (either direction) against the
// canonical vocabulary, then the keyword table, else SectionOther.
func ClassifySection(line string) string {
	normalized := strings.ToLower(strings.TrimSpace(line))
	if normalized == "" {
		return SectionOther
	}

	for _, section := range knownSections {
		sectionLower := strings.ToLower(section)
		if normalized == sectionLower ||
			strings.Contains(normalized, sectionLower) ||
			strings.Contains(sectionLower, normalized) {
			return section
		}
	}

	for _, syn := range sectionSynonyms {
		for _, keyword := range syn.keywords {
			if strings.Contains(normalized, keyword) {
				return syn.section
			}
		}
	}

	return SectionOther
}
