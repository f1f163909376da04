package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/menuscan/backend/internal/domain"
)

// maxDescriptionLength caps how long a line can be and still count as an
// item description rather than unrelated text
const maxDescriptionLength = 100

// MenuParser converts raw OCR text into a structured menu. It holds no state
// across calls: item and section counters are scoped to a single parse so
// concurrent callers never interfere with each other.
type MenuParser struct {
	enableDebugLogging bool
}

// NewMenuParser creates a new menu parser
func NewMenuParser(enableDebugLogging bool) *MenuParser {
	return &MenuParser{
		enableDebugLogging: enableDebugLogging,
	}
}

// ParseMenuFromOCR builds a ParsedMenu from an OCR engine result and the
// caller-supplied restaurant name. The result's Confidence and BoundingBoxes
// are accepted for forward compatibility but never influence parsing.
func (p *MenuParser) ParseMenuFromOCR(ocr *domain.OCRResult, restaurantName string) *domain.ParsedMenu {
	items := p.parseItems(ocr.Text)
	sections := groupIntoSections(items)

	if p.enableDebugLogging {
		log.Printf("[PARSE] Extracted %d items across %d sections for %q",
			len(items), len(sections), restaurantName)
	}

	now := time.Now()
	return &domain.ParsedMenu{
		ID:             fmt.Sprintf("menu-%d", now.UnixMilli()),
		RestaurantName: restaurantName,
		Sections:       sections,
		LastUpdated:    now,
		Source:         domain.MenuSourceOCR,
	}
}

// parseItems walks the menu text line by line and emits a flat item list.
// CleanText collapses all whitespace including newlines, so the raw text is
// split into lines first and each line is cleaned individually to keep the
// line structure the walk depends on.
func (p *MenuParser) parseItems(text string) []domain.MenuItem {
	lines := strings.Split(text, "\n")

	currentSection := SectionOther
	itemID := 0
	var items []domain.MenuItem

	for i := 0; i < len(lines); i++ {
		line := CleanText(lines[i])
		if line == "" {
			continue
		}

		prices := ExtractPrices(line)

		// A line naming a section only becomes a header when it carries no
		// price; "Appetizers $5" is an item, not a header.
		if section := ClassifySection(line); section != SectionOther && len(prices) == 0 {
			currentSection = section
			if p.enableDebugLogging {
				log.Printf("[PARSE] Section header: %q", section)
			}
			continue
		}

		if len(prices) > 0 {
			price := prices[0]
			name := strings.TrimSpace(strings.Replace(line, price, "", 1))

			// Look ahead one line for a description. Only a single following
			// line is ever consumed; multi-line descriptions are not captured.
			description := ""
			if name != "" && i+1 < len(lines) {
				next := CleanText(lines[i+1])
				if len(next) >= 1 && len(next) < maxDescriptionLength && len(ExtractPrices(next)) == 0 {
					description = next
					i++
				}
			}

			itemID++
			items = append(items, domain.MenuItem{
				ID:          fmt.Sprintf("item-%d", itemID),
				Name:        name,
				Description: description,
				Price:       price,
				Category:    currentSection,
				IsAvailable: true,
			})
			continue
		}

		// Price-less line: attach as the previous item's description if it
		// doesn't have one yet, rather than discarding the text.
		if len(line) < maxDescriptionLength && len(items) > 0 && items[len(items)-1].Description == "" {
			items[len(items)-1].Description = line
		}
	}

	return items
}

// groupIntoSections groups items by category, preserving the order each
// distinct category was first seen. Empty sections are never constructed:
// every section exists because at least one item landed in it.
func groupIntoSections(items []domain.MenuItem) []domain.MenuSection {
	sectionIndex := make(map[string]int)
	var sections []domain.MenuSection

	for _, item := range items {
		idx, ok := sectionIndex[item.Category]
		if !ok {
			idx = len(sections)
			sectionIndex[item.Category] = idx
			sections = append(sections, domain.MenuSection{
				ID:    fmt.Sprintf("section-%d", idx+1),
				Name:  item.Category,
				Order: idx,
			})
		}
		sections[idx].Items = append(sections[idx].Items, item)
	}

	return sections
}
