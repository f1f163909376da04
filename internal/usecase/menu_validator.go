package usecase

import (
	"fmt"
	"strings"

	"github.com/menuscan/backend/internal/domain"
)

// ValidateMenuItem checks a single item and collects every applicable failure
// rather than stopping at the first. Extraction is deliberately permissive
// (items with odd prices are still constructed); validation is the strict pass.
func ValidateMenuItem(item *domain.MenuItem) domain.ValidationResult {
	var errs []string

	name := strings.TrimSpace(item.Name)
	if name == "" {
		errs = append(errs, "Item name is required")
	} else if containsPrice(name) {
		errs = append(errs, "Item name must not contain a price")
	}

	price := strings.TrimSpace(item.Price)
	if price == "" {
		errs = append(errs, "Item price is required")
	} else if !containsPrice(price) {
		errs = append(errs, "Invalid price format")
	}

	if strings.TrimSpace(item.Category) == "" {
		errs = append(errs, "Item category is required")
	}

	return domain.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// ValidateMenu checks a parsed menu and all of its sections and items.
// Item errors are prefixed with the section and item's 1-based position so an
// operator can trace them back to the source.
func ValidateMenu(menu *domain.ParsedMenu) domain.ValidationResult {
	var errs []string

	if strings.TrimSpace(menu.RestaurantName) == "" {
		errs = append(errs, "Restaurant name is required")
	}

	if len(menu.Sections) == 0 {
		errs = append(errs, "At least one menu section is required")
	}

	for si, section := range menu.Sections {
		if strings.TrimSpace(section.Name) == "" {
			errs = append(errs, fmt.Sprintf("Section %d: section name is required", si+1))
		}
		if len(section.Items) == 0 {
			errs = append(errs, fmt.Sprintf("Section %d: at least one item is required", si+1))
		}

		for ii := range section.Items {
			itemResult := ValidateMenuItem(&section.Items[ii])
			for _, msg := range itemResult.Errors {
				errs = append(errs, fmt.Sprintf("Section %d, item %d: %s", si+1, ii+1, msg))
			}
		}
	}

	return domain.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
