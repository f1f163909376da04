package domain

import "time"

// MenuSourceOCR marks menu data derived from optical character recognition,
// as opposed to manual entry or bulk import.
const MenuSourceOCR = "ocr"

// MenuItem represents a single dish or drink extracted from menu text
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	IsAvailable bool     `json:"isAvailable"`
	Allergens   []string `json:"allergens,omitempty"` // manual entry only, never set by the parser
	Calories    int      `json:"calories,omitempty"`  // manual entry only, never set by the parser
	ImageURL    string   `json:"imageUrl,omitempty"`  // manual entry only, never set by the parser
}

// MenuSection is a named grouping of menu items (e.g. "Appetizers")
type MenuSection struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
	Order int        `json:"order"`
}

// ParsedMenu is the structured result of a single parse operation.
// It is produced fresh on every call; the parser holds no state across calls.
type ParsedMenu struct {
	ID             string        `json:"id"`
	RestaurantName string        `json:"restaurantName"`
	Sections       []MenuSection `json:"sections"`
	LastUpdated    time.Time     `json:"lastUpdated"`
	Source         string        `json:"source"`
}

// ItemCount returns the total number of items across all sections
func (m *ParsedMenu) ItemCount() int {
	count := 0
	for _, section := range m.Sections {
		count += len(section.Items)
	}
	return count
}

// BoundingBox is a text region reported by the OCR engine
type BoundingBox struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// OCRResult is the output contract of the OCR engine collaborator.
// Confidence and BoundingBoxes are carried for forward compatibility;
// the parsing logic never branches on them.
type OCRResult struct {
	Text          string        `json:"text"`
	Confidence    float64       `json:"confidence"`
	BoundingBoxes []BoundingBox `json:"boundingBoxes"`
}

// ParseTextRequest is a request to parse already-extracted menu text
type ParseTextRequest struct {
	Text           string `json:"text" binding:"required"`
	RestaurantName string `json:"restaurantName" binding:"required"`
}

// ValidationResult collects all validation failures for a menu or item.
// Validators never throw; callers decide whether to reject or keep partial results.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}
