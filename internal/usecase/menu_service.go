package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/menuscan/backend/internal/domain"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// MenuServiceConfig holds configuration for the menu service
type MenuServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// MenuService orchestrates the OCR extraction, parsing, and validation of
// uploaded menus. Flow: check cache -> extract text -> parse -> validate ->
// cache valid results -> return.
type MenuService struct {
	cache              domain.CacheRepository
	ocrClient          domain.OCRClient
	parser             *MenuParser
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewMenuService creates a new menu service with dependencies
func NewMenuService(
	cache domain.CacheRepository,
	ocrClient domain.OCRClient,
	config MenuServiceConfig,
) *MenuService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &MenuService{
		cache:              cache,
		ocrClient:          ocrClient,
		parser:             NewMenuParser(config.EnableDebugLogging),
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ParseFromImage extracts menu text from an uploaded image via the OCR engine
// and parses it into a structured menu. The menu is always returned together
// with its validation result; an invalid menu is still handed back for
// operator review, it is just never cached.
func (s *MenuService) ParseFromImage(
	ctx context.Context,
	image []byte,
	contentType string,
	restaurantName string,
) (*domain.ParsedMenu, domain.ValidationResult, error) {
	if len(image) == 0 || strings.TrimSpace(restaurantName) == "" {
		return nil, domain.ValidationResult{}, domain.ErrInvalidRequest
	}

	cacheKey := s.generateCacheKey(image, restaurantName)

	// Try cache first: identical uploads parse deterministically, so a prior
	// valid result can be reused as-is.
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		if s.enableDebugLogging {
			log.Printf("[MENU] Cache hit for %q", restaurantName)
		}
		return cached, ValidateMenu(cached), nil
	}

	ocrResult, err := s.ocrClient.ExtractText(ctx, image, contentType)
	if err != nil {
		return nil, domain.ValidationResult{}, err
	}

	if s.enableDebugLogging {
		log.Printf("[MENU] OCR extracted %d chars (confidence %.1f) for %q",
			len(ocrResult.Text), ocrResult.Confidence, restaurantName)
	}

	menu := s.parser.ParseMenuFromOCR(ocrResult, restaurantName)
	validation := ValidateMenu(menu)

	if validation.IsValid {
		if err := s.cache.Set(ctx, cacheKey, menu, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[MENU] Failed to cache parse result: %v", err)
		}
	}

	return menu, validation, nil
}

// ParseFromText parses already-extracted menu text. Used when the caller ran
// OCR elsewhere or an operator pastes text directly. Not cached: parsing is
// cheap and deterministic.
func (s *MenuService) ParseFromText(
	ctx context.Context,
	text string,
	restaurantName string,
) (*domain.ParsedMenu, domain.ValidationResult, error) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(restaurantName) == "" {
		return nil, domain.ValidationResult{}, domain.ErrInvalidRequest
	}

	ocrResult := &domain.OCRResult{Text: text}
	menu := s.parser.ParseMenuFromOCR(ocrResult, restaurantName)

	return menu, ValidateMenu(menu), nil
}

// generateCacheKey builds a cache key from the image content hash and the
// normalized restaurant name. Format: "menu:{sha256}:{restaurant}"
func (s *MenuService) generateCacheKey(image []byte, restaurantName string) string {
	digest := sha256.Sum256(image)
	return fmt.Sprintf("menu:%x:%s", digest, normalizeForCacheKey(restaurantName))
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a parsed menu from cache. The memory cache JSON
// round-trips stored values, so a hit usually comes back as a generic map and
// is decoded through JSON rather than asserted directly.
func (s *MenuService) getFromCache(ctx context.Context, key string) (*domain.ParsedMenu, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if menu, ok := value.(*domain.ParsedMenu); ok {
		return menu, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}

	var menu domain.ParsedMenu
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, domain.ErrCacheMiss
	}

	return &menu, nil
}
