package ocrengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/menuscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxRetries = 3

// Client handles communication with the hosted OCR engine
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new OCR engine client
func NewClient(apiKey, baseURL string) *Client {
	// The engine quota is 7200 requests per hour, i.e. 2 requests per second
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// exponentialBackoff returns the wait duration before the given retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// ExtractText submits image bytes to the OCR engine and returns the extracted
// text together with the engine's confidence score and bounding boxes. The
// confidence and boxes are passed through untouched; downstream parsing does
// not branch on them.
func (c *Client) ExtractText(ctx context.Context, image []byte, contentType string) (*domain.OCRResult, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	endpoint := fmt.Sprintf("%s/v1/ocr/extract", c.baseURL)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(image))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("User-Agent", "MenuScan/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[OCR] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// Client errors won't resolve on retry
		if resp.StatusCode == http.StatusUnsupportedMediaType {
			return nil, domain.ErrUnsupportedFormat
		}
		if resp.StatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: status 400: %s", domain.ErrOCRFailure, string(body))
		}

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[OCR] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrOCRFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var result domain.OCRResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if c.debug {
			log.Printf("[OCR] Extracted %d chars, confidence %.1f, %d regions",
				len(result.Text), result.Confidence, len(result.BoundingBoxes))
		}

		return &result, nil
	}

	return nil, lastErr
}
