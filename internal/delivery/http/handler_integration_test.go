package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menuscan/backend/config"
	"github.com/menuscan/backend/internal/domain"
	"github.com/menuscan/backend/internal/usecase"
)

const sampleMenuText = `APPETIZERS
Wings $12.99
Buffalo wings with ranch
Nachos $8.99
Loaded with cheese`

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxUploadMB:    10,
		},
		// Rate limiting is disabled in tests so request loops don't trip it
		RateLimit: config.RateLimitConfig{PerIP: 0},
	}
}

// setupTestRouter creates a test router without a menu service; parse
// endpoints respond 501
func setupTestRouter() *gin.Engine {
	handler := NewHandler(nil, 10*1024*1024)
	return SetupRouter(testConfig(), handler)
}

// --- Mock implementations for testing with a real MenuService ---

type mockCacheRepository struct {
	data map[string]interface{}
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{data: make(map[string]interface{})}
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

type mockOCRClient struct {
	result *domain.OCRResult
	err    error
}

func (m *mockOCRClient) ExtractText(ctx context.Context, image []byte, contentType string) (*domain.OCRResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// setupTestRouterWithService creates a test router with a real MenuService
// backed by mocks
func setupTestRouterWithService(ocr domain.OCRClient) *gin.Engine {
	menuService := usecase.NewMenuService(
		newMockCacheRepository(),
		ocr,
		usecase.MenuServiceConfig{CacheTTL: time.Hour},
	)

	handler := NewHandler(menuService, 10*1024*1024)
	return SetupRouter(testConfig(), handler)
}

// menuUploadRequest builds a multipart request with a menu file and restaurant name
func menuUploadRequest(t *testing.T, restaurantName string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("menu", "menu.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("fake-jpeg-bytes")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if restaurantName != "" {
		if err := writer.WriteField("restaurantName", restaurantName); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req, _ := http.NewRequest("POST", "/api/v1/menus/parse", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "menuscan-backend" {
			t.Errorf("service = %v, want menuscan-backend", response["service"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter()

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestParseEndpoints_NotConfigured(t *testing.T) {
	router := setupTestRouter()

	req := menuUploadRequest(t, "Testaurant")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotImplemented)
	}
}

func TestParseMenuUpload(t *testing.T) {
	t.Run("parses an uploaded menu image", func(t *testing.T) {
		ocr := &mockOCRClient{result: &domain.OCRResult{Text: sampleMenuText, Confidence: 91}}
		router := setupTestRouterWithService(ocr)

		req := menuUploadRequest(t, "Testaurant")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var response struct {
			Menu       domain.ParsedMenu       `json:"menu"`
			Validation domain.ValidationResult `json:"validation"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if !response.Validation.IsValid {
			t.Errorf("validation errors: %v", response.Validation.Errors)
		}
		if len(response.Menu.Sections) != 1 {
			t.Fatalf("len(Sections) = %d, want 1", len(response.Menu.Sections))
		}
		if response.Menu.Sections[0].Name != "Appetizers" {
			t.Errorf("section = %q, want Appetizers", response.Menu.Sections[0].Name)
		}
		if response.Menu.Source != domain.MenuSourceOCR {
			t.Errorf("source = %q, want %q", response.Menu.Source, domain.MenuSourceOCR)
		}
	})

	t.Run("returns 400 when the file is missing", func(t *testing.T) {
		router := setupTestRouterWithService(&mockOCRClient{})

		req, _ := http.NewRequest("POST", "/api/v1/menus/parse", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 400 when restaurantName is missing", func(t *testing.T) {
		router := setupTestRouterWithService(&mockOCRClient{})

		req := menuUploadRequest(t, "")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 415 for unsupported image format", func(t *testing.T) {
		ocr := &mockOCRClient{err: domain.ErrUnsupportedFormat}
		router := setupTestRouterWithService(ocr)

		req := menuUploadRequest(t, "Testaurant")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnsupportedMediaType {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusUnsupportedMediaType)
		}
	})

	t.Run("returns 502 when the OCR engine is down", func(t *testing.T) {
		ocr := &mockOCRClient{err: domain.ErrOCRFailure}
		router := setupTestRouterWithService(ocr)

		req := menuUploadRequest(t, "Testaurant")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadGateway)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "OCR engine temporarily unavailable" {
			t.Errorf("error = %v, want 'OCR engine temporarily unavailable'", response["error"])
		}
	})

	t.Run("returns 422 with partial menu for unparseable text", func(t *testing.T) {
		ocr := &mockOCRClient{result: &domain.OCRResult{Text: "completely unreadable scan"}}
		router := setupTestRouterWithService(ocr)

		req := menuUploadRequest(t, "Testaurant")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["menu"] == nil {
			t.Error("expected partial menu in response for operator review")
		}
		if response["validation"] == nil {
			t.Error("expected validation result in response")
		}
	})
}

func TestParseMenuText(t *testing.T) {
	t.Run("parses raw menu text", func(t *testing.T) {
		router := setupTestRouterWithService(&mockOCRClient{})

		payload, _ := json.Marshal(domain.ParseTextRequest{
			Text:           sampleMenuText,
			RestaurantName: "Testaurant",
		})
		req, _ := http.NewRequest("POST", "/api/v1/menus/parse-text", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("returns 400 for missing fields", func(t *testing.T) {
		router := setupTestRouterWithService(&mockOCRClient{})

		req, _ := http.NewRequest("POST", "/api/v1/menus/parse-text", strings.NewReader(`{"text":"Wings $12.99"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		router := setupTestRouterWithService(&mockOCRClient{})

		req, _ := http.NewRequest("POST", "/api/v1/menus/parse-text", strings.NewReader(`{invalid json}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestValidateMenuEndpoint(t *testing.T) {
	router := setupTestRouterWithService(&mockOCRClient{})

	t.Run("reports all problems for an invalid menu", func(t *testing.T) {
		menu := domain.ParsedMenu{
			RestaurantName: "Testaurant",
			Sections: []domain.MenuSection{
				{
					ID:    "section-1",
					Name:  "Appetizers",
					Items: []domain.MenuItem{{Category: "Appetizers"}},
				},
			},
		}

		payload, _ := json.Marshal(menu)
		req, _ := http.NewRequest("POST", "/api/v1/menus/validate", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var result domain.ValidationResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if result.IsValid {
			t.Error("IsValid = true, want false")
		}
		if len(result.Errors) < 2 {
			t.Errorf("len(Errors) = %d, want at least 2: %v", len(result.Errors), result.Errors)
		}
	})
}

func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:3000", got)
	}
}

func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/api/v1/menus/parse-text"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			router := setupTestRouter()

			req, _ := http.NewRequest(endpoint.method, endpoint.path, nil)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Errorf("Response should be valid JSON, got error: %v", err)
			}
		})
	}
}
