package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuscan/backend/internal/domain"
	"github.com/menuscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	menuService    *usecase.MenuService
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(menuService *usecase.MenuService, maxUploadBytes int64) *Handler {
	return &Handler{
		menuService:    menuService,
		maxUploadBytes: maxUploadBytes,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "menuscan-backend",
		"version": "1.0.0",
	})
}

// ParseMenuUpload handles a multipart menu image upload: runs OCR, parses the
// text into a structured menu, and returns it with its validation result.
func (h *Handler) ParseMenuUpload(c *gin.Context) {
	if h.menuService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Menu parsing not configured",
		})
		return
	}

	file, header, err := c.Request.FormFile("menu")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu file is required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu file exceeds upload size limit"})
		return
	}

	restaurantName := c.PostForm("restaurantName")
	if restaurantName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurantName is required"})
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read menu file"})
		return
	}

	contentType := header.Header.Get("Content-Type")

	menu, validation, err := h.menuService.ParseFromImage(c.Request.Context(), image, contentType, restaurantName)
	if err != nil {
		h.respondParseError(c, err)
		return
	}

	h.respondParsed(c, menu, validation)
}

// ParseMenuText handles parsing of already-extracted menu text
func (h *Handler) ParseMenuText(c *gin.Context) {
	if h.menuService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Menu parsing not configured",
		})
		return
	}

	var req domain.ParseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and restaurantName are required"})
		return
	}

	menu, validation, err := h.menuService.ParseFromText(c.Request.Context(), req.Text, req.RestaurantName)
	if err != nil {
		h.respondParseError(c, err)
		return
	}

	h.respondParsed(c, menu, validation)
}

// ValidateMenu runs the strict validation pass over a caller-supplied menu
// without parsing anything
func (h *Handler) ValidateMenu(c *gin.Context) {
	var menu domain.ParsedMenu
	if err := c.ShouldBindJSON(&menu); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu payload"})
		return
	}

	c.JSON(http.StatusOK, usecase.ValidateMenu(&menu))
}

// respondParsed writes the parse response. Invalid menus come back as 422 but
// still carry the partial menu so an operator can review what was extracted.
func (h *Handler) respondParsed(c *gin.Context, menu *domain.ParsedMenu, validation domain.ValidationResult) {
	status := http.StatusOK
	if !validation.IsValid {
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{
		"menu":       menu,
		"validation": validation,
	})
}

// respondParseError maps service errors to HTTP status codes
func (h *Handler) respondParseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
	case errors.Is(err, domain.ErrUnsupportedFormat):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported image format"})
	case errors.Is(err, domain.ErrOCRFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "OCR engine temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
