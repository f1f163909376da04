package main

import (
	"fmt"
	"log"
	"os"

	"github.com/menuscan/backend/config"
	httpDelivery "github.com/menuscan/backend/internal/delivery/http"
	"github.com/menuscan/backend/internal/infrastructure/cache"
	"github.com/menuscan/backend/internal/infrastructure/ocrengine"
	"github.com/menuscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting MenuScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s (TTL: %s)", cfg.Cache.Type, cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	ocrClient := ocrengine.NewClient(cfg.OCR.APIKey, cfg.OCR.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		ocrClient.SetDebug(true)
		log.Printf("OCR client debug mode enabled")
	}

	if cfg.OCR.APIKey != "" {
		log.Printf("OCR engine configured: %s", cfg.OCR.BaseURL)
	} else {
		log.Printf("WARNING: OCR engine configured: %s (key: NOT CONFIGURED - uploads will fail!)", cfg.OCR.BaseURL)
	}

	// Initialize usecase layer
	menuService := usecase.NewMenuService(
		memoryCache,
		ocrClient,
		usecase.MenuServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Parser.EnableDebugLogging,
		},
	)

	// Create HTTP handler with dependencies
	maxUploadBytes := cfg.Server.MaxUploadMB * 1024 * 1024
	handler := httpDelivery.NewHandler(menuService, maxUploadBytes)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
