package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// OCRClient defines the interface for the external OCR engine collaborator
type OCRClient interface {
	ExtractText(ctx context.Context, image []byte, contentType string) (*OCRResult, error)
}
