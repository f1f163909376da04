package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyMenu is returned when parsing produced no sections at all
	ErrEmptyMenu = errors.New("no menu items could be extracted")

	// ErrOCRFailure is returned when the OCR engine request fails
	ErrOCRFailure = errors.New("OCR engine request failed")

	// ErrUnsupportedFormat is returned when the OCR engine rejects the image format
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
