package rasterizer

import "errors"

// Sentinel errors for the rasterizer package.
var (
	// ErrNoFontData is returned when a session is created without any
	// font data, or with an empty byte slice.
	ErrNoFontData = errors.New("rasterizer: empty font data")

	// ErrInvalidPixelSize is returned by SetPixelSize for sizes < 1.
	ErrInvalidPixelSize = errors.New("rasterizer: pixel size must be positive")

	// ErrSizeNotSet is returned by rendering methods before SetPixelSize
	// has been called successfully.
	ErrSizeNotSet = errors.New("rasterizer: pixel size not set")
)
