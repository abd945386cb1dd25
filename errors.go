package epdfont

import "errors"

// Sentinel errors for EPDFont parsing.
var (
	// ErrTooShort is returned when the data is smaller than a full header
	// or one of the declared sections extends past the end of the data.
	ErrTooShort = errors.New("epdfont: data truncated")

	// ErrBadMagic is returned when the magic number does not match.
	ErrBadMagic = errors.New("epdfont: bad magic number")

	// ErrBadVersion is returned for an unsupported format version.
	ErrBadVersion = errors.New("epdfont: unsupported version")

	// ErrBadLayout is returned when the header's section offsets are
	// inconsistent with the interval and glyph counts.
	ErrBadLayout = errors.New("epdfont: inconsistent section offsets")
)
