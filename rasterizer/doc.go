// Package rasterizer renders outline font glyphs to coverage bitmaps.
//
// A [Session] owns a stack of parsed fonts (TTF or OTF) and the currently
// configured pixel size. The conversion pipeline treats it as a pure
// function from codepoint and size to bitmap and metrics; rendering is
// backed by golang.org/x/image/font/opentype, and codepoint coverage
// checks use the font's cmap via github.com/go-text/typesetting.
//
// When more than one font is supplied, glyphs are taken from the first
// font in the stack whose character map covers the codepoint. This allows
// a primary font to be backed by fallback fonts for scripts it lacks.
//
// A Session holds the active-font and pixel-size state for exactly one
// conversion at a time. It performs no internal locking: callers running
// conversions concurrently must use one Session per conversion.
package rasterizer
