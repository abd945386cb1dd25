// Package epdfont defines the EPDFont binary format used by e-paper
// display firmware, and provides serialization and parsing for it.
//
// EPDFont stores pre-rasterized glyph bitmaps packed at 1 or 2 bits per
// pixel, together with an interval table that maps Unicode codepoint
// ranges to glyph indices. The layout is offset-indexed so that a
// memory-constrained reader can locate any glyph with a binary search
// over the interval table followed by a single index computation.
//
// The file layout is, in order:
//
//   - 32-byte header (magic, version, bit depth, font metrics, counts,
//     section offsets)
//   - interval table, 12 bytes per entry
//   - glyph table, 16 bytes per entry
//   - bitmap blob (concatenated packed pixel data)
//
// All multi-byte fields are little-endian.
//
// Serialization is performed by [Serialize]; the inverse, used by tests
// and by host-side tooling that inspects .epdfont files, is [ParseFont].
// The conversion pipeline that produces the inputs to Serialize lives in
// the convert subpackage; the outline rasterizer it drives lives in the
// rasterizer subpackage.
package epdfont
