// Package convert turns outline fonts into EPDFont binaries.
//
// The pipeline has five stages:
//
//  1. Interval preparation: the requested Unicode intervals (built-in
//     defaults, optional Korean set, caller additions) are merged into a
//     minimal sorted list and expanded to codepoints, dropping invisible
//     control characters.
//  2. Coverage scan: codepoints the font's character map cannot render
//     are dropped up front.
//  3. Collection: codepoints are rasterized in batches of 256 to bound
//     peak memory, and each coverage bitmap is quantized to a packed
//     1-bit or 2-bit plane.
//  4. Reindexing: contiguous codepoint runs are recomputed from the
//     glyphs that actually rasterized, so the output never claims a
//     codepoint it cannot render.
//  5. Serialization: the epdfont package lays out the final binary.
//
// The entry points are [ConvertFont], which works from raw font bytes,
// and [Convert], which drives any [Rasterizer] implementation. All
// failures are returned as errors; per-codepoint rasterization failures
// degrade to an individual retry and are then dropped with a warning
// rather than failing the conversion.
package convert
