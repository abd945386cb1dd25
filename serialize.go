package epdfont

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCountMismatch is returned by Serialize when the interval table does
// not cover exactly as many codepoints as there are glyphs.
var ErrCountMismatch = errors.New("epdfont: interval coverage does not match glyph count")

// GlyphData pairs a glyph table entry with its packed bitmap bytes.
type GlyphData struct {
	Glyph
	Data []byte
}

// Serialize lays out a complete EPDFont file from the final interval list
// and the final glyph order.
//
// Glyphs must be sorted in ascending codepoint order, grouped to match the
// interval table: the glyphs of intervals[0] first, then intervals[1], and
// so on. Serialize recomputes every interval's GlyphOffset and every
// glyph's DataOffset and DataLength; values present in the inputs are
// ignored.
//
// Metrics outside the 8-bit header fields are clamped, with a warning
// through the package logger. The wire format keeps the narrow fields for
// compatibility with deployed firmware readers.
func Serialize(intervals []Interval, glyphs []GlyphData, m Metrics, is2Bit bool) ([]byte, error) {
	var covered uint64
	for _, iv := range intervals {
		if iv.Start > iv.End {
			return nil, fmt.Errorf("epdfont: invalid interval [%#x, %#x]", iv.Start, iv.End)
		}
		covered += uint64(iv.Len())
	}
	if covered != uint64(len(glyphs)) {
		return nil, fmt.Errorf("%w: intervals cover %d codepoints, have %d glyphs",
			ErrCountMismatch, covered, len(glyphs))
	}

	glyphsOff := GlyphsOffset(len(intervals))
	bitmapOff := BitmapOffset(len(intervals), len(glyphs))

	blobSize := 0
	for i := range glyphs {
		blobSize += len(glyphs[i].Data)
	}

	buf := make([]byte, int(bitmapOff)+blobSize)
	le := binary.LittleEndian

	// Header.
	le.PutUint32(buf[0:], Magic)
	le.PutUint16(buf[4:], Version)
	if is2Bit {
		buf[6] = 1
	}
	// buf[7] reserved
	buf[8] = clampU8(m.AdvanceY, "advanceY")
	buf[9] = uint8(clampI8(m.Ascender, "ascender"))
	buf[10] = uint8(clampI8(m.Descender, "descender"))
	// buf[11] reserved
	le.PutUint32(buf[12:], uint32(len(intervals)))
	le.PutUint32(buf[16:], uint32(len(glyphs)))
	le.PutUint32(buf[20:], HeaderSize)
	le.PutUint32(buf[24:], glyphsOff)
	le.PutUint32(buf[28:], bitmapOff)

	// Interval table. GlyphOffset is the running count of glyphs in all
	// prior intervals.
	off := HeaderSize
	var glyphIndex uint32
	for _, iv := range intervals {
		le.PutUint32(buf[off:], iv.Start)
		le.PutUint32(buf[off+4:], iv.End)
		le.PutUint32(buf[off+8:], glyphIndex)
		glyphIndex += iv.Len()
		off += IntervalEntrySize
	}

	// Glyph table and bitmap blob. DataOffset is recomputed here: the
	// final glyph order differs from collection order, so offsets assigned
	// during collection would be wrong.
	off = int(glyphsOff)
	dataOff := uint32(0)
	blob := buf[bitmapOff:bitmapOff]
	for i := range glyphs {
		g := &glyphs[i]
		buf[off] = g.Width
		buf[off+1] = g.Height
		buf[off+2] = g.AdvanceX
		// buf[off+3] reserved
		le.PutUint16(buf[off+4:], uint16(g.Left))
		le.PutUint16(buf[off+6:], uint16(g.Top))
		le.PutUint32(buf[off+8:], uint32(len(g.Data)))
		le.PutUint32(buf[off+12:], dataOff)
		dataOff += uint32(len(g.Data))
		off += GlyphEntrySize
		blob = append(blob, g.Data...)
	}

	return buf, nil
}

// clampU8 clamps v to [0, 255], warning if information is lost.
func clampU8(v int, field string) uint8 {
	switch {
	case v < 0:
		Logger().Warn("epdfont: metric below u8 range, clamping", "field", field, "value", v)
		return 0
	case v > 255:
		Logger().Warn("epdfont: metric above u8 range, clamping", "field", field, "value", v)
		return 255
	}
	return uint8(v)
}

// clampI8 clamps v to [-128, 127], warning if information is lost.
func clampI8(v int, field string) int8 {
	switch {
	case v < -128:
		Logger().Warn("epdfont: metric below i8 range, clamping", "field", field, "value", v)
		return -128
	case v > 127:
		Logger().Warn("epdfont: metric above i8 range, clamping", "field", field, "value", v)
		return 127
	}
	return int8(v)
}
