package epdfont

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Font is a parsed EPDFont file.
//
// Font keeps a reference to the input data; the interval and glyph tables
// are decoded eagerly (they are small), while bitmap data is sliced from
// the original buffer on demand. This mirrors how firmware readers use the
// format: tables in RAM, blob read in place.
type Font struct {
	header    Header
	intervals []Interval
	glyphs    []Glyph
	bitmap    []byte
}

// ParseFont decodes an EPDFont file.
//
// The returned Font shares memory with data; data must not be modified
// while the Font is in use.
func ParseFont(data []byte) (*Font, error) {
	if len(data) < HeaderSize {
		return nil, ErrTooShort
	}
	le := binary.LittleEndian

	h := Header{
		Magic:           le.Uint32(data[0:]),
		Version:         le.Uint16(data[4:]),
		Is2Bit:          data[6] != 0,
		AdvanceY:        data[8],
		Ascender:        int8(data[9]),
		Descender:       int8(data[10]),
		IntervalCount:   le.Uint32(data[12:]),
		GlyphCount:      le.Uint32(data[16:]),
		IntervalsOffset: le.Uint32(data[20:]),
		GlyphsOffset:    le.Uint32(data[24:]),
		BitmapOffset:    le.Uint32(data[28:]),
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("%w: %#08x", ErrBadMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	// Bound the table sizes in uint64 before trusting the 32-bit counts:
	// a crafted count whose entry-size product wraps uint32 must not reach
	// the allocations below.
	tableEnd := HeaderSize + uint64(h.IntervalCount)*IntervalEntrySize +
		uint64(h.GlyphCount)*GlyphEntrySize
	if tableEnd > uint64(len(data)) {
		return nil, ErrTooShort
	}
	if h.IntervalsOffset != HeaderSize ||
		h.GlyphsOffset != GlyphsOffset(int(h.IntervalCount)) ||
		h.BitmapOffset != BitmapOffset(int(h.IntervalCount), int(h.GlyphCount)) {
		return nil, ErrBadLayout
	}

	f := &Font{
		header:    h,
		intervals: make([]Interval, h.IntervalCount),
		glyphs:    make([]Glyph, h.GlyphCount),
		bitmap:    data[h.BitmapOffset:],
	}

	off := int(h.IntervalsOffset)
	for i := range f.intervals {
		f.intervals[i] = Interval{
			Start:       le.Uint32(data[off:]),
			End:         le.Uint32(data[off+4:]),
			GlyphOffset: le.Uint32(data[off+8:]),
		}
		off += IntervalEntrySize
	}

	off = int(h.GlyphsOffset)
	for i := range f.glyphs {
		f.glyphs[i] = Glyph{
			Width:      data[off],
			Height:     data[off+1],
			AdvanceX:   data[off+2],
			Left:       int16(le.Uint16(data[off+4:])),
			Top:        int16(le.Uint16(data[off+6:])),
			DataLength: le.Uint32(data[off+8:]),
			DataOffset: le.Uint32(data[off+12:]),
		}
		off += GlyphEntrySize
	}

	for _, g := range f.glyphs {
		if uint64(g.DataOffset)+uint64(g.DataLength) > uint64(len(f.bitmap)) {
			return nil, ErrTooShort
		}
	}

	return f, nil
}

// Header returns the decoded file header.
func (f *Font) Header() Header { return f.header }

// Intervals returns the decoded interval table.
func (f *Font) Intervals() []Interval { return f.intervals }

// Glyphs returns the decoded glyph table.
func (f *Font) Glyphs() []Glyph { return f.glyphs }

// Metrics returns the font-wide vertical metrics from the header.
func (f *Font) Metrics() Metrics {
	return Metrics{
		AdvanceY:  int(f.header.AdvanceY),
		Ascender:  int(f.header.Ascender),
		Descender: int(f.header.Descender),
	}
}

// Lookup finds the glyph for a codepoint.
//
// It binary-searches the interval table and indexes the glyph table with
// the interval's glyph offset, so the cost is O(log n) in the number of
// intervals. The second return value is false when the font has no glyph
// for r.
func (f *Font) Lookup(r rune) (Glyph, bool) {
	cp := uint32(r)
	i := sort.Search(len(f.intervals), func(i int) bool {
		return f.intervals[i].End >= cp
	})
	if i == len(f.intervals) || f.intervals[i].Start > cp {
		return Glyph{}, false
	}
	iv := f.intervals[i]
	return f.glyphs[iv.GlyphOffset+(cp-iv.Start)], true
}

// Bitmap returns the packed pixel data for a glyph, as a slice into the
// font's bitmap blob. The slice is empty for glyphs with no visible ink.
func (f *Font) Bitmap(g Glyph) []byte {
	return f.bitmap[g.DataOffset : g.DataOffset+g.DataLength]
}
