package epdfont

// Binary format constants. These are wire-compatibility constraints shared
// with the e-paper firmware reader and must not change.
const (
	// Magic identifies an EPDFont file ("EPDF" in little-endian order).
	Magic uint32 = 0x46445045

	// Version is the current format version.
	Version uint16 = 1

	// HeaderSize is the fixed size of the file header in bytes.
	HeaderSize = 32

	// IntervalEntrySize is the size of one interval table entry in bytes.
	IntervalEntrySize = 12

	// GlyphEntrySize is the size of one glyph table entry in bytes.
	GlyphEntrySize = 16
)

// Interval is an inclusive range of Unicode codepoints backed by glyphs.
//
// GlyphOffset is the index of the glyph record for Start within the glyph
// table: the number of glyphs contained in all preceding intervals. It is
// an array index, not a byte offset.
type Interval struct {
	Start       uint32
	End         uint32
	GlyphOffset uint32
}

// Contains reports whether the codepoint r falls within the interval.
func (iv Interval) Contains(r rune) bool {
	return uint32(r) >= iv.Start && uint32(r) <= iv.End
}

// Len returns the number of codepoints covered by the interval.
func (iv Interval) Len() uint32 {
	return iv.End - iv.Start + 1
}

// Glyph is one glyph table entry.
//
// Width and Height are the pixel dimensions of the packed bitmap; both are
// zero for glyphs with no visible ink (spaces). AdvanceX is the horizontal
// pen advance in pixels. Left and Top position the bitmap relative to the
// pen origin: Left is the horizontal bearing, Top the distance from the
// baseline up to the bitmap's top row.
//
// DataLength and DataOffset locate the packed pixel data within the bitmap
// blob. DataOffset is assigned during serialization, in final ascending
// codepoint order, and is meaningless before that.
type Glyph struct {
	Width      uint8
	Height     uint8
	AdvanceX   uint8
	Left       int16
	Top        int16
	DataLength uint32
	DataOffset uint32
}

// Metrics holds the font-wide vertical metrics embedded in the header,
// in pixels at the rasterized size.
type Metrics struct {
	// AdvanceY is the line height (baseline-to-baseline distance).
	AdvanceY int

	// Ascender is the distance from the baseline to the typographic top,
	// positive upward.
	Ascender int

	// Descender is the distance from the baseline to the typographic
	// bottom, negative below the baseline.
	Descender int
}

// Header is the decoded 32-byte file header.
type Header struct {
	Magic           uint32
	Version         uint16
	Is2Bit          bool
	AdvanceY        uint8
	Ascender        int8
	Descender       int8
	IntervalCount   uint32
	GlyphCount      uint32
	IntervalsOffset uint32
	GlyphsOffset    uint32
	BitmapOffset    uint32
}

// GlyphsOffset returns the byte offset of the glyph table for a font with
// intervalCount interval entries.
func GlyphsOffset(intervalCount int) uint32 {
	return HeaderSize + uint32(intervalCount)*IntervalEntrySize
}

// BitmapOffset returns the byte offset of the bitmap blob for a font with
// intervalCount interval entries and glyphCount glyph entries.
func BitmapOffset(intervalCount, glyphCount int) uint32 {
	return GlyphsOffset(intervalCount) + uint32(glyphCount)*GlyphEntrySize
}
