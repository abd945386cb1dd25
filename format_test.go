package epdfont

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestSectionOffsets verifies the header offset arithmetic for arbitrary
// table sizes, including empty tables.
func TestSectionOffsets(t *testing.T) {
	tests := []struct {
		intervals, glyphs int
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{1, 3},
		{7, 120},
		{1000, 40000},
	}

	for _, tt := range tests {
		wantGlyphs := uint32(32 + tt.intervals*12)
		wantBitmap := uint32(32 + tt.intervals*12 + tt.glyphs*16)
		if got := GlyphsOffset(tt.intervals); got != wantGlyphs {
			t.Errorf("GlyphsOffset(%d) = %d, want %d", tt.intervals, got, wantGlyphs)
		}
		if got := BitmapOffset(tt.intervals, tt.glyphs); got != wantBitmap {
			t.Errorf("BitmapOffset(%d, %d) = %d, want %d", tt.intervals, tt.glyphs, got, wantBitmap)
		}
	}
}

// testGlyphs returns an interval list and matching glyph slice covering
// codepoints 0x41..0x43 with distinct bitmap payloads.
func testGlyphs() ([]Interval, []GlyphData) {
	intervals := []Interval{{Start: 0x41, End: 0x43}}
	glyphs := []GlyphData{
		{Glyph: Glyph{Width: 8, Height: 2, AdvanceX: 9, Left: 1, Top: 10}, Data: []byte{0xFF, 0x81}},
		{Glyph: Glyph{Width: 8, Height: 1, AdvanceX: 9, Left: 0, Top: 8}, Data: []byte{0x3C}},
		{Glyph: Glyph{Width: 8, Height: 3, AdvanceX: 10, Left: -1, Top: 10}, Data: []byte{0x01, 0x02, 0x03}},
	}
	return intervals, glyphs
}

func TestSerializeHeaderLayout(t *testing.T) {
	intervals, glyphs := testGlyphs()
	data, err := Serialize(intervals, glyphs, Metrics{AdvanceY: 18, Ascender: 14, Descender: -4}, false)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	le := binary.LittleEndian
	if got := le.Uint32(data[0:]); got != Magic {
		t.Errorf("magic = %#08x, want %#08x", got, Magic)
	}
	if got := le.Uint16(data[4:]); got != Version {
		t.Errorf("version = %d, want %d", got, Version)
	}
	if data[6] != 0 {
		t.Errorf("is2Bit = %d, want 0", data[6])
	}
	if data[8] != 18 || int8(data[9]) != 14 || int8(data[10]) != -4 {
		t.Errorf("metrics = (%d, %d, %d), want (18, 14, -4)", data[8], int8(data[9]), int8(data[10]))
	}
	if got := le.Uint32(data[12:]); got != 1 {
		t.Errorf("intervalCount = %d, want 1", got)
	}
	if got := le.Uint32(data[16:]); got != 3 {
		t.Errorf("glyphCount = %d, want 3", got)
	}
	if got := le.Uint32(data[20:]); got != 32 {
		t.Errorf("intervalsOffset = %d, want 32", got)
	}
	if got := le.Uint32(data[24:]); got != 32+1*12 {
		t.Errorf("glyphsOffset = %d, want %d", got, 32+1*12)
	}
	if got := le.Uint32(data[28:]); got != 32+1*12+3*16 {
		t.Errorf("bitmapOffset = %d, want %d", got, 32+1*12+3*16)
	}
	if want := 32 + 12 + 3*16 + 6; len(data) != want {
		t.Errorf("total size = %d, want %d", len(data), want)
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	intervals := []Interval{
		{Start: 0x41, End: 0x42},
		{Start: 0x410, End: 0x410},
	}
	glyphs := []GlyphData{
		{Glyph: Glyph{Width: 8, Height: 2, AdvanceX: 9, Left: 1, Top: 10}, Data: []byte{0xAA, 0x55}},
		{Glyph: Glyph{AdvanceX: 5}}, // empty glyph, no bitmap data
		{Glyph: Glyph{Width: 4, Height: 2, AdvanceX: 11, Left: -2, Top: 9}, Data: []byte{0xF0}},
	}

	data, err := Serialize(intervals, glyphs, Metrics{AdvanceY: 20, Ascender: 15, Descender: -5}, true)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	font, err := ParseFont(data)
	if err != nil {
		t.Fatalf("ParseFont failed: %v", err)
	}

	h := font.Header()
	if !h.Is2Bit {
		t.Error("Is2Bit = false, want true")
	}
	if got := font.Metrics(); got != (Metrics{AdvanceY: 20, Ascender: 15, Descender: -5}) {
		t.Errorf("Metrics = %+v", got)
	}

	wantIntervals := []Interval{
		{Start: 0x41, End: 0x42, GlyphOffset: 0},
		{Start: 0x410, End: 0x410, GlyphOffset: 2},
	}
	if diff := cmp.Diff(wantIntervals, font.Intervals()); diff != "" {
		t.Errorf("interval table mismatch (-want +got):\n%s", diff)
	}

	// DataOffsets must be assigned in final glyph order, empty glyphs
	// occupying no blob space.
	wantGlyphs := []Glyph{
		{Width: 8, Height: 2, AdvanceX: 9, Left: 1, Top: 10, DataLength: 2, DataOffset: 0},
		{AdvanceX: 5, DataLength: 0, DataOffset: 2},
		{Width: 4, Height: 2, AdvanceX: 11, Left: -2, Top: 9, DataLength: 1, DataOffset: 2},
	}
	if diff := cmp.Diff(wantGlyphs, font.Glyphs()); diff != "" {
		t.Errorf("glyph table mismatch (-want +got):\n%s", diff)
	}

	g, ok := font.Lookup(0x410)
	if !ok {
		t.Fatal("Lookup(0x410) failed")
	}
	if got := font.Bitmap(g); len(got) != 1 || got[0] != 0xF0 {
		t.Errorf("Bitmap = %v, want [0xF0]", got)
	}

	if _, ok := font.Lookup(0x43); ok {
		t.Error("Lookup(0x43) succeeded for uncovered codepoint")
	}
	if _, ok := font.Lookup(0x40); ok {
		t.Error("Lookup(0x40) succeeded for uncovered codepoint")
	}
}

func TestSerializeEmpty(t *testing.T) {
	data, err := Serialize(nil, nil, Metrics{AdvanceY: 10, Ascender: 8, Descender: -2}, false)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if len(data) != HeaderSize {
		t.Fatalf("empty font size = %d, want %d", len(data), HeaderSize)
	}

	font, err := ParseFont(data)
	if err != nil {
		t.Fatalf("ParseFont failed: %v", err)
	}
	if _, ok := font.Lookup('A'); ok {
		t.Error("Lookup succeeded on empty font")
	}
}

func TestSerializeCountMismatch(t *testing.T) {
	intervals := []Interval{{Start: 0x41, End: 0x43}}
	glyphs := []GlyphData{{Glyph: Glyph{AdvanceX: 1}}}

	_, err := Serialize(intervals, glyphs, Metrics{}, false)
	if !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("err = %v, want ErrCountMismatch", err)
	}
}

// TestSerializeClampsMetrics verifies that out-of-range metrics are
// clamped to the narrow header fields instead of wrapping.
func TestSerializeClampsMetrics(t *testing.T) {
	data, err := Serialize(nil, nil, Metrics{AdvanceY: 300, Ascender: 200, Descender: -200}, false)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if data[8] != 255 {
		t.Errorf("advanceY = %d, want clamped 255", data[8])
	}
	if int8(data[9]) != 127 {
		t.Errorf("ascender = %d, want clamped 127", int8(data[9]))
	}
	if int8(data[10]) != -128 {
		t.Errorf("descender = %d, want clamped -128", int8(data[10]))
	}
}

func TestParseFontRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data func() []byte
		want error
	}{
		{"short", func() []byte { return make([]byte, 10) }, ErrTooShort},
		{"bad magic", func() []byte {
			data, _ := Serialize(nil, nil, Metrics{}, false)
			data[0] ^= 0xFF
			return data
		}, ErrBadMagic},
		{"bad version", func() []byte {
			data, _ := Serialize(nil, nil, Metrics{}, false)
			data[4] = 99
			return data
		}, ErrBadVersion},
		{"bad layout", func() []byte {
			data, _ := Serialize(nil, nil, Metrics{}, false)
			binary.LittleEndian.PutUint32(data[24:], 1000)
			return data
		}, ErrBadLayout},
		{"truncated tables", func() []byte {
			data, _ := Serialize(nil, nil, Metrics{}, false)
			binary.LittleEndian.PutUint32(data[12:], 2)
			return data
		}, ErrTooShort},
		// 0x40000000 * 12 wraps a uint32 back to zero, so the section
		// offsets look consistent; the count must still be rejected
		// before any table is allocated.
		{"interval count overflow", func() []byte {
			data, _ := Serialize(nil, nil, Metrics{}, false)
			binary.LittleEndian.PutUint32(data[12:], 0x40000000)
			return data
		}, ErrTooShort},
		{"glyph count overflow", func() []byte {
			data, _ := Serialize(nil, nil, Metrics{}, false)
			binary.LittleEndian.PutUint32(data[16:], 0x10000000)
			return data
		}, ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFont(tt.data())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
