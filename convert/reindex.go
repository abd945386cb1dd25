package convert

import (
	"sort"

	epdfont "github.com/eunchurn/x4-epdfont-converter"
)

// Reindex derives the final contiguous interval list from the codepoints
// that actually produced glyphs. A new interval starts wherever the
// sorted codepoint sequence has a gap, so the union of the result exactly
// equals the input set: the emitted font never claims a codepoint it
// cannot render.
//
// GlyphOffset is left zero; the serializer computes it from the interval
// lengths.
func Reindex(codepoints []rune) []epdfont.Interval {
	if len(codepoints) == 0 {
		return nil
	}

	sorted := make([]rune, len(codepoints))
	copy(sorted, codepoints)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	intervals := []epdfont.Interval{{Start: uint32(sorted[0]), End: uint32(sorted[0])}}
	for _, cp := range sorted[1:] {
		last := &intervals[len(intervals)-1]
		if uint32(cp) == last.End+1 {
			last.End = uint32(cp)
			continue
		}
		intervals = append(intervals, epdfont.Interval{Start: uint32(cp), End: uint32(cp)})
	}
	return intervals
}

// orderGlyphs re-emits the collected glyph map as a slice in ascending
// codepoint order, matching the interval table order.
func orderGlyphs(glyphs map[rune]epdfont.GlyphData) ([]rune, []epdfont.GlyphData) {
	keys := make([]rune, 0, len(glyphs))
	for cp := range glyphs {
		keys = append(keys, cp)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	ordered := make([]epdfont.GlyphData, len(keys))
	for i, cp := range keys {
		ordered[i] = glyphs[cp]
	}
	return keys, ordered
}
