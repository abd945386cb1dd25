package convert

import (
	"sort"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	epdfont "github.com/eunchurn/x4-epdfont-converter"
)

// DefaultIntervals returns the built-in interval set used when the caller
// supplies no additional intervals: printable Latin, Latin Extended-A,
// common punctuation and symbols, Cyrillic, math operators and arrows.
func DefaultIntervals() []epdfont.Interval {
	return []epdfont.Interval{
		{Start: 0x0021, End: 0x007E}, // printable Basic Latin
		{Start: 0x00A1, End: 0x00FF}, // printable Latin-1 Supplement
		{Start: 0x0100, End: 0x017F}, // Latin Extended-A
		{Start: 0x2010, End: 0x203A}, // General Punctuation subset
		{Start: 0x2040, End: 0x205F}, // General Punctuation subset
		{Start: 0x20A0, End: 0x20CF}, // Currency Symbols
		{Start: 0x0400, End: 0x04FF}, // Cyrillic
		{Start: 0x2190, End: 0x21FF}, // Arrows
		{Start: 0x2200, End: 0x22FF}, // Math Operators subset
	}
}

// KoreanIntervals returns the fixed Korean-script interval set.
func KoreanIntervals() []epdfont.Interval {
	return []epdfont.Interval{
		{Start: 0x1100, End: 0x11FF}, // Hangul Jamo
		{Start: 0x3000, End: 0x303F}, // CJK Symbols and Punctuation
		{Start: 0x3130, End: 0x318F}, // Hangul Compatibility Jamo
		{Start: 0xAC00, End: 0xD7AF}, // Hangul Syllables
	}
}

// MergeIntervals returns the minimal sorted list of non-overlapping
// intervals covering exactly the same codepoints as the input. Intervals
// that overlap or are exactly adjacent are fused.
//
// The input slice is not modified. An empty input yields an empty output.
func MergeIntervals(intervals []epdfont.Interval) []epdfont.Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]epdfont.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End+1 {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// FromRangeTable converts a Unicode range table (for example
// unicode.Greek, or a table built with rangetable.Merge) into a merged
// interval list. Tables with stride greater than one produce one
// single-codepoint interval per covered rune, fused where contiguous.
func FromRangeTable(rt *unicode.RangeTable) []epdfont.Interval {
	var intervals []epdfont.Interval
	rangetable.Visit(rt, func(r rune) {
		cp := uint32(r)
		if n := len(intervals); n > 0 && intervals[n-1].End+1 == cp {
			intervals[n-1].End = cp
			return
		}
		intervals = append(intervals, epdfont.Interval{Start: cp, End: cp})
	})
	return intervals
}

// IsInvisible reports whether r is on the fixed denylist of control and
// zero-width codepoints excluded from conversion. Ordinary space
// characters (U+0020, U+00A0, U+3000) are not on the list: their advance
// width is needed for layout.
func IsInvisible(r rune) bool {
	switch {
	case r <= 0x001F: // C0 controls, including tab and line breaks
		return true
	case r >= 0x007F && r <= 0x009F: // DEL and C1 controls
		return true
	case r == 0x00AD: // soft hyphen
		return true
	case r == 0x1680: // Ogham space mark
		return true
	case r >= 0x200B && r <= 0x200F: // zero-width spaces/joiners, marks
		return true
	case r == 0x2028 || r == 0x2029: // line and paragraph separators
		return true
	case r >= 0x202A && r <= 0x202E: // directional controls
		return true
	case r == 0x2060: // word joiner
		return true
	case r == 0xFEFF: // zero-width no-break space (BOM)
		return true
	}
	return false
}

// FilterInvisible returns the codepoints of runes with the invisible
// characters removed. The filter is a fixed point: applying it to an
// already-filtered list returns an equal list.
func FilterInvisible(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if !IsInvisible(r) {
			out = append(out, r)
		}
	}
	return out
}

// expandIntervals expands merged intervals to a sorted, deduplicated
// codepoint list with invisible characters removed. The input must
// already be merged; merged intervals cannot produce duplicates.
func expandIntervals(intervals []epdfont.Interval) []rune {
	var n uint64
	for _, iv := range intervals {
		n += uint64(iv.Len())
	}

	runes := make([]rune, 0, n)
	for _, iv := range intervals {
		for cp := iv.Start; ; cp++ {
			if r := rune(cp); !IsInvisible(r) {
				runes = append(runes, r)
			}
			if cp == iv.End {
				break
			}
		}
	}
	return runes
}
