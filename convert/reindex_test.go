package convert

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	epdfont "github.com/eunchurn/x4-epdfont-converter"
)

func TestReindex(t *testing.T) {
	tests := []struct {
		name string
		in   []rune
		want []epdfont.Interval
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "gaps split runs",
			in:   []rune{1, 2, 3, 7, 8, 10},
			want: []epdfont.Interval{
				{Start: 1, End: 3},
				{Start: 7, End: 8},
				{Start: 10, End: 10},
			},
		},
		{
			name: "unsorted input",
			in:   []rune{10, 1, 8, 3, 2, 7},
			want: []epdfont.Interval{
				{Start: 1, End: 3},
				{Start: 7, End: 8},
				{Start: 10, End: 10},
			},
		},
		{
			name: "single contiguous run",
			in:   []rune{0x41, 0x42, 0x43},
			want: []epdfont.Interval{{Start: 0x41, End: 0x43}},
		},
		{
			name: "all isolated",
			in:   []rune{2, 4, 6},
			want: []epdfont.Interval{
				{Start: 2, End: 2},
				{Start: 4, End: 4},
				{Start: 6, End: 6},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reindex(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reindex mismatch (-want +got):\n%s", diff)
			}

			// Fidelity: the union of the result must equal the input set.
			covered := 0
			for _, iv := range got {
				covered += int(iv.Len())
			}
			if covered != len(tt.in) {
				t.Errorf("covered %d codepoints, want %d", covered, len(tt.in))
			}
		})
	}
}

func TestOrderGlyphs(t *testing.T) {
	glyphs := map[rune]epdfont.GlyphData{
		0x43: {Glyph: epdfont.Glyph{AdvanceX: 3}},
		0x41: {Glyph: epdfont.Glyph{AdvanceX: 1}},
		0x42: {Glyph: epdfont.Glyph{AdvanceX: 2}},
	}

	keys, ordered := orderGlyphs(glyphs)
	if diff := cmp.Diff([]rune{0x41, 0x42, 0x43}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	for i, g := range ordered {
		if int(g.AdvanceX) != i+1 {
			t.Errorf("ordered[%d].AdvanceX = %d, want %d", i, g.AdvanceX, i+1)
		}
	}
}
