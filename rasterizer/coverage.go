package rasterizer

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
)

// coverage answers codepoint membership queries against a font's cmap.
//
// Rendering goes through golang.org/x/image, but its cmap lookups require
// a scratch buffer per call; go-text/typesetting exposes the nominal-glyph
// lookup directly, which keeps the scan over tens of thousands of
// candidate codepoints cheap.
type coverage struct {
	face *font.Face
}

// parseCoverage parses font data (TTF or OTF) for cmap queries.
func parseCoverage(data []byte) (*coverage, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rasterizer: failed to parse font cmap: %w", err)
	}
	return &coverage{face: face}, nil
}

// Has reports whether the font maps r to a real glyph.
func (c *coverage) Has(r rune) bool {
	gid, ok := c.face.NominalGlyph(r)
	return ok && gid != 0
}
