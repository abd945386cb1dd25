package rasterizer

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Rendered is one rasterized glyph bitmap with its placement metrics.
//
// Pix holds the coverage bitmap as row-major RGBA bytes (4 per pixel):
// black ink with the rasterizer's coverage in the alpha channel. Width
// and Height are zero for codepoints that map to a glyph without visible
// ink (spaces); Advance is still meaningful for those.
type Rendered struct {
	Rune rune

	// Pixel dimensions of the bitmap.
	Width, Height int

	// Left is the horizontal bearing from the pen origin to the bitmap's
	// left edge. Top is the distance from the baseline up to the bitmap's
	// top row.
	Left, Top int

	// Advance is the horizontal pen advance in 26.6 fixed point.
	Advance fixed.Int26_6

	// Pix is the RGBA coverage bitmap, Width*Height*4 bytes.
	Pix []uint8
}

// Metrics holds scaled font-wide vertical metrics in 26.6 fixed point,
// as reported by the rasterizer for the configured pixel size.
type Metrics struct {
	// Height is the recommended baseline-to-baseline distance.
	Height fixed.Int26_6

	// Ascent is the distance from the baseline to the top, positive.
	Ascent fixed.Int26_6

	// Descent is the distance from the baseline to the bottom, positive
	// (below the baseline).
	Descent fixed.Int26_6
}

// fontEntry is one font in the session's fallback stack.
type fontEntry struct {
	data   []byte
	parsed *opentype.Font
	cmap   *coverage
	face   font.Face // created by SetPixelSize, nil before that
}

// Session owns a stack of parsed fonts and the active pixel size.
//
// A Session is created once per conversion. It is not safe for concurrent
// use: SetPixelSize mutates the active faces that LoadGlyphs renders with,
// so at most one conversion may drive a Session at a time.
type Session struct {
	fonts     []*fontEntry
	pixelSize int
	config    sessionConfig
	name      string
}

// NewSession parses the given font files (TTF or OTF) into a session.
// Fonts are consulted in the given order: a glyph is rendered from the
// first font whose character map covers the codepoint.
//
// Each data slice is copied internally and can be reused after this call.
func NewSession(fontData [][]byte, opts ...Option) (*Session, error) {
	if len(fontData) == 0 {
		return nil, ErrNoFontData
	}

	config := defaultSessionConfig()
	for _, opt := range opts {
		opt(&config)
	}

	s := &Session{config: config}
	for i, data := range fontData {
		if len(data) == 0 {
			return nil, fmt.Errorf("%w (font %d)", ErrNoFontData, i)
		}

		dataCopy := make([]byte, len(data))
		copy(dataCopy, data)

		parsed, err := opentype.Parse(dataCopy)
		if err != nil {
			return nil, fmt.Errorf("rasterizer: failed to parse font %d: %w", i, err)
		}
		cmap, err := parseCoverage(dataCopy)
		if err != nil {
			return nil, err
		}

		s.fonts = append(s.fonts, &fontEntry{
			data:   dataCopy,
			parsed: parsed,
			cmap:   cmap,
		})
	}

	s.name = extractFamilyName(s.fonts[0].parsed)
	return s, nil
}

// FamilyName returns the family name of the primary font, or "Unknown
// Font" when the name table has no usable entry.
func (s *Session) FamilyName() string { return s.name }

// NumFonts returns the number of fonts in the fallback stack.
func (s *Session) NumFonts() int { return len(s.fonts) }

// SetPixelSize configures the rendering size for all fonts in the stack.
// It must be called before LoadGlyphs or Metrics.
func (s *Session) SetPixelSize(px int) error {
	if px < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPixelSize, px)
	}

	hinting := font.HintingNone
	if s.config.hinting {
		hinting = font.HintingFull
	}
	opts := &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     s.config.dpi,
		Hinting: hinting,
	}

	for i, entry := range s.fonts {
		face, err := opentype.NewFace(entry.parsed, opts)
		if err != nil {
			return fmt.Errorf("rasterizer: failed to create face for font %d at %dpx: %w", i, px, err)
		}
		if entry.face != nil {
			_ = entry.face.Close()
		}
		entry.face = face
	}

	s.pixelSize = px
	return nil
}

// HasGlyph reports whether any font in the stack maps r to a glyph.
func (s *Session) HasGlyph(r rune) bool {
	for _, entry := range s.fonts {
		if entry.cmap.Has(r) {
			return true
		}
	}
	return false
}

// LoadGlyphs rasterizes the given codepoints.
//
// Each codepoint is rendered from the first font in the stack that covers
// it. Codepoints covered by no font are omitted from the result; the
// caller observes them as missing. Codepoints that render to a zero-area
// bitmap (spaces) are included with Width and Height zero.
func (s *Session) LoadGlyphs(runes []rune) ([]Rendered, error) {
	if s.pixelSize == 0 {
		return nil, ErrSizeNotSet
	}

	out := make([]Rendered, 0, len(runes))
	for _, r := range runes {
		entry := s.lookup(r)
		if entry == nil {
			continue
		}

		dot := fixed.Point26_6{}
		dr, mask, maskp, advance, ok := entry.face.Glyph(dot, r)
		if !ok {
			continue
		}

		w, h := dr.Dx(), dr.Dy()
		out = append(out, Rendered{
			Rune:    r,
			Width:   w,
			Height:  h,
			Left:    dr.Min.X,
			Top:     -dr.Min.Y,
			Advance: advance,
			Pix:     maskToPix(mask, maskp, w, h),
		})
	}
	return out, nil
}

// Metrics returns the scaled vertical metrics for the configured size.
//
// The metrics are taken from the first font covering '|', falling back to
// the primary font; vertical-bar metrics follow the font that renders the
// tallest common glyph, which keeps line spacing consistent when fallback
// fonts dominate the glyph set.
func (s *Session) Metrics() (Metrics, error) {
	if s.pixelSize == 0 {
		return Metrics{}, ErrSizeNotSet
	}

	entry := s.lookup('|')
	if entry == nil {
		entry = s.fonts[0]
	}

	m := entry.face.Metrics()
	return Metrics{
		Height:  m.Height,
		Ascent:  m.Ascent,
		Descent: m.Descent,
	}, nil
}

// Close releases the faces created by SetPixelSize. The session must not
// be used after Close.
func (s *Session) Close() error {
	var firstErr error
	for _, entry := range s.fonts {
		if entry.face != nil {
			if err := entry.face.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			entry.face = nil
		}
	}
	s.pixelSize = 0
	return firstErr
}

// lookup returns the first font in the stack covering r, or nil.
func (s *Session) lookup(r rune) *fontEntry {
	for _, entry := range s.fonts {
		if entry.cmap.Has(r) {
			return entry
		}
	}
	return nil
}

// maskToPix converts a rasterizer alpha mask to a row-major RGBA buffer
// of black ink with coverage alpha. maskp is the mask-space point that
// corresponds to the bitmap's top-left corner.
func maskToPix(mask image.Image, maskp image.Point, w, h int) []uint8 {
	if w <= 0 || h <= 0 {
		return nil
	}

	pix := make([]uint8, w*h*4)
	if alpha, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			srcRow := alpha.Pix[(maskp.Y+y-alpha.Rect.Min.Y)*alpha.Stride+(maskp.X-alpha.Rect.Min.X):]
			dstRow := pix[y*w*4:]
			for x := 0; x < w; x++ {
				dstRow[x*4+3] = srcRow[x]
			}
		}
		return pix
	}

	// Generic path for mask implementations other than *image.Alpha.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := color.AlphaModel.Convert(mask.At(maskp.X+x, maskp.Y+y)).(color.Alpha).A
			pix[(y*w+x)*4+3] = a
		}
	}
	return pix
}

// extractFamilyName extracts the family name from the parsed font,
// falling back to the full name.
func extractFamilyName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
