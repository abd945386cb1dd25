package convert

import (
	"context"

	"github.com/eunchurn/x4-epdfont-converter/rasterizer"

	epdfont "github.com/eunchurn/x4-epdfont-converter"
)

// batchSize is the number of codepoints rasterized per batch. Batching
// bounds the rasterizer's peak memory; it is not a concurrency mechanism.
const batchSize = 256

// Rasterizer is the glyph source driven by the conversion pipeline.
// *rasterizer.Session implements it; tests substitute stubs.
//
// Implementations are not required to be safe for concurrent use: the
// pipeline issues calls strictly sequentially, and at most one conversion
// may drive a given Rasterizer at a time.
type Rasterizer interface {
	// SetPixelSize configures the rendering size in pixels.
	SetPixelSize(px int) error

	// HasGlyph reports whether the font maps r to a glyph.
	HasGlyph(r rune) bool

	// LoadGlyphs rasterizes the given codepoints. Codepoints the font
	// cannot render are omitted from the result rather than reported as
	// an error; an error means the whole batch failed.
	LoadGlyphs(runes []rune) ([]rasterizer.Rendered, error)

	// Metrics returns the scaled vertical metrics for the configured
	// pixel size.
	Metrics() (rasterizer.Metrics, error)
}

// collectGlyphs rasterizes the codepoints in batches and quantizes each
// bitmap, accumulating a codepoint-keyed glyph map.
//
// A failing batch degrades to individual retries; codepoints that still
// fail are dropped with a warning, and the conversion proceeds with a
// smaller glyph set. ctx is checked between batches so a caller can
// cancel a long conversion.
func collectGlyphs(ctx context.Context, r Rasterizer, runes []rune, is2Bit bool, onBatch func(done, total int)) (map[rune]epdfont.GlyphData, error) {
	glyphs := make(map[rune]epdfont.GlyphData, len(runes))
	total := (len(runes) + batchSize - 1) / batchSize

	for i := 0; i < len(runes); i += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := runes[i:min(i+batchSize, len(runes))]
		rendered, err := r.LoadGlyphs(batch)
		if err != nil {
			epdfont.Logger().Warn("convert: batch rasterization failed, retrying individually",
				"batch_start", string(batch[0]), "batch_len", len(batch), "err", err)
			rendered = retryIndividually(r, batch)
		}

		for _, rg := range rendered {
			glyphs[rg.Rune] = quantizeGlyph(rg, is2Bit)
		}

		epdfont.Logger().Debug("convert: batch rasterized",
			"batch", i/batchSize+1, "batches", total,
			"requested", len(batch), "rendered", len(rendered))

		if onBatch != nil {
			onBatch(i/batchSize+1, total)
		}
	}

	return glyphs, nil
}

// retryIndividually rasterizes each codepoint of a failed batch on its
// own, dropping the unrecoverable ones.
func retryIndividually(r Rasterizer, batch []rune) []rasterizer.Rendered {
	rendered := make([]rasterizer.Rendered, 0, len(batch))
	for _, cp := range batch {
		one, err := r.LoadGlyphs([]rune{cp})
		if err != nil {
			epdfont.Logger().Warn("convert: dropping codepoint after retry",
				"codepoint", int(cp), "err", err)
			continue
		}
		rendered = append(rendered, one...)
	}
	return rendered
}

// quantizeGlyph converts a rendered glyph into a glyph record with its
// packed bit plane. DataOffset is left zero; the serializer assigns it
// in final codepoint order.
func quantizeGlyph(rg rasterizer.Rendered, is2Bit bool) epdfont.GlyphData {
	var data []byte
	if rg.Width > 0 && rg.Height > 0 {
		gray := Grayscale(Bitmap{Width: rg.Width, Height: rg.Height, Pix: rg.Pix})
		if is2Bit {
			data = Pack2Bit(gray)
		} else {
			data = Pack1Bit(gray)
		}
	}

	return epdfont.GlyphData{
		Glyph: epdfont.Glyph{
			Width:      clampDim(rg.Width),
			Height:     clampDim(rg.Height),
			AdvanceX:   clampAdvance(rg.Advance.Floor()),
			Left:       clampBearing(rg.Left),
			Top:        clampBearing(rg.Top),
			DataLength: uint32(len(data)),
		},
		Data: data,
	}
}

func clampDim(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampAdvance(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampBearing(v int) int16 {
	if v < -32768 {
		return -32768
	}
	if v > 32767 {
		return 32767
	}
	return int16(v)
}
