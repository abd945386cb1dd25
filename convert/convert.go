package convert

import (
	"context"
	"fmt"

	"github.com/eunchurn/x4-epdfont-converter/rasterizer"

	epdfont "github.com/eunchurn/x4-epdfont-converter"
)

// Options configures a conversion.
type Options struct {
	// FontName is informational only; it is reported back in the result
	// and never embedded in the binary format.
	FontName string

	// FontSize is the pixel size glyphs are rasterized at.
	FontSize int

	// Is2Bit selects 2-bit, 4-level grayscale packing. The default is
	// 1-bit monochrome.
	Is2Bit bool

	// AdditionalIntervals are unioned with the built-in default set.
	AdditionalIntervals []epdfont.Interval

	// IncludeKorean unions in the fixed Korean-script interval set
	// (Hangul syllables, Jamo, compatibility Jamo, CJK punctuation).
	IncludeKorean bool

	// OnProgress, when non-nil, receives advisory progress updates as a
	// percentage in [0, 100] and a human-readable stage name. It is
	// called from the converting goroutine and must not block.
	OnProgress func(pct float64, stage string)
}

// Result is the outcome of a successful conversion.
type Result struct {
	// Data is the complete EPDFont binary.
	Data []byte

	// FontName echoes Options.FontName.
	FontName string

	GlyphCount    int
	IntervalCount int
	TotalSize     int

	// Font-wide vertical metrics in pixels, as stored in the header.
	AdvanceY  int
	Ascender  int
	Descender int
}

// Progress milestones. Collection advances proportionally between
// progressCollect and progressReindex.
const (
	progressLoad      = 0
	progressIntervals = 5
	progressScan      = 10
	progressCollect   = 15
	progressReindex   = 85
	progressBuild     = 90
	progressDone      = 100
)

// ConvertFont converts raw font bytes (one or more TTF/OTF files, in
// fallback priority order) into an EPDFont binary.
//
// It creates a rasterizer session, configures the pixel size, and runs
// [Convert]. Font parse failures are reported as *FontLoadError and size
// configuration failures as *FontConfigError.
func ConvertFont(ctx context.Context, fontData [][]byte, opts Options) (*Result, error) {
	opts.progress(progressLoad, "loading font")

	session, err := rasterizer.NewSession(fontData)
	if err != nil {
		return nil, &FontLoadError{Err: err}
	}
	defer func() { _ = session.Close() }()

	if opts.FontName == "" {
		opts.FontName = session.FamilyName()
	}

	return Convert(ctx, session, opts)
}

// Convert runs the conversion pipeline against a configured rasterizer.
//
// Convert never panics across its boundary: an unexpected panic in any
// stage is recovered and returned as an error. Cancellation is checked
// between rasterization batches; when ctx is cancelled the conversion
// stops early and returns ctx's error.
func Convert(ctx context.Context, r Rasterizer, opts Options) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("convert: internal error: %v", rec)
		}
	}()

	if opts.FontSize < 1 {
		return nil, &FontConfigError{Err: fmt.Errorf("invalid font size %d", opts.FontSize)}
	}
	if err := r.SetPixelSize(opts.FontSize); err != nil {
		return nil, &FontConfigError{Err: err}
	}

	opts.progress(progressIntervals, "preparing intervals")
	requested := DefaultIntervals()
	requested = append(requested, opts.AdditionalIntervals...)
	if opts.IncludeKorean {
		requested = append(requested, KoreanIntervals()...)
	}
	candidates := expandIntervals(MergeIntervals(requested))

	opts.progress(progressScan, "scanning glyphs")
	supported := candidates[:0]
	for _, cp := range candidates {
		if r.HasGlyph(cp) {
			supported = append(supported, cp)
		}
	}

	opts.progress(progressCollect, "processing glyphs")
	glyphMap, err := collectGlyphs(ctx, r, supported, opts.Is2Bit, func(done, total int) {
		span := float64(progressReindex - progressCollect)
		opts.progress(progressCollect+span*float64(done)/float64(total), "processing glyphs")
	})
	if err != nil {
		return nil, err
	}

	opts.progress(progressReindex, "building intervals")
	codepoints, ordered := orderGlyphs(glyphMap)
	intervals := Reindex(codepoints)

	metrics, err := r.Metrics()
	if err != nil {
		return nil, &FontConfigError{Err: err}
	}

	opts.progress(progressBuild, "building binary")
	data, err := epdfont.Serialize(intervals, ordered, epdfont.Metrics{
		AdvanceY: metrics.Height.Ceil(),
		Ascender: metrics.Ascent.Ceil(),
		// The wire descender is negative below the baseline; Descent is
		// reported positive, and floor(-x) == -ceil(x).
		Descender: -metrics.Descent.Ceil(),
	}, opts.Is2Bit)
	if err != nil {
		return nil, &BinaryBuildError{Err: err}
	}

	opts.progress(progressDone, "complete")
	return &Result{
		Data:          data,
		FontName:      opts.FontName,
		GlyphCount:    len(ordered),
		IntervalCount: len(intervals),
		TotalSize:     len(data),
		AdvanceY:      metrics.Height.Ceil(),
		Ascender:      metrics.Ascent.Ceil(),
		Descender:     -metrics.Descent.Ceil(),
	}, nil
}

// progress invokes the OnProgress callback if one is set.
func (o *Options) progress(pct float64, stage string) {
	if o.OnProgress != nil {
		o.OnProgress(pct, stage)
	}
}
