// Command ttf2epdfont converts TTF/OTF font files to the EPDFont binary
// format used by e-paper display firmware.
//
// Usage:
//
//	ttf2epdfont [flags] <name> <size> <fontfile> [fontfile...]
//
// Additional font files act as fallbacks, consulted in order for
// codepoints the primary font does not cover.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/eunchurn/x4-epdfont-converter/convert"

	epdfont "github.com/eunchurn/x4-epdfont-converter"
)

// intervalList accepts repeated "MIN,MAX" flags, hex or decimal.
type intervalList []epdfont.Interval

func (l *intervalList) String() string {
	parts := make([]string, len(*l))
	for i, iv := range *l {
		parts[i] = fmt.Sprintf("%#x,%#x", iv.Start, iv.End)
	}
	return strings.Join(parts, " ")
}

func (l *intervalList) Set(s string) error {
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("expected MIN,MAX, got %q", s)
	}
	start, err := strconv.ParseUint(strings.TrimSpace(lo), 0, 32)
	if err != nil {
		return fmt.Errorf("bad interval start %q: %v", lo, err)
	}
	end, err := strconv.ParseUint(strings.TrimSpace(hi), 0, 32)
	if err != nil {
		return fmt.Errorf("bad interval end %q: %v", hi, err)
	}
	if start > end {
		return fmt.Errorf("interval start %#x after end %#x", start, end)
	}
	*l = append(*l, epdfont.Interval{Start: uint32(start), End: uint32(end)})
	return nil
}

// tableList accepts repeated named Unicode script or category tables.
type tableList []*unicode.RangeTable

func (l *tableList) String() string { return fmt.Sprintf("%d tables", len(*l)) }

func (l *tableList) Set(name string) error {
	if rt, ok := unicode.Scripts[name]; ok {
		*l = append(*l, rt)
		return nil
	}
	if rt, ok := unicode.Categories[name]; ok {
		*l = append(*l, rt)
		return nil
	}
	return fmt.Errorf("unknown Unicode table %q", name)
}

func main() {
	var (
		output  = flag.String("o", "", "output path (default <name>_<size>.epdfont)")
		is2Bit  = flag.Bool("2bit", false, "generate 2-bit grayscale instead of 1-bit monochrome")
		korean  = flag.Bool("korean", false, "include the Korean script interval set")
		verbose = flag.Bool("v", false, "log conversion warnings to stderr")
		quiet   = flag.Bool("q", false, "suppress progress output")
	)
	var extra intervalList
	var tables tableList
	flag.Var(&extra, "additional-intervals", "additional Unicode interval as MIN,MAX (hex or decimal); repeatable")
	flag.Var(&tables, "table", "named Unicode script or category to include (e.g. Greek); repeatable")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] <name> <size> <fontfile> [fontfile...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		flag.Usage()
		os.Exit(2)
	}

	name := args[0]
	size, err := strconv.Atoi(args[1])
	if err != nil || size < 1 {
		log.Fatalf("invalid font size %q", args[1])
	}

	if *verbose {
		epdfont.SetLogger(slog.Default())
	}

	fontData := make([][]byte, 0, len(args)-2)
	for _, path := range args[2:] {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read font file: %v", err)
		}
		fontData = append(fontData, data)
	}

	intervals := extra
	if len(tables) > 0 {
		intervals = append(intervals, convert.FromRangeTable(rangetable.Merge(tables...))...)
	}

	opts := convert.Options{
		FontName:            name,
		FontSize:            size,
		Is2Bit:              *is2Bit,
		AdditionalIntervals: intervals,
		IncludeKorean:       *korean || isKoreanName(name),
	}
	if !*quiet {
		opts.OnProgress = func(pct float64, stage string) {
			fmt.Fprintf(os.Stderr, "\r%3.0f%% %-20s", pct, stage)
		}
	}

	result, err := convert.ConvertFont(context.Background(), fontData, opts)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		log.Fatalf("conversion failed: %v", err)
	}

	outPath := *output
	if outPath == "" {
		outPath = fmt.Sprintf("%s_%d.epdfont", name, size)
	}
	if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}

	fmt.Printf("Created: %s\n", outPath)
	fmt.Printf("  Font:      %s, %dpx, %s\n", result.FontName, size, mode(*is2Bit))
	fmt.Printf("  Intervals: %d\n", result.IntervalCount)
	fmt.Printf("  Glyphs:    %d\n", result.GlyphCount)
	fmt.Printf("  Metrics:   advanceY=%d ascender=%d descender=%d\n",
		result.AdvanceY, result.Ascender, result.Descender)
	fmt.Printf("  Size:      %d bytes\n", result.TotalSize)
}

// isKoreanName reports whether the font name implies Korean coverage, so
// Hangul intervals are included without an explicit -korean flag.
func isKoreanName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "korean") ||
		strings.Contains(lower, "hangul") ||
		strings.Contains(lower, "hangeul")
}

func mode(is2Bit bool) string {
	if is2Bit {
		return "2-bit grayscale"
	}
	return "1-bit monochrome"
}
