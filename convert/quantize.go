package convert

// renderThreshold is the alpha level above which a pixel is considered
// foreground ink (out of 255).
const renderThreshold = 127

// Bitmap is a rectangular 8-bit coverage map in row-major RGBA order,
// 4 bytes per pixel, as produced by the rasterizer.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// shouldRenderPixel reports whether a pixel carries foreground ink.
//
// The primary signal is the alpha channel. Some rasterizers encode
// coverage as RGB luminance over a mostly-opaque background instead; the
// fallback accepts pixels with modest alpha whose luminance is dark.
func shouldRenderPixel(r, g, b, a uint8) bool {
	if a > renderThreshold {
		return true
	}
	if a > renderThreshold/4 {
		luminance := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
		return luminance < 255-renderThreshold
	}
	return false
}

// Grayscale reduces a coverage bitmap to one intensity byte per pixel:
// the alpha value for foreground pixels, zero for background.
func Grayscale(bm Bitmap) []uint8 {
	gray := make([]uint8, bm.Width*bm.Height)
	for i := range gray {
		px := bm.Pix[i*4 : i*4+4]
		if shouldRenderPixel(px[0], px[1], px[2], px[3]) {
			gray[i] = px[3]
		}
	}
	return gray
}

// Pack1Bit packs grayscale intensities into a monochrome bit plane:
// 8 pixels per byte, MSB first, a pixel set when its intensity is at
// least 128. When the pixel count is not a multiple of 8 the final byte
// is padded with trailing zero bits.
func Pack1Bit(gray []uint8) []byte {
	if len(gray) == 0 {
		return nil
	}

	packed := make([]byte, (len(gray)+7)/8)
	for i, v := range gray {
		if v >= 128 {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	return packed
}

// Pack2Bit packs grayscale intensities into a 4-level plane: 4 pixels per
// byte, 2 bits per pixel, MSB first. Intensities quantize to level 3 at
// 192 and above, 2 at 128, 1 at 64, otherwise 0. When the pixel count is
// not a multiple of 4 the final byte is padded with trailing zero bits.
func Pack2Bit(gray []uint8) []byte {
	if len(gray) == 0 {
		return nil
	}

	packed := make([]byte, (len(gray)+3)/4)
	for i, v := range gray {
		var level byte
		switch {
		case v >= 192:
			level = 3
		case v >= 128:
			level = 2
		case v >= 64:
			level = 1
		}
		shift := uint(6 - 2*(i%4))
		packed[i/4] |= level << shift
	}
	return packed
}
