package rasterizer

// Option configures Session creation.
type Option func(*sessionConfig)

// sessionConfig holds configuration for a Session.
type sessionConfig struct {
	dpi     float64
	hinting bool
}

// defaultSessionConfig returns the default session configuration.
func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		dpi:     72, // 72 DPI makes point size equal pixel size (ppem)
		hinting: true,
	}
}

// WithDPI sets the rendering resolution in dots per inch.
//
// The default is 72, so that the size passed to SetPixelSize is the
// pixels-per-em directly. Pass a higher value to reproduce converters
// that rasterize point sizes at printer resolutions.
func WithDPI(dpi float64) Option {
	return func(c *sessionConfig) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithHinting enables or disables glyph hinting. Hinting is enabled by
// default; small pixel sizes on e-paper benefit from grid fitting.
func WithHinting(enabled bool) Option {
	return func(c *sessionConfig) {
		c.hinting = enabled
	}
}
