package convert

// FontLoadError reports that the font data could not be parsed into any
// usable face. It is fatal for the conversion.
type FontLoadError struct {
	Err error
}

func (e *FontLoadError) Error() string {
	return "convert: failed to load font: " + e.Err.Error()
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// FontConfigError reports that the font could not be configured for
// rendering (for example an invalid pixel size). It is fatal for the
// conversion.
type FontConfigError struct {
	Err error
}

func (e *FontConfigError) Error() string {
	return "convert: failed to configure font: " + e.Err.Error()
}

func (e *FontConfigError) Unwrap() error { return e.Err }

// BinaryBuildError reports that the final binary could not be laid out.
type BinaryBuildError struct {
	Err error
}

func (e *BinaryBuildError) Error() string {
	return "convert: failed to build binary: " + e.Err.Error()
}

func (e *BinaryBuildError) Unwrap() error { return e.Err }
