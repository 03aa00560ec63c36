package msdf

import "errors"

// Sentinel errors for the msdf package. Geometry and math routines
// never fail; errors surface only at precondition boundaries.
var (
	// ErrBitmapFormat is returned when a generation call receives a
	// bitmap whose channel count does not match the requested field
	// type. No pixels are written.
	ErrBitmapFormat = errors.New("msdf: bitmap channel count does not match field type")

	// ErrNilShape is returned when a generation call receives a nil
	// shape or bitmap.
	ErrNilShape = errors.New("msdf: nil shape or bitmap")
)
