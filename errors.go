package rt

import "errors"

var (
	// ErrInvalidDimensions is returned when a RenderContext is constructed
	// with a non-positive width or height.
	ErrInvalidDimensions = errors.New("rt: width and height must be positive")

	// ErrTileOutOfBounds is returned when a tile rectangle is not fully
	// contained in the full image. Callers must clamp tiles at the image
	// edge before rendering them.
	ErrTileOutOfBounds = errors.New("rt: tile rectangle exceeds image bounds")
)
