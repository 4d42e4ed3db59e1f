package coinpics

import "github.com/pkg/errors"

var (
	// ErrInvalidImage is returned for unreadable or zero-size input.
	ErrInvalidImage = errors.New("invalid image")
	// ErrEmptyBounds is returned when detection finds no contour.
	ErrEmptyBounds = errors.New("no subject bounds found")
	// ErrInvalidRectangle is returned when a crop rectangle is empty or
	// reaches outside the image.
	ErrInvalidRectangle = errors.New("invalid rectangle")
	// ErrUnevenPictureSet is returned when a thumbnail set is not made of
	// obverse/reverse pairs.
	ErrUnevenPictureSet = errors.New("uneven picture set")
)
