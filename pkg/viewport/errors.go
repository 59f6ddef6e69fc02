package viewport

import "errors"

var (
	// ErrInvalidConfiguration is returned when options hold values that would
	// make zoom behavior meaningless, such as a non-positive max scale.
	ErrInvalidConfiguration = errors.New("viewport: invalid configuration")

	// ErrNoImageBound is returned when geometry is requested before BindImage.
	ErrNoImageBound = errors.New("viewport: no image bound")

	// ErrInvalidImageSize is returned by BindImage for non-positive sizes.
	ErrInvalidImageSize = errors.New("viewport: invalid image size")

	// ErrBoundsNotReady is returned when bounds are requested before the
	// viewport has been measured for the current image.
	ErrBoundsNotReady = errors.New("viewport: bounds not computed")
)
