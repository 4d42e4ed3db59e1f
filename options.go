package coinpics

import "image"

type Options struct {
	// Alpha ramp used when keying out the background.
	// Ideal start: 25-75 for a studio blue backdrop.
	// A narrow band gives hard edges; a wide band keeps blue fringes semi-transparent.
	Band Band
	// Pixels added on every side of the detected coin before cropping.
	// Ideal start: ~50 for 12-24 MP pictures.
	Padding int
	// Edge and contour settings for DetectBounds.
	Detect DetectOptions
	// Height of the composite thumbnail in pixels.
	ThumbnailHeight int
	// WebP quality of derivative images, 0-100.
	DerivativeQuality int
	// Quality used when a result is written back as JPEG.
	JPEGQuality int
	// Height of the downscaled image used by interactive previews.
	PreviewHeight int
}

func DefaultOptions() Options {
	return Options{
		Band:              Band{Min: DefaultBandMin, Max: DefaultBandMax},
		Padding:           50,
		Detect:            DefaultDetectOptions(),
		ThumbnailHeight:   250,
		DerivativeQuality: 50,
		JPEGQuality:       95,
		PreviewHeight:     900,
	}
}

// OptionsFromSize scales the crop padding to the picture: 50 px is tuned for
// pictures around 4000 px on the long side.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	long := max(size.X, size.Y)
	opt.Padding = clampInt(long*50/4000, 5, 200)
	return opt
}

type DetectOptions struct {
	// Side of the square structuring element used for erosion and dilation.
	KernelSize int
	// Erosions applied to the hue plane before edge detection.
	// Too low leaves texture on the coin face; too high merges the coin with shadows.
	ErodeIterations int
	// Dilations applied to the edge map to close gaps in the outline.
	DilateIterations int
	// Hysteresis thresholds of the edge operator (L1 gradient magnitude).
	LowThreshold  int
	HighThreshold int
	// Polygon approximation tolerance as a fraction of the contour perimeter.
	Epsilon float64
}

func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		KernelSize:       5,
		ErodeIterations:  4,
		DilateIterations: 1,
		LowThreshold:     100,
		HighThreshold:    200,
		Epsilon:          0.0015,
	}
}
