package coinpics

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const (
	// MinManualSize is the smallest width or height accepted for a manual
	// crop rectangle.
	MinManualSize = 10
	// outlineWidth is the stroke of the preview rectangle.
	outlineWidth = 5
)

// Pad grows base by amount pixels on every side and clips it to bounds.
// The result only depends on base, so callers keep the detected rectangle and
// re-pad it whenever the amount changes.
func Pad(base image.Rectangle, amount int, bounds image.Rectangle) image.Rectangle {
	amount = max(amount, 0)
	return base.Inset(-amount).Intersect(bounds)
}

// ManualRect builds a crop rectangle from caller supplied values. The origin
// is kept inside bounds, the size is at least MinManualSize and never reaches
// past the image edge.
func ManualRect(x, y, w, h int, bounds image.Rectangle) image.Rectangle {
	x = max(x, bounds.Min.X)
	y = max(y, bounds.Min.Y)
	w = min(max(w, MinManualSize), bounds.Max.X-x)
	h = min(max(h, MinManualSize), bounds.Max.Y-y)
	return image.Rect(x, y, x+max(w, 0), y+max(h, 0))
}

// Crop copies the pixels of r out of img. The result is exactly
// r.Dx() × r.Dy() and keeps an alpha channel only if img has one.
func Crop(img image.Image, r image.Rectangle) (*Raster, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInvalidImage, "crop")
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, errors.Wrapf(ErrInvalidRectangle, "crop to %v", r)
	}
	if !r.In(img.Bounds()) {
		return nil, errors.Wrapf(ErrInvalidRectangle, "crop %v outside %v", r, img.Bounds())
	}
	return fromRegion(img, r, channelsFor(img)), nil
}

// OverlayRect returns a copy of img with a white outline drawn along r.
func OverlayRect(img image.Image, r image.Rectangle) *Raster {
	out := FromImage(img, channelsFor(img))
	r = r.Sub(img.Bounds().Min)
	half := outlineWidth / 2
	bars := []image.Rectangle{
		image.Rect(r.Min.X-half, r.Min.Y-half, r.Max.X+half+1, r.Min.Y+half+1),
		image.Rect(r.Min.X-half, r.Max.Y-half, r.Max.X+half+1, r.Max.Y+half+1),
		image.Rect(r.Min.X-half, r.Min.Y-half, r.Min.X+half+1, r.Max.Y+half+1),
		image.Rect(r.Max.X-half, r.Min.Y-half, r.Max.X+half+1, r.Max.Y+half+1),
	}
	white := image.NewUniform(color.White)
	for _, b := range bars {
		draw.Draw(out, b.Intersect(out.Bounds()), white, image.Point{}, draw.Src)
	}
	return out
}
