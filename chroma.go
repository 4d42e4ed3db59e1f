package coinpics

import (
	"image"

	"github.com/pkg/errors"
)

const (
	DefaultBandMin = 25
	DefaultBandMax = 75
	// MaxDistance is the largest key distance 2B-G-R of an 8-bit pixel.
	MaxDistance = 510
)

// Band is the key distance range over which alpha ramps from opaque (Min)
// to transparent (Max). Min < Max always holds for bands made by NewBand or
// Update.
type Band struct {
	Min, Max int
}

func NewBand(lo, hi int) Band {
	return Band{}.Update(lo, hi)
}

// Update returns the band with new limits. Limits are clamped to
// [0, MaxDistance] and a min that would reach max is pulled to max-1.
func (b Band) Update(lo, hi int) Band {
	b.Max = clampInt(hi, 1, MaxDistance)
	b.Min = clampInt(lo, 0, MaxDistance)
	if b.Min >= b.Max {
		b.Min = b.Max - 1
	}
	return b
}

// Alpha maps a key distance to an alpha value.
func (b Band) Alpha(d int) uint8 {
	if d < b.Min {
		return 255
	}
	if d > b.Max {
		return 0
	}
	return uint8(255 * (1 - float64(d-b.Min)/float64(b.Max-b.Min)))
}

// KeyOut returns a 4-channel copy of img where blue-dominant pixels get an
// alpha from their key distance and are blended towards white by the same
// amount. Other pixels stay opaque and untouched.
func KeyOut(img image.Image, band Band) (*Raster, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInvalidImage, "key out")
	}
	if band.Min >= band.Max {
		band = band.Update(band.Min, band.Max)
	}
	out := FromImage(img, 4)
	keyPixels(out.Pix, band)
	return out, nil
}

func keyPixels(pix []uint8, band Band) {
	for off := 0; off+3 < len(pix); off += 4 {
		r, g, b := int(pix[off]), int(pix[off+1]), int(pix[off+2])
		if b < g || b < r {
			pix[off+3] = 255
			continue
		}
		a := int(band.Alpha(2*b - g - r))
		pix[off] = uint8((255 - a) + r*a/255)
		pix[off+1] = uint8((255 - a) + g*a/255)
		pix[off+2] = uint8((255 - a) + b*a/255)
		pix[off+3] = uint8(a)
	}
}
