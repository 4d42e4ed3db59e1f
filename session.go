package coinpics

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// KeySession holds the state of one interactive keying pass. A controller
// changes the thresholds, shows Preview and finally takes Result; the session
// never calls back into the controller.
type KeySession struct {
	Source image.Image
	Band   Band
}

func NewKeySession(src image.Image, band Band) *KeySession {
	return &KeySession{Source: src, Band: band.Update(band.Min, band.Max)}
}

// SetThresholds updates the band, pulling min below max when needed.
func (s *KeySession) SetThresholds(lo, hi int) Band {
	s.Band = s.Band.Update(lo, hi)
	return s.Band
}

// Preview keys a copy of the source scaled to height pixels.
func (s *KeySession) Preview(height int) (*Raster, error) {
	small, err := scaleToHeight(s.Source, height)
	if err != nil {
		return nil, err
	}
	return KeyOut(small, s.Band)
}

func (s *KeySession) Result() (*Raster, error) {
	return KeyOut(s.Source, s.Band)
}

// CropSession holds the detected rectangle of one picture and the padding
// chosen for it. Padding is always applied to the detected rectangle, never
// to a previously padded one.
type CropSession struct {
	Source  image.Image
	Base    image.Rectangle
	Padding int

	manual *image.Rectangle
}

// NewCropSession runs detection on src.
func NewCropSession(src image.Image, opt DetectOptions, padding int) (*CropSession, error) {
	base, err := DetectBounds(src, opt)
	if err != nil {
		return nil, err
	}
	return &CropSession{Source: src, Base: base, Padding: padding}, nil
}

func (s *CropSession) SetPadding(p int) {
	s.Padding = p
	s.manual = nil
}

// SetManual replaces the detected rectangle with a caller supplied one until
// SetPadding is called again.
func (s *CropSession) SetManual(x, y, w, h int) image.Rectangle {
	r := ManualRect(x, y, w, h, s.Source.Bounds())
	s.manual = &r
	return r
}

func (s *CropSession) Rect() image.Rectangle {
	if s.manual != nil {
		return *s.manual
	}
	return Pad(s.Base, s.Padding, s.Source.Bounds())
}

// Preview outlines the current rectangle on a copy of the source.
func (s *CropSession) Preview() *Raster {
	return OverlayRect(s.Source, s.Rect())
}

func (s *CropSession) Result() (*Raster, error) {
	return Crop(s.Source, s.Rect())
}

func scaleToHeight(img image.Image, height int) (image.Image, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInvalidImage, "preview")
	}
	b := img.Bounds()
	if height < 1 || height >= b.Dy() {
		return img, nil
	}
	w := max(1, height*b.Dx()/b.Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, w, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}
