package coinpics

import (
	"image"
	"image/color"
)

// Raster is a packed 8-bit image with an explicit channel count.
// Channels are stored R, G, B(, A) for colour rasters; a 1-channel raster
// holds a single plane (hue, edge map). Alpha, when present, is straight
// (not premultiplied).
type Raster struct {
	W, H     int
	Channels int
	Pix      []uint8 // len = W*H*Channels
}

// NewRaster allocates a zeroed raster.
func NewRaster(w, h, channels int) *Raster {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Raster{
		W:        w,
		H:        h,
		Channels: channels,
		Pix:      make([]uint8, w*h*channels),
	}
}

// FromImage copies img into a raster with the given channel count (1, 3 or
// 4). A 1-channel raster receives the luma of each pixel.
func FromImage(img image.Image, channels int) *Raster {
	return fromRegion(img, img.Bounds(), channels)
}

func fromRegion(img image.Image, rect image.Rectangle, channels int) *Raster {
	if src, ok := img.(*Raster); ok && src.Channels == channels {
		return src.SubRaster(rect)
	}
	w, h := rect.Dx(), rect.Dy()
	r := NewRaster(w, h, channels)
	for y := range h {
		for x := range w {
			c := color.NRGBAModel.Convert(img.At(rect.Min.X+x, rect.Min.Y+y)).(color.NRGBA)
			off := r.PixOffset(x, y)
			switch channels {
			case 1:
				r.Pix[off] = color.GrayModel.Convert(c).(color.Gray).Y
			case 3:
				r.Pix[off] = c.R
				r.Pix[off+1] = c.G
				r.Pix[off+2] = c.B
			default:
				r.Pix[off] = c.R
				r.Pix[off+1] = c.G
				r.Pix[off+2] = c.B
				r.Pix[off+3] = c.A
			}
		}
	}
	return r
}

// channelsFor picks 4 channels for sources that carry transparency and 3 for
// everything else.
func channelsFor(img image.Image) int {
	switch t := img.(type) {
	case *Raster:
		if t.Channels == 4 {
			return 4
		}
		return 3
	case interface{ Opaque() bool }:
		if !t.Opaque() {
			return 4
		}
	}
	return 3
}

func (r *Raster) PixOffset(x, y int) int {
	return (y*r.W + x) * r.Channels
}

func (r *Raster) Channel(x, y, c int) uint8 {
	return r.Pix[r.PixOffset(x, y)+c]
}

func (r *Raster) SetChannel(x, y, c int, v uint8) {
	r.Pix[r.PixOffset(x, y)+c] = v
}

func (r *Raster) Empty() bool {
	return r == nil || r.W <= 0 || r.H <= 0
}

func (r *Raster) Clone() *Raster {
	out := &Raster{W: r.W, H: r.H, Channels: r.Channels, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

func (r *Raster) ColorModel() color.Model {
	switch r.Channels {
	case 1:
		return color.GrayModel
	case 4:
		return color.NRGBAModel
	default:
		return color.RGBAModel
	}
}

func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.W, r.H)
}

func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(r.Bounds())) {
		return color.NRGBA{}
	}
	off := r.PixOffset(x, y)
	switch r.Channels {
	case 1:
		return color.Gray{Y: r.Pix[off]}
	case 4:
		return color.NRGBA{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2], A: r.Pix[off+3]}
	default:
		return color.RGBA{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2], A: 255}
	}
}

// Set makes Raster a draw.Image. 3-channel rasters drop alpha.
func (r *Raster) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(r.Bounds())) {
		return
	}
	off := r.PixOffset(x, y)
	switch r.Channels {
	case 1:
		r.Pix[off] = color.GrayModel.Convert(c).(color.Gray).Y
	case 4:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		r.Pix[off], r.Pix[off+1], r.Pix[off+2], r.Pix[off+3] = n.R, n.G, n.B, n.A
	default:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		r.Pix[off], r.Pix[off+1], r.Pix[off+2] = n.R, n.G, n.B
	}
}

// SubRaster copies the pixels of rect (which must lie inside r).
func (r *Raster) SubRaster(rect image.Rectangle) *Raster {
	out := NewRaster(rect.Dx(), rect.Dy(), r.Channels)
	rowLen := rect.Dx() * r.Channels
	for y := range rect.Dy() {
		src := r.PixOffset(rect.Min.X, rect.Min.Y+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], r.Pix[src:src+rowLen])
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
