package coinpics

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// huePlane returns the HSV hue of every pixel on the 0-179 scale of an
// 8-bit HSV image.
func huePlane(img image.Image) *Raster {
	src := FromImage(img, 3)
	out := NewRaster(src.W, src.H, 1)
	for i := range src.W * src.H {
		off := i * 3
		c := colorful.Color{
			R: float64(src.Pix[off]) / 255.0,
			G: float64(src.Pix[off+1]) / 255.0,
			B: float64(src.Pix[off+2]) / 255.0,
		}
		h, _, _ := c.Hsv()
		out.Pix[i] = uint8(min(179, int(h/2+0.5)))
	}
	return out
}

// erode applies a size×size minimum filter iterations times. Samples outside
// the plane are ignored.
func erode(p *Raster, size, iterations int) *Raster {
	return morph(p, size, iterations, func(a, b uint8) uint8 { return min(a, b) })
}

// dilate applies a size×size maximum filter iterations times.
func dilate(p *Raster, size, iterations int) *Raster {
	return morph(p, size, iterations, func(a, b uint8) uint8 { return max(a, b) })
}

// morph runs a square rank filter as two separable passes.
func morph(p *Raster, size, iterations int, pick func(a, b uint8) uint8) *Raster {
	cur := p.Clone()
	if size <= 1 {
		return cur
	}
	r := size / 2
	tmp := NewRaster(p.W, p.H, 1)
	for range iterations {
		for y := range p.H {
			row := y * p.W
			for x := range p.W {
				v := cur.Pix[row+x]
				for k := max(0, x-r); k <= min(p.W-1, x+r); k++ {
					v = pick(v, cur.Pix[row+k])
				}
				tmp.Pix[row+x] = v
			}
		}
		for y := range p.H {
			for x := range p.W {
				v := tmp.Pix[y*p.W+x]
				for k := max(0, y-r); k <= min(p.H-1, y+r); k++ {
					v = pick(v, tmp.Pix[k*p.W+x])
				}
				cur.Pix[y*p.W+x] = v
			}
		}
	}
	return cur
}
