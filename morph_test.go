package coinpics

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErodeSpreadsMinimum(t *testing.T) {
	p := NewRaster(7, 7, 1)
	fillPlane(p, p.Bounds(), 200)
	p.Pix[3*7+3] = 0

	got := erode(p, 3, 1)
	for y := range 7 {
		for x := range 7 {
			want := uint8(200)
			if image.Pt(x, y).In(image.Rect(2, 2, 5, 5)) {
				want = 0
			}
			assert.Equal(t, want, got.Pix[y*7+x], "(%d,%d)", x, y)
		}
	}
	// Input is not modified.
	assert.Equal(t, uint8(200), p.Pix[0])
}

func TestErodeIterationsAddUp(t *testing.T) {
	p := NewRaster(21, 1, 1)
	fillPlane(p, p.Bounds(), 100)
	p.Pix[10] = 0
	got := erode(p, 5, 4)
	for x := range 21 {
		want := uint8(100)
		if x >= 2 && x <= 18 {
			want = 0
		}
		assert.Equal(t, want, got.Pix[x], "x=%d", x)
	}
}

func TestDilateIgnoresOutside(t *testing.T) {
	p := binaryPlane(5, 5, image.Pt(0, 0))
	got := dilate(p, 5, 1)
	assert.Equal(t, uint8(255), got.Pix[2*5+2])
	assert.Equal(t, uint8(0), got.Pix[3*5+3])
}

func TestHuePlane(t *testing.T) {
	img := uniform(3, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 0, color.NRGBA{G: 255, A: 255})
	assert.Equal(t, []uint8{120, 0, 60}, huePlane(img).Pix)
}

func TestCannyVerticalStep(t *testing.T) {
	p := NewRaster(20, 10, 1)
	fillPlane(p, image.Rect(0, 0, 10, 10), 120)

	edges := canny(p, 100, 200)
	for y := range 10 {
		for x := range 20 {
			want := uint8(0)
			if x == 9 {
				want = 255
			}
			assert.Equal(t, want, edges.Pix[y*20+x], "(%d,%d)", x, y)
		}
	}
}

func TestCannyWeakStepIsIgnored(t *testing.T) {
	p := NewRaster(20, 10, 1)
	// |gx| = 4*20 = 80 stays under the low threshold.
	fillPlane(p, image.Rect(0, 0, 10, 10), 20)
	edges := canny(p, 100, 200)
	for _, v := range edges.Pix {
		assert.Zero(t, v)
	}
}

func TestCannyFullContrastDiagonal(t *testing.T) {
	// Largest possible gradients on both axes at once.
	p := NewRaster(16, 16, 1)
	for y := range 16 {
		for x := range 16 {
			if x+y < 16 {
				p.Pix[y*16+x] = 255
			}
		}
	}
	edges := canny(p, 100, 200)
	n := 0
	for y := range 16 {
		for x := range 16 {
			if edges.Pix[y*16+x] != 0 {
				n++
				assert.InDelta(t, 15.5, float64(x+y), 1.5, "(%d,%d)", x, y)
			}
		}
	}
	assert.NotZero(t, n)
}
