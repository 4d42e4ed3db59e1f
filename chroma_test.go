package coinpics

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestKeyOutForegroundStaysOpaque(t *testing.T) {
	img := uniform(4, 3, color.NRGBA{R: 255, A: 255})
	out, err := KeyOut(img, NewBand(25, 75))
	require.NoError(t, err)
	require.Equal(t, 4, out.Channels)
	for y := range out.H {
		for x := range out.W {
			assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.At(x, y))
		}
	}
}

func TestKeyOutPureBlueIsTransparent(t *testing.T) {
	img := uniform(5, 5, color.NRGBA{B: 255, A: 255})
	out, err := KeyOut(img, NewBand(25, 75))
	require.NoError(t, err)
	for y := range out.H {
		for x := range out.W {
			assert.Equal(t, uint8(0), out.Channel(x, y, 3))
			// Fully keyed pixels are blended to white.
			assert.Equal(t, uint8(255), out.Channel(x, y, 0))
			assert.Equal(t, uint8(255), out.Channel(x, y, 1))
			assert.Equal(t, uint8(255), out.Channel(x, y, 2))
		}
	}
}

func TestKeyOutRamp(t *testing.T) {
	// d = 2*25 - 0 - 0 = 50, halfway through 25-75.
	img := uniform(1, 1, color.NRGBA{B: 25, A: 255})
	out, err := KeyOut(img, NewBand(25, 75))
	require.NoError(t, err)
	assert.Equal(t, []uint8{128, 128, 140, 127}, out.Pix)
}

func TestKeyOutGreyBelowBandIsUntouched(t *testing.T) {
	img := uniform(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	out, err := KeyOut(img, NewBand(25, 75))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 100, G: 100, B: 100, A: 255}, out.At(1, 1))
}

func TestKeyOutOverwritesAlpha(t *testing.T) {
	img := uniform(2, 2, color.NRGBA{R: 200, G: 10, B: 10, A: 0})
	out, err := KeyOut(img, NewBand(25, 75))
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.Channel(0, 0, 3))
}

func TestKeyOutLeavesInputAlone(t *testing.T) {
	src := FromImage(uniform(3, 3, color.NRGBA{B: 255, A: 255}), 4)
	before := src.Clone()
	_, err := KeyOut(src, NewBand(25, 75))
	require.NoError(t, err)
	assert.Equal(t, before.Pix, src.Pix)
}

func TestKeyOutThreeChannelInput(t *testing.T) {
	src := FromImage(uniform(2, 1, color.NRGBA{B: 255, A: 255}), 3)
	out, err := KeyOut(src, NewBand(25, 75))
	require.NoError(t, err)
	assert.Equal(t, 4, out.Channels)
	assert.Equal(t, uint8(0), out.Channel(1, 0, 3))
}

func TestKeyOutEmptyImage(t *testing.T) {
	_, err := KeyOut(image.NewNRGBA(image.Rect(0, 0, 0, 10)), NewBand(25, 75))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = KeyOut(nil, NewBand(25, 75))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestBandUpdate(t *testing.T) {
	tests := []struct {
		lo, hi   int
		min, max int
	}{
		{25, 75, 25, 75},
		{80, 75, 74, 75},
		{75, 75, 74, 75},
		{600, 700, 509, 510},
		{-5, 0, 0, 1},
		{0, 510, 0, 510},
	}
	for _, tt := range tests {
		b := Band{Min: 1, Max: 2}.Update(tt.lo, tt.hi)
		assert.Equal(t, Band{Min: tt.min, Max: tt.max}, b, "update(%d, %d)", tt.lo, tt.hi)
		assert.Less(t, b.Min, b.Max)
	}
}

func TestBandAlpha(t *testing.T) {
	b := NewBand(25, 75)
	assert.Equal(t, uint8(255), b.Alpha(0))
	assert.Equal(t, uint8(255), b.Alpha(24))
	assert.Equal(t, uint8(255), b.Alpha(25))
	assert.Equal(t, uint8(127), b.Alpha(50))
	assert.Equal(t, uint8(0), b.Alpha(75))
	assert.Equal(t, uint8(0), b.Alpha(76))
	assert.Equal(t, uint8(0), b.Alpha(510))
}
