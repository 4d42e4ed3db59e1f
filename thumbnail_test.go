package coinpics

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pictures(sizes ...image.Point) []image.Image {
	out := make([]image.Image, len(sizes))
	for i, s := range sizes {
		out[i] = uniform(s.X, s.Y, coin)
	}
	return out
}

func TestComposeThumbnailSinglePair(t *testing.T) {
	imgs := pictures(image.Pt(100, 80), image.Pt(100, 80))
	out, err := ComposeThumbnail(imgs, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 80), out.Bounds())
	sameColor(t, coin, out.At(50, 40))
	sameColor(t, coin, out.At(150, 40))
}

func TestComposeThumbnailScales(t *testing.T) {
	imgs := pictures(image.Pt(100, 80), image.Pt(90, 80), image.Pt(100, 80), image.Pt(90, 80))

	l, err := PlanLayout([]image.Point{{100, 80}, {90, 80}, {100, 80}, {90, 80}}, -1)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(380, 80), l.Canvas)

	out, err := ComposeThumbnail(imgs, 250, -1)
	require.NoError(t, err)
	assert.Equal(t, 250, out.Bounds().Dy())
	assert.Equal(t, 1187, out.Bounds().Dx())
}

func TestComposeThumbnailUneven(t *testing.T) {
	_, err := ComposeThumbnail(pictures(image.Pt(10, 10), image.Pt(10, 10), image.Pt(10, 10)), 250, -1)
	assert.ErrorIs(t, err, ErrUnevenPictureSet)
}

func TestComposeThumbnailCapMakesSetEven(t *testing.T) {
	imgs := pictures(image.Pt(40, 30), image.Pt(50, 30), image.Pt(10, 10))
	out, err := ComposeThumbnail(imgs, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 90, 30), out.Bounds())
}

func TestComposeThumbnailEmpty(t *testing.T) {
	_, err := ComposeThumbnail(nil, 250, -1)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = ComposeThumbnail([]image.Image{nil, nil}, 250, -1)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestComposeThumbnailTransparentOnWhite(t *testing.T) {
	blank := uniform(10, 10, color.NRGBA{})
	out, err := ComposeThumbnail([]image.Image{blank, blank}, 0, -1)
	require.NoError(t, err)
	sameColor(t, color.White, out.At(5, 5))
}

func TestPlanLayoutPartialRow(t *testing.T) {
	sizes := make([]image.Point, 6)
	for i := range sizes {
		sizes[i] = image.Pt(10, 10)
	}
	l, err := PlanLayout(sizes, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Rows)
	assert.Equal(t, 2, l.Cols)
	assert.Equal(t, image.Pt(40, 20), l.Canvas)

	// The last row has one pair; it moves right by half an empty column.
	assert.Equal(t, image.Rect(5, 10, 15, 20), l.Cells[4])
	assert.Equal(t, image.Rect(25, 10, 35, 20), l.Cells[5])
	for _, c := range l.Cells {
		assert.True(t, c.In(image.Rectangle{Max: l.Canvas}), "%v", c)
	}
}

func TestPlanLayoutCentresSmallerPictures(t *testing.T) {
	l, err := PlanLayout([]image.Point{{100, 80}, {60, 40}}, -1)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(160, 80), l.Canvas)
	assert.Equal(t, image.Rect(0, 0, 100, 80), l.Cells[0])
	assert.Equal(t, image.Rect(100, 20, 160, 60), l.Cells[1])
}

func TestPlanLayoutZeroSize(t *testing.T) {
	_, err := PlanLayout([]image.Point{{10, 10}, {0, 10}}, -1)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func ExamplePlanLayout() {
	sizes := []image.Point{{100, 80}, {90, 80}, {100, 80}, {90, 80}, {100, 80}, {90, 80}}
	l, _ := PlanLayout(sizes, -1)
	fmt.Println(l.Rows, l.Cols, l.Canvas)
	fmt.Println(l.Cells[4], l.Cells[5])
	// Output:
	// 2 2 (380,160)
	// (50,80)-(150,160) (245,80)-(335,160)
}

func TestPlanLayoutPairsBySide(t *testing.T) {
	// Sides are taken by parity, so two wide pictures listed first end up
	// one on each side.
	l, err := PlanLayout([]image.Point{{100, 80}, {100, 80}, {90, 80}, {90, 80}}, -1)
	require.NoError(t, err)
	assert.Equal(t, [2]int{100, 100}, l.MaxWidth)
	assert.Equal(t, image.Pt(400, 80), l.Canvas)
	assert.Equal(t, image.Rect(105, 0, 195, 80), l.Cells[2])
}

func TestComposeThumbnailParityCheckedFirst(t *testing.T) {
	imgs := pictures(image.Pt(10, 10), image.Pt(10, 10))
	_, err := ComposeThumbnail([]image.Image{nil, imgs[0], imgs[1]}, 250, -1)
	assert.ErrorIs(t, err, ErrUnevenPictureSet)
}
