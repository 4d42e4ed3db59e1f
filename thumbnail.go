package coinpics

import (
	"image"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Layout is the grid of a composite thumbnail. Pictures alternate between
// side A (even indices) and side B (odd indices); each side fills its own
// block of columns and both sides share row heights.
type Layout struct {
	Rows, Cols int
	// Widest picture of side A and side B.
	MaxWidth [2]int
	// Tallest picture of the whole set.
	MaxHeight int
	Canvas    image.Point
	// Destination rectangle of every picture, indexed like the input.
	Cells []image.Rectangle
}

// PlanLayout computes the composite grid for pictures of the given sizes.
// maxImages >= 1 keeps only the first maxImages pictures.
func PlanLayout(sizes []image.Point, maxImages int) (Layout, error) {
	if maxImages >= 1 && len(sizes) > maxImages {
		sizes = sizes[:maxImages]
	}
	n := len(sizes)
	if n%2 != 0 {
		return Layout{}, errors.Wrapf(ErrUnevenPictureSet, "%d pictures", n)
	}
	if n == 0 {
		return Layout{}, errors.Wrap(ErrInvalidImage, "empty picture set")
	}

	var l Layout
	for i, s := range sizes {
		if s.X <= 0 || s.Y <= 0 {
			return Layout{}, errors.Wrapf(ErrInvalidImage, "picture %d is %dx%d", i, s.X, s.Y)
		}
		l.MaxWidth[i%2] = max(l.MaxWidth[i%2], s.X)
		l.MaxHeight = max(l.MaxHeight, s.Y)
	}

	pairs := n / 2
	l.Rows = int(math.Round(math.Sqrt(float64(pairs))))
	l.Cols = int(math.Ceil(float64(pairs) / float64(l.Rows)))
	l.Canvas = image.Pt(l.Cols*(l.MaxWidth[0]+l.MaxWidth[1]), l.Rows*l.MaxHeight)
	l.Cells = make([]image.Rectangle, n)

	for side := range 2 {
		maxW := l.MaxWidth[side]
		offsetX := side * l.Cols * l.MaxWidth[0]
		for row := range l.Rows {
			left := l.Cols
			if row == l.Rows-1 {
				left = pairs - row*l.Cols
			}
			extra := 0
			if left != l.Cols {
				extra = maxW * (l.Cols - left) / (2 * left)
			}
			for col := range left {
				i := 2*(row*l.Cols+col) + side
				s := sizes[i]
				x := offsetX + col*maxW + (maxW-s.X)/2 + extra*(col+1)
				y := row*l.MaxHeight + (l.MaxHeight-s.Y)/2
				l.Cells[i] = image.Rect(x, y, x+s.X, y+s.Y)
			}
		}
	}
	return l, nil
}

// ComposeThumbnail lays out obverse/reverse pairs on a white canvas and
// scales it to targetHeight, keeping the aspect ratio. targetHeight < 1
// returns the canvas at full size.
func ComposeThumbnail(images []image.Image, targetHeight, maxImages int) (*image.RGBA, error) {
	if maxImages >= 1 && len(images) > maxImages {
		images = images[:maxImages]
	}
	if len(images)%2 != 0 {
		return nil, errors.Wrapf(ErrUnevenPictureSet, "%d pictures", len(images))
	}
	sizes := make([]image.Point, len(images))
	for i, img := range images {
		if img == nil {
			return nil, errors.Wrapf(ErrInvalidImage, "picture %d is missing", i)
		}
		sizes[i] = img.Bounds().Size()
	}
	l, err := PlanLayout(sizes, maxImages)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rectangle{Max: l.Canvas})
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for i, img := range images {
		draw.Draw(canvas, l.Cells[i], img, img.Bounds().Min, draw.Over)
	}

	if targetHeight < 1 || targetHeight == l.Canvas.Y {
		return canvas, nil
	}
	w := max(1, targetHeight*l.Canvas.X/l.Canvas.Y)
	dst := image.NewRGBA(image.Rect(0, 0, w, targetHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return dst, nil
}
