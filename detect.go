package coinpics

import (
	"image"

	"github.com/pkg/errors"
)

// DetectBounds finds the bounding rectangle of the largest closed outline in
// img, which for a coin photographed on a plain backdrop is the coin itself.
//
// The hue plane is eroded to suppress texture, edges are found with a
// two-threshold operator and dilated to close gaps, then every border of the
// edge map is approximated by a polygon. The polygon whose bounding
// rectangle has the largest area wins; on equal areas the first border in
// raster order is kept.
func DetectBounds(img image.Image, opt DetectOptions) (image.Rectangle, error) {
	if img == nil || img.Bounds().Empty() {
		return image.Rectangle{}, errors.Wrap(ErrInvalidImage, "detect bounds")
	}
	hue := huePlane(img)
	hue = erode(hue, opt.KernelSize, opt.ErodeIterations)
	edges := canny(hue, opt.LowThreshold, opt.HighThreshold)
	edges = dilate(edges, opt.KernelSize, opt.DilateIterations)

	var best image.Rectangle
	bestArea := 0
	for _, c := range findContours(edges) {
		poly := approxPoly(c, opt.Epsilon*arcLength(c))
		r := boundingRect(poly)
		if a := r.Dx() * r.Dy(); a > bestArea {
			best, bestArea = r, a
		}
	}
	if bestArea == 0 {
		return image.Rectangle{}, ErrEmptyBounds
	}
	return best.Add(img.Bounds().Min), nil
}
