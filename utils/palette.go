package utils

import (
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/setanarut/coinpics"
)

// Background is the heaviest dominant colour of a picture, normally the
// studio backdrop around the coin.
type Background struct {
	Color  colorful.Color
	Weight float64
}

// Distance is the key distance 2B-G-R of the backdrop, or -1 when the
// backdrop is not blue-dominant and keying would leave it opaque.
func (b Background) Distance() int {
	r, g, bl := b.Color.Clamped().RGB255()
	if bl < g || bl < r {
		return -1
	}
	return 2*int(bl) - int(g) - int(r)
}

func (b Background) BlueDominant() bool {
	return b.Distance() >= 0
}

// ExtractBackground returns the dominant colour with the largest weight.
func ExtractBackground(img image.Image) Background {
	candidates := dominantcolor.FindWeight(img, 4)
	if len(candidates) == 0 {
		// Last resort: grey never keys out.
		return Background{Color: colorful.Color{R: 0.5, G: 0.5, B: 0.5}, Weight: 1}
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	col, _ := colorful.MakeColor(best.RGBA)
	return Background{Color: col, Weight: best.Weight}
}

// SuggestBand clusters the key distances of the blue-dominant pixels of img
// into a subject and a backdrop population and puts the alpha ramp between
// the two cluster centres. The default band and false are returned when the
// picture has no blue backdrop or the populations cannot be told apart.
func SuggestBand(img image.Image) (coinpics.Band, bool) {
	def := coinpics.NewBand(coinpics.DefaultBandMin, coinpics.DefaultBandMax)
	if img == nil || img.Bounds().Empty() || !ExtractBackground(img).BlueDominant() {
		return def, false
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.B < c.G || c.B < c.R {
				continue
			}
			d := 2*int(c.B) - int(c.G) - int(c.R)
			dataset = append(dataset, clusters.Coordinates{float64(d)})
		}
	}
	if len(dataset) < 2 {
		return def, false
	}

	cc, err := kmeans.New().Partition(dataset, 2)
	if err != nil || len(cc) < 2 {
		return def, false
	}
	var centres, spreads []float64
	for _, c := range cc {
		if len(c.Observations) == 0 {
			continue
		}
		d := make([]float64, len(c.Observations))
		for i, o := range c.Observations {
			d[i] = o.Coordinates()[0]
		}
		mean, sd := stat.MeanStdDev(d, nil)
		if math.IsNaN(sd) {
			sd = 0
		}
		centres = append(centres, mean)
		spreads = append(spreads, sd)
	}
	if len(centres) != 2 {
		return def, false
	}
	order := make([]int, 2)
	floats.Argsort(centres, order)
	lo, hi := centres[0], centres[1]
	gap := hi - lo
	if gap < 8 {
		return def, false
	}
	// Keep the ramp a quarter of the gap, or one standard deviation if the
	// population is wider, away from each centre.
	start := lo + max(gap/4, spreads[order[0]])
	end := hi - max(gap/4, spreads[order[1]])
	if start >= end {
		start, end = lo+gap/4, hi-gap/4
	}
	return coinpics.NewBand(int(start), int(end)), true
}
