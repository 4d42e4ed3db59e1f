package coinpics

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ring lists the 8 neighbour offsets clockwise (y axis pointing down),
// starting east.
var ring = [8]image.Point{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

func ringIndex(d image.Point) int {
	for i, r := range ring {
		if r == d {
			return i
		}
	}
	return -1
}

// findContours follows every border (outer and hole) of the non-zero
// regions of a binary plane using Suzuki-Abe border following, in raster
// order of their starting pixels. Straight horizontal, vertical and
// diagonal runs are compressed to their end points.
func findContours(p *Raster) [][]image.Point {
	// Work on a copy framed by one row/column of zeros.
	w, h := p.W+2, p.H+2
	f := make([]int32, w*h)
	for y := range p.H {
		for x := range p.W {
			if p.Pix[y*p.W+x] != 0 {
				f[(y+1)*w+x+1] = 1
			}
		}
	}

	var contours [][]image.Point
	nbd := int32(1)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := f[y*w+x]
			var from image.Point
			switch {
			case v == 1 && f[y*w+x-1] == 0:
				from = image.Pt(x-1, y)
			case v >= 1 && f[y*w+x+1] == 0:
				from = image.Pt(x+1, y)
			default:
				continue
			}
			nbd++
			pts := traceBorder(f, w, image.Pt(x, y), from, nbd)
			for i := range pts {
				pts[i] = pts[i].Sub(image.Pt(1, 1))
			}
			contours = append(contours, compressChain(pts))
		}
	}
	return contours
}

func traceBorder(f []int32, w int, start, from image.Point, nbd int32) []image.Point {
	at := func(p image.Point) int32 { return f[p.Y*w+p.X] }
	set := func(p image.Point, v int32) { f[p.Y*w+p.X] = v }

	d0 := ringIndex(from.Sub(start))
	first := -1
	for k := range 8 {
		d := (d0 + k) % 8
		if at(start.Add(ring[d])) != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		set(start, -nbd)
		return []image.Point{start}
	}

	p1 := start.Add(ring[first])
	p2, p3 := p1, start
	var pts []image.Point
	for {
		pts = append(pts, p3)
		d := ringIndex(p2.Sub(p3))
		eastZero := false
		var p4 image.Point
		for k := 1; k <= 8; k++ {
			dd := (d - k + 8) % 8
			q := p3.Add(ring[dd])
			if at(q) != 0 {
				p4 = q
				break
			}
			if dd == 0 {
				eastZero = true
			}
		}
		if eastZero {
			set(p3, -nbd)
		} else if at(p3) == 1 {
			set(p3, nbd)
		}
		if p4 == start && p3 == p1 {
			break
		}
		p2, p3 = p3, p4
	}
	return pts
}

// compressChain drops points in the middle of straight runs of a closed
// chain.
func compressChain(pts []image.Point) []image.Point {
	n := len(pts)
	if n <= 2 {
		return pts
	}
	out := make([]image.Point, 0, n)
	for i := range n {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		if pts[i].Sub(prev) != next.Sub(pts[i]) {
			out = append(out, pts[i])
		}
	}
	if len(out) == 0 {
		return pts[:1]
	}
	return out
}

func toVec(p image.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// arcLength returns the perimeter of a closed polygon.
func arcLength(pts []image.Point) float64 {
	n := len(pts)
	if n < 2 {
		return 0
	}
	sum := 0.0
	for i := range n {
		sum += r2.Norm(r2.Sub(toVec(pts[(i+1)%n]), toVec(pts[i])))
	}
	return sum
}

// approxPoly simplifies a closed polygon with the Douglas-Peucker algorithm:
// no dropped point lies farther than eps from the simplified outline.
func approxPoly(pts []image.Point, eps float64) []image.Point {
	n := len(pts)
	if n <= 2 {
		return pts
	}
	// Split the closed curve at the point farthest from the first one.
	far, farD := 0, -1.0
	for i := 1; i < n; i++ {
		d := r2.Norm(r2.Sub(toVec(pts[i]), toVec(pts[0])))
		if d > farD {
			far, farD = i, d
		}
	}
	if farD <= 0 {
		return pts[:1]
	}
	keep := make([]bool, n)
	keep[0], keep[far] = true, true
	dpMark(pts, 0, far, eps, keep)

	// Second half wraps around to the first point.
	tail := append(append([]image.Point{}, pts[far:]...), pts[0])
	tailKeep := make([]bool, len(tail))
	dpMark(tail, 0, len(tail)-1, eps, tailKeep)
	for i := 1; i < len(tail)-1; i++ {
		if tailKeep[i] {
			keep[far+i] = true
		}
	}

	out := make([]image.Point, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

func dpMark(pts []image.Point, lo, hi int, eps float64, keep []bool) {
	if hi-lo < 2 {
		return
	}
	a, b := toVec(pts[lo]), toVec(pts[hi])
	idx, maxD := -1, eps
	for i := lo + 1; i < hi; i++ {
		d := lineDistance(toVec(pts[i]), a, b)
		if d > maxD {
			idx, maxD = i, d
		}
	}
	if idx < 0 {
		return
	}
	keep[idx] = true
	dpMark(pts, lo, idx, eps, keep)
	dpMark(pts, idx, hi, eps, keep)
}

// lineDistance is the distance from p to the line through a and b.
func lineDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l := r2.Norm(ab)
	if l == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	return math.Abs(r2.Cross(ab, r2.Sub(p, a))) / l
}

// boundingRect returns the smallest rectangle containing every point.
func boundingRect(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}
