package coinpics

// canny runs a two-threshold edge operator on a 1-channel plane and returns
// a binary edge map (0 or 255). Gradients come from 3×3 Sobel kernels with
// replicated borders; magnitude is |gx|+|gy|. A pixel above high seeds an
// edge, pixels above low extend it through 8-connected neighbours.
func canny(p *Raster, low, high int) *Raster {
	w, h := p.W, p.H
	out := NewRaster(w, h, 1)
	if w == 0 || h == 0 {
		return out
	}
	if low > high {
		low, high = high, low
	}

	at := func(x, y int) int {
		return int(p.Pix[clampInt(y, 0, h-1)*w+clampInt(x, 0, w-1)])
	}
	// |gx|,|gy| <= 4*255, so 16 bits hold the gradients.
	gx := make([]int16, w*h)
	gy := make([]int16, w*h)
	mag := make([]int32, w*h)
	for y := range h {
		for x := range w {
			dx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			dy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			i := y*w + x
			gx[i], gy[i] = int16(dx), int16(dy)
			mag[i] = int32(abs(dx) + abs(dy))
		}
	}
	magAt := func(x, y int) int {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return int(mag[y*w+x])
	}

	const (
		notEdge = iota
		candidate
		edge
	)
	state := make([]uint8, w*h)
	var stack []int

	// tan(22.5°) and tan(67.5°) split the gradient direction into sectors.
	const tan22 = 0.4142135623730951
	const tan67 = 2.414213562373095
	for y := range h {
		for x := range w {
			i := y*w + x
			m := int(mag[i])
			if m <= low {
				continue
			}
			xs, ys := float64(abs(int(gx[i]))), float64(abs(int(gy[i])))
			var isMax bool
			switch {
			case ys < xs*tan22:
				isMax = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case ys > xs*tan67:
				isMax = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default:
				s := 1
				if (gx[i] < 0) != (gy[i] < 0) {
					s = -1
				}
				isMax = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !isMax {
				continue
			}
			if m > high {
				state[i] = edge
				stack = append(stack, i)
			} else {
				state[i] = candidate
			}
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out.Pix[i] = 255
		x, y := i%w, i/w
		for _, d := range ring {
			nx, ny := x+d.X, y+d.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			j := ny*w + nx
			if state[j] == candidate {
				state[j] = edge
				stack = append(stack, j)
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
