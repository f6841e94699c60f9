package render

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const kdeSteps = 40

// kdeProfile evaluates a Gaussian kernel density over the samples at
// kdeSteps points spanning [min, max], normalized so the peak is 1.
// Returns the evaluation grid and the normalized densities. Degenerate
// samples (all equal) yield a single grid point with density 1.
func kdeProfile(samples []float64) (grid, density []float64) {
	if len(samples) == 0 {
		return nil, nil
	}
	lo, hi := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return []float64{lo}, []float64{1}
	}
	sigma := stat.StdDev(samples, nil)
	if sigma == 0 || math.IsNaN(sigma) {
		sigma = (hi - lo) / 4
	}
	// Silverman's rule of thumb
	h := 1.06 * sigma * math.Pow(float64(len(samples)), -0.2)
	if h <= 0 {
		h = (hi - lo) / 10
	}

	grid = make([]float64, kdeSteps)
	density = make([]float64, kdeSteps)
	step := (hi - lo) / float64(kdeSteps-1)
	maxD := 0.0
	for i := 0; i < kdeSteps; i++ {
		y := lo + float64(i)*step
		grid[i] = y
		d := 0.0
		for _, s := range samples {
			z := (y - s) / h
			d += math.Exp(-0.5 * z * z)
		}
		density[i] = d
		if d > maxD {
			maxD = d
		}
	}
	if maxD > 0 {
		for i := range density {
			density[i] /= maxD
		}
	}
	return grid, density
}

// violinOutline builds a closed mirrored-density polygon around x=center with
// the given maximum half width. Points run up the left side and back down the
// right, ending on the starting point.
func violinOutline(samples []float64, center, halfWidth float64) (xs, ys []float64) {
	grid, density := kdeProfile(samples)
	if len(grid) == 0 {
		return nil, nil
	}
	if len(grid) == 1 {
		// Flat distribution: a short horizontal bar at the single value.
		return []float64{center - halfWidth/2, center + halfWidth/2}, []float64{grid[0], grid[0]}
	}
	n := len(grid)
	xs = make([]float64, 0, 2*n+1)
	ys = make([]float64, 0, 2*n+1)
	for i := 0; i < n; i++ {
		xs = append(xs, center-density[i]*halfWidth)
		ys = append(ys, grid[i])
	}
	for i := n - 1; i >= 0; i-- {
		xs = append(xs, center+density[i]*halfWidth)
		ys = append(ys, grid[i])
	}
	xs = append(xs, xs[0])
	ys = append(ys, ys[0])
	return xs, ys
}
