package drum

import (
	"math"
	"sort"

	pdefd "github.com/cwbudde/algo-pde/fd"
	pdepoisson "github.com/cwbudde/algo-pde/poisson"
)

// membraneGrid is the finite-difference grid size per axis used to estimate
// square membrane modes.
const membraneGrid = 64

// MembraneBands returns count bands tuned to the lowest modes of a square
// membrane with clamped edges, scaled so the first mode sits at fundamental.
// Higher modes get proportionally less excitation. Each band is
// bandwidthRatio of its own frequency wide; 0 leaves the bands unlimited.
func MembraneBands(fundamental float64, count int, bandwidthRatio float64) []BandParameters {
	if count < 1 || !(fundamental > 0) {
		return nil
	}
	const h = 1.0 / membraneGrid
	axis := pdefd.Eigenvalues(membraneGrid, h, pdepoisson.Dirichlet)
	if len(axis) == 0 {
		return nil
	}
	sort.Float64s(axis)

	// Modes (i, j) and (j, i) are degenerate on a square; keep one.
	limit := count
	if limit > len(axis) {
		limit = len(axis)
	}
	modes := make([]float64, 0, limit*(limit+1)/2)
	for i := 0; i < limit; i++ {
		for j := i; j < limit; j++ {
			modes = append(modes, axis[i]+axis[j])
		}
	}
	sort.Float64s(modes)
	if len(modes) > count {
		modes = modes[:count]
	}

	base := modes[0]
	bands := make([]BandParameters, len(modes))
	for k, lambda := range modes {
		ratio := math.Sqrt(lambda / base)
		f := fundamental * ratio
		bw := 0.0
		if bandwidthRatio > 0 {
			bw = f * bandwidthRatio
		}
		bands[k] = BandParameters{
			Frequency: f,
			Amplitude: 1 / ratio,
			Bandwidth: bw,
			Gain:      1,
		}
	}
	return bands
}
