package drum

import (
	"math"
	"testing"

	algofft "github.com/cwbudde/algo-fft"
)

func sineExcitation(length int, amplitude float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(length))
	}
	return out
}

func singleBand(f, bandwidth float64) []BandParameters {
	return []BandParameters{{Frequency: f, Amplitude: 1, Bandwidth: bandwidth, Gain: 1}}
}

func peakAbs(x []float32) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}

// autocorrPeriod returns the lag in [minLag, maxLag] with the largest
// autocorrelation of x.
func autocorrPeriod(t *testing.T, x []float32, minLag, maxLag int) int {
	t.Helper()
	rev := make([]float32, len(x))
	for i, v := range x {
		rev[len(x)-1-i] = v
	}
	r := make([]float32, 2*len(x)-1)
	if err := algofft.ConvolveReal(r, x, rev); err != nil {
		t.Fatalf("ConvolveReal error: %v", err)
	}
	zero := len(x) - 1
	best := minLag
	for lag := minLag; lag <= maxLag; lag++ {
		if r[zero+lag] > r[zero+best] {
			best = lag
		}
	}
	return best
}

// risingZeroCrossingFreq estimates frequency from rising zero crossings with
// linear interpolation between samples.
func risingZeroCrossingFreq(x []float32, sampleRate float64) float64 {
	var first, last float64
	count := 0
	for i := 1; i < len(x); i++ {
		if x[i-1] < 0 && x[i] >= 0 {
			pos := float64(i-1) + float64(-x[i-1])/float64(x[i]-x[i-1])
			if count == 0 {
				first = pos
			}
			last = pos
			count++
		}
	}
	if count < 2 {
		return 0
	}
	return float64(count-1) * sampleRate / (last - first)
}

func assertFinite(t *testing.T, x []float32) {
	t.Helper()
	for i, v := range x {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("non-finite sample %d: %v", i, v)
		}
	}
}
