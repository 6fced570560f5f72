package dsp

import dspcore "github.com/cwbudde/algo-dsp/dsp/core"

// LoopFilter is the extended Karplus-Strong loss filter: an overall loop gain
// (shortening) applied to a one-zero average weighted by the stretching factor.
type LoopFilter struct {
	shortening float64
	stretching float64
	lastIn     float64
}

// NewLoopFilter returns a filter with unity shortening and the classic 0.5 average.
func NewLoopFilter() *LoopFilter {
	return &LoopFilter{shortening: 1.0, stretching: 0.5}
}

// SetParameters clamps shortening to (0,1] and stretching to [0,0.5].
func (l *LoopFilter) SetParameters(shortening, stretching float64) {
	l.shortening = dspcore.Clamp(shortening, 1e-9, 1.0)
	l.stretching = dspcore.Clamp(stretching, 0.0, 0.5)
}

// Parameters returns the shortening and stretching factors.
func (l *LoopFilter) Parameters() (float64, float64) {
	return l.shortening, l.stretching
}

// Process filters one sample.
func (l *LoopFilter) Process(x float64) float64 {
	y := l.shortening * ((1.0-l.stretching)*x + l.stretching*l.lastIn)
	l.lastIn = x
	return dspcore.FlushDenormals(y)
}

func (l *LoopFilter) Reset() {
	l.lastIn = 0
}
