package dsp

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// ResonantBand is a bandpass stage with unity gain at its center frequency,
// followed by a plain output gain. With no valid center or Q it passes the input
// through scaled by the gain.
type ResonantBand struct {
	sampleRate float64
	center     float64
	q          float64
	gain       float64
	bypass     bool
	section    *biquad.Section
}

// NewResonantBand creates a band in pass-through state with unity gain.
func NewResonantBand(sampleRate float64) *ResonantBand {
	return &ResonantBand{
		sampleRate: sampleRate,
		gain:       1.0,
		bypass:     true,
		section:    biquad.NewSection(biquad.Coefficients{B0: 1}),
	}
}

// Configure sets center frequency, Q and gain and clears the filter state.
func (r *ResonantBand) Configure(center, q, gain float64) {
	r.q = q
	r.gain = gain
	r.section.Reset()
	r.SetCenter(center)
}

// SetCenter moves the center frequency while keeping the filter state, so it can
// be called every few samples while the loop is running.
func (r *ResonantBand) SetCenter(center float64) {
	r.center = center
	nyquist := 0.5 * r.sampleRate
	if r.q <= 0 || math.IsNaN(r.q) || center <= 0 || center >= nyquist || math.IsNaN(center) {
		r.bypass = true
		return
	}
	c := design.Bandpass(center, r.q, r.sampleRate)
	// design.Bandpass has peak gain Q; normalize to 0 dB at the center.
	c.B0 /= r.q
	c.B1 /= r.q
	c.B2 /= r.q
	r.section.Coefficients = c
	r.bypass = false
}

func (r *ResonantBand) Center() float64 { return r.center }

func (r *ResonantBand) Q() float64 { return r.q }

func (r *ResonantBand) Gain() float64 { return r.gain }

// Bypassed reports whether the band currently passes its input unfiltered.
func (r *ResonantBand) Bypassed() bool { return r.bypass }

// Process filters one sample.
func (r *ResonantBand) Process(x float64) float64 {
	if r.bypass {
		return x * r.gain
	}
	return r.section.ProcessSample(x) * r.gain
}

func (r *ResonantBand) Reset() {
	r.section.Reset()
}
