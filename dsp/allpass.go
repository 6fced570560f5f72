package dsp

import dspcore "github.com/cwbudde/algo-dsp/dsp/core"

// Allpass is a first-order allpass used as a fractional-delay interpolator.
type Allpass struct {
	coeff   float64
	lastIn  float64
	lastOut float64
}

// NewAllpass creates an interpolator tuned for the given fractional delay.
func NewAllpass(frac float64) *Allpass {
	a := &Allpass{}
	a.SetFraction(frac)
	return a
}

// FractionCoefficient maps a fractional delay in [0,1) to the allpass coefficient.
func FractionCoefficient(frac float64) float64 {
	return (1 - frac) / (1 + frac)
}

// SetFraction retunes the interpolator for a new fractional delay. State is kept.
func (a *Allpass) SetFraction(frac float64) {
	a.coeff = FractionCoefficient(frac)
}

func (a *Allpass) SetCoefficient(c float64) {
	a.coeff = c
}

func (a *Allpass) Coefficient() float64 {
	return a.coeff
}

// Process filters one sample.
func (a *Allpass) Process(x float64) float64 {
	y := a.coeff*x + a.lastIn - a.coeff*a.lastOut
	y = dspcore.FlushDenormals(y)
	a.lastIn = x
	a.lastOut = y
	return y
}

func (a *Allpass) Reset() {
	a.lastIn = 0
	a.lastOut = 0
}
