package drum

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// DecayCoefficients is the loop tuning computed for one band at note start.
type DecayCoefficients struct {
	LoopSamples int     // integer delay, floor(fs/f)
	Fraction    float64 // fs/f - LoopSamples, handed to the allpass
	LoopGain    float64 // required gain per period, G(f)
	LowpassGain float64 // gain of the 0.5 average at f
	Shortening  float64
	Stretching  float64
	// Stretched is true when the target decay is slower than the plain
	// average allows and the stretching factor had to be solved for.
	Stretched bool
}

// SolveDecay maps a decay of q dB over duration seconds at frequency f into
// loop filter coefficients (Jaffe-Smith decay shortening / stretching).
func SolveDecay(f, sampleRate, duration, q float64) (DecayCoefficients, error) {
	if !(f > 0) || f >= sampleRate/2 || math.IsInf(f, 0) {
		return DecayCoefficients{}, fmt.Errorf("%w: frequency %v not in (0, %v)", ErrConfiguration, f, sampleRate/2)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return DecayCoefficients{}, fmt.Errorf("%w: duration must be > 0, got %v", ErrConfiguration, duration)
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return DecayCoefficients{}, fmt.Errorf("%w: decay %v dB", ErrNumericDomain, q)
	}

	loop := sampleRate / f
	d := DecayCoefficients{
		LoopSamples: int(loop),
		Shortening:  1.0,
		Stretching:  0.5,
	}
	d.Fraction = loop - float64(d.LoopSamples)
	d.LoopGain = dspcore.DBToLinear(-q / (f * duration))
	d.LowpassGain = math.Cos(math.Pi * f / sampleRate)

	if d.LoopGain >= 1 {
		return DecayCoefficients{}, fmt.Errorf("%w: decay %v dB over %vs never attenuates the loop", ErrNumericDomain, q, duration)
	}
	if d.LoopGain <= d.LowpassGain {
		d.Shortening = d.LoopGain / d.LowpassGain
		return d, nil
	}

	s, ok := solveStretching(f, sampleRate, d.LoopGain)
	if !ok {
		return DecayCoefficients{}, fmt.Errorf("%w: no stretching factor in (0, 0.5] for %v dB over %vs at %v Hz",
			ErrNumericDomain, q, duration, f)
	}
	d.Stretching = s
	d.Stretched = true
	return d, nil
}

// solveStretching finds S in (0, 0.5] with |(1-S) + S e^{-jw}| = gF.
func solveStretching(f, sampleRate, gF float64) (float64, bool) {
	cw := math.Cos(2 * math.Pi * f / sampleRate)
	a := 2 - 2*cw
	b := 2*cw - 2
	c := 1 - gF*gF
	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	for _, s := range []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if s > 0 && s <= 0.5 {
			return s, true
		}
	}
	return 0, false
}
