package drum

import (
	"math"

	"github.com/cwbudde/algo-drum/dsp"
)

// bandPlan is the fully computed setup of one voice for one note.
type bandPlan struct {
	frequency  float64
	decay      DecayCoefficients
	q          float64
	gain       float64
	excitation []float64
}

// Voice is one self-resonating banded waveguide: the band filter feeds the
// delay line, both taps run through their own allpass and loop filter, and the
// pitch bend scheduler picks or crossfades the taps into the output, which is
// also fed back into the band.
type Voice struct {
	sampleRate float64
	line       *dsp.DelayLine
	allpass    [2]*dsp.Allpass
	loss       [2]*dsp.LoopFilter
	band       *dsp.ResonantBand
	bend       PitchBendScheduler
}

// NewVoice creates a silent voice whose delay line holds capacity samples.
func NewVoice(sampleRate float64, capacity int) (*Voice, error) {
	line, err := dsp.NewDelayLine(capacity)
	if err != nil {
		return nil, err
	}
	return &Voice{
		sampleRate: sampleRate,
		line:       line,
		allpass:    [2]*dsp.Allpass{dsp.NewAllpass(0), dsp.NewAllpass(0)},
		loss:       [2]*dsp.LoopFilter{dsp.NewLoopFilter(), dsp.NewLoopFilter()},
		band:       dsp.NewResonantBand(sampleRate),
		bend:       newPitchBendScheduler(sampleRate),
	}, nil
}

// arm re-tunes the voice for a new note and seeds its excitation. The plan has
// already been validated against the delay capacity.
func (v *Voice) arm(p *bandPlan) {
	d := p.decay.LoopSamples
	_ = v.line.Allocate(d, d)
	for i := range v.allpass {
		v.allpass[i].Reset()
		v.allpass[i].SetFraction(p.decay.Fraction)
		v.loss[i].Reset()
		v.loss[i].SetParameters(p.decay.Shortening, p.decay.Stretching)
	}
	v.band.Configure(p.frequency, p.q, p.gain)
	v.bend.reset(p.frequency)
	v.line.Seed(p.excitation)
}

// Frequency returns the tuning of the tap being heard.
func (v *Voice) Frequency() float64 {
	return v.bend.Frequency(v.bend.Current())
}

// Scheduler exposes the pitch bend state for inspection.
func (v *Voice) Scheduler() *PitchBendScheduler {
	return &v.bend
}

// startBend glides the voice from its current tuning to target.
func (v *Voice) startBend(target, duration float64) {
	move := v.bend.Start(v.Frequency(), target, duration)
	v.retune(move, false)
}

// retune points one tap at a new frequency. The band follows the moving tap
// during a glide.
func (v *Voice) retune(m pointerMove, moveBand bool) {
	if !(m.freq > 0) {
		return
	}
	loop := v.sampleRate / m.freq
	delay := int(loop)
	if err := v.line.Retune(m.pointer, delay); err != nil {
		return
	}
	v.allpass[m.pointer].SetFraction(loop - math.Floor(loop))
	if moveBand {
		v.band.SetCenter(m.freq)
	}
}

// Tick renders one sample. drive is added to the feedback ahead of the band
// filter and is normally zero once the excitation has been seeded.
func (v *Voice) Tick(drive float64) float64 {
	if move, ok := v.bend.advance(); ok {
		v.retune(move, true)
	}
	a, b := v.line.Read()
	ya := v.loss[dsp.PointerA].Process(v.allpass[dsp.PointerA].Process(a))
	yb := v.loss[dsp.PointerB].Process(v.allpass[dsp.PointerB].Process(b))
	out := v.bend.mix(ya, yb)
	v.line.Write(v.band.Process(out + drive))
	return out
}
