package drum

import (
	"fmt"

	"github.com/cwbudde/algo-drum/dsp"
)

// Node is a pull-based audio source that fills buf with the next samples.
type Node interface {
	Render(buf []float32)
}

// Instrument mixes a fixed set of voices into one soft-clipped output.
type Instrument struct {
	cfg    Config
	voices []*Voice
	gain   float64
}

// NewInstrument allocates cfg.Bands silent voices.
func NewInstrument(cfg Config) (*Instrument, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	inst := &Instrument{
		cfg:    cfg,
		voices: make([]*Voice, 0, cfg.Bands),
		gain:   1.0,
	}
	for i := 0; i < cfg.Bands; i++ {
		v, err := NewVoice(cfg.SampleRate, cfg.Capacity())
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		inst.voices = append(inst.voices, v)
	}
	return inst, nil
}

// Voices returns the voices in band order.
func (in *Instrument) Voices() []*Voice {
	return in.voices
}

// Gain returns the overall output gain.
func (in *Instrument) Gain() float64 {
	return in.gain
}

// apply re-arms every voice from a validated note plan.
func (in *Instrument) apply(p *NotePlan) {
	for i, v := range in.voices {
		v.arm(&p.bands[i])
	}
	in.gain = p.gain
}

// applyBend starts a glide on every voice.
func (in *Instrument) applyBend(p *BendPlan) {
	for i, v := range in.voices {
		v.startBend(p.targets[i], p.duration)
	}
}

// Tick renders one mixed sample.
func (in *Instrument) Tick() float64 {
	sum := 0.0
	for _, v := range in.voices {
		sum += v.Tick(0)
	}
	return dsp.SoftClip(sum * in.gain)
}

// Render fills buf with consecutive samples.
func (in *Instrument) Render(buf []float32) {
	for i := range buf {
		buf[i] = float32(in.Tick())
	}
}

// Process renders numFrames samples into a new slice.
func (in *Instrument) Process(numFrames int) []float32 {
	out := make([]float32, numFrames)
	in.Render(out)
	return out
}
