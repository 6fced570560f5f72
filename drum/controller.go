package drum

import (
	"fmt"
	"math"
)

// NotePlan is a validated, fully computed note ready to be applied to an
// Instrument. Building it touches no voice state.
type NotePlan struct {
	fundamental float64
	gain        float64
	bands       []bandPlan
}

// Fundamental returns the note's reference frequency.
func (p *NotePlan) Fundamental() float64 { return p.fundamental }

// Decay returns the solved loop coefficients of band i.
func (p *NotePlan) Decay(i int) DecayCoefficients { return p.bands[i].decay }

// Excitation returns the burst seeded into band i.
func (p *NotePlan) Excitation(i int) []float64 { return p.bands[i].excitation }

// BendPlan is a validated glide of every band.
type BendPlan struct {
	ratio    float64
	duration float64
	targets  []float64
}

// Targets returns the per-band target frequencies.
func (p *BendPlan) Targets() []float64 { return p.targets }

// NoteController turns note and bend requests into plans. It tracks the tuning
// the instrument will have once its plans are applied, so bends can be
// validated on the control side.
type NoteController struct {
	cfg         Config
	capacity    int
	fundamental float64
	tuning      []float64
}

// NewNoteController creates a controller for instruments built from cfg.
func NewNoteController(cfg Config) (*NoteController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &NoteController{cfg: cfg, capacity: cfg.Capacity()}, nil
}

// Prepare validates req and computes loop coefficients and excitations for
// every band. Nothing is returned unless every band succeeds.
func (c *NoteController) Prepare(req NoteRequest) (*NotePlan, error) {
	fs := c.cfg.SampleRate
	if len(req.Bands) != c.cfg.Bands {
		return nil, fmt.Errorf("%w: got %d band parameters for %d bands", ErrConfiguration, len(req.Bands), c.cfg.Bands)
	}
	if err := c.checkFrequency("fundamental", req.Fundamental); err != nil {
		return nil, err
	}
	if req.Amplitude < 0 || !isFinite(req.Amplitude) {
		return nil, fmt.Errorf("%w: amplitude must be >= 0, got %v", ErrConfiguration, req.Amplitude)
	}
	if req.Gain < 0 || !isFinite(req.Gain) {
		return nil, fmt.Errorf("%w: gain must be >= 0, got %v", ErrConfiguration, req.Gain)
	}

	plan := &NotePlan{
		fundamental: req.Fundamental,
		gain:        req.Gain,
		bands:       make([]bandPlan, len(req.Bands)),
	}
	for i, b := range req.Bands {
		if err := c.checkFrequency(fmt.Sprintf("band %d", i), b.Frequency); err != nil {
			return nil, err
		}
		if !isFinite(b.Amplitude) {
			return nil, fmt.Errorf("%w: band %d amplitude %v", ErrConfiguration, i, b.Amplitude)
		}
		if b.Gain < 0 || !isFinite(b.Gain) {
			return nil, fmt.Errorf("%w: band %d gain must be >= 0, got %v", ErrConfiguration, i, b.Gain)
		}
		decay, err := SolveDecay(b.Frequency, fs, req.Duration, req.DecayDB)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		exc, err := Excitation(decay.LoopSamples, req.Amplitude*b.Amplitude, req.Seed+int64(i), req.Excitation)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		plan.bands[i] = bandPlan{
			frequency:  b.Frequency,
			decay:      decay,
			q:          b.Q(),
			gain:       b.Gain,
			excitation: exc,
		}
	}
	return plan, nil
}

// PrepareBend plans a glide of the whole note to target (the new fundamental)
// over duration seconds. Every band moves by the same ratio, keeping the
// note's mode ratios.
func (c *NoteController) PrepareBend(target, duration float64) (*BendPlan, error) {
	if c.tuning == nil {
		return nil, fmt.Errorf("%w: no note to bend", ErrConfiguration)
	}
	if err := c.checkFrequency("bend target", target); err != nil {
		return nil, err
	}
	if !(duration >= 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: bend duration must be >= 0, got %v", ErrConfiguration, duration)
	}
	ratio := target / c.fundamental
	plan := &BendPlan{
		ratio:    ratio,
		duration: duration,
		targets:  make([]float64, len(c.tuning)),
	}
	for i, f1 := range c.tuning {
		f2 := f1 * ratio
		if err := c.checkFrequency(fmt.Sprintf("band %d bend target", i), f2); err != nil {
			return nil, err
		}
		_, _, step := bendSteps(c.cfg.SampleRate, f1, f2, duration)
		if err := c.checkFrequency(fmt.Sprintf("band %d bend start", i), f1-0.5*step); err != nil {
			return nil, err
		}
		plan.targets[i] = f2
	}
	return plan, nil
}

// commitNote records the tuning of an applied note plan.
func (c *NoteController) commitNote(p *NotePlan) {
	c.fundamental = p.fundamental
	c.tuning = make([]float64, len(p.bands))
	for i := range p.bands {
		c.tuning[i] = p.bands[i].frequency
	}
}

// commitBend records the tuning an applied bend ends at.
func (c *NoteController) commitBend(p *BendPlan) {
	c.fundamental *= p.ratio
	copy(c.tuning, p.targets)
}

// PlayNote prepares req and applies it to in immediately. in must not be
// rendering concurrently; use Engine for that.
func (c *NoteController) PlayNote(in *Instrument, req NoteRequest) error {
	plan, err := c.Prepare(req)
	if err != nil {
		return err
	}
	in.apply(plan)
	c.commitNote(plan)
	return nil
}

// PitchBend prepares a glide and starts it on in immediately.
func (c *NoteController) PitchBend(in *Instrument, target, duration float64) error {
	plan, err := c.PrepareBend(target, duration)
	if err != nil {
		return err
	}
	in.applyBend(plan)
	c.commitBend(plan)
	return nil
}

// checkFrequency accepts frequencies whose loop fits the delay line and that
// lie below Nyquist.
func (c *NoteController) checkFrequency(what string, f float64) error {
	fs := c.cfg.SampleRate
	if !(f > 0) || f >= fs/2 || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s frequency %v not in (0, %v)", ErrConfiguration, what, f, fs/2)
	}
	if delay := int(fs / f); delay > c.capacity {
		return fmt.Errorf("%w: %s frequency %v needs %d samples of delay, capacity is %d",
			ErrConfiguration, what, f, delay, c.capacity)
	}
	return nil
}
