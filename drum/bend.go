package drum

import (
	"math"

	"github.com/cwbudde/algo-drum/dsp"
)

const (
	bendStepSamples = 16 // samples between pointer moves
	bendSettle      = 5  // samples a moved pointer runs before it is faded in
	bendFade        = 11 // samples of crossfade, (bendStepSamples - bendSettle)
)

// pointerMove asks the voice to retune one read tap to a new frequency.
type pointerMove struct {
	pointer dsp.Pointer
	freq    float64
}

// bendState is the complete scheduler state. Start replaces it with a single
// assignment, so the render side never sees a half-written bend.
type bendState struct {
	active     bool
	freq       [2]float64
	step       float64
	elapsed    int
	total      int
	numSteps   int
	stepsTaken int
	c16        int
	current    dsp.Pointer
	fading     bool
	blend      float64
}

// PitchBendScheduler glides a delay loop between two tunings. Only the tap that
// is not being heard is ever moved; after bendSettle samples it is crossfaded
// in over bendFade samples and becomes the heard tap.
type PitchBendScheduler struct {
	sampleRate float64
	state      bendState
}

func newPitchBendScheduler(sampleRate float64) PitchBendScheduler {
	return PitchBendScheduler{sampleRate: sampleRate}
}

// reset tunes both taps to freq and makes tap A current.
func (s *PitchBendScheduler) reset(freq float64) {
	s.state = bendState{freq: [2]float64{freq, freq}, current: dsp.PointerA}
}

// bendSteps returns the sample count, step count and per-move frequency step
// of a glide from f1 to f2.
func bendSteps(sampleRate, f1, f2, duration float64) (total, numSteps int, step float64) {
	total = int(math.Floor(sampleRate * duration))
	numSteps = total / bendStepSamples
	if numSteps < 1 {
		numSteps = 1
		total = bendStepSamples
	}
	// Taps alternate, so each move covers two heard steps.
	step = 2 * (f2 - f1) / float64(numSteps)
	return total, numSteps, step
}

// Start begins a glide from f1 to f2 over duration seconds, superseding any bend
// in progress. The heard tap stays current; the returned move pre-offsets the
// other tap half a step behind f1 so its first move lands half a step ahead.
func (s *PitchBendScheduler) Start(f1, f2, duration float64) pointerMove {
	total, numSteps, step := bendSteps(s.sampleRate, f1, f2, duration)
	current := s.state.current
	other := otherPointer(current)

	next := bendState{
		active:   true,
		step:     step,
		total:    total,
		numSteps: numSteps,
		current:  current,
	}
	next.freq[current] = f1
	next.freq[other] = f1 - 0.5*step
	s.state = next
	return pointerMove{pointer: other, freq: next.freq[other]}
}

// Stop ends a bend at the current tap's tuning.
func (s *PitchBendScheduler) Stop() {
	st := &s.state
	st.active = false
	st.fading = false
	st.blend = 0
	st.c16 = 0
	st.elapsed = 0
}

func (s *PitchBendScheduler) Active() bool { return s.state.active }

// Current returns the tap being heard.
func (s *PitchBendScheduler) Current() dsp.Pointer { return s.state.current }

// Frequency returns the tuning of one tap.
func (s *PitchBendScheduler) Frequency(p dsp.Pointer) float64 { return s.state.freq[p] }

func (s *PitchBendScheduler) Blend() float64 { return s.state.blend }

// Step returns the per-move frequency step of the active bend.
func (s *PitchBendScheduler) Step() float64 { return s.state.step }

// advance runs the start-of-sample part of the state machine and reports a tap
// move when one is due.
func (s *PitchBendScheduler) advance() (pointerMove, bool) {
	st := &s.state
	if !st.active {
		return pointerMove{}, false
	}
	var move pointerMove
	moved := false
	if st.c16 == 0 && st.stepsTaken < st.numSteps {
		other := otherPointer(st.current)
		st.freq[other] += st.step
		st.stepsTaken++
		st.fading = true
		st.blend = 0
		move = pointerMove{pointer: other, freq: st.freq[other]}
		moved = true
	}
	if st.fading && st.c16 >= bendSettle {
		st.blend = float64(st.c16-bendSettle) / bendFade
	}
	return move, moved
}

// mix crossfades the two filtered tap outputs and runs the end-of-sample part
// of the state machine.
func (s *PitchBendScheduler) mix(a, b float64) float64 {
	st := &s.state
	first, second := a, b
	if st.current == dsp.PointerB {
		first, second = b, a
	}
	rng := math.Abs(first - second)
	var out float64
	if first < second {
		out = first + st.blend*rng
	} else {
		out = first - st.blend*rng
	}

	if !st.active {
		return out
	}
	if st.fading && st.c16 == bendStepSamples-1 {
		st.current = otherPointer(st.current)
		st.fading = false
		st.blend = 0
	}
	st.c16 = (st.c16 + 1) % bendStepSamples
	st.elapsed++
	if st.elapsed >= st.total {
		s.Stop()
	}
	return out
}

func otherPointer(p dsp.Pointer) dsp.Pointer {
	if p == dsp.PointerA {
		return dsp.PointerB
	}
	return dsp.PointerA
}
