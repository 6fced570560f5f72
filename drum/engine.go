package drum

import "fmt"

// Engine couples an Instrument with a NoteController for real-time use.
// PlayNote and PitchBend validate and plan on the caller's goroutine and queue
// the result; Render applies queued plans at the start of each block and then
// renders. One goroutine may call the control methods while another calls
// Render.
type Engine struct {
	cfg   Config
	inst  *Instrument
	ctrl  *NoteController
	queue *commandQueue
}

// NewEngine builds an engine for cfg.
func NewEngine(cfg Config) (*Engine, error) {
	inst, err := NewInstrument(cfg)
	if err != nil {
		return nil, err
	}
	ctrl, err := NewNoteController(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:   cfg,
		inst:  inst,
		ctrl:  ctrl,
		queue: newCommandQueue(cfg.QueueSize),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Instrument returns the rendered instrument. Its state belongs to the
// goroutine calling Render.
func (e *Engine) Instrument() *Instrument { return e.inst }

// PlayNote queues a new note. Invalid requests are rejected here and never
// reach the render side.
func (e *Engine) PlayNote(req NoteRequest) error {
	plan, err := e.ctrl.Prepare(req)
	if err != nil {
		return err
	}
	if !e.queue.push(command{note: plan}) {
		return fmt.Errorf("%w: note dropped", ErrQueueFull)
	}
	e.ctrl.commitNote(plan)
	return nil
}

// PitchBend queues a glide of the current note to target Hz over duration
// seconds. A bend in progress is superseded when the new one is applied.
func (e *Engine) PitchBend(target, duration float64) error {
	plan, err := e.ctrl.PrepareBend(target, duration)
	if err != nil {
		return err
	}
	if !e.queue.push(command{bend: plan}) {
		return fmt.Errorf("%w: bend dropped", ErrQueueFull)
	}
	e.ctrl.commitBend(plan)
	return nil
}

// Pending returns the number of queued commands not yet applied.
func (e *Engine) Pending() int {
	return e.queue.pending()
}

// Render applies pending commands and fills buf.
func (e *Engine) Render(buf []float32) {
	for {
		c, ok := e.queue.pop()
		if !ok {
			break
		}
		if c.note != nil {
			e.inst.apply(c.note)
		}
		if c.bend != nil {
			e.inst.applyBend(c.bend)
		}
	}
	e.inst.Render(buf)
}

// Process renders numFrames samples into a new slice.
func (e *Engine) Process(numFrames int) []float32 {
	out := make([]float32, numFrames)
	e.Render(out)
	return out
}
