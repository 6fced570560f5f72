package drum

import (
	"fmt"
	"sort"
)

// ScheduledBend is a pitch bend issued at a given frame of an offline render.
type ScheduledBend struct {
	AtFrame  int
	Target   float64
	Duration float64
}

// Capture renders frames samples of req offline through the same Engine path
// used in real time. Output depends only on cfg, req and bends.
func Capture(cfg Config, req NoteRequest, frames int, bends ...ScheduledBend) ([]float32, error) {
	if frames < 0 {
		return nil, fmt.Errorf("%w: frames must be >= 0, got %d", ErrConfiguration, frames)
	}
	e, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	if err := e.PlayNote(req); err != nil {
		return nil, err
	}

	pending := append([]ScheduledBend(nil), bends...)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].AtFrame < pending[j].AtFrame })

	out := make([]float32, frames)
	pos := 0
	for pos < frames {
		for len(pending) > 0 && pending[0].AtFrame <= pos {
			b := pending[0]
			pending = pending[1:]
			if err := e.PitchBend(b.Target, b.Duration); err != nil {
				return nil, fmt.Errorf("bend at frame %d: %w", b.AtFrame, err)
			}
		}
		end := pos + cfg.BlockSize
		if end > frames {
			end = frames
		}
		if len(pending) > 0 && pending[0].AtFrame < end {
			end = pending[0].AtFrame
		}
		e.Render(out[pos:end])
		pos = end
	}
	return out, nil
}
