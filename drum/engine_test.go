package drum

import (
	"errors"
	"sync"
	"testing"
)

func TestCommandQueueOrderAndWrap(t *testing.T) {
	q := newCommandQueue(3)
	if len(q.buf) != 4 {
		t.Fatalf("capacity %d, want 4", len(q.buf))
	}
	plans := make([]*NotePlan, 10)
	for i := range plans {
		plans[i] = &NotePlan{fundamental: float64(i + 1)}
	}
	next := 0
	for round := 0; round < 3; round++ {
		for i := 0; i < 3; i++ {
			if !q.push(command{note: plans[round*3+i]}) {
				t.Fatalf("round %d: push %d failed", round, i)
			}
		}
		for i := 0; i < 3; i++ {
			c, ok := q.pop()
			if !ok {
				t.Fatalf("round %d: pop %d empty", round, i)
			}
			if c.note != plans[next] {
				t.Fatalf("out of order: got %v want %v", c.note.fundamental, plans[next].fundamental)
			}
			next++
		}
	}
	if _, ok := q.pop(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestEngineQueueFull(t *testing.T) {
	cfg := NewConfig(1)
	cfg.QueueSize = 2
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := e.PlayNote(testNote(220)); err != nil {
			t.Fatalf("PlayNote %d: %v", i, err)
		}
	}
	if err := e.PlayNote(testNote(220)); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if e.Pending() != 2 {
		t.Fatalf("pending %d want 2", e.Pending())
	}

	e.Process(cfg.BlockSize)
	if e.Pending() != 0 {
		t.Fatalf("pending %d after render, want 0", e.Pending())
	}
	if err := e.PitchBend(330, 0.1); err != nil {
		t.Fatalf("PitchBend after drain: %v", err)
	}
}

func TestEngineRejectsBeforeQueueing(t *testing.T) {
	e, err := NewEngine(NewConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.PitchBend(200, 0.1); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	bad := testNote(220)
	bad.Bands = nil
	if err := e.PlayNote(bad); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if e.Pending() != 0 {
		t.Fatalf("rejected commands were queued: %d", e.Pending())
	}
}

func TestEngineMatchesDirectInstrument(t *testing.T) {
	cfg := NewConfig(1)
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	inst, ctrl := newTestPair(t, cfg)

	req := testNote(196)
	if err := e.PlayNote(req); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.PlayNote(inst, req); err != nil {
		t.Fatal(err)
	}
	got := e.Process(1024)
	want := inst.Process(1024)
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d: engine %v, instrument %v", i, got[i], want[i])
		}
	}
}

func TestEngineConcurrentControlAndRender(t *testing.T) {
	cfg := NewConfig(1)
	cfg.QueueSize = 4
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf := make([]float32, cfg.BlockSize)
		for {
			select {
			case <-done:
				return
			default:
				e.Render(buf)
				for _, v := range buf {
					if !isFinite(float64(v)) {
						t.Errorf("non-finite sample %v", v)
						return
					}
				}
			}
		}
	}()

	accepted := 0
	for i := 0; i < 200; i++ {
		f := 110 + float64(i%20)*10
		err := e.PlayNote(testNote(f))
		if err == nil {
			accepted++
			continue
		}
		if !errors.Is(err, ErrQueueFull) {
			t.Errorf("PlayNote: %v", err)
			break
		}
	}
	close(done)
	wg.Wait()
	if accepted == 0 {
		t.Fatal("no note was accepted")
	}
}

func TestCaptureDeterministic(t *testing.T) {
	cfg := NewConfig(1)
	req := testNote(220)
	bends := []ScheduledBend{
		{AtFrame: 3000, Target: 330, Duration: 0.05},
		{AtFrame: 1000, Target: 180, Duration: 0.02},
	}
	a, err := Capture(cfg, req, 8000, bends...)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	b, err := Capture(cfg, req, 8000, bends...)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if len(a) != 8000 {
		t.Fatalf("length %d want 8000", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between captures", i)
		}
	}
}

func TestCaptureMatchesRealTimeRendering(t *testing.T) {
	cfg := NewConfig(1)
	req := testNote(247)
	offline, err := Capture(cfg, req, 2048, ScheduledBend{AtFrame: 512, Target: 300, Duration: 0.01})
	if err != nil {
		t.Fatal(err)
	}

	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.PlayNote(req); err != nil {
		t.Fatal(err)
	}
	var live []float32
	for len(live) < 2048 {
		if len(live) == 512 {
			if err := e.PitchBend(300, 0.01); err != nil {
				t.Fatal(err)
			}
		}
		live = append(live, e.Process(cfg.BlockSize)...)
	}
	for i := range offline {
		if offline[i] != live[i] {
			t.Fatalf("sample %d: offline %v, real-time %v", i, offline[i], live[i])
		}
	}
}

func TestCaptureReportsBadBend(t *testing.T) {
	_, err := Capture(NewConfig(1), testNote(220), 1024, ScheduledBend{AtFrame: 100, Target: -5})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
