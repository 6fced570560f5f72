package dsp

import (
	"errors"
	"testing"
)

func TestDelayLineRoundTrip(t *testing.T) {
	for _, d := range []int{1, 2, 7, 16} {
		line, err := NewDelayLine(16)
		if err != nil {
			t.Fatalf("NewDelayLine: %v", err)
		}
		if err := line.Allocate(d, d); err != nil {
			t.Fatalf("Allocate(%d): %v", d, err)
		}
		line.Step(0.625)
		for i := 1; i < d; i++ {
			line.Step(0)
		}
		a, b := line.Read()
		if a != 0.625 || b != 0.625 {
			t.Fatalf("delay %d: got a=%v b=%v want 0.625", d, a, b)
		}
	}
}

func TestDelayLineAllocateRejectsOutOfRange(t *testing.T) {
	line, _ := NewDelayLine(8)
	for _, tc := range [][2]int{{0, 4}, {4, 0}, {9, 4}, {4, 9}, {-1, 1}} {
		if err := line.Allocate(tc[0], tc[1]); !errors.Is(err, ErrDelayRange) {
			t.Fatalf("Allocate(%d,%d): expected ErrDelayRange, got %v", tc[0], tc[1], err)
		}
	}
	if _, err := NewDelayLine(0); !errors.Is(err, ErrDelayRange) {
		t.Fatalf("expected ErrDelayRange for zero capacity, got %v", err)
	}
}

func TestDelayLineAllocateClearsBuffer(t *testing.T) {
	line, _ := NewDelayLine(5)
	_ = line.Allocate(3, 3)
	for i := 0; i < 11; i++ {
		line.Step(1)
	}
	if err := line.Allocate(2, 4); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	for i := 0; i < 5; i++ {
		a, b := line.Step(0)
		if a != 0 || b != 0 {
			t.Fatalf("sample %d not cleared: a=%v b=%v", i, a, b)
		}
	}
}

func TestDelayLineRetuneKeepsContentsAndWraps(t *testing.T) {
	line, _ := NewDelayLine(8)
	_ = line.Allocate(8, 8)
	// Write a ramp so each read identifies how far back it looks.
	for i := 1; i <= 13; i++ {
		line.Write(float64(i))
	}
	for delay := 1; delay <= 8; delay++ {
		if err := line.Retune(PointerB, delay); err != nil {
			t.Fatalf("Retune(%d): %v", delay, err)
		}
		_, b := line.Read()
		want := float64(13 - delay + 1)
		if b != want {
			t.Fatalf("delay %d: got %v want %v", delay, b, want)
		}
		if line.Delay(PointerB) != delay {
			t.Fatalf("Delay(B) = %d want %d", line.Delay(PointerB), delay)
		}
	}
	if a, _ := line.Read(); a != 6 {
		t.Fatalf("tap A moved during retune of B: got %v", a)
	}
	if err := line.Retune(PointerA, 9); !errors.Is(err, ErrDelayRange) {
		t.Fatalf("expected ErrDelayRange, got %v", err)
	}
}

func TestDelayLineIndependentTaps(t *testing.T) {
	line, _ := NewDelayLine(10)
	_ = line.Allocate(3, 5)
	var gotA, gotB []float64
	for i := 0; i < 8; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		a, b := line.Step(x)
		gotA = append(gotA, a)
		gotB = append(gotB, b)
	}
	for i := range gotA {
		wantA, wantB := 0.0, 0.0
		if i == 3 {
			wantA = 1
		}
		if i == 5 {
			wantB = 1
		}
		if gotA[i] != wantA || gotB[i] != wantB {
			t.Fatalf("step %d: a=%v b=%v want a=%v b=%v", i, gotA[i], gotB[i], wantA, wantB)
		}
	}
}

func TestDelayLineSeedIsReadFirst(t *testing.T) {
	line, _ := NewDelayLine(12)
	_ = line.Allocate(4, 4)
	line.Seed([]float64{1, 2, 3, 4, 5, 6})
	want := []float64{1, 2, 3, 4, 0, 0}
	for i, w := range want {
		a, b := line.Step(0)
		if a != w || b != w {
			t.Fatalf("sample %d: a=%v b=%v want %v", i, a, b, w)
		}
	}
}
