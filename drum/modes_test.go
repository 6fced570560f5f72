package drum

import (
	"math"
	"testing"
)

func TestMembraneBandsRatios(t *testing.T) {
	bands := MembraneBands(100, 6, 0.1)
	if len(bands) != 6 {
		t.Fatalf("got %d bands want 6", len(bands))
	}
	if math.Abs(bands[0].Frequency-100) > 1e-9 {
		t.Fatalf("first mode %v want 100", bands[0].Frequency)
	}
	// (1,2) over (1,1) on a square membrane is sqrt(5/2).
	if r := bands[1].Frequency / 100; math.Abs(r-math.Sqrt(2.5)) > 0.01*math.Sqrt(2.5) {
		t.Fatalf("second mode ratio %v want ~%v", r, math.Sqrt(2.5))
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Frequency < bands[i-1].Frequency {
			t.Fatalf("modes not ascending at %d", i)
		}
		if bands[i].Amplitude > bands[i-1].Amplitude {
			t.Fatalf("amplitudes not descending at %d", i)
		}
	}
	for i, b := range bands {
		if math.Abs(b.Bandwidth-0.1*b.Frequency) > 1e-9 {
			t.Fatalf("band %d bandwidth %v", i, b.Bandwidth)
		}
	}
}

func TestMembraneBandsPlayable(t *testing.T) {
	bands := MembraneBands(80, 4, 0)
	cfg := NewConfig(len(bands))
	inst, ctrl := newTestPair(t, cfg)
	err := ctrl.PlayNote(inst, NoteRequest{
		Fundamental: 80,
		Bands:       bands,
		Duration:    0.5,
		DecayDB:     40,
		Amplitude:   0.3,
		Gain:        0.5,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("PlayNote: %v", err)
	}
	out := inst.Process(4096)
	assertFinite(t, out)
	if peakAbs(out) == 0 {
		t.Fatal("expected sound")
	}
	if peakAbs(out) > 1 {
		t.Fatalf("output %v above clip ceiling", peakAbs(out))
	}
}

func TestMembraneBandsInvalid(t *testing.T) {
	if MembraneBands(0, 3, 0) != nil || MembraneBands(100, 0, 0) != nil {
		t.Fatal("expected nil for invalid input")
	}
}

func TestMidiNoteToFreq(t *testing.T) {
	tests := []struct {
		note int
		want float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{60, 261.63},
	}
	for _, tt := range tests {
		if got := MidiNoteToFreq(tt.note); math.Abs(got-tt.want)/tt.want > 0.01 {
			t.Fatalf("note %d: got %v want %v", tt.note, got, tt.want)
		}
	}
}
