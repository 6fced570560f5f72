package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-drum/drum"
	"github.com/cwbudde/algo-drum/internal/wavio"
	"github.com/cwbudde/algo-drum/preset"
)

func main() {
	presetPath := flag.String("preset", "", "Preset JSON file path (built-in tom when empty)")
	note := flag.Int("note", -1, "MIDI note number for the fundamental (-1 keeps the preset's)")
	fundamental := flag.Float64("fundamental", 0, "Fundamental in Hz, overrides -note and the preset")
	duration := flag.Float64("duration", 2.0, "Render length in seconds")
	sampleRate := flag.Int("sample-rate", 44100, "Render sample rate in Hz")
	blockSize := flag.Int("block-size", 128, "Render block size in frames")
	seed := flag.Int64("seed", math.MinInt64, "Noise seed override")
	excitationPath := flag.String("excitation", "", "Excitation WAV path override (optional)")
	bendTo := flag.Float64("bend-to", 0, "Pitch bend target in Hz (0 keeps the preset's)")
	bendDuration := flag.Float64("bend-duration", 0.25, "Pitch bend duration in seconds")
	bendAt := flag.Float64("bend-at", 0.1, "Pitch bend start in seconds")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	p := preset.NewDefault()
	if *presetPath != "" {
		loaded, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		p = loaded
	}
	if *note >= 0 {
		p.Fundamental = drum.MidiNoteToFreq(*note)
	}
	if *fundamental > 0 {
		p.Fundamental = *fundamental
	}
	if *seed != math.MinInt64 {
		p.Seed = *seed
	}
	if *excitationPath != "" {
		p.ExcitationWAVPath = *excitationPath
	}
	if *bendTo > 0 {
		p.PitchBend = &preset.PitchBend{Target: *bendTo, Duration: *bendDuration, At: *bendAt}
	}

	var excitation []float64
	if p.ExcitationWAVPath != "" {
		exc, err := wavio.ReadExcitation(p.ExcitationWAVPath, *sampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading excitation %q: %v\n", p.ExcitationWAVPath, err)
			os.Exit(1)
		}
		excitation = exc
	}

	req := p.NoteRequest(excitation)
	cfg := drum.NewConfig(len(req.Bands),
		dspcore.WithSampleRate(float64(*sampleRate)),
		dspcore.WithBlockSize(*blockSize),
	)
	if lowest := lowestFrequency(p, req.Bands); lowest*0.9 < cfg.MinFrequency {
		cfg.MinFrequency = lowest * 0.9
	}

	var bends []drum.ScheduledBend
	if b, ok := p.ScheduledBend(float64(*sampleRate)); ok {
		bends = append(bends, b)
	}

	frames := int(float64(*sampleRate) * (*duration))
	if frames < 1 {
		frames = 1
	}

	fmt.Printf("Rendering %.2f Hz with %d bands for %.2f seconds at %d Hz (seed %d)...\n",
		p.Fundamental, len(req.Bands), *duration, *sampleRate, p.Seed)
	if p.PitchBend != nil {
		fmt.Printf("Pitch bend to %.2f Hz over %.3fs at %.3fs\n", p.PitchBend.Target, p.PitchBend.Duration, p.PitchBend.At)
	}

	samples, err := drum.Capture(cfg, req, frames, bends...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	if err := wavio.WriteMono(*output, samples, *sampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, frames)
}

// lowestFrequency returns the lowest frequency any band reaches, including
// after the pitch bend.
func lowestFrequency(p *preset.Preset, bands []drum.BandParameters) float64 {
	ratio := 1.0
	if p.PitchBend != nil && p.PitchBend.Target < p.Fundamental {
		ratio = p.PitchBend.Target / p.Fundamental
	}
	lowest := p.Fundamental * ratio
	for _, b := range bands {
		if f := b.Frequency * ratio; f < lowest {
			lowest = f
		}
	}
	return lowest
}
