package drum

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// Config holds the fixed shape of an instrument.
type Config struct {
	SampleRate float64
	Bands      int
	// MinFrequency is the lowest frequency any band can be tuned or bent to.
	// It sizes every delay line.
	MinFrequency float64
	BlockSize    int
	QueueSize    int
}

// DefaultConfig returns a single-band configuration at 44.1 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		Bands:        1,
		MinFrequency: 40,
		BlockSize:    128,
		QueueSize:    16,
	}
}

// NewConfig returns DefaultConfig with the given band count, adjusted by
// algo-dsp processor options (sample rate, block size).
func NewConfig(bands int, opts ...dspcore.ProcessorOption) Config {
	cfg := DefaultConfig()
	cfg.Bands = bands
	pc := dspcore.ProcessorConfig{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&pc)
		}
	}
	cfg.SampleRate = pc.SampleRate
	cfg.BlockSize = pc.BlockSize
	return cfg
}

// Capacity returns the delay line length needed to reach MinFrequency.
func (c Config) Capacity() int {
	return int(c.SampleRate/c.MinFrequency) + 2
}

// Validate checks that the configuration describes a usable instrument.
func (c Config) Validate() error {
	switch {
	case !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0):
		return fmt.Errorf("%w: sample rate must be > 0, got %v", ErrConfiguration, c.SampleRate)
	case c.Bands < 1:
		return fmt.Errorf("%w: need at least one band, got %d", ErrConfiguration, c.Bands)
	case !(c.MinFrequency > 0) || c.MinFrequency >= c.SampleRate/2:
		return fmt.Errorf("%w: min frequency must be in (0, %v), got %v", ErrConfiguration, c.SampleRate/2, c.MinFrequency)
	case c.BlockSize < 1:
		return fmt.Errorf("%w: block size must be >= 1, got %d", ErrConfiguration, c.BlockSize)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue size must be >= 1, got %d", ErrConfiguration, c.QueueSize)
	}
	return nil
}

// BandParameters describes one resonant band of a note.
type BandParameters struct {
	Frequency float64 // center frequency and loop tuning, Hz
	Amplitude float64 // excitation scale for this band
	Bandwidth float64 // Hz; <= 0 disables band limiting
	Gain      float64 // band filter output gain
}

// Q returns Frequency / Bandwidth, or 0 when the band is not band-limited.
func (b BandParameters) Q() float64 {
	if b.Bandwidth <= 0 {
		return 0
	}
	return b.Frequency / b.Bandwidth
}

// NoteRequest is everything needed to trigger one drum hit.
type NoteRequest struct {
	Fundamental float64
	Bands       []BandParameters
	// Duration is the time in seconds for the loop to decay by DecayDB.
	Duration float64
	DecayDB  float64
	// Amplitude scales the excitation of every band.
	Amplitude float64
	// Gain is the overall output gain; 0 is silence.
	Gain float64
	// Seed selects the noise excitation. Equal seeds give equal output.
	Seed int64
	// Excitation replaces the noise burst when non-empty.
	Excitation []float64
}
