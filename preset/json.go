package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-drum/drum"
)

// File is the JSON schema for drum presets.
type File struct {
	Fundamental            *float64       `json:"fundamental"`
	Duration               *float64       `json:"duration"`
	DecayDB                *float64       `json:"decay_db"`
	Amplitude              *float64       `json:"amplitude"`
	Gain                   *float64       `json:"gain"`
	Seed                   *int64         `json:"seed"`
	Bands                  []BandSetting  `json:"bands"`
	MembraneModes          *int           `json:"membrane_modes"`
	MembraneBandwidthRatio *float64       `json:"membrane_bandwidth_ratio"`
	ExcitationWAV          string         `json:"excitation_wav"`
	PitchBend              *PitchBendFile `json:"pitch_bend"`
}

// BandSetting is one explicit band in a preset file.
type BandSetting struct {
	Frequency float64  `json:"frequency"`
	Amplitude *float64 `json:"amplitude"`
	Bandwidth float64  `json:"bandwidth"`
	Gain      *float64 `json:"gain"`
}

// PitchBendFile schedules one glide after the hit.
type PitchBendFile struct {
	Target   float64 `json:"target"`
	Duration float64 `json:"duration"`
	At       float64 `json:"at"`
}

// PitchBend is a glide to Target Hz over Duration seconds, started At seconds
// after the hit.
type PitchBend struct {
	Target   float64
	Duration float64
	At       float64
}

// Preset is a resolved drum voice. Bands are either explicit or derived from
// membrane modes of the fundamental.
type Preset struct {
	Fundamental            float64
	Duration               float64
	DecayDB                float64
	Amplitude              float64
	Gain                   float64
	Seed                   int64
	Bands                  []drum.BandParameters
	MembraneModes          int
	MembraneBandwidthRatio float64
	ExcitationWAVPath      string
	PitchBend              *PitchBend
}

// NewDefault returns a four-mode membrane tom at 110 Hz.
func NewDefault() *Preset {
	return &Preset{
		Fundamental:            110,
		Duration:               1.2,
		DecayDB:                60,
		Amplitude:              0.5,
		Gain:                   0.8,
		Seed:                   1,
		MembraneModes:          4,
		MembraneBandwidthRatio: 0.05,
	}
}

// LoadJSON loads a preset JSON file and applies it on top of the defaults.
func LoadJSON(path string) (*Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := NewDefault()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}

	if p.ExcitationWAVPath != "" && !filepath.IsAbs(p.ExcitationWAVPath) {
		base := filepath.Dir(path)
		p.ExcitationWAVPath = filepath.Clean(filepath.Join(base, p.ExcitationWAVPath))
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing preset.
func ApplyFile(dst *Preset, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination preset")
	}
	if f == nil {
		return nil
	}

	if f.Fundamental != nil {
		if *f.Fundamental <= 0 {
			return fmt.Errorf("fundamental must be > 0")
		}
		dst.Fundamental = *f.Fundamental
	}
	if f.Duration != nil {
		if *f.Duration <= 0 {
			return fmt.Errorf("duration must be > 0")
		}
		dst.Duration = *f.Duration
	}
	if f.DecayDB != nil {
		if *f.DecayDB <= 0 {
			return fmt.Errorf("decay_db must be > 0")
		}
		dst.DecayDB = *f.DecayDB
	}
	if f.Amplitude != nil {
		if *f.Amplitude < 0 {
			return fmt.Errorf("amplitude must be >= 0")
		}
		dst.Amplitude = *f.Amplitude
	}
	if f.Gain != nil {
		if *f.Gain < 0 {
			return fmt.Errorf("gain must be >= 0")
		}
		dst.Gain = *f.Gain
	}
	if f.Seed != nil {
		dst.Seed = *f.Seed
	}
	if f.MembraneModes != nil {
		if *f.MembraneModes < 0 {
			return fmt.Errorf("membrane_modes must be >= 0")
		}
		dst.MembraneModes = *f.MembraneModes
	}
	if f.MembraneBandwidthRatio != nil {
		if *f.MembraneBandwidthRatio < 0 {
			return fmt.Errorf("membrane_bandwidth_ratio must be >= 0")
		}
		dst.MembraneBandwidthRatio = *f.MembraneBandwidthRatio
	}
	if f.ExcitationWAV != "" {
		dst.ExcitationWAVPath = strings.TrimSpace(f.ExcitationWAV)
	}

	if len(f.Bands) > 0 {
		bands := make([]drum.BandParameters, len(f.Bands))
		for i, b := range f.Bands {
			if b.Frequency <= 0 {
				return fmt.Errorf("bands[%d].frequency must be > 0", i)
			}
			if b.Bandwidth < 0 {
				return fmt.Errorf("bands[%d].bandwidth must be >= 0", i)
			}
			bands[i] = drum.BandParameters{Frequency: b.Frequency, Amplitude: 1, Bandwidth: b.Bandwidth, Gain: 1}
			if b.Amplitude != nil {
				bands[i].Amplitude = *b.Amplitude
			}
			if b.Gain != nil {
				if *b.Gain < 0 {
					return fmt.Errorf("bands[%d].gain must be >= 0", i)
				}
				bands[i].Gain = *b.Gain
			}
		}
		dst.Bands = bands
	}

	if pb := f.PitchBend; pb != nil {
		if pb.Target <= 0 {
			return fmt.Errorf("pitch_bend.target must be > 0")
		}
		if pb.Duration < 0 || pb.At < 0 {
			return fmt.Errorf("pitch_bend.duration and pitch_bend.at must be >= 0")
		}
		dst.PitchBend = &PitchBend{Target: pb.Target, Duration: pb.Duration, At: pb.At}
	}
	return nil
}

// BandParameters returns the explicit bands, or membrane mode bands of the
// fundamental, or a single unlimited band at the fundamental.
func (p *Preset) BandParameters() []drum.BandParameters {
	if len(p.Bands) > 0 {
		return append([]drum.BandParameters(nil), p.Bands...)
	}
	if p.MembraneModes > 0 {
		return drum.MembraneBands(p.Fundamental, p.MembraneModes, p.MembraneBandwidthRatio)
	}
	return []drum.BandParameters{{Frequency: p.Fundamental, Amplitude: 1, Gain: 1}}
}

// NoteRequest builds the note to trigger. excitation may be nil for a noise
// burst.
func (p *Preset) NoteRequest(excitation []float64) drum.NoteRequest {
	return drum.NoteRequest{
		Fundamental: p.Fundamental,
		Bands:       p.BandParameters(),
		Duration:    p.Duration,
		DecayDB:     p.DecayDB,
		Amplitude:   p.Amplitude,
		Gain:        p.Gain,
		Seed:        p.Seed,
		Excitation:  excitation,
	}
}

// ScheduledBend converts the preset glide to frames at sampleRate.
func (p *Preset) ScheduledBend(sampleRate float64) (drum.ScheduledBend, bool) {
	if p.PitchBend == nil {
		return drum.ScheduledBend{}, false
	}
	return drum.ScheduledBend{
		AtFrame:  int(p.PitchBend.At * sampleRate),
		Target:   p.PitchBend.Target,
		Duration: p.PitchBend.Duration,
	}, true
}
