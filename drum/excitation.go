package drum

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/signal"
)

// Excitation builds the burst seeded into a delay line of the given length.
// With no samples it is zero-mean white noise from seed, so the loop decays to
// silence; otherwise samples are truncated or zero-padded to length. Either way
// the result is scaled by amplitude.
func Excitation(length int, amplitude float64, seed int64, samples []float64) ([]float64, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: excitation length must be >= 1, got %d", ErrConfiguration, length)
	}
	out := make([]float64, length)
	if len(samples) > 0 {
		n := copy(out, samples)
		for i := 0; i < n; i++ {
			out[i] *= amplitude
		}
		return out, nil
	}

	gen := signal.NewGeneratorWithOptions(nil, signal.WithSeed(seed))
	noise, err := gen.WhiteNoise(1.0, length)
	if err != nil {
		return nil, err
	}
	mean := 0.0
	for _, v := range noise {
		mean += v
	}
	mean /= float64(length)
	for i, v := range noise {
		out[i] = (v - mean) * amplitude
	}
	return out, nil
}
