package dsp

import "github.com/cwbudde/algo-approx"

const (
	// ClipCeiling bounds the output of SoftClip.
	ClipCeiling = 0.99
	// ClipKnee is where SoftClip leaves the linear region.
	ClipKnee = 0.5
)

// SoftClip passes |x| <= ClipKnee unchanged and bends larger values towards
// ±ClipCeiling with a tanh curve. Value and slope are continuous at the knee.
func SoftClip(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}
	if x <= ClipKnee {
		return sign * x
	}
	span := ClipCeiling - ClipKnee
	return sign * (ClipKnee + span*fastTanh((x-ClipKnee)/span))
}

// fastTanh evaluates tanh(u) for u >= 0, clamped to [0,1].
func fastTanh(u float64) float64 {
	if u > 20 {
		return 1
	}
	e := float64(approx.FastExp(float32(2 * u)))
	t := 1 - 2/(e+1)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
