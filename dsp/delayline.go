package dsp

import (
	"errors"
	"fmt"
)

// ErrDelayRange reports a delay that does not fit the delay line.
var ErrDelayRange = errors.New("delay out of range")

// Pointer selects one of the two read taps of a DelayLine.
type Pointer int

const (
	PointerA Pointer = iota
	PointerB
)

func (p Pointer) String() string {
	if p == PointerB {
		return "B"
	}
	return "A"
}

// DelayLine is a fixed-capacity circular buffer with one write position and two
// independently tunable read taps. The backing array is never resized.
type DelayLine struct {
	buffer   []float64
	writePos int
	readPos  [2]int
	delay    [2]int
}

// NewDelayLine creates a delay line holding up to capacity samples of delay.
func NewDelayLine(capacity int) (*DelayLine, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be >= 1, got %d", ErrDelayRange, capacity)
	}
	d := &DelayLine{buffer: make([]float64, capacity)}
	d.delay = [2]int{capacity, capacity}
	return d, nil
}

// Capacity returns the maximum delay in samples.
func (d *DelayLine) Capacity() int {
	return len(d.buffer)
}

// Delay returns the current delay of a read tap.
func (d *DelayLine) Delay(p Pointer) int {
	return d.delay[p]
}

// Allocate clears the buffer and positions both taps behind a write position of zero.
func (d *DelayLine) Allocate(delayA, delayB int) error {
	if err := d.checkDelay(delayA); err != nil {
		return err
	}
	if err := d.checkDelay(delayB); err != nil {
		return err
	}
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
	d.delay = [2]int{delayA, delayB}
	d.readPos[PointerA] = d.offset(delayA)
	d.readPos[PointerB] = d.offset(delayB)
	return nil
}

// Retune moves one read tap to a new delay relative to the current write
// position. Buffer contents are kept.
func (d *DelayLine) Retune(p Pointer, delay int) error {
	if err := d.checkDelay(delay); err != nil {
		return err
	}
	d.delay[p] = delay
	d.readPos[p] = d.offset(delay)
	return nil
}

// Read returns the samples under both read taps without advancing.
func (d *DelayLine) Read() (float64, float64) {
	return d.buffer[d.readPos[PointerA]], d.buffer[d.readPos[PointerB]]
}

// Write stores x at the write position and advances the write position and both taps.
func (d *DelayLine) Write(x float64) {
	n := len(d.buffer)
	d.buffer[d.writePos] = x
	d.writePos = (d.writePos + 1) % n
	d.readPos[PointerA] = (d.readPos[PointerA] + 1) % n
	d.readPos[PointerB] = (d.readPos[PointerB] + 1) % n
}

// Step reads both taps and then writes x. A value written by Step is returned by a
// tap with delay d exactly d calls later.
func (d *DelayLine) Step(x float64) (float64, float64) {
	a, b := d.Read()
	d.Write(x)
	return a, b
}

// Seed places samples at the positions tap A reads next, so samples[0] is the next
// value returned by Read. Samples beyond tap A's delay are ignored.
func (d *DelayLine) Seed(samples []float64) {
	n := len(d.buffer)
	limit := len(samples)
	if limit > d.delay[PointerA] {
		limit = d.delay[PointerA]
	}
	for i := 0; i < limit; i++ {
		d.buffer[(d.readPos[PointerA]+i)%n] = samples[i]
	}
}

// Reset clears the buffer and keeps the configured delays.
func (d *DelayLine) Reset() {
	_ = d.Allocate(d.delay[PointerA], d.delay[PointerB])
}

func (d *DelayLine) checkDelay(delay int) error {
	if delay <= 0 || delay > len(d.buffer) {
		return fmt.Errorf("%w: %d not in (0, %d]", ErrDelayRange, delay, len(d.buffer))
	}
	return nil
}

func (d *DelayLine) offset(delay int) int {
	n := len(d.buffer)
	pos := (d.writePos - delay) % n
	if pos < 0 {
		pos += n
	}
	return pos
}
