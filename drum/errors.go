package drum

import "errors"

var (
	// ErrConfiguration marks requests rejected before any voice state changed:
	// wrong band count, frequencies outside (0, Nyquist), delays beyond capacity.
	ErrConfiguration = errors.New("drum: configuration error")

	// ErrNumericDomain marks a decay target the loop filter cannot realize.
	ErrNumericDomain = errors.New("drum: numeric domain error")

	// ErrQueueFull is returned when the render side has not drained pending commands.
	ErrQueueFull = errors.New("drum: command queue full")
)
