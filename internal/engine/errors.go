// internal/engine/errors.go
package engine

import "errors"

// Sentinel errors. Callers match with errors.Is; the engine never retries
// since every failure is a permanent, input-dependent condition.
var (
	// ErrInvalidInput means the flux value is NaN or infinite and has no
	// fixed-point representation.
	ErrInvalidInput = errors.New("flux value is not a finite number")

	// ErrOverflow means the quantized flux does not fit the 64-bit
	// fixed-point range. Silent wraparound is forbidden.
	ErrOverflow = errors.New("fixed-point quantization overflow")
)
