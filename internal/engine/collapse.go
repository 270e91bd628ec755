// internal/engine/collapse.go
package engine

import (
	"fmt"
	"math"
)

// quantLimit is one past the largest magnitude representable in the
// 64-bit fixed-point range (2^63 as a float64).
const quantLimit float64 = 1 << 63

// Quantize converts a raw flux value into its fixed-point integer form at
// Precision decimal digits. Truncation toward zero is the contract: any
// remainder below one quantization unit is discarded, never rounded.
func Quantize(flux float64) (int64, error) {
	if math.IsNaN(flux) || math.IsInf(flux, 0) {
		return 0, fmt.Errorf("engine: quantize: %w", ErrInvalidInput)
	}

	scaled := flux * ScaleFactor
	if scaled >= quantLimit || scaled < -quantLimit {
		return 0, fmt.Errorf("engine: quantize %v: %w", flux, ErrOverflow)
	}

	return int64(math.Trunc(scaled)), nil
}

// Collapse quantizes a flux value and runs the infinite flux loss:
// AttenuationStages successive divisions by +Inf. Division of any finite
// float64 by +Inf is exactly 0.0 under IEEE-754, so the result is exactly
// zero for every finite input that survives quantization.
//
// The sentinel MUST be a true +Inf. A large-but-finite divisor would leave
// a nonzero residue and break the zero guarantee.
func Collapse(flux float64) (int64, error) {
	fixed, err := Quantize(flux)
	if err != nil {
		return 0, err
	}

	inf := math.Inf(1)

	v := float64(fixed)
	for i := 0; i < AttenuationStages; i++ {
		v = v / inf
	}

	return int64(math.Trunc(v)), nil
}
