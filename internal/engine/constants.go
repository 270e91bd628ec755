// internal/engine/constants.go
package engine

import "math"

// Fixed-point geometry.
// These values define the numeric contract and MUST NOT be configurable.

// Precision is the number of fractional decimal digits carried by the
// fixed-point representation.
const Precision = 8

// ScaleFactor converts a raw flux value into fixed-point units (10^Precision).
const ScaleFactor = 1e8

// AttenuationStages is the number of successive infinite-flux divisions
// applied during collapse.
const AttenuationStages = 4

// ---- FUNDAMENTAL CONSTANTS ----

var (
	// Phi is the golden ratio.
	Phi = (1 + math.Sqrt(5)) / 2

	// DeltaZero is the stabilization quantum phi^-12. It keeps aligned
	// values off absolute zero until the final collapse.
	DeltaZero = math.Pow(Phi, -12)

	// OPers is the persistence operator, phi*e/sqrt(7).
	OPers = Phi * math.E / math.Sqrt(o7Target)
)

// ---- GEOMETRIC OPERATORS ----

const (
	o7Target    = 7.0  // absolute straight line, alignment target
	o8Circle    = 8.0  // loop error divisor
	o11Triangle = 11.0 // decision error divisor

	op10Square = 100.0 // symmetric path weight (10^2)
	op11Square = 121.0 // asymmetric path weight (11^2)

	o333Verdict = 333.0
)
