// internal/engine/pipeline.go
package engine

import (
	"fmt"
	"math"
)

// Report is the full outcome of one alignment run.
// It carries every intermediate stage value so callers can trace the
// pipeline without the engine doing any IO itself.
type Report struct {
	Input      float64
	Vector     float64 // stage 1: delta-zero stabilized input
	Symmetric  float64 // stage 2: 10^2 path
	Asymmetric float64 // stage 2: 11^2 path
	Triangle   float64 // geometry: decision error component
	Circle     float64 // geometry: loop error component
	Corrected  float64 // stage 3: persistence-corrected, O7-aligned value
	Nucleus    int64   // stage 4: collapse result
	ZeroUnit   bool    // nucleus == 0
	Verdict    Verdict // stage 5
}

// Vectorize applies the delta-zero stabilization to a raw flux value.
func Vectorize(flux float64) float64 {
	return flux * DeltaZero
}

// DualFilter splits a stabilized vector into its symmetric (10^2) and
// asymmetric (11^2) paths. The weights are unity by construction; they are
// kept explicit so the dual form survives in the formula.
func DualFilter(vector float64) (symmetric, asymmetric float64) {
	symmetric = math.Sqrt(math.Abs(vector*Phi)) * (op10Square / 100)
	asymmetric = math.Cbrt(math.Abs(vector)) * (op11Square / 121)
	return symmetric, asymmetric
}

// DetectGeometry measures the two geometric error components of a vector:
// triangle (decision error, sine over O11) and circle (loop error, cosine
// over O8). Both are bounded to [-1, 1].
func DetectGeometry(vector float64) (triangle, circle float64) {
	triangle = math.Sin(vector / o11Triangle)
	circle = math.Cos(vector / o8Circle)
	return triangle, circle
}

// Persist applies the persistence correction and realigns the vector to the
// O7 target. The returned value sits one DeltaZero above an exact multiple
// of seven.
func Persist(vector float64) float64 {
	triangle, circle := DetectGeometry(vector)

	force := OPers*(triangle+circle) + DeltaZero

	corrected := vector - force/ScaleFactor
	return corrected - math.Mod(corrected, o7Target) + DeltaZero
}

// Run executes the complete alignment pipeline on one flux value:
// vectorize, dual filter, persistence correction, collapse, verdict.
// NaN and infinite inputs are rejected before any stage runs.
func Run(flux float64) (Report, error) {
	if math.IsNaN(flux) || math.IsInf(flux, 0) {
		return Report{}, fmt.Errorf("engine: run: %w", ErrInvalidInput)
	}

	rep := Report{Input: flux}

	rep.Vector = Vectorize(flux)
	rep.Symmetric, rep.Asymmetric = DualFilter(rep.Vector)

	// Persistence operates on the mean of both paths.
	mean := (rep.Symmetric + rep.Asymmetric) / 2
	rep.Triangle, rep.Circle = DetectGeometry(mean)
	rep.Corrected = Persist(mean)

	nucleus, err := Collapse(rep.Corrected)
	if err != nil {
		return Report{}, err
	}
	rep.Nucleus = nucleus
	rep.ZeroUnit = nucleus == 0
	rep.Verdict = Judge(nucleus)

	return rep, nil
}
