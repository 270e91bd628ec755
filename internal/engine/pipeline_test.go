// internal/engine/pipeline_test.go
package engine

import (
	"errors"
	"math"
	"testing"
)

func TestRun_ReachesZeroUnit(t *testing.T) {
	inputs := []float64{24714.9130, 12345.6789, 0.0, -42.5}

	for _, in := range inputs {
		rep, err := Run(in)
		if err != nil {
			t.Fatalf("Run(%v) err=%v", in, err)
		}
		if rep.Nucleus != 0 {
			t.Fatalf("Run(%v) nucleus=%d, want 0", in, rep.Nucleus)
		}
		if !rep.ZeroUnit {
			t.Fatalf("Run(%v) zero unit not reached", in)
		}
		if rep.Verdict.Status != StatusAligned {
			t.Fatalf("Run(%v) verdict=%q, want %q", in, rep.Verdict.Status, StatusAligned)
		}
	}
}

func TestRun_ReportCarriesStages(t *testing.T) {
	const in = 24714.9130

	rep, err := Run(in)
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}

	if rep.Input != in {
		t.Fatalf("report input=%v, want %v", rep.Input, in)
	}
	if rep.Vector != in*DeltaZero {
		t.Fatalf("vector=%v, want %v", rep.Vector, in*DeltaZero)
	}
	if rep.Symmetric <= 0 || rep.Asymmetric <= 0 {
		t.Fatalf("filter paths must be positive for nonzero input: sym=%v asym=%v",
			rep.Symmetric, rep.Asymmetric)
	}
	if rep.Triangle < -1 || rep.Triangle > 1 || rep.Circle < -1 || rep.Circle > 1 {
		t.Fatalf("geometry out of bounds: triangle=%v circle=%v", rep.Triangle, rep.Circle)
	}
}

func TestRun_RejectsNonFinite(t *testing.T) {
	for _, in := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Run(in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Run(%v) err=%v, want ErrInvalidInput", in, err)
		}
	}
}

func TestPersist_AlignsToSevenTarget(t *testing.T) {
	vectors := []float64{0.0115, 3.7, 100.2, -55.9}

	for _, v := range vectors {
		aligned := Persist(v)

		// The aligned value sits exactly one DeltaZero above a
		// multiple of seven.
		rem := math.Mod(aligned-DeltaZero, o7Target)
		if math.Abs(rem) > 1e-6 {
			t.Fatalf("Persist(%v) = %v, remainder %v off the O7 grid", v, aligned, rem)
		}
	}
}

func TestDualFilter_SymmetricUnderAbs(t *testing.T) {
	symPos, asymPos := DualFilter(0.25)
	symNeg, asymNeg := DualFilter(-0.25)

	if symPos != symNeg || asymPos != asymNeg {
		t.Fatalf("filter paths must be sign-invariant: +(%v,%v) -(%v,%v)",
			symPos, asymPos, symNeg, asymNeg)
	}
}

func TestJudge_ZeroNucleus(t *testing.T) {
	v := Judge(0)

	if !v.ZeroPoint {
		t.Fatalf("Judge(0) zero point not set")
	}
	if v.Status != StatusAligned {
		t.Fatalf("Judge(0) status=%q, want %q", v.Status, StatusAligned)
	}
	// ((21 mod 333) + (7/3 mod 333)) / 2
	if v.IntegrityHash != "11.666666666667" {
		t.Fatalf("Judge(0) hash=%q", v.IntegrityHash)
	}
}

func TestJudge_ResidualError(t *testing.T) {
	v := Judge(7)

	if v.ZeroPoint {
		t.Fatalf("Judge(7) must not reach zero point")
	}
	if v.Status != StatusDecoherence {
		t.Fatalf("Judge(7) status=%q, want %q", v.Status, StatusDecoherence)
	}
	if v.IntegrityHash != "0.000000000000" {
		t.Fatalf("Judge(7) hash=%q", v.IntegrityHash)
	}
}
