// internal/engine/verdict.go
package engine

import (
	"fmt"
	"math"
)

// Verdict statuses.
const (
	StatusAligned     = "ABSOLUTE NATURALNESS"
	StatusDecoherence = "DECOHERENCE"
)

// Verdict is the O333 seal confirming (or denying) that a run reached the
// zero point.
type Verdict struct {
	Status        string
	Code          string
	IntegrityHash string
	ZeroPoint     bool
}

// Judge produces the O333 verdict for a collapse nucleus.
// A zero nucleus seals the run with the fixed integrity hash
// ((7*3 mod 333) + (7/3 mod 333)) / 2; anything else is decoherence.
func Judge(nucleus int64) Verdict {
	if nucleus != 0 {
		return Verdict{
			Status:        StatusDecoherence,
			Code:          "O333",
			IntegrityHash: "0.000000000000",
			ZeroPoint:     false,
		}
	}

	v1 := math.Mod(o7Target*3, o333Verdict)
	v2 := math.Mod(o7Target/3, o333Verdict)

	return Verdict{
		Status:        StatusAligned,
		Code:          "O333",
		IntegrityHash: fmt.Sprintf("%.12f", (v1+v2)/2),
		ZeroPoint:     true,
	}
}
