// internal/poller/types.go
package poller

import "time"

// Encoding selects how flux registers decode to a float64.
type Encoding uint8

const (
	EncodingFloat32 Encoding = iota // 2 registers, IEEE-754 big-endian
	EncodingInt16                   // 1 register, two's complement, decimal scaled
	EncodingInt32                   // 2 registers big-endian, two's complement, decimal scaled
)

// FluxRead describes one flux register read.
// Geometry only: no semantics.
type FluxRead struct {
	FC       uint8 // 3 or 4
	Address  uint16
	Encoding Encoding
	Scale    int // decimal digits for int encodings
}

// Sample is a snapshot produced by one poll cycle.
type Sample struct {
	UnitID string
	At     time.Time

	Flux float64  // decoded flux value
	Raw  []uint16 // registers as read from the device

	Err error // non-nil means the sample cycle failed
}
