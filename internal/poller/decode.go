// internal/poller/decode.go
package poller

import (
	"fmt"
	"math"
)

// registerCount returns how many registers an encoding occupies.
func registerCount(e Encoding) (uint16, error) {
	switch e {
	case EncodingFloat32, EncodingInt32:
		return 2, nil
	case EncodingInt16:
		return 1, nil
	default:
		return 0, fmt.Errorf("sampler: unknown flux encoding %d", e)
	}
}

// Decode converts raw registers into a flux value.
// Register order is big-endian, matching Modbus memory order.
// Pure geometry: no validation of the decoded value itself; NaN and Inf
// pass through for the engine to reject.
func Decode(regs []uint16, e Encoding, scale int) (float64, error) {
	qty, err := registerCount(e)
	if err != nil {
		return 0, err
	}
	if len(regs) != int(qty) {
		return 0, fmt.Errorf("sampler: decode: got %d registers, want %d", len(regs), qty)
	}

	switch e {
	case EncodingFloat32:
		bits := uint32(regs[0])<<16 | uint32(regs[1])
		return float64(math.Float32frombits(bits)), nil

	case EncodingInt16:
		return float64(int16(regs[0])) / pow10(scale), nil

	case EncodingInt32:
		raw := int32(uint32(regs[0])<<16 | uint32(regs[1]))
		return float64(raw) / pow10(scale), nil
	}

	return 0, fmt.Errorf("sampler: unknown flux encoding %d", e)
}

func pow10(n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= 10
	}
	return out
}
