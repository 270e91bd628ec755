// internal/status/encode.go
package status

// Encode converts a Snapshot into a full engine status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError
	regs[SlotAlignments] = s.Alignments
	regs[SlotNucleus] = s.Nucleus

	return regs
}

// EncodeResult converts a Result into its register block.
// The nucleus is carried as a 32-bit big-endian window; values outside the
// int32 range saturate, since the block only needs to distinguish zero from
// residue.
func EncodeResult(r Result) []uint16 {
	regs := make([]uint16, ResultSlots)

	if r.ZeroPoint {
		regs[ResultSlotZeroPoint] = 1
	}

	n := r.Nucleus
	if n > 1<<31-1 {
		n = 1<<31 - 1
	}
	if n < -(1 << 31) {
		n = -(1 << 31)
	}
	u := uint32(int32(n))

	regs[ResultSlotNucleusHi] = uint16(u >> 16)
	regs[ResultSlotNucleusLo] = uint16(u)
	regs[ResultSlotErrorCode] = r.ErrorCode
	regs[ResultSlotSequence] = r.Sequence

	return regs
}
