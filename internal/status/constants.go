// internal/status/constants.go
package status

// Engine Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per engine unit.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the alignment health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last alignment error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the unit has been in error.
const SlotSecondsInError = 2

// SlotAlignments holds a wrapping count of completed alignment runs.
const SlotAlignments = 3

// SlotNucleus holds the low 16 bits of the last collapse nucleus.
// Zero whenever the unit is aligned.
const SlotNucleus = 4

// ---- RESERVED RANGE ----

// Slots 5–10 are reserved for future use.
const SlotReservedStart = 5
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthAligned represents a unit whose last run reached the zero point.
const HealthAligned uint16 = 1

// HealthDecoherent represents a unit with a nonzero nucleus or a failed run.
const HealthDecoherent uint16 = 2

// HealthStale represents a stale data state.
const HealthStale uint16 = 3

// HealthDisabled represents a disabled unit state.
const HealthDisabled uint16 = 4

// ---- ERROR CODES ----

// ErrorNone means the last run completed.
const ErrorNone uint16 = 0

// ErrorInvalidInput means the sampled flux was NaN or infinite.
const ErrorInvalidInput uint16 = 1

// ErrorOverflow means quantization exceeded the fixed-point range.
const ErrorOverflow uint16 = 2

// ErrorTransport means the flux sample could not be read at all.
const ErrorTransport uint16 = 3

// ---- RESULT BLOCK ----

// ResultSlots is the register footprint of one alignment result block.
const ResultSlots = 5

// Result block slot indices.
const (
	ResultSlotZeroPoint = 0 // 1 when the run reached exact zero
	ResultSlotNucleusHi = 1 // high 16 bits of the nucleus (int32 window)
	ResultSlotNucleusLo = 2 // low 16 bits of the nucleus
	ResultSlotErrorCode = 3
	ResultSlotSequence  = 4 // wrapping per-unit sample sequence
)
