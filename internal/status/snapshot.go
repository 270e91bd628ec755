// internal/status/snapshot.go
package status

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
	Alignments     uint16
	Nucleus        uint16
}

// Result is the per-sample alignment outcome delivered to result memory.
type Result struct {
	ZeroPoint bool
	Nucleus   int64
	ErrorCode uint16
	Sequence  uint16
}
