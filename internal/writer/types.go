// internal/writer/types.go
package writer

import "github.com/tamzrod/flux-aligner/internal/status"

// TargetEndpoint is one result memory destination.
type TargetEndpoint struct {
	TargetID      uint32
	Endpoint      string
	Protocol      string // modbus | ingest
	UnitID        uint8
	ResultAddress uint16
}

// StatusPlan describes where the engine status block lives.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// Plan is the fully-built write plan for one unit.
type Plan struct {
	UnitID  string
	Targets []TargetEndpoint
	Status  *StatusPlan
}

// Writer delivers alignment results into targets.
type Writer interface {
	Write(r status.Result) error
}
