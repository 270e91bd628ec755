// internal/writer/device_status_writer_test.go
package writer

import (
	"testing"

	"github.com/tamzrod/flux-aligner/internal/status"
)

func TestDeviceNameWrittenOnFullAssertOnly(t *testing.T) {
	cli := &fakeEndpointClient{}

	plan := Plan{
		Status: &StatusPlan{
			Endpoint:   "status-endpoint",
			UnitID:     1,
			BaseSlot:   0,
			DeviceName: "LINE-01",
		},
	}

	clients := map[string]endpointClient{
		"status-endpoint": cli,
	}

	sw, enabled := NewEngineStatusWriter(plan, clients)
	if !enabled {
		t.Fatalf("status writer should be enabled")
	}

	// ---- first write: FULL ASSERT ----
	first := status.Snapshot{
		Health: status.HealthAligned,
	}

	if err := sw.WriteStatus(first); err != nil {
		t.Fatalf("initial full assert failed: %v", err)
	}

	// Expect full block
	if len(cli.lastRegs) != status.SlotsPerDevice {
		t.Fatalf(
			"expected full block write (%d regs), got %d",
			status.SlotsPerDevice,
			len(cli.lastRegs),
		)
	}

	// Verify device name encoding EXACTLY
	expectedNameRegs := encodeDeviceNameRegs(plan.Status.DeviceName)

	for i := 0; i < status.SlotDeviceNameSlots; i++ {
		slot := status.SlotDeviceNameStart + i
		if cli.lastRegs[slot] != expectedNameRegs[i] {
			t.Fatalf(
				"device name slot %d mismatch: got=%d want=%d",
				slot,
				cli.lastRegs[slot],
				expectedNameRegs[i],
			)
		}
	}

	// ---- second write: INCREMENTAL ONLY ----
	second := status.Snapshot{
		Health:         status.HealthDecoherent,
		LastErrorCode:  status.ErrorInvalidInput,
		SecondsInError: 1,
	}

	if err := sw.WriteStatus(second); err != nil {
		t.Fatalf("incremental write failed: %v", err)
	}

	// Incremental update must NOT re-write full block
	if len(cli.lastRegs) == status.SlotsPerDevice {
		t.Fatalf("device name should not be rewritten on incremental update")
	}
}

func TestSecondsInErrorResetOnRecovery(t *testing.T) {
	cli := &fakeEndpointClient{}

	plan := Plan{
		Status: &StatusPlan{
			Endpoint:   "status-endpoint",
			UnitID:     1,
			BaseSlot:   0,
			DeviceName: "LINE-01",
		},
	}

	clients := map[string]endpointClient{
		"status-endpoint": cli,
	}

	sw, enabled := NewEngineStatusWriter(plan, clients)
	if !enabled {
		t.Fatalf("status writer should be enabled")
	}

	// simulate ERROR
	errSnap := status.Snapshot{
		Health:         status.HealthDecoherent,
		LastErrorCode:  status.ErrorTransport,
		SecondsInError: 3,
	}

	if err := sw.WriteStatus(errSnap); err != nil {
		t.Fatalf("error snapshot write failed: %v", err)
	}

	// simulate recovery
	okSnap := status.Snapshot{
		Health: status.HealthAligned,
	}

	if err := sw.WriteStatus(okSnap); err != nil {
		t.Fatalf("recovery snapshot write failed: %v", err)
	}

	expectedAddr := plan.Status.BaseSlot*status.SlotsPerDevice + status.SlotSecondsInError

	if cli.lastRegsAddr != expectedAddr {
		t.Fatalf("unexpected write addr: got=%d want=%d", cli.lastRegsAddr, expectedAddr)
	}

	if len(cli.lastRegs) != 1 {
		t.Fatalf("expected 1 register write, got %d", len(cli.lastRegs))
	}

	if cli.lastRegs[0] != 0 {
		t.Fatalf("seconds_in_error not reset: got=%d want=0", cli.lastRegs[0])
	}
}

func TestStatusWriter_NucleusDeltaWrite(t *testing.T) {
	cli := &fakeEndpointClient{}

	plan := Plan{
		Status: &StatusPlan{
			Endpoint: "status-endpoint",
			UnitID:   1,
			BaseSlot: 2,
		},
	}

	sw, _ := NewEngineStatusWriter(plan, map[string]endpointClient{
		"status-endpoint": cli,
	})

	if err := sw.WriteStatus(status.Snapshot{Health: status.HealthAligned}); err != nil {
		t.Fatalf("full assert failed: %v", err)
	}

	decohered := status.Snapshot{
		Health:  status.HealthAligned,
		Nucleus: 99,
	}
	if err := sw.WriteStatus(decohered); err != nil {
		t.Fatalf("delta write failed: %v", err)
	}

	expectedAddr := plan.Status.BaseSlot*status.SlotsPerDevice + status.SlotNucleus
	if cli.lastRegsAddr != expectedAddr {
		t.Fatalf("unexpected write addr: got=%d want=%d", cli.lastRegsAddr, expectedAddr)
	}
	if cli.lastRegs[0] != 99 {
		t.Fatalf("nucleus not delivered: got=%d", cli.lastRegs[0])
	}
}
