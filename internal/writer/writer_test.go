// internal/writer/writer_test.go
package writer

import (
	"errors"
	"testing"

	"github.com/tamzrod/flux-aligner/internal/status"
)

// ---- fake endpoint client ----

type fakeEndpointClient struct {
	writes []writeCall

	lastRegs     []uint16
	lastRegsAddr uint16

	fail bool
}

type writeCall struct {
	area   byte
	unitID uint8
	addr   uint16
	qty    int
}

func (f *fakeEndpointClient) WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error {
	if f.fail {
		return errors.New("endpoint down")
	}
	f.writes = append(f.writes, writeCall{
		area:   area,
		unitID: unitID,
		addr:   addr,
		qty:    len(regs),
	})
	f.lastRegs = append([]uint16(nil), regs...)
	f.lastRegsAddr = addr
	return nil
}

// ---- tests ----

func TestWriter_DeliversResultBlock(t *testing.T) {
	fake := &fakeEndpointClient{}

	plan := Plan{
		UnitID: "unit-1",
		Targets: []TargetEndpoint{
			{
				TargetID:      1,
				Endpoint:      "ep1",
				UnitID:        10,
				ResultAddress: 40,
			},
		},
	}

	w := New(plan, map[string]endpointClient{"ep1": fake})

	res := status.Result{
		ZeroPoint: true,
		Nucleus:   0,
		ErrorCode: status.ErrorNone,
		Sequence:  3,
	}

	if err := w.Write(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(fake.writes))
	}
	if fake.writes[0].addr != 40 {
		t.Fatalf("expected addr 40, got %d", fake.writes[0].addr)
	}
	if fake.writes[0].unitID != 10 {
		t.Fatalf("expected unit 10, got %d", fake.writes[0].unitID)
	}
	if fake.writes[0].qty != status.ResultSlots {
		t.Fatalf("expected %d regs, got %d", status.ResultSlots, fake.writes[0].qty)
	}
	if fake.lastRegs[status.ResultSlotZeroPoint] != 1 {
		t.Fatalf("zero point flag not delivered")
	}
	if fake.lastRegs[status.ResultSlotSequence] != 3 {
		t.Fatalf("sequence not delivered: %d", fake.lastRegs[status.ResultSlotSequence])
	}
}

func TestWriter_FanOutToAllTargets(t *testing.T) {
	ep1 := &fakeEndpointClient{}
	ep2 := &fakeEndpointClient{}

	plan := Plan{
		UnitID: "unit-1",
		Targets: []TargetEndpoint{
			{TargetID: 1, Endpoint: "ep1", UnitID: 1, ResultAddress: 0},
			{TargetID: 2, Endpoint: "ep2", UnitID: 2, ResultAddress: 100},
		},
	}

	w := New(plan, map[string]endpointClient{"ep1": ep1, "ep2": ep2})

	if err := w.Write(status.Result{ZeroPoint: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ep1.writes) != 1 || len(ep2.writes) != 1 {
		t.Fatalf("fan-out incomplete: ep1=%d ep2=%d", len(ep1.writes), len(ep2.writes))
	}
	if ep2.writes[0].addr != 100 {
		t.Fatalf("ep2 addr=%d, want 100", ep2.writes[0].addr)
	}
}

func TestWriter_DeadEndpointDoesNotStarveOthers(t *testing.T) {
	dead := &fakeEndpointClient{fail: true}
	live := &fakeEndpointClient{}

	plan := Plan{
		UnitID: "unit-1",
		Targets: []TargetEndpoint{
			{TargetID: 1, Endpoint: "dead", UnitID: 1, ResultAddress: 0},
			{TargetID: 2, Endpoint: "live", UnitID: 2, ResultAddress: 0},
		},
	}

	w := New(plan, map[string]endpointClient{"dead": dead, "live": live})

	err := w.Write(status.Result{ZeroPoint: true})
	if err == nil {
		t.Fatalf("expected error from dead endpoint")
	}
	if len(live.writes) != 1 {
		t.Fatalf("live endpoint starved: %d writes", len(live.writes))
	}
}

func TestWriter_MissingClientReported(t *testing.T) {
	plan := Plan{
		UnitID: "unit-1",
		Targets: []TargetEndpoint{
			{TargetID: 1, Endpoint: "ghost", UnitID: 1, ResultAddress: 0},
		},
	}

	w := New(plan, map[string]endpointClient{})

	if err := w.Write(status.Result{}); err == nil {
		t.Fatalf("expected missing client error")
	}
}
