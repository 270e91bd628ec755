// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/flux-aligner/internal/status"
)

// endpointClient is the exact contract the writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error
}

// resultAreaHoldingRegisters is the memory area results land in.
const resultAreaHoldingRegisters byte = 3

type resultWriter struct {
	plan    Plan
	clients map[string]endpointClient
}

func New(plan Plan, clients map[string]endpointClient) Writer {
	return &resultWriter{
		plan:    plan,
		clients: clients,
	}
}

// Write delivers one alignment result block to every target.
// Per-target failures are collected, not short-circuited: one dead
// endpoint must not starve the others.
func (w *resultWriter) Write(r status.Result) error {
	var errs []string

	regs := status.EncodeResult(r)

	for _, tgt := range w.plan.Targets {
		cli := w.clients[tgt.Endpoint]
		if cli == nil {
			errs = append(errs, fmt.Sprintf(
				"writer: missing client for endpoint %s",
				tgt.Endpoint,
			))
			continue
		}

		if err := cli.WriteRegisters(
			resultAreaHoldingRegisters,
			tgt.UnitID,
			tgt.ResultAddress,
			regs,
		); err != nil {
			errs = append(errs, fmt.Sprintf(
				"writer: ep=%s unit=%d addr=%d err=%v",
				tgt.Endpoint, tgt.UnitID, tgt.ResultAddress, err,
			))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}
