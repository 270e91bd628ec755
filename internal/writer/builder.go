// internal/writer/builder.go
package writer

import (
	"errors"
	"fmt"
	"time"

	cfg "github.com/tamzrod/flux-aligner/internal/config"
	"github.com/tamzrod/flux-aligner/internal/writer/ingest"
	wmodbus "github.com/tamzrod/flux-aligner/internal/writer/modbus"
)

// BuildPlan converts one unit config into a write Plan.
// Assumes config has already passed validation and normalization.
func BuildPlan(u cfg.UnitConfig, statusEndpoint string) (Plan, error) {
	if u.ID == "" {
		return Plan{}, errors.New("writer: unit.id required")
	}

	plan := Plan{UnitID: u.ID}

	for _, t := range u.Targets {
		plan.Targets = append(plan.Targets, TargetEndpoint{
			TargetID:      t.ID,
			Endpoint:      t.Endpoint,
			Protocol:      t.Protocol,
			UnitID:        t.UnitID,
			ResultAddress: t.ResultAddress,
		})
	}

	// Status block is opt-in per unit.
	if u.Source.StatusSlot != nil && len(u.Targets) > 0 && u.Targets[0].StatusUnitID != nil {
		plan.Status = &StatusPlan{
			Endpoint:   statusEndpoint,
			UnitID:     *u.Targets[0].StatusUnitID,
			BaseSlot:   *u.Source.StatusSlot,
			DeviceName: u.Source.DeviceName,
		}
	}

	return plan, nil
}

// BuildEndpointClients creates one client per unique endpoint, honoring the
// target protocol. The status memory endpoint always gets a Modbus client.
func BuildEndpointClients(u cfg.UnitConfig, statusEndpoint string) (map[string]endpointClient, func() error, error) {
	timeout := time.Duration(u.Source.TimeoutMs) * time.Millisecond

	protocols := map[string]string{}
	for _, t := range u.Targets {
		if prev, ok := protocols[t.Endpoint]; ok && prev != t.Protocol {
			return nil, nil, fmt.Errorf(
				"writer: endpoint %s used with conflicting protocols %s and %s",
				t.Endpoint, prev, t.Protocol,
			)
		}
		protocols[t.Endpoint] = t.Protocol
	}
	if statusEndpoint != "" && u.Source.StatusSlot != nil {
		if prev, ok := protocols[statusEndpoint]; ok && prev != "modbus" {
			return nil, nil, fmt.Errorf(
				"writer: status endpoint %s already used with protocol %s",
				statusEndpoint, prev,
			)
		}
		protocols[statusEndpoint] = "modbus"
	}

	clients := make(map[string]endpointClient)
	var closers []func() error

	fail := func(err error) (map[string]endpointClient, func() error, error) {
		for _, fn := range closers {
			_ = fn()
		}
		return nil, nil, err
	}

	for endpoint, proto := range protocols {
		switch proto {
		case "", "modbus":
			c, err := wmodbus.NewEndpointClient(wmodbus.Config{
				Endpoint: endpoint,
				Timeout:  timeout,
			})
			if err != nil {
				return fail(err)
			}
			clients[endpoint] = c
			closers = append(closers, c.Close)

		case "ingest":
			c, err := ingest.NewEndpointClient(ingest.Config{
				Endpoint: endpoint,
				Timeout:  timeout,
			})
			if err != nil {
				return fail(err)
			}
			clients[endpoint] = c
			closers = append(closers, c.Close)

		default:
			return fail(fmt.Errorf("writer: unknown protocol %q for endpoint %s", proto, endpoint))
		}
	}

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	return clients, closeAll, nil
}
