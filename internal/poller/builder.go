// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/flux-aligner/internal/config"
	pmodbus "github.com/tamzrod/flux-aligner/internal/poller/modbus"
)

// Build constructs a Sampler and wires the Modbus client lifecycle.
// Fail fast at startup: a dead source endpoint aborts the build.
func Build(u cfg.UnitConfig) (*Sampler, func() error, error) {
	client, err := pmodbus.New(pmodbus.Config{
		Endpoint: u.Source.Endpoint,
		UnitID:   u.Source.UnitID,
		Timeout:  time.Duration(u.Source.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	enc, err := encoding(u.Source.Flux.Encoding)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	s, err := New(
		Config{
			UnitID:   u.ID,
			Interval: time.Duration(u.Poll.IntervalMs) * time.Millisecond,
			Flux: FluxRead{
				FC:       u.Source.Flux.FC,
				Address:  u.Source.Flux.Address,
				Encoding: enc,
				Scale:    u.Source.Flux.Scale,
			},
		},
		client,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return s, client.Close, nil
}

func encoding(name string) (Encoding, error) {
	switch name {
	case cfg.EncodingFloat32:
		return EncodingFloat32, nil
	case cfg.EncodingInt16:
		return EncodingInt16, nil
	case cfg.EncodingInt32:
		return EncodingInt32, nil
	default:
		return 0, fmt.Errorf("sampler: unknown flux encoding %q", name)
	}
}
