// internal/poller/sampler.go
package poller

import (
	"errors"
	"fmt"
	"time"
)

// Client abstracts the Modbus read operations the sampler needs.
// The sampler depends on geometry only.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)   // FC 4
}

// Config is the minimal runtime config the sampler needs.
type Config struct {
	UnitID   string
	Interval time.Duration
	Flux     FluxRead
}

// Sampler is a dumb, clock-driven flux reader.
type Sampler struct {
	cfg    Config
	client Client
}

// New creates a sampler with immutable config.
func New(cfg Config, client Client) (*Sampler, error) {
	if cfg.UnitID == "" {
		return nil, errors.New("sampler: unit id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("sampler: interval must be > 0")
	}
	if cfg.Flux.FC != 3 && cfg.Flux.FC != 4 {
		return nil, errors.New("sampler: flux fc must be 3 or 4")
	}
	if _, err := registerCount(cfg.Flux.Encoding); err != nil {
		return nil, err
	}
	return &Sampler{cfg: cfg, client: client}, nil
}

// SampleOnce performs exactly one sample cycle.
// All-or-nothing: any failure aborts the cycle.
func (s *Sampler) SampleOnce() Sample {
	res := Sample{
		UnitID: s.cfg.UnitID,
		At:     time.Now(),
	}

	qty, err := registerCount(s.cfg.Flux.Encoding)
	if err != nil {
		res.Err = err
		return res
	}

	var regs []uint16
	switch s.cfg.Flux.FC {
	case 3:
		regs, err = s.client.ReadHoldingRegisters(s.cfg.Flux.Address, qty)
	case 4:
		regs, err = s.client.ReadInputRegisters(s.cfg.Flux.Address, qty)
	default:
		err = errors.New("sampler: unsupported function code")
	}
	if err != nil {
		res.Err = err
		return res
	}

	if len(regs) != int(qty) {
		res.Err = fmt.Errorf("sampler: short read: got %d registers, want %d", len(regs), qty)
		return res
	}

	flux, err := Decode(regs, s.cfg.Flux.Encoding, s.cfg.Flux.Scale)
	if err != nil {
		res.Err = err
		return res
	}

	// Commit only if read and decode succeeded
	res.Raw = regs
	res.Flux = flux
	return res
}
