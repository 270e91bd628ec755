// internal/config/validate.go
package config

import (
	"fmt"
)

// Encodings the flux decoder understands.
const (
	EncodingFloat32 = "float32"
	EncodingInt16   = "int16"
	EncodingInt32   = "int32"
)

// resultBlockSlots is the register footprint of one alignment result block.
// Must match status.ResultSlots; duplicated so config stays dependency-free.
const resultBlockSlots = 5

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// UNIT IDENTITY
	// ------------------------------------------------------------

	seen := make(map[string]struct{})

	for _, u := range cfg.Aligner.Units {
		if u.ID == "" {
			return fmt.Errorf("unit with empty id")
		}
		if _, dup := seen[u.ID]; dup {
			return fmt.Errorf("duplicate unit id %q", u.ID)
		}
		seen[u.ID] = struct{}{}

		if u.Source.Endpoint == "" {
			return fmt.Errorf("unit %q: source endpoint required", u.ID)
		}
	}

	// ------------------------------------------------------------
	// FLUX READ GEOMETRY
	// ------------------------------------------------------------

	for _, u := range cfg.Aligner.Units {
		f := u.Source.Flux

		if f.FC != 3 && f.FC != 4 {
			return fmt.Errorf(
				"unit %q: flux fc must be 3 or 4, got %d",
				u.ID, f.FC,
			)
		}

		switch f.Encoding {
		case "", EncodingFloat32, EncodingInt16, EncodingInt32:
		default:
			return fmt.Errorf(
				"unit %q: unknown flux encoding %q",
				u.ID, f.Encoding,
			)
		}

		if f.Scale < 0 || f.Scale > 8 {
			return fmt.Errorf(
				"unit %q: flux scale must be 0..8, got %d",
				u.ID, f.Scale,
			)
		}

		if u.Poll.IntervalMs < 0 {
			return fmt.Errorf(
				"unit %q: poll interval must be >= 0",
				u.ID,
			)
		}
	}

	// ------------------------------------------------------------
	// TARGET PROTOCOLS
	// ------------------------------------------------------------

	for _, u := range cfg.Aligner.Units {
		for _, t := range u.Targets {
			if t.Endpoint == "" {
				return fmt.Errorf("unit %q: target with empty endpoint", u.ID)
			}

			switch t.Protocol {
			case "", "modbus", "ingest":
			default:
				return fmt.Errorf(
					"unit %q: unknown target protocol %q",
					u.ID, t.Protocol,
				)
			}
		}
	}

	// ------------------------------------------------------------
	// DEVICE STATUS BLOCK VALIDATION (PER-TARGET, OPT-IN)
	// ------------------------------------------------------------

	// key = endpoint | status_unit_id | status_slot
	statusOwner := make(map[string]string)

	for _, u := range cfg.Aligner.Units {
		// device_name sanity (ASCII only)
		if u.Source.DeviceName != "" {
			for i := 0; i < len(u.Source.DeviceName); i++ {
				if u.Source.DeviceName[i] > 0x7F {
					return fmt.Errorf(
						"unit %q: device_name must contain ASCII characters only",
						u.ID,
					)
				}
			}
		}

		// status is opt-in
		if u.Source.StatusSlot == nil {
			continue
		}

		// status requires a status memory endpoint
		if cfg.Aligner.StatusMemory.Endpoint == "" {
			return fmt.Errorf(
				"unit %q: status_slot is set but aligner.status_memory.endpoint is empty",
				u.ID,
			)
		}

		// status requires at least one target
		if len(u.Targets) == 0 {
			return fmt.Errorf(
				"unit %q: status_slot is set but no targets are defined",
				u.ID,
			)
		}

		slot := *u.Source.StatusSlot

		// The status block always lands in the shared status memory,
		// addressed by the FIRST target's status_unit_id. Collision
		// ownership must be keyed on that write destination, not on
		// the target endpoints.
		first := u.Targets[0]
		if first.StatusUnitID == nil {
			return fmt.Errorf(
				"unit %q: status_slot is set but target %q has no status_unit_id",
				u.ID,
				first.Endpoint,
			)
		}

		key := fmt.Sprintf(
			"%s|%d|%d",
			cfg.Aligner.StatusMemory.Endpoint,
			*first.StatusUnitID,
			slot,
		)

		if prev, exists := statusOwner[key]; exists {
			return fmt.Errorf(
				"status_slot collision: status_memory=%s status_unit_id=%d slot=%d used by units %q and %q",
				cfg.Aligner.StatusMemory.Endpoint,
				*first.StatusUnitID,
				slot,
				prev,
				u.ID,
			)
		}

		statusOwner[key] = u.ID
	}

	// ------------------------------------------------------------
	// RESULT MEMORY GEOMETRY VALIDATION
	// ------------------------------------------------------------

	type span struct {
		start uint16
		end   uint16
		unit  string
	}

	// key = endpoint | target unit id
	spans := make(map[string][]span)

	for _, u := range cfg.Aligner.Units {
		for _, t := range u.Targets {
			start := t.ResultAddress

			// The block must fit below 65536 or the uint16 span
			// math wraps and the overlap check lies.
			if int(start)+resultBlockSlots-1 > 0xFFFF {
				return fmt.Errorf(
					"unit %q: result_address %d leaves no room for a %d-slot block",
					u.ID,
					start,
					resultBlockSlots,
				)
			}

			end := start + resultBlockSlots - 1

			key := fmt.Sprintf("%s|%d", t.Endpoint, t.UnitID)

			for _, s := range spans[key] {
				// overlap check (inclusive)
				if !(end < s.start || start > s.end) {
					return fmt.Errorf(
						"result overlap: endpoint=%s unit_id=%d range=%d-%d overlaps with unit=%s range=%d-%d",
						t.Endpoint,
						t.UnitID,
						start,
						end,
						s.unit,
						s.start,
						s.end,
					)
				}
			}

			spans[key] = append(spans[key], span{
				start: start,
				end:   end,
				unit:  u.ID,
			})
		}
	}

	return nil
}
