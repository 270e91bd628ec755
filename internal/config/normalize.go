// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	defaultTimeoutMs  = 1000
	defaultIntervalMs = 500
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	for ui := range cfg.Aligner.Units {
		u := &cfg.Aligner.Units[ui]

		// ------------------------------------------------------------
		// SOURCE DEFAULTS
		// ------------------------------------------------------------

		if u.Source.TimeoutMs == 0 {
			u.Source.TimeoutMs = defaultTimeoutMs
		}
		if u.Poll.IntervalMs == 0 {
			u.Poll.IntervalMs = defaultIntervalMs
		}
		if u.Source.Flux.Encoding == "" {
			u.Source.Flux.Encoding = EncodingFloat32
		}

		// ------------------------------------------------------------
		// TARGET DEFAULTS
		// ------------------------------------------------------------

		for ti := range u.Targets {
			if u.Targets[ti].Protocol == "" {
				u.Targets[ti].Protocol = "modbus"
			}
		}

		// ------------------------------------------------------------
		// DEVICE STATUS BLOCK NORMALIZATION (OPT-IN)
		// ------------------------------------------------------------

		// Skip units that did not opt in
		if u.Source.StatusSlot == nil {
			continue
		}

		// Normalize device_name:
		// - ASCII already validated
		// - Truncate to max 16 characters
		if len(u.Source.DeviceName) > 16 {
			u.Source.DeviceName = u.Source.DeviceName[:16]
		}
	}
}
