// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Aligner AlignerConfig `yaml:"aligner"`
}

type AlignerConfig struct {
	StatusMemory StatusMemoryConfig `yaml:"status_memory"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Units        []UnitConfig       `yaml:"units"`
}

// ---- STATUS MEMORY ----

type StatusMemoryConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the endpoint
}

// ---- UNIT ----

type UnitConfig struct {
	ID      string         `yaml:"id"`
	Source  SourceConfig   `yaml:"source"`
	Targets []TargetConfig `yaml:"targets"`
	Poll    PollConfig     `yaml:"poll"`
}

// ---- SOURCE ----

type SourceConfig struct {
	Endpoint  string     `yaml:"endpoint"`
	UnitID    uint8      `yaml:"unit_id"`
	TimeoutMs int        `yaml:"timeout_ms"`
	Flux      FluxConfig `yaml:"flux"`

	// Device status block (optional, opt-in)
	StatusSlot *uint16 `yaml:"status_slot"`
	DeviceName string  `yaml:"device_name"`
}

// ---- FLUX READ GEOMETRY ----

type FluxConfig struct {
	FC       uint8  `yaml:"fc"` // 3 or 4
	Address  uint16 `yaml:"address"`
	Encoding string `yaml:"encoding"` // float32 | int16 | int32
	Scale    int    `yaml:"scale"`    // decimal digits for int encodings
}

// ---- TARGET ----

type TargetConfig struct {
	ID            uint32 `yaml:"id"`
	Endpoint      string `yaml:"endpoint"`
	Protocol      string `yaml:"protocol"` // modbus (default) | ingest
	UnitID        uint8  `yaml:"unit_id"`
	StatusUnitID  *uint8 `yaml:"status_unit_id"` // per-target status memory (optional)
	ResultAddress uint16 `yaml:"result_address"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// Load reads and decodes a YAML config file.
// Validation and normalization are separate, explicit steps.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return &cfg, nil
}
