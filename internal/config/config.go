package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fbx-scene-importer/internal/settings"
)

// Config holds the importer's target convention and ambient settings.
type Config struct {
	// Target convention
	UpVector         string  `json:"up_vector" yaml:"up_vector"`
	FrontVector      string  `json:"front_vector" yaml:"front_vector"`
	CoordinateSystem string  `json:"coordinate_system" yaml:"coordinate_system"`
	UnitScaleFactor  float64 `json:"unit_scale_factor" yaml:"unit_scale_factor"` // cm per unit

	// Apply is "root" (compose into the root transform) or "vertices" (bake).
	Apply string `json:"apply" yaml:"apply"`

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"`
	LogJSON  bool   `json:"log_json" yaml:"log_json"`
}

// Defaults target a Y-up, Z-forward, left-handed, metre-based engine.
const (
	DefaultUpVector         = "y"
	DefaultFrontVector      = "odd"
	DefaultCoordinateSystem = "left"
	DefaultUnitScaleFactor  = 100.0
	DefaultApply            = "root"
	DefaultLogLevel         = "info"
)

// Load reads a JSON or YAML (.yaml/.yml) config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	UpVector         string
	FrontVector      string
	CoordinateSystem string
	UnitScaleFactor  float64
	Apply            string
	LogLevel         string
}

// Resolve applies CLI overrides, then fills any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.UpVector != "" {
		c.UpVector = flags.UpVector
	}
	if flags.FrontVector != "" {
		c.FrontVector = flags.FrontVector
	}
	if flags.CoordinateSystem != "" {
		c.CoordinateSystem = flags.CoordinateSystem
	}
	if flags.UnitScaleFactor > 0 {
		c.UnitScaleFactor = flags.UnitScaleFactor
	}
	if flags.Apply != "" {
		c.Apply = flags.Apply
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.UpVector == "" {
		c.UpVector = DefaultUpVector
	}
	if c.FrontVector == "" {
		c.FrontVector = DefaultFrontVector
	}
	if c.CoordinateSystem == "" {
		c.CoordinateSystem = DefaultCoordinateSystem
	}
	if c.UnitScaleFactor == 0 {
		c.UnitScaleFactor = DefaultUnitScaleFactor
	}
	if c.Apply == "" {
		c.Apply = DefaultApply
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Target parses the convention fields. Call Resolve first.
func (c Config) Target() (Target, error) {
	up, err := settings.ParseUpVector(c.UpVector)
	if err != nil {
		return Target{}, fmt.Errorf("config: up_vector: %w", err)
	}
	front, err := settings.ParseFrontVector(c.FrontVector)
	if err != nil {
		return Target{}, fmt.Errorf("config: front_vector: %w", err)
	}
	hand, err := settings.ParseCoordinateSystem(c.CoordinateSystem)
	if err != nil {
		return Target{}, fmt.Errorf("config: coordinate_system: %w", err)
	}
	apply, err := ParseApplyMode(c.Apply)
	if err != nil {
		return Target{}, err
	}
	return Target{
		UpVector:         up,
		FrontVector:      front,
		CoordinateSystem: hand,
		UnitScaleFactor:  c.UnitScaleFactor,
		Apply:            apply,
	}, nil
}
