package flock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config holds the flocking rule parameters for one tick.
// It is treated as immutable while a Step runs; callers may swap in a new
// (validated) Config between ticks, e.g. from UI sliders.
type Config struct {
	// Interaction Radii
	CohesionRadius   float64 `json:"cohesionRadius"`   // how far a particle can see
	SeparationRadius float64 `json:"separationRadius"` // personal space, must be <= CohesionRadius

	// Rule Strengths (any sign; negative inverts a rule)
	CohesionStrength   float64 `json:"cohesionStrength"`
	SeparationStrength float64 `json:"separationStrength"`
	AlignmentStrength  float64 `json:"alignmentStrength"`

	// Physics
	MaxSpeed float64 `json:"maxSpeed"`
}

func DefaultConfig() *Config {
	return &Config{
		CohesionRadius:     70.0,
		SeparationRadius:   20.0,
		CohesionStrength:   0.05,
		SeparationStrength: 0.08,
		AlignmentStrength:  0.05,
		MaxSpeed:           4.0,
	}
}

// Validate rejects malformed parameters at construction time so that
// Step never has to surface per-tick errors.
func (c *Config) Validate() error {
	if c.CohesionRadius <= 0 {
		return fmt.Errorf("cohesionRadius must be positive, got %v", c.CohesionRadius)
	}
	if c.SeparationRadius <= 0 {
		return fmt.Errorf("separationRadius must be positive, got %v", c.SeparationRadius)
	}
	if c.SeparationRadius > c.CohesionRadius {
		return fmt.Errorf("separationRadius (%v) cannot exceed cohesionRadius (%v)",
			c.SeparationRadius, c.CohesionRadius)
	}
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("maxSpeed must be positive, got %v", c.MaxSpeed)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against
// the schema, then against the in-process rules.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Validate against the schema
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The schema keeps types and ranges honest; Validate keeps the
	// cross-field rules honest.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
