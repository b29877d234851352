package flock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Default", func(c *Config) {}, false},
		{"NegativeCohesionStrength", func(c *Config) { c.CohesionStrength = -0.5 }, false}, // strengths may be any sign
		{"ZeroCohesionRadius", func(c *Config) { c.CohesionRadius = 0 }, true},
		{"NegativeCohesionRadius", func(c *Config) { c.CohesionRadius = -1 }, true},
		{"ZeroSeparationRadius", func(c *Config) { c.SeparationRadius = 0 }, true},
		{"SeparationExceedsCohesion", func(c *Config) { c.SeparationRadius = c.CohesionRadius + 1 }, true},
		{"ZeroMaxSpeed", func(c *Config) { c.MaxSpeed = 0 }, true},
		{"NegativeMaxSpeed", func(c *Config) { c.MaxSpeed = -4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["cohesionRadius", "separationRadius", "maxSpeed"],
  "properties": {
    "cohesionRadius": {"type": "number", "exclusiveMinimum": 0},
    "separationRadius": {"type": "number", "exclusiveMinimum": 0},
    "cohesionStrength": {"type": "number"},
    "separationStrength": {"type": "number"},
    "alignmentStrength": {"type": "number"},
    "maxSpeed": {"type": "number", "exclusiveMinimum": 0}
  }
}`

func writeTempFiles(t *testing.T, config string) (configFile, schemaFile string) {
	t.Helper()
	dir := t.TempDir()
	configFile = filepath.Join(dir, "config.json")
	schemaFile = filepath.Join(dir, "config.schema.json")
	if err := os.WriteFile(configFile, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(schemaFile, []byte(testSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	return configFile, schemaFile
}

func TestLoadConfig(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		configFile, schemaFile := writeTempFiles(t, `{
			"cohesionRadius": 80,
			"separationRadius": 15,
			"cohesionStrength": 0.02,
			"separationStrength": 0.1,
			"alignmentStrength": 0.03,
			"maxSpeed": 6
		}`)

		cfg, err := LoadConfig(configFile, schemaFile)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.CohesionRadius != 80 || cfg.SeparationRadius != 15 || cfg.MaxSpeed != 6 {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("SchemaRejectsWrongType", func(t *testing.T) {
		configFile, schemaFile := writeTempFiles(t, `{
			"cohesionRadius": "wide",
			"separationRadius": 15,
			"maxSpeed": 6
		}`)

		if _, err := LoadConfig(configFile, schemaFile); err == nil {
			t.Error("expected schema validation error for non-numeric radius")
		}
	})

	t.Run("SchemaRejectsMissingField", func(t *testing.T) {
		configFile, schemaFile := writeTempFiles(t, `{"cohesionRadius": 80}`)

		if _, err := LoadConfig(configFile, schemaFile); err == nil {
			t.Error("expected schema validation error for missing fields")
		}
	})

	t.Run("CrossFieldRuleRejected", func(t *testing.T) {
		// Passes the schema but separation exceeds cohesion.
		configFile, schemaFile := writeTempFiles(t, `{
			"cohesionRadius": 10,
			"separationRadius": 20,
			"maxSpeed": 6
		}`)

		if _, err := LoadConfig(configFile, schemaFile); err == nil {
			t.Error("expected validation error for separationRadius > cohesionRadius")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, schemaFile := writeTempFiles(t, `{}`)
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"), schemaFile); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
