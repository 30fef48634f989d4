// Package config handles configuration loading and the batch job definitions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxBodyBytes caps request bodies accepted by the HTTP API.
const DefaultMaxBodyBytes = 10 << 20

// Mode selects what a job converts from and to.
type Mode string

// Job modes.
const (
	ModeWKT     Mode = "wkt"     // GeoJSON -> WKT
	ModeWKB     Mode = "wkb"     // GeoJSON -> hex WKB
	ModeRecords Mode = "records" // FeatureCollection -> wkt + properties list
	ModeGeoJSON Mode = "geojson" // WKT -> GeoJSON
	Mode2D      Mode = "2d"      // WKT -> 2D WKT
	ModeReduce  Mode = "reduce"  // GeoJSON -> 2D GeoJSON
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Config represents the root configuration file structure.
type Config struct {
	Jobs         []Job `yaml:"jobs" json:"jobs"`
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty" json:"max_body_bytes,omitempty"`
	Precision    int   `yaml:"precision" json:"precision"` // max decimal digits in WKT, -1 keeps all
}

// Job is a single conversion run by the batch processor.
type Job struct {
	Properties map[string]interface{} `yaml:"properties,omitempty" json:"properties,omitempty"`

	Name      string `yaml:"name" json:"name"`
	Input     string `yaml:"input" json:"input"` // file path or http(s) URL
	Output    string `yaml:"output" json:"output"`
	Mode      Mode   `yaml:"mode" json:"mode"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`
	AsFeature bool   `yaml:"as_feature,omitempty" json:"as_feature,omitempty"`
	Minify    bool   `yaml:"minify,omitempty" json:"minify,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration and fills in defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Precision: -1}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	for i := range cfg.Jobs {
		if cfg.Jobs[i].Format == "" {
			cfg.Jobs[i].Format = FormatJSON
		}
		if cfg.Jobs[i].Name == "" {
			cfg.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
	}

	return &cfg, nil
}

// Validate reports the first job that cannot be run.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Jobs))
	for _, j := range c.Jobs {
		if seen[j.Name] {
			return fmt.Errorf("job %q: duplicate name", j.Name)
		}
		seen[j.Name] = true

		if err := j.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the job names an input, an output and a format its
// mode can write.
func (j Job) Validate() error {
	if j.Input == "" {
		return fmt.Errorf("job %q: input is required", j.Name)
	}
	if j.Output == "" {
		return fmt.Errorf("job %q: output is required", j.Name)
	}

	switch j.Mode {
	case ModeWKT, ModeWKB, Mode2D:
		return nil
	case ModeRecords:
		if j.Format == FormatJSON || j.Format == FormatYAML || j.Format == FormatCSV {
			return nil
		}
	case ModeGeoJSON, ModeReduce:
		if j.Format == FormatJSON || j.Format == FormatYAML {
			return nil
		}
	default:
		return fmt.Errorf("job %q: unknown mode %q", j.Name, j.Mode)
	}
	return fmt.Errorf("job %q: format %q is not available for mode %q", j.Name, j.Format, j.Mode)
}
