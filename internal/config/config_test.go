package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `
precision: 6
jobs:
  - name: parcels
    input: data/parcels.geojson
    output: out/parcels.csv
    mode: records
    format: csv
  - input: data/site.wkt
    output: out/site.geojson
    mode: geojson
    as_feature: true
    properties:
      source: survey
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Precision)
	require.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)
	require.Len(t, cfg.Jobs, 2)

	require.Equal(t, ModeRecords, cfg.Jobs[0].Mode)
	require.Equal(t, FormatCSV, cfg.Jobs[0].Format)

	require.Equal(t, "job-2", cfg.Jobs[1].Name)
	require.Equal(t, FormatJSON, cfg.Jobs[1].Format)
	require.True(t, cfg.Jobs[1].AsFeature)
	require.Equal(t, map[string]interface{}{"source": "survey"}, cfg.Jobs[1].Properties)

	require.NoError(t, cfg.Validate())
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("jobs: []\n"))
	require.NoError(t, err)
	require.Equal(t, -1, cfg.Precision)
	require.Empty(t, cfg.Jobs)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Parse([]byte("jobs: {"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		ok   bool
	}{
		{"wkt", Job{Name: "a", Input: "in", Output: "out", Mode: ModeWKT}, true},
		{"records yaml", Job{Name: "a", Input: "in", Output: "out", Mode: ModeRecords, Format: FormatYAML}, true},
		{"geojson csv", Job{Name: "a", Input: "in", Output: "out", Mode: ModeGeoJSON, Format: FormatCSV}, false},
		{"no input", Job{Name: "a", Output: "out", Mode: ModeWKT}, false},
		{"no output", Job{Name: "a", Input: "in", Mode: ModeWKT}, false},
		{"bad mode", Job{Name: "a", Input: "in", Output: "out", Mode: "kml"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.job.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}

	dup := Config{Jobs: []Job{
		{Name: "a", Input: "in", Output: "out", Mode: ModeWKT},
		{Name: "a", Input: "in", Output: "out2", Mode: ModeWKT},
	}}
	require.Error(t, dup.Validate())
}
