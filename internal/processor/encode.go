package processor

import (
	"encoding/json"
	"fmt"

	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/convert"
	"github.com/woozymasta/geowkt/internal/geo"
)

const jsonMediaType = "application/json"

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc(jsonMediaType, mjson.Minify)
	return m
}()

// MinifyJSON strips all insignificant whitespace from a JSON document.
func MinifyJSON(data []byte) ([]byte, error) {
	return minifier.Bytes(jsonMediaType, data)
}

// MinifyJSONPrecision is MinifyJSON that also shortens numbers to at most
// precision significant digits. Zero keeps numbers as they are.
func MinifyJSONPrecision(data []byte, precision int) ([]byte, error) {
	if precision <= 0 {
		return MinifyJSON(data)
	}
	m := minify.New()
	m.Add(jsonMediaType, &mjson.Minifier{Precision: precision})
	return m.Bytes(jsonMediaType, data)
}

// DecodeGeoJSON parses GeoJSON read from source, as YAML when the source
// name says so.
func DecodeGeoJSON(source string, data []byte) (geo.Object, error) {
	if isYAML(source) {
		return geo.DecodeYAML(data)
	}
	return geo.DecodeJSON(data)
}

// MarshalObject renders a GeoJSON value as indented JSON, minified JSON or YAML.
func MarshalObject(obj geo.Object, format string, minified bool) ([]byte, error) {
	return marshal(obj, format, minified)
}

// MarshalRecords renders records as JSON, YAML or CSV.
func MarshalRecords(records []convert.Record, format string, minified bool) ([]byte, error) {
	if format == config.FormatCSV {
		out, err := convert.RecordsToCSV(records)
		return []byte(out), err
	}
	return marshal(records, format, minified)
}

func marshal(v interface{}, format string, minified bool) ([]byte, error) {
	switch format {
	case config.FormatYAML:
		return yaml.Marshal(v)

	case config.FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		if minified {
			return MinifyJSON(data)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}
