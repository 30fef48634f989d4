// Package convert combines the GeoJSON model and the WKT codec into the
// batch and projection operations used by the commands and the server.
package convert

import (
	"github.com/cockroachdb/errors"

	"github.com/woozymasta/geowkt/internal/geo"
	"github.com/woozymasta/geowkt/internal/wkt"
)

// Converter runs conversions with one WKT encoder configuration.
type Converter struct {
	enc *wkt.Encoder
}

// New returns a converter whose WKT output keeps at most maxDecimalDigits
// digits after the point; a negative value keeps full precision.
func New(maxDecimalDigits int) *Converter {
	return &Converter{enc: wkt.NewEncoder(maxDecimalDigits)}
}

var defaultConverter = New(-1)

// FeatureCollectionToRecords encodes every feature and merges the text with
// the feature's properties, in feature order.
func FeatureCollectionToRecords(fc geo.FeatureCollection) ([]Record, error) {
	return defaultConverter.Records(fc)
}

// WKTTo2D parses text, drops every Z ordinate and writes WKT again.
func WKTTo2D(text string) (string, error) {
	return defaultConverter.WKTTo2D(text)
}

// Encode writes obj as WKT.
func (c *Converter) Encode(obj geo.Object) (string, error) {
	return c.enc.Encode(obj)
}

// Records is the package-level FeatureCollectionToRecords using c's encoder.
func (c *Converter) Records(fc geo.FeatureCollection) ([]Record, error) {
	records := make([]Record, 0, len(fc.Features))
	for i, f := range fc.Features {
		text, err := c.enc.EncodeFeature(f)
		if err != nil {
			return nil, errors.Wrapf(err, "features[%d]", i)
		}
		records = append(records, NewRecord(text, f.Properties))
	}
	return records, nil
}

// WKTTo2D is the package-level WKTTo2D using c's encoder.
func (c *Converter) WKTTo2D(text string) (string, error) {
	obj, err := wkt.Decode(text, false, nil)
	if err != nil {
		return "", err
	}
	flat, err := geo.ReduceToTwoD(obj)
	if err != nil {
		return "", err
	}
	return c.enc.Encode(flat)
}
