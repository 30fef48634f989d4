package wkt

import (
	"maps"
	"strings"

	"github.com/cockroachdb/errors"
	geomwkt "github.com/twpayne/go-geom/encoding/wkt"

	"github.com/woozymasta/geowkt/internal/geo"
)

// DecodeGeometry parses WKT text. The empty collection literal is answered
// directly; everything else goes to the go-geom parser.
func DecodeGeometry(text string) (geo.Geometry, error) {
	if isEmptyCollection(text) {
		return geo.NewGeometryCollection(), nil
	}

	t, err := geomwkt.Unmarshal(text)
	if err != nil {
		return geo.Geometry{}, errors.Wrap(err, "wkt: decode")
	}
	return fromGeom(t, 0)
}

// Decode parses WKT text into a *geo.Geometry, or into a *geo.Feature holding
// a copy of properties when asFeature is set.
func Decode(text string, asFeature bool, properties map[string]interface{}) (geo.Object, error) {
	g, err := DecodeGeometry(text)
	if err != nil {
		return nil, err
	}
	if !asFeature {
		return &g, nil
	}

	f := geo.NewFeature(g, maps.Clone(properties))
	return &f, nil
}

func isEmptyCollection(text string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(text), " "), EmptyGeometryCollection)
}

// DecodeText accepts WKT or hex encoded WKB. Like a PostGIS text cast, a
// leading '0' means hex WKB since no WKT keyword starts with a digit.
func DecodeText(text string, asFeature bool, properties map[string]interface{}) (geo.Object, error) {
	s := strings.TrimSpace(text)
	if !looksLikeHex(s) {
		return Decode(s, asFeature, properties)
	}

	g, err := DecodeWKBHex(s)
	if err != nil {
		return nil, err
	}
	if !asFeature {
		return &g, nil
	}
	f := geo.NewFeature(g, maps.Clone(properties))
	return &f, nil
}

func looksLikeHex(s string) bool {
	if len(s) == 0 || s[0] != '0' {
		return false
	}
	for _, r := range s {
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F') {
			return false
		}
	}
	return true
}
