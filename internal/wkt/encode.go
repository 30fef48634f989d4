// Package wkt converts GeoJSON geometries, features and feature collections
// to and from Well-Known Text and Well-Known Binary.
package wkt

import (
	"strings"

	"github.com/cockroachdb/errors"
	geomwkt "github.com/twpayne/go-geom/encoding/wkt"

	"github.com/woozymasta/geowkt/internal/geo"
)

// EmptyGeometryCollection is the WKT literal for a collection with no members.
const EmptyGeometryCollection = "GEOMETRYCOLLECTION EMPTY"

// Encoder writes WKT. The zero value writes the shortest text that parses
// back to the same numbers.
type Encoder struct {
	opts []geomwkt.EncodeOption
}

// NewEncoder returns an encoder that rounds ordinates to maxDecimalDigits
// digits after the point. A negative value keeps full precision.
func NewEncoder(maxDecimalDigits int) *Encoder {
	e := &Encoder{}
	if maxDecimalDigits >= 0 {
		e.opts = append(e.opts, geomwkt.EncodeOptionWithMaxDecimalDigits(maxDecimalDigits))
	}
	return e
}

var defaultEncoder = &Encoder{}

// Encode dispatches on the object kind: features encode their geometry,
// feature collections become a GEOMETRYCOLLECTION, anything else is a geometry.
func Encode(obj geo.Object) (string, error) { return defaultEncoder.Encode(obj) }

// EncodeGeometry writes g as WKT.
func EncodeGeometry(g geo.Geometry) (string, error) { return defaultEncoder.EncodeGeometry(g) }

// EncodeFeature writes the feature's geometry as WKT; properties are dropped.
func EncodeFeature(f geo.Feature) (string, error) { return defaultEncoder.EncodeFeature(f) }

// EncodeFeatureCollection joins the features' geometries into one
// GEOMETRYCOLLECTION.
func EncodeFeatureCollection(fc geo.FeatureCollection) (string, error) {
	return defaultEncoder.EncodeFeatureCollection(fc)
}

// Encode is the package-level Encode using e's options.
func (e *Encoder) Encode(obj geo.Object) (string, error) {
	switch v := obj.(type) {
	case *geo.Feature:
		if v == nil {
			return "", geo.ErrUnknownObject
		}
		return e.EncodeFeature(*v)
	case *geo.FeatureCollection:
		if v == nil {
			return "", geo.ErrUnknownObject
		}
		return e.EncodeFeatureCollection(*v)
	case *geo.Geometry:
		if v == nil {
			return "", geo.ErrUnknownObject
		}
		return e.EncodeGeometry(*v)
	case nil:
		return "", geo.ErrUnknownObject
	}
	return "", errors.Wrapf(geo.ErrUnknownObject, "%T", obj)
}

// EncodeGeometry is the package-level EncodeGeometry using e's options.
func (e *Encoder) EncodeGeometry(g geo.Geometry) (string, error) {
	if g.Type == geo.TypeGeometryCollection && len(g.Geometries) == 0 {
		return EmptyGeometryCollection, nil
	}

	t, err := toGeom(g, 0)
	if err != nil {
		return "", err
	}

	text, err := geomwkt.Marshal(t, e.opts...)
	if err != nil {
		return "", errors.Wrapf(err, "encode %s", g.Type)
	}
	return compact(text), nil
}

// EncodeFeature is the package-level EncodeFeature using e's options.
func (e *Encoder) EncodeFeature(f geo.Feature) (string, error) {
	if f.Geometry == nil {
		return "", ErrMissingGeometry
	}
	return e.EncodeGeometry(*f.Geometry)
}

// EncodeFeatureCollection is the package-level EncodeFeatureCollection using
// e's options.
func (e *Encoder) EncodeFeatureCollection(fc geo.FeatureCollection) (string, error) {
	if fc.Type != geo.TypeFeatureCollection {
		return "", errors.Wrapf(ErrNotAFeatureCollection, "got %q", fc.Type)
	}
	if len(fc.Features) == 0 {
		return EmptyGeometryCollection, nil
	}

	parts := make([]string, 0, len(fc.Features))
	for i, f := range fc.Features {
		text, err := e.EncodeFeature(f)
		if err != nil {
			return "", errors.Wrapf(err, "features[%d]", i)
		}
		parts = append(parts, text)
	}
	return "GEOMETRYCOLLECTION(" + strings.Join(parts, ",") + ")", nil
}

// compact drops the space go-geom writes after each comma, so lists read
// "0 0,1 1". WKT carries no string literals, so the rewrite is safe.
func compact(text string) string {
	return strings.ReplaceAll(text, ", ", ",")
}
