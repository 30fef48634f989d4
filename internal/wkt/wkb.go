package wkt

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbhex"

	"github.com/woozymasta/geowkt/internal/geo"
)

// EncodeWKB writes obj as Well-Known Binary. A feature collection becomes a
// GeometryCollection of its features' geometries.
func EncodeWKB(obj geo.Object, byteOrder binary.ByteOrder) ([]byte, error) {
	t, err := objectToGeom(obj)
	if err != nil {
		return nil, err
	}
	data, err := wkb.Marshal(t, byteOrder)
	if err != nil {
		return nil, errors.Wrap(err, "wkb: encode")
	}
	return data, nil
}

// EncodeWKBHex is EncodeWKB rendered as a hex string.
func EncodeWKBHex(obj geo.Object, byteOrder binary.ByteOrder) (string, error) {
	t, err := objectToGeom(obj)
	if err != nil {
		return "", err
	}
	s, err := wkbhex.Encode(t, byteOrder)
	if err != nil {
		return "", errors.Wrap(err, "wkb: encode")
	}
	return s, nil
}

// DecodeWKB parses Well-Known Binary.
func DecodeWKB(data []byte) (geo.Geometry, error) {
	t, err := wkb.Unmarshal(data)
	if err != nil {
		return geo.Geometry{}, errors.Wrap(err, "wkb: decode")
	}
	return fromGeom(t, 0)
}

// DecodeWKBHex parses hex encoded Well-Known Binary.
func DecodeWKBHex(s string) (geo.Geometry, error) {
	t, err := wkbhex.Decode(s)
	if err != nil {
		return geo.Geometry{}, errors.Wrap(err, "wkb: decode")
	}
	return fromGeom(t, 0)
}

func objectToGeom(obj geo.Object) (geom.T, error) {
	switch v := obj.(type) {
	case *geo.Geometry:
		if v == nil {
			return nil, geo.ErrUnknownObject
		}
		return toGeom(*v, 0)
	case *geo.Feature:
		if v == nil {
			return nil, geo.ErrUnknownObject
		}
		if v.Geometry == nil {
			return nil, ErrMissingGeometry
		}
		return toGeom(*v.Geometry, 0)
	case *geo.FeatureCollection:
		if v == nil {
			return nil, geo.ErrUnknownObject
		}
		if v.Type != geo.TypeFeatureCollection {
			return nil, errors.Wrapf(ErrNotAFeatureCollection, "got %q", v.Type)
		}
		members := make([]geo.Geometry, 0, len(v.Features))
		for i, f := range v.Features {
			if f.Geometry == nil {
				return nil, errors.Wrapf(ErrMissingGeometry, "features[%d]", i)
			}
			members = append(members, *f.Geometry)
		}
		return toGeom(geo.NewGeometryCollection(members...), 0)
	}
	return nil, errors.Wrapf(geo.ErrUnknownObject, "%T", obj)
}
