package geo

import (
	"maps"

	"github.com/cockroachdb/errors"
)

// ReduceToTwoD returns a 2D copy of obj: every coordinate below it keeps only
// X and Y. The input is never modified.
func ReduceToTwoD(obj Object) (Object, error) {
	switch v := obj.(type) {
	case *Geometry:
		if v == nil {
			return nil, ErrUnknownObject
		}
		g, err := ReduceGeometry(*v)
		if err != nil {
			return nil, err
		}
		return &g, nil
	case *Feature:
		if v == nil {
			return nil, ErrUnknownObject
		}
		f, err := ReduceFeature(*v)
		if err != nil {
			return nil, err
		}
		return &f, nil
	case *FeatureCollection:
		if v == nil {
			return nil, ErrUnknownObject
		}
		fc, err := ReduceFeatureCollection(*v)
		if err != nil {
			return nil, err
		}
		return &fc, nil
	case nil:
		return nil, ErrUnknownObject
	default:
		return nil, errors.Wrapf(ErrUnknownObject, "%T", obj)
	}
}

// ReduceGeometry strips the Z ordinate from g and, for collections, from every
// member geometry.
func ReduceGeometry(g Geometry) (Geometry, error) {
	return reduceGeometry(g, 0)
}

func reduceGeometry(g Geometry, depth int) (Geometry, error) {
	switch g.Type {
	case TypePoint, TypeLineString, TypePolygon,
		TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon:
		return Geometry{Type: g.Type, Coordinates: Strip(g.Coordinates)}, nil

	case TypeGeometryCollection:
		if depth >= MaxNestingDepth {
			return Geometry{}, errors.Wrapf(ErrNestingTooDeep, "depth %d", depth)
		}
		out := Geometry{Type: g.Type, Geometries: make([]Geometry, 0, len(g.Geometries))}
		for i, member := range g.Geometries {
			reduced, err := reduceGeometry(member, depth+1)
			if err != nil {
				return Geometry{}, errors.Wrapf(err, "geometries[%d]", i)
			}
			out.Geometries = append(out.Geometries, reduced)
		}
		return out, nil

	default:
		return Geometry{}, unsupported(g.Type)
	}
}

// ReduceFeature reduces the feature's geometry. Properties are copied into a
// fresh map so the result never shares state with f.
func ReduceFeature(f Feature) (Feature, error) {
	out := Feature{Type: f.Type, Properties: maps.Clone(f.Properties)}
	if f.Geometry == nil {
		return out, nil
	}

	g, err := ReduceGeometry(*f.Geometry)
	if err != nil {
		return Feature{}, err
	}
	out.Geometry = &g
	return out, nil
}

// ReduceFeatureCollection reduces every feature, preserving order.
func ReduceFeatureCollection(fc FeatureCollection) (FeatureCollection, error) {
	out := FeatureCollection{Type: fc.Type, Features: make([]Feature, 0, len(fc.Features))}
	for i, f := range fc.Features {
		reduced, err := ReduceFeature(f)
		if err != nil {
			return FeatureCollection{}, errors.Wrapf(err, "features[%d]", i)
		}
		out.Features = append(out.Features, reduced)
	}
	return out, nil
}
