package geo

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// collectionForm and coordinateForm are the two serialized shapes of a
// Geometry; an empty collection still writes "geometries": [].
type collectionForm struct {
	Type       Type       `json:"type" yaml:"type"`
	Geometries []Geometry `json:"geometries" yaml:"geometries"`
}

type coordinateForm struct {
	Type        Type        `json:"type" yaml:"type"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
}

func (g Geometry) form() interface{} {
	if g.Type == TypeGeometryCollection {
		members := g.Geometries
		if members == nil {
			members = []Geometry{}
		}
		return collectionForm{Type: g.Type, Geometries: members}
	}
	return coordinateForm{Type: g.Type, Coordinates: g.Coordinates}
}

// MarshalJSON writes either "coordinates" or "geometries", never both.
func (g Geometry) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.form())
}

// MarshalYAML mirrors MarshalJSON.
func (g Geometry) MarshalYAML() (interface{}, error) {
	return g.form(), nil
}

// DecodeJSON parses a GeoJSON document and returns a *Feature, a
// *FeatureCollection or, for any other tag, a *Geometry. Unknown geometry
// tags are kept so that later steps can report them.
func DecodeJSON(data []byte) (Object, error) {
	var probe struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "decode GeoJSON")
	}

	obj, err := objectFor(probe.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, errors.Wrapf(err, "decode GeoJSON %s", probe.Type)
	}
	return obj, nil
}

// DecodeYAML is DecodeJSON for the YAML rendering of GeoJSON.
func DecodeYAML(data []byte) (Object, error) {
	var probe struct {
		Type Type `yaml:"type"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "decode GeoJSON yaml")
	}

	obj, err := objectFor(probe.Type)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, obj); err != nil {
		return nil, errors.Wrapf(err, "decode GeoJSON yaml %s", probe.Type)
	}
	return obj, nil
}

func objectFor(t Type) (Object, error) {
	switch t {
	case "":
		return nil, errors.Wrap(ErrUnknownObject, "missing type member")
	case TypeFeature:
		return &Feature{}, nil
	case TypeFeatureCollection:
		return &FeatureCollection{}, nil
	default:
		return &Geometry{}, nil
	}
}
