// Package geo handles geographic data structures and coordinate transforms.
package geo

// Type is the GeoJSON "type" member of a geometry, feature or feature collection.
type Type string

// Geometry and container tags.
const (
	TypePoint              Type = "Point"
	TypeLineString         Type = "LineString"
	TypePolygon            Type = "Polygon"
	TypeMultiPoint         Type = "MultiPoint"
	TypeMultiLineString    Type = "MultiLineString"
	TypeMultiPolygon       Type = "MultiPolygon"
	TypeGeometryCollection Type = "GeometryCollection"

	TypeFeature           Type = "Feature"
	TypeFeatureCollection Type = "FeatureCollection"
)

// Depth returns the coordinate nesting depth fixed by the geometry tag:
// 1 for a single position, 4 for a MultiPolygon. GeometryCollection and
// unknown tags carry no coordinates and report 0.
func (t Type) Depth() int {
	switch t {
	case TypePoint:
		return 1
	case TypeLineString, TypeMultiPoint:
		return 2
	case TypePolygon, TypeMultiLineString:
		return 3
	case TypeMultiPolygon:
		return 4
	}
	return 0
}

// IsGeometry reports whether t is one of the seven geometry tags.
func (t Type) IsGeometry() bool {
	return t == TypeGeometryCollection || t.Depth() > 0
}

// Object is any GeoJSON value handled by the converters:
// *Geometry, *Feature or *FeatureCollection.
type Object interface {
	GeoJSONType() Type
}

// Geometry is a single GeoJSON geometry. Every type except GeometryCollection
// carries Coordinates; GeometryCollection carries Geometries instead.
type Geometry struct {
	Type        Type        `json:"type" yaml:"type"`
	Coordinates Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Geometries  []Geometry  `json:"geometries,omitempty" yaml:"geometries,omitempty"`
}

// GeoJSONType returns the geometry tag.
func (g *Geometry) GeoJSONType() Type { return g.Type }

// Feature is a geometry with an attached property mapping.
type Feature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Geometry   *Geometry              `json:"geometry" yaml:"geometry"`
	Type       Type                   `json:"type" yaml:"type"`
}

// GeoJSONType always reports TypeFeature.
func (f *Feature) GeoJSONType() Type { return TypeFeature }

// FeatureCollection is an ordered list of features.
type FeatureCollection struct {
	Type     Type      `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// GeoJSONType returns the collection's own tag, which callers may have set to
// anything; encoders check it.
func (fc *FeatureCollection) GeoJSONType() Type { return fc.Type }

// NewPoint builds a Point from a single position.
func NewPoint(pos ...float64) Geometry {
	return Geometry{Type: TypePoint, Coordinates: Pos(pos...)}
}

// NewLineString builds a LineString from a list of positions.
func NewLineString(positions ...[]float64) Geometry {
	return Geometry{Type: TypeLineString, Coordinates: path(positions)}
}

// NewMultiPoint builds a MultiPoint from a list of positions.
func NewMultiPoint(positions ...[]float64) Geometry {
	return Geometry{Type: TypeMultiPoint, Coordinates: path(positions)}
}

// NewPolygon builds a Polygon from its rings, exterior first.
func NewPolygon(rings ...[][]float64) Geometry {
	return Geometry{Type: TypePolygon, Coordinates: paths(rings)}
}

// NewMultiLineString builds a MultiLineString from its lines.
func NewMultiLineString(lines ...[][]float64) Geometry {
	return Geometry{Type: TypeMultiLineString, Coordinates: paths(lines)}
}

// NewMultiPolygon builds a MultiPolygon from its polygons' rings.
func NewMultiPolygon(polygons ...[][][]float64) Geometry {
	c := Coordinates{Children: make([]Coordinates, 0, len(polygons))}
	for _, rings := range polygons {
		c.Children = append(c.Children, paths(rings))
	}
	return Geometry{Type: TypeMultiPolygon, Coordinates: c}
}

// NewGeometryCollection builds a GeometryCollection. With no arguments the
// collection is empty but its Geometries slice is non-nil.
func NewGeometryCollection(geometries ...Geometry) Geometry {
	if geometries == nil {
		geometries = []Geometry{}
	}
	return Geometry{Type: TypeGeometryCollection, Geometries: geometries}
}

// NewFeature wraps g with the given properties. A nil map becomes an empty one.
func NewFeature(g Geometry, properties map[string]interface{}) Feature {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	return Feature{Type: TypeFeature, Geometry: &g, Properties: properties}
}

// NewFeatureCollection builds a FeatureCollection preserving feature order.
func NewFeatureCollection(features ...Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: TypeFeatureCollection, Features: features}
}

func path(positions [][]float64) Coordinates {
	c := Coordinates{Children: make([]Coordinates, 0, len(positions))}
	for _, p := range positions {
		c.Children = append(c.Children, Pos(p...))
	}
	return c
}

func paths(lines [][][]float64) Coordinates {
	c := Coordinates{Children: make([]Coordinates, 0, len(lines))}
	for _, l := range lines {
		c.Children = append(c.Children, path(l))
	}
	return c
}
