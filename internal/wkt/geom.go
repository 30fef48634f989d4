package wkt

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"

	"github.com/woozymasta/geowkt/internal/geo"
)

// toGeom converts g into the go-geom value understood by the encoders.
func toGeom(g geo.Geometry, depth int) (geom.T, error) {
	if g.Type == geo.TypeGeometryCollection {
		if depth >= geo.MaxNestingDepth {
			return nil, errors.Wrapf(geo.ErrNestingTooDeep, "depth %d", depth)
		}
		gc := geom.NewGeometryCollection()
		dim := 0
		for i, member := range g.Geometries {
			t, err := toGeom(member, depth+1)
			if err != nil {
				return nil, errors.Wrapf(err, "geometries[%d]", i)
			}
			// one dimension per collection, empty members fit any
			if d := dimensionOf(member); d != 0 {
				if dim != 0 && d != dim {
					return nil, errors.Wrapf(ErrInvalidCoordinates,
						"geometries[%d]: %dD member in a %dD collection", i, d, dim)
				}
				dim = d
			}
			if err := gc.Push(t); err != nil {
				return nil, errors.Wrapf(err, "geometries[%d]", i)
			}
		}
		return gc, nil
	}

	if !g.Type.IsGeometry() {
		return nil, errors.Wrapf(geo.ErrUnsupportedGeometryType, "geometry type %q", g.Type)
	}

	layout, err := layoutOf(g.Coordinates)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", g.Type)
	}
	b := builder{stride: layout.Stride()}

	switch g.Type {
	case geo.TypePoint:
		if g.Coordinates.IsZero() {
			return geom.NewPointEmpty(geom.XY), nil
		}
		c, err := b.coord(g.Coordinates)
		if err != nil {
			return nil, errors.Wrap(err, "Point")
		}
		return geom.NewPoint(layout).SetCoords(c)

	case geo.TypeLineString:
		cs, err := b.coords1(g.Coordinates)
		if err != nil {
			return nil, errors.Wrap(err, "LineString")
		}
		return geom.NewLineString(layout).SetCoords(cs)

	case geo.TypeMultiPoint:
		cs, err := b.coords1(g.Coordinates)
		if err != nil {
			return nil, errors.Wrap(err, "MultiPoint")
		}
		return geom.NewMultiPoint(layout).SetCoords(cs)

	case geo.TypePolygon:
		cs, err := b.coords2(g.Coordinates)
		if err != nil {
			return nil, errors.Wrap(err, "Polygon")
		}
		return geom.NewPolygon(layout).SetCoords(cs)

	case geo.TypeMultiLineString:
		cs, err := b.coords2(g.Coordinates)
		if err != nil {
			return nil, errors.Wrap(err, "MultiLineString")
		}
		return geom.NewMultiLineString(layout).SetCoords(cs)

	case geo.TypeMultiPolygon:
		cs, err := b.coords3(g.Coordinates)
		if err != nil {
			return nil, errors.Wrap(err, "MultiPolygon")
		}
		return geom.NewMultiPolygon(layout).SetCoords(cs)
	}

	return nil, errors.Wrapf(geo.ErrUnsupportedGeometryType, "geometry type %q", g.Type)
}

// dimensionOf returns the ordinate count of the first position found in g,
// searching collection members in order, or 0 when g holds no position.
func dimensionOf(g geo.Geometry) int {
	if g.Type == geo.TypeGeometryCollection {
		for _, member := range g.Geometries {
			if d := dimensionOf(member); d != 0 {
				return d
			}
		}
		return 0
	}

	node := g.Coordinates
	for !node.IsLeaf() {
		if len(node.Children) == 0 {
			return 0
		}
		node = node.Children[0]
	}
	return len(node.Position)
}

// layoutOf picks XY or XYZ from the first position of the tree.
func layoutOf(c geo.Coordinates) (geom.Layout, error) {
	node := c
	for !node.IsLeaf() {
		if len(node.Children) == 0 {
			return geom.XY, nil
		}
		node = node.Children[0]
	}

	switch len(node.Position) {
	case 2:
		return geom.XY, nil
	case 3:
		return geom.XYZ, nil
	}
	return geom.NoLayout, errors.Wrapf(ErrInvalidCoordinates, "position with %d ordinates", len(node.Position))
}

type builder struct {
	stride int
}

func (b builder) coord(c geo.Coordinates) (geom.Coord, error) {
	if !c.IsLeaf() {
		return nil, errors.Wrap(ErrInvalidCoordinates, "expected a position")
	}
	if len(c.Position) != b.stride {
		return nil, errors.Wrapf(ErrInvalidCoordinates,
			"position with %d ordinates in a %dD geometry", len(c.Position), b.stride)
	}
	out := make(geom.Coord, b.stride)
	copy(out, c.Position)
	return out, nil
}

func (b builder) coords1(c geo.Coordinates) ([]geom.Coord, error) {
	if c.IsLeaf() {
		return nil, errors.Wrap(ErrInvalidCoordinates, "expected a list of positions")
	}
	out := make([]geom.Coord, 0, len(c.Children))
	for _, child := range c.Children {
		coord, err := b.coord(child)
		if err != nil {
			return nil, err
		}
		out = append(out, coord)
	}
	return out, nil
}

func (b builder) coords2(c geo.Coordinates) ([][]geom.Coord, error) {
	if c.IsLeaf() {
		return nil, errors.Wrap(ErrInvalidCoordinates, "expected a list of rings or lines")
	}
	out := make([][]geom.Coord, 0, len(c.Children))
	for _, child := range c.Children {
		coords, err := b.coords1(child)
		if err != nil {
			return nil, err
		}
		out = append(out, coords)
	}
	return out, nil
}

func (b builder) coords3(c geo.Coordinates) ([][][]geom.Coord, error) {
	if c.IsLeaf() {
		return nil, errors.Wrap(ErrInvalidCoordinates, "expected a list of polygons")
	}
	out := make([][][]geom.Coord, 0, len(c.Children))
	for _, child := range c.Children {
		coords, err := b.coords2(child)
		if err != nil {
			return nil, err
		}
		out = append(out, coords)
	}
	return out, nil
}

// fromGeom converts a decoded go-geom value back into the GeoJSON model.
// M ordinates are dropped; XYZM keeps X, Y and Z.
func fromGeom(t geom.T, depth int) (geo.Geometry, error) {
	switch t := t.(type) {
	case *geom.Point:
		if len(t.FlatCoords()) == 0 {
			return geo.Geometry{Type: geo.TypePoint}, nil
		}
		return geo.Geometry{Type: geo.TypePoint, Coordinates: position(t.Coords(), t.Layout())}, nil
	case *geom.LineString:
		return geo.Geometry{Type: geo.TypeLineString, Coordinates: positions(t.Coords(), t.Layout())}, nil
	case *geom.MultiPoint:
		return geo.Geometry{Type: geo.TypeMultiPoint, Coordinates: positions(t.Coords(), t.Layout())}, nil
	case *geom.Polygon:
		return geo.Geometry{Type: geo.TypePolygon, Coordinates: rings(t.Coords(), t.Layout())}, nil
	case *geom.MultiLineString:
		return geo.Geometry{Type: geo.TypeMultiLineString, Coordinates: rings(t.Coords(), t.Layout())}, nil
	case *geom.MultiPolygon:
		cs := t.Coords()
		c := geo.Coordinates{Children: make([]geo.Coordinates, 0, len(cs))}
		for _, polygon := range cs {
			c.Children = append(c.Children, rings(polygon, t.Layout()))
		}
		return geo.Geometry{Type: geo.TypeMultiPolygon, Coordinates: c}, nil
	case *geom.GeometryCollection:
		if depth >= geo.MaxNestingDepth {
			return geo.Geometry{}, errors.Wrapf(geo.ErrNestingTooDeep, "depth %d", depth)
		}
		out := geo.NewGeometryCollection()
		for _, member := range t.Geoms() {
			g, err := fromGeom(member, depth+1)
			if err != nil {
				return geo.Geometry{}, err
			}
			out.Geometries = append(out.Geometries, g)
		}
		return out, nil
	}
	return geo.Geometry{}, errors.Wrapf(geo.ErrUnsupportedGeometryType, "%T", t)
}

func position(c geom.Coord, layout geom.Layout) geo.Coordinates {
	n := 2
	if layout.ZIndex() != -1 {
		n = 3
	}
	out := make([]float64, n)
	copy(out, c)
	return geo.Coordinates{Position: out}
}

func positions(cs []geom.Coord, layout geom.Layout) geo.Coordinates {
	out := geo.Coordinates{Children: make([]geo.Coordinates, 0, len(cs))}
	for _, c := range cs {
		out.Children = append(out.Children, position(c, layout))
	}
	return out
}

func rings(css [][]geom.Coord, layout geom.Layout) geo.Coordinates {
	out := geo.Coordinates{Children: make([]geo.Coordinates, 0, len(css))}
	for _, cs := range css {
		out.Children = append(out.Children, positions(cs, layout))
	}
	return out
}
