package geo

import "github.com/cockroachdb/errors"

var (
	// ErrUnsupportedGeometryType is returned when a geometry tag is not one of
	// the seven GeoJSON geometry types.
	ErrUnsupportedGeometryType = errors.New("unsupported geometry type")

	// ErrNestingTooDeep is returned when geometry collections nest deeper than
	// MaxNestingDepth.
	ErrNestingTooDeep = errors.New("geometry nesting too deep")

	// ErrUnknownObject is returned when a GeoJSON document has no usable "type".
	ErrUnknownObject = errors.New("unknown GeoJSON object")
)

// MaxNestingDepth bounds how deep GeometryCollections may nest inside each other.
const MaxNestingDepth = 256

func unsupported(t Type) error {
	return errors.Wrapf(ErrUnsupportedGeometryType, "geometry type %q", t)
}
