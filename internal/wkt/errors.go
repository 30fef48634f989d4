package wkt

import "github.com/cockroachdb/errors"

var (
	// ErrNotAFeatureCollection is returned when a collection encoder gets a
	// value whose tag is not FeatureCollection.
	ErrNotAFeatureCollection = errors.New("GeoJSON is not a FeatureCollection")

	// ErrMissingGeometry is returned when a Feature without geometry is encoded.
	ErrMissingGeometry = errors.New("feature has no geometry")

	// ErrInvalidCoordinates is returned when a coordinate payload does not fit
	// its geometry type.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
