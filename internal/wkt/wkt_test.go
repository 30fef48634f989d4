package wkt

import (
	"encoding/binary"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/geowkt/internal/geo"
)

var testPolygon = geo.NewPolygon([][]float64{
	{-3.706512451171875, 40.420074462890625},
	{-3.70513916015625, 40.420074462890625},
	{-3.70513916015625, 40.42144775390625},
	{-3.706512451171875, 40.42144775390625},
	{-3.706512451171875, 40.420074462890625},
})

const testPolygonWKT = "POLYGON ((-3.706512451171875 40.420074462890625," +
	"-3.70513916015625 40.420074462890625," +
	"-3.70513916015625 40.42144775390625," +
	"-3.706512451171875 40.42144775390625," +
	"-3.706512451171875 40.420074462890625))"

func TestEncodeGeometry(t *testing.T) {
	tests := []struct {
		name string
		in   geo.Geometry
		want string
	}{
		{"point", geo.NewPoint(102, 0.5), "POINT (102 0.5)"},
		{"point z", geo.NewPoint(1, 2, 3), "POINT Z (1 2 3)"},
		{
			"linestring",
			geo.NewLineString([]float64{102, 0}, []float64{103, 1}, []float64{104, 0}, []float64{105, 1}),
			"LINESTRING (102 0,103 1,104 0,105 1)",
		},
		{"polygon", testPolygon, testPolygonWKT},
		{"empty collection", geo.NewGeometryCollection(), EmptyGeometryCollection},
		{"empty point", geo.Geometry{Type: geo.TypePoint}, "POINT EMPTY"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeGeometry(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	geometries := map[string]geo.Geometry{
		"point":         geo.NewPoint(1.5, -2),
		"point z":       geo.NewPoint(1.5, -2, 10),
		"linestring":    geo.NewLineString([]float64{0, 0}, []float64{1, 1}),
		"linestring z":  geo.NewLineString([]float64{0, 0, 1}, []float64{1, 1, 2}),
		"polygon":       testPolygon,
		"polygon holes": geo.NewPolygon(
			[][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 0}},
			[][]float64{{1, 1}, {2, 1}, {2, 2}, {1, 1}},
		),
		"polygon z":   geo.NewPolygon([][]float64{{0, 0, 5}, {1, 0, 5}, {1, 1, 5}, {0, 0, 5}}),
		"multipoint":  geo.NewMultiPoint([]float64{1, 2}, []float64{3, 4}),
		"multipointz": geo.NewMultiPoint([]float64{1, 2, 3}, []float64{3, 4, 5}),
		"multilinestring": geo.NewMultiLineString(
			[][]float64{{0, 0}, {1, 1}},
			[][]float64{{2, 2}, {3, 3}},
		),
		"multilinestring z": geo.NewMultiLineString([][]float64{{0, 0, 0}, {1, 1, 1}}),
		"multipolygon": geo.NewMultiPolygon(
			[][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
			[][][]float64{{{5, 5}, {6, 5}, {6, 6}, {5, 5}}},
		),
		"multipolygon z": geo.NewMultiPolygon([][][]float64{{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 0, 1}}}),
		"collection": geo.NewGeometryCollection(
			geo.NewPoint(1, 2),
			geo.NewLineString([]float64{0, 0}, []float64{1, 1}),
		),
		"nested collection": geo.NewGeometryCollection(
			geo.NewPoint(1, 2),
			geo.NewGeometryCollection(testPolygon),
		),
		"empty collection": geo.NewGeometryCollection(),
		"empty point":      {Type: geo.TypePoint},
		"collection with empty point": geo.NewGeometryCollection(
			geo.Geometry{Type: geo.TypePoint},
			geo.NewPoint(1, 2),
		),
	}

	for name, g := range geometries {
		t.Run(name, func(t *testing.T) {
			text, err := EncodeGeometry(g)
			require.NoError(t, err)

			back, err := DecodeGeometry(text)
			require.NoError(t, err, text)
			require.Equal(t, g, back, text)
		})
	}
}

func TestEncodeFeatureCollection(t *testing.T) {
	feature := geo.NewFeature(testPolygon, nil)

	got, err := EncodeFeatureCollection(geo.NewFeatureCollection(feature, feature))
	require.NoError(t, err)
	require.Equal(t, "GEOMETRYCOLLECTION("+testPolygonWKT+","+testPolygonWKT+")", got)

	got, err = EncodeFeatureCollection(geo.NewFeatureCollection())
	require.NoError(t, err)
	require.Equal(t, "GEOMETRYCOLLECTION EMPTY", got)

	_, err = EncodeFeatureCollection(geo.FeatureCollection{Type: geo.TypeFeature})
	require.True(t, errors.Is(err, ErrNotAFeatureCollection), "got %v", err)
}

func TestEncodeDispatch(t *testing.T) {
	feature := geo.NewFeature(geo.NewPoint(102, 0.5), map[string]interface{}{"name": "x"})
	fc := geo.NewFeatureCollection(feature)
	point := geo.NewPoint(102, 0.5)

	got, err := Encode(&feature)
	require.NoError(t, err)
	require.Equal(t, "POINT (102 0.5)", got)

	got, err = Encode(&fc)
	require.NoError(t, err)
	require.Equal(t, "GEOMETRYCOLLECTION(POINT (102 0.5))", got)

	got, err = Encode(&point)
	require.NoError(t, err)
	require.Equal(t, "POINT (102 0.5)", got)

	wrongTag := geo.FeatureCollection{Type: geo.TypeFeature, Features: fc.Features}
	_, err = Encode(&wrongTag)
	require.True(t, errors.Is(err, ErrNotAFeatureCollection), "got %v", err)

	_, err = Encode(nil)
	require.True(t, errors.Is(err, geo.ErrUnknownObject), "got %v", err)

	for _, obj := range []geo.Object{(*geo.Geometry)(nil), (*geo.Feature)(nil), (*geo.FeatureCollection)(nil)} {
		_, err = Encode(obj)
		require.True(t, errors.Is(err, geo.ErrUnknownObject), "%T: got %v", obj, err)

		_, err = EncodeWKB(obj, binary.LittleEndian)
		require.True(t, errors.Is(err, geo.ErrUnknownObject), "%T: got %v", obj, err)
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := EncodeFeature(geo.Feature{Type: geo.TypeFeature})
	require.True(t, errors.Is(err, ErrMissingGeometry), "got %v", err)

	_, err = EncodeGeometry(geo.NewLineString([]float64{0, 0}, []float64{1, 1, 1}))
	require.True(t, errors.Is(err, ErrInvalidCoordinates), "got %v", err)

	_, err = EncodeGeometry(geo.NewPoint(1))
	require.True(t, errors.Is(err, ErrInvalidCoordinates), "got %v", err)

	_, err = EncodeGeometry(geo.Geometry{Type: geo.TypePolygon, Coordinates: geo.Pos(1, 2)})
	require.True(t, errors.Is(err, ErrInvalidCoordinates), "got %v", err)

	_, err = EncodeGeometry(geo.Geometry{Type: "Curve", Coordinates: geo.Pos(1, 2)})
	require.True(t, errors.Is(err, geo.ErrUnsupportedGeometryType), "got %v", err)
}

func TestEncodeMixedDimensionCollection(t *testing.T) {
	_, err := EncodeGeometry(geo.NewGeometryCollection(geo.NewPoint(1, 2, 3), geo.NewPoint(1, 2)))
	require.True(t, errors.Is(err, ErrInvalidCoordinates), "got %v", err)

	_, err = EncodeGeometry(geo.NewGeometryCollection(
		geo.NewPoint(1, 2, 3),
		geo.NewGeometryCollection(geo.NewPoint(1, 2)),
	))
	require.True(t, errors.Is(err, ErrInvalidCoordinates), "got %v", err)

	_, err = EncodeFeatureCollection(geo.NewFeatureCollection(
		geo.NewFeature(geo.NewPoint(1, 2, 3), nil),
		geo.NewFeature(geo.NewPoint(1, 2), nil),
	))
	require.NoError(t, err, "features encode one by one")

	// empty members carry no dimension
	_, err = EncodeGeometry(geo.NewGeometryCollection(
		geo.NewPoint(1, 2, 3),
		geo.Geometry{Type: geo.TypePoint},
		geo.NewGeometryCollection(),
	))
	require.NoError(t, err)

	// whatever encodes decodes again
	text, err := EncodeGeometry(geo.NewGeometryCollection(geo.NewPoint(1, 2, 3), geo.NewPoint(4, 5, 6)))
	require.NoError(t, err)
	_, err = DecodeGeometry(text)
	require.NoError(t, err, text)
}

func TestEncoderPrecision(t *testing.T) {
	got, err := NewEncoder(2).EncodeGeometry(geo.NewPoint(1.23456, 7.891))
	require.NoError(t, err)
	require.Equal(t, "POINT (1.23 7.89)", got)

	got, err = NewEncoder(-1).EncodeGeometry(geo.NewPoint(1.23456, 7.891))
	require.NoError(t, err)
	require.Equal(t, "POINT (1.23456 7.891)", got)
}

func TestDecodeGeometry(t *testing.T) {
	got, err := DecodeGeometry(testPolygonWKT)
	require.NoError(t, err)
	require.Equal(t, testPolygon, got)

	for _, literal := range []string{"GEOMETRYCOLLECTION EMPTY", "  geometrycollection   empty\n"} {
		got, err = DecodeGeometry(literal)
		require.NoError(t, err)
		require.Equal(t, geo.Geometry{Type: geo.TypeGeometryCollection, Geometries: []geo.Geometry{}}, got)
	}

	got, err = DecodeGeometry("POINT ZM (1 2 3 4)")
	require.NoError(t, err)
	require.Equal(t, geo.NewPoint(1, 2, 3), got)

	got, err = DecodeGeometry("POINT M (1 2 4)")
	require.NoError(t, err)
	require.Equal(t, geo.NewPoint(1, 2), got)

	_, err = DecodeGeometry("POLYGON ((0 0, 1 1")
	require.Error(t, err)
}

func TestDecodeAsFeature(t *testing.T) {
	props := map[string]interface{}{"test": "Test"}

	obj, err := Decode(testPolygonWKT, true, props)
	require.NoError(t, err)

	geometry, err := DecodeGeometry(testPolygonWKT)
	require.NoError(t, err)
	require.Equal(t, &geo.Feature{Type: geo.TypeFeature, Geometry: &geometry, Properties: props}, obj)

	// the feature owns its own copy
	obj.(*geo.Feature).Properties["test"] = "changed"
	require.Equal(t, "Test", props["test"])

	obj, err = Decode(testPolygonWKT, true, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{}, obj.(*geo.Feature).Properties)

	obj, err = Decode(testPolygonWKT, false, props)
	require.NoError(t, err)
	require.Equal(t, &geometry, obj)
}

func TestWKBRoundTrip(t *testing.T) {
	feature := geo.NewFeature(geo.NewPolygon([][]float64{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 0, 1}}), nil)
	fc := geo.NewFeatureCollection(feature, geo.NewFeature(geo.NewPoint(3, 4, 5), nil))

	data, err := EncodeWKB(&feature, binary.LittleEndian)
	require.NoError(t, err)
	back, err := DecodeWKB(data)
	require.NoError(t, err)
	require.Equal(t, *feature.Geometry, back)

	hex, err := EncodeWKBHex(&fc, binary.BigEndian)
	require.NoError(t, err)
	back, err = DecodeWKBHex(hex)
	require.NoError(t, err)
	require.Equal(t, geo.TypeGeometryCollection, back.Type)
	require.Len(t, back.Geometries, 2)
	require.Equal(t, geo.NewPoint(3, 4, 5), back.Geometries[1])

	point := geo.NewPoint(1, 2)
	hex, err = EncodeWKBHex(&point, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, "0101000000000000000000f03f0000000000000040", hex)

	_, err = DecodeWKB([]byte{0x01, 0x02})
	require.Error(t, err)

	_, err = EncodeWKB(&geo.Feature{}, binary.LittleEndian)
	require.True(t, errors.Is(err, ErrMissingGeometry), "got %v", err)
}

func TestDecodeText(t *testing.T) {
	obj, err := DecodeText("0101000000000000000000f03f0000000000000040\n", false, nil)
	require.NoError(t, err)
	point := geo.NewPoint(1, 2)
	require.Equal(t, &point, obj)

	obj, err = DecodeText(" POINT (1 2) ", true, map[string]interface{}{"id": 1})
	require.NoError(t, err)
	require.Equal(t, &geo.Feature{
		Type:       geo.TypeFeature,
		Geometry:   &point,
		Properties: map[string]interface{}{"id": 1},
	}, obj)

	obj, err = DecodeText("0101000000000000000000f03f0000000000000040", true, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{}, obj.(*geo.Feature).Properties)

	_, err = DecodeText("01zz", false, nil)
	require.Error(t, err)
}
