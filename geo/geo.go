// Package geo triangulates go-geom polygons, and decodes them from GeoJSON.
//
// Triangle indices are vertex indices into the polygon's own flat
// coordinates, so with stride s, vertex i is FlatCoords()[i*s : i*s+s]. The
// closing point GeoJSON puts at the end of each ring stays in the coordinates,
// and a triangle can refer to either copy of that point.
package geo

import (
	"encoding/json"

	"github.com/osuushi/earcut"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrNoPolygons is returned by Decode when the document contains no polygon.
var ErrNoPolygons = errors.New("geo: no polygons found")

// Flatten returns the polygon in the form earcut.Tessellate takes.
func Flatten(p *geom.Polygon) (data []float64, holeIndices []int, dim int) {
	dim = p.Stride()
	ends := p.Ends()
	holeIndices = make([]int, 0, len(ends))
	for i := 0; i < len(ends)-1; i++ {
		holeIndices = append(holeIndices, ends[i]/dim)
	}
	return p.FlatCoords(), holeIndices, dim
}

// TessellatePolygon triangulates a polygon. Empty polygons have no triangles.
func TessellatePolygon(p *geom.Polygon, opts ...earcut.Option) ([]int, error) {
	if p.Empty() {
		return []int{}, nil
	}
	data, holes, dim := Flatten(p)
	triangles, err := earcut.Tessellate(data, holes, dim, opts...)
	return triangles, errors.Wrap(err, "geo: tessellating polygon")
}

// TessellateMultiPolygon triangulates each polygon of mp separately. The
// result has one index list per polygon, relative to that polygon.
func TessellateMultiPolygon(mp *geom.MultiPolygon, opts ...earcut.Option) ([][]int, error) {
	result := make([][]int, mp.NumPolygons())
	for i := range result {
		triangles, err := TessellatePolygon(mp.Polygon(i), opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		result[i] = triangles
	}
	return result, nil
}

// Deviation compares the area of triangles to the polygon's.
func Deviation(p *geom.Polygon, triangles []int) (float64, error) {
	data, holes, dim := Flatten(p)
	return earcut.Deviation(data, triangles, holes, dim)
}

// Decode reads a GeoJSON geometry, feature or feature collection and returns
// every polygon in it, in document order. Multi polygons and geometry
// collections are opened up. Geometries of other types are skipped.
func Decode(data []byte) ([]*geom.Polygon, error) {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, errors.Wrap(err, "geo: decoding GeoJSON")
	}

	var geometries []geom.T
	switch header.Type {
	case "Feature":
		var f geojson.Feature
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, errors.Wrap(err, "geo: decoding feature")
		}
		geometries = append(geometries, f.Geometry)
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := fc.UnmarshalJSON(data); err != nil {
			return nil, errors.Wrap(err, "geo: decoding feature collection")
		}
		for _, f := range fc.Features {
			geometries = append(geometries, f.Geometry)
		}
	default:
		var g geom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return nil, errors.Wrap(err, "geo: decoding geometry")
		}
		geometries = append(geometries, g)
	}

	var polygons []*geom.Polygon
	for _, g := range geometries {
		polygons = appendPolygons(polygons, g)
	}
	if len(polygons) == 0 {
		return nil, ErrNoPolygons
	}
	return polygons, nil
}

func appendPolygons(polygons []*geom.Polygon, g geom.T) []*geom.Polygon {
	switch g := g.(type) {
	case *geom.Polygon:
		polygons = append(polygons, g)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			polygons = append(polygons, g.Polygon(i))
		}
	case *geom.GeometryCollection:
		for _, child := range g.Geoms() {
			polygons = appendPolygons(polygons, child)
		}
	}
	return polygons
}
