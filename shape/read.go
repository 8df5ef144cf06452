package shape

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/earcut/geo"
	"github.com/pkg/errors"
)

// Format is an input file format.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatText    Format = "text"
	FormatSVG     Format = "svg"
	FormatGeoJSON Format = "geojson"
)

var Formats = []Format{FormatAuto, FormatText, FormatSVG, FormatGeoJSON}

// FormatForPath guesses a format from a file extension, falling back to
// FormatAuto.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".json", ".geojson":
		return FormatGeoJSON
	case ".txt":
		return FormatText
	}
	return FormatAuto
}

// Sniff the format from the first non-blank byte.
func detectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatText
	}
	switch trimmed[0] {
	case '<':
		return FormatSVG
	case '{':
		return FormatGeoJSON
	}
	return FormatText
}

// Read reads every shape in r. The text and SVG formats hold a single shape;
// GeoJSON holds one per polygon.
func Read(r io.Reader, format Format) ([]Shape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if format == FormatAuto || format == "" {
		format = detectFormat(data)
	}

	switch format {
	case FormatText:
		s, err := ReadText(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return []Shape{s}, nil
	case FormatSVG:
		s, err := ReadSVG(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return []Shape{s}, nil
	case FormatGeoJSON:
		return ReadGeoJSONAll(bytes.NewReader(data))
	}
	return nil, errors.Errorf("unknown format %q", format)
}

// ReadText reads a shape with one vertex per line, its coordinates separated
// by whitespace. Rings are separated by blank lines, the outer ring first.
// Lines starting with # are ignored. Every vertex must have the same number of
// coordinates, and at least two.
func ReadText(r io.Reader) (Shape, error) {
	var (
		rings  [][][]float64
		points [][]float64
		dim    int
	)
	// Scan lines
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			continue
		}

		// If it's empty, and we collected any points, this is the end of the ring
		if line == "" {
			if len(points) > 0 {
				rings = append(rings, points)
				points = nil
			}
			continue
		}

		// Parse the point out of the line
		point, err := parsePoint(line)
		if err != nil {
			return Shape{}, errors.Wrapf(err, "line %d", lineNumber)
		}
		if dim == 0 {
			dim = len(point)
		}
		if len(point) != dim {
			return Shape{}, errors.Errorf("line %d: expected %d coordinates, got %d", lineNumber, dim, len(point))
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return Shape{}, errors.Wrap(err, "reading text shape")
	}

	// Handle trailing ring if any
	if len(points) > 0 {
		rings = append(rings, points)
	}
	return FromRings(rings), nil
}

func parsePoint(line string) ([]float64, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil, errors.Errorf("expected at least 2 coordinates in %q", line)
	}
	point := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid coordinate %q", part)
		}
		point[i] = v
	}
	return point, nil
}

// ReadSVG reads the <polygon> elements of an SVG document. The first is the
// outer ring, the rest are holes. Nothing else in the document is looked at,
// including transforms.
func ReadSVG(r io.Reader) (Shape, error) {
	rootEl, err := svgparser.Parse(r, false)
	if err != nil {
		return Shape{}, errors.Wrap(err, "parsing SVG")
	}

	polygonEls := rootEl.FindAll("polygon")
	if len(polygonEls) == 0 {
		return Shape{}, errors.New("no polygons found in SVG")
	}

	rings := make([][][]float64, 0, len(polygonEls))
	for i, polygonEl := range polygonEls {
		points, err := parseSVGPoints(polygonEl.Attributes["points"])
		if err != nil {
			return Shape{}, errors.Wrapf(err, "polygon %d", i)
		}
		rings = append(rings, points)
	}
	return FromRings(rings), nil
}

// SVG point lists are numbers separated by whitespace and/or commas, taken
// in pairs.
func parseSVGPoints(attr string) ([][]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(attr, ",", " "))
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", attr)
	}
	points := make([][]float64, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, []float64{x, y})
	}
	return points, nil
}

// ReadGeoJSON reads the first polygon of a GeoJSON document.
func ReadGeoJSON(r io.Reader) (Shape, error) {
	shapes, err := ReadGeoJSONAll(r)
	if err != nil {
		return Shape{}, err
	}
	return shapes[0], nil
}

// ReadGeoJSONAll reads every polygon of a GeoJSON document, in order. See
// geo.Decode for what counts.
func ReadGeoJSONAll(r io.Reader) ([]Shape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading GeoJSON")
	}
	polygons, err := geo.Decode(data)
	if err != nil {
		return nil, err
	}
	shapes := make([]Shape, len(polygons))
	for i, p := range polygons {
		shapes[i] = FromPolygon(p)
	}
	return shapes, nil
}
