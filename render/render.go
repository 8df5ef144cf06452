// Package render draws a shape and its triangulation to a PNG, for looking at
// what the tessellator did.
package render

import (
	"image"
	"io"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/earcut/shape"
	"github.com/pkg/errors"
)

// DefaultPadding is the margin around the shape, in pixels.
const DefaultPadding = 20

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("render: empty shape")

type Options struct {
	// Pixels per unit. Zero means 1.
	Scale float64
	// Margin around the shape in pixels. Negative means none, zero means
	// DefaultPadding.
	Padding float64
	// Label every vertex with its index.
	Labels bool
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

func (o Options) padding() float64 {
	switch {
	case o.Padding < 0:
		return 0
	case o.Padding == 0:
		return DefaultPadding
	}
	return o.Padding
}

// Draw renders s with the given triangles on top. The y axis points up, as in
// the input.
func Draw(s shape.Shape, triangles []int, opts Options) (image.Image, error) {
	if s.Vertices() == 0 {
		return nil, ErrEmpty
	}
	min, max := s.Bounds()
	scale := opts.scale()
	padding := opts.padding()

	// Set up the context
	width := int(scale*(max.X-min.X)+padding*2) + 1
	height := int(scale*(max.Y-min.Y)+padding*2) + 1
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	c.SetFillRuleEvenOdd()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(padding, padding)
	c.Scale(scale, scale)
	c.Translate(-min.X, -min.Y)

	drawRings(c, s)
	drawTriangles(c, s.Triangles(triangles))
	drawSteinerPoints(c, s, scale)

	if opts.Labels {
		drawLabels(c, s)
	}
	return c.Image(), nil
}

// Fill the polygon, then outline every ring
func drawRings(c *gg.Context, s shape.Shape) {
	for ring := 0; ring < s.NumRings(); ring++ {
		points := s.Points(ring)
		if len(points) < 3 {
			continue
		}
		c.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
	}
	c.SetRGB(0, 0.3, 0)
	c.FillPreserve()
	c.SetLineWidth(3)
	c.SetRGB(0, 1, 1)
	c.Stroke()
}

func drawTriangles(c *gg.Context, triangles []shape.Triangle) {
	c.SetLineWidth(1)
	for _, t := range triangles {
		c.MoveTo(t.A.X, t.A.Y)
		c.LineTo(t.B.X, t.B.Y)
		c.LineTo(t.C.X, t.C.Y)
		c.ClosePath()
		if t.SignedArea() > 0 {
			c.SetRGBA(0.3, 0.2, 1, 0.5)
		} else {
			// Wrong way around
			c.SetRGBA(1, 0, 0, 0.5)
		}
		c.FillPreserve()
		c.SetRGB(1, 1, 0)
		c.Stroke()
	}
}

// Single point holes don't show up as rings, so mark them.
func drawSteinerPoints(c *gg.Context, s shape.Shape, scale float64) {
	c.SetRGB(1, 0, 1)
	for ring := 1; ring < s.NumRings(); ring++ {
		points := s.Points(ring)
		if len(points) != 1 {
			continue
		}
		c.DrawCircle(points[0].X, points[0].Y, 4/scale)
		c.Fill()
	}
}

func drawLabels(c *gg.Context, s shape.Shape) {
	c.SetRGB(1, 1, 1)
	for i := 0; i < s.Vertices(); i++ {
		p := s.Point(i)
		// Text has to be drawn unflipped, so go back to identity with the point
		// in native coordinates
		x, y := c.TransformPoint(p.X, p.Y)
		c.Push()
		c.Identity()
		c.DrawStringAnchored(strconv.Itoa(i), x, y, 0.5, 0.5)
		c.Pop()
	}
}

// EncodePNG draws s and writes it to w as a PNG.
func EncodePNG(w io.Writer, s shape.Shape, triangles []int, opts Options) error {
	img, err := Draw(s, triangles, opts)
	if err != nil {
		return err
	}
	c := gg.NewContextForImage(img)
	return errors.Wrap(c.EncodePNG(w), "encoding PNG")
}

// WritePNG draws s to a PNG file at path.
func WritePNG(path string, s shape.Shape, triangles []int, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating PNG")
	}
	defer f.Close()
	if err := EncodePNG(f, s, triangles, opts); err != nil {
		return err
	}
	return errors.Wrap(f.Close(), "closing PNG")
}

// Show prints the PNG at path to w using the iTerm inline image protocol.
func Show(path string, w io.Writer) error {
	return errors.Wrap(imgcat.CatFile(path, w), "showing PNG")
}
