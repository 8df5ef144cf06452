// Command earcut triangulates polygons read from a file or stdin, and prints
// the triangles as vertex index triples, one per line.
//
// Input is plain text (one "x y" vertex per line, rings separated by blank
// lines, outer ring first), an SVG document whose <polygon> elements are the
// rings, or GeoJSON. With --png the result is also drawn, and --show prints the
// drawing inline on terminals that support it.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/earcut"
	"github.com/osuushi/earcut/internal/dbg"
	"github.com/osuushi/earcut/render"
	"github.com/osuushi/earcut/shape"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

type options struct {
	file      string
	format    string
	config    string
	deviation bool
	verbose   bool

	tolerance      float64
	maxDepth       int
	indexThreshold int
	// Which of the above were given on the command line
	toleranceSet, maxDepthSet, indexThresholdSet bool

	png    string
	scale  float64
	labels bool
	show   bool
}

func main() {
	var o options
	app := kingpin.New("earcut", "Triangulate polygons by ear clipping.")
	app.Arg("file", "Input file, - for stdin.").Default("-").StringVar(&o.file)
	app.Flag("format", "Input format. auto guesses from the file name, then the content.").
		Default(string(shape.FormatAuto)).EnumVar(&o.format, formatNames()...)
	app.Flag("config", "YAML file with tessellator settings.").StringVar(&o.config)
	app.Flag("deviation", "Print how well the triangles cover each polygon.").Short('d').BoolVar(&o.deviation)
	app.Flag("verbose", "Log what the tessellator does.").Short('v').BoolVar(&o.verbose)

	app.Flag("tolerance", "Distance under which points are equal.").
		Action(flagSet(&o.toleranceSet)).Float64Var(&o.tolerance)
	app.Flag("max-depth", "Deepest chain of diagonal splits.").
		Action(flagSet(&o.maxDepthSet)).IntVar(&o.maxDepth)
	app.Flag("index-threshold", "Vertex count above which the z-order index is used. Negative disables it.").
		Action(flagSet(&o.indexThresholdSet)).IntVar(&o.indexThreshold)

	app.Flag("png", "Draw the result to this PNG file.").StringVar(&o.png)
	app.Flag("scale", "Pixels per unit in the drawing.").Default("1").Float64Var(&o.scale)
	app.Flag("labels", "Label vertices in the drawing.").BoolVar(&o.labels)
	app.Flag("show", "Print the drawing to the terminal (iTerm only).").BoolVar(&o.show)

	kingpin.MustParse(app.Parse(os.Args[1:]))

	colors := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(o, os.Stdout, colors); err != nil {
		au := aurora.NewAurora(term.IsTerminal(int(os.Stderr.Fd())))
		fmt.Fprintf(os.Stderr, "%s %v\n", au.Red("error:"), err)
		os.Exit(1)
	}
}

func formatNames() []string {
	names := make([]string, len(shape.Formats))
	for i, f := range shape.Formats {
		names[i] = string(f)
	}
	return names
}

func flagSet(set *bool) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		*set = true
		return nil
	}
}

func run(o options, out io.Writer, colors bool) error {
	logger := zap.NewNop()
	if o.verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "creating logger")
		}
		defer logger.Sync() //nolint:errcheck
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	shapes, err := readShapes(o.file, shape.Format(o.format))
	if err != nil {
		return err
	}
	logger.Debug("read input", zap.String("file", o.file), zap.Int("shapes", len(shapes)))

	au := aurora.NewAurora(colors)
	for i, s := range shapes {
		triangles, err := s.Tessellate(earcut.WithConfig(cfg))
		if err != nil {
			return errors.Wrapf(err, "shape %d", i)
		}

		if len(shapes) > 1 {
			fmt.Fprintln(out, au.Bold(fmt.Sprintf("# shape %d", i)))
		}
		printTriangles(out, s, triangles, colors)
		if o.deviation {
			deviation, err := s.Deviation(triangles)
			if err != nil {
				return errors.Wrapf(err, "shape %d", i)
			}
			fmt.Fprintf(out, "# deviation %v\n", deviation)
		}

		if o.png == "" && !o.show {
			continue
		}
		if err := draw(o, s, triangles, i, len(shapes), out, colors); err != nil {
			return errors.Wrapf(err, "drawing shape %d", i)
		}
	}
	return nil
}

// Drawings made only to be shown go to a temp file, which is removed once
// shown.
func draw(o options, s shape.Shape, triangles []int, i, count int, out io.Writer, colors bool) error {
	path, err := pngPath(o.png, i, count)
	if err != nil {
		return err
	}
	if o.png == "" {
		defer os.Remove(path)
	}

	opts := render.Options{Scale: o.scale, Labels: o.labels}
	if err := render.WritePNG(path, s, triangles, opts); err != nil {
		return err
	}
	if o.show && colors {
		return render.Show(path, out)
	}
	return nil
}

// Settings come from the defaults, then the config file, then the flags.
func loadConfig(o options) (earcut.Config, error) {
	cfg := earcut.DefaultConfig()
	if o.config != "" {
		data, err := os.ReadFile(o.config)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config %s", o.config)
		}
	}
	if o.toleranceSet {
		cfg.Tolerance = o.tolerance
	}
	if o.maxDepthSet {
		cfg.MaxDepth = o.maxDepth
	}
	if o.indexThresholdSet {
		cfg.IndexThreshold = o.indexThreshold
	}
	return cfg, nil
}

func readShapes(file string, format shape.Format) ([]shape.Shape, error) {
	if file == "-" {
		return shape.Read(os.Stdin, format)
	}
	if format == shape.FormatAuto {
		format = shape.FormatForPath(file)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	defer f.Close()
	return shape.Read(f, format)
}

// With several shapes, each gets its own file: out.png becomes out-0.png,
// out-1.png and so on. Without --png, drawings go to the temp dir.
func pngPath(base string, i, count int) (string, error) {
	if base == "" {
		f, err := os.CreateTemp("", "earcut-*.png")
		if err != nil {
			return "", errors.Wrap(err, "creating temp file")
		}
		f.Close()
		return f.Name(), nil
	}
	if count == 1 {
		return base, nil
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(base, ext), i, ext), nil
}

// Steiner points are highlighted, so it's easy to see which triangles use
// them.
func printTriangles(out io.Writer, s shape.Shape, triangles []int, colors bool) {
	steiner := steinerVertices(s)
	for i := 0; i+2 < len(triangles); i += 3 {
		fields := make([]string, 3)
		for j, v := range triangles[i : i+3] {
			fields[j] = strconv.Itoa(v)
			if colors {
				fields[j] = dbg.Highlight(fields[j], steiner[v])
			}
		}
		fmt.Fprintln(out, strings.Join(fields, " "))
	}
}

func steinerVertices(s shape.Shape) map[int]bool {
	steiner := make(map[int]bool)
	for ring := 1; ring < s.NumRings(); ring++ {
		if start, end := s.Ring(ring); end-start == 1 {
			steiner[start] = true
		}
	}
	return steiner
}
