// Package visualization renders sweep results as images and terminal tables.
package visualization

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/conf"
	"github.com/tajo2025/perfsweep/pkg/experiment/sweep"
	"github.com/tajo2025/perfsweep/pkg/spec"
	"github.com/tajo2025/perfsweep/pkg/utils/fs"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ResultsDirFlag is where rendered charts are written.
var ResultsDirFlag = conf.NewStringFlag("results_dir", "Directory for charts and exported metrics", "results")

const (
	imageWidth  = 10 * vg.Inch
	imageHeight = 10 * vg.Inch
)

var gridColor = color.Gray{Y: 220}

// Renderer draws elapsed time and peak memory of a sweep as two stacked panels of one PNG image.
type Renderer struct {
	dir string
}

// NewRenderer returns renderer writing into dir. The directory is created on first render.
func NewRenderer(dir string) Renderer {
	return Renderer{dir: dir}
}

// Path returns file the chart of given sweep and variant is written to.
func (r Renderer) Path(name string, variant spec.AlgoVariant) string {
	return filepath.Join(r.dir, name+"_"+variant.Name()+".png")
}

// Render writes chart of the result and returns its path.
func (r Renderer) Render(result sweep.Result) (string, error) {
	return r.RenderSeries(result.Name, result.Variant, xLabel(result), result.XValues(), result.Times(), result.Memories())
}

// Consume implements sweep.Sink.
func (r Renderer) Consume(result sweep.Result) error {
	_, err := r.Render(result)
	return err
}

// RenderSeries writes chart of index-aligned series; all three must have the same, non-zero length.
func (r Renderer) RenderSeries(name string, variant spec.AlgoVariant, label string, xs, times, memories []float64) (string, error) {
	if len(xs) != len(times) || len(xs) != len(memories) {
		return "", errors.Errorf("series of %q have different lengths: x=%d, time=%d, memory=%d",
			name, len(xs), len(times), len(memories))
	}
	if len(xs) == 0 {
		return "", errors.Errorf("series of %q are empty", name)
	}

	header := seriesTitle(name, variant)
	timePanel, err := newPanel(header+": elapsed time", label, "Time [ms]", xs, times)
	if err != nil {
		return "", err
	}
	memoryPanel, err := newPanel(header+": peak memory", label, "Memory [KB]", xs, memories)
	if err != nil {
		return "", err
	}

	if err := fs.EnsureDir(r.dir); err != nil {
		return "", err
	}
	path := r.Path(name, variant)
	if err := savePanels(path, timePanel, memoryPanel); err != nil {
		return "", err
	}

	logrus.Infof("Chart written to %q", path)
	return path, nil
}

func newPanel(title, xLabel, yLabel string, xs, ys []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	points := make(plotter.XYs, len(xs))
	for i := range xs {
		points[i].X = xs[i]
		points[i].Y = ys[i]
	}
	line, markers, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot plot %q", title)
	}
	markers.Shape = draw.CircleGlyph{}
	p.Add(line, markers)

	return p, nil
}

func savePanels(path string, panels ...*plot.Plot) error {
	plots := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(imageWidth, imageHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      5 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart %q", path)
	}
	defer file.Close()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		return errors.Wrapf(err, "cannot write chart %q", path)
	}
	return nil
}

func title(result sweep.Result) string {
	return seriesTitle(result.Name, result.Variant)
}

func seriesTitle(name string, variant spec.AlgoVariant) string {
	return name + " (" + variant.Name() + ")"
}

func xLabel(result sweep.Result) string {
	if result.XLabel == "" {
		return "x"
	}
	return result.XLabel
}
