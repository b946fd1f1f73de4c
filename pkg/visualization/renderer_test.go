package visualization

import (
	"bytes"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tajo2025/perfsweep/pkg/experiment/sweep"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

func edgeDensityResult() sweep.Result {
	return sweep.Result{
		Name:    sweep.EdgeDensity,
		XLabel:  "Edge density of G1",
		Variant: spec.AStarAccurate,
		Points: []sweep.SeriesPoint{
			{X: 0.4, MeanTimeMs: 1.5, MeanMemoryKB: 3000},
			{X: 0.8, MeanTimeMs: 2.25, MeanMemoryKB: 3100},
			{X: 1.2, MeanTimeMs: 4, MeanMemoryKB: 3300.5},
		},
	}
}

func TestRenderer(t *testing.T) {
	Convey("While rendering charts", t, func() {
		dir, err := ioutil.TempDir("", "perfsweep-charts")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		resultsDir := filepath.Join(dir, "results")
		renderer := NewRenderer(resultsDir)

		Convey("PNG named after sweep and variant should be created in new results directory", func() {
			path, err := renderer.Render(edgeDensityResult())
			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join(resultsDir, "edge_density_astar.png"))

			content, err := ioutil.ReadFile(path)
			So(err, ShouldBeNil)
			img, err := png.Decode(bytes.NewReader(content))
			So(err, ShouldBeNil)
			So(img.Bounds().Dy(), ShouldBeGreaterThan, 0)
		})

		Convey("Renderer should work as sweep sink", func() {
			var sink sweep.Sink = renderer
			So(sink.Consume(edgeDensityResult()), ShouldBeNil)
			_, err := os.Stat(renderer.Path(sweep.EdgeDensity, spec.AStarAccurate))
			So(err, ShouldBeNil)
		})

		Convey("Series of different lengths should be rejected without writing anything", func() {
			_, err := renderer.RenderSeries("broken", spec.BruteForceAccurate, "x",
				[]float64{1, 2, 3}, []float64{1, 2}, []float64{1, 2, 3})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "different lengths")
			_, statErr := os.Stat(resultsDir)
			So(os.IsNotExist(statErr), ShouldBeTrue)
		})

		Convey("Empty series should be rejected", func() {
			_, err := renderer.RenderSeries("empty", spec.BruteForceAccurate, "x", nil, nil, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPrintSummary(t *testing.T) {
	Convey("Summary table should list every point with sweep caption", t, func() {
		var buf bytes.Buffer
		PrintSummary(&buf, edgeDensityResult())
		out := buf.String()

		So(out, ShouldContainSubstring, "EDGE DENSITY OF G1")
		So(out, ShouldContainSubstring, "0.4")
		So(out, ShouldContainSubstring, "2.250")
		So(out, ShouldContainSubstring, "3300.5")
		So(out, ShouldContainSubstring, "edge_density (astar)")
	})

	Convey("Table caption and chart title should share one header", t, func() {
		result := edgeDensityResult()
		So(SummaryTable(result).caption, ShouldEqual, seriesTitle(result.Name, result.Variant))
		So(seriesTitle(sweep.EdgeDensity, spec.BruteForceAccurate), ShouldEqual, "edge_density (bruteforce)")
	})
}
