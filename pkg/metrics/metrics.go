// Package metrics exports sweep aggregates in Prometheus text format.
package metrics

import (
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/experiment/sweep"
	"github.com/tajo2025/perfsweep/pkg/utils/fs"
)

// TextfileName is the name of exported file inside results directory.
const TextfileName = "perfsweep.prom"

const namespace = "perfsweep"

// Tags identify series of one sweep run.
type Tags struct {
	Sweep   string
	Variant string
}

// NewTags returns tags of the result.
func NewTags(result sweep.Result) Tags {
	return Tags{Sweep: result.Name, Variant: result.Variant.Name()}
}

func (t Tags) pointLabels(x float64) prometheus.Labels {
	return prometheus.Labels{
		"sweep":   t.Sweep,
		"variant": t.Variant,
		"x":       strconv.FormatFloat(x, 'f', -1, 64),
	}
}

func (t Tags) labels() prometheus.Labels {
	return prometheus.Labels{"sweep": t.Sweep, "variant": t.Variant}
}

// Exporter keeps aggregates of every consumed sweep and rewrites the text file after each of them.
// Raw trial samples are never exported.
type Exporter struct {
	path     string
	retries  int
	registry *prometheus.Registry

	meanTime   *prometheus.GaugeVec
	meanMemory *prometheus.GaugeVec
	trials     *prometheus.CounterVec
}

// NewExporter returns exporter writing to <dir>/perfsweep.prom; retries is number of trials behind every point.
func NewExporter(dir string, retries int) *Exporter {
	e := &Exporter{
		path:     filepath.Join(dir, TextfileName),
		retries:  retries,
		registry: prometheus.NewRegistry(),
		meanTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_time_ms",
			Help:      "Mean elapsed time of solver run in milliseconds.",
		}, []string{"sweep", "variant", "x"}),
		meanMemory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_memory_kb",
			Help:      "Mean peak resident memory of solver run in kilobytes.",
		}, []string{"sweep", "variant", "x"}),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Number of solver trials run.",
		}, []string{"sweep", "variant"}),
	}
	e.registry.MustRegister(e.meanTime, e.meanMemory, e.trials)
	return e
}

// Path returns exported file path.
func (e *Exporter) Path() string {
	return e.path
}

// Record stores aggregates of the result.
func (e *Exporter) Record(result sweep.Result) {
	tags := NewTags(result)
	for _, p := range result.Points {
		e.meanTime.With(tags.pointLabels(p.X)).Set(p.MeanTimeMs)
		e.meanMemory.With(tags.pointLabels(p.X)).Set(p.MeanMemoryKB)
	}
	e.trials.With(tags.labels()).Add(float64(len(result.Points) * e.retries))
}

// Write rewrites text file with everything recorded so far.
func (e *Exporter) Write() error {
	if err := fs.EnsureDir(filepath.Dir(e.path)); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(e.path, e.registry); err != nil {
		return errors.Wrapf(err, "cannot write metrics to %q", e.path)
	}
	logrus.Debugf("Metrics written to %q", e.path)
	return nil
}

// Consume implements sweep.Sink.
func (e *Exporter) Consume(result sweep.Result) error {
	e.Record(result)
	return e.Write()
}
