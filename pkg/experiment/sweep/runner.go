package sweep

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/experiment"
	"github.com/tajo2025/perfsweep/pkg/spec"
	"github.com/tajo2025/perfsweep/pkg/utils/uuid"
)

// Materializer turns specs into instance files, returned paths keep specs order.
type Materializer interface {
	GenerateAll(ctx context.Context, specs []spec.TestSpec, prefix string) ([]string, error)
}

// Sink consumes results as soon as each sweep completes.
type Sink interface {
	Consume(result Result) error
}

// SinkFunc is an adapter to allow the use of ordinary functions as Sink.
type SinkFunc func(result Result) error

// Consume calls f(result).
func (f SinkFunc) Consume(result Result) error {
	return f(result)
}

// Sinks fans result out to every sink in order, first error stops.
type Sinks []Sink

// Consume implements Sink.
func (s Sinks) Consume(result Result) error {
	for _, sink := range s {
		if err := sink.Consume(result); err != nil {
			return err
		}
	}
	return nil
}

// Runner executes families strictly sequentially: one instance, one trial at a time.
type Runner struct {
	materializer Materializer
	measurer     experiment.Measurer
	retries      int
	prefix       string
}

// NewRunner is a constructor for Runner.
func NewRunner(materializer Materializer, measurer experiment.Measurer, retries int, prefix string) *Runner {
	return &Runner{
		materializer: materializer,
		measurer:     measurer,
		retries:      retries,
		prefix:       prefix,
	}
}

// Run materializes every instance of the family and averages trials of the variant on each of them.
func (r *Runner) Run(ctx context.Context, family Family, variant spec.AlgoVariant) (Result, error) {
	log := logrus.WithFields(logrus.Fields{
		"run":     uuid.New(),
		"sweep":   family.Name,
		"variant": variant.Name(),
	})

	specs := family.Specs()
	log.Infof("Starting sweep with %d instances, %d trials each", len(specs), r.retries)

	files, err := r.materializer.GenerateAll(ctx, specs, r.prefix)
	if err != nil {
		return Result{}, errors.Wrapf(err, "cannot materialize instances of sweep %q", family.Name)
	}
	if len(files) != len(specs) {
		return Result{}, errors.Errorf("sweep %q: got %d instance files for %d specs", family.Name, len(files), len(specs))
	}

	result := Result{
		Name:    family.Name,
		XLabel:  family.XLabel,
		Variant: variant,
		Points:  make([]SeriesPoint, 0, len(specs)),
	}
	for i, s := range specs {
		avg, err := experiment.AverageTrials(ctx, r.measurer, files[i], variant, r.retries)
		if err != nil {
			return Result{}, errors.Wrapf(err, "sweep %q failed on %s", family.Name, s)
		}

		point := SeriesPoint{X: family.X(s), MeanTimeMs: avg.ElapsedMs, MeanMemoryKB: avg.PeakMemoryKB}
		log.Debugf("x=%v: %.4f ms, %.1f kB", point.X, point.MeanTimeMs, point.MeanMemoryKB)
		result.Points = append(result.Points, point)
	}

	log.Info("Sweep finished")
	return result, nil
}

// RunAll executes every family for every variant, family-major, handing each result to sink.
// First error aborts; results consumed before it are kept by the sink.
func (r *Runner) RunAll(ctx context.Context, families []Family, variants []spec.AlgoVariant, sink Sink) error {
	for _, family := range families {
		for _, variant := range variants {
			result, err := r.Run(ctx, family, variant)
			if err != nil {
				return err
			}
			if sink == nil {
				continue
			}
			if err := sink.Consume(result); err != nil {
				return errors.Wrapf(err, "cannot consume result of sweep %q (%s)", family.Name, variant.Name())
			}
		}
	}
	return nil
}
