package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/conf"
	"github.com/tajo2025/perfsweep/pkg/executor"
	"github.com/tajo2025/perfsweep/pkg/experiment"
	"github.com/tajo2025/perfsweep/pkg/experiment/logger"
	"github.com/tajo2025/perfsweep/pkg/experiment/sweep"
	"github.com/tajo2025/perfsweep/pkg/metrics"
	"github.com/tajo2025/perfsweep/pkg/solver"
	"github.com/tajo2025/perfsweep/pkg/utils/errutil"
	"github.com/tajo2025/perfsweep/pkg/visualization"
)

var (
	skipBuildFlag = conf.NewBoolFlag("skip_build", "Use existing solver executable instead of building it", false)
	genSuiteFlag  = conf.NewBoolFlag("gen_suite", "Generate curated test suite with the solver before running sweeps", false)
)

const help = `perfsweep builds the graph-matching solver, sweeps synthetic instance shapes one parameter at a time
and measures mean elapsed time and peak memory of every algorithm variant.
Charts are written to <results_dir>/<sweep>_<variant>.png, aggregates to <results_dir>/perfsweep.prom.
Every flag can be set with PERFSWEEP_<FLAG_NAME> environment variable or in the env file.`

func main() {
	// Setup conf.
	conf.SetAppName("perfsweep")
	conf.SetHelp(help)
	experiment.Configure()

	session, err := experiment.NewSession()
	errutil.Check(err)

	resultsDir := visualization.ResultsDirFlag.Value()
	logFile, err := logger.Initialize(conf.AppName(), session, resultsDir)
	errutil.CheckWithContext(err, "cannot initialize logging")
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errutil.Check(run(ctx, session, resultsDir))
	logrus.Infof("Session %s finished, results in %q", session.Name, resultsDir)
}

func run(ctx context.Context, session experiment.Session, resultsDir string) error {
	solverConfig := solver.DefaultConfig()
	sweepConfig, err := sweep.DefaultConfig(sweep.DefaultRegistry())
	if err != nil {
		return err
	}

	// Output of failed processes is kept here for inspection.
	local := executor.NewLocal(filepath.Join(resultsDir, "output", session.Name))

	if skipBuildFlag.Value() {
		logrus.Infof("Skipping build, using %q", solverConfig.Path)
	} else if err := solver.NewBuilder(local, solverConfig).Build(ctx); err != nil {
		return err
	}

	generator := solver.NewGenerator(local, solverConfig)
	if genSuiteFlag.Value() {
		if err := generator.GenerateSuite(ctx); err != nil {
			return err
		}
	}

	sinks := sweep.Sinks{
		visualization.NewRenderer(resultsDir),
		metrics.NewExporter(resultsDir, sweepConfig.Retries),
		sweep.SinkFunc(func(result sweep.Result) error {
			visualization.PrintSummary(os.Stdout, result)
			return nil
		}),
	}

	runner := sweep.NewRunner(generator, solver.NewInvoker(local, solverConfig), sweepConfig.Retries, sweepConfig.Prefix)
	return runner.RunAll(ctx, sweepConfig.Families, sweepConfig.Variants, sinks)
}
