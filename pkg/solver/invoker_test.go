package solver

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tajo2025/perfsweep/pkg/executor"
	"github.com/tajo2025/perfsweep/pkg/solver/parser"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

func TestInvokerCommand(t *testing.T) {
	Convey("Timed command should be wrapped and carry variant flag", t, func() {
		inv := NewInvoker(executor.NewLocal(""), Config{Path: "./tajo_2025", TimeWrapper: "/usr/bin/time -v"})
		So(inv.buildCommand("workdir/a.txt", spec.BruteForceAccurate), ShouldEqual,
			"/usr/bin/time -v ./tajo_2025 workdir/a.txt workdir/a.txt.out --bruteforce")
		So(inv.buildCommand("workdir/a.txt", spec.ApproxAStar), ShouldEqual,
			"/usr/bin/time -v ./tajo_2025 workdir/a.txt workdir/a.txt.out --approx")
		So(inv.buildCommand("workdir/a.txt", spec.AStarAccurate), ShouldEqual,
			"/usr/bin/time -v ./tajo_2025 workdir/a.txt workdir/a.txt.out")
	})

	Convey("Empty wrapper should leave command unchanged", t, func() {
		inv := NewInvoker(executor.NewLocal(""), Config{Path: "./tajo_2025"})
		So(inv.buildCommand("a.txt", spec.AStarAccurate), ShouldEqual, "./tajo_2025 a.txt a.txt.out")
	})
}

func TestInvoker(t *testing.T) {
	ctx := context.Background()

	Convey("While measuring stub solver", t, func() {
		env := newStubEnv(t)
		defer env.cleanup()
		local := executor.NewLocal(env.outputDir())

		instance, err := NewGenerator(local, env.config).Generate(ctx, spec.MustNew(9, 10, 0.5, 0.8, false), "")
		So(err, ShouldBeNil)
		inv := NewInvoker(local, env.config)

		Convey("Time should be parsed from stdout and memory from stderr", func() {
			m, err := inv.Measure(ctx, instance, spec.BruteForceAccurate)
			So(err, ShouldBeNil)
			So(m.ElapsedMs, ShouldEqual, 12.5)
			So(m.PeakMemoryKB, ShouldEqual, 4096)

			variants, err := ioutil.ReadFile(instance + ".variants")
			So(err, ShouldBeNil)
			So(string(variants), ShouldEqual, "--bruteforce\n")
		})

		Convey("Every variant flag should reach solver in run order", func() {
			for _, variant := range []spec.AlgoVariant{spec.ApproxAStar, spec.AStarAccurate, spec.BruteForceAccurate} {
				_, err := inv.Measure(ctx, instance, variant)
				So(err, ShouldBeNil)
			}

			variants, err := ioutil.ReadFile(instance + ".variants")
			So(err, ShouldBeNil)
			So(string(variants), ShouldEqual, "--approx\n\n--bruteforce\n")
		})

		Convey("Time should be taken from result file when stdout lacks it", func() {
			defer setEnv(t, "STUB_QUIET")()
			m, err := inv.Measure(ctx, instance, spec.AStarAccurate)
			So(err, ShouldBeNil)
			So(m.ElapsedMs, ShouldEqual, 12.5)
		})

		Convey("Missing memory report should be a ParseError", func() {
			conf := env.config
			conf.TimeWrapper = ""
			_, err := NewInvoker(local, conf).Measure(ctx, instance, spec.AStarAccurate)
			So(err, ShouldNotBeNil)
			So(parser.IsParseError(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, parser.MaxResidentSetSizeKey)
		})

		Convey("Non-zero exit should be a ProcessFailure with stderr tail", func() {
			defer setEnv(t, "STUB_RUN_FAIL")()
			_, err := inv.Measure(ctx, instance, spec.AStarAccurate)
			So(IsProcessFailure(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "139")
			So(err.Error(), ShouldContainSubstring, "segmentation fault")
		})

		Convey("Stale result file should not satisfy the fallback", func() {
			So(ioutil.WriteFile(ResultPath(instance), []byte("Execution Time: 1 ms\n"), 0644), ShouldBeNil)
			defer setEnv(t, "STUB_RUN_FAIL")()
			_, err := inv.Measure(ctx, instance, spec.AStarAccurate)
			So(IsProcessFailure(err), ShouldBeTrue)
			_, statErr := ioutil.ReadFile(ResultPath(instance))
			So(statErr, ShouldNotBeNil)
		})
	})

	Convey("Solver exceeding timeout should be stopped and reported", t, func() {
		dir, err := ioutil.TempDir("", "perfsweep-timeout")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)
		solverPath := filepath.Join(dir, "sleeper")
		So(ioutil.WriteFile(solverPath, []byte("#!/bin/sh\nsleep 30\n"), 0755), ShouldBeNil)

		conf := Config{Path: solverPath, WorkDir: dir, Timeout: 200 * time.Millisecond}
		start := time.Now()
		_, err = NewInvoker(executor.NewLocal(dir), conf).Measure(ctx, filepath.Join(dir, "x.txt"), spec.AStarAccurate)
		So(time.Since(start), ShouldBeLessThan, 10*time.Second)
		So(IsProcessFailure(err), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "timed out")
	})
}
