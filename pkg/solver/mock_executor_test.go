package solver

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"github.com/tajo2025/perfsweep/pkg/executor/mocks"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

func outputFile(t *testing.T, dir, name, content string) *os.File {
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	return file
}

func finishedHandle(t *testing.T, dir, stdout, stderr string) *mocks.TaskHandle {
	handle := new(mocks.TaskHandle)
	handle.On("Wait", mock.Anything).Return(true)
	handle.On("ExitCode").Return(0, nil)
	handle.On("StdoutFile").Return(outputFile(t, dir, "stdout", stdout), nil)
	handle.On("StderrFile").Return(outputFile(t, dir, "stderr", stderr), nil)
	handle.On("Address").Return("127.0.0.1")
	handle.On("EraseOutput").Return(nil)
	handle.On("Clean").Return(nil)
	return handle
}

func TestSolverCommandsWithMockedExecutor(t *testing.T) {
	ctx := context.Background()

	Convey("While driving solver through mocked executor", t, func() {
		dir, err := ioutil.TempDir("", "perfsweep-mock")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		exec := new(mocks.Executor)
		exec.On("Name").Return("Mock")
		config := Config{Path: "./tajo_2025", TimeWrapper: "/usr/bin/time -v", WorkDir: filepath.Join(dir, "workdir")}

		Convey("Invoker should hand wrapped command to executor and parse both streams", func() {
			command := "/usr/bin/time -v ./tajo_2025 workdir/9_10_0.5_0.8_false.txt workdir/9_10_0.5_0.8_false.txt.out --bruteforce"
			handle := finishedHandle(t, dir, "Execution Time: 7 ms\n", "\tMaximum resident set size (kbytes): 100\n")
			exec.On("Execute", command).Return(handle, nil).Once()

			m, err := NewInvoker(exec, config).Measure(ctx, "workdir/9_10_0.5_0.8_false.txt", spec.BruteForceAccurate)
			So(err, ShouldBeNil)
			So(m.ElapsedMs, ShouldEqual, 7)
			So(m.PeakMemoryKB, ShouldEqual, 100)
			exec.AssertExpectations(t)
			handle.AssertCalled(t, "EraseOutput")
			handle.AssertCalled(t, "Clean")
		})

		Convey("Executor failing to start generation should not be mistaken for GenerationFailure", func() {
			exec.On("Execute", mock.Anything).Return(nil, errors.New("fork failed")).Once()

			_, err := NewGenerator(exec, config).Generate(ctx, spec.MustNew(3, 4, 0.5, 0.8, false), "")
			So(err, ShouldNotBeNil)
			So(IsGenerationFailure(err), ShouldBeFalse)
			So(err.Error(), ShouldContainSubstring, "fork failed")

			command := exec.Calls[0].Arguments.String(0)
			So(command, ShouldEndWith, "--gen 3 4 0.5 0.8 false")
		})

		Convey("Cancelled context should not start any process", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := NewInvoker(exec, config).Measure(cancelled, "x.txt", spec.AStarAccurate)
			So(err, ShouldNotBeNil)
			exec.AssertNotCalled(t, "Execute", mock.Anything)
		})
	})
}
