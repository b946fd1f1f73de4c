// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package solver

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/executor"
	"github.com/tajo2025/perfsweep/pkg/experiment"
	"github.com/tajo2025/perfsweep/pkg/solver/parser"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

const resultFileSuffix = ".out"

// Invoker runs single timed trials of the solver. It implements experiment.Measurer.
type Invoker struct {
	exec    executor.Executor
	conf    Config
	wrapper executor.Decorator
}

// NewInvoker is a constructor for Invoker.
func NewInvoker(exec executor.Executor, config Config) Invoker {
	return Invoker{
		exec:    exec,
		conf:    config,
		wrapper: NewTimeWrapper(config.TimeWrapper),
	}
}

// ResultPath returns path of the file the solver writes its result to.
func ResultPath(file string) string {
	return file + resultFileSuffix
}

func (i Invoker) buildCommand(file string, variant spec.AlgoVariant) string {
	command := fmt.Sprintf("%s %s %s", quote(i.conf.Path), quote(file), quote(ResultPath(file)))
	if flag := variant.Flag(); flag != "" {
		command += " " + flag
	}
	return i.wrapper.Decorate(command)
}

// Measure runs the solver once for the file and variant and returns elapsed time with peak memory.
// Elapsed time is taken from stdout and, when absent there, from the result file.
func (i Invoker) Measure(ctx context.Context, file string, variant spec.AlgoVariant) (experiment.Measurement, error) {
	resultPath := ResultPath(file)
	// Stale result file could otherwise satisfy the fallback below.
	if err := os.Remove(resultPath); err != nil && !os.IsNotExist(err) {
		return experiment.Measurement{}, errors.Wrapf(err, "cannot remove stale result %q", resultPath)
	}

	command := i.buildCommand(file, variant)
	status, err := executor.RunToCompletion(ctx, i.exec, command, i.conf.Timeout)
	if err != nil {
		return experiment.Measurement{}, errors.Wrapf(err, "cannot run %s on %q", variant, file)
	}
	if !status.Succeeded() {
		return experiment.Measurement{}, &ProcessFailure{
			Command:  command,
			ExitCode: status.ExitCode,
			TimedOut: status.TimedOut,
			Stderr:   lastLines(status.Stderr, failureTailLines),
		}
	}

	elapsed, err := parser.ExecutionTimeFromString(status.Stdout, fmt.Sprintf("stdout of %q", command))
	if err != nil {
		fromFile, fileErr := parser.FileWithExecutionTime(resultPath)
		if fileErr != nil {
			logrus.Debugf("Fallback to result file %q failed: %v", resultPath, fileErr)
			return experiment.Measurement{}, err
		}
		logrus.Debugf("Execution time of %q taken from result file %q", command, resultPath)
		elapsed = fromFile
	}

	peak, err := parser.MaxResidentSetSizeFromString(status.Stderr, fmt.Sprintf("stderr of %q", command))
	if err != nil {
		return experiment.Measurement{}, err
	}

	return experiment.Measurement{ElapsedMs: elapsed, PeakMemoryKB: peak}, nil
}
