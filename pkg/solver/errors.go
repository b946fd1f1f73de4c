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
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tajo2025/perfsweep/pkg/executor"
)

const failureTailLines = 3

// GenerationFailure is returned when the solver did not produce an instance file.
type GenerationFailure struct {
	Spec   string
	Path   string
	Reason string
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("generation of %s into %q failed: %s", e.Spec, e.Path, e.Reason)
}

// ProcessFailure is returned when a timed solver run exits with non-zero code or times out.
type ProcessFailure struct {
	Command  string
	ExitCode int
	TimedOut bool
	Stderr   string
}

func (e *ProcessFailure) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("command %q timed out", e.Command)
	}
	return fmt.Sprintf("command %q failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// BuildFailure is returned when one of the build steps fails.
type BuildFailure struct {
	Step   string
	Reason string
}

func (e *BuildFailure) Error() string {
	return fmt.Sprintf("build step %q failed: %s", e.Step, e.Reason)
}

// IsGenerationFailure tells whether cause of err is a GenerationFailure.
func IsGenerationFailure(err error) bool {
	_, ok := errors.Cause(err).(*GenerationFailure)
	return ok
}

// IsProcessFailure tells whether cause of err is a ProcessFailure.
func IsProcessFailure(err error) bool {
	_, ok := errors.Cause(err).(*ProcessFailure)
	return ok
}

// IsBuildFailure tells whether cause of err is a BuildFailure.
func IsBuildFailure(err error) bool {
	_, ok := errors.Cause(err).(*BuildFailure)
	return ok
}

// describeStatus summarizes failed task for error messages.
func describeStatus(status executor.Status) string {
	if status.TimedOut {
		return "timed out"
	}
	reason := fmt.Sprintf("exit code %d", status.ExitCode)
	if tail := lastLines(status.Stderr, failureTailLines); tail != "" {
		reason += ": " + tail
	}
	return reason
}

func lastLines(output string, count int) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) > count {
		lines = lines[len(lines)-count:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}
