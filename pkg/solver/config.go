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

// Package solver drives the external graph-matching solver: it builds the binary,
// materializes synthetic instances and runs timed trials of each algorithm variant.
package solver

import (
	"regexp"
	"strings"
	"time"

	"github.com/tajo2025/perfsweep/pkg/conf"
)

var (
	// PathFlag points the solver executable used by every invocation.
	PathFlag = conf.NewStringFlag("solver_path", "Path to the solver executable (build step copies it here)", "./tajo_2025")
	// TimeWrapperFlag is the resource measurement utility prefixed to timed runs.
	TimeWrapperFlag = conf.NewStringFlag("time_wrapper", "Command wrapping timed solver runs; must report 'Maximum resident set size (kbytes)' on stderr", "/usr/bin/time -v")
	// WorkDirFlag is where instance files are generated.
	WorkDirFlag = conf.NewStringFlag("work_dir", "Directory for generated instance files", "workdir")
	// ReuseInstancesFlag skips generation when instance file with canonical name already exists.
	ReuseInstancesFlag = conf.NewBoolFlag("reuse_instances", "Reuse already generated instance files instead of regenerating them", false)
	// TimeoutFlag bounds every single solver invocation.
	TimeoutFlag = conf.NewDurationFlag("trial_timeout", "Timeout of a single solver invocation (0 disables it)", 10*time.Minute)

	sourceDirFlag     = conf.NewStringFlag("source_dir", "Solver source directory (CMake project)", "..")
	buildDirFlag      = conf.NewStringFlag("build_dir", "Solver build directory", "build")
	buildArtifactFlag = conf.NewStringFlag("build_artifact", "Solver binary path relative to build directory", "src/tajo_2025")
	buildJobsFlag     = conf.NewIntFlag("build_jobs", "Number of parallel build jobs", 8)
	buildTimeoutFlag  = conf.NewDurationFlag("build_timeout", "Timeout of every build step (0 disables it)", 30*time.Minute)
)

// Config is a struct for solver configuration.
type Config struct {
	Path           string
	TimeWrapper    string
	WorkDir        string
	ReuseInstances bool
	// Timeout of a single invocation, 0 means no timeout.
	Timeout time.Duration
	Build   BuildConfig
}

// BuildConfig describes how to build the solver binary.
type BuildConfig struct {
	SourceDir string
	BuildDir  string
	Artifact  string
	Jobs      int
	Timeout   time.Duration
}

// DefaultConfig is a constructor for solver Config with values taken from flags.
func DefaultConfig() Config {
	return Config{
		Path:           PathFlag.Value(),
		TimeWrapper:    TimeWrapperFlag.Value(),
		WorkDir:        WorkDirFlag.Value(),
		ReuseInstances: ReuseInstancesFlag.Value(),
		Timeout:        TimeoutFlag.Value(),
		Build: BuildConfig{
			SourceDir: sourceDirFlag.Value(),
			BuildDir:  buildDirFlag.Value(),
			Artifact:  buildArtifactFlag.Value(),
			Jobs:      buildJobsFlag.Value(),
			Timeout:   buildTimeoutFlag.Value(),
		},
	}
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_./=:,+-]+$`)

// quote makes argument safe to pass through `sh -c`; plain paths are left untouched.
func quote(arg string) string {
	if shellSafe.MatchString(arg) {
		return arg
	}
	return "'" + strings.Replace(arg, "'", `'\''`, -1) + "'"
}
