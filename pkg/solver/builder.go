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
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/executor"
	"github.com/tajo2025/perfsweep/pkg/utils/fs"
)

// Builder compiles release build of the solver with CMake and installs it under Config.Path.
type Builder struct {
	exec executor.Executor
	conf Config
}

// NewBuilder is a constructor for Builder.
func NewBuilder(exec executor.Executor, config Config) Builder {
	return Builder{
		exec: exec,
		conf: config,
	}
}

func (b Builder) steps() ([][2]string, error) {
	sourceDir, err := filepath.Abs(b.conf.Build.SourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve source directory %q", b.conf.Build.SourceDir)
	}
	buildDir := quote(b.conf.Build.BuildDir)
	return [][2]string{
		{"configure", fmt.Sprintf("cd %s && cmake %s -DCMAKE_BUILD_TYPE=Release", buildDir, quote(sourceDir))},
		{"build", fmt.Sprintf("cd %s && cmake --build . -j %d", buildDir, b.conf.Build.Jobs)},
	}, nil
}

// Build configures and builds the solver then copies the artifact to Config.Path.
func (b Builder) Build(ctx context.Context) error {
	if err := fs.EnsureDir(b.conf.Build.BuildDir); err != nil {
		return err
	}

	steps, err := b.steps()
	if err != nil {
		return err
	}

	for _, step := range steps {
		name, command := step[0], step[1]
		logrus.Infof("Solver build: %s", name)
		status, err := executor.RunToCompletion(ctx, b.exec, command, b.conf.Build.Timeout)
		if err != nil {
			return errors.Wrapf(err, "solver build step %q", name)
		}
		if !status.Succeeded() {
			return &BuildFailure{Step: name, Reason: describeStatus(status)}
		}
	}

	artifact := filepath.Join(b.conf.Build.BuildDir, b.conf.Build.Artifact)
	if !fs.Exists(artifact) {
		return &BuildFailure{Step: "install", Reason: fmt.Sprintf("artifact %q not found", artifact)}
	}
	if err := fs.EnsureDir(filepath.Dir(b.conf.Path)); err != nil {
		return err
	}
	if err := fs.CopyExecutable(artifact, b.conf.Path); err != nil {
		return &BuildFailure{Step: "install", Reason: err.Error()}
	}

	logrus.Infof("Solver installed as %q", b.conf.Path)
	return nil
}
