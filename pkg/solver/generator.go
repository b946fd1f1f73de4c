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
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/executor"
	"github.com/tajo2025/perfsweep/pkg/spec"
	"github.com/tajo2025/perfsweep/pkg/utils/fs"
)

// Generator materializes TestSpecs into instance files using solver generation mode.
type Generator struct {
	exec executor.Executor
	conf Config
}

// NewGenerator is a constructor for Generator.
func NewGenerator(exec executor.Executor, config Config) Generator {
	return Generator{
		exec: exec,
		conf: config,
	}
}

// Path returns canonical instance file path for the spec.
func (g Generator) Path(s spec.TestSpec, prefix string) string {
	return filepath.Join(g.conf.WorkDir, s.Name(prefix))
}

func (g Generator) buildCommand(s spec.TestSpec, path string) string {
	return fmt.Sprintf("%s %s %s --gen %s",
		quote(g.conf.Path), quote(path), quote(path), strings.Join(s.GeneratorArgs(), " "))
}

// Generate creates (or overwrites) instance file for the spec and returns its path.
// Non-zero exit, timeout or missing output file results in GenerationFailure.
func (g Generator) Generate(ctx context.Context, s spec.TestSpec, prefix string) (string, error) {
	path := g.Path(s, prefix)

	if g.conf.ReuseInstances && fs.Exists(path) {
		logrus.Debugf("Reusing instance %q for %s", path, s)
		return path, nil
	}

	if err := fs.EnsureDir(g.conf.WorkDir); err != nil {
		return "", err
	}

	status, err := executor.RunToCompletion(ctx, g.exec, g.buildCommand(s, path), g.conf.Timeout)
	if err != nil {
		return "", errors.Wrapf(err, "cannot generate %s", s)
	}
	if !status.Succeeded() {
		return "", &GenerationFailure{Spec: s.String(), Path: path, Reason: describeStatus(status)}
	}
	if !fs.Exists(path) {
		return "", &GenerationFailure{Spec: s.String(), Path: path, Reason: "solver exited successfully but instance file was not created"}
	}

	logrus.Debugf("Generated instance %q for %s", path, s)
	return path, nil
}

// GenerateAll materializes every spec keeping their order.
func (g Generator) GenerateAll(ctx context.Context, specs []spec.TestSpec, prefix string) ([]string, error) {
	paths := make([]string, 0, len(specs))
	for _, s := range specs {
		path, err := g.Generate(ctx, s, prefix)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// GenerateSuite runs solver curated suite generation inside the work directory.
// Solver writes the suite into `tests/` relative to its working directory.
func (g Generator) GenerateSuite(ctx context.Context) error {
	if err := fs.EnsureDir(g.conf.WorkDir); err != nil {
		return err
	}
	solverPath, err := filepath.Abs(g.conf.Path)
	if err != nil {
		return errors.Wrapf(err, "cannot resolve solver path %q", g.conf.Path)
	}

	command := fmt.Sprintf("cd %s && %s --gen-suite", quote(g.conf.WorkDir), quote(solverPath))
	status, err := executor.RunToCompletion(ctx, g.exec, command, g.conf.Timeout)
	if err != nil {
		return errors.Wrap(err, "cannot generate curated suite")
	}
	if !status.Succeeded() {
		return &GenerationFailure{Spec: "curated suite", Path: filepath.Join(g.conf.WorkDir, "tests"), Reason: describeStatus(status)}
	}

	logrus.Infof("Curated suite generated under %q", filepath.Join(g.conf.WorkDir, "tests"))
	return nil
}
