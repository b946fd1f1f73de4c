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

package executor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const outputDirMode = 0755

func getBinaryNameFromCommand(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", errors.Errorf("failed to extract command name from %q", command)
	}
	return filepath.Base(fields[0]), nil
}

// createExecutorOutputFiles creates unique directory under outputDir holding stdout and stderr files for command.
func createExecutorOutputFiles(outputDir, command, prefix string) (stdout, stderr *os.File, err error) {
	if len(strings.TrimSpace(command)) == 0 {
		return nil, nil, errors.New("empty command string")
	}

	commandName, err := getBinaryNameFromCommand(command)
	if err != nil {
		return nil, nil, err
	}

	if outputDir == "" {
		outputDir, err = os.Getwd()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get working directory")
		}
	}
	if err = os.MkdirAll(outputDir, outputDirMode); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create %q", outputDir)
	}

	taskDir, err := os.MkdirTemp(outputDir, prefix+"_"+commandName+"_")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output directory for %s", commandName)
	}
	if err = os.Chmod(taskDir, outputDirMode); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to set mode of %q", taskDir)
	}

	stdout, err = os.Create(filepath.Join(taskDir, "stdout"))
	if err != nil {
		os.RemoveAll(taskDir)
		return nil, nil, errors.Wrap(err, "failed to create stdout file")
	}

	stderr, err = os.Create(filepath.Join(taskDir, "stderr"))
	if err != nil {
		stdout.Close()
		os.RemoveAll(taskDir)
		return nil, nil, errors.Wrap(err, "failed to create stderr file")
	}

	return stdout, stderr, nil
}
