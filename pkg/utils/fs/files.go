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

package fs

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// ReadTail returns last lineCount lines of the file.
func ReadTail(filePath string, lineCount int) (tail string, err error) {
	output, err := exec.Command("tail", "-n", strconv.Itoa(lineCount), filePath).CombinedOutput()

	if err != nil {
		return "", errors.Wrapf(err, "could not read tail of %q", filePath)
	}

	return string(output), nil
}

// EnsureDir creates directory with parents when it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "cannot create directory %q", dir)
	}
	return nil
}

// Exists tells whether the path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CopyExecutable copies file from src to dst and marks it executable.
func CopyExecutable(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "cannot read %q", src)
	}
	// Remove first so that a running binary under dst is not overwritten in place.
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot remove %q", dst)
	}
	if err := os.WriteFile(dst, data, 0755); err != nil {
		return errors.Wrapf(err, "cannot write %q", dst)
	}
	return nil
}
