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

package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// ExecutionTimeKey names the solver line with elapsed time, eg. "Execution Time: 12.3400 ms".
	ExecutionTimeKey = "Execution Time"
	// MaxResidentSetSizeKey names the time -v line with peak memory,
	// eg. "	Maximum resident set size (kbytes): 4096".
	MaxResidentSetSizeKey = "Maximum resident set size (kbytes)"

	executionTimeUnit = "ms"
	maxLineLength     = 16 * 1024 * 1024
)

// ParseError is returned when expected metric is absent or malformed in process output.
type ParseError struct {
	Key    string
	Source string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q from %s: %s", e.Key, e.Source, e.Reason)
}

// IsParseError tells whether cause of err is a ParseError.
func IsParseError(err error) bool {
	_, ok := errors.Cause(err).(*ParseError)
	return ok
}

// lookup returns value of the first "key: value" line where key matches exactly after trimming.
func lookup(reader io.Reader, key string) (value string, found bool, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		line := scanner.Text()
		separator := strings.Index(line, ":")
		if separator < 0 {
			continue
		}
		if strings.TrimSpace(line[:separator]) == key {
			return strings.TrimSpace(line[separator+1:]), true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, errors.Wrapf(err, "reading output while looking for %q failed", key)
	}
	return "", false, nil
}

// ExecutionTime retrieves elapsed time in milliseconds from solver output represented as:
//    Execution Time: 123.4500 ms
func ExecutionTime(reader io.Reader, source string) (float64, error) {
	value, found, err := lookup(reader, ExecutionTimeKey)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &ParseError{Key: ExecutionTimeKey, Source: source, Reason: "line not found"}
	}

	if !strings.HasSuffix(value, executionTimeUnit) {
		return 0, &ParseError{Key: ExecutionTimeKey, Source: source, Reason: fmt.Sprintf("value %q is not given in %s", value, executionTimeUnit)}
	}
	number := strings.TrimSpace(strings.TrimSuffix(value, executionTimeUnit))

	elapsed, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, &ParseError{Key: ExecutionTimeKey, Source: source, Reason: fmt.Sprintf("%q is not a number", number)}
	}
	if elapsed < 0 {
		return 0, &ParseError{Key: ExecutionTimeKey, Source: source, Reason: fmt.Sprintf("negative time %v", elapsed)}
	}

	return elapsed, nil
}

// ExecutionTimeFromString is ExecutionTime for already captured output.
func ExecutionTimeFromString(output string, source string) (float64, error) {
	return ExecutionTime(strings.NewReader(output), source)
}

// FileWithExecutionTime parses elapsed time from the result file the solver writes next to the input.
func FileWithExecutionTime(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot open result file %q", path)
	}
	defer file.Close()
	return ExecutionTime(file, path)
}

// MaxResidentSetSize retrieves peak memory in kilobytes from `time -v` report represented as:
//    Maximum resident set size (kbytes): 4096
func MaxResidentSetSize(reader io.Reader, source string) (int64, error) {
	value, found, err := lookup(reader, MaxResidentSetSizeKey)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &ParseError{Key: MaxResidentSetSizeKey, Source: source, Reason: "line not found"}
	}

	kbytes, err := strconv.ParseInt(value, 10, 64)
	if err != nil || kbytes < 0 {
		return 0, &ParseError{Key: MaxResidentSetSizeKey, Source: source, Reason: fmt.Sprintf("%q is not a non-negative integer", value)}
	}

	return kbytes, nil
}

// MaxResidentSetSizeFromString is MaxResidentSetSize for already captured output.
func MaxResidentSetSizeFromString(output string, source string) (int64, error) {
	return MaxResidentSetSize(strings.NewReader(output), source)
}
