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
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RunToCompletion executes command, waits until it ends and returns its exit code with full output.
// Task is stopped when timeout (0 means no timeout) elapses; Status.TimedOut is set then.
// Cancelling ctx stops the task and returns ctx error.
// Non-zero exit code is not an error here, callers decide what it means; failed tasks are logged.
func RunToCompletion(ctx context.Context, e Executor, command string, timeout time.Duration) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, errors.Wrapf(err, "command %q not started", command)
	}

	handle, err := e.Execute(command)
	if err != nil {
		return Status{}, err
	}
	defer handle.Clean()

	timedOut, err := waitForTask(ctx, handle, timeout)
	if err != nil {
		return Status{}, errors.Wrapf(err, "command %q interrupted", command)
	}

	exitCode, err := handle.ExitCode()
	if err != nil {
		return Status{}, errors.Wrapf(err, "cannot get exit code of %q", command)
	}

	status := Status{ExitCode: exitCode, TimedOut: timedOut}
	if status.Stdout, err = readOutput(handle.StdoutFile()); err != nil {
		return Status{}, errors.Wrapf(err, "cannot read stdout of %q", command)
	}
	if status.Stderr, err = readOutput(handle.StderrFile()); err != nil {
		return Status{}, errors.Wrapf(err, "cannot read stderr of %q", command)
	}

	if !status.Succeeded() {
		if timedOut {
			logrus.Errorf("Command %q exceeded timeout %s and was stopped", command, timeout)
		}
		// Output is kept on disk for inspection.
		LogUnsucessfulExecution(command, e.Name(), handle)
		return status, nil
	}

	LogSuccessfulExecution(command, e.Name(), handle)
	if err := handle.EraseOutput(); err != nil {
		logrus.Warnf("Cannot erase output of %q: %v", command, err)
	}

	return status, nil
}

// waitForTask blocks until task ends, timeout elapses or ctx is done. In latter cases task is stopped.
func waitForTask(ctx context.Context, handle TaskHandle, timeout time.Duration) (timedOut bool, err error) {
	terminated := make(chan struct{})
	go func() {
		handle.Wait(0)
		close(terminated)
	}()

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case <-terminated:
		return false, nil
	case <-deadline:
		if err := handle.Stop(); err != nil {
			return true, err
		}
		<-terminated
		return true, nil
	case <-ctx.Done():
		if err := handle.Stop(); err != nil {
			logrus.Errorf("Cannot stop task: %v", err)
		}
		<-terminated
		return false, ctx.Err()
	}
}

func readOutput(file *os.File, err error) (string, error) {
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := os.ReadFile(file.Name())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
