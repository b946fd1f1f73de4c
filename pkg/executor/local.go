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
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	localAddress = "127.0.0.1"
	// stopGracePeriod is how long Stop waits after SIGTERM before sending SIGKILL.
	stopGracePeriod = 5 * time.Second
)

// Local provisioning is responsible for providing the execution environment
// on local machine via exec.Command.
// It runs command as current user.
type Local struct {
	outputDir  string
	decorators Decorators
}

// NewLocal returns a Local instance which keeps task output files under outputDir.
// Empty outputDir means current working directory.
func NewLocal(outputDir string) Local {
	return Local{outputDir: outputDir}
}

// NewLocalDecorated returns a Local instance which decorates every command before running it.
func NewLocalDecorated(outputDir string, decorators ...Decorator) Local {
	return Local{outputDir: outputDir, decorators: decorators}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	command = l.decorators.Decorate(command)

	stdoutFile, stderrFile, err := createExecutorOutputFiles(l.outputDir, command, "local")
	if err != nil {
		return nil, err
	}

	logrus.Debug("Starting ", command)

	cmd := exec.Command("sh", "-c", command)
	// It is important to set additional Process Group ID for parent process and his children
	// to have ability to kill all the children processes.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	if err := cmd.Start(); err != nil {
		stdoutFile.Close()
		stderrFile.Close()
		os.RemoveAll(filepath.Dir(stdoutFile.Name()))
		return nil, errors.Wrapf(err, "command %q failed to start", command)
	}

	logrus.Debugf("Started %q with pid %d", command, cmd.Process.Pid)

	handle := newLocalTaskHandle(cmd, command, stdoutFile, stderrFile)
	go handle.waitForCompletion()

	return handle, nil
}

// localTaskHandle implements TaskHandle interface.
type localTaskHandle struct {
	cmd        *exec.Cmd
	command    string
	stdoutFile *os.File
	stderrFile *os.File

	// done is closed once the process is reaped; exitCode is valid afterwards.
	done     chan struct{}
	exitCode int
}

func newLocalTaskHandle(cmd *exec.Cmd, command string, stdoutFile, stderrFile *os.File) *localTaskHandle {
	return &localTaskHandle{
		cmd:        cmd,
		command:    command,
		stdoutFile: stdoutFile,
		stderrFile: stderrFile,
		done:       make(chan struct{}),
	}
}

func (t *localTaskHandle) waitForCompletion() {
	// NOTE: Wait() returns an error. We grab the process state in any case
	// (success or failure) below, so the error object matters less here.
	t.cmd.Wait()

	exitCode := -1
	if t.cmd.ProcessState != nil {
		waitStatus := t.cmd.ProcessState.Sys().(syscall.WaitStatus)
		if waitStatus.Exited() {
			exitCode = waitStatus.ExitStatus()
		} else if waitStatus.Signaled() {
			// Show what signal caused the termination.
			exitCode = -int(waitStatus.Signal())
		}
	}

	logrus.Debugf("Ended %q with output in %q and %q with exit code %d",
		t.command, t.stdoutFile.Name(), t.stderrFile.Name(), exitCode)

	t.exitCode = exitCode
	close(t.done)
}

func (t *localTaskHandle) isTerminated() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Stop terminates the whole process group of the task.
// SIGKILL follows when process group does not end within grace period.
func (t *localTaskHandle) Stop() error {
	if t.isTerminated() {
		return nil
	}

	pgid := t.cmd.Process.Pid
	// The kill syscall interprets a negated PID N as the process group N belongs to.
	logrus.Debugf("Sending SIGTERM to process group %d", pgid)
	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return errors.Wrapf(err, "cannot terminate process group %d", pgid)
	}

	if t.Wait(stopGracePeriod) {
		return nil
	}

	logrus.Debugf("Sending SIGKILL to process group %d", pgid)
	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return errors.Wrapf(err, "cannot kill process group %d", pgid)
	}
	t.Wait(0)

	return nil
}

// Status returns a state of the task.
func (t *localTaskHandle) Status() TaskState {
	if t.isTerminated() {
		return TERMINATED
	}
	return RUNNING
}

// ExitCode returns exit code of terminated task.
func (t *localTaskHandle) ExitCode() (int, error) {
	if !t.isTerminated() {
		return -1, errors.Errorf("task %q is not terminated", t.command)
	}
	return t.exitCode, nil
}

// StdoutFile returns a file handle for file to the task's stdout file.
func (t *localTaskHandle) StdoutFile() (*os.File, error) {
	return openOutputFile(t.stdoutFile)
}

// StderrFile returns a file handle for file to the task's stderr file.
func (t *localTaskHandle) StderrFile() (*os.File, error) {
	return openOutputFile(t.stderrFile)
}

func openOutputFile(f *os.File) (*os.File, error) {
	if f == nil {
		return nil, errors.New("output file was not created")
	}
	file, err := os.Open(f.Name())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open output file %q", f.Name())
	}
	return file, nil
}

// Wait blocks until process is terminated or timeout appeared.
// Returns true when process terminates before timeout, otherwise false.
func (t *localTaskHandle) Wait(timeout time.Duration) bool {
	if timeout == 0 {
		<-t.done
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-t.done:
		return true
	case <-timer.C:
		return false
	}
}

// Clean closes files to which stdout and stderr of executed command was written.
func (t *localTaskHandle) Clean() error {
	if err := t.stdoutFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return errors.Wrapf(err, "cannot close %q", t.stdoutFile.Name())
	}
	if err := t.stderrFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return errors.Wrapf(err, "cannot close %q", t.stderrFile.Name())
	}
	return nil
}

// EraseOutput removes task's stdout & stderr files together with their directory.
func (t *localTaskHandle) EraseOutput() error {
	outputDir := filepath.Dir(t.stdoutFile.Name())
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrapf(err, "cannot remove output directory %q", outputDir)
	}
	return nil
}

// Address returns address where task was located.
func (t *localTaskHandle) Address() string {
	return localAddress
}
