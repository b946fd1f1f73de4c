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

// Status represents the outcome of a task which was run to completion.
type Status struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// TimedOut is set when task was stopped because it exceeded its time budget.
	TimedOut bool
}

// Succeeded tells whether the task ended on its own with zero exit code.
func (s Status) Succeeded() bool {
	return !s.TimedOut && s.ExitCode == 0
}
