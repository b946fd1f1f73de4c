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

import "strings"

// TimeWrapper decorates a command with resource measurement utility (eg. `/usr/bin/time -v`).
type TimeWrapper struct {
	command string
}

// NewTimeWrapper returns TimeWrapper for given wrapper command. Empty command leaves commands unchanged.
func NewTimeWrapper(command string) TimeWrapper {
	return TimeWrapper{command: strings.TrimSpace(command)}
}

// Decorate implements executor.Decorator interface.
func (t TimeWrapper) Decorate(command string) string {
	if t.command == "" {
		return command
	}
	return t.command + " " + command
}
