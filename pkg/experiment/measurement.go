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

// Package experiment holds the measurement model and reduces repeated trials to averages.
package experiment

import (
	"context"

	"github.com/tajo2025/perfsweep/pkg/spec"
)

// Measurement is a single trial result.
type Measurement struct {
	ElapsedMs    float64
	PeakMemoryKB int64
}

// Measurer runs a single trial of the variant on instance file.
type Measurer interface {
	Measure(ctx context.Context, file string, variant spec.AlgoVariant) (Measurement, error)
}

// MeasurerFunc is an adapter to allow the use of ordinary functions as Measurer.
type MeasurerFunc func(ctx context.Context, file string, variant spec.AlgoVariant) (Measurement, error)

// Measure calls f(ctx, file, variant).
func (f MeasurerFunc) Measure(ctx context.Context, file string, variant spec.AlgoVariant) (Measurement, error) {
	return f(ctx, file, variant)
}
