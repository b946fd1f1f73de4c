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

package experiment

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/conf"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

// DefaultRetries is the number of trials averaged when nothing else is configured.
const DefaultRetries = 10

// RetriesFlag is the number of trials per instance and variant.
var RetriesFlag = conf.NewIntFlag("retries", "Number of trials averaged for every instance and algorithm variant", DefaultRetries)

// Average is the arithmetic mean of a trial series.
type Average struct {
	ElapsedMs    float64
	PeakMemoryKB float64
	Trials       int
}

// AverageTrials runs retries trials sequentially and returns means of elapsed time and peak memory.
// First failing trial aborts the whole series.
func AverageTrials(ctx context.Context, measurer Measurer, file string, variant spec.AlgoVariant, retries int) (Average, error) {
	if retries < 1 {
		return Average{}, errors.Errorf("number of retries must be positive, got %d", retries)
	}

	elapsed := make([]float64, 0, retries)
	memory := make([]float64, 0, retries)
	for trial := 0; trial < retries; trial++ {
		m, err := measurer.Measure(ctx, file, variant)
		if err != nil {
			return Average{}, errors.Wrapf(err, "trial %d/%d of %s on %q", trial+1, retries, variant, file)
		}
		logrus.Debugf("Trial %d/%d of %s on %q: %.4f ms, %d kB", trial+1, retries, variant, file, m.ElapsedMs, m.PeakMemoryKB)

		elapsed = append(elapsed, m.ElapsedMs)
		memory = append(memory, float64(m.PeakMemoryKB))
	}

	return Average{
		ElapsedMs:    average(elapsed),
		PeakMemoryKB: average(memory),
		Trials:       retries,
	}, nil
}
