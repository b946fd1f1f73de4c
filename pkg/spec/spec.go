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

// Package spec describes synthetic two-graph instances and the solver strategies
// that can be run against them.
package spec

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const instanceExtension = ".txt"

// ErrInvalidSpec is returned when a TestSpec cannot describe any instance.
var ErrInvalidSpec = errors.New("invalid test spec")

// TestSpec describes shape of one synthetic instance. It is immutable once constructed.
type TestSpec struct {
	sizeG1      int
	sizeG2      int
	densityG1   float64
	densityG2   float64
	g1BasedOnG2 bool
}

// New constructs a TestSpec.
// Densities are not checked against simple-graph bounds, the generator interprets them.
func New(sizeG1, sizeG2 int, densityG1, densityG2 float64, g1BasedOnG2 bool) (TestSpec, error) {
	if sizeG1 <= 0 || sizeG2 <= 0 {
		return TestSpec{}, errors.Wrapf(ErrInvalidSpec, "graph sizes must be positive, got %d and %d", sizeG1, sizeG2)
	}
	for _, d := range []float64{densityG1, densityG2} {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return TestSpec{}, errors.Wrapf(ErrInvalidSpec, "density must be a non-negative number, got %v", d)
		}
	}

	return TestSpec{
		sizeG1:      sizeG1,
		sizeG2:      sizeG2,
		densityG1:   densityG1,
		densityG2:   densityG2,
		g1BasedOnG2: g1BasedOnG2,
	}, nil
}

// MustNew is like New but panics on invalid input. Meant for static sweep definitions.
func MustNew(sizeG1, sizeG2 int, densityG1, densityG2 float64, g1BasedOnG2 bool) TestSpec {
	s, err := New(sizeG1, sizeG2, densityG1, densityG2, g1BasedOnG2)
	if err != nil {
		panic(err)
	}
	return s
}

// SizeG1 returns vertex count of graph 1.
func (s TestSpec) SizeG1() int { return s.sizeG1 }

// SizeG2 returns vertex count of graph 2.
func (s TestSpec) SizeG2() int { return s.sizeG2 }

// DensityG1 returns edge density of graph 1.
func (s TestSpec) DensityG1() float64 { return s.densityG1 }

// DensityG2 returns edge density of graph 2.
func (s TestSpec) DensityG2() float64 { return s.densityG2 }

// G1BasedOnG2 tells whether graph 1 is a perturbation of graph 2.
func (s TestSpec) G1BasedOnG2() bool { return s.g1BasedOnG2 }

// GeneratorArgs returns the five generation parameters in the order the solver expects them after --gen.
func (s TestSpec) GeneratorArgs() []string {
	return []string{
		fmt.Sprintf("%d", s.sizeG1),
		fmt.Sprintf("%d", s.sizeG2),
		FormatDensity(s.densityG1),
		FormatDensity(s.densityG2),
		fmt.Sprintf("%t", s.g1BasedOnG2),
	}
}

// Name returns the canonical instance file name:
// <prefix><size_g1>_<size_g2>_<density_g1>_<density_g2>_<true|false>.txt
// Equal specs always map to the same name so it doubles as a cache key.
func (s TestSpec) Name(prefix string) string {
	return prefix + strings.Join(s.GeneratorArgs(), "_") + instanceExtension
}

// String implements fmt.Stringer.
func (s TestSpec) String() string {
	return fmt.Sprintf("TestSpec(g1=%d, g2=%d, d1=%s, d2=%s, based=%t)",
		s.sizeG1, s.sizeG2, FormatDensity(s.densityG1), FormatDensity(s.densityG2), s.g1BasedOnG2)
}

// FormatDensity prints density as the shortest decimal which round-trips,
// always keeping the decimal point (2 is printed as "2.0").
func FormatDensity(d float64) string {
	str := decimal.NewFromFloat(d).String()
	if !strings.Contains(str, ".") {
		str += ".0"
	}
	return str
}
