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

package spec

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// AlgoVariant selects one of the solver strategies.
type AlgoVariant int

const (
	// AStarAccurate is the precise heuristic search. Solver default, no flag.
	AStarAccurate AlgoVariant = iota
	// BruteForceAccurate is the exhaustive search.
	BruteForceAccurate
	// ApproxAStar is the approximate heuristic search.
	ApproxAStar
)

// AllVariants lists every variant in declaration order.
var AllVariants = []AlgoVariant{AStarAccurate, BruteForceAccurate, ApproxAStar}

// Flag returns the command line flag passed to the solver. Empty for the default strategy.
func (v AlgoVariant) Flag() string {
	switch v {
	case AStarAccurate:
		return ""
	case BruteForceAccurate:
		return "--bruteforce"
	case ApproxAStar:
		return "--approx"
	}
	panic(fmt.Sprintf("unknown algorithm variant %d", int(v)))
}

// Name returns short name used in artifact names and configuration.
func (v AlgoVariant) Name() string {
	switch v {
	case AStarAccurate:
		return "astar"
	case BruteForceAccurate:
		return "bruteforce"
	case ApproxAStar:
		return "approx"
	}
	panic(fmt.Sprintf("unknown algorithm variant %d", int(v)))
}

// String implements fmt.Stringer.
func (v AlgoVariant) String() string {
	switch v {
	case AStarAccurate:
		return "AStarAccurate"
	case BruteForceAccurate:
		return "BruteForceAccurate"
	case ApproxAStar:
		return "ApproxAStar"
	}
	return fmt.Sprintf("AlgoVariant(%d)", int(v))
}

// ParseVariant accepts either short name ("bruteforce") or full name ("BruteForceAccurate"), case insensitive.
func ParseVariant(name string) (AlgoVariant, error) {
	trimmed := strings.TrimSpace(name)
	for _, v := range AllVariants {
		if strings.EqualFold(trimmed, v.Name()) || strings.EqualFold(trimmed, v.String()) {
			return v, nil
		}
	}
	return 0, errors.Errorf("unknown algorithm variant %q", name)
}

// ParseVariants parses list of variant names keeping the given order. Duplicates are rejected.
func ParseVariants(names []string) ([]AlgoVariant, error) {
	variants := []AlgoVariant{}
	seen := map[AlgoVariant]bool{}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		v, err := ParseVariant(name)
		if err != nil {
			return nil, err
		}
		if seen[v] {
			return nil, errors.Errorf("algorithm variant %q given more than once", name)
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants, nil
}
