// Package sweep defines experiment families varying one instance parameter at a time
// and runs them against the solver.
package sweep

import (
	"github.com/shopspring/decimal"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

// Names of predefined families. Names are part of artifact file names.
const (
	NonBasedLinearGrowth = "non_based_linear_growth"
	BasedLinearGrowth    = "based_linear_growth"
	DenseG1Growth        = "dense_g1_growth"
	EdgeDensity          = "edge_density"
)

const (
	minSizeG2 = 4
	maxSizeG2 = 12

	edgeDensitySizeG1 = 10
	edgeDensitySizeG2 = 11
	edgeDensitySteps  = 6
)

// edgeDensityStep is exact so that k-th density prints as 0.4*k without float drift.
var edgeDensityStep = decimal.RequireFromString("0.4")

// Family is an ordered list of TestSpecs varying one dimension.
type Family struct {
	Name   string
	XLabel string
	// Specs returns instances in x ascending order.
	Specs func() []spec.TestSpec
	// X maps spec to its position on x axis.
	X func(spec.TestSpec) float64
}

func sizeG2(s spec.TestSpec) float64 {
	return float64(s.SizeG2())
}

func densityG1(s spec.TestSpec) float64 {
	return s.DensityG1()
}

// sizeGrowth keeps densities fixed and grows graph 2 from 4 to 12 vertices, graph 1 is one vertex smaller.
func sizeGrowth(name string, densityG1, densityG2 float64, g1BasedOnG2 bool) Family {
	return Family{
		Name:   name,
		XLabel: "Size of G2",
		Specs: func() []spec.TestSpec {
			specs := make([]spec.TestSpec, 0, maxSizeG2-minSizeG2+1)
			for size := minSizeG2; size <= maxSizeG2; size++ {
				specs = append(specs, spec.MustNew(size-1, size, densityG1, densityG2, g1BasedOnG2))
			}
			return specs
		},
		X: sizeG2,
	}
}

// NewNonBasedLinearGrowth returns family of independent graphs with densities (0.5, 0.8).
func NewNonBasedLinearGrowth() Family {
	return sizeGrowth(NonBasedLinearGrowth, 0.5, 0.8, false)
}

// NewBasedLinearGrowth returns family where graph 1 is derived from graph 2, densities (0.5, 2.3).
func NewBasedLinearGrowth() Family {
	return sizeGrowth(BasedLinearGrowth, 0.5, 2.3, true)
}

// NewDenseG1Growth returns family with graph 1 density 3.5, above simple-graph bounds on purpose.
func NewDenseG1Growth() Family {
	return sizeGrowth(DenseG1Growth, 3.5, 0.8, false)
}

// NewEdgeDensity returns family with fixed sizes (10, 11) and graph 1 density 0.4, 0.8, ..., 2.4.
func NewEdgeDensity() Family {
	return Family{
		Name:   EdgeDensity,
		XLabel: "Edge density of G1",
		Specs: func() []spec.TestSpec {
			specs := make([]spec.TestSpec, 0, edgeDensitySteps)
			for k := int64(1); k <= edgeDensitySteps; k++ {
				density, _ := edgeDensityStep.Mul(decimal.NewFromInt(k)).Float64()
				specs = append(specs, spec.MustNew(edgeDensitySizeG1, edgeDensitySizeG2, density, 0.8, false))
			}
			return specs
		},
		X: densityG1,
	}
}
