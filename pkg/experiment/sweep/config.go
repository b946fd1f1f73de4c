package sweep

import (
	"github.com/pkg/errors"
	"github.com/tajo2025/perfsweep/pkg/conf"
	"github.com/tajo2025/perfsweep/pkg/experiment"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

var (
	// NamesFlag selects families to run, all when empty.
	NamesFlag = conf.NewSliceFlag("sweeps", "Sweep families to run (default all): "+
		NonBasedLinearGrowth+", "+BasedLinearGrowth+", "+DenseG1Growth+", "+EdgeDensity)
	// VariantsFlag selects algorithm variants run for every family.
	VariantsFlag = conf.NewSliceFlag("variants", "Algorithm variants run for every sweep: astar, bruteforce, approx",
		spec.BruteForceAccurate.Name(), spec.AStarAccurate.Name())
	// InstancePrefixFlag is prepended to generated instance file names.
	InstancePrefixFlag = conf.NewStringFlag("instance_prefix", "Prefix of generated instance file names", "")
)

// Config is a struct for sweep selection and trial configuration.
type Config struct {
	Families []Family
	Variants []spec.AlgoVariant
	Prefix   string
	Retries  int
}

// DefaultConfig is a constructor for Config with values taken from flags.
func DefaultConfig(registry *Registry) (Config, error) {
	families, err := registry.Select(NamesFlag.Value())
	if err != nil {
		return Config{}, err
	}
	variants, err := spec.ParseVariants(VariantsFlag.Value())
	if err != nil {
		return Config{}, err
	}
	if len(variants) == 0 {
		return Config{}, errors.New("at least one algorithm variant must be selected")
	}
	return Config{
		Families: families,
		Variants: variants,
		Prefix:   InstancePrefixFlag.Value(),
		Retries:  experiment.RetriesFlag.Value(),
	}, nil
}
