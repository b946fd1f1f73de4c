package sweep

import (
	"strings"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Registry holds families by name. Iteration order is registration order and it is also execution order.
type Registry struct {
	families *orderedmap.OrderedMap[string, Family]
}

// NewRegistry returns empty registry.
func NewRegistry() *Registry {
	return &Registry{families: orderedmap.New[string, Family]()}
}

// DefaultRegistry returns registry with the four predefined families in execution order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Family{NewNonBasedLinearGrowth(), NewBasedLinearGrowth(), NewDenseG1Growth(), NewEdgeDensity()} {
		r.mustRegister(f)
	}
	return r
}

func (r *Registry) mustRegister(f Family) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Register adds family at the end of registry.
func (r *Registry) Register(f Family) error {
	if f.Name == "" {
		return errors.New("family name cannot be empty")
	}
	if f.Specs == nil || f.X == nil {
		return errors.Errorf("family %q must define both specs and x mapping", f.Name)
	}
	if _, present := r.families.Get(f.Name); present {
		return errors.Errorf("family %q is already registered", f.Name)
	}
	r.families.Set(f.Name, f)
	return nil
}

// Get returns family by name.
func (r *Registry) Get(name string) (Family, bool) {
	return r.families.Get(name)
}

// Names returns family names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.families.Len())
	for pair := r.families.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// All returns every family in registry order.
func (r *Registry) All() []Family {
	families := make([]Family, 0, r.families.Len())
	for pair := r.families.Oldest(); pair != nil; pair = pair.Next() {
		families = append(families, pair.Value)
	}
	return families
}

// Select returns families with given names, in registry order regardless of the order of names.
// Empty selection means all families.
func (r *Registry) Select(names []string) ([]Family, error) {
	if len(names) == 0 {
		return r.All(), nil
	}

	wanted := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := r.families.Get(name); !ok {
			return nil, errors.Errorf("unknown sweep %q, available: %s", name, strings.Join(r.Names(), ", "))
		}
		wanted[name] = true
	}

	var families []Family
	for pair := r.families.Oldest(); pair != nil; pair = pair.Next() {
		if wanted[pair.Key] {
			families = append(families, pair.Value)
		}
	}
	return families, nil
}
