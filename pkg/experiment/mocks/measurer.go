package mocks

import "github.com/tajo2025/perfsweep/pkg/experiment"
import "github.com/tajo2025/perfsweep/pkg/spec"
import "github.com/stretchr/testify/mock"

import "context"

// Measurer mock
type Measurer struct {
	mock.Mock
}

// Measure provides a mock function with given fields: ctx, file, variant
func (_m *Measurer) Measure(ctx context.Context, file string, variant spec.AlgoVariant) (experiment.Measurement, error) {
	ret := _m.Called(ctx, file, variant)

	var r0 experiment.Measurement
	if rf, ok := ret.Get(0).(func(context.Context, string, spec.AlgoVariant) experiment.Measurement); ok {
		r0 = rf(ctx, file, variant)
	} else {
		r0 = ret.Get(0).(experiment.Measurement)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, spec.AlgoVariant) error); ok {
		r1 = rf(ctx, file, variant)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
