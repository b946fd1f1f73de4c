package experiment_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"github.com/tajo2025/perfsweep/pkg/experiment"
	"github.com/tajo2025/perfsweep/pkg/experiment/mocks"
	"github.com/tajo2025/perfsweep/pkg/spec"
)

func TestAverageTrials(t *testing.T) {
	ctx := context.Background()
	const file = "workdir/9_10_0.5_0.8_false.txt"

	Convey("While averaging trials", t, func() {
		Convey("Constant measurements should average to themselves regardless of retries", func() {
			for _, retries := range []int{1, 2, 7, 10} {
				measurer := new(mocks.Measurer)
				measurer.On("Measure", mock.Anything, file, spec.BruteForceAccurate).
					Return(experiment.Measurement{ElapsedMs: 12.5, PeakMemoryKB: 4096}, nil).Times(retries)

				avg, err := experiment.AverageTrials(ctx, measurer, file, spec.BruteForceAccurate, retries)
				So(err, ShouldBeNil)
				So(avg.ElapsedMs, ShouldEqual, 12.5)
				So(avg.PeakMemoryKB, ShouldEqual, 4096)
				So(avg.Trials, ShouldEqual, retries)
				measurer.AssertExpectations(t)
			}
		})

		Convey("Distinct measurements should average to arithmetic mean", func() {
			samples := []experiment.Measurement{
				{ElapsedMs: 1.1, PeakMemoryKB: 100},
				{ElapsedMs: 2.2, PeakMemoryKB: 200},
				{ElapsedMs: 3.3, PeakMemoryKB: 300},
				{ElapsedMs: 10.0, PeakMemoryKB: 401},
			}
			calls := 0
			measurer := experiment.MeasurerFunc(func(context.Context, string, spec.AlgoVariant) (experiment.Measurement, error) {
				m := samples[calls]
				calls++
				return m, nil
			})

			avg, err := experiment.AverageTrials(ctx, measurer, file, spec.AStarAccurate, len(samples))
			So(err, ShouldBeNil)
			So(calls, ShouldEqual, len(samples))
			So(avg.ElapsedMs, ShouldAlmostEqual, 4.15, 1e-9)
			So(avg.PeakMemoryKB, ShouldAlmostEqual, 250.25, 1e-9)
		})

		Convey("Failing trial should abort the whole series", func() {
			measurer := new(mocks.Measurer)
			measurer.On("Measure", mock.Anything, file, spec.AStarAccurate).
				Return(experiment.Measurement{ElapsedMs: 1, PeakMemoryKB: 1}, nil).Twice()
			measurer.On("Measure", mock.Anything, file, spec.AStarAccurate).
				Return(experiment.Measurement{}, errors.New("parse failure")).Once()

			_, err := experiment.AverageTrials(ctx, measurer, file, spec.AStarAccurate, 10)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "trial 3/10")
			So(err.Error(), ShouldContainSubstring, "parse failure")
			measurer.AssertNumberOfCalls(t, "Measure", 3)
		})

		Convey("Non-positive retries should be rejected without running trials", func() {
			measurer := new(mocks.Measurer)
			_, err := experiment.AverageTrials(ctx, measurer, file, spec.AStarAccurate, 0)
			So(err, ShouldNotBeNil)
			measurer.AssertNotCalled(t, "Measure", mock.Anything, mock.Anything, mock.Anything)
		})
	})
}

func TestSession(t *testing.T) {
	Convey("Sessions should have unique identifiers", t, func() {
		first, err := experiment.NewSession()
		So(err, ShouldBeNil)
		second, err := experiment.NewSession()
		So(err, ShouldBeNil)

		So(first.UUID, ShouldNotEqual, second.UUID)
		So(first.Name, ShouldEndWith, first.UUID)
	})
}
