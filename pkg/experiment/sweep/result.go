package sweep

import "github.com/tajo2025/perfsweep/pkg/spec"

// SeriesPoint is one averaged observation within a sweep.
type SeriesPoint struct {
	X            float64
	MeanTimeMs   float64
	MeanMemoryKB float64
}

// Result is series of points of one family run for one variant, ordered like family specs.
type Result struct {
	Name    string
	XLabel  string
	Variant spec.AlgoVariant
	Points  []SeriesPoint
}

// XValues returns x of every point.
func (r Result) XValues() []float64 {
	xs := make([]float64, len(r.Points))
	for i, p := range r.Points {
		xs[i] = p.X
	}
	return xs
}

// Times returns mean elapsed time of every point.
func (r Result) Times() []float64 {
	times := make([]float64, len(r.Points))
	for i, p := range r.Points {
		times[i] = p.MeanTimeMs
	}
	return times
}

// Memories returns mean peak memory of every point.
func (r Result) Memories() []float64 {
	memories := make([]float64, len(r.Points))
	for i, p := range r.Points {
		memories[i] = p.MeanMemoryKB
	}
	return memories
}
