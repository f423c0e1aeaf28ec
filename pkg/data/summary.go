package data

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"girfdata/pkg/ismrmrd"
)

// Summary describes the extent of a batch of readouts.
type Summary struct {
	Readouts int

	// Counters holds the number of distinct values of each encoding
	// counter in KDimSortLabels.
	Counters map[string]int

	NoiseReadouts int

	PositionMin SpatialDimension[float64]
	PositionMax SpatialDimension[float64]

	MeanSampleTimeUs   float64
	StdDevSampleTimeUs float64
}

// Summary computes the extent of the readouts in a.
func (a *AcqInfo) Summary() Summary {
	s := Summary{
		Readouts: a.Len(),
		Counters: make(map[string]int, len(KDimSortLabels)),
	}
	if s.Readouts == 0 {
		return s
	}

	for _, label := range KDimSortLabels {
		counter, _ := a.Idx.Label(label)
		seen := make(map[uint16]struct{})
		for _, v := range counter.Values() {
			seen[v] = struct{}{}
		}
		s.Counters[label] = len(seen)
	}

	noise := ismrmrd.FlagIsNoiseMeasurement.Mask()
	for _, f := range a.Flags.Values() {
		if f&noise != 0 {
			s.NoiseReadouts++
		}
	}

	toFloat := func(c Array[float32]) []float64 { return Cast[float64](c).Values() }
	s.PositionMin = SpatialDimension[float64]{
		Z: floats.Min(toFloat(a.Position.Z)),
		Y: floats.Min(toFloat(a.Position.Y)),
		X: floats.Min(toFloat(a.Position.X)),
	}
	s.PositionMax = SpatialDimension[float64]{
		Z: floats.Max(toFloat(a.Position.Z)),
		Y: floats.Max(toFloat(a.Position.Y)),
		X: floats.Max(toFloat(a.Position.X)),
	}

	s.MeanSampleTimeUs, s.StdDevSampleTimeUs = stat.PopMeanStdDev(toFloat(a.SampleTimeUs), nil)
	return s
}
