// Package kspace sorts readouts onto a Cartesian k-space grid for previews.
package kspace

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"girfdata/pkg/data"
	"girfdata/pkg/ismrmrd"
)

// Magnitude places the log magnitude of the first coil of every readout at
// its (slice, k1) position. The result has shape
// (1, 1, slices, k1, samples); averages and repetitions are summed.
func Magnitude(acqs []ismrmrd.Acquisition, info *data.AcqInfo) (*data.GriddedData, error) {
	if len(acqs) != info.Len() {
		return nil, fmt.Errorf("got %d acquisitions for acquisition info of %d readouts", len(acqs), info.Len())
	}
	if len(acqs) == 0 {
		return nil, data.ErrEmptyAcquisitions
	}

	sliceIdx := info.Idx.Slice.Values()
	k1Idx := info.Idx.K1.Values()
	nSlices := int(slices.Max(sliceIdx)) + 1
	nK1 := int(slices.Max(k1Idx)) + 1
	nSamples := int(slices.Max(info.NumberOfSamples.Values()))
	if nSamples == 0 {
		return nil, fmt.Errorf("readouts have no samples")
	}

	grid := data.Zeros[float64](1, 1, nSlices, nK1, nSamples)
	values := grid.Values()
	for i, acq := range acqs {
		n := int(info.NumberOfSamples.Values()[i])
		if len(acq.Data) < n {
			return nil, fmt.Errorf("acquisition %d has %d samples, header announces %d", i, len(acq.Data), n)
		}

		row := (int(sliceIdx[i])*nK1 + int(k1Idx[i])) * nSamples
		for s, v := range acq.Data[:n] {
			values[row+s] += math.Log1p(cmplx.Abs(complex128(v)))
		}
	}

	header := data.KHeader{
		EncodingMatrix: data.SpatialDimension[int]{Z: nSlices, Y: nK1, X: nSamples},
		ReconMatrix:    data.SpatialDimension[int]{Z: nSlices, Y: nK1, X: nSamples},
		AcqInfo:        info,
	}
	return data.NewGriddedData(grid, header)
}
