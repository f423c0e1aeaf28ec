package data

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectrumData holds values on a frequency grid.
type SpectrumData struct {
	grid   Array[float64]
	values Array[complex128]
}

// NewSpectrumData creates spectrum data from the frequency grid points in Hz
// and the values on them. Both must have the same leading length.
func NewSpectrumData(grid Array[float64], values Array[complex128]) (*SpectrumData, error) {
	if grid.Len() != values.Len() {
		return nil, &ShapeError{Op: "spectrum data", Axis: 0, Got: values.Len(), Want: grid.Len()}
	}
	return &SpectrumData{grid: grid, values: values}, nil
}

// Grid returns the frequency grid points.
func (s *SpectrumData) Grid() Array[float64] {
	return s.grid
}

// Values returns the values on the grid points.
func (s *SpectrumData) Values() Array[complex128] {
	return s.values
}

// SpectrumFromSignal computes the one-sided spectrum of a real signal
// sampled every dwell. The signal is zero padded to nfft samples when nfft
// is larger than the signal. The grid runs from 0 Hz to the Nyquist frequency.
func SpectrumFromSignal(signal []float64, dwell time.Duration, nfft int) (*SpectrumData, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: empty signal", ErrShape)
	}
	if dwell <= 0 {
		return nil, errors.New("dwell time must be positive")
	}

	n := max(len(signal), nfft)
	padded := make([]float64, n)
	copy(padded, signal)

	// Gonum's real FFT only returns the n/2+1 non-redundant coefficients
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, padded)

	fs := 1 / dwell.Seconds()
	grid := make([]float64, len(coeff))
	for i := range grid {
		grid[i] = fft.Freq(i) * fs
	}

	return NewSpectrumData(Vector(grid), Vector(coeff))
}
