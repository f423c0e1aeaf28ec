package data

import (
	"math"
	"math/cmplx"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFOV = SpatialDimension[float64]{Z: 0.005, Y: 0.2, X: 0.25}

func TestNewGriddedData(t *testing.T) {
	values := Zeros[float64](1, 1, 2, 4, 4)

	tests := []struct {
		name   string
		header Header
		want   QHeader
	}{
		{
			name: "KHeader",
			header: KHeader{
				ReconFOV:    testFOV,
				EncodingFOV: SpatialDimension[float64]{Z: 0.005, Y: 0.4, X: 0.5},
				ReconMatrix: SpatialDimension[int]{Z: 2, Y: 4, X: 4},
				TE:          []float64{0.002},
			},
			want: QHeaderFromKHeader(KHeader{ReconFOV: testFOV}),
		},
		{
			name:   "IHeader",
			header: IHeader{FOV: testFOV, TI: []float64{0.5}},
			want:   QHeaderFromIHeader(IHeader{FOV: testFOV}),
		},
		{
			name:   "QHeader",
			header: QHeader{FOV: testFOV},
			want:   QHeader{FOV: testFOV},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gd, err := NewGriddedData(values, tt.header)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, gd.Header()); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, testFOV, gd.Header().FOV)
			assert.Equal(t, []int{1, 1, 2, 4, 4}, gd.Values().Shape())
		})
	}
}

func TestNewGriddedDataUnrecognizedHeader(t *testing.T) {
	values := Zeros[float64](1)

	for _, h := range []Header{nil, &KHeader{}, &QHeader{}} {
		gd, err := NewGriddedData(values, h)
		assert.Nil(t, gd)
		assert.ErrorIs(t, err, ErrUnrecognizedHeader)
	}
}

func TestData(t *testing.T) {
	values := Vector([]float64{1, 2})
	d := NewData(values, "header")
	assert.Equal(t, "header", d.Header())
	assert.Equal(t, []float64{1, 2}, d.Values().Values())
}

func TestNewSpectrumData(t *testing.T) {
	grid := Vector([]float64{0, 100, 200})
	values := Vector([]complex128{1, 1i, -1})

	s, err := NewSpectrumData(grid, values)
	require.NoError(t, err)
	assert.Equal(t, grid, s.Grid())
	assert.Equal(t, values, s.Values())

	_, err = NewSpectrumData(grid, Vector([]complex128{1, 2}))
	assert.ErrorIs(t, err, ErrShape)
}

func TestSpectrumFromSignal(t *testing.T) {
	// 8 samples at 1 kHz with a cosine at 250 Hz
	n := 8
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Cos(2 * math.Pi * 250 * float64(i) / 1000)
	}

	s, err := SpectrumFromSignal(signal, time.Millisecond, 0)
	require.NoError(t, err)

	grid := s.Grid().Values()
	require.Len(t, grid, n/2+1)
	assert.InDelta(t, 0, grid[0], 1e-9)
	assert.InDelta(t, 250, grid[2], 1e-9)
	assert.InDelta(t, 500, grid[n/2], 1e-9)

	values := s.Values().Values()
	for i, v := range values {
		if i == 2 {
			assert.InDelta(t, float64(n)/2, cmplx.Abs(v), 1e-9)
			continue
		}
		assert.InDelta(t, 0, cmplx.Abs(v), 1e-9, "bin %d", i)
	}

	padded, err := SpectrumFromSignal(signal, time.Millisecond, 32)
	require.NoError(t, err)
	assert.Equal(t, 17, padded.Grid().Len())
	assert.InDelta(t, 1000.0/32, padded.Grid().Values()[1], 1e-9)
}

func TestSpectrumFromSignalErrors(t *testing.T) {
	_, err := SpectrumFromSignal(nil, time.Millisecond, 0)
	assert.ErrorIs(t, err, ErrShape)

	_, err = SpectrumFromSignal([]float64{1}, 0, 0)
	assert.Error(t, err)
}
