package ismrmrd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHeader returns a header with distinct values in every field group.
func testHeader(scan uint32) AcquisitionHeader {
	h := AcquisitionHeader{
		Version:              1,
		MeasurementUID:       42,
		ScanCounter:          scan,
		AcquisitionTimeStamp: 1000 + scan,
		NumberOfSamples:      4,
		AvailableChannels:    2,
		ActiveChannels:       2,
		CenterSample:         2,
		TrajectoryDimensions: 2,
		SampleTimeUs:         2.5,
		Position:             [3]float32{1, 2, 3},
		ReadDir:              [3]float32{1, 0, 0},
		PhaseDir:             [3]float32{0, 1, 0},
		SliceDir:             [3]float32{0, 0, 1},
		PatientTablePosition: [3]float32{0, 0, -100},
	}
	h.Idx.KspaceEncodeStep1 = uint16(scan)
	h.Idx.Slice = uint16(scan % 2)
	h.Idx.User[7] = 9
	h.UserInt[0] = -5
	h.UserFloat[7] = 0.5
	h.ChannelMask[0] = 0b11
	h.Set(FlagLastInSlice)
	return h
}

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, AcquisitionHeaderSize, binary.Size(AcquisitionHeader{}))
	assert.Equal(t, 34, binary.Size(EncodingCounters{}))
}

func TestEncodeDecodeHeader(t *testing.T) {
	h := testHeader(7)

	raw, err := EncodeHeader(&h)
	require.NoError(t, err)
	require.Len(t, raw, AcquisitionHeaderSize)

	// version is the first field, flags follow immediately without padding
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(raw[0:2]))
	assert.Equal(t, FlagLastInSlice.Mask(), binary.LittleEndian.Uint64(raw[2:10]))

	got, err := DecodeHeader(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("decoded header mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeHeaderSizeMismatch(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Empty", 0},
		{"Short", AcquisitionHeaderSize - 1},
		{"Long", AcquisitionHeaderSize + 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeHeader(make([]byte, tt.size))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrHeaderSize))
		})
	}
}

func TestDecodeHeaders(t *testing.T) {
	var buf bytes.Buffer
	want := make([]AcquisitionHeader, 3)
	for i := range want {
		want[i] = testHeader(uint32(i))
		raw, err := EncodeHeader(&want[i])
		require.NoError(t, err)
		buf.Write(raw)
	}

	got, err := DecodeHeaders(buf.Bytes(), len(want))
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}

	_, err = DecodeHeaders(buf.Bytes()[:buf.Len()-1], len(want))
	assert.ErrorIs(t, err, ErrHeaderSize)
}

func TestFlags(t *testing.T) {
	var h AcquisitionHeader
	assert.False(t, h.Has(FlagIsNoiseMeasurement))

	h.Set(FlagIsNoiseMeasurement)
	h.Set(FlagFirstInEncodeStep1)
	assert.True(t, h.Has(FlagIsNoiseMeasurement))
	assert.True(t, h.Has(FlagFirstInEncodeStep1))
	assert.Equal(t, uint64(1<<18|1), h.Flags)

	h.Clear(FlagIsNoiseMeasurement)
	assert.False(t, h.Has(FlagIsNoiseMeasurement))
	assert.Equal(t, uint64(0), AcquisitionFlag(0).Mask())
}

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	var want []Acquisition
	for i := 0; i < 3; i++ {
		h := testHeader(uint32(i))
		traj := make([]float32, h.TrajectoryLength())
		for j := range traj {
			traj[j] = float32(j) / 10
		}
		data := make([]complex64, h.DataLength())
		for j := range data {
			data[j] = complex(float32(i), float32(j))
		}
		acq, err := NewAcquisition(h, traj, data)
		require.NoError(t, err)
		require.NoError(t, w.Write(acq))
		want = append(want, acq)
	}

	got, err := NewReader(bytes.NewReader(buf.Bytes())).ReadAll(0)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stream mismatch (-want +got):\n%s", diff)
	}

	limited, err := NewReader(bytes.NewReader(buf.Bytes())).ReadAll(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestReaderTruncated(t *testing.T) {
	h := testHeader(0)
	acq, err := NewAcquisition(h, make([]float32, h.TrajectoryLength()), make([]complex64, h.DataLength()))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Write(acq))

	for _, cut := range []int{10, AcquisitionHeaderSize + 3, buf.Len() - 1} {
		r := NewReader(bytes.NewReader(buf.Bytes()[:cut]))
		_, err := r.Next()
		require.Error(t, err, "cut at %d", cut)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "cut at %d", cut)
	}

	_, err = NewReader(bytes.NewReader(nil)).Next()
	assert.Equal(t, io.EOF, err)
}

func TestNewAcquisitionPayloadMismatch(t *testing.T) {
	h := testHeader(0)
	_, err := NewAcquisition(h, nil, make([]complex64, h.DataLength()))
	assert.Error(t, err)

	_, err = NewAcquisition(h, make([]float32, h.TrajectoryLength()), nil)
	assert.Error(t, err)
}
