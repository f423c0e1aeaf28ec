package data

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"girfdata/pkg/ismrmrd"
)

// KDimSortLabels are the encoding counters k-space data is sorted by, in
// sort order.
var KDimSortLabels = []string{
	"k1",
	"k2",
	"average",
	"slice",
	"contrast",
	"phase",
	"repetition",
	"set",
}

// AcqIdx holds the encoding loop counters of each readout.
type AcqIdx struct {
	K1         Array[uint16]
	K2         Array[uint16]
	Average    Array[uint16]
	Slice      Array[uint16]
	Contrast   Array[uint16]
	Phase      Array[uint16]
	Repetition Array[uint16]
	Set        Array[uint16]
	Segment    Array[uint16]

	// User has shape (N, 8).
	User Array[uint16]
}

// Label returns the counter named by one of KDimSortLabels or "segment".
func (idx *AcqIdx) Label(name string) (Array[uint16], error) {
	switch name {
	case "k1":
		return idx.K1, nil
	case "k2":
		return idx.K2, nil
	case "average":
		return idx.Average, nil
	case "slice":
		return idx.Slice, nil
	case "contrast":
		return idx.Contrast, nil
	case "phase":
		return idx.Phase, nil
	case "repetition":
		return idx.Repetition, nil
	case "set":
		return idx.Set, nil
	case "segment":
		return idx.Segment, nil
	default:
		return Array[uint16]{}, fmt.Errorf("unknown acquisition index label %q", name)
	}
}

// AcqInfo holds the header information of each readout as a structure of
// arrays. Every field has leading dimension N, the number of readouts.
type AcqInfo struct {
	Idx AcqIdx

	AcquisitionTimeStamp Array[uint32]
	ActiveChannels       Array[uint16]
	AvailableChannels    Array[uint16]
	CenterSample         Array[uint16]
	ChannelMask          Array[uint64] // (N, 16)
	DiscardPost          Array[uint16]
	DiscardPre           Array[uint16]
	EncodingSpaceRef     Array[uint16]
	Flags                Array[uint64]
	MeasurementUID       Array[uint32]

	// NumberOfSamples is the number of readout sample points per readout.
	// Readouts may have different numbers of sample points.
	NumberOfSamples Array[uint16]

	PatientTablePosition SpatialDimension[Array[float32]]
	PhaseDir             SpatialDimension[Array[float32]]
	PhysiologyTimeStamp  Array[uint32] // (N, 3)
	Position             SpatialDimension[Array[float32]]
	ReadDir              SpatialDimension[Array[float32]]
	SampleTimeUs         Array[float32]
	ScanCounter          Array[uint32]
	SliceDir             SpatialDimension[Array[float32]]

	// TrajectoryDimensions is always 3: only 3D trajectories are supported,
	// kz always exists even if it was not acquired.
	TrajectoryDimensions Array[uint16]

	UserFloat Array[float32] // (N, 8)
	UserInt   Array[int32]   // (N, 8)
	Version   Array[uint16]
}

// Len returns the number of readouts.
func (a *AcqInfo) Len() int {
	return a.ScanCounter.Len()
}

// AcqInfoFromISMRMRDAcquisitions reads the headers of acqs and transposes
// them into an AcqInfo. At least one acquisition is required.
func AcqInfoFromISMRMRDAcquisitions(acqs []ismrmrd.Acquisition) (*AcqInfo, error) {
	if len(acqs) == 0 {
		return nil, ErrEmptyAcquisitions
	}

	// Array of structs first: all raw headers are concatenated and decoded
	// in a single pass, then every field is gathered into its own array.
	buf := make([]byte, 0, len(acqs)*ismrmrd.AcquisitionHeaderSize)
	for i, acq := range acqs {
		if len(acq.Head) != ismrmrd.AcquisitionHeaderSize {
			return nil, fmt.Errorf("acquisition %d: %w: got %d bytes, want %d",
				i, ismrmrd.ErrHeaderSize, len(acq.Head), ismrmrd.AcquisitionHeaderSize)
		}
		buf = append(buf, acq.Head...)
	}
	headers, err := ismrmrd.DecodeHeaders(buf, len(acqs))
	if err != nil {
		return nil, err
	}

	type header = ismrmrd.AcquisitionHeader

	idx := AcqIdx{
		K1:         gather(headers, func(h *header) uint16 { return h.Idx.KspaceEncodeStep1 }),
		K2:         gather(headers, func(h *header) uint16 { return h.Idx.KspaceEncodeStep2 }),
		Average:    gather(headers, func(h *header) uint16 { return h.Idx.Average }),
		Slice:      gather(headers, func(h *header) uint16 { return h.Idx.Slice }),
		Contrast:   gather(headers, func(h *header) uint16 { return h.Idx.Contrast }),
		Phase:      gather(headers, func(h *header) uint16 { return h.Idx.Phase }),
		Repetition: gather(headers, func(h *header) uint16 { return h.Idx.Repetition }),
		Set:        gather(headers, func(h *header) uint16 { return h.Idx.Set }),
		Segment:    gather(headers, func(h *header) uint16 { return h.Idx.Segment }),
		User:       gatherVector(headers, func(h *header) []uint16 { return h.Idx.User[:] }),
	}

	info := &AcqInfo{
		Idx:                  idx,
		AcquisitionTimeStamp: gather(headers, func(h *header) uint32 { return h.AcquisitionTimeStamp }),
		ActiveChannels:       gather(headers, func(h *header) uint16 { return h.ActiveChannels }),
		AvailableChannels:    gather(headers, func(h *header) uint16 { return h.AvailableChannels }),
		CenterSample:         gather(headers, func(h *header) uint16 { return h.CenterSample }),
		ChannelMask:          gatherVector(headers, func(h *header) []uint64 { return h.ChannelMask[:] }),
		DiscardPost:          gather(headers, func(h *header) uint16 { return h.DiscardPost }),
		DiscardPre:           gather(headers, func(h *header) uint16 { return h.DiscardPre }),
		EncodingSpaceRef:     gather(headers, func(h *header) uint16 { return h.EncodingSpaceRef }),
		Flags:                gather(headers, func(h *header) uint64 { return h.Flags }),
		MeasurementUID:       gather(headers, func(h *header) uint32 { return h.MeasurementUID }),
		NumberOfSamples:      gather(headers, func(h *header) uint16 { return h.NumberOfSamples }),
		PhysiologyTimeStamp:  gatherVector(headers, func(h *header) []uint32 { return h.PhysiologyTimeStamp[:] }),
		SampleTimeUs:         gather(headers, func(h *header) float32 { return h.SampleTimeUs }),
		ScanCounter:          gather(headers, func(h *header) uint32 { return h.ScanCounter }),
		UserFloat:            gatherVector(headers, func(h *header) []float32 { return h.UserFloat[:] }),
		UserInt:              gatherVector(headers, func(h *header) []int32 { return h.UserInt[:] }),
		Version:              gather(headers, func(h *header) uint16 { return h.Version }),
	}

	// see AcqInfo.TrajectoryDimensions
	info.TrajectoryDimensions = gather(headers, func(h *header) uint16 { return h.TrajectoryDimensions }).Fill(3)

	vectors := []struct {
		dst *SpatialDimension[Array[float32]]
		get func(h *header) []float32
	}{
		{&info.PatientTablePosition, func(h *header) []float32 { return h.PatientTablePosition[:] }},
		{&info.PhaseDir, func(h *header) []float32 { return h.PhaseDir[:] }},
		{&info.Position, func(h *header) []float32 { return h.Position[:] }},
		{&info.ReadDir, func(h *header) []float32 { return h.ReadDir[:] }},
		{&info.SliceDir, func(h *header) []float32 { return h.SliceDir[:] }},
	}
	for _, v := range vectors {
		// all spatial dimensions are float32
		sd, err := SpatialDimensionFromArrayXYZ(Cast[float32](gatherVector(headers, v.get)), nil)
		if err != nil {
			return nil, err
		}
		*v.dst = sd
	}

	log.Debugf("acquisition info built from %d readouts", len(headers))
	return info, nil
}

// gather collects one scalar field of every header into an array of shape (N).
func gather[T Number](headers []ismrmrd.AcquisitionHeader, field func(*ismrmrd.AcquisitionHeader) T) Array[T] {
	out := make([]T, len(headers))
	for i := range headers {
		out[i] = field(&headers[i])
	}
	return Vector(out)
}

// gatherVector collects one fixed-length array field of every header into
// an array of shape (N, width).
func gatherVector[T Number](headers []ismrmrd.AcquisitionHeader, field func(*ismrmrd.AcquisitionHeader) []T) Array[T] {
	if len(headers) == 0 {
		return Zeros[T](0, 0)
	}
	width := len(field(&headers[0]))
	out := make([]T, 0, len(headers)*width)
	for i := range headers {
		out = append(out, field(&headers[i])...)
	}
	return MustArray([]int{len(headers), width}, out)
}
