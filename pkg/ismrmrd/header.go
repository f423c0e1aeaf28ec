// Package ismrmrd implements the fixed binary layout of ISMRMRD acquisition
// headers and a minimal reader/writer for streams of acquisitions.
//
// Based on the published ISMRMRD v1 definition of ISMRMRD_AcquisitionHeader,
// https://github.com/ismrmrd/ismrmrd/blob/master/include/ismrmrd/ismrmrd.h
//
// The header is a packed little-endian structure. Type translation:
//
// C        Go
// ----------------
// uint16_t uint16
// uint32_t uint32
// uint64_t uint64
// int32_t  int32
// float    float32
package ismrmrd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	// PositionLength is the number of components of a spatial vector.
	PositionLength = 3
	// PhysiologyTimestamps is the number of physiology time stamps per readout.
	PhysiologyTimestamps = 3
	// UserInts is the number of user integers per readout.
	UserInts = 8
	// UserFloats is the number of user floats per readout.
	UserFloats = 8
	// ChannelMasks is the number of 64 bit words in the channel mask.
	ChannelMasks = 16
)

// AcquisitionHeaderSize is the size in bytes of one encoded AcquisitionHeader.
const AcquisitionHeaderSize = 340

// ByteOrder of every encoded header.
var ByteOrder binary.ByteOrder = binary.LittleEndian

// ErrHeaderSize is returned when a raw header record does not have the
// fixed ISMRMRD layout size.
var ErrHeaderSize = errors.New("ismrmrd: invalid acquisition header size")

// EncodingCounters holds the loop counters of one readout.
type EncodingCounters struct {
	KspaceEncodeStep1 uint16           // phase encoding line number
	KspaceEncodeStep2 uint16           // partition encoding number
	Average           uint16           // signal average number
	Slice             uint16           // imaging slice number
	Contrast          uint16           // echo number in multi-echo
	Phase             uint16           // cardiac phase number
	Repetition        uint16           // dynamic number for dynamic scanning
	Set               uint16           // flow encoding set
	Segment           uint16           // segment number for segmented acquisition
	User              [UserInts]uint16 // free user parameters
}

// AcquisitionHeader is the per-readout header as laid out on disk.
type AcquisitionHeader struct {
	Version              uint16                       // first unsigned int indicates the version
	Flags                uint64                       // bit field with flags
	MeasurementUID       uint32                       // unique ID for the measurement
	ScanCounter          uint32                       // current acquisition number in the measurement
	AcquisitionTimeStamp uint32                       // acquisition clock
	PhysiologyTimeStamp  [PhysiologyTimestamps]uint32 // physiology time stamps, e.g. ecg, breating, etc.
	NumberOfSamples      uint16                       // number of samples acquired
	AvailableChannels    uint16                       // available coils
	ActiveChannels       uint16                       // active coils on current acquisiton
	ChannelMask          [ChannelMasks]uint64         // mask to indicate which channels are active
	DiscardPre           uint16                       // samples to be discarded at the beginning
	DiscardPost          uint16                       // samples to be discarded at the end
	CenterSample         uint16                       // sample at the center of k-space
	EncodingSpaceRef     uint16                       // reference to an encoding space
	TrajectoryDimensions uint16                       // indicates the dimensionality of the trajectory vector (0 means no trajectory)
	SampleTimeUs         float32                      // time between samples in micro seconds
	Position             [PositionLength]float32      // three-dimensional spatial offsets from isocenter
	ReadDir              [PositionLength]float32      // directional cosines of the readout/frequency encoding
	PhaseDir             [PositionLength]float32      // directional cosines of the phase
	SliceDir             [PositionLength]float32      // directional cosines of the slice direction
	PatientTablePosition [PositionLength]float32      // patient table off-center
	Idx                  EncodingCounters             // encoding loop counters
	UserInt              [UserInts]int32              // free user parameters
	UserFloat            [UserFloats]float32          // free user parameters
}

// AcquisitionFlag is a bit position in AcquisitionHeader.Flags, counted from 1.
type AcquisitionFlag uint

const (
	FlagFirstInEncodeStep1 AcquisitionFlag = 1
	FlagLastInEncodeStep1  AcquisitionFlag = 2
	FlagFirstInSlice       AcquisitionFlag = 7
	FlagLastInSlice        AcquisitionFlag = 8
	FlagFirstInRepetition  AcquisitionFlag = 13
	FlagLastInRepetition   AcquisitionFlag = 14
	FlagIsNoiseMeasurement AcquisitionFlag = 19
	FlagIsParallelCalib    AcquisitionFlag = 20
	FlagIsNavigationData   AcquisitionFlag = 23
	FlagIsPhasecorrData    AcquisitionFlag = 24
	FlagLastInMeasurement  AcquisitionFlag = 25
	FlagIsDummyscanData    AcquisitionFlag = 27
	FlagIsRTFeedbackData   AcquisitionFlag = 28
	FlagIsSurfaceCoilCorr  AcquisitionFlag = 29
)

// Mask returns the bit mask of the flag.
func (f AcquisitionFlag) Mask() uint64 {
	if f == 0 || f > 64 {
		return 0
	}
	return 1 << (f - 1)
}

// Has reports whether flag is set in the header.
func (h *AcquisitionHeader) Has(flag AcquisitionFlag) bool {
	return h.Flags&flag.Mask() != 0
}

// Set sets flag in the header.
func (h *AcquisitionHeader) Set(flag AcquisitionFlag) {
	h.Flags |= flag.Mask()
}

// Clear clears flag in the header.
func (h *AcquisitionHeader) Clear(flag AcquisitionFlag) {
	h.Flags &^= flag.Mask()
}

// TrajectoryLength returns the number of float32 values of the trajectory
// that follows the header in a stream.
func (h *AcquisitionHeader) TrajectoryLength() int {
	return int(h.TrajectoryDimensions) * int(h.NumberOfSamples)
}

// DataLength returns the number of complex samples that follow the trajectory.
func (h *AcquisitionHeader) DataLength() int {
	return int(h.NumberOfSamples) * int(h.ActiveChannels)
}

// EncodeHeader returns the packed binary form of h.
func EncodeHeader(h *AcquisitionHeader) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, AcquisitionHeaderSize))
	if err := binary.Write(buf, ByteOrder, h); err != nil {
		return nil, fmt.Errorf("encoding acquisition header: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeHeader decodes a single packed header.
func DecodeHeader(raw []byte) (AcquisitionHeader, error) {
	var h AcquisitionHeader
	if len(raw) != AcquisitionHeaderSize {
		return h, fmt.Errorf("%w: got %d bytes, want %d", ErrHeaderSize, len(raw), AcquisitionHeaderSize)
	}
	if err := binary.Read(bytes.NewReader(raw), ByteOrder, &h); err != nil {
		return h, fmt.Errorf("decoding acquisition header: %w", err)
	}
	return h, nil
}

// DecodeHeaders reinterprets buf as n consecutive packed headers in one pass.
// The buffer length must be exactly n*AcquisitionHeaderSize.
func DecodeHeaders(buf []byte, n int) ([]AcquisitionHeader, error) {
	if n < 0 || len(buf) != n*AcquisitionHeaderSize {
		return nil, fmt.Errorf("%w: buffer of %d bytes does not hold %d headers of %d bytes",
			ErrHeaderSize, len(buf), n, AcquisitionHeaderSize)
	}

	headers := make([]AcquisitionHeader, n)
	if err := binary.Read(bytes.NewReader(buf), ByteOrder, headers); err != nil {
		return nil, fmt.Errorf("decoding %d acquisition headers: %w", n, err)
	}

	log.Debugf("decoded %d acquisition headers (%d bytes)", n, len(buf))
	return headers, nil
}
