package ismrmrd

import "fmt"

// Acquisition is one readout: the raw packed header followed by its
// trajectory and complex samples.
type Acquisition struct {
	// Head is the packed header, AcquisitionHeaderSize bytes.
	Head []byte

	// Traj holds TrajectoryDimensions values per sample, sample-major.
	Traj []float32

	// Data holds NumberOfSamples samples per active channel, channel-major.
	Data []complex64
}

// NewAcquisition encodes h and checks that traj and data match the sizes it
// announces.
func NewAcquisition(h AcquisitionHeader, traj []float32, data []complex64) (Acquisition, error) {
	if len(traj) != h.TrajectoryLength() {
		return Acquisition{}, fmt.Errorf("trajectory has %d values, header expects %d", len(traj), h.TrajectoryLength())
	}
	if len(data) != h.DataLength() {
		return Acquisition{}, fmt.Errorf("data has %d samples, header expects %d", len(data), h.DataLength())
	}

	head, err := EncodeHeader(&h)
	if err != nil {
		return Acquisition{}, err
	}
	return Acquisition{Head: head, Traj: traj, Data: data}, nil
}

// Header decodes the packed header of the acquisition.
func (a Acquisition) Header() (AcquisitionHeader, error) {
	return DecodeHeader(a.Head)
}
