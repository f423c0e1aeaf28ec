package data

// Header is implemented by the header variants a GriddedData can be built
// from: KHeader, IHeader and QHeader.
type Header interface {
	header()
}

// KHeader is the header of k-space data.
type KHeader struct {
	// ReconFOV is the field of view of the reconstructed image in m.
	ReconFOV SpatialDimension[float64]

	// EncodingFOV is the field of view of the encoded k-space in m.
	EncodingFOV SpatialDimension[float64]

	ReconMatrix    SpatialDimension[int]
	EncodingMatrix SpatialDimension[int]

	TR []float64 // repetition times in s
	TE []float64 // echo times in s
	TI []float64 // inversion times in s
	FA []float64 // flip angles in rad

	// AcqInfo is the per readout information, nil if unknown.
	AcqInfo *AcqInfo
}

// IHeader is the header of reconstructed image data.
type IHeader struct {
	FOV SpatialDimension[float64]
	TE  []float64
	TI  []float64
	FA  []float64
}

// QHeader is the header of quantitative and gridded data. GriddedData
// always stores its header in this form.
type QHeader struct {
	FOV SpatialDimension[float64]
}

func (KHeader) header() {}
func (IHeader) header() {}
func (QHeader) header() {}

// QHeaderFromKHeader returns the quantitative header of k-space data.
func QHeaderFromKHeader(h KHeader) QHeader {
	return QHeader{FOV: h.ReconFOV}
}

// QHeaderFromIHeader returns the quantitative header of image data.
func QHeaderFromIHeader(h IHeader) QHeader {
	return QHeader{FOV: h.FOV}
}
