// Package data provides containers for MR acquisition data: per readout
// header information, spatial dimensions, gridded data and spectra.
//
// All containers are values that are fully set up by their constructors.
// Fields holding arrays are not deep copied.
package data

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Data pairs a payload with its header.
type Data[H any] struct {
	values Array[float64]
	header H
}

// NewData returns a Data holding values and header.
func NewData[H any](values Array[float64], header H) Data[H] {
	return Data[H]{values: values, header: header}
}

// Values returns the payload.
func (d Data[H]) Values() Array[float64] {
	return d.values
}

// Header returns the header.
func (d Data[H]) Header() H {
	return d.header
}

// GriddedData is data on a regular grid with dimensions
// (other, coils, z, y, x). Its header is always a QHeader.
type GriddedData struct {
	Data[QHeader]
}

// NewGriddedData creates gridded data from values and any of the supported
// header variants, converting the header to a QHeader.
func NewGriddedData(values Array[float64], header Header) (*GriddedData, error) {
	var qheader QHeader
	switch h := header.(type) {
	case KHeader:
		qheader = QHeaderFromKHeader(h)
	case IHeader:
		qheader = QHeaderFromIHeader(h)
	case QHeader:
		qheader = h
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnrecognizedHeader, header)
	}

	log.Debugf("gridded data of shape %v with fov %+v", values.Shape(), qheader.FOV)
	return &GriddedData{Data: NewData(values, qheader)}, nil
}
