package data

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAcquisitions is returned when a batch of acquisitions is empty.
	ErrEmptyAcquisitions = errors.New("acquisition list must not be empty")

	// ErrShape is returned when an array does not have the expected shape.
	ErrShape = errors.New("invalid shape")

	// ErrUnrecognizedHeader is returned when a header is not one of the
	// KHeader, IHeader or QHeader variants.
	ErrUnrecognizedHeader = errors.New("unrecognized header type")
)

// ShapeError reports a dimension that does not have the expected size.
type ShapeError struct {
	Op   string
	Axis int
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	if e.Axis == -1 {
		return fmt.Sprintf("%s: expected last dimension to be %d, got %d", e.Op, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: expected dimension %d to be %d, got %d", e.Op, e.Axis, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}
