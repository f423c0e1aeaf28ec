package data

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// XYZ is implemented by anything exposing x, y and z components, for
// example a matrix size or a field of view.
type XYZ[T any] interface {
	GetX() T
	GetY() T
	GetZ() T
}

// SpatialDimension holds a value per spatial axis, stored in (z, y, x) order.
// T is either a scalar or an Array; all three fields share the same shape.
type SpatialDimension[T any] struct {
	Z T
	Y T
	X T
}

// GetX returns the x component.
func (s SpatialDimension[T]) GetX() T { return s.X }

// GetY returns the y component.
func (s SpatialDimension[T]) GetY() T { return s.Y }

// GetZ returns the z component.
func (s SpatialDimension[T]) GetZ() T { return s.Z }

// Apply returns a new SpatialDimension with f applied to each component.
func (s SpatialDimension[T]) Apply(f func(T) T) SpatialDimension[T] {
	return SpatialDimension[T]{Z: f(s.Z), Y: f(s.Y), X: f(s.X)}
}

// SpatialDimensionFromXYZ copies the components of src. If conversion is
// not nil it is called for each component.
func SpatialDimensionFromXYZ[T any](src XYZ[T], conversion func(T) T) SpatialDimension[T] {
	if conversion != nil {
		return SpatialDimension[T]{Z: conversion(src.GetZ()), Y: conversion(src.GetY()), X: conversion(src.GetX())}
	}
	return SpatialDimension[T]{Z: src.GetZ(), Y: src.GetY(), X: src.GetX()}
}

// SpatialDimensionFromArrayXYZ splits the last axis of a, which must have
// size 3 and be ordered (x, y, z). If conversion is not nil it is called for
// each component.
func SpatialDimensionFromArrayXYZ[T Number](a Array[T], conversion func(Array[T]) Array[T]) (SpatialDimension[Array[T]], error) {
	if a.Rank() == 0 {
		return SpatialDimension[Array[T]]{}, fmt.Errorf("%w: scalar has no last dimension", ErrShape)
	}
	if n := a.Size(-1); n != 3 {
		return SpatialDimension[Array[T]]{}, &ShapeError{Op: "spatial dimension from array", Axis: -1, Got: n, Want: 3}
	}

	x, y, z := a.Take(0), a.Take(1), a.Take(2)
	if conversion != nil {
		x, y, z = conversion(x), conversion(y), conversion(z)
	}
	return SpatialDimension[Array[T]]{Z: z, Y: y, X: x}, nil
}

// SpatialDimensionFromMatrixXYZ splits the columns of an N×3 matrix whose
// columns are ordered (x, y, z).
func SpatialDimensionFromMatrixXYZ(m mat.Matrix) (SpatialDimension[Array[float64]], error) {
	rows, cols := m.Dims()
	if cols != 3 {
		return SpatialDimension[Array[float64]]{}, &ShapeError{Op: "spatial dimension from matrix", Axis: -1, Got: cols, Want: 3}
	}

	col := func(j int) Array[float64] {
		return Vector(mat.Col(make([]float64, rows), j, m))
	}
	return SpatialDimension[Array[float64]]{Z: col(2), Y: col(1), X: col(0)}, nil
}
