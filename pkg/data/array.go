package data

import (
	"fmt"
	"slices"
)

// Real is the set of real numeric element types.
type Real interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// Number is the set of element types an Array can hold.
type Number interface {
	Real | ~complex64 | ~complex128
}

// Array is a dense row-major n-dimensional array. The zero value is an
// empty one-dimensional array.
type Array[T Number] struct {
	shape []int
	data  []T
}

// NewArray wraps data with the given shape. The backing slice is not copied.
func NewArray[T Number](shape []int, data []T) (Array[T], error) {
	size := 1
	for _, s := range shape {
		if s < 0 {
			return Array[T]{}, fmt.Errorf("%w: negative dimension in shape %v", ErrShape, shape)
		}
		size *= s
	}
	if size != len(data) {
		return Array[T]{}, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrShape, shape, size, len(data))
	}
	return Array[T]{shape: slices.Clone(shape), data: data}, nil
}

// MustArray is like NewArray but panics on a shape mismatch.
func MustArray[T Number](shape []int, data []T) Array[T] {
	a, err := NewArray(shape, data)
	if err != nil {
		panic(err)
	}
	return a
}

// Vector returns a one-dimensional array over data.
func Vector[T Number](data []T) Array[T] {
	return Array[T]{shape: []int{len(data)}, data: data}
}

// Zeros returns a zero-filled array of the given shape.
func Zeros[T Number](shape ...int) Array[T] {
	size := 1
	for _, s := range shape {
		size *= s
	}
	if shape == nil {
		shape = []int{}
	}
	return Array[T]{shape: slices.Clone(shape), data: make([]T, size)}
}

// Shape returns a copy of the array shape.
func (a Array[T]) Shape() []int {
	if a.shape == nil {
		return []int{len(a.data)}
	}
	return slices.Clone(a.shape)
}

// Rank returns the number of dimensions.
func (a Array[T]) Rank() int {
	if a.shape == nil {
		return 1
	}
	return len(a.shape)
}

// Len returns the size of the leading dimension, 1 for a scalar.
func (a Array[T]) Len() int {
	if a.Rank() == 0 {
		return 1
	}
	return a.Size(0)
}

// Size returns the size of axis. Negative axes count from the end.
func (a Array[T]) Size(axis int) int {
	shape := a.Shape()
	if axis < 0 {
		axis += len(shape)
	}
	if axis < 0 || axis >= len(shape) {
		panic(fmt.Sprintf("axis %d out of range for rank %d", axis, len(shape)))
	}
	return shape[axis]
}

// Values returns the flat backing slice in row-major order.
func (a Array[T]) Values() []T {
	return a.data
}

// At returns the element at the given index.
func (a Array[T]) At(idx ...int) T {
	shape := a.Shape()
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("got %d indices for rank %d", len(idx), len(shape)))
	}
	off := 0
	for i, n := range idx {
		if n < 0 || n >= shape[i] {
			panic(fmt.Sprintf("index %d out of range for axis %d of size %d", n, i, shape[i]))
		}
		off = off*shape[i] + n
	}
	return a.data[off]
}

// Take returns the sub-array at index i of the last axis. The result has
// the shape of a without its last dimension.
func (a Array[T]) Take(i int) Array[T] {
	shape := a.Shape()
	last := shape[len(shape)-1]
	if i < 0 || i >= last {
		panic(fmt.Sprintf("index %d out of range for last axis of size %d", i, last))
	}

	out := make([]T, len(a.data)/max(last, 1))
	for j := range out {
		out[j] = a.data[j*last+i]
	}
	return Array[T]{shape: shape[:len(shape)-1], data: out}
}

// Fill returns a copy of a with every element set to v.
func (a Array[T]) Fill(v T) Array[T] {
	out := make([]T, len(a.data))
	for i := range out {
		out[i] = v
	}
	return Array[T]{shape: a.Shape(), data: out}
}

// Cast converts every element of a to To.
func Cast[To, From Real](a Array[From]) Array[To] {
	out := make([]To, len(a.data))
	for i, v := range a.data {
		out[i] = To(v)
	}
	return Array[To]{shape: a.Shape(), data: out}
}

// Map applies f to every element of a.
func Map[T Number](a Array[T], f func(T) T) Array[T] {
	out := make([]T, len(a.data))
	for i, v := range a.data {
		out[i] = f(v)
	}
	return Array[T]{shape: a.Shape(), data: out}
}
