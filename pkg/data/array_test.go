package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArray(t *testing.T) {
	a, err := NewArray([]int{2, 3}, []float64{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 3, a.Size(-1))
	assert.Equal(t, 5.0, a.At(1, 2))

	_, err = NewArray([]int{2, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewArray([]int{-1}, []float64{})
	assert.ErrorIs(t, err, ErrShape)

	assert.Panics(t, func() { MustArray([]int{4}, []int8{1}) })
}

func TestArrayZeroValue(t *testing.T) {
	var a Array[uint16]
	assert.Equal(t, []int{0}, a.Shape())
	assert.Equal(t, 0, a.Len())

	scalar := Zeros[float64]()
	assert.Equal(t, 0, scalar.Rank())
	assert.Equal(t, 1, scalar.Len())
	assert.Len(t, scalar.Values(), 1)
}

func TestArrayShapeIsCopied(t *testing.T) {
	shape := []int{2, 2}
	a := MustArray(shape, []int{1, 2, 3, 4})
	shape[0] = 7
	assert.Equal(t, []int{2, 2}, a.Shape())

	s := a.Shape()
	s[1] = 9
	assert.Equal(t, []int{2, 2}, a.Shape())
}

func TestArrayTake(t *testing.T) {
	a := MustArray([]int{2, 2, 3}, []int{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
		9, 10, 11,
	})

	last := a.Take(2)
	assert.Equal(t, []int{2, 2}, last.Shape())
	assert.Equal(t, []int{2, 5, 8, 11}, last.Values())
	assert.Panics(t, func() { a.Take(3) })
}

func TestArrayFillCastMap(t *testing.T) {
	a := Vector([]uint16{1, 2, 3})

	filled := a.Fill(3)
	assert.Equal(t, []uint16{3, 3, 3}, filled.Values())
	assert.Equal(t, []uint16{1, 2, 3}, a.Values())

	f := Cast[float32](a)
	assert.Equal(t, []float32{1, 2, 3}, f.Values())

	m := Map(Vector([]complex128{1i, 2}), func(v complex128) complex128 { return v * 2 })
	assert.Equal(t, []complex128{2i, 4}, m.Values())
}

func TestArrayAtPanics(t *testing.T) {
	a := Zeros[float64](2, 2)
	assert.Panics(t, func() { a.At(0) })
	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.Size(2) })
}
