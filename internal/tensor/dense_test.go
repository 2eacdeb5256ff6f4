package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	d, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, CPU)
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, d.Shape())
	assert.Equal(t, 3, d.Stride())
	assert.Equal(t, CPU, d.Device())
	assert.Equal(t, float32(6), d.At(1, 2))
	assert.Equal(t, float32(4), d.At(1, 0))
}

func TestFromSliceLengthMismatch(t *testing.T) {
	_, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2}, CPU)
	require.Error(t, err)
}

func TestNewRejectsInvalidShape(t *testing.T) {
	_, err := New[float32](Shape{0, 3}, CPU)
	require.Error(t, err)
	_, err = New[float32](Shape{}, CPU)
	require.Error(t, err)
}

func TestSetAt(t *testing.T) {
	d := Zeros[float64](Shape{3, 2}, CPU)
	d.Set(2.5, 2, 1)
	assert.Equal(t, 2.5, d.At(2, 1))
	assert.Equal(t, 0.0, d.At(0, 0))

	assert.Panics(t, func() { d.At(3, 0) })
	assert.Panics(t, func() { d.At(0) })
}

func TestFull(t *testing.T) {
	d := Full[float32](Shape{2, 2}, 1.5, CPU)
	for _, v := range d.Data() {
		assert.Equal(t, float32(1.5), v)
	}
}

func TestFlatTo2D(t *testing.T) {
	d, err := FromSlice([]float32{
		1, 2,
		3, 4,

		5, 6,
		7, 8,
	}, Shape{2, 2, 2}, CPU)
	require.NoError(t, err)

	flat := d.FlatTo2D()
	assert.Equal(t, Shape{4, 2}, flat.Shape())
	assert.Equal(t, float32(6), flat.At(2, 1))

	// The view shares the backing slice.
	flat.Set(42, 0, 0)
	assert.Equal(t, float32(42), d.At(0, 0, 0))
}

func TestFlatTo2DVector(t *testing.T) {
	v, err := FromSlice([]float32{1, 2, 3}, Shape{3}, CPU)
	require.NoError(t, err)

	flat := v.FlatTo2D()
	assert.Equal(t, Shape{1, 3}, flat.Shape())
	assert.Equal(t, float32(2), flat.At(0, 1))
}

func TestDeviceMask(t *testing.T) {
	assert.Equal(t, uint32(1), CPU.Mask())
	assert.Equal(t, uint32(0), CPU.Mask()&WebGPU.Mask())
	assert.NotZero(t, MaskAll&Metal.Mask())
}
