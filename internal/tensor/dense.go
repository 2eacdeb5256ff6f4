package tensor

import "fmt"

// Elem is the constraint for tensor element types. The engine works in
// floating point only; the BLAS layer has no integer kernels.
type Elem interface {
	~float32 | ~float64
}

// Dense is a dense, row-major, device-tagged buffer. Axes above the lowest
// two are packed; the lowest two are addressed through an explicit row
// stride so a row of a view can be wider than its extent.
type Dense[T Elem] struct {
	data   []T
	shape  Shape
	stride int
	device Device
}

// New allocates a zero-filled tensor with the given shape.
func New[T Elem](shape Shape, device Device) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Dense[T]{
		data:   make([]T, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.Cols(),
		device: device,
	}, nil
}

// FromSlice creates a tensor backed by a copy of data.
func FromSlice[T Elem](data []T, shape Shape, device Device) (*Dense[T], error) {
	d, err := New[T](shape, device)
	if err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	copy(d.data, data)
	return d, nil
}

// Zeros allocates a zero-filled tensor, panicking on an invalid shape.
// Convenience for tests and examples where the shape is a literal.
func Zeros[T Elem](shape Shape, device Device) *Dense[T] {
	d, err := New[T](shape, device)
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return d
}

// Full allocates a tensor filled with value.
func Full[T Elem](shape Shape, value T, device Device) *Dense[T] {
	d := Zeros[T](shape, device)
	for i := range d.data {
		d.data[i] = value
	}
	return d
}

// Shape returns the tensor's shape.
func (d *Dense[T]) Shape() Shape {
	return d.shape
}

// Rank returns the number of axes.
func (d *Dense[T]) Rank() int {
	return len(d.shape)
}

// Stride returns the row stride of the lowest two axes.
func (d *Dense[T]) Stride() int {
	return d.stride
}

// Device returns the device the buffer is tagged with.
func (d *Dense[T]) Device() Device {
	return d.device
}

// Data returns the backing slice.
func (d *Dense[T]) Data() []T {
	return d.data
}

// Len returns the extent of a rank-1 tensor.
func (d *Dense[T]) Len() int {
	if len(d.shape) != 1 {
		panic(fmt.Sprintf("tensor: Len on rank-%d tensor", len(d.shape)))
	}
	return d.shape[0]
}

// Rows returns the row count of the two-dimensional view.
func (d *Dense[T]) Rows() int {
	return d.shape.Rows()
}

// Cols returns the lowest-axis extent.
func (d *Dense[T]) Cols() int {
	return d.shape.Cols()
}

// At returns the element at the given coordinates. The number of indices
// must match the rank.
func (d *Dense[T]) At(idx ...int) T {
	return d.data[d.index(idx)]
}

// Set stores v at the given coordinates.
func (d *Dense[T]) Set(v T, idx ...int) {
	d.data[d.index(idx)] = v
}

func (d *Dense[T]) index(idx []int) int {
	if len(idx) != len(d.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank-%d tensor", len(idx), len(d.shape)))
	}
	y := 0
	for i := 0; i < len(idx)-1; i++ {
		if idx[i] < 0 || idx[i] >= d.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d of %v", idx[i], i, d.shape))
		}
		y = y*d.shape[i] + idx[i]
	}
	x := idx[len(idx)-1]
	if x < 0 || x >= d.shape.Cols() {
		panic(fmt.Sprintf("tensor: index %d out of range for axis %d of %v", x, len(idx)-1, d.shape))
	}
	return y*d.stride + x
}

// FlatTo2D returns a rank-2 view of the tensor, collapsing all axes above
// the lowest into rows. The view shares the backing slice. A rank-1 tensor
// flattens to a single row, which is what the dot engine's fallback path
// needs.
func (d *Dense[T]) FlatTo2D() *Dense[T] {
	return &Dense[T]{
		data:   d.data,
		shape:  Shape{d.Rows(), d.Cols()},
		stride: d.stride,
		device: d.device,
	}
}
