// Copyright 2025 Fuse ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense buffers the
// expression engine evaluates against.
//
// A Dense tensor is a row-major, device-tagged buffer with an explicit row
// stride on its lowest two axes. Tensors do not compute anything by
// themselves; computation is expressed through the expr package and
// evaluated into a destination tensor.
//
// Example:
//
//	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
//	b := tensor.Zeros[float32](tensor.Shape{2, 2}, tensor.CPU)
package tensor

import (
	"github.com/fuse-ml/fuse/internal/tensor"
)

// Elem is the constraint for tensor element types: float32 or float64.
type Elem = tensor.Elem

// Shape represents the per-axis extents of a tensor, highest axis first.
type Shape = tensor.Shape

// Device represents the compute device a buffer is tagged with.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Dense is a dense row-major tensor.
type Dense[T Elem] = tensor.Dense[T]

// New allocates a zero-filled tensor with the given shape.
func New[T Elem](shape Shape, device Device) (*Dense[T], error) {
	return tensor.New[T](shape, device)
}

// FromSlice creates a tensor backed by a copy of data.
func FromSlice[T Elem](data []T, shape Shape, device Device) (*Dense[T], error) {
	return tensor.FromSlice(data, shape, device)
}

// Zeros allocates a zero-filled tensor, panicking on an invalid shape.
func Zeros[T Elem](shape Shape, device Device) *Dense[T] {
	return tensor.Zeros[T](shape, device)
}

// Full allocates a tensor filled with value.
func Full[T Elem](shape Shape, value T, device Device) *Dense[T] {
	return tensor.Full(shape, value, device)
}
