// Copyright 2025 Fuse ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package blas exposes the dense linear-algebra capability the dot engine
// dispatches to. A CPU engine is registered by default; engines for other
// devices register themselves against the device tag.
package blas

import (
	"github.com/fuse-ml/fuse/internal/blas"
	"github.com/fuse-ml/fuse/tensor"
)

// ErrNoEngine is returned when no engine is registered for a device.
var ErrNoEngine = blas.ErrNoEngine

// Engine computes dense matrix products for one element type on one
// device, in the column-major calling convention.
type Engine[T tensor.Elem] = blas.Engine[T]

// Register32 installs the float32 engine for a device.
func Register32(d tensor.Device, e Engine[float32]) { blas.Register32(d, e) }

// Register64 installs the float64 engine for a device.
func Register64(d tensor.Device, e Engine[float64]) { blas.Register64(d, e) }

// For returns the engine registered for the device and element type.
func For[T tensor.Elem](d tensor.Device) (Engine[T], error) { return blas.For[T](d) }
