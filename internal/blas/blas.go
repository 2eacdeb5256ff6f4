// Package blas defines the dense linear-algebra capability the dot engine
// dispatches to, and a per-device registry of implementations.
//
// The interface speaks the column-major calling convention of the classic
// BLAS libraries. Callers holding row-major data are expected to perform
// the usual operand swap; the dot engine documents and owns that swap.
package blas

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/fuse-ml/fuse/internal/tensor"
)

// ErrNoEngine is returned when no engine is registered for a device.
var ErrNoEngine = errors.New("no linear-algebra engine for device")

// Engine computes dense matrix products for one element type on one device.
// All matrices are column-major with explicit leading dimensions. Transpose
// flags select op(X) = X or Xᵀ.
//
// Engines are assumed correctly configured: an invalid call (bad leading
// dimension, foreign pointer) is a fatal programming error, not something
// an engine reports back.
type Engine[T tensor.Elem] interface {
	// Gemm computes C = alpha·op(A)·op(B) + beta·C where op(A) is m×k,
	// op(B) is k×n and C is m×n.
	Gemm(transA, transB bool, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int)

	// Gemv computes y = alpha·op(A)·x + beta·y where A is m×n.
	Gemv(trans bool, m, n int, alpha T, a []T, lda int, x []T, incX int, beta T, y []T, incY int)

	// Ger computes A += alpha·x·yᵀ where A is m×n. The classic rank-1
	// update has no beta coefficient; accumulation policies that need one
	// must route through Gemm instead.
	Ger(m, n int, alpha T, x []T, incX int, y []T, incY int, a []T, lda int)
}

var (
	mu        sync.RWMutex
	engines32 = map[tensor.Device]Engine[float32]{}
	engines64 = map[tensor.Device]Engine[float64]{}
)

// Register32 installs the float32 engine for a device, replacing any
// previous registration.
func Register32(d tensor.Device, e Engine[float32]) {
	mu.Lock()
	defer mu.Unlock()
	engines32[d] = e
}

// Register64 installs the float64 engine for a device.
func Register64(d tensor.Device, e Engine[float64]) {
	mu.Lock()
	defer mu.Unlock()
	engines64[d] = e
}

// For returns the engine registered for the device and element type.
// Engines are registered for the base types float32 and float64.
func For[T tensor.Elem](d tensor.Device) (Engine[T], error) {
	mu.RLock()
	defer mu.RUnlock()

	var zero T
	var e any
	switch any(zero).(type) {
	case float32:
		if eng, ok := engines32[d]; ok {
			e = eng
		}
	case float64:
		if eng, ok := engines64[d]; ok {
			e = eng
		}
	}
	if e == nil {
		return nil, errors.Wrapf(ErrNoEngine, "device %s", d)
	}
	eng, ok := e.(Engine[T])
	if !ok {
		return nil, errors.Wrapf(ErrNoEngine, "device %s has no engine for the element type", d)
	}
	return eng, nil
}
