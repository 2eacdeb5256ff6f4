//go:build !windows

// Package webgpu implements the float32 linear-algebra engine on a WebGPU
// device. The native library currently ships for windows only; on other
// platforms New reports the engine unavailable.
package webgpu

import "github.com/pkg/errors"

// Engine dispatches the column-major gemm shader on a WebGPU device.
type Engine struct{}

// New reports that no WebGPU runtime is available on this platform.
func New() (*Engine, error) {
	return nil, errors.New("webgpu: engine requires the windows native library")
}

// Register is a no-op without a runtime.
func (e *Engine) Register() {}

// Release is a no-op without a runtime.
func (e *Engine) Release() {}
