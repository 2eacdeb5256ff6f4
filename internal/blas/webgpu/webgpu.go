//go:build windows

// Package webgpu implements the float32 linear-algebra engine on a WebGPU
// device via go-webgpu's zero-CGO bindings. Gemv and rank-1 updates route
// through the gemm shader as degenerate matrix products.
package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/fuse-ml/fuse/internal/blas"
	"github.com/fuse-ml/fuse/internal/tensor"
)

// Engine dispatches the column-major gemm shader on a WebGPU device.
// A fault in a backend call is not recoverable; the engine panics rather
// than returning degraded results.
type Engine struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu        sync.Mutex
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
}

var _ blas.Engine[float32] = (*Engine)(nil)

// New initializes a WebGPU engine, requesting a high-performance adapter.
// Returns an error when no adapter or native library is available.
func New() (eng *Engine, err error) {
	// The native library panics rather than erroring when absent.
	defer func() {
		if r := recover(); r != nil {
			eng = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}
	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}
	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Engine{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}, nil
}

// Register installs the engine for the WebGPU device tag.
func (e *Engine) Register() {
	blas.Register32(tensor.WebGPU, e)
}

// Release frees the engine's device objects.
func (e *Engine) Release() {
	e.device.Release()
	e.adapter.Release()
	e.instance.Release()
}

// Gemm computes C = alpha·op(A)·op(B) + beta·C, column-major.
func (e *Engine) Gemm(transA, transB bool, m, n, k int, alpha float32, a []float32, lda int, b []float32, ldb int, beta float32, c []float32, ldc int) {
	params := make([]byte, 48) // 8×u32 + 2×f32, padded to 16 bytes
	for i, v := range []int{m, n, k, lda, ldb, ldc} {
		binary.LittleEndian.PutUint32(params[i*4:], uint32(v))
	}
	binary.LittleEndian.PutUint32(params[24:], boolU32(transA))
	binary.LittleEndian.PutUint32(params[28:], boolU32(transB))
	binary.LittleEndian.PutUint32(params[32:], math.Float32bits(alpha))
	binary.LittleEndian.PutUint32(params[36:], math.Float32bits(beta))

	e.runGemm(a, b, c, params, m, n)
}

// Gemv computes y = alpha·op(A)·x + beta·y as an m'×1 gemm.
func (e *Engine) Gemv(trans bool, m, n int, alpha float32, a []float32, lda int, x []float32, incX int, beta float32, y []float32, incY int) {
	if incX != 1 || incY != 1 {
		panic("webgpu: strided vectors are not supported")
	}
	rows, cols := m, n
	if trans {
		rows, cols = n, m
	}
	e.Gemm(trans, false, rows, 1, cols, alpha, a, lda, x, cols, beta, y, rows)
}

// Ger computes A += alpha·x·yᵀ as an m×n rank-1 gemm with beta 1.
func (e *Engine) Ger(m, n int, alpha float32, x []float32, incX int, y []float32, incY int, a []float32, lda int) {
	if incX != 1 || incY != 1 {
		panic("webgpu: strided vectors are not supported")
	}
	e.Gemm(false, true, m, n, 1, alpha, x, m, y, n, 1, a, lda)
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (e *Engine) runGemm(a, b, c []float32, params []byte, m, n int) {
	shader := e.compileShader("gemm", gemmShader)
	pipeline := e.getOrCreatePipeline("gemm", shader)

	bufA := e.createBuffer(f32Bytes(a), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufA.Release()
	bufB := e.createBuffer(f32Bytes(b), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufB.Release()

	// C is read_write: the shader folds beta·C into the result in place.
	cSize := uint64(len(c) * 4)
	bufC := e.createBuffer(f32Bytes(c), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer bufC.Release()

	bufParams := e.createUniformBuffer(params)
	defer bufParams.Release()

	layout := pipeline.GetBindGroupLayout(0)
	bindGroup := e.device.CreateBindGroupSimple(layout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufA, 0, uint64(len(a)*4)),
		wgpu.BufferBindingEntry(1, bufB, 0, uint64(len(b)*4)),
		wgpu.BufferBindingEntry(2, bufC, 0, cSize),
		wgpu.BufferBindingEntry(3, bufParams, 0, uint64(len(params))),
	})
	defer bindGroup.Release()

	encoder := e.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(groups(m), groups(n), 1)
	pass.End()
	e.queue.Submit(encoder.Finish(nil))

	out := e.readBuffer(bufC, cSize)
	copy(c, bytesF32(out))
}

func groups(n int) uint32 {
	return uint32((n + workgroupDim - 1) / workgroupDim)
}

func (e *Engine) compileShader(name, code string) *wgpu.ShaderModule {
	e.mu.Lock()
	defer e.mu.Unlock()
	if shader, ok := e.shaders[name]; ok {
		return shader
	}
	shader := e.device.CreateShaderModuleWGSL(code)
	e.shaders[name] = shader
	return shader
}

func (e *Engine) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pipeline, ok := e.pipelines[name]; ok {
		return pipeline
	}
	pipeline := e.device.CreateComputePipelineSimple(nil, shader, "main")
	e.pipelines[name] = pipeline
	return pipeline
}

func (e *Engine) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))
	buffer := e.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mapped := unsafe.Slice((*byte)(buffer.GetMappedRange(0, size)), size)
	copy(mapped, data)
	buffer.Unmap()
	return buffer
}

// createUniformBuffer pads to the 16-byte alignment uniform buffers
// require.
func (e *Engine) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15
	buffer := e.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})
	mapped := unsafe.Slice((*byte)(buffer.GetMappedRange(0, alignedSize)), alignedSize)
	copy(mapped, data)
	buffer.Unmap()
	return buffer
}

// readBuffer copies a storage buffer back through a mappable staging
// buffer.
func (e *Engine) readBuffer(src *wgpu.Buffer, size uint64) []byte {
	staging := e.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := e.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	e.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(e.device, wgpu.MapModeRead, 0, size); err != nil {
		panic(fmt.Sprintf("webgpu: failed to map staging buffer: %v", err))
	}
	mapped := unsafe.Slice((*byte)(staging.GetMappedRange(0, size)), size)
	out := make([]byte, size)
	copy(out, mapped)
	staging.Unmap()
	return out
}

func f32Bytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

func bytesF32(b []byte) []float32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}
