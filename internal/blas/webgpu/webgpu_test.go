//go:build windows

package webgpu

import (
	"math"
	"testing"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(eng.Release)
	return eng
}

func approxEqual(a, b []float32, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

// TestGemmGPU checks a column-major 2x2 product against hand-computed values.
func TestGemmGPU(t *testing.T) {
	eng := newEngine(t)

	// Column-major: A = [[1,3],[2,4]], B = [[5,7],[6,8]].
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	c := make([]float32, 4)

	eng.Gemm(false, false, 2, 2, 2, 1, a, 2, b, 2, 0, c, 2)

	expected := []float32{23, 34, 31, 46}
	if !approxEqual(c, expected, 1e-4) {
		t.Errorf("Gemm: expected %v, got %v", expected, c)
	}
}

// TestGemmGPUTransposed exercises both transpose flags plus the alpha and
// beta coefficients.
func TestGemmGPUTransposed(t *testing.T) {
	eng := newEngine(t)

	// A stored 2x3, B stored 3x2, both transposed: C = 2·Aᵀ·Bᵀ + C with C 3x3.
	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{1, 0, 1, 0, 1, 1}
	c := make([]float32, 9)
	for i := range c {
		c[i] = 10
	}

	eng.Gemm(true, true, 3, 3, 2, 2, a, 2, b, 3, 1, c, 3)

	// op(A)[i,l] = a[i*2+l], op(B)[l,j] = b[l*3+j].
	expected := make([]float32, 9)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			var sum float32
			for l := 0; l < 2; l++ {
				sum += a[i*2+l] * b[l*3+j]
			}
			expected[j*3+i] = 2*sum + 10
		}
	}
	if !approxEqual(c, expected, 1e-4) {
		t.Errorf("Gemm: expected %v, got %v", expected, c)
	}
}

// TestGemvGPU checks the degenerate single-column product path.
func TestGemvGPU(t *testing.T) {
	eng := newEngine(t)

	// Column-major 3x2: A = [[1,4],[2,5],[3,6]].
	a := []float32{1, 2, 3, 4, 5, 6}
	x := []float32{1, -1}
	y := make([]float32, 3)

	eng.Gemv(false, 3, 2, 1, a, 3, x, 1, 0, y, 1)

	expected := []float32{-3, -3, -3}
	if !approxEqual(y, expected, 1e-4) {
		t.Errorf("Gemv: expected %v, got %v", expected, y)
	}
}

// TestGerGPU checks the rank-1 update path.
func TestGerGPU(t *testing.T) {
	eng := newEngine(t)

	x := []float32{1, 2, 3}
	y := []float32{10, 20}
	a := make([]float32, 6)

	eng.Ger(3, 2, 1, x, 1, y, 1, a, 3)

	// A[i,j] = x[i]·y[j], column-major.
	expected := []float32{10, 20, 30, 20, 40, 60}
	if !approxEqual(a, expected, 1e-4) {
		t.Errorf("Ger: expected %v, got %v", expected, a)
	}
}

// TestGemmGPULarge crosses several workgroup tiles in both dimensions.
func TestGemmGPULarge(t *testing.T) {
	eng := newEngine(t)

	const m, n, k = 37, 41, 19
	a := make([]float32, m*k)
	b := make([]float32, k*n)
	for i := range a {
		a[i] = float32(i%7) - 3
	}
	for i := range b {
		b[i] = float32(i%5) - 2
	}
	c := make([]float32, m*n)

	eng.Gemm(false, false, m, n, k, 1, a, m, b, k, 0, c, m)

	expected := make([]float32, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			var sum float32
			for l := 0; l < k; l++ {
				sum += a[l*m+i] * b[j*k+l]
			}
			expected[j*m+i] = sum
		}
	}
	if !approxEqual(c, expected, 1e-2) {
		t.Errorf("Gemm %dx%dx%d mismatch", m, n, k)
	}
}
