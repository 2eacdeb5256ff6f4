package blas

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"

	"github.com/fuse-ml/fuse/internal/tensor"
)

// The CPU engines adapt gonum's row-major kernels to the column-major
// convention of the Engine interface. The row-major view of a column-major
// matrix is its transpose, so each routine swaps operands or flips its
// transpose flag; the correctness argument is spelled out per routine.

func init() {
	Register32(tensor.CPU, cpu32{})
	Register64(tensor.CPU, cpu64{})
}

func transFlag(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}
	return blas.NoTrans
}

func flip(t bool) blas.Transpose {
	if t {
		return blas.NoTrans
	}
	return blas.Trans
}

type cpu32 struct {
	impl gonum.Implementation
}

// Gemm: Cᵀ = op(B)ᵀ·op(A)ᵀ, and the row-major view of each column-major
// operand is already its transpose, so the operands swap and the flags
// pass through.
func (e cpu32) Gemm(transA, transB bool, m, n, k int, alpha float32, a []float32, lda int, b []float32, ldb int, beta float32, c []float32, ldc int) {
	e.impl.Sgemm(transFlag(transB), transFlag(transA), n, m, k, alpha, b, ldb, a, lda, beta, c, ldc)
}

// Gemv: the row-major view of the m×n column-major A is the n×m matrix Aᵀ,
// so the flag flips and the dimensions swap.
func (e cpu32) Gemv(trans bool, m, n int, alpha float32, a []float32, lda int, x []float32, incX int, beta float32, y []float32, incY int) {
	e.impl.Sgemv(flip(trans), n, m, alpha, a, lda, x, incX, beta, y, incY)
}

// Ger: Aᵀ += alpha·y·xᵀ on the row-major view.
func (e cpu32) Ger(m, n int, alpha float32, x []float32, incX int, y []float32, incY int, a []float32, lda int) {
	e.impl.Sger(n, m, alpha, y, incY, x, incX, a, lda)
}

type cpu64 struct {
	impl gonum.Implementation
}

func (e cpu64) Gemm(transA, transB bool, m, n, k int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int) {
	e.impl.Dgemm(transFlag(transB), transFlag(transA), n, m, k, alpha, b, ldb, a, lda, beta, c, ldc)
}

func (e cpu64) Gemv(trans bool, m, n int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int) {
	e.impl.Dgemv(flip(trans), n, m, alpha, a, lda, x, incX, beta, y, incY)
}

func (e cpu64) Ger(m, n int, alpha float64, x []float64, incX int, y []float64, incY int, a []float64, lda int) {
	e.impl.Dger(n, m, alpha, y, incY, x, incX, a, lda)
}
