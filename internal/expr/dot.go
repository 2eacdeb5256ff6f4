package expr

import (
	"github.com/pkg/errors"

	"github.com/fuse-ml/fuse/internal/blas"
	"github.com/fuse-ml/fuse/internal/tensor"
)

// The dot dispatch engine. An assignment whose right-hand side is a dot
// node never reaches the plan compiler: the engine matches the operand and
// destination ranks plus transpose flags against the three supported
// product forms and issues a single backend call.
//
// The backend speaks the column-major convention while callers hold
// row-major data, so every call swaps the operands left/right and passes
// the transpose flags through: dstᵀ = op(rhs)ᵀ·op(lhs)ᵀ. The swap is
// mandatory; getting it backward silently transposes every product.

func evalDot[T tensor.Elem](sv Saver[T], dst *tensor.Dense[T], e *DotExpr[T]) error {
	bs, ok := sv.(BLASSaver[T])
	if !ok {
		return errors.Wrap(ErrUnsupportedDot, "accumulation policy has no dense linear-algebra coefficients")
	}
	alpha, beta := bs.Coefficients()

	if e.devices()&dst.Device().Mask() == 0 {
		return errors.Wrapf(ErrDeviceMismatch,
			"dot operands on %s and %s cannot evaluate on destination device %s",
			e.lhs.Device(), e.rhs.Device(), dst.Device())
	}
	eng, err := blas.For[T](dst.Device())
	if err != nil {
		return err
	}

	alpha *= e.scale
	switch {
	case dst.Rank() == 2 && e.lhs.Rank() == 2 && e.rhs.Rank() == 2:
		return evalGemm(eng, dst, e.lhs, e.rhs, e.transLhs, e.transRhs, alpha, beta)
	case dst.Rank() == 1 && e.lhs.Rank() == 1 && !e.transLhs && e.rhs.Rank() == 2:
		return evalGemv(eng, dst, e.lhs, e.rhs, e.transRhs, alpha, beta)
	case dst.Rank() == 2 && e.lhs.Rank() == 1 && e.transLhs && e.rhs.Rank() == 1 && !e.transRhs:
		return evalGer(eng, dst, e.lhs, e.rhs, alpha, beta)
	default:
		return errors.Wrapf(ErrUnsupportedDot,
			"rank-%d destination = dot(rank-%d, transposed %t; rank-%d, transposed %t)",
			dst.Rank(), e.lhs.Rank(), e.transLhs, e.rhs.Rank(), e.transRhs)
	}
}

// effDims returns the effective (rows, cols) of a rank-2 operand under its
// transpose flag.
func effDims[T tensor.Elem](t *tensor.Dense[T], trans bool) (rows, cols int) {
	if trans {
		return t.Cols(), t.Rows()
	}
	return t.Rows(), t.Cols()
}

// evalGemm: dst = alpha·op(lhs)·op(rhs) + beta·dst for matrix operands.
func evalGemm[T tensor.Elem](eng blas.Engine[T], dst, lhs, rhs *tensor.Dense[T], transLhs, transRhs bool, alpha, beta T) error {
	lm, lk := effDims(lhs, transLhs)
	rk, rn := effDims(rhs, transRhs)
	if dst.Rows() != lm || dst.Cols() != rn || lk != rk {
		return errors.Wrapf(ErrShapeMismatch,
			"gemm: destination %v cannot hold op(%v, transposed %t) × op(%v, transposed %t)",
			dst.Shape(), lhs.Shape(), transLhs, rhs.Shape(), transRhs)
	}
	// Column-major convention: operands swapped, flags preserved.
	eng.Gemm(transRhs, transLhs,
		rn, lm, lk,
		alpha,
		rhs.Data(), rhs.Stride(),
		lhs.Data(), lhs.Stride(),
		beta,
		dst.Data(), dst.Stride())
	return nil
}

// evalGemv: dst = alpha·lhs·op(rhs) + beta·dst for a vector lhs and matrix
// rhs, i.e. dst[j] = alpha·Σᵢ lhs[i]·op(rhs)[i,j] + beta·dst[j].
func evalGemv[T tensor.Elem](eng blas.Engine[T], dst, lhs, rhs *tensor.Dense[T], transRhs bool, alpha, beta T) error {
	rr, rc := effDims(rhs, transRhs)
	if dst.Len() != rc || lhs.Len() != rr {
		return errors.Wrapf(ErrShapeMismatch,
			"gemv: destination length %d, operand length %d against op(%v, transposed %t)",
			dst.Len(), lhs.Len(), rhs.Shape(), transRhs)
	}
	// The column-major view of the row-major rhs buffer is already its
	// transpose, so the stored dimensions pass straight through.
	eng.Gemv(transRhs,
		rhs.Cols(), rhs.Rows(),
		alpha,
		rhs.Data(), rhs.Stride(),
		lhs.Data(), 1,
		beta,
		dst.Data(), 1)
	return nil
}

// evalGer: dst = alpha·rhs⊗lhs + beta·dst, i.e. dst[i,j] =
// alpha·rhs[i]·lhs[j] + beta·dst[i,j], for a transposed vector lhs and a
// plain vector rhs.
func evalGer[T tensor.Elem](eng blas.Engine[T], dst, lhs, rhs *tensor.Dense[T], alpha, beta T) error {
	if dst.Rows() != rhs.Len() || dst.Cols() != lhs.Len() {
		return errors.Wrapf(ErrShapeMismatch,
			"outer product: destination %v cannot hold lengths %d ⊗ %d",
			dst.Shape(), rhs.Len(), lhs.Len())
	}
	if beta == 0 {
		eng.Ger(lhs.Len(), rhs.Len(),
			alpha,
			lhs.Data(), 1,
			rhs.Data(), 1,
			dst.Data(), dst.Stride())
		return nil
	}
	// The rank-1 update has no coefficient for the prior destination
	// contents; the accumulating case routes through the general matrix
	// path on flattened single-row views instead.
	return evalGemm(eng, dst, rhs.FlatTo2D(), lhs.FlatTo2D(), true, false, alpha, beta)
}
