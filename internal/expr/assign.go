package expr

import (
	"github.com/pkg/errors"

	"github.com/fuse-ml/fuse/internal/parallel"
	"github.com/fuse-ml/fuse/internal/tensor"
)

// EvalTo evaluates e into dst under the accumulation policy sv. This is
// the engine's sole entry point: it runs the static compatibility check
// and shape reconciliation, intercepts dot products, and otherwise
// compiles the tree and sweeps every destination coordinate.
//
// All checks complete before the first cell is written; on error the
// destination is untouched. The sweep itself is data-parallel: rows are
// partitioned across goroutines and no coordinate depends on another. The
// destination must not alias any source operand; the engine does not
// detect aliasing.
func EvalTo[T tensor.Elem](sv Saver[T], dst *tensor.Dense[T], e Expr[T]) error {
	if d, ok := e.(*DotExpr[T]); ok {
		return evalDot(sv, dst, d)
	}

	if err := Mappable(e, dst.Rank(), dst.Device()); err != nil {
		return err
	}
	shape, err := e.reconcile()
	if err != nil {
		return err
	}
	if !shape.IsScalarMark() && !shape.Equal(dst.Shape()) {
		return errors.Wrapf(ErrShapeMismatch, "expression shape %v does not match destination shape %v", shape, dst.Shape())
	}

	plan := e.compile()
	flat := dst.FlatTo2D()
	data, stride, cols := flat.Data(), flat.Stride(), flat.Cols()
	parallel.For(flat.Rows(), parallel.Default(), func(y int) {
		row := data[y*stride : y*stride+cols]
		for x := range row {
			sv.Save(&row[x], plan.Eval(y, x))
		}
	})
	return nil
}

// Assign overwrites dst with the value of e.
func Assign[T tensor.Elem](dst *tensor.Dense[T], e Expr[T]) error {
	return EvalTo(Save[T]{}, dst, e)
}

// Accumulate adds the value of e into dst.
func Accumulate[T tensor.Elem](dst *tensor.Dense[T], e Expr[T]) error {
	return EvalTo(AddTo[T]{}, dst, e)
}
