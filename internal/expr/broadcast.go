package expr

import (
	"fmt"

	"github.com/fuse-ml/fuse/internal/tensor"
)

// Broadcast1D replicates a rank-1 tensor across the rows of a rank-2
// result. It is built entirely on the Maker capability: the three core
// components see only a Made node.
func Broadcast1D[T tensor.Elem](src *tensor.Dense[T], rows int) Expr[T] {
	if src.Rank() != 1 {
		panic(fmt.Sprintf("expr: Broadcast1D of rank-%d tensor", src.Rank()))
	}
	maker := bcast1d[T]{data: src.Data()}
	return MakeTensor[T](maker, RefOf(src), tensor.Shape{rows, src.Len()})
}

type bcast1d[T tensor.Elem] struct {
	data []T
}

// MakePlan ignores the row coordinate, which is exactly the 1-D tensor
// plan.
func (b bcast1d[T]) MakePlan() Plan[T] {
	return vectorPlan[T]{data: b.data}
}
