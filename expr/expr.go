// Copyright 2025 Fuse ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr provides the public API for lazy tensor expressions.
//
// An expression tree is built per statement at no computation cost, then
// evaluated into a destination tensor. Evaluation first verifies rank,
// device and shape compatibility; matrix products dispatch to a dense
// linear-algebra engine, everything else fuses into a single
// per-coordinate pass with no intermediate buffers.
//
// Example:
//
//	b, _ := tensor.FromSlice([]float32{2, 3, 4}, tensor.Shape{3}, tensor.CPU)
//	c, _ := tensor.FromSlice([]float32{3, 4, 5}, tensor.Shape{3}, tensor.CPU)
//	dst := tensor.Zeros[float32](tensor.Shape{3}, tensor.CPU)
//
//	// dst = b * max(c, b), in one fused pass
//	err := expr.Assign(dst, expr.Mul(expr.RefOf(b), expr.Max(expr.RefOf(c), expr.RefOf(b))))
//
//	// m += 0.5 * x × y via the BLAS engine
//	err = expr.EvalTo(expr.AddTo[float32]{}, m, expr.Dot(x, y).Scale(0.5))
package expr

import (
	"github.com/fuse-ml/fuse/internal/expr"
	"github.com/fuse-ml/fuse/tensor"
)

// RankMismatch is the rank sentinel of a subtree whose operands disagree.
const RankMismatch = expr.RankMismatch

// Expr is an expression node. The node set is closed; external node kinds
// plug in through MakeTensor and the Maker capability.
type Expr[T tensor.Elem] = expr.Expr[T]

// Plan is a compiled per-coordinate evaluator.
type Plan[T any] = expr.Plan[T]

// Maker supplies the run-time behavior of an externally defined computed
// node.
type Maker[T tensor.Elem] = expr.Maker[T]

// Saver is the accumulation policy of an assignment.
type Saver[T tensor.Elem] = expr.Saver[T]

// Accumulation policies. Save, AddTo and SubTo carry dense linear-algebra
// coefficients and are the only policies a dot assignment accepts.
type (
	Save[T tensor.Elem]  = expr.Save[T]
	AddTo[T tensor.Elem] = expr.AddTo[T]
	SubTo[T tensor.Elem] = expr.SubTo[T]
	MulTo[T tensor.Elem] = expr.MulTo[T]
	DivTo[T tensor.Elem] = expr.DivTo[T]
)

// Node types.
type (
	Scalar[T tensor.Elem]    = expr.Scalar[T]
	Ref[T tensor.Elem]       = expr.Ref[T]
	UnaryMap[T tensor.Elem]  = expr.UnaryMap[T]
	BinaryMap[T tensor.Elem] = expr.BinaryMap[T]
	Transpose[T tensor.Elem] = expr.Transpose[T]
	Made[T tensor.Elem]      = expr.Made[T]
	DotExpr[T tensor.Elem]   = expr.DotExpr[T]
)

// Error sentinels, matchable with errors.Is.
var (
	ErrDimMismatch    = expr.ErrDimMismatch
	ErrDeviceMismatch = expr.ErrDeviceMismatch
	ErrShapeMismatch  = expr.ErrShapeMismatch
	ErrUnsupportedDot = expr.ErrUnsupportedDot
)

// Value wraps a constant into an expression node.
func Value[T tensor.Elem](v T) Expr[T] { return expr.Value(v) }

// RefOf wraps a tensor into an expression node.
func RefOf[T tensor.Elem](t *tensor.Dense[T]) Expr[T] { return expr.RefOf(t) }

// Map builds an element-wise unary node.
func Map[T tensor.Elem](op func(T) T, src Expr[T]) Expr[T] { return expr.Map(op, src) }

// Map2 builds an element-wise binary node.
func Map2[T tensor.Elem](op func(T, T) T, lhs, rhs Expr[T]) Expr[T] {
	return expr.Map2(op, lhs, rhs)
}

// T builds a transpose node, swapping the two lowest axes.
func T[E tensor.Elem](src Expr[E]) Expr[E] { return expr.T(src) }

// Element-wise operator builders.
func Add[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] { return expr.Add(lhs, rhs) }
func Sub[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] { return expr.Sub(lhs, rhs) }
func Mul[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] { return expr.Mul(lhs, rhs) }
func Div[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] { return expr.Div(lhs, rhs) }
func Max[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] { return expr.Max(lhs, rhs) }
func Min[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] { return expr.Min(lhs, rhs) }
func Neg[T tensor.Elem](src Expr[T]) Expr[T] { return expr.Neg(src) }

// Dot builds a matrix/vector-product node; evaluation dispatches to the
// dense linear-algebra engine of the destination's device.
func Dot[T tensor.Elem](lhs, rhs *tensor.Dense[T]) *DotExpr[T] { return expr.Dot(lhs, rhs) }

// MakeTensor wraps a Maker capability into an expression node.
func MakeTensor[T tensor.Elem](maker Maker[T], src Expr[T], shape tensor.Shape) Expr[T] {
	return expr.MakeTensor(maker, src, shape)
}

// Broadcast1D replicates a rank-1 tensor across the rows of a rank-2
// result.
func Broadcast1D[T tensor.Elem](src *tensor.Dense[T], rows int) Expr[T] {
	return expr.Broadcast1D(src, rows)
}

// EvalTo evaluates e into dst under the accumulation policy sv. All
// compatibility checks complete before the first destination cell is
// written.
func EvalTo[T tensor.Elem](sv Saver[T], dst *tensor.Dense[T], e Expr[T]) error {
	return expr.EvalTo(sv, dst, e)
}

// Assign overwrites dst with the value of e.
func Assign[T tensor.Elem](dst *tensor.Dense[T], e Expr[T]) error {
	return expr.Assign(dst, e)
}

// Accumulate adds the value of e into dst.
func Accumulate[T tensor.Elem](dst *tensor.Dense[T], e Expr[T]) error {
	return expr.Accumulate(dst, e)
}

// Mappable checks that e can be evaluated element-wise into a rank-dim
// destination on device dev.
func Mappable[T tensor.Elem](e Expr[T], dim int, dev tensor.Device) error {
	return expr.Mappable(e, dim, dev)
}

// Reducible checks that e can be reduced onto a rank-dim destination on
// device dev.
func Reducible[T tensor.Elem](e Expr[T], dim int, dev tensor.Device) error {
	return expr.Reducible(e, dim, dev)
}
