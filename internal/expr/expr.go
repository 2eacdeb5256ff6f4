// Package expr implements lazy tensor expressions: trees built per
// statement, statically checked, then either fused into a single
// per-coordinate plan or dispatched to a dense linear-algebra engine.
//
// Building a tree performs no computation and no allocation beyond the
// nodes themselves; nodes reference, never own, the underlying buffers and
// are discarded after the assignment that evaluates them.
package expr

import (
	"fmt"

	"github.com/fuse-ml/fuse/internal/tensor"
)

// RankMismatch is the rank sentinel of a subtree whose operands disagree.
const RankMismatch = -1

// Expr is the closed node set of the engine. One implementation exists per
// node kind for each of the three structural operations (static check,
// shape reconciliation, plan compilation); the kind is resolved when the
// tree is built, never during the per-coordinate loop.
//
// External node kinds plug in through MakeTensor and the Maker capability
// rather than by implementing Expr.
type Expr[T tensor.Elem] interface {
	// rank returns the static dimensionality, or RankMismatch.
	rank() int

	// devices returns the bitmask of devices the subtree can evaluate on.
	devices() uint32

	// reconcile computes the concrete run-time shape, verifying operand
	// shapes agree. Scalar subtrees return the scalar sentinel shape.
	reconcile() (tensor.Shape, error)

	// compile builds the fused evaluator. Called only after the static and
	// shape gates have passed.
	compile() Plan[T]
}

// Scalar is a constant broadcast over every coordinate.
type Scalar[T tensor.Elem] struct {
	v T
}

// Value wraps a constant into an expression node.
//
// Constructors return the Expr interface rather than the concrete node so
// that the element type flows through nested builder calls by inference.
func Value[T tensor.Elem](v T) Expr[T] {
	return &Scalar[T]{v: v}
}

// Ref references an existing dense buffer.
type Ref[T tensor.Elem] struct {
	t *tensor.Dense[T]
}

// RefOf wraps a tensor into an expression node. The node holds a view,
// not a copy.
func RefOf[T tensor.Elem](t *tensor.Dense[T]) Expr[T] {
	return &Ref[T]{t: t}
}

// UnaryMap applies op to every element of its operand.
type UnaryMap[T tensor.Elem] struct {
	op  func(T) T
	src Expr[T]
}

// Map builds an element-wise unary node.
func Map[T tensor.Elem](op func(T) T, src Expr[T]) Expr[T] {
	return &UnaryMap[T]{op: op, src: src}
}

// BinaryMap applies op element-wise to two operands. A scalar operand
// broadcasts; two non-scalar operands must agree in rank and shape.
type BinaryMap[T tensor.Elem] struct {
	op       func(T, T) T
	lhs, rhs Expr[T]
}

// Map2 builds an element-wise binary node.
func Map2[T tensor.Elem](op func(T, T) T, lhs, rhs Expr[T]) Expr[T] {
	return &BinaryMap[T]{op: op, lhs: lhs, rhs: rhs}
}

// Transpose swaps the two lowest axes of its operand.
type Transpose[T tensor.Elem] struct {
	src Expr[T]
}

// T builds a transpose node.
func T[E tensor.Elem](src Expr[E]) Expr[E] {
	return &Transpose[E]{src: src}
}

// Maker supplies the run-time behavior of an externally defined computed
// node: the node's shape is stored on the Made wrapper, its evaluation
// comes from the capability. New node kinds implement Maker; the checker,
// reconciler and plan compiler need no change.
type Maker[T tensor.Elem] interface {
	// MakePlan returns the compiled evaluator for the node.
	MakePlan() Plan[T]
}

// Made is a computed node that knows its own run-time shape and derives
// its evaluation from a Maker.
type Made[T tensor.Elem] struct {
	maker Maker[T]
	src   Expr[T]
	shape tensor.Shape
}

// MakeTensor wraps a Maker into an expression node. src is the source
// expression the node derives from; its rank validity and device mask pass
// through. shape is the run-time shape the node produces.
func MakeTensor[T tensor.Elem](maker Maker[T], src Expr[T], shape tensor.Shape) Expr[T] {
	return &Made[T]{maker: maker, src: src, shape: shape.Clone()}
}

// DotExpr is a matrix/vector-product node. It is never fused into a plan;
// the assignment engine always intercepts it and routes it to a dense
// linear-algebra engine.
type DotExpr[T tensor.Elem] struct {
	lhs, rhs           *tensor.Dense[T]
	transLhs, transRhs bool
	scale              T
}

// Dot builds a product node over two tensors.
func Dot[T tensor.Elem](lhs, rhs *tensor.Dense[T]) *DotExpr[T] {
	return &DotExpr[T]{lhs: lhs, rhs: rhs, scale: 1}
}

// TransposeLeft marks the left operand as transposed.
func (d *DotExpr[T]) TransposeLeft() *DotExpr[T] {
	d.transLhs = true
	return d
}

// TransposeRight marks the right operand as transposed.
func (d *DotExpr[T]) TransposeRight() *DotExpr[T] {
	d.transRhs = true
	return d
}

// Scale multiplies the product by s.
func (d *DotExpr[T]) Scale(s T) *DotExpr[T] {
	d.scale *= s
	return d
}

func (d *DotExpr[T]) compile() Plan[T] {
	panic(fmt.Sprintf("expr: dot node (%v × %v) reached the plan compiler; dot products are dispatched, not fused", d.lhs.Shape(), d.rhs.Shape()))
}
