package expr

import "github.com/fuse-ml/fuse/internal/tensor"

// Element-wise operator builders. The operator set itself is ordinary Go
// functions; anything a caller can express as func(T) T or func(T, T) T
// composes through Map and Map2.

// Add builds lhs + rhs.
func Add[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] {
	return Map2(func(a, b T) T { return a + b }, lhs, rhs)
}

// Sub builds lhs - rhs.
func Sub[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] {
	return Map2(func(a, b T) T { return a - b }, lhs, rhs)
}

// Mul builds the element-wise product lhs * rhs.
func Mul[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] {
	return Map2(func(a, b T) T { return a * b }, lhs, rhs)
}

// Div builds lhs / rhs.
func Div[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] {
	return Map2(func(a, b T) T { return a / b }, lhs, rhs)
}

// Max builds the element-wise maximum of lhs and rhs.
func Max[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] {
	return Map2(func(a, b T) T {
		if a > b {
			return a
		}
		return b
	}, lhs, rhs)
}

// Min builds the element-wise minimum of lhs and rhs.
func Min[T tensor.Elem](lhs, rhs Expr[T]) Expr[T] {
	return Map2(func(a, b T) T {
		if a < b {
			return a
		}
		return b
	}, lhs, rhs)
}

// Neg builds the element-wise negation of src.
func Neg[T tensor.Elem](src Expr[T]) Expr[T] {
	return Map(func(a T) T { return -a }, src)
}
