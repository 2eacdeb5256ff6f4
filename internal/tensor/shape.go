// Package tensor provides the dense buffer container the expression engine
// evaluates against: shapes, devices and strided storage.
package tensor

import "fmt"

// Shape represents the per-axis extents of a tensor, highest axis first.
// The lowest two axes are the trailing entries; axes above them are assumed
// packed.
type Shape []int

// ScalarMark returns the sentinel shape standing in for a scalar operand.
// Its lowest-axis extent is zero, which no real tensor can have.
func ScalarMark() Shape {
	return Shape{0}
}

// IsScalarMark reports whether s is the scalar sentinel.
func (s Shape) IsScalarMark() bool {
	return len(s) > 0 && s[len(s)-1] == 0
}

// NumElements returns the total number of elements in the shape.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every extent is positive.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty shape")
	}
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid extent at axis %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal by value.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// SwapLowest returns a copy of the shape with the two lowest axes swapped.
// Panics if the shape has fewer than two axes; transposition is undefined
// below rank 2.
func (s Shape) SwapLowest() Shape {
	if len(s) < 2 {
		panic(fmt.Sprintf("tensor: cannot swap lowest axes of rank-%d shape %v", len(s), s))
	}
	t := s.Clone()
	t[len(t)-1], t[len(t)-2] = t[len(t)-2], t[len(t)-1]
	return t
}

// Rows returns the product of all axes above the lowest, i.e. the number of
// rows when the shape is viewed as two-dimensional.
func (s Shape) Rows() int {
	if len(s) < 2 {
		return 1
	}
	n := 1
	for _, dim := range s[:len(s)-1] {
		n *= dim
	}
	return n
}

// Cols returns the extent of the lowest axis.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 1
	}
	return s[len(s)-1]
}
