package expr

import "github.com/fuse-ml/fuse/internal/tensor"

// Saver is the accumulation policy of an assignment: how a freshly
// computed value combines with the prior destination contents.
type Saver[T tensor.Elem] interface {
	Save(dst *T, v T)
}

// BLASSaver is implemented by the policies that have a dense
// linear-algebra form: alpha scales the fresh product, beta scales the
// prior destination contents (0 overwrites, 1 accumulates). Only these
// policies are accepted by a dot assignment.
type BLASSaver[T tensor.Elem] interface {
	Saver[T]
	Coefficients() (alpha, beta T)
}

// Save overwrites the destination.
type Save[T tensor.Elem] struct{}

func (Save[T]) Save(dst *T, v T) { *dst = v }
func (Save[T]) Coefficients() (alpha, beta T) { return 1, 0 }

// AddTo accumulates into the destination.
type AddTo[T tensor.Elem] struct{}

func (AddTo[T]) Save(dst *T, v T) { *dst += v }
func (AddTo[T]) Coefficients() (alpha, beta T) { return 1, 1 }

// SubTo subtracts from the destination.
type SubTo[T tensor.Elem] struct{}

func (SubTo[T]) Save(dst *T, v T) { *dst -= v }
func (SubTo[T]) Coefficients() (alpha, beta T) { return -1, 1 }

// MulTo multiplies the destination in place. No linear-algebra form.
type MulTo[T tensor.Elem] struct{}

func (MulTo[T]) Save(dst *T, v T) { *dst *= v }

// DivTo divides the destination in place. No linear-algebra form.
type DivTo[T tensor.Elem] struct{}

func (DivTo[T]) Save(dst *T, v T) { *dst /= v }
