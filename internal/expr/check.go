package expr

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fuse-ml/fuse/internal/tensor"
)

// Static compatibility, defined structurally leaf-first. Rank and device
// mask depend only on the tree, not on any buffer contents, so both are
// resolved before evaluation ever starts.

func (s *Scalar[T]) rank() int { return 0 }
func (s *Scalar[T]) devices() uint32 { return tensor.MaskAll }
func (r *Ref[T]) rank() int { return r.t.Rank() }
func (r *Ref[T]) devices() uint32 { return r.t.Device().Mask() }
func (u *UnaryMap[T]) rank() int { return u.src.rank() }
func (u *UnaryMap[T]) devices() uint32 { return u.src.devices() }
func (t *Transpose[T]) rank() int { return t.src.rank() }
func (t *Transpose[T]) devices() uint32 { return t.src.devices() }

func (b *BinaryMap[T]) rank() int {
	lr, rr := b.lhs.rank(), b.rhs.rank()
	switch {
	case lr == RankMismatch || rr == RankMismatch:
		return RankMismatch
	case lr == 0:
		return rr
	case rr == 0 || rr == lr:
		return lr
	default:
		return RankMismatch
	}
}

func (b *BinaryMap[T]) devices() uint32 {
	return b.lhs.devices() & b.rhs.devices()
}

func (m *Made[T]) rank() int {
	if m.src.rank() == RankMismatch {
		return RankMismatch
	}
	return len(m.shape)
}

func (m *Made[T]) devices() uint32 { return m.src.devices() }

// A dot node's rank is the rank of the product it would produce; forms the
// dispatch engine does not recognize report a mismatch here and are
// re-diagnosed with ErrUnsupportedDot at dispatch.
func (d *DotExpr[T]) rank() int {
	switch {
	case d.lhs.Rank() == 2 && d.rhs.Rank() == 2:
		return 2
	case d.lhs.Rank() == 1 && d.rhs.Rank() == 2:
		return 1
	case d.lhs.Rank() == 1 && d.rhs.Rank() == 1:
		return 2
	default:
		return RankMismatch
	}
}

func (d *DotExpr[T]) devices() uint32 {
	return d.lhs.Device().Mask() & d.rhs.Device().Mask()
}

// Mappable checks that e can be evaluated element-wise into a rank-dim
// destination on device dev: the expression's rank is zero (scalar
// broadcast) or equal to dim, and its device mask includes dev.
func Mappable[T tensor.Elem](e Expr[T], dim int, dev tensor.Device) error {
	var err error
	switch r := e.rank(); {
	case r == RankMismatch:
		err = errors.Wrap(ErrDimMismatch, "expression mixes operand ranks")
	case r != 0 && r != dim:
		err = errors.Wrapf(ErrDimMismatch, "rank-%d expression is not mappable to a rank-%d destination", r, dim)
	}
	return multierr.Combine(err, checkDevice(e, dev))
}

// Reducible checks that e can be reduced onto a rank-dim destination on
// device dev: the expression's rank strictly exceeds dim and its device
// mask includes dev. Reduction operators are external to this engine but
// share its gate.
func Reducible[T tensor.Elem](e Expr[T], dim int, dev tensor.Device) error {
	var err error
	switch r := e.rank(); {
	case r == RankMismatch:
		err = errors.Wrap(ErrDimMismatch, "expression mixes operand ranks")
	case r <= dim:
		err = errors.Wrapf(ErrDimMismatch, "rank-%d expression is not reducible to a rank-%d destination", r, dim)
	}
	return multierr.Combine(err, checkDevice(e, dev))
}

func checkDevice[T tensor.Elem](e Expr[T], dev tensor.Device) error {
	if e.devices()&dev.Mask() == 0 {
		return errors.Wrapf(ErrDeviceMismatch, "expression cannot evaluate on destination device %s", dev)
	}
	return nil
}

// Shape reconciliation: the one run-time gate, executed once per
// assignment before any destination cell is written.

func (s *Scalar[T]) reconcile() (tensor.Shape, error) {
	return tensor.ScalarMark(), nil
}

func (r *Ref[T]) reconcile() (tensor.Shape, error) {
	return r.t.Shape(), nil
}

func (u *UnaryMap[T]) reconcile() (tensor.Shape, error) {
	return u.src.reconcile()
}

func (t *Transpose[T]) reconcile() (tensor.Shape, error) {
	s, err := t.src.reconcile()
	if err != nil {
		return nil, err
	}
	// Transposing a broadcast scalar is the identity.
	if s.IsScalarMark() {
		return s, nil
	}
	return s.SwapLowest(), nil
}

func (b *BinaryMap[T]) reconcile() (tensor.Shape, error) {
	ls, err := b.lhs.reconcile()
	if err != nil {
		return nil, err
	}
	rs, err := b.rhs.reconcile()
	if err != nil {
		return nil, err
	}
	if ls.IsScalarMark() {
		return rs, nil
	}
	if rs.IsScalarMark() {
		return ls, nil
	}
	if !ls.Equal(rs) {
		return nil, errors.Wrapf(ErrShapeMismatch, "binary map operands have shapes %v and %v", ls, rs)
	}
	return ls, nil
}

func (m *Made[T]) reconcile() (tensor.Shape, error) {
	return m.shape, nil
}

func (d *DotExpr[T]) reconcile() (tensor.Shape, error) {
	// Dot nodes are intercepted before reconciliation; the dispatch engine
	// verifies product shapes against the destination itself.
	return nil, errors.Wrap(ErrUnsupportedDot, "dot node cannot be reconciled as an element-wise expression")
}
