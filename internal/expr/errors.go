package expr

import "github.com/pkg/errors"

// Error taxonomy of the engine. Every failure is detected before the first
// destination cell is written; callers can rely on errors.Is against these
// sentinels.
var (
	// ErrDimMismatch: two non-scalar operands have incompatible static
	// ranks, or the expression's rank cannot map onto the destination.
	ErrDimMismatch = errors.New("expr: dimension mismatch")

	// ErrDeviceMismatch: the expression's feasible-device set excludes the
	// destination's device.
	ErrDeviceMismatch = errors.New("expr: device mismatch")

	// ErrShapeMismatch: reconciled run-time shapes disagree.
	ErrShapeMismatch = errors.New("expr: shape mismatch")

	// ErrUnsupportedDot: a dot expression's rank/transpose combination
	// matches no recognized product form, or the accumulation policy has
	// no dense linear-algebra coefficients.
	ErrUnsupportedDot = errors.New("expr: unsupported dot form")
)
