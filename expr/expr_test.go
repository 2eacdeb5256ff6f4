// Copyright 2025 Fuse ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuse-ml/fuse/expr"
	"github.com/fuse-ml/fuse/tensor"
)

// The facade re-exports the engine; these tests exercise the public
// surface end to end rather than re-proving engine semantics.

func TestFusedAssignment(t *testing.T) {
	b, err := tensor.FromSlice([]float32{2, 3, 4}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	c, err := tensor.FromSlice([]float32{3, 4, 5}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	dst := tensor.Zeros[float32](tensor.Shape{3}, tensor.CPU)

	require.NoError(t, expr.Assign(dst, expr.Mul(expr.RefOf(b), expr.Max(expr.RefOf(c), expr.RefOf(b)))))
	assert.Equal(t, []float32{6, 12, 20}, dst.Data())
}

func TestDotAssignment(t *testing.T) {
	a, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2}, tensor.CPU)
	require.NoError(t, err)
	dst := tensor.Full[float32](tensor.Shape{2, 2}, 1, tensor.CPU)

	require.NoError(t, expr.EvalTo(expr.AddTo[float32]{}, dst, expr.Dot(a, b).Scale(2)))
	assert.Equal(t, []float32{9, 11, 21, 23}, dst.Data())
}

func TestErrorSentinelsSurface(t *testing.T) {
	m, err := tensor.New[float32](tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	v, err := tensor.New[float32](tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	dst := tensor.Zeros[float32](tensor.Shape{2, 3}, tensor.CPU)

	err = expr.Assign(dst, expr.Add(expr.RefOf(m), expr.RefOf(v)))
	require.ErrorIs(t, err, expr.ErrDimMismatch)
}
