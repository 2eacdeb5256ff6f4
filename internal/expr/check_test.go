package expr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuse-ml/fuse/internal/tensor"
)

func mat(t *testing.T, shape tensor.Shape, dev tensor.Device) *tensor.Dense[float32] {
	t.Helper()
	d, err := tensor.New[float32](shape, dev)
	require.NoError(t, err)
	return d
}

func TestStaticRank(t *testing.T) {
	m := mat(t, tensor.Shape{2, 3}, tensor.CPU)
	v := mat(t, tensor.Shape{3}, tensor.CPU)

	tests := []struct {
		name string
		e    Expr[float32]
		want int
	}{
		{"scalar", Value[float32](1), 0},
		{"matrix ref", RefOf(m), 2},
		{"vector ref", RefOf(v), 1},
		{"unary passthrough", Neg(RefOf(m)), 2},
		{"transpose passthrough", T(RefOf(m)), 2},
		{"binary equal ranks", Add(RefOf(m), RefOf(m)), 2},
		{"binary scalar left", Add(Value[float32](2), RefOf(m)), 2},
		{"binary scalar right", Add(RefOf(v), Value[float32](2)), 1},
		{"binary rank mismatch", Add(RefOf(m), RefOf(v)), RankMismatch},
		{"mismatch propagates", Neg(Add(RefOf(m), RefOf(v))), RankMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.rank())
		})
	}
}

func TestStaticDeviceMask(t *testing.T) {
	cpu := mat(t, tensor.Shape{2, 2}, tensor.CPU)
	gpu := mat(t, tensor.Shape{2, 2}, tensor.WebGPU)

	assert.Equal(t, tensor.MaskAll, Value[float32](1).devices())
	assert.Equal(t, tensor.CPU.Mask(), RefOf(cpu).devices())

	// Scalar operands do not constrain the device set.
	withScalar := Mul(Value[float32](2), RefOf(gpu))
	assert.Equal(t, tensor.WebGPU.Mask(), withScalar.devices())

	// Disjoint operand devices leave no feasible device.
	crossed := Add(RefOf(cpu), RefOf(gpu))
	assert.Zero(t, crossed.devices())
}

func TestMappable(t *testing.T) {
	m := mat(t, tensor.Shape{2, 3}, tensor.CPU)
	v := mat(t, tensor.Shape{3}, tensor.CPU)

	require.NoError(t, Mappable(RefOf(m), 2, tensor.CPU))
	require.NoError(t, Mappable(Value[float32](1), 2, tensor.CPU))

	err := Mappable(RefOf(v), 2, tensor.CPU)
	require.ErrorIs(t, err, ErrDimMismatch)

	err = Mappable(RefOf(m), 2, tensor.WebGPU)
	require.ErrorIs(t, err, ErrDeviceMismatch)

	// Both diagnostics surface together.
	err = Mappable(RefOf(v), 2, tensor.WebGPU)
	require.ErrorIs(t, err, ErrDimMismatch)
	require.ErrorIs(t, err, ErrDeviceMismatch)
}

func TestReducible(t *testing.T) {
	m := mat(t, tensor.Shape{2, 3}, tensor.CPU)

	require.NoError(t, Reducible(RefOf(m), 1, tensor.CPU))
	require.ErrorIs(t, Reducible(RefOf(m), 2, tensor.CPU), ErrDimMismatch)
	require.ErrorIs(t, Reducible(RefOf(m), 1, tensor.Metal), ErrDeviceMismatch)
}

func TestReconcile(t *testing.T) {
	m := mat(t, tensor.Shape{2, 3}, tensor.CPU)

	shape, err := Add(RefOf(m), Value[float32](1)).reconcile()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(tensor.Shape{2, 3}, shape))

	shape, err = T(RefOf(m)).reconcile()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(tensor.Shape{3, 2}, shape))

	// Double transpose restores the original shape.
	shape, err = T(T(RefOf(m))).reconcile()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(tensor.Shape{2, 3}, shape))

	shape, err = Value[float32](3).reconcile()
	require.NoError(t, err)
	assert.True(t, shape.IsScalarMark())
}

func TestReconcileShapeMismatch(t *testing.T) {
	a := mat(t, tensor.Shape{2, 3}, tensor.CPU)
	b := mat(t, tensor.Shape{2, 4}, tensor.CPU)

	_, err := Add(RefOf(a), RefOf(b)).reconcile()
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "[2 3]")
	assert.Contains(t, err.Error(), "[2 4]")
}

func TestMadeNode(t *testing.T) {
	v := mat(t, tensor.Shape{4}, tensor.CPU)
	made := Broadcast1D(v, 3)

	assert.Equal(t, 2, made.rank())
	assert.Equal(t, tensor.CPU.Mask(), made.devices())

	shape, err := made.reconcile()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(tensor.Shape{3, 4}, shape))
}
