package expr

// Plan is a compiled per-coordinate evaluator: one struct per node kind,
// wired together when the tree is compiled. Eval must not allocate and
// must not branch on node identity; plans hold read-only views and are
// safe to share across goroutines sweeping disjoint coordinates.
type Plan[T any] interface {
	// Eval returns the expression's value at row y, column x.
	Eval(y, x int) T
}

type scalarPlan[T any] struct {
	v T
}

func (p scalarPlan[T]) Eval(y, x int) T { return p.v }

type matrixPlan[T any] struct {
	data   []T
	stride int
}

func (p matrixPlan[T]) Eval(y, x int) T { return p.data[y*p.stride+x] }

// vectorPlan is the 1-D specialization: no row term.
type vectorPlan[T any] struct {
	data []T
}

func (p vectorPlan[T]) Eval(y, x int) T { return p.data[x] }

type unaryPlan[T any] struct {
	op  func(T) T
	src Plan[T]
}

func (p unaryPlan[T]) Eval(y, x int) T { return p.op(p.src.Eval(y, x)) }

type binaryPlan[T any] struct {
	op       func(T, T) T
	lhs, rhs Plan[T]
}

func (p binaryPlan[T]) Eval(y, x int) T { return p.op(p.lhs.Eval(y, x), p.rhs.Eval(y, x)) }

type transposePlan[T any] struct {
	src Plan[T]
}

func (p transposePlan[T]) Eval(y, x int) T { return p.src.Eval(x, y) }

func (s *Scalar[T]) compile() Plan[T] {
	return scalarPlan[T]{v: s.v}
}

func (r *Ref[T]) compile() Plan[T] {
	if r.t.Rank() == 1 {
		return vectorPlan[T]{data: r.t.Data()}
	}
	return matrixPlan[T]{data: r.t.Data(), stride: r.t.Stride()}
}

func (u *UnaryMap[T]) compile() Plan[T] {
	return unaryPlan[T]{op: u.op, src: u.src.compile()}
}

func (b *BinaryMap[T]) compile() Plan[T] {
	return binaryPlan[T]{op: b.op, lhs: b.lhs.compile(), rhs: b.rhs.compile()}
}

func (t *Transpose[T]) compile() Plan[T] {
	return transposePlan[T]{src: t.src.compile()}
}

// A made node is transparent to the compiler: it forwards to the plan its
// maker produces.
func (m *Made[T]) compile() Plan[T] {
	return m.maker.MakePlan()
}
