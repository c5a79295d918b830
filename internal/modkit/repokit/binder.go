package repokit

// Binder builds a domain repo bound to one specific Queryer, so a repo
// constructed inside a transaction stays on that transaction.
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor into a Binder.
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds after rejecting a nil Queryer, which is always a
// wiring bug rather than a runtime condition.
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
