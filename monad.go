// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

// Monad operations over Resource descriptions.
//
// Bind is pure data construction — composing N resources costs N nodes and
// no effects. The usual monad laws hold observably under [Use]: binding
// [Pure] is the consumer applied directly, and association of binds does
// not change the acquire/release trace.

// Bind sequences two resource descriptions. The second resource is
// acquired inside the first's scope, so it is released before the first.
func Bind[A, B any](fa Resource[A], f func(A) Resource[B]) Resource[B] {
	return Resource[B]{n: &bindNode{
		source: fa.n,
		next: func(v Erased) node {
			return f(v.(A)).n
		},
	}}
}

// Map applies a pure function to the resource value.
func Map[A, B any](in Sequencer, fa Resource[A], f func(A) B) Resource[B] {
	return Bind(fa, func(a A) Resource[B] {
		return Pure(in, f(a))
	})
}

// Then sequences two resource descriptions, discarding the first value.
// The first resource is still acquired and held for the second's lifetime.
func Then[A, B any](fa Resource[A], fb Resource[B]) Resource[B] {
	return Bind(fa, func(A) Resource[B] { return fb })
}

// TailRecM iterates step from seed until it yields Right, and is safe for
// unbounded iteration counts: every discarded iteration is deferred into
// the effect type through a suspend node rather than the host call stack.
//
// A step yielding Left(next) discards its resource — the finalizer runs
// immediately with [Completed], before the next iteration begins — so
// intermediate resources never accumulate and never appear in the final
// release sequence. A step yielding Right(b) keeps its resource: b and its
// finalizer survive into the result.
func TailRecM[S, B any](in Sequencer, seed S, step func(S) Resource[Either[S, B]]) Resource[B] {
	var rewrite func(node) node
	rewrite = func(n node) node {
		switch n := n.(type) {
		case *allocateNode:
			op := in.FlatMap(n.op, func(v Erased) Effect {
				a := v.(allocated)
				e := a.value.(Either[S, B])
				if next, ok := e.GetLeft(); ok {
					// Discarded iteration: release now, defer the next
					// step into the effect type.
					return in.Map(a.finalize(Completed()), func(Erased) Erased {
						return rewrite(step(next).n)
					})
				}
				b, _ := e.GetRight()
				return in.Pure(Erased(node(&allocateNode{
					op: in.Pure(allocated{value: b, finalize: a.finalize}),
				})))
			})
			return &suspendNode{op: op}
		case *bindNode:
			return &bindNode{
				source: n.source,
				next: func(v Erased) node {
					return rewrite(n.next(v))
				},
			}
		case *suspendNode:
			return &suspendNode{op: in.Map(n.op, func(v Erased) Erased {
				return rewrite(v.(node))
			})}
		default:
			panic("resource: unknown node type")
		}
	}
	return Resource[B]{n: rewrite(step(seed).n)}
}
