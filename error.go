// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

// Error recovery over Resource descriptions. Failures propagate by
// default; recovery is strictly opt-in through Attempt/CatchError, and a
// recovered failure never skips a release that was already scheduled.

// ThrowError is a Resource whose acquisition fails with err. No value is
// ever produced, so no finalizer is ever registered or run.
func ThrowError[A any](in ErrorRecoverer, err error) Resource[A] {
	return Resource[A]{n: &allocateNode{op: in.Raise(err)}}
}

// Attempt reifies acquisition failure as a value. A successful acquisition
// yields Right(a) and keeps its real finalizer; a failed one yields
// Left(err) with a no-op finalizer — nothing was acquired, nothing to
// release. Resources acquired before the failure are untouched: their
// scopes are already open and release normally.
func Attempt[A any](in ErrorRecoverer, fa Resource[A]) Resource[Either[error, A]] {
	rewritten := attemptNode(in, fa.n)
	// The rewritten chain carries Either[error, Erased]; restore the typed
	// payload at the boundary.
	return Resource[Either[error, A]]{n: &bindNode{
		source: rewritten,
		next: func(v Erased) node {
			e := v.(Either[error, Erased])
			if err, ok := e.GetLeft(); ok {
				return pureNode(in, Erased(Left[error, A](err)))
			}
			a, _ := e.GetRight()
			return pureNode(in, Erased(Right[error](a.(A))))
		},
	}}
}

// attemptNode rewrites a chain so every value position carries
// Either[error, Erased]. Bind continuations short-circuit on Left without
// invoking the original continuation.
func attemptNode(in ErrorRecoverer, n node) node {
	switch n := n.(type) {
	case *allocateNode:
		op := in.Map(in.Attempt(n.op), func(v Erased) Erased {
			e := v.(Either[error, Erased])
			if err, ok := e.GetLeft(); ok {
				return allocated{
					value:    Erased(Left[error, Erased](err)),
					finalize: noopFinalizer(in),
				}
			}
			a, _ := e.GetRight()
			acq := a.(allocated)
			return allocated{
				value:    Erased(Right[error](acq.value)),
				finalize: acq.finalize,
			}
		})
		return &allocateNode{op: op}
	case *bindNode:
		return &bindNode{
			source: attemptNode(in, n.source),
			next: func(v Erased) node {
				e := v.(Either[error, Erased])
				if err, ok := e.GetLeft(); ok {
					return pureNode(in, Erased(Left[error, Erased](err)))
				}
				a, _ := e.GetRight()
				return attemptNode(in, n.next(a))
			},
		}
	case *suspendNode:
		return &suspendNode{op: in.Map(n.op, func(v Erased) Erased {
			return attemptNode(in, v.(node))
		})}
	default:
		panic("resource: unknown node type")
	}
}

// CatchError recovers a failed resource with a handler. Equivalent to
// binding [Attempt]: Right passes through, Left is replaced by the
// handler's resource.
func CatchError[A any](in ErrorRecoverer, fa Resource[A], handler func(error) Resource[A]) Resource[A] {
	return Bind(Attempt(in, fa), func(e Either[error, A]) Resource[A] {
		if err, ok := e.GetLeft(); ok {
			return handler(err)
		}
		a, _ := e.GetRight()
		return Pure(in, a)
	})
}
