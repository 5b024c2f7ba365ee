// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

// Interpreter. Use is the only operation that performs real acquisition;
// everything else in the package builds or rewrites descriptions.

// contStack is an immutable list of pending bind continuations. Sharing a
// tail between scopes is safe because nodes are never mutated; this is what
// keeps repeated interpretation of one Resource value independent.
type contStack struct {
	next func(Erased) node
	rest *contStack
}

// Use interprets a Resource against a Bracketer and a consumer, producing
// one guarded effect. Acquisitions run outer-to-inner in composition order,
// the consumer runs on the final value, and every acquired value's
// finalizer runs in strict reverse order before the resulting effect
// settles — whether the consumer, a nested acquisition, or a nested
// finalizer fails.
//
// The consumer receives the final value and returns the effect to run
// inside the innermost scope.
func Use[A any](in Bracketer, r Resource[A], consume func(A) Effect) Effect {
	return interpret(in, r.n, nil, func(v Erased) Effect {
		return consume(v.(A))
	})
}

// interpret drives the description. Bind nodes unfold iteratively onto the
// continuation stack — one loop iteration per node, never one host-stack
// frame per composed resource. Suspend nodes sequence their effect through
// FlatMap and resume the loop with the produced node. Allocate nodes open a
// bracket scope whose protected action continues the loop with the
// remaining stack, so the rest of the chain — all deeper acquisitions and
// the consumer — lives inside the scope. That nesting is the reverse-order
// release guarantee: inner scopes settle before outer ones, and a failure
// or cancellation at any depth becomes the exit case of every scope above
// it.
func interpret(in Bracketer, current node, stack *contStack, consume func(Erased) Effect) Effect {
	for {
		switch n := current.(type) {
		case *bindNode:
			stack = &contStack{next: n.next, rest: stack}
			current = n.source
		case *suspendNode:
			st := stack
			return in.FlatMap(n.op, func(v Erased) Effect {
				return interpret(in, v.(node), st, consume)
			})
		case *allocateNode:
			st := stack
			return in.Bracket(
				n.op,
				func(v Erased) Effect {
					a := v.(allocated)
					if st == nil {
						return consume(a.value)
					}
					return interpret(in, st.next(a.value), st.rest, consume)
				},
				func(v Erased, ec ExitCase) Effect {
					return v.(allocated).finalize(ec)
				},
			)
		default:
			panic("resource: unknown node type")
		}
	}
}
