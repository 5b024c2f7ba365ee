// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

import (
	"context"
	"errors"
)

// SyncIO is the reference effect instance: a synchronous evaluator that
// runs effects eagerly on the calling goroutine. It implements [Sequencer],
// [Bracketer], [ErrorRecoverer] and [Alternator].
//
// Effects are defunctionalized node trees; [SyncIO.Run] evaluates them
// iteratively over an explicit frame stack, so deeply nested binds do not
// grow the host stack.
//
// Cancellation comes from the context passed to Run. It is polled between
// steps; once observed, pending bracket scopes release with [Canceled] —
// finalizers themselves run to completion regardless of cancellation — and
// Run returns the context's error.
//
// When a use-phase failure and a finalizer failure coincide, the use-phase
// failure is primary and finalizer failures are joined onto it with
// [errors.Join]; a finalizer failure after a successful use phase is
// primary itself. Under cancellation the context error is primary, so it
// stays observable through [errors.Is]. No failure is ever dropped.
type SyncIO struct{}

// ioNode is the marker interface for defunctionalized SyncIO steps.
type ioNode interface {
	ioNode() // unexported marker method
}

type ioPure struct{ v Erased }

func (*ioPure) ioNode() {}

type ioDelay struct{ run func() (Erased, error) }

func (*ioDelay) ioNode() {}

type ioBind struct {
	src ioNode
	k   func(Erased) ioNode
}

func (*ioBind) ioNode() {}

type ioRaise struct{ err error }

func (*ioRaise) ioNode() {}

type ioAttempt struct{ src ioNode }

func (*ioAttempt) ioNode() {}

type ioBracket struct {
	acquire ioNode
	use     func(Erased) ioNode
	release func(Erased, ExitCase) ioNode
}

func (*ioBracket) ioNode() {}

type ioChoice struct{ fst, snd ioNode }

func (*ioChoice) ioNode() {}

// syncNode recovers the node tree behind an opaque effect value.
func syncNode(fx Effect) ioNode {
	n, ok := fx.(ioNode)
	if !ok {
		panic("resource: effect value was not built by SyncIO")
	}
	return n
}

// Pure implements [Sequencer].
func (SyncIO) Pure(v Erased) Effect {
	return &ioPure{v: v}
}

// Map implements [Sequencer].
func (SyncIO) Map(fx Effect, f func(Erased) Erased) Effect {
	return &ioBind{src: syncNode(fx), k: func(v Erased) ioNode {
		return &ioPure{v: f(v)}
	}}
}

// FlatMap implements [Sequencer].
func (SyncIO) FlatMap(fx Effect, f func(Erased) Effect) Effect {
	return &ioBind{src: syncNode(fx), k: func(v Erased) ioNode {
		return syncNode(f(v))
	}}
}

// Bracket implements [Bracketer]. Release runs exactly once after use
// settles, before the result is observable; it does not run when acquire
// itself fails.
func (SyncIO) Bracket(acquire Effect, use func(Erased) Effect, release func(Erased, ExitCase) Effect) Effect {
	return &ioBracket{
		acquire: syncNode(acquire),
		use: func(v Erased) ioNode {
			return syncNode(use(v))
		},
		release: func(v Erased, ec ExitCase) ioNode {
			return syncNode(release(v, ec))
		},
	}
}

// Attempt implements [ErrorRecoverer]. The produced effect yields
// Either[error, Erased]. Cancellation is not an error: it unwinds past
// attempts untouched.
func (SyncIO) Attempt(fx Effect) Effect {
	return &ioAttempt{src: syncNode(fx)}
}

// Raise implements [ErrorRecoverer].
func (SyncIO) Raise(err error) Effect {
	return &ioRaise{err: err}
}

// CombineK implements [Alternator] with first-success semantics: fy runs
// only if fx fails, and its result replaces the failure.
func (SyncIO) CombineK(fx, fy Effect) Effect {
	return &ioChoice{fst: syncNode(fx), snd: syncNode(fy)}
}

// SyncDelay lifts a function into a SyncIO effect. The function runs when
// the effect is evaluated, once per evaluation.
func SyncDelay[A any](f func() (A, error)) Effect {
	return &ioDelay{run: func() (Erased, error) {
		v, err := f()
		if err != nil {
			return nil, err
		}
		return v, nil
	}}
}

// SyncUnit is the unit SyncIO effect. It is the natural result of release
// effects and other effects run only for their sequencing.
func SyncUnit() Effect {
	return &ioPure{v: struct{}{}}
}

// RunSync evaluates a SyncIO effect and recovers the typed result.
func RunSync[A any](ctx context.Context, fx Effect) (A, error) {
	v, err := SyncIO{}.Run(ctx, fx)
	if err != nil {
		var zero A
		return zero, err
	}
	a, _ := v.(A)
	return a, nil
}

// ioFrame is the marker interface for evaluator continuation frames.
type ioFrame interface {
	ioFrame() // unexported marker method
}

// bindFrame applies a continuation to the value below it.
type bindFrame struct{ k func(Erased) ioNode }

func (*bindFrame) ioFrame() {}

// attemptFrame marks an attempt boundary: success wraps Right, an error
// unwinding into it becomes Left.
type attemptFrame struct{}

func (attemptFrame) ioFrame() {}

// acquireFrame marks a pending acquisition. While it is on the stack the
// resource is not yet acquired, so unwinding through it releases nothing.
type acquireFrame struct{ b *ioBracket }

func (*acquireFrame) ioFrame() {}

// bracketFrame marks an open scope: the value is acquired and release is
// owed exactly once, whatever happens above.
type bracketFrame struct {
	acquired Erased
	release  func(Erased, ExitCase) ioNode
}

func (*bracketFrame) ioFrame() {}

// restoreFrame parks the use-phase outcome while its release evaluates,
// and recombines it with the release outcome afterwards.
type restoreFrame struct {
	val      Erased
	err      error
	canceled bool
}

func (*restoreFrame) ioFrame() {}

// choiceFrame holds the alternative of a choice: dropped on success, run
// on failure.
type choiceFrame struct{ alt ioNode }

func (*choiceFrame) ioFrame() {}

// evaluator modes.
const (
	modeEval = iota // evaluate the current node
	modeReturn      // deliver val to the frame stack
	modeUnwind      // propagate err (or cancellation) down the frame stack
)

// Run evaluates fx to completion. It returns the final value, or the error
// the evaluation settled with (which satisfies errors.Is(err, ctx.Err())
// after a cancellation).
//
// The loop is a single iterative trampoline: one frame per pending
// continuation, no recursion. Releases evaluate masked, so an observed
// cancellation never interrupts a finalizer.
func (SyncIO) Run(ctx context.Context, fx Effect) (Erased, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var (
		cur      = syncNode(fx)
		stack    []ioFrame
		val      Erased
		err      error
		canceled bool
		masked   int
		mode     = modeEval
	)
	for {
		switch mode {
		case modeEval:
			if masked == 0 && ctx.Err() != nil {
				err = ctx.Err()
				canceled = true
				mode = modeUnwind
				continue
			}
			switch n := cur.(type) {
			case *ioPure:
				val = n.v
				mode = modeReturn
			case *ioDelay:
				v, e := n.run()
				if e != nil {
					err = e
					mode = modeUnwind
				} else {
					val = v
					mode = modeReturn
				}
			case *ioBind:
				stack = append(stack, &bindFrame{k: n.k})
				cur = n.src
			case *ioRaise:
				err = n.err
				mode = modeUnwind
			case *ioAttempt:
				stack = append(stack, attemptFrame{})
				cur = n.src
			case *ioBracket:
				stack = append(stack, &acquireFrame{b: n})
				cur = n.acquire
			case *ioChoice:
				stack = append(stack, &choiceFrame{alt: n.snd})
				cur = n.fst
			default:
				panic("resource: unknown SyncIO node type")
			}

		case modeReturn:
			if len(stack) == 0 {
				return val, nil
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch f := top.(type) {
			case *bindFrame:
				cur = f.k(val)
				mode = modeEval
			case attemptFrame:
				val = Erased(Right[error, Erased](val))
			case *acquireFrame:
				// Acquired: the scope opens in the same step, so there is
				// no window where the value exists without an owed release.
				stack = append(stack, &bracketFrame{acquired: val, release: f.b.release})
				cur = f.b.use(val)
				mode = modeEval
			case *bracketFrame:
				stack = append(stack, &restoreFrame{val: val})
				masked++
				cur = f.release(f.acquired, Completed())
				mode = modeEval
			case *restoreFrame:
				masked--
				if f.err != nil || f.canceled {
					err = f.err
					canceled = f.canceled
					mode = modeUnwind
				} else {
					val = f.val
				}
			case *choiceFrame:
				// First branch succeeded; the alternative is dropped.
			default:
				panic("resource: unknown SyncIO frame type")
			}

		case modeUnwind:
			if len(stack) == 0 {
				return nil, err
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch f := top.(type) {
			case *bindFrame, *acquireFrame:
				// Skipped: a failed acquisition owes no release.
			case attemptFrame:
				if !canceled {
					val = Erased(Left[error, Erased](err))
					err = nil
					mode = modeReturn
				}
			case *bracketFrame:
				ec := Errored(err)
				if canceled {
					ec = Canceled()
				}
				stack = append(stack, &restoreFrame{err: err, canceled: canceled})
				masked++
				err = nil
				canceled = false
				cur = f.release(f.acquired, ec)
				mode = modeEval
			case *restoreFrame:
				// The release itself failed; err currently holds the
				// release error. The parked use-phase failure stays primary.
				masked--
				if f.err != nil {
					err = errors.Join(f.err, err)
				}
				canceled = canceled || f.canceled
			case *choiceFrame:
				if !canceled {
					err = nil
					cur = f.alt
					mode = modeEval
				}
			default:
				panic("resource: unknown SyncIO frame type")
			}
		}
	}
}
