// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

// Erased represents a type-erased value flowing through the interpreter.
// Resource chains process heterogeneous value types through a homogeneous
// pipeline; concrete types are recovered via type assertions at API
// boundaries.
type Erased = any

// Effect is an opaque, type-erased effect value. An Effect is meaningful
// only to the capability instance that produced it; the interpreter never
// inspects one, it only hands them back to the instance for sequencing.
//
// In capability signatures an Effect stands for F⟨Erased⟩ of whatever
// effect type F the instance implements.
type Effect = any

// Finalizer releases one acquired value. It receives the [ExitCase]
// describing how the scope that owned the value settled and returns the
// release effect. The acquired value itself is captured in the closure.
type Finalizer = func(ExitCase) Effect

// Pair is a generic two-tuple, used by [FromEffect] and [FromEffectCase]
// for acquire effects that yield a value together with its release.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// Sequencer is the minimal sequencing capability of an effect type:
// lifting pure values and mapping/binding over effect values.
//
// Laws expected of an instance (the usual functor/monad laws):
//
//	Map(fx, id)            ≡ fx
//	FlatMap(Pure(v), f)    ≡ f(v)
//	FlatMap(fx, Pure)      ≡ fx
//	FlatMap(FlatMap(fx, f), g) ≡ FlatMap(fx, func(v) { return FlatMap(f(v), g) })
type Sequencer interface {
	// Pure lifts a value into the effect type.
	Pure(v Erased) Effect

	// Map applies a pure function to the result of an effect.
	Map(fx Effect, f func(Erased) Erased) Effect

	// FlatMap sequences two effects, the second derived from the first's
	// result.
	FlatMap(fx Effect, f func(Erased) Effect) Effect
}

// Bracketer extends [Sequencer] with the bracket primitive the interpreter
// relies on for release guarantees.
//
// Bracket must guarantee that release runs exactly once after use settles —
// on success, on error, and on cancellation — before the overall effect's
// result is observable, and that release does not run at all when acquire
// itself fails. The [ExitCase] passed to release must reflect how use
// actually settled.
type Bracketer interface {
	Sequencer

	// Bracket runs acquire, feeds the acquired value to use, and runs
	// release with the acquired value and the use phase's exit case.
	Bracket(acquire Effect, use func(Erased) Effect, release func(Erased, ExitCase) Effect) Effect
}

// ErrorRecoverer extends [Sequencer] with error capture and raising,
// required by [Attempt], [CatchError] and [ThrowError].
type ErrorRecoverer interface {
	Sequencer

	// Attempt converts a failing effect into one that succeeds with
	// Left(err), and a succeeding effect into one yielding Right(value).
	// The result value is Either[error, Erased].
	Attempt(fx Effect) Effect

	// Raise produces an effect that fails with err without yielding a value.
	Raise(err error) Effect
}

// Alternator extends [Sequencer] with an associative choice operator,
// required by [CombineK].
type Alternator interface {
	Sequencer

	// CombineK combines two effects with the effect type's choice
	// semantics (for instance: first success wins).
	CombineK(fx, fy Effect) Effect
}

// noopFinalizer returns a finalizer that releases nothing. Used wherever a
// resource value has no real acquisition behind it ([Pure], [Lift],
// recovered failures).
func noopFinalizer(in Sequencer) Finalizer {
	return func(ExitCase) Effect {
		return in.Pure(struct{}{})
	}
}
