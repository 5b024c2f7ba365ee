// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package resource provides a composable, effect-polymorphic resource type
// with guaranteed release in reverse acquisition order.
//
// A [Resource] is a pure description of how to acquire a value and how to
// release it. Descriptions compose with [Bind] and the combinators in this
// package; nothing is acquired until the description is handed to [Use],
// which drives the description against an effect instance and yields one
// guarded computation. Every successfully acquired value is released exactly
// once, in strict reverse order of acquisition, whether the consumer
// succeeds, fails, or is cancelled.
//
// # Effect Polymorphism
//
// The package does not implement an effect runtime of its own. Effect values
// are opaque ([Effect] is type-erased) and all sequencing is delegated to a
// capability instance supplied at the call site:
//
//   - [Sequencer]: pure lifting, map, and flatMap over effect values
//   - [Bracketer]: a bracket primitive guaranteeing exactly-once release
//   - [ErrorRecoverer]: capturing raised errors as [Either], raising errors
//   - [Alternator]: an associative choice operator
//
// Capability instances replace ambient typeclass resolution: an operation
// that needs a capability takes it as its first argument. [SyncIO] is the
// reference instance, a synchronous evaluator with context cancellation.
//
// # Construction
//
// Resources are built from acquire/release pairs:
//
//   - [Make], [MakeCase]: compose an acquire effect with a release function
//   - [FromEffect], [FromEffectCase]: wrap an effect that yields the value
//     already paired with its release
//   - [Pure], [Lift]: lift a value or an effect with a no-op release
//   - [Suspend]: defer construction of the description into the effect type
//
// Construction is pure: building or composing descriptions never runs an
// acquire effect.
//
// # Interpretation
//
// [Use] is the sole entry point that performs acquisition. It unfolds the
// chain of bind nodes iteratively over an explicit continuation list — never
// one host-stack frame per composed resource — and opens one bracket scope
// per acquisition, nesting the remainder of the chain inside the protected
// action. The nesting is what yields reverse-order release: the innermost
// scope settles first, so its release runs first, and every enclosing scope
// follows in turn. Each finalizer receives the [ExitCase] describing how its
// scope settled.
//
// A Resource value is immutable and may be interpreted any number of times;
// every [Use] call is an independent acquire/release cycle.
//
// # Composition
//
// Monadic sequencing:
//
//   - [Bind]: sequence, the later resource is released before the earlier
//   - [Map], [Then]: derived from Bind
//   - [TailRecM]: stack-safe iteration; resources produced by discarded
//     iterations are released immediately, each step is deferred into the
//     effect type rather than the host call stack
//
// Error recovery (requires [ErrorRecoverer]):
//
//   - [ThrowError]: a resource whose acquisition fails; nothing is acquired,
//     nothing is released
//   - [Attempt]: reify acquisition failure as [Either] without losing any
//     release that was already scheduled
//   - [CatchError]: recover from a failed resource with a handler
//
// Combination:
//
//   - [Combine]: sequential acquisition, values merged with a semigroup
//   - [Empty]: the identity resource for Combine
//   - [CombineK]: merge via the effect type's choice operator (requires
//     [Alternator])
//
// # Example
//
//	in := resource.SyncIO{}
//	r := resource.Make[*os.File](in,
//	    resource.SyncDelay(func() (*os.File, error) { return os.Open(path) }),
//	    func(f *os.File) resource.Effect {
//	        return resource.SyncDelay(func() (struct{}, error) { return struct{}{}, f.Close() })
//	    },
//	)
//	fx := resource.Use(in, r, func(f *os.File) resource.Effect {
//	    return resource.SyncDelay(func() (int64, error) { return io.Copy(dst, f) })
//	})
//	n, err := resource.RunSync[int64](ctx, fx)
package resource
