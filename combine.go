// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

// Combination operators built from Bind and the builder API.

// Combine acquires rx then ry and merges their values with an associative
// combine function. ry is acquired inside rx's scope, so ry is released
// before rx — the canonical trace is acquire rx, acquire ry, use, release
// ry, release rx.
func Combine[A any](in Sequencer, rx, ry Resource[A], combine func(A, A) A) Resource[A] {
	return Bind(rx, func(x A) Resource[A] {
		return Map(in, ry, func(y A) A {
			return combine(x, y)
		})
	})
}

// Empty is the identity resource for [Combine]: a pure resource holding
// the monoid's identity element, with a no-op finalizer.
func Empty[A any](in Sequencer, identity A) Resource[A] {
	return Pure(in, identity)
}

// CombineK acquires rx then ry and merges the two plain values with the
// effect type's choice operator, lifting the result back into a resource
// with a no-op finalizer. Release order follows the usual rule: ry before
// rx.
func CombineK[A any](in Alternator, rx, ry Resource[A]) Resource[A] {
	return Bind(rx, func(x A) Resource[A] {
		return Bind(ry, func(y A) Resource[A] {
			return Lift[A](in, in.CombineK(in.Pure(x), in.Pure(y)))
		})
	})
}
