// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

// Resource is a pure description of acquiring a value of type A together
// with how to release it. Building and composing Resource values never runs
// an effect; only [Use] performs acquisition.
//
// A Resource value is immutable. It may be interpreted repeatedly and
// concurrently; every interpretation is an independent acquire/release
// cycle with no shared mutable state.
type Resource[A any] struct {
	n node
}

// node is the marker interface for the three description variants.
// Dispatch uses type switches in the interpreter loop; node is a pure
// marker interface carrying no behaviour.
type node interface {
	node() // unexported marker method
}

// allocateNode is a leaf acquisition. Its op is an effect yielding an
// allocated pair: the resource value and the finalizer bound to it.
type allocateNode struct {
	op Effect // F⟨allocated⟩
}

func (*allocateNode) node() {}

// bindNode sequences a source description with a continuation producing
// the next description from the source's value.
type bindNode struct {
	source node
	next   func(Erased) node
}

func (*bindNode) node() {}

// suspendNode defers construction of the description into the effect type.
// Its op yields the next node; this is what lets [TailRecM] build unbounded
// chains without growing the host stack at construction time.
type suspendNode struct {
	op Effect // F⟨node⟩
}

func (*suspendNode) node() {}

// allocated pairs an acquired value with its finalizer. It is the erased
// payload every allocate op yields; the builders below shape caller-facing
// acquire effects into it.
type allocated struct {
	value    Erased
	finalize Finalizer
}

// MakeCase builds a Resource from an acquire effect yielding A and an
// exit-case-aware release function.
func MakeCase[A any](in Sequencer, acquire Effect, release func(A, ExitCase) Effect) Resource[A] {
	op := in.Map(acquire, func(v Erased) Erased {
		a := v.(A)
		return allocated{
			value:    a,
			finalize: func(ec ExitCase) Effect { return release(a, ec) },
		}
	})
	return Resource[A]{n: &allocateNode{op: op}}
}

// Make builds a Resource from an acquire effect yielding A and a release
// function that does not observe the exit case.
func Make[A any](in Sequencer, acquire Effect, release func(A) Effect) Resource[A] {
	return MakeCase(in, acquire, func(a A, _ ExitCase) Effect { return release(a) })
}

// FromEffectCase wraps an acquire effect that already yields the value
// paired with its exit-case-aware finalizer, as Pair[A, Finalizer].
// This is the base constructor the other builders reduce to.
func FromEffectCase[A any](in Sequencer, acquire Effect) Resource[A] {
	op := in.Map(acquire, func(v Erased) Erased {
		p := v.(Pair[A, Finalizer])
		return allocated{value: p.Fst, finalize: p.Snd}
	})
	return Resource[A]{n: &allocateNode{op: op}}
}

// FromEffect wraps an acquire effect that yields the value paired with a
// plain release effect, as Pair[A, Effect]. The release effect runs
// regardless of exit case.
func FromEffect[A any](in Sequencer, acquire Effect) Resource[A] {
	op := in.Map(acquire, func(v Erased) Erased {
		p := v.(Pair[A, Effect])
		rel := p.Snd
		return allocated{
			value:    p.Fst,
			finalize: func(ExitCase) Effect { return rel },
		}
	})
	return Resource[A]{n: &allocateNode{op: op}}
}

// Pure lifts a plain value into a Resource with a no-op finalizer.
func Pure[A any](in Sequencer, a A) Resource[A] {
	return Resource[A]{n: pureNode(in, a)}
}

// pureNode is Pure without the typed wrapper, for internal rewrites that
// operate on erased values.
func pureNode(in Sequencer, v Erased) node {
	return &allocateNode{op: in.Pure(allocated{value: v, finalize: noopFinalizer(in)})}
}

// Lift lifts an effect yielding A into a Resource with a no-op finalizer.
func Lift[A any](in Sequencer, fa Effect) Resource[A] {
	op := in.Map(fa, func(v Erased) Erased {
		return allocated{value: v, finalize: noopFinalizer(in)}
	})
	return Resource[A]{n: &allocateNode{op: op}}
}

// Suspend wraps an effect that yields a Resource, deferring construction of
// the description until the effect runs. Recursive descriptions should
// recurse through Suspend so construction stays flat.
func Suspend[A any](in Sequencer, fr Effect) Resource[A] {
	op := in.Map(fr, func(v Erased) Erased {
		return v.(Resource[A]).n
	})
	return Resource[A]{n: &suspendNode{op: op}}
}
