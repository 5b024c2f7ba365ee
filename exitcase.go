// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

// exitKind discriminates the three ways a bracket scope can settle.
type exitKind uint8

const (
	exitCompleted exitKind = iota
	exitErrored
	exitCanceled
)

// ExitCase describes how the protected phase of a bracket scope settled.
// Every finalizer receives the ExitCase of its own scope, so cleanup can
// branch on outcome (commit on Completed, roll back on Errored, and so on).
type ExitCase struct {
	kind exitKind
	err  error
}

// Completed is the exit case of a scope whose use phase succeeded.
func Completed() ExitCase {
	return ExitCase{kind: exitCompleted}
}

// Errored is the exit case of a scope whose use phase failed with err.
func Errored(err error) ExitCase {
	return ExitCase{kind: exitErrored, err: err}
}

// Canceled is the exit case of a scope that was cancelled mid-use.
func Canceled() ExitCase {
	return ExitCase{kind: exitCanceled}
}

// IsCompleted returns true if the scope settled successfully.
func (e ExitCase) IsCompleted() bool { return e.kind == exitCompleted }

// IsErrored returns true if the scope settled with an error.
func (e ExitCase) IsErrored() bool { return e.kind == exitErrored }

// IsCanceled returns true if the scope was cancelled.
func (e ExitCase) IsCanceled() bool { return e.kind == exitCanceled }

// Err returns the use-phase error for an Errored exit case, or nil.
func (e ExitCase) Err() error { return e.err }

// String returns a short description for logs and test failures.
func (e ExitCase) String() string {
	switch e.kind {
	case exitErrored:
		if e.err != nil {
			return "errored: " + e.err.Error()
		}
		return "errored"
	case exitCanceled:
		return "canceled"
	default:
		return "completed"
	}
}
