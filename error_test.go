// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"code.hybscloud.com/resource"
)

var errBoom = errors.New("boom")

func TestThrowErrorRunsNoFinalizer(t *testing.T) {
	tr := &trace{}
	r := resource.ThrowError[string](sio, errBoom)
	_, err := resource.RunSync[string](context.Background(), resource.Use(sio, r, consume(tr)))
	assert.IsError(t, err, errBoom)
	assert.Equal(t, 0, len(tr.events))
}

func TestAttemptThrowYieldsLeft(t *testing.T) {
	tr := &trace{}
	r := resource.Attempt(sio, resource.ThrowError[string](sio, errBoom))
	got, err := resource.RunSync[resource.Either[error, string]](context.Background(),
		resource.Use(sio, r, func(e resource.Either[error, string]) resource.Effect {
			return sio.Pure(e)
		}))
	assert.NoError(t, err)
	left, ok := got.GetLeft()
	assert.True(t, ok)
	assert.IsError(t, left, errBoom)
	assert.Equal(t, 0, len(tr.events))
}

func TestAttemptSuccessKeepsFinalizer(t *testing.T) {
	tr := &trace{}
	r := resource.Attempt(sio, tracked(tr, "a"))
	got, err := resource.RunSync[resource.Either[error, string]](context.Background(),
		resource.Use(sio, r, func(e resource.Either[error, string]) resource.Effect {
			tr.add("use")
			return sio.Pure(e)
		}))
	assert.NoError(t, err)
	v, ok := got.GetRight()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	// The real finalizer survives the rewrite and still runs.
	assert.Equal(t, []string{"acquire a", "use", "release a"}, tr.events)
}

func TestAttemptBindShortCircuits(t *testing.T) {
	tr := &trace{}
	continued := false
	chain := resource.Bind(tracked(tr, "a"), func(string) resource.Resource[string] {
		return resource.Bind(resource.ThrowError[string](sio, errBoom), func(string) resource.Resource[string] {
			continued = true
			return resource.Pure(sio, "unreachable")
		})
	})

	r := resource.Attempt(sio, chain)
	got, err := resource.RunSync[resource.Either[error, string]](context.Background(),
		resource.Use(sio, r, func(e resource.Either[error, string]) resource.Effect {
			tr.add("use")
			return sio.Pure(e)
		}))
	assert.NoError(t, err)
	left, ok := got.GetLeft()
	assert.True(t, ok)
	assert.IsError(t, left, errBoom)
	assert.False(t, continued)
	// The resource acquired before the failure still releases, and the
	// consumer still observes the Left inside its scope.
	assert.Equal(t, []string{"acquire a", "use", "release a"}, tr.events)
}

func TestCatchErrorRecovers(t *testing.T) {
	tr := &trace{}
	failing := resource.Then(tracked(tr, "a"), resource.ThrowError[string](sio, errBoom))
	r := resource.CatchError(sio, failing, func(err error) resource.Resource[string] {
		assert.IsError(t, err, errBoom)
		return tracked(tr, "fallback")
	})

	got, err := resource.RunSync[string](context.Background(), resource.Use(sio, r, consume(tr)))
	assert.NoError(t, err)
	assert.Equal(t, "fallback", got)
	assert.Equal(t, []string{
		"acquire a", "acquire fallback", "use", "release fallback", "release a",
	}, tr.events)
}

func TestCatchErrorPassesThroughSuccess(t *testing.T) {
	tr := &trace{}
	r := resource.CatchError(sio, tracked(tr, "a"), func(error) resource.Resource[string] {
		t.Fatal("handler invoked on success")
		return resource.Pure(sio, "")
	})
	got, err := resource.RunSync[string](context.Background(), resource.Use(sio, r, consume(tr)))
	assert.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.Equal(t, []string{"acquire a", "use", "release a"}, tr.events)
}

func TestAttemptSuspend(t *testing.T) {
	tr := &trace{}
	r := resource.Suspend[string](sio, resource.SyncDelay(func() (resource.Resource[string], error) {
		return resource.Then(tracked(tr, "s"), resource.ThrowError[string](sio, errBoom)), nil
	}))
	got, err := resource.RunSync[resource.Either[error, string]](context.Background(),
		resource.Use(sio, resource.Attempt(sio, r), func(e resource.Either[error, string]) resource.Effect {
			return sio.Pure(e)
		}))
	assert.NoError(t, err)
	left, ok := got.GetLeft()
	assert.True(t, ok)
	assert.IsError(t, left, errBoom)
	assert.Equal(t, []string{"acquire s", "release s"}, tr.events)
}
