package navigation

import (
	"context"
	"sync"
)

// Callbacks holds the continuations of a navigation request.
type Callbacks struct {
	onSuccess func()
	onError   func(error)
}

// Callback configures the continuations of a navigation request.
type Callback func(*Callbacks)

// OnSuccess registers fn to run after the navigation completed and was recorded.
func OnSuccess(fn func()) Callback {
	return func(c *Callbacks) {
		c.onSuccess = fn
	}
}

// OnError registers fn to receive execution failures.
func OnError(fn func(error)) Callback {
	return func(c *Callbacks) {
		c.onError = fn
	}
}

// NewCallbacks applies opts to an empty Callbacks value.
func NewCallbacks(opts ...Callback) Callbacks {
	var c Callbacks
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Succeed runs the success continuation, if any.
func (c Callbacks) Succeed() {
	if c.onSuccess != nil {
		c.onSuccess()
	}
}

// Fail runs the error continuation, if any.
func (c Callbacks) Fail(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}

// Navigation is the handle of an in-flight navigation. Callers may ignore it
// (fire-and-forget) or wait on it.
type Navigation struct {
	id   string
	done chan struct{}
	once sync.Once
	err  error
}

// NewNavigation creates a pending navigation handle.
func NewNavigation(id string) *Navigation {
	return &Navigation{id: id, done: make(chan struct{})}
}

// ID returns the navigation identifier.
func (n *Navigation) ID() string {
	return n.id
}

// Done is closed when the navigation has finished.
func (n *Navigation) Done() <-chan struct{} {
	return n.done
}

// Err returns the outcome once Done is closed; nil before that.
func (n *Navigation) Err() error {
	select {
	case <-n.done:
		return n.err
	default:
		return nil
	}
}

// Wait blocks until the navigation finishes or ctx is done.
// A cancelled ctx stops the wait, not the navigation.
func (n *Navigation) Wait(ctx context.Context) error {
	select {
	case <-n.done:
		return n.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Complete records the outcome. Only the first call has an effect.
func (n *Navigation) Complete(err error) {
	n.once.Do(func() {
		n.err = err
		close(n.done)
	})
}
