package pubsub

import "context"

// Listen subscribes to s and calls fn for every event on a dedicated goroutine
// until ctx is cancelled or the subscription closes. The returned channel is
// closed once the goroutine exits.
func Listen[T any](ctx context.Context, s Subscriber[T], fn func(Event[T])) <-chan struct{} {
	ch := s.Subscribe(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				fn(event)
			}
		}
	}()
	return stopped
}
