package asyncseq

import "context"

// Future is a value that becomes available later.
type Future[T any] interface {
	// Await blocks until the value is available or ctx is done.
	Await(ctx context.Context) (T, error)
}

// FutureFunc adapts a function to Future. The function runs on every Await.
type FutureFunc[T any] func(ctx context.Context) (T, error)

// Await calls f.
func (f FutureFunc[T]) Await(ctx context.Context) (T, error) { return f(ctx) }

type settled[T any] struct {
	val T
	err error
}

func (f settled[T]) Await(context.Context) (T, error) { return f.val, f.err }

// Resolved returns a Future that is already resolved to v.
func Resolved[T any](v T) Future[T] {
	return settled[T]{val: v}
}

// Failed returns a Future that is already rejected with err.
func Failed[T any](err error) Future[T] {
	return settled[T]{err: err}
}

// Task is a Future backed by a goroutine. Every Await observes the same
// result.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn in a new goroutine and returns a Task for its result. ctx is
// passed to fn; cancelling it is fn's business.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.val, t.err = fn(ctx)
	}()
	return t
}

// Await waits for the goroutine to finish. If ctx is done first it returns
// ctx.Err() and the task keeps running.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the task has finished.
func (t *Task[T]) Done() <-chan struct{} { return t.done }
