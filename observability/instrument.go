package observability

import (
	"context"

	"github.com/kbukum/lazyseq/asyncseq"
	"github.com/kbukum/lazyseq/seq"
)

// Instrument traces and meters every traversal of s under name. The result
// has the same size hint and laziness as s; nothing is recorded until a
// terminal operation opens a cursor. m may be nil.
func Instrument[T any](s *seq.Sequence[T], name string, m *Metrics) *seq.Sequence[T] {
	return InstrumentContext(context.Background(), s, name, m)
}

// InstrumentContext is like Instrument but parents traversal spans on ctx.
func InstrumentContext[T any](ctx context.Context, s *seq.Sequence[T], name string, m *Metrics) *seq.Sequence[T] {
	kind, op, size := s.Tag(), s.Op().String(), s.Size()
	return s.Intercept(func(it seq.Iterator[T], err error) (seq.Iterator[T], error) {
		t := StartTraversal(ctx, name, kind, op, size, m)
		if err != nil {
			t.End(StatusError, err)
			return nil, err
		}
		return &tracedIter[T]{source: it, t: t}, nil
	})
}

// InstrumentAsync traces and meters every traversal of an asynchronous
// sequence. Spans are parented on the context of the terminal operation.
func InstrumentAsync[T any](s *asyncseq.Sequence[T], name string, m *Metrics) *asyncseq.Sequence[T] {
	kind, op, size := s.Tag(), s.Op().String(), s.Size()
	return s.Intercept(func(ctx context.Context, it asyncseq.Iterator[T], err error) (asyncseq.Iterator[T], error) {
		t := StartTraversal(ctx, name, kind, op, size, m)
		if err != nil {
			t.End(StatusError, err)
			return nil, err
		}
		return &tracedAsyncIter[T]{source: it, t: t}, nil
	})
}

type tracedIter[T any] struct {
	source seq.Iterator[T]
	t      *Traversal
}

func (it *tracedIter[T]) Next() (T, bool, error) {
	val, ok, err := it.source.Next()
	it.t.record(ok, err)
	return val, ok, err
}

func (it *tracedIter[T]) Close() error {
	err := it.source.Close()
	it.t.End(StatusStopped, nil)
	return err
}

type tracedAsyncIter[T any] struct {
	source asyncseq.Iterator[T]
	t      *Traversal
}

func (it *tracedAsyncIter[T]) Next(ctx context.Context) (T, bool, error) {
	val, ok, err := it.source.Next(ctx)
	it.t.record(ok, err)
	return val, ok, err
}

func (it *tracedAsyncIter[T]) Close() error {
	err := it.source.Close()
	it.t.End(StatusStopped, nil)
	return err
}

func (t *Traversal) record(ok bool, err error) {
	switch {
	case err != nil:
		t.End(StatusError, err)
	case ok:
		t.Observe()
	default:
		t.End(StatusCompleted, nil)
	}
}
