package asyncseq

import (
	"context"
	"fmt"
	"iter"

	"github.com/kbukum/lazyseq/seq"
)

// Tag identifies asynchronous sequence nodes to generic introspection.
const Tag = "AsyncSequence"

// UnknownSize is the size hint of a sequence whose length cannot be known
// without traversing it.
const UnknownSize = seq.UnknownSize

// Iterator provides pull-based sequential access to the values of one
// traversal.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Cursor is a bare one-shot asynchronous cursor supplied by a caller.
type Cursor[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// Iterable produces a fresh Iterator on every call.
type Iterable[T any] interface {
	Iter(ctx context.Context) (Iterator[T], error)
}

// Sequence is one node of a lazy asynchronous pipeline. Like seq.Sequence it
// is immutable and tagged with the operation it performs.
type Sequence[T any] struct {
	op   seq.Op
	size int
	open func(ctx context.Context) (Iterator[T], error)
}

func newSequence[T any](op seq.Op, size int, open func(ctx context.Context) (Iterator[T], error)) *Sequence[T] {
	if size < 0 {
		size = UnknownSize
	}
	return &Sequence[T]{op: op, size: size, open: open}
}

// Op returns the kind of operation this node performs.
func (s *Sequence[T]) Op() seq.Op { return s.op }

// Size returns the size hint. It never traverses.
func (s *Sequence[T]) Size() int { return s.size }

// Tag returns the constant Tag.
func (s *Sequence[T]) Tag() string { return Tag }

// String describes the sequence from its size hint without traversing it.
func (s *Sequence[T]) String() string {
	switch {
	case s.size == 0:
		return Tag + " (empty)"
	case s.size > 0:
		return fmt.Sprintf("%s (%d)", Tag, s.size)
	default:
		return Tag + " (unknown)"
	}
}

// Iter starts a traversal and returns its cursor. The caller must Close it.
// Sequence itself satisfies Iterable.
func (s *Sequence[T]) Iter(ctx context.Context) (Iterator[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.open(ctx)
}

// All returns a range-over-func view of one traversal bound to ctx. A
// traversal error is yielded once, with the zero value, as the last pair.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		err := s.each(ctx, func(v T, _ int) (bool, error) {
			return yield(v, nil), nil
		})
		if err != nil {
			yield(zero, err)
		}
	}
}

// each traverses s, calling fn until it returns false or an error, values
// run out, or ctx is done.
func (s *Sequence[T]) each(ctx context.Context, fn func(v T, index int) (bool, error)) error {
	it, err := s.Iter(ctx)
	if err != nil {
		return err
	}
	defer it.Close()
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		more, err := fn(v, i)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}
