package asyncseq

import (
	"context"

	"github.com/kbukum/lazyseq/seq"
)

// Map transforms each value with fn. The size hint is preserved. An error
// from fn ends the traversal and is returned as is.
func Map[T, U any](s *Sequence[T], fn func(context.Context, T, int) (U, error)) *Sequence[U] {
	return newSequence(seq.OpMap, s.size, func(ctx context.Context) (Iterator[U], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &mapIter[T, U]{source: src, fn: fn}, nil
	})
}

// FlatMap transforms each value into a sequence and yields the values of
// each inner sequence in turn. A nil inner sequence is skipped.
func FlatMap[T, U any](s *Sequence[T], fn func(context.Context, T, int) (*Sequence[U], error)) *Sequence[U] {
	return newSequence(seq.OpFlatMap, UnknownSize, func(ctx context.Context) (Iterator[U], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &flatMapIter[T, U]{source: src, fn: fn}, nil
	})
}

// Flatten yields every value of every inner sequence, in order.
func Flatten[T any](s *Sequence[*Sequence[T]]) *Sequence[T] {
	return newSequence(seq.OpFlatten, UnknownSize, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &flatMapIter[*Sequence[T], T]{
			source: src,
			fn: func(_ context.Context, inner *Sequence[T], _ int) (*Sequence[T], error) {
				return inner, nil
			},
		}, nil
	})
}

// Chunk groups consecutive values into slices of at most size values. A
// size below 1 is treated as 1.
func Chunk[T any](s *Sequence[T], size int) *Sequence[[]T] {
	if size < 1 {
		size = 1
	}
	hint := UnknownSize
	if s.size >= 0 {
		hint = (s.size + size - 1) / size
	}
	return newSequence(seq.OpChunk, hint, func(ctx context.Context) (Iterator[[]T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &chunkIter[T]{source: src, size: size}, nil
	})
}

// Filter keeps the values for which fn returns true.
func (s *Sequence[T]) Filter(fn func(context.Context, T, int) (bool, error)) *Sequence[T] {
	return newSequence(seq.OpFilter, UnknownSize, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &filterIter[T]{source: src, fn: fn}, nil
	})
}

// Take yields at most the first n values and never pulls more than n values
// from upstream.
func (s *Sequence[T]) Take(n int) *Sequence[T] {
	n = max(n, 0)
	hint := UnknownSize
	switch {
	case n == 0:
		hint = 0
	case s.size >= 0:
		hint = min(n, s.size)
	}
	return newSequence(seq.OpTake, hint, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &takeIter[T]{source: src, n: n}, nil
	})
}

// Drop skips the first n values.
func (s *Sequence[T]) Drop(n int) *Sequence[T] {
	n = max(n, 0)
	hint := UnknownSize
	if s.size >= 0 {
		hint = max(0, s.size-n)
	}
	return newSequence(seq.OpDrop, hint, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &dropIter[T]{source: src, n: n}, nil
	})
}

// TakeWhile yields values until fn first returns false.
func (s *Sequence[T]) TakeWhile(fn func(context.Context, T, int) (bool, error)) *Sequence[T] {
	return newSequence(seq.OpTakeWhile, UnknownSize, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &takeWhileIter[T]{source: src, fn: fn}, nil
	})
}

// DropWhile skips values while fn returns true, then yields the rest
// without calling fn again.
func (s *Sequence[T]) DropWhile(fn func(context.Context, T, int) (bool, error)) *Sequence[T] {
	return newSequence(seq.OpDropWhile, UnknownSize, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &dropWhileIter[T]{source: src, fn: fn}, nil
	})
}

// Concat yields all values of s, then all values of other. other is opened
// once s is exhausted.
func (s *Sequence[T]) Concat(other *Sequence[T]) *Sequence[T] {
	hint := UnknownSize
	if s.size >= 0 && other.size >= 0 {
		hint = s.size + other.size
	}
	first, second := s.open, other.open
	return newSequence(seq.OpConcat, hint, func(ctx context.Context) (Iterator[T], error) {
		src, err := first(ctx)
		if err != nil {
			return nil, err
		}
		return &concatIter[T]{
			current: src,
			rest:    []func(context.Context) (Iterator[T], error){second},
		}, nil
	})
}

// ConstrainOnce returns a view of s that can be traversed once.
func (s *Sequence[T]) ConstrainOnce() *Sequence[T] {
	return constrained(s.size, s.open)
}

// Tap calls fn for each value as it passes through. An error from fn ends
// the traversal.
func (s *Sequence[T]) Tap(fn func(context.Context, T, int) error) *Sequence[T] {
	return newSequence(seq.OpTap, s.size, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &tapIter[T]{source: src, fn: fn}, nil
	})
}

// Intercept decorates the start of every traversal. fn receives the
// traversal context and the result of opening s, and returns what the
// caller of the traversal sees.
func (s *Sequence[T]) Intercept(fn func(context.Context, Iterator[T], error) (Iterator[T], error)) *Sequence[T] {
	return newSequence(seq.OpIntercept, s.size, func(ctx context.Context) (Iterator[T], error) {
		it, err := s.open(ctx)
		return fn(ctx, it, err)
	})
}
