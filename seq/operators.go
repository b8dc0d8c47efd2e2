package seq

// Map transforms each value with fn. The size hint is preserved.
func Map[T, U any](s *Sequence[T], fn func(T, int) U) *Sequence[U] {
	return newSequence(OpMap, s.size, func() (Iterator[U], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &mapIter[T, U]{source: src, fn: fn}, nil
	})
}

// FlatMap transforms each value into a sequence and yields the values of
// each inner sequence in turn. An inner sequence is drained before the next
// source value is pulled.
func FlatMap[T, U any](s *Sequence[T], fn func(T, int) *Sequence[U]) *Sequence[U] {
	return newSequence(OpFlatMap, UnknownSize, func() (Iterator[U], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &flatMapIter[T, U]{source: src, fn: fn}, nil
	})
}

// Flatten yields every value of every inner sequence, in order. It flattens
// one level only.
func Flatten[T any](s *Sequence[*Sequence[T]]) *Sequence[T] {
	return newSequence(OpFlatten, UnknownSize, func() (Iterator[T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &flatMapIter[*Sequence[T], T]{
			source: src,
			fn:     func(inner *Sequence[T], _ int) *Sequence[T] { return inner },
		}, nil
	})
}

// Chunk groups consecutive values into slices of at most size values. The
// last chunk may be shorter. A size below 1 is treated as 1.
func Chunk[T any](s *Sequence[T], size int) *Sequence[[]T] {
	if size < 1 {
		size = 1
	}
	hint := UnknownSize
	if s.size >= 0 {
		hint = (s.size + size - 1) / size
	}
	return newSequence(OpChunk, hint, func() (Iterator[[]T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &chunkIter[T]{source: src, size: size}, nil
	})
}

// Filter keeps the values for which fn returns true. fn receives each
// value's position in the source.
func (s *Sequence[T]) Filter(fn func(T, int) bool) *Sequence[T] {
	return newSequence(OpFilter, UnknownSize, func() (Iterator[T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &filterIter[T]{source: src, fn: fn}, nil
	})
}

// Take yields at most the first n values and never pulls more than n values
// from upstream. A negative n is treated as 0.
func (s *Sequence[T]) Take(n int) *Sequence[T] {
	n = max(n, 0)
	hint := UnknownSize
	switch {
	case n == 0:
		hint = 0
	case s.size >= 0:
		hint = min(n, s.size)
	}
	return newSequence(OpTake, hint, func() (Iterator[T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &takeIter[T]{source: src, n: n}, nil
	})
}

// Drop skips the first n values. A negative n is treated as 0.
func (s *Sequence[T]) Drop(n int) *Sequence[T] {
	n = max(n, 0)
	hint := UnknownSize
	if s.size >= 0 {
		hint = max(0, s.size-n)
	}
	return newSequence(OpDrop, hint, func() (Iterator[T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &dropIter[T]{source: src, n: n}, nil
	})
}

// TakeWhile yields values until fn first returns false. The failing value
// and everything after it are excluded.
func (s *Sequence[T]) TakeWhile(fn func(T, int) bool) *Sequence[T] {
	return newSequence(OpTakeWhile, UnknownSize, func() (Iterator[T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &takeWhileIter[T]{source: src, fn: fn}, nil
	})
}

// DropWhile skips values while fn returns true. From the first value for
// which fn returns false, every value is yielded and fn is not called again.
func (s *Sequence[T]) DropWhile(fn func(T, int) bool) *Sequence[T] {
	return newSequence(OpDropWhile, UnknownSize, func() (Iterator[T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &dropWhileIter[T]{source: src, fn: fn, dropping: true}, nil
	})
}

// Concat yields all values of s, then all values of other. other is not
// opened until s is exhausted.
func (s *Sequence[T]) Concat(other *Sequence[T]) *Sequence[T] {
	hint := UnknownSize
	if s.size >= 0 && other.size >= 0 {
		hint = s.size + other.size
	}
	first, second := s.open, other.open
	return newSequence(OpConcat, hint, func() (Iterator[T], error) {
		src, err := first()
		if err != nil {
			return nil, err
		}
		return &concatIter[T]{current: src, rest: []func() (Iterator[T], error){second}}, nil
	})
}

// ConstrainOnce returns a view of s that can be traversed once. The view
// keeps the size hint of s.
func (s *Sequence[T]) ConstrainOnce() *Sequence[T] {
	return constrained(s.size, s.open)
}

// Tap calls fn for each value as it passes through, then yields the value
// unchanged. The size hint is preserved.
func (s *Sequence[T]) Tap(fn func(T, int)) *Sequence[T] {
	return newSequence(OpTap, s.size, func() (Iterator[T], error) {
		src, err := s.open()
		if err != nil {
			return nil, err
		}
		return &tapIter[T]{source: src, fn: fn}, nil
	})
}

// Intercept decorates the start of every traversal. fn receives the result
// of opening s (the cursor, or the error that prevented it) and returns what
// the caller of the traversal sees. The size hint is preserved.
func (s *Sequence[T]) Intercept(fn func(Iterator[T], error) (Iterator[T], error)) *Sequence[T] {
	return newSequence(OpIntercept, s.size, func() (Iterator[T], error) {
		return fn(s.open())
	})
}
