package asyncseq

import (
	"context"
	"io"

	"github.com/kbukum/lazyseq/seq"
)

// --- Source iterators ---

type emptyIter[T any] struct{}

func (emptyIter[T]) Next(context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (emptyIter[T]) Close() error { return nil }

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.index >= len(it.items) {
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type generateIter[T any] struct {
	seed    Future[T]
	step    func(context.Context, T) (T, bool, error)
	last    T
	started bool
	done    bool
}

func (it *generateIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	if !it.started {
		val, err := it.seed.Await(ctx)
		if err != nil {
			return zero, false, err
		}
		it.started = true
		it.last = val
		return val, true, nil
	}
	val, ok, err := it.step(ctx, it.last)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.done = true
		return zero, false, nil
	}
	it.last = val
	return val, true, nil
}

func (it *generateIter[T]) Close() error { return nil }

// liftIter reads a synchronous iterator.
type liftIter[T any] struct {
	source seq.Iterator[T]
}

func (it *liftIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	return it.source.Next()
}

func (it *liftIter[T]) Close() error { return it.source.Close() }

type cursorIter[T any] struct {
	cursor Cursor[T]
}

func (it *cursorIter[T]) Next(ctx context.Context) (T, bool, error) {
	return it.cursor.Next(ctx)
}

func (it *cursorIter[T]) Close() error {
	switch c := it.cursor.(type) {
	case io.Closer:
		return c.Close()
	case interface{ Close() }:
		c.Close()
	}
	return nil
}

// channelIter receives from a channel until it is closed.
type channelIter[T any] struct {
	ch <-chan T
}

func (it *channelIter[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case v, open := <-it.ch:
		return v, open, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (it *channelIter[T]) Close() error { return nil }

type awaitIter[T any] struct {
	source Iterator[Future[T]]
}

func (it *awaitIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	f, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	val, err := f.Await(ctx)
	if err != nil {
		return zero, false, err
	}
	return val, true, nil
}

func (it *awaitIter[T]) Close() error { return it.source.Close() }

// --- Operator iterators ---

type mapIter[T, U any] struct {
	source Iterator[T]
	fn     func(context.Context, T, int) (U, error)
	index  int
}

func (it *mapIter[T, U]) Next(ctx context.Context) (U, bool, error) {
	var zero U
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := it.fn(ctx, val, it.index)
	it.index++
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[T, U]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T, int) (bool, error)
	index  int
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		keep, err := it.fn(ctx, val, it.index)
		it.index++
		if err != nil {
			return zero, false, err
		}
		if keep {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source Iterator[T]
	n      int
	taken  int
}

func (it *takeIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.taken >= it.n {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	it.taken++
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type dropIter[T any] struct {
	source  Iterator[T]
	n       int
	skipped int
}

func (it *dropIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for it.skipped < it.n {
		_, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		it.skipped++
	}
	return it.source.Next(ctx)
}

func (it *dropIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T, int) (bool, error)
	index  int
	done   bool
}

func (it *takeWhileIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	keep, err := it.fn(ctx, val, it.index)
	it.index++
	if err != nil {
		return zero, false, err
	}
	if !keep {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type dropWhileIter[T any] struct {
	source   Iterator[T]
	fn       func(context.Context, T, int) (bool, error)
	index    int
	yielding bool
}

func (it *dropWhileIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for !it.yielding {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		drop, err := it.fn(ctx, val, it.index)
		it.index++
		if err != nil {
			return zero, false, err
		}
		if !drop {
			it.yielding = true
			return val, true, nil
		}
	}
	return it.source.Next(ctx)
}

func (it *dropWhileIter[T]) Close() error { return it.source.Close() }

type flatMapIter[T, U any] struct {
	source  Iterator[T]
	fn      func(context.Context, T, int) (*Sequence[U], error)
	index   int
	current Iterator[U]
}

func (it *flatMapIter[T, U]) Next(ctx context.Context) (U, bool, error) {
	var zero U
	for {
		if it.current != nil {
			val, ok, err := it.current.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if ok {
				return val, true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		in, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		inner, err := it.fn(ctx, in, it.index)
		it.index++
		if err != nil {
			return zero, false, err
		}
		if inner == nil {
			continue
		}
		if it.current, err = inner.open(ctx); err != nil {
			return zero, false, err
		}
	}
}

func (it *flatMapIter[T, U]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
	}
	return it.source.Close()
}

type concatIter[T any] struct {
	current Iterator[T]
	rest    []func(context.Context) (Iterator[T], error)
}

func (it *concatIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for it.current != nil {
		val, ok, err := it.current.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return val, true, nil
		}
		if len(it.rest) == 0 {
			return zero, false, nil
		}
		_ = it.current.Close()
		it.current = nil
		next, err := it.rest[0](ctx)
		if err != nil {
			return zero, false, err
		}
		it.current, it.rest = next, it.rest[1:]
	}
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	if it.current == nil {
		return nil
	}
	return it.current.Close()
}

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T, int) error
	index  int
}

func (it *tapIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	err = it.fn(ctx, val, it.index)
	it.index++
	if err != nil {
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }

type chunkIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
}

func (it *chunkIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.done {
		return nil, false, nil
	}
	chunk := make([]T, 0, it.size)
	for len(chunk) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			break
		}
		chunk = append(chunk, val)
	}
	if len(chunk) == 0 {
		return nil, false, nil
	}
	return chunk, true, nil
}

func (it *chunkIter[T]) Close() error { return it.source.Close() }
