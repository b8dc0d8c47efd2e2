package seq

import (
	"io"
	"reflect"
)

// --- Source iterators ---

type emptyIter[T any] struct{}

func (emptyIter[T]) Next() (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (emptyIter[T]) Close() error { return nil }

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next() (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type reflectIter[T any] struct {
	items reflect.Value
	index int
}

func (it *reflectIter[T]) Next() (T, bool, error) {
	if it.index >= it.items.Len() {
		var zero T
		return zero, false, nil
	}
	// A nil interface element reads as the zero T.
	val, _ := it.items.Index(it.index).Interface().(T)
	it.index++
	return val, true, nil
}

func (it *reflectIter[T]) Close() error { return nil }

type generateIter[T any] struct {
	next    T
	step    func(T) (T, bool)
	started bool
	done    bool
}

func (it *generateIter[T]) Next() (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	if !it.started {
		it.started = true
		return it.next, true, nil
	}
	val, ok := it.step(it.next)
	if !ok {
		it.done = true
		return zero, false, nil
	}
	it.next = val
	return val, true, nil
}

func (it *generateIter[T]) Close() error { return nil }

type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next() (T, bool, error) {
	val, ok := it.next()
	return val, ok, nil
}

func (it *pullIter[T]) Close() error {
	it.stop()
	return nil
}

type cursorIter[T any] struct {
	cursor Cursor[T]
}

func (it *cursorIter[T]) Next() (T, bool, error) {
	val, ok := it.cursor.Next()
	return val, ok, nil
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

// --- Operator iterators ---

type mapIter[T, U any] struct {
	source Iterator[T]
	fn     func(T, int) U
	index  int
}

func (it *mapIter[T, U]) Next() (U, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		var zero U
		return zero, false, err
	}
	out := it.fn(val, it.index)
	it.index++
	return out, true, nil
}

func (it *mapIter[T, U]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T, int) bool
	index  int
}

func (it *filterIter[T]) Next() (T, bool, error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return val, false, err
		}
		keep := it.fn(val, it.index)
		it.index++
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

func (it *takeIter[T]) Next() (T, bool, error) {
	if it.taken >= it.n {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return val, false, err
	}
	it.taken++
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type dropIter[T any] struct {
	source  Iterator[T]
	n       int
	skipped bool
}

func (it *dropIter[T]) Next() (T, bool, error) {
	if !it.skipped {
		it.skipped = true
		for i := 0; i < it.n; i++ {
			val, ok, err := it.source.Next()
			if err != nil || !ok {
				return val, false, err
			}
		}
	}
	return it.source.Next()
}

func (it *dropIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	fn     func(T, int) bool
	index  int
	done   bool
}

func (it *takeWhileIter[T]) Next() (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return zero, false, err
	}
	keep := it.fn(val, it.index)
	it.index++
	if !keep {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type dropWhileIter[T any] struct {
	source   Iterator[T]
	fn       func(T, int) bool
	index    int
	dropping bool
}

func (it *dropWhileIter[T]) Next() (T, bool, error) {
	for it.dropping {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return val, false, err
		}
		drop := it.fn(val, it.index)
		it.index++
		if !drop {
			it.dropping = false
			return val, true, nil
		}
	}
	return it.source.Next()
}

func (it *dropWhileIter[T]) Close() error { return it.source.Close() }

type flatMapIter[T, U any] struct {
	source  Iterator[T]
	fn      func(T, int) *Sequence[U]
	index   int
	current Iterator[U]
}

func (it *flatMapIter[T, U]) Next() (U, bool, error) {
	var zero U
	for {
		if it.current != nil {
			val, ok, err := it.current.Next()
			if err != nil {
				return zero, false, err
			}
			if ok {
				return val, true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		in, ok, err := it.source.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		inner := it.fn(in, it.index)
		it.index++
		if inner == nil {
			continue
		}
		it.current, err = inner.open()
		if err != nil {
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
	rest    []func() (Iterator[T], error)
}

func (it *concatIter[T]) Next() (T, bool, error) {
	var zero T
	for it.current != nil {
		val, ok, err := it.current.Next()
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
		next, err := it.rest[0]()
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
	fn     func(T, int)
	index  int
}

func (it *tapIter[T]) Next() (T, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return val, ok, err
	}
	it.fn(val, it.index)
	it.index++
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }

type chunkIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
}

func (it *chunkIter[T]) Next() ([]T, bool, error) {
	if it.done {
		return nil, false, nil
	}
	chunk := make([]T, 0, it.size)
	for len(chunk) < it.size {
		val, ok, err := it.source.Next()
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
