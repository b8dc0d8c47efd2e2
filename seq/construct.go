package seq

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/guard"
	"github.com/kbukum/lazyseq/probe"
)

// --- Constructors ---

// Of creates a sequence of the given values, in order.
func Of[T any](values ...T) *Sequence[T] {
	return FromSlice(slices.Clone(values))
}

// FromSlice creates a sequence that reads items without copying them.
func FromSlice[T any](items []T) *Sequence[T] {
	return newSequence(OpSource, len(items), func() (Iterator[T], error) {
		return &sliceIter[T]{items: items}, nil
	})
}

// Empty creates a sequence with no values. Every call returns a new instance.
func Empty[T any]() *Sequence[T] {
	return newSequence(OpSource, 0, func() (Iterator[T], error) {
		return emptyIter[T]{}, nil
	})
}

// Generate creates a sequence that yields seed, then step(seed), then
// step(step(seed)), and so on. It ends the first time step returns false;
// the value returned alongside false is discarded. The sequence is unbounded
// if step never returns false.
func Generate[T any](seed T, step func(T) (T, bool)) *Sequence[T] {
	return newSequence(OpGenerate, UnknownSize, func() (Iterator[T], error) {
		return &generateIter[T]{next: seed, step: step}, nil
	})
}

// FromIterable creates a sequence over a re-iterable source. The size hint
// comes from a length or size the source advertises, if any.
func FromIterable[T any](src Iterable[T]) *Sequence[T] {
	size, ok := probe.Size(src)
	if !ok {
		size = UnknownSize
	}
	return newSequence(OpSource, size, src.Iterator)
}

// FromSeq creates a sequence over a range-over-func iterator. Each traversal
// calls seq again, so it is re-iterable exactly when seq is.
func FromSeq[T any](seq iter.Seq[T]) *Sequence[T] {
	return newSequence(OpSource, UnknownSize, func() (Iterator[T], error) {
		next, stop := iter.Pull(seq)
		return &pullIter[T]{next: next, stop: stop}, nil
	})
}

// FromCursor creates a single-use sequence over a bare cursor. If the cursor
// has a Close method it is called when the traversal ends.
func FromCursor[T any](c Cursor[T]) *Sequence[T] {
	return constrained(UnknownSize, func() (Iterator[T], error) {
		return &cursorIter[T]{cursor: c}, nil
	})
}

// FromIterator creates a single-use sequence over an already started
// Iterator.
func FromIterator[T any](it Iterator[T]) *Sequence[T] {
	return constrained(UnknownSize, func() (Iterator[T], error) {
		return it, nil
	})
}

// From creates a sequence from an arbitrary value:
//
//   - a non-nil *Sequence[T] is returned as is
//   - a cursor (Iterator[T] or Cursor[T]) becomes a single-use sequence
//   - Iterable[T], iter.Seq[T] and []T are wrapped directly
//   - any other slice or array whose elements are assignable to T is read
//     through reflection
//
// Cursors are recognised before iterables. Other values yield
// errors.ErrUnsupportedSource.
func From[T any](source any) (*Sequence[T], error) {
	switch src := source.(type) {
	case *Sequence[T]:
		if src == nil {
			return nil, errors.UnsupportedSource(fmt.Sprintf("%T", source))
		}
		return src, nil
	case Iterator[T]:
		return FromIterator(src), nil
	case Cursor[T]:
		return FromCursor(src), nil
	case Iterable[T]:
		return FromIterable(src), nil
	case iter.Seq[T]:
		return FromSeq(src), nil
	case func(func(T) bool):
		return FromSeq(iter.Seq[T](src)), nil
	case []T:
		return FromSlice(src), nil
	}
	if source == nil || probe.IsCursor(source) {
		return nil, errors.UnsupportedSource(fmt.Sprintf("%T", source))
	}
	rv := reflect.ValueOf(source)
	elem := reflect.TypeFor[T]()
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().AssignableTo(elem) {
		size, _ := probe.Size(source)
		return newSequence(OpSource, size, func() (Iterator[T], error) {
			return &reflectIter[T]{items: rv}, nil
		}), nil
	}
	return nil, errors.UnsupportedSource(fmt.Sprintf("%T", source))
}

// constrained wraps open behind a guard so that only the first traversal is
// allowed to start.
func constrained[T any](size int, open func() (Iterator[T], error)) *Sequence[T] {
	g := guard.New(Tag)
	return newSequence(OpConstrained, size, func() (Iterator[T], error) {
		if err := g.Acquire(); err != nil {
			return nil, err
		}
		return open()
	})
}
