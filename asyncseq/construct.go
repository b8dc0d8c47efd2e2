package asyncseq

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/guard"
	"github.com/kbukum/lazyseq/probe"
	"github.com/kbukum/lazyseq/seq"
)

// --- Constructors ---

// Of creates a sequence of the given values, in order.
func Of[T any](values ...T) *Sequence[T] {
	return FromSlice(slices.Clone(values))
}

// FromSlice creates a sequence that reads items without copying them.
func FromSlice[T any](items []T) *Sequence[T] {
	return newSequence(seq.OpSource, len(items), func(context.Context) (Iterator[T], error) {
		return &sliceIter[T]{items: items}, nil
	})
}

// Empty creates a sequence with no values. Every call returns a new instance.
func Empty[T any]() *Sequence[T] {
	return newSequence(seq.OpSource, 0, func(context.Context) (Iterator[T], error) {
		return emptyIter[T]{}, nil
	})
}

// Generate creates a sequence that yields the resolved seed, then
// step(seed), then step(step(seed)), and so on, until step reports false.
// The value returned alongside false is discarded. The seed is awaited on
// the first pull of each traversal.
func Generate[T any](seed Future[T], step func(context.Context, T) (T, bool, error)) *Sequence[T] {
	return newSequence(seq.OpGenerate, UnknownSize, func(context.Context) (Iterator[T], error) {
		return &generateIter[T]{seed: seed, step: step}, nil
	})
}

// FromIterable creates a sequence over a re-iterable asynchronous source.
func FromIterable[T any](src Iterable[T]) *Sequence[T] {
	size, ok := probe.Size(src)
	if !ok {
		size = UnknownSize
	}
	return newSequence(seq.OpSource, size, src.Iter)
}

// FromSequence lifts a synchronous sequence. It keeps the size hint, and a
// single-use sequence stays single-use.
func FromSequence[T any](s *seq.Sequence[T]) *Sequence[T] {
	op := seq.OpSource
	if s.Op() == seq.OpConstrained {
		op = seq.OpConstrained
	}
	return newSequence(op, s.Size(), func(context.Context) (Iterator[T], error) {
		it, err := s.Iterator()
		if err != nil {
			return nil, err
		}
		return &liftIter[T]{source: it}, nil
	})
}

// FromSeq creates a sequence over a range-over-func iterator.
func FromSeq[T any](s iter.Seq[T]) *Sequence[T] {
	return FromSequence(seq.FromSeq(s))
}

// FromCursor creates a single-use sequence over a bare cursor. If the cursor
// has a Close method it is called when the traversal ends.
func FromCursor[T any](c Cursor[T]) *Sequence[T] {
	return constrained(UnknownSize, func(context.Context) (Iterator[T], error) {
		return &cursorIter[T]{cursor: c}, nil
	})
}

// FromIterator creates a single-use sequence over an already started
// Iterator.
func FromIterator[T any](it Iterator[T]) *Sequence[T] {
	return constrained(UnknownSize, func(context.Context) (Iterator[T], error) {
		return it, nil
	})
}

// FromChannel creates a single-use sequence that receives from ch until it
// is closed.
func FromChannel[T any](ch <-chan T) *Sequence[T] {
	return constrained(UnknownSize, func(context.Context) (Iterator[T], error) {
		return &channelIter[T]{ch: ch}, nil
	})
}

// FromFutures creates a sequence of the results of futures, awaited one at
// a time in order.
func FromFutures[T any](futures ...Future[T]) *Sequence[T] {
	return Await(Of(futures...))
}

// From creates a sequence from an arbitrary value. In order:
//
//   - a non-nil *Sequence[T] is returned as is, a non-nil *seq.Sequence[T]
//     is lifted
//   - an asynchronous cursor (Iterator[T] or Cursor[T]) or a channel becomes
//     a single-use sequence
//   - Iterable[T] is wrapped directly
//   - anything seq.From accepts is lifted, which covers synchronous cursors,
//     iterables, range-over-func iterators and slices
//
// Other values yield errors.ErrUnsupportedSource.
func From[T any](source any) (*Sequence[T], error) {
	switch src := source.(type) {
	case *Sequence[T]:
		if src == nil {
			return nil, errors.UnsupportedSource(fmt.Sprintf("%T", source))
		}
		return src, nil
	case *seq.Sequence[T]:
		if src == nil {
			return nil, errors.UnsupportedSource(fmt.Sprintf("%T", source))
		}
		return FromSequence(src), nil
	case Iterator[T]:
		return FromIterator(src), nil
	case Cursor[T]:
		return FromCursor(src), nil
	case chan T:
		return FromChannel(src), nil
	case <-chan T:
		return FromChannel(src), nil
	case Iterable[T]:
		return FromIterable(src), nil
	}
	if probe.IsAsyncIterable(source) {
		return nil, errors.UnsupportedSource(fmt.Sprintf("%T", source))
	}
	s, err := seq.From[T](source)
	if err != nil {
		return nil, err
	}
	return FromSequence(s), nil
}

// Await resolves each future of s in order. The size hint is preserved.
func Await[T any](s *Sequence[Future[T]]) *Sequence[T] {
	return newSequence(seq.OpMap, s.size, func(ctx context.Context) (Iterator[T], error) {
		src, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		return &awaitIter[T]{source: src}, nil
	})
}

func constrained[T any](size int, open func(context.Context) (Iterator[T], error)) *Sequence[T] {
	g := guard.New(Tag)
	return newSequence(seq.OpConstrained, size, func(ctx context.Context) (Iterator[T], error) {
		if err := g.Acquire(); err != nil {
			return nil, err
		}
		return open(ctx)
	})
}
