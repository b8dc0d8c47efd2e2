package seq

import (
	"fmt"
	"iter"
)

// Tag identifies synchronous sequence nodes to generic introspection.
const Tag = "Sequence"

// UnknownSize is the size hint of a sequence whose length cannot be known
// without traversing it.
const UnknownSize = -1

// Iterator provides pull-based sequential access to the values of one
// traversal.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next() (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Cursor is a bare one-shot cursor supplied by a caller.
type Cursor[T any] interface {
	// Next returns the next value, or false when exhausted.
	Next() (T, bool)
}

// Iterable produces a fresh Iterator on every call.
type Iterable[T any] interface {
	Iterator() (Iterator[T], error)
}

// Op tags the operation a pipeline node performs.
type Op uint8

const (
	OpSource Op = iota
	OpGenerate
	OpConstrained
	OpMap
	OpFilter
	OpTake
	OpDrop
	OpTakeWhile
	OpDropWhile
	OpFlatten
	OpFlatMap
	OpConcat
	OpTap
	OpChunk
	OpIntercept
)

var opNames = [...]string{
	OpSource:      "source",
	OpGenerate:    "generate",
	OpConstrained: "constrained",
	OpMap:         "map",
	OpFilter:      "filter",
	OpTake:        "take",
	OpDrop:        "drop",
	OpTakeWhile:   "take_while",
	OpDropWhile:   "drop_while",
	OpFlatten:     "flatten",
	OpFlatMap:     "flat_map",
	OpConcat:      "concat",
	OpTap:         "tap",
	OpChunk:       "chunk",
	OpIntercept:   "intercept",
}

// String returns the operation name.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", o)
}

// Sequence is one node of a lazy pipeline. It is immutable: every
// intermediate operation returns a new node and leaves the receiver usable.
type Sequence[T any] struct {
	op   Op
	size int
	open func() (Iterator[T], error)
}

func newSequence[T any](op Op, size int, open func() (Iterator[T], error)) *Sequence[T] {
	if size < 0 {
		size = UnknownSize
	}
	return &Sequence[T]{op: op, size: size, open: open}
}

// Op returns the kind of operation this node performs.
func (s *Sequence[T]) Op() Op { return s.op }

// Size returns the size hint: the exact number of values every traversal
// yields, or UnknownSize. It never traverses.
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

// Iterator starts a traversal and returns its cursor. The caller must Close
// it. For a single-use sequence only the first call succeeds.
func (s *Sequence[T]) Iterator() (Iterator[T], error) {
	return s.open()
}

// All returns a range-over-func view of one traversal. A traversal error is
// yielded once, with the zero value, as the last pair.
//
//	for v, err := range s.All() {
//	    if err != nil { ... }
//	}
func (s *Sequence[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it, err := s.open()
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		defer it.Close()
		for {
			v, ok, err := it.Next()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// each traverses s, calling fn until it returns false or values run out.
func (s *Sequence[T]) each(fn func(v T, index int) bool) error {
	it, err := s.open()
	if err != nil {
		return err
	}
	defer it.Close()
	for i := 0; ; i++ {
		v, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok || !fn(v, i) {
			return nil
		}
	}
}
