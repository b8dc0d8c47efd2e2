// Package seq provides lazy, pull-based sequences.
//
// A Sequence is a chain of deferred operations over a source of values. No
// work happens until a terminal operation (Count, First, Join, ToSlice, ...)
// pulls values, and then each stage pulls from the previous one on demand,
// one value at a time, doing only as much work as the terminal needs:
//
//	first, ok, err := seq.Of(1, 2, 3, 4, 5).Drop(2).First() // 3, true, nil
//
// # Operations
//
// Intermediate (lazy, return a new Sequence):
//
//   - Filter, Take, Drop, TakeWhile, DropWhile, Concat, Tap (methods)
//   - Map, FlatMap, Flatten, Chunk (functions, the element type may change)
//   - ConstrainOnce: allow at most one traversal
//
// Terminal (traverse from the head): Count, ElementAt, Every, Any, Some,
// Find*, First, Last, IsEmpty, Reduce, ForEach, Join, ToSlice, and the
// functions Fold, GroupBy, Contains, ContainsAll, IndexOf, LastIndexOf.
//
// Size never traverses: it returns the size hint computed when the node was
// built, or UnknownSize.
//
// # Single-use sources
//
// A sequence built from a bare cursor (FromCursor, FromIterator, or From on
// a value with a Next method) can be traversed once. Any later terminal
// operation fails with errors.ErrIllegalState before producing a value.
//
// # Callbacks
//
// Callbacks receive the value and its zero-based position. They must not be
// used to mutate the source. A panic raised inside a callback propagates to
// the caller of the terminal operation unchanged.
package seq
