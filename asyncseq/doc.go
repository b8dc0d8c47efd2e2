// Package asyncseq provides lazy, pull-based sequences whose values are
// resolved through a context-aware cursor.
//
// The operation set mirrors package seq. Every pull takes a context and may
// block, and every callback receives that context and may fail. Values are
// produced and consumed in source order: a stage never pulls its next value
// before the previous one has been handed downstream, so no two values of one
// pipeline are ever in flight at once.
//
// No work happens until a terminal operation pulls values:
//
//	s := asyncseq.Map(asyncseq.FromFutures(a, b, c),
//	    func(ctx context.Context, r Response, _ int) (string, error) {
//	        return r.Body, nil
//	    })
//	bodies, err := s.ToSlice(ctx)
//
// # Futures
//
// A Future resolves to a value or an error. Go starts the work in a goroutine
// and returns a Future for its result; Await turns a sequence of futures into
// a sequence of their results, resolving one at a time in order.
//
// # Cancellation
//
// The context passed to a terminal operation is checked before every pull.
// Once it is done the traversal stops with ctx.Err().
//
// # Single-use sources
//
// Sequences built from a bare cursor or a channel can be traversed once.
// A second traversal fails with errors.ErrIllegalState before producing a
// value.
package asyncseq
