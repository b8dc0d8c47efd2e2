// Package errors provides the structured error type shared by lazyseq
// packages.
//
// Every failure raised by the library itself is an *AppError carrying a
// machine-readable ErrorCode. Sentinels such as ErrIllegalState compare by
// code, so callers can match them with the standard library:
//
//	if errors.Is(err, lserrors.ErrIllegalState) {
//	    // the sequence was constrained to one traversal and is already consumed
//	}
//
// Errors returned by caller-supplied callbacks are never wrapped in an
// AppError; they reach the caller unchanged.
package errors
