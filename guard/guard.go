// Package guard enforces the "at most one traversal" contract shared by the
// synchronous and asynchronous sequence cores.
//
// A Guard starts Fresh and moves to Consumed the first time Acquire is
// called. The transition is a single compare-and-swap, so exactly one caller
// wins even when goroutines race; every later Acquire fails with
// errors.ErrIllegalState before any value is produced.
package guard

import (
	"sync/atomic"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/logger"
)

// State is the traversal state of a Guard.
type State int32

const (
	// Fresh means no traversal has started.
	Fresh State = iota
	// Consumed means a traversal has started. There is no way back.
	Consumed
)

// String returns the state name.
func (s State) String() string {
	if s == Consumed {
		return "consumed"
	}
	return "fresh"
}

// Guard is a write-once traversal flag. The zero value is Fresh and ready to use.
type Guard struct {
	kind     string
	consumed atomic.Bool
}

// New returns a Fresh guard. kind names the owning sequence variant in the
// error reported on a second traversal.
func New(kind string) *Guard {
	return &Guard{kind: kind}
}

// Acquire marks the guard Consumed. It returns nil for the first caller and an
// illegal-state error for everyone after.
func (g *Guard) Acquire() error {
	if g.consumed.CompareAndSwap(false, true) {
		return nil
	}
	kind := g.kind
	if kind == "" {
		kind = "cursor"
	}
	logger.Get("guard").Debug("second traversal rejected", logger.Fields(logger.FieldKind, kind))
	return errors.IllegalState(kind)
}

// State reports the current state.
func (g *Guard) State() State {
	if g.consumed.Load() {
		return Consumed
	}
	return Fresh
}
