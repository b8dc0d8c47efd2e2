package observability

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/logger"
)

// Traversal statuses.
const (
	StatusCompleted = "completed"
	StatusStopped   = "stopped"
	StatusError     = "error"
)

// Error types recorded on sequence.error.total.
const (
	ErrTypeIllegalState = "illegal_state"
	ErrTypeCancelled    = "cancelled"
	ErrTypeCallback     = "callback"
)

// Traversal tracks one traversal of an instrumented sequence, from cursor
// open until exhaustion, error or Close.
type Traversal struct {
	ID        string
	Name      string
	Kind      string
	Op        string
	SizeHint  int
	StartTime time.Time
	Metrics   *Metrics

	ctx    context.Context
	span   trace.Span
	values int64
	ended  bool
}

// StartTraversal starts a span for a traversal and records the start
// metric. If metrics is nil, metric recording is skipped.
func StartTraversal(ctx context.Context, name, kind, op string, sizeHint int, metrics *Metrics) *Traversal {
	t := &Traversal{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Op:        op,
		SizeHint:  sizeHint,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
	t.ctx, t.span = StartSpan(ctx, SpanTraversal, trace.WithAttributes(
		attribute.String(AttrSequenceName, name),
		attribute.String(AttrSequenceKind, kind),
		attribute.String(AttrSequenceOp, op),
		attribute.Int(AttrSizeHint, sizeHint),
		attribute.String(AttrTraversalID, t.ID),
	))
	if metrics != nil {
		metrics.RecordTraversalStart(t.ctx, name)
	}
	return t
}

// Context returns the context carrying the traversal span.
func (t *Traversal) Context() context.Context { return t.ctx }

// Values returns the number of values produced so far.
func (t *Traversal) Values() int64 { return t.values }

// Observe counts one produced value.
func (t *Traversal) Observe() { t.values++ }

// End finishes the traversal. Only the first call has an effect.
func (t *Traversal) End(status string, err error) {
	if t.ended {
		return
	}
	t.ended = true
	duration := time.Since(t.StartTime)

	if err != nil {
		status = StatusError
		t.span.RecordError(err)
		t.span.SetStatus(codes.Error, err.Error())
		t.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	t.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrTraversalValues, t.values),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	t.span.End()

	if t.Metrics != nil {
		if err != nil {
			t.Metrics.RecordError(t.ctx, ErrorType(err), t.Name)
		}
		t.Metrics.RecordTraversalEnd(t.ctx, t.Name, t.Kind, status, t.values, duration)
	}

	fields := logger.Fields(
		logger.FieldSequence, t.Name,
		logger.FieldKind, t.Kind,
		logger.FieldTraversalID, t.ID,
		logger.FieldValues, t.values,
		logger.FieldStatus, status,
		logger.FieldDuration, duration.Milliseconds(),
	)
	log := logger.Get("observability")
	if err != nil {
		log.Debug("traversal failed", logger.MergeWithError(fields, err))
		return
	}
	log.Debug("traversal finished", fields)
}

// ErrorType classifies a traversal error for metrics.
func ErrorType(err error) string {
	switch {
	case errors.IsIllegalState(err):
		return ErrTypeIllegalState
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return ErrTypeCancelled
	default:
		return ErrTypeCallback
	}
}
