package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kbukum/lazyseq/asyncseq"
	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/observability"
	"github.com/kbukum/lazyseq/seq"
)

// syncReport is the outcome of the synchronous pipeline.
type syncReport struct {
	Evens      string
	ChunkSums  []int
	Total      int
	Replayed   bool
	OnceFailed bool
}

// asyncReport is the outcome of the asynchronous pipeline.
type asyncReport struct {
	Squares string
	Max     int
}

func isEven(v, _ int) bool { return v%2 == 0 }

func sumInts(values []int) (int, error) {
	return seq.Fold(seq.FromSlice(values), 0, func(acc, v, _ int) int { return acc + v })
}

// runSync filters even naturals from an unbounded source, joins a prefix
// of them, sums them in chunks, and shows that a single-use source refuses
// a second traversal.
func runSync(cfg DemoConfig, m *observability.Metrics) (*syncReport, error) {
	naturals := seq.Generate(1, func(v int) (int, bool) { return v + 1, true })
	evens := observability.Instrument(naturals.Filter(isEven).Take(cfg.Take), "sync.evens", m)

	joined, err := evens.Join(seq.WithLimit(cfg.JoinLimit))
	if err != nil {
		return nil, fmt.Errorf("joining evens: %w", err)
	}

	chunks, err := seq.Chunk(evens, cfg.Chunk).ToSlice()
	if err != nil {
		return nil, fmt.Errorf("chunking evens: %w", err)
	}
	sums := make([]int, 0, len(chunks))
	for _, chunk := range chunks {
		sum, err := sumInts(chunk)
		if err != nil {
			return nil, fmt.Errorf("summing chunk: %w", err)
		}
		sums = append(sums, sum)
	}
	total, err := sumInts(sums)
	if err != nil {
		return nil, fmt.Errorf("summing totals: %w", err)
	}

	// Reusable pipelines recompute on every terminal.
	again, err := evens.Count()
	if err != nil {
		return nil, fmt.Errorf("recounting evens: %w", err)
	}

	once := observability.Instrument(seq.FromCursor(&countdown{n: 3}), "sync.countdown", m)
	if _, err := once.ToSlice(); err != nil {
		return nil, fmt.Errorf("draining countdown: %w", err)
	}
	_, err = once.ToSlice()
	onceFailed := errors.IsIllegalState(err)
	if err != nil && !onceFailed {
		return nil, err
	}

	return &syncReport{
		Evens:      joined,
		ChunkSums:  sums,
		Total:      total,
		Replayed:   again == cfg.Take,
		OnceFailed: onceFailed,
	}, nil
}

// runAsync squares 1..tasks concurrently, awaits the futures in order,
// and joins the results.
func runAsync(ctx context.Context, cfg DemoConfig, m *observability.Metrics) (*asyncReport, error) {
	futures := make([]asyncseq.Future[int], cfg.Tasks)
	for i := range futures {
		n := i + 1
		futures[i] = asyncseq.Go(ctx, func(ctx context.Context) (int, error) {
			select {
			case <-time.After(time.Duration(cfg.Tasks-n) * time.Millisecond):
				return n * n, nil
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		})
	}

	squares := observability.InstrumentAsync(asyncseq.FromFutures(futures...), "async.squares", m)
	labels := asyncseq.Map(squares, func(_ context.Context, v, i int) (string, error) {
		return strconv.Itoa(i+1) + "²=" + strconv.Itoa(v), nil
	})

	joined, err := labels.Join(ctx, seq.WithSeparator(" "), seq.WithLimit(cfg.JoinLimit))
	if err != nil {
		return nil, fmt.Errorf("joining squares: %w", err)
	}
	maxSquare, _, err := squares.Reduce(ctx, func(_ context.Context, acc, v, _ int) (int, error) {
		return max(acc, v), nil
	})
	if err != nil {
		return nil, fmt.Errorf("reducing squares: %w", err)
	}

	logger.Get("seqdemo").Debug("async pipeline finished", logger.Fields(
		logger.FieldSequence, "async.squares",
		logger.FieldValues, cfg.Tasks,
	))
	return &asyncReport{Squares: joined, Max: maxSquare}, nil
}

// countdown is a single-use cursor yielding n, n-1, ..., 1.
type countdown struct{ n int }

func (c *countdown) Next() (int, bool) {
	if c.n == 0 {
		return 0, false
	}
	c.n--
	return c.n + 1, true
}
