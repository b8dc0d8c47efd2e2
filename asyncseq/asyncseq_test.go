package asyncseq

import (
	"context"
	stderrors "errors"
	"slices"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/seq"
)

// --- helpers ---

func naturals() *Sequence[int] {
	return Generate(Resolved(0), func(_ context.Context, x int) (int, bool, error) {
		return x + 1, true, nil
	})
}

func always(context.Context, int, int) (bool, error) { return true, nil }

func isEven(_ context.Context, v, _ int) (bool, error) { return v%2 == 0, nil }

func mustSlice[T any](t *testing.T, s *Sequence[T]) []T {
	t.Helper()
	got, err := s.ToSlice(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return got
}

type asyncCursor struct {
	items  []int
	closed bool
}

func (c *asyncCursor) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if len(c.items) == 0 {
		return 0, false, nil
	}
	v := c.items[0]
	c.items = c.items[1:]
	return v, true, nil
}

func (c *asyncCursor) Close() error {
	c.closed = true
	return nil
}

type bareCursor struct{ n int }

func (c *bareCursor) Next(context.Context) (int, bool, error) {
	if c.n == 0 {
		return 0, false, nil
	}
	c.n--
	return c.n, true, nil
}

// --- construction ---

func TestOf_ToSlice(t *testing.T) {
	got := mustSlice(t, Of(1, 2, 3))
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		s    *Sequence[int]
		want string
	}{
		{Empty[int](), "AsyncSequence (empty)"},
		{Of(1, 2), "AsyncSequence (2)"},
		{naturals(), "AsyncSequence (unknown)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
	if Of(1).Tag() != "AsyncSequence" {
		t.Errorf("unexpected tag %q", Of(1).Tag())
	}
}

func TestEmpty_DistinctInstances(t *testing.T) {
	a, b := Empty[string](), Empty[string]()
	if a == b {
		t.Error("expected distinct instances")
	}
	if n, err := a.Count(context.Background()); err != nil || n != 0 {
		t.Errorf("got (%d, %v)", n, err)
	}
}

func TestGenerate(t *testing.T) {
	s := Generate(Resolved(0), func(_ context.Context, x int) (int, bool, error) {
		if x >= 10 {
			return 0, false, nil
		}
		return x + 1, true, nil
	})
	v, ok, err := s.Last(context.Background())
	if err != nil || !ok || v != 10 {
		t.Errorf("got (%d, %v, %v), want 10", v, ok, err)
	}
}

func TestGenerate_SeedAwaitedLazily(t *testing.T) {
	var awaited atomic.Int32
	seed := FutureFunc[int](func(context.Context) (int, error) {
		awaited.Add(1)
		return 5, nil
	})
	s := Generate[int](seed, func(_ context.Context, x int) (int, bool, error) { return x + 1, true, nil }).Take(2)
	if awaited.Load() != 0 {
		t.Fatal("seed awaited before traversal")
	}
	if got := mustSlice(t, s); !slices.Equal(got, []int{5, 6}) {
		t.Errorf("got %v", got)
	}
	if awaited.Load() != 1 {
		t.Errorf("expected one await, got %d", awaited.Load())
	}
}

func TestGenerate_FailedSeed(t *testing.T) {
	boom := stderrors.New("boom")
	s := Generate(Failed[int](boom), func(_ context.Context, x int) (int, bool, error) { return x, true, nil })
	if _, err := s.ToSlice(context.Background()); !stderrors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestFromSequence(t *testing.T) {
	s := FromSequence(seq.Of(1, 2, 3).Drop(1))
	if s.Size() != 2 {
		t.Errorf("size hint %d, want 2", s.Size())
	}
	if got := mustSlice(t, s); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestFromSequence_KeepsConstraint(t *testing.T) {
	s := FromSequence(seq.Of(1).ConstrainOnce())
	if s.Op() != seq.OpConstrained {
		t.Errorf("op %s, want constrained", s.Op())
	}
	_ = mustSlice(t, s)
	if _, err := s.Count(context.Background()); !errors.IsIllegalState(err) {
		t.Errorf("expected illegal state, got %v", err)
	}
}

func TestFromChannel(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)
	s := FromChannel[int](ch)
	if got := mustSlice(t, s); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	if _, err := s.Count(context.Background()); !errors.IsIllegalState(err) {
		t.Errorf("expected illegal state, got %v", err)
	}
}

func TestFromChannel_Cancelled(t *testing.T) {
	ch := make(chan int)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := FromChannel[int](ch).ToSlice(ctx)
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestFromCursor_ClosesAndConstrains(t *testing.T) {
	c := &asyncCursor{items: []int{1, 2}}
	s := FromCursor[int](c)
	if got := mustSlice(t, s); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
	if !c.closed {
		t.Error("expected cursor closed")
	}
	yielded := 0
	err := s.ForEach(context.Background(), func(context.Context, int, int) error {
		yielded++
		return nil
	})
	if !errors.IsIllegalState(err) || yielded != 0 {
		t.Errorf("got (%v, yielded=%d)", err, yielded)
	}
}

func TestFrom(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 9
	close(ch)
	tests := []struct {
		name   string
		source any
		want   []int
		op     seq.Op
	}{
		{"slice", []int{1, 2}, []int{1, 2}, seq.OpSource},
		{"sync sequence", seq.Of(3, 4), []int{3, 4}, seq.OpSource},
		{"async iterator", &asyncCursor{items: []int{5}}, []int{5}, seq.OpConstrained},
		{"bare cursor", &bareCursor{n: 2}, []int{1, 0}, seq.OpConstrained},
		{"channel", ch, []int{9}, seq.OpConstrained},
		{"async sequence", Of(7, 8), []int{7, 8}, seq.OpSource},
		{"range func", slices.Values([]int{6}), []int{6}, seq.OpSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := From[int](tt.source)
			if err != nil {
				t.Fatal(err)
			}
			if s.Op() != tt.op {
				t.Errorf("op %s, want %s", s.Op(), tt.op)
			}
			if got := mustSlice(t, s); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrom_NilInterfaceElements(t *testing.T) {
	boom := stderrors.New("boom")
	s, err := From[any]([]error{nil, boom})
	if err != nil {
		t.Fatal(err)
	}
	got := mustSlice(t, s)
	if len(got) != 2 || got[0] != nil || got[1] != boom {
		t.Errorf("got %v, want [<nil> boom]", got)
	}
}

func TestFrom_Unsupported(t *testing.T) {
	var nilAsync *Sequence[int]
	var nilSync *seq.Sequence[int]
	for _, source := range []any{nil, 3, Of("x"), nilAsync, nilSync} {
		if _, err := From[int](source); !errors.IsUnsupportedSource(err) {
			t.Errorf("%T: expected unsupported source, got %v", source, err)
		}
	}
}

// --- futures ---

func TestFutures(t *testing.T) {
	ctx := context.Background()
	if v, err := Resolved("ok").Await(ctx); err != nil || v != "ok" {
		t.Errorf("resolved: got (%q, %v)", v, err)
	}
	boom := stderrors.New("boom")
	if _, err := Failed[int](boom).Await(ctx); !stderrors.Is(err, boom) {
		t.Errorf("failed: got %v", err)
	}
	task := Go(ctx, func(context.Context) (int, error) { return 42, nil })
	for range 2 {
		if v, err := task.Await(ctx); err != nil || v != 42 {
			t.Errorf("task: got (%d, %v)", v, err)
		}
	}
}

func TestTask_AwaitCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	task := Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := task.Await(ctx); !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected canceled, got %v", err)
	}
}

func TestFromFutures_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	slow := Go(ctx, func(context.Context) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return "slow", nil
	})
	fast := Go(ctx, func(context.Context) (string, error) { return "fast", nil })
	s := FromFutures[string](slow, fast, Resolved("done"))
	if s.Size() != 3 {
		t.Errorf("size hint %d, want 3", s.Size())
	}
	got := mustSlice(t, s)
	if !slices.Equal(got, []string{"slow", "fast", "done"}) {
		t.Errorf("got %v", got)
	}
}

func TestAwait_StopsAtFailure(t *testing.T) {
	boom := stderrors.New("boom")
	var awaited atomic.Int32
	count := func(v int) Future[int] {
		return FutureFunc[int](func(context.Context) (int, error) {
			awaited.Add(1)
			return v, nil
		})
	}
	s := FromFutures(count(1), Failed[int](boom), count(3))
	if _, err := s.ToSlice(context.Background()); !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if awaited.Load() != 1 {
		t.Errorf("expected resolution to stop at the failure, awaited %d", awaited.Load())
	}
}

// --- operators ---

func TestSizeHints(t *testing.T) {
	known := Of(1, 2, 3, 4, 5)
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"map", Map(known, func(_ context.Context, v, _ int) (int, error) { return v, nil }).Size(), 5},
		{"filter", known.Filter(always).Size(), UnknownSize},
		{"take", known.Take(2).Size(), 2},
		{"take zero", naturals().Take(0).Size(), 0},
		{"drop", known.Drop(7).Size(), 0},
		{"concat", known.Concat(Of(6)).Size(), 6},
		{"concat unknown", known.Concat(naturals()).Size(), UnknownSize},
		{"constrain", known.ConstrainOnce().Size(), 5},
		{"chunk", Chunk(known, 2).Size(), 3},
		{"await", Await(Of(Resolved(1), Resolved(2))).Size(), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestLaziness(t *testing.T) {
	calls := 0
	s := Map(naturals(), func(_ context.Context, v, _ int) (int, error) {
		calls++
		return v * 2, nil
	}).Filter(isEven).Take(3)
	if calls != 0 {
		t.Fatal("callbacks ran before a terminal")
	}
	if got := mustSlice(t, s); !slices.Equal(got, []int{0, 2, 4}) {
		t.Errorf("got %v", got)
	}
	if calls != 3 {
		t.Errorf("expected 3 map calls, got %d", calls)
	}
}

func TestOperators(t *testing.T) {
	lt := func(n int) func(context.Context, int, int) (bool, error) {
		return func(_ context.Context, v, _ int) (bool, error) { return v < n, nil }
	}
	tests := []struct {
		name string
		s    *Sequence[int]
		want []int
	}{
		{"filter", Of(1, 2, 3, 4).Filter(isEven), []int{2, 4}},
		{"drop take", Of(1, 2, 3, 4, 5).Drop(2).Take(2), []int{3, 4}},
		{"take while", Of(1, 2, 9, 1).TakeWhile(lt(5)), []int{1, 2}},
		{"drop while", Of(1, 2, 9, 1).DropWhile(lt(5)), []int{9, 1}},
		{"concat", Of(1).Concat(Empty[int]()).Concat(Of(2)), []int{1, 2}},
		{"flatten", Flatten(Of(Of(1, 2), Of(3))), []int{1, 2, 3}},
		{"flat map", FlatMap(Of(1, 2), func(_ context.Context, v, _ int) (*Sequence[int], error) {
			return Of(v, v), nil
		}), []int{1, 1, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustSlice(t, tt.s); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunk(t *testing.T) {
	got := mustSlice(t, Chunk(Of(1, 2, 3), 2))
	if len(got) != 2 || !slices.Equal(got[0], []int{1, 2}) || !slices.Equal(got[1], []int{3}) {
		t.Errorf("got %v", got)
	}
}

func TestTap(t *testing.T) {
	var seen []int
	s := Of(1, 2, 3).Tap(func(_ context.Context, v, _ int) error {
		seen = append(seen, v)
		return nil
	})
	_ = mustSlice(t, s)
	if !slices.Equal(seen, []int{1, 2, 3}) {
		t.Errorf("tapped %v", seen)
	}
}

func TestCallbackErrorPropagatesUnwrapped(t *testing.T) {
	boom := stderrors.New("boom")
	s := Map(Of(1, 2, 3), func(_ context.Context, v, _ int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	_, err := s.ToSlice(context.Background())
	if err != boom {
		t.Errorf("expected the callback error itself, got %v", err)
	}
}

func TestIntercept(t *testing.T) {
	type key struct{}
	var seen any
	s := Of(1).Intercept(func(ctx context.Context, it Iterator[int], err error) (Iterator[int], error) {
		seen = ctx.Value(key{})
		return it, err
	})
	ctx := context.WithValue(context.Background(), key{}, "traversal")
	if _, err := s.Count(ctx); err != nil {
		t.Fatal(err)
	}
	if seen != "traversal" {
		t.Errorf("intercept saw %v", seen)
	}
}

func TestConstrainOnce(t *testing.T) {
	s := Of(1, 2).ConstrainOnce()
	if n, err := s.Count(context.Background()); err != nil || n != 2 {
		t.Fatalf("got (%d, %v)", n, err)
	}
	if _, _, err := s.First(context.Background()); !errors.IsIllegalState(err) {
		t.Errorf("expected illegal state, got %v", err)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pulled := 0
	err := naturals().ForEach(ctx, func(_ context.Context, v, _ int) error {
		pulled++
		if v == 2 {
			cancel()
		}
		return nil
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected canceled, got %v", err)
	}
	if pulled != 3 {
		t.Errorf("expected traversal to stop right after cancel, pulled %d", pulled)
	}
}

func TestCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := Of(1).ConstrainOnce()
	if _, err := s.Count(ctx); !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if n, err := s.Count(context.Background()); err != nil || n != 1 {
		t.Errorf("a cancelled start must not consume the guard: (%d, %v)", n, err)
	}
}

// --- terminals ---

func TestTerminals(t *testing.T) {
	ctx := context.Background()
	s := Of(1, 4, 5, 6, 7)

	if n, _ := s.CountFunc(ctx, isEven); n != 2 {
		t.Errorf("count func: %d", n)
	}
	if v, ok, _ := s.ElementAt(ctx, 2); !ok || v != 5 {
		t.Errorf("element at: (%d, %v)", v, ok)
	}
	if _, ok, _ := s.ElementAt(ctx, 9); ok {
		t.Error("element at past end: expected absent")
	}
	if ok, _ := s.Every(ctx, isEven); ok {
		t.Error("every: expected false")
	}
	if ok, _ := s.Some(ctx, isEven); !ok {
		t.Error("some: expected true")
	}
	if v, ok, _ := s.Find(ctx, isEven); !ok || v != 4 {
		t.Errorf("find: (%d, %v)", v, ok)
	}
	if i, _ := s.FindLastIndex(ctx, isEven); i != 3 {
		t.Errorf("find last index: %d", i)
	}
	if v, ok, _ := s.FindLast(ctx, isEven); !ok || v != 6 {
		t.Errorf("find last: (%d, %v)", v, ok)
	}
	if v, ok, _ := s.Last(ctx); !ok || v != 7 {
		t.Errorf("last: (%d, %v)", v, ok)
	}
	if empty, _ := Empty[int]().IsEmpty(ctx); !empty {
		t.Error("is empty: expected true")
	}
	if ok, _ := Empty[int]().Every(ctx, isEven); !ok {
		t.Error("every on empty: expected true")
	}
}

func TestReduceFold(t *testing.T) {
	ctx := context.Background()
	sum, ok, err := Of(1, 2, 3).Reduce(ctx, func(_ context.Context, acc, v, _ int) (int, error) {
		return acc + v, nil
	})
	if err != nil || !ok || sum != 6 {
		t.Errorf("reduce: (%d, %v, %v)", sum, ok, err)
	}
	if _, ok, _ := Empty[int]().Reduce(ctx, func(context.Context, int, int, int) (int, error) {
		t.Error("reduce must not call fn on empty")
		return 0, nil
	}); ok {
		t.Error("reduce on empty: expected absent")
	}
	got, err := Fold(ctx, Of(1, 2, 3), "", func(_ context.Context, acc string, v, _ int) (string, error) {
		return acc + strconv.Itoa(v), nil
	})
	if err != nil || got != "123" {
		t.Errorf("fold: (%q, %v)", got, err)
	}
}

func TestGroupBy(t *testing.T) {
	groups, err := GroupBy(context.Background(), Of(1, 2, 3, 4, 5), func(_ context.Context, v int) (bool, error) {
		return v%2 == 0, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(groups[true], []int{2, 4}) || !slices.Equal(groups[false], []int{1, 3, 5}) {
		t.Errorf("got %v", groups)
	}
}

func TestContainsIndexOf(t *testing.T) {
	ctx := context.Background()
	s := Of("a", "b", "a")
	if ok, _ := Contains(ctx, s, "b"); !ok {
		t.Error("contains: expected true")
	}
	if ok, _ := ContainsAll(ctx, s, "a", "z"); ok {
		t.Error("contains all: expected false")
	}
	if ok, _ := ContainsAll(ctx, naturals(), 5, 2); !ok {
		t.Error("contains all on unbounded: expected true")
	}
	if i, _ := IndexOf(ctx, s, "a"); i != 0 {
		t.Errorf("index of: %d", i)
	}
	if i, _ := LastIndexOf(ctx, s, "a"); i != 2 {
		t.Errorf("last index of: %d", i)
	}
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	got, err := naturals().Take(20).Join(ctx, seq.WithLimit(10))
	if err != nil || got != "0, 1, 2, 3, 4, 5, 6, 7, 8, 9, ..." {
		t.Errorf("got (%q, %v)", got, err)
	}
	got, err = Of(1, 2).JoinFunc(ctx, func(v int) string { return "<" + strconv.Itoa(v) + ">" }, seq.WithSeparator(""))
	if err != nil || got != "<1><2>" {
		t.Errorf("got (%q, %v)", got, err)
	}
}

func TestAll(t *testing.T) {
	var got []int
	for v, err := range Of(1, 2, 3).All(context.Background()) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}
