package seq

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	lserrors "github.com/kbukum/lazyseq/errors"
)

func TestMap_Index(t *testing.T) {
	s := Map(Of("a", "b", "c"), func(v string, i int) string { return v + strconv.Itoa(i) })
	got := mustSlice(t, s)
	if !slices.Equal(got, []string{"a0", "b1", "c2"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilter_UpstreamIndex(t *testing.T) {
	var seen []int
	s := Of(10, 11, 12, 13).Filter(func(v, i int) bool {
		seen = append(seen, i)
		return v%2 == 0
	})
	got := mustSlice(t, s)
	if !slices.Equal(got, []int{10, 12}) {
		t.Errorf("got %v", got)
	}
	if !slices.Equal(seen, []int{0, 1, 2, 3}) {
		t.Errorf("predicate saw indices %v", seen)
	}
}

func TestTakeDrop(t *testing.T) {
	src := Of(1, 2, 3, 4, 5)
	tests := []struct {
		name string
		s    *Sequence[int]
		want []int
	}{
		{"take 2", src.Take(2), []int{1, 2}},
		{"take 0", src.Take(0), []int{}},
		{"take past end", src.Take(9), []int{1, 2, 3, 4, 5}},
		{"take negative", src.Take(-1), []int{}},
		{"drop 2", src.Drop(2), []int{3, 4, 5}},
		{"drop 0", src.Drop(0), []int{1, 2, 3, 4, 5}},
		{"drop past end", src.Drop(9), []int{}},
		{"drop negative", src.Drop(-3), []int{1, 2, 3, 4, 5}},
		{"drop then take", src.Drop(1).Take(2), []int{2, 3}},
		{"take unbounded", naturals().Drop(5).Take(3), []int{5, 6, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustSlice(t, tt.s); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrop_PastEndStaysEmpty(t *testing.T) {
	it, err := Of(1, 2).Drop(5).Iterator()
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()
	for range 3 {
		if _, ok, _ := it.Next(); ok {
			t.Fatal("expected no values")
		}
	}
}

func TestTakeWhile(t *testing.T) {
	calls := 0
	s := Of(1, 2, 3, 10, 1, 2).TakeWhile(func(v, _ int) bool {
		calls++
		return v < 5
	})
	got := mustSlice(t, s)
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	if calls != 4 {
		t.Errorf("expected predicate to stop at the first failure, got %d calls", calls)
	}
}

func TestDropWhile(t *testing.T) {
	calls := 0
	s := Of(1, 2, 7, 1, 2).DropWhile(func(v, _ int) bool {
		calls++
		return v < 5
	})
	got := mustSlice(t, s)
	if !slices.Equal(got, []int{7, 1, 2}) {
		t.Errorf("got %v", got)
	}
	if calls != 3 {
		t.Errorf("expected predicate not to run after the first failure, got %d calls", calls)
	}
}

func TestDropWhile_AllDropped(t *testing.T) {
	got := mustSlice(t, Of(1, 2).DropWhile(func(int, int) bool { return true }))
	if len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestFlatten(t *testing.T) {
	s := Flatten(Of(Of(1, 2), Empty[int](), Of(3)))
	got := mustSlice(t, s)
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestFlatMap_DrainsInnerFirst(t *testing.T) {
	var order []string
	s := FlatMap(Of(1, 2), func(v, _ int) *Sequence[int] {
		order = append(order, "outer"+strconv.Itoa(v))
		return Of(v*10, v*10+1).Tap(func(w, _ int) {
			order = append(order, "inner"+strconv.Itoa(w))
		})
	})
	got := mustSlice(t, s)
	if !slices.Equal(got, []int{10, 11, 20, 21}) {
		t.Errorf("got %v", got)
	}
	want := []string{"outer1", "inner10", "inner11", "outer2", "inner20", "inner21"}
	if !slices.Equal(order, want) {
		t.Errorf("order %v, want %v", order, want)
	}
}

func TestFlatMap_NilInnerSkipped(t *testing.T) {
	s := FlatMap(Of(1, 2, 3), func(v, _ int) *Sequence[int] {
		if v == 2 {
			return nil
		}
		return Of(v)
	})
	if got := mustSlice(t, s); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestFlatMap_InnerIllegalState(t *testing.T) {
	inner := Of(1).ConstrainOnce()
	s := FlatMap(Of(1, 2), func(int, int) *Sequence[int] { return inner })
	_, err := s.ToSlice()
	if !lserrors.IsIllegalState(err) {
		t.Errorf("expected illegal state from the reused inner sequence, got %v", err)
	}
}

func TestConcat(t *testing.T) {
	got := mustSlice(t, Of(1, 2).Concat(Empty[int]()).Concat(Of(3)))
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestConcat_SecondOpenedLazily(t *testing.T) {
	second, pulls := newCounting(3)
	s := Of(1, 2).Concat(FromIterable[int](second))
	if _, _, err := s.First(); err != nil {
		t.Fatal(err)
	}
	if *second.opened != 0 || *pulls != 0 {
		t.Errorf("second sequence should not be touched, opened=%d pulls=%d", *second.opened, *pulls)
	}
	if got := mustSlice(t, s); !slices.Equal(got, []int{1, 2, 0, 1, 2}) {
		t.Errorf("got %v", got)
	}
	if *second.closed != 1 {
		t.Errorf("expected second cursor closed once, got %d", *second.closed)
	}
}

func TestConcat_UnboundedSecond(t *testing.T) {
	got := mustSlice(t, Of(-2, -1).Concat(naturals()).Take(4))
	if !slices.Equal(got, []int{-2, -1, 0, 1}) {
		t.Errorf("got %v", got)
	}
}

func TestTap(t *testing.T) {
	var seen []int
	s := Of(1, 2, 3).Tap(func(v, _ int) { seen = append(seen, v) }).Take(2)
	got := mustSlice(t, s)
	if !slices.Equal(got, []int{1, 2}) || !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("got %v, tapped %v", got, seen)
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		size int
		want [][]int
	}{
		{"even", 2, [][]int{{1, 2}, {3, 4}}},
		{"remainder", 3, [][]int{{1, 2, 3}, {4}}},
		{"larger than source", 10, [][]int{{1, 2, 3, 4}}},
		{"zero treated as one", 0, [][]int{{1}, {2}, {3}, {4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Chunk(Of(1, 2, 3, 4), tt.size)
			got := mustSlice(t, s)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if !slices.Equal(got[i], tt.want[i]) {
					t.Errorf("chunk %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
			if s.Size() != len(tt.want) {
				t.Errorf("size hint %d, want %d", s.Size(), len(tt.want))
			}
		})
	}
}

func TestChunk_Empty(t *testing.T) {
	if got := mustSlice(t, Chunk(Empty[int](), 2)); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestIntercept(t *testing.T) {
	opens := 0
	s := Of(1, 2).Intercept(func(it Iterator[int], err error) (Iterator[int], error) {
		opens++
		return it, err
	})
	if s.Size() != 2 {
		t.Errorf("size hint %d, want 2", s.Size())
	}
	if opens != 0 {
		t.Fatal("intercept must not run before traversal")
	}
	_, _ = s.Count()
	_, _ = s.Count()
	if opens != 2 {
		t.Errorf("expected one call per traversal, got %d", opens)
	}
}

func TestIntercept_ReplacesError(t *testing.T) {
	boom := errors.New("boom")
	s := Of(1).Intercept(func(it Iterator[int], _ error) (Iterator[int], error) {
		if it != nil {
			_ = it.Close()
		}
		return nil, boom
	})
	if _, err := s.Count(); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestCallbackPanicPropagates(t *testing.T) {
	defer func() {
		if r := recover(); r != "bad value" {
			t.Errorf("expected the callback panic to reach the caller, got %v", r)
		}
	}()
	_, _ = Map(Of(1), func(int, int) int { panic("bad value") }).ToSlice()
}

func TestPipelineImmutable(t *testing.T) {
	base := Of(1, 2, 3)
	_ = base.Filter(func(v, _ int) bool { return v > 1 })
	_ = base.Take(1)
	if got := mustSlice(t, base); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("base changed: %v", got)
	}
}
