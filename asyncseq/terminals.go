package asyncseq

import (
	"context"

	"github.com/kbukum/lazyseq/seq"
)

// --- Terminals ---

// Count traverses s and returns the number of values.
func (s *Sequence[T]) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.each(ctx, func(T, int) (bool, error) {
		n++
		return true, nil
	})
	return n, err
}

// CountFunc returns the number of values matching fn.
func (s *Sequence[T]) CountFunc(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (int, error) {
	n := 0
	err := s.each(ctx, func(v T, i int) (bool, error) {
		match, err := fn(ctx, v, i)
		if match {
			n++
		}
		return true, err
	})
	return n, err
}

// ElementAt returns the value at index, or false when index is negative or
// beyond the end.
func (s *Sequence[T]) ElementAt(ctx context.Context, index int) (T, bool, error) {
	if index < 0 {
		var zero T
		return zero, false, nil
	}
	return s.Find(ctx, func(_ context.Context, _ T, i int) (bool, error) {
		return i == index, nil
	})
}

// Every reports whether fn holds for all values, stopping at the first
// failure. An empty sequence satisfies every predicate.
func (s *Sequence[T]) Every(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (bool, error) {
	all := true
	err := s.each(ctx, func(v T, i int) (bool, error) {
		ok, err := fn(ctx, v, i)
		if err != nil {
			return false, err
		}
		all = ok
		return ok, nil
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// Any reports whether s has at least one value. It pulls at most one.
func (s *Sequence[T]) Any(ctx context.Context) (bool, error) {
	return s.Some(ctx, func(context.Context, T, int) (bool, error) { return true, nil })
}

// Some reports whether fn holds for at least one value.
func (s *Sequence[T]) Some(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (bool, error) {
	_, i, err := s.find(ctx, fn)
	return i >= 0, err
}

// IsEmpty reports whether s has no values. It pulls at most one.
func (s *Sequence[T]) IsEmpty(ctx context.Context) (bool, error) {
	some, err := s.Any(ctx)
	return !some, err
}

// Find returns the first value matching fn.
func (s *Sequence[T]) Find(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (T, bool, error) {
	v, i, err := s.find(ctx, fn)
	return v, i >= 0, err
}

// FindIndex returns the position of the first value matching fn, or -1.
func (s *Sequence[T]) FindIndex(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (int, error) {
	_, i, err := s.find(ctx, fn)
	return i, err
}

// FindLast returns the last value matching fn.
func (s *Sequence[T]) FindLast(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (T, bool, error) {
	v, i, err := s.findLast(ctx, fn)
	return v, i >= 0, err
}

// FindLastIndex returns the position of the last value matching fn, or -1.
func (s *Sequence[T]) FindLastIndex(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (int, error) {
	_, i, err := s.findLast(ctx, fn)
	return i, err
}

// First returns the first value. It pulls at most one.
func (s *Sequence[T]) First(ctx context.Context) (T, bool, error) {
	return s.Find(ctx, func(context.Context, T, int) (bool, error) { return true, nil })
}

// Last returns the last value.
func (s *Sequence[T]) Last(ctx context.Context) (T, bool, error) {
	return s.FindLast(ctx, func(context.Context, T, int) (bool, error) { return true, nil })
}

// Reduce folds s from its first value; fn receives the position of the
// value being folded in (starting at 1). It reports false without calling
// fn when s is empty.
func (s *Sequence[T]) Reduce(ctx context.Context, fn func(ctx context.Context, acc T, v T, index int) (T, error)) (T, bool, error) {
	var acc T
	seeded := false
	err := s.each(ctx, func(v T, i int) (bool, error) {
		if !seeded {
			acc, seeded = v, true
			return true, nil
		}
		next, err := fn(ctx, acc, v, i)
		if err != nil {
			return false, err
		}
		acc = next
		return true, nil
	})
	if err != nil || !seeded {
		var zero T
		return zero, false, err
	}
	return acc, true, nil
}

// ForEach calls fn for every value. The first error from fn ends the
// traversal and is returned.
func (s *Sequence[T]) ForEach(ctx context.Context, fn func(context.Context, T, int) error) error {
	return s.each(ctx, func(v T, i int) (bool, error) {
		if err := fn(ctx, v, i); err != nil {
			return false, err
		}
		return true, nil
	})
}

// ToSlice collects every value into a new slice.
func (s *Sequence[T]) ToSlice(ctx context.Context) ([]T, error) {
	out := make([]T, 0, max(s.size, 0))
	err := s.each(ctx, func(v T, _ int) (bool, error) {
		out = append(out, v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Join concatenates the values of s using fmt.Sprint. See seq.JoinOption.
func (s *Sequence[T]) Join(ctx context.Context, opts ...seq.JoinOption) (string, error) {
	return s.JoinFunc(ctx, nil, opts...)
}

// JoinFunc is like Join but formats each value with transform.
func (s *Sequence[T]) JoinFunc(ctx context.Context, transform func(T) string, opts ...seq.JoinOption) (string, error) {
	j := seq.NewJoiner(transform, opts...)
	err := s.each(ctx, func(v T, _ int) (bool, error) {
		return j.Add(v), nil
	})
	if err != nil {
		return "", err
	}
	return j.String(), nil
}

func (s *Sequence[T]) find(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (T, int, error) {
	var found T
	index := -1
	err := s.each(ctx, func(v T, i int) (bool, error) {
		match, err := fn(ctx, v, i)
		if err != nil {
			return false, err
		}
		if match {
			found, index = v, i
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		var zero T
		return zero, -1, err
	}
	return found, index, nil
}

func (s *Sequence[T]) findLast(ctx context.Context, fn func(context.Context, T, int) (bool, error)) (T, int, error) {
	var found T
	index := -1
	err := s.each(ctx, func(v T, i int) (bool, error) {
		match, err := fn(ctx, v, i)
		if err != nil {
			return false, err
		}
		if match {
			found, index = v, i
		}
		return true, nil
	})
	if err != nil {
		var zero T
		return zero, -1, err
	}
	return found, index, nil
}

// --- Generic terminals ---

// Fold accumulates s from initial.
func Fold[T, R any](ctx context.Context, s *Sequence[T], initial R, fn func(ctx context.Context, acc R, v T, index int) (R, error)) (R, error) {
	acc := initial
	err := s.each(ctx, func(v T, i int) (bool, error) {
		next, err := fn(ctx, acc, v, i)
		if err != nil {
			return false, err
		}
		acc = next
		return true, nil
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}

// GroupBy collects values into groups keyed by key, keeping encounter order
// within each group.
func GroupBy[T any, K comparable](ctx context.Context, s *Sequence[T], key func(context.Context, T) (K, error)) (map[K][]T, error) {
	groups := make(map[K][]T)
	err := s.each(ctx, func(v T, _ int) (bool, error) {
		k, err := key(ctx, v)
		if err != nil {
			return false, err
		}
		groups[k] = append(groups[k], v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Contains reports whether s has a value equal to target.
func Contains[T comparable](ctx context.Context, s *Sequence[T], target T) (bool, error) {
	i, err := IndexOf(ctx, s, target)
	return i >= 0, err
}

// ContainsAll reports whether every one of targets occurs in s, in a single
// traversal that stops once the last target has been seen.
func ContainsAll[T comparable](ctx context.Context, s *Sequence[T], targets ...T) (bool, error) {
	pending := make(map[T]struct{}, len(targets))
	for _, t := range targets {
		pending[t] = struct{}{}
	}
	if len(pending) == 0 {
		return true, nil
	}
	err := s.each(ctx, func(v T, _ int) (bool, error) {
		delete(pending, v)
		return len(pending) > 0, nil
	})
	if err != nil {
		return false, err
	}
	return len(pending) == 0, nil
}

// IndexOf returns the position of the first value equal to target, or -1.
func IndexOf[T comparable](ctx context.Context, s *Sequence[T], target T) (int, error) {
	return s.FindIndex(ctx, func(_ context.Context, v T, _ int) (bool, error) { return v == target, nil })
}

// LastIndexOf returns the position of the last value equal to target, or -1.
func LastIndexOf[T comparable](ctx context.Context, s *Sequence[T], target T) (int, error) {
	return s.FindLastIndex(ctx, func(_ context.Context, v T, _ int) (bool, error) { return v == target, nil })
}
