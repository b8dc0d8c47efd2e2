package seq

// --- Terminals ---

// Count traverses s and returns the number of values.
func (s *Sequence[T]) Count() (int, error) {
	n := 0
	err := s.each(func(T, int) bool {
		n++
		return true
	})
	return n, err
}

// CountFunc traverses s and returns the number of values matching fn.
func (s *Sequence[T]) CountFunc(fn func(T, int) bool) (int, error) {
	n := 0
	err := s.each(func(v T, i int) bool {
		if fn(v, i) {
			n++
		}
		return true
	})
	return n, err
}

// ElementAt returns the value at index. It reports false when index is
// negative or beyond the end, and stops pulling once the index is reached.
func (s *Sequence[T]) ElementAt(index int) (T, bool, error) {
	var zero T
	if index < 0 {
		return zero, false, nil
	}
	var found T
	ok := false
	err := s.each(func(v T, i int) bool {
		if i == index {
			found, ok = v, true
			return false
		}
		return true
	})
	if err != nil {
		return zero, false, err
	}
	return found, ok, nil
}

// Every reports whether fn holds for all values. It stops at the first
// value for which fn is false. An empty sequence satisfies every predicate.
func (s *Sequence[T]) Every(fn func(T, int) bool) (bool, error) {
	all := true
	err := s.each(func(v T, i int) bool {
		all = fn(v, i)
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// Any reports whether s has at least one value. It pulls at most one.
func (s *Sequence[T]) Any() (bool, error) {
	return s.Some(func(T, int) bool { return true })
}

// Some reports whether fn holds for at least one value, stopping at the
// first match.
func (s *Sequence[T]) Some(fn func(T, int) bool) (bool, error) {
	_, i, err := s.find(fn)
	return i >= 0, err
}

// IsEmpty reports whether s has no values. It pulls at most one.
func (s *Sequence[T]) IsEmpty() (bool, error) {
	some, err := s.Any()
	return !some, err
}

// Find returns the first value matching fn.
func (s *Sequence[T]) Find(fn func(T, int) bool) (T, bool, error) {
	v, i, err := s.find(fn)
	return v, i >= 0, err
}

// FindIndex returns the position of the first value matching fn, or -1.
func (s *Sequence[T]) FindIndex(fn func(T, int) bool) (int, error) {
	_, i, err := s.find(fn)
	return i, err
}

// FindLast returns the last value matching fn. It always traverses to the end.
func (s *Sequence[T]) FindLast(fn func(T, int) bool) (T, bool, error) {
	v, i, err := s.findLast(fn)
	return v, i >= 0, err
}

// FindLastIndex returns the position of the last value matching fn, or -1.
func (s *Sequence[T]) FindLastIndex(fn func(T, int) bool) (int, error) {
	_, i, err := s.findLast(fn)
	return i, err
}

// First returns the first value. It pulls at most one.
func (s *Sequence[T]) First() (T, bool, error) {
	return s.Find(func(T, int) bool { return true })
}

// Last returns the last value.
func (s *Sequence[T]) Last() (T, bool, error) {
	return s.FindLast(func(T, int) bool { return true })
}

// Reduce folds s from its first value: fn receives the accumulator, the
// next value and that value's position (starting at 1). It reports false
// without calling fn when s is empty.
func (s *Sequence[T]) Reduce(fn func(acc T, v T, index int) T) (T, bool, error) {
	var acc T
	seeded := false
	err := s.each(func(v T, i int) bool {
		if !seeded {
			acc, seeded = v, true
			return true
		}
		acc = fn(acc, v, i)
		return true
	})
	if err != nil || !seeded {
		var zero T
		return zero, false, err
	}
	return acc, true, nil
}

// ForEach calls fn for every value.
func (s *Sequence[T]) ForEach(fn func(T, int)) error {
	return s.each(func(v T, i int) bool {
		fn(v, i)
		return true
	})
}

// ToSlice collects every value into a new slice. The slice is never nil.
func (s *Sequence[T]) ToSlice() ([]T, error) {
	out := make([]T, 0, max(s.size, 0))
	err := s.each(func(v T, _ int) bool {
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Sequence[T]) find(fn func(T, int) bool) (T, int, error) {
	var found T
	index := -1
	err := s.each(func(v T, i int) bool {
		if fn(v, i) {
			found, index = v, i
			return false
		}
		return true
	})
	if err != nil {
		var zero T
		return zero, -1, err
	}
	return found, index, nil
}

func (s *Sequence[T]) findLast(fn func(T, int) bool) (T, int, error) {
	var found T
	index := -1
	err := s.each(func(v T, i int) bool {
		if fn(v, i) {
			found, index = v, i
		}
		return true
	})
	if err != nil {
		var zero T
		return zero, -1, err
	}
	return found, index, nil
}

// --- Generic terminals ---

// Fold accumulates s from initial. fn receives the accumulator, the value
// and its position. initial is returned unchanged for an empty sequence.
func Fold[T, R any](s *Sequence[T], initial R, fn func(acc R, v T, index int) R) (R, error) {
	acc := initial
	err := s.each(func(v T, i int) bool {
		acc = fn(acc, v, i)
		return true
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}

// GroupBy collects values into groups keyed by key. Each group keeps the
// order in which its values were encountered.
func GroupBy[T any, K comparable](s *Sequence[T], key func(T) K) (map[K][]T, error) {
	groups := make(map[K][]T)
	err := s.each(func(v T, _ int) bool {
		k := key(v)
		groups[k] = append(groups[k], v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Contains reports whether s has a value equal to target.
func Contains[T comparable](s *Sequence[T], target T) (bool, error) {
	i, err := IndexOf(s, target)
	return i >= 0, err
}

// ContainsAll reports whether every one of targets occurs in s. It
// traverses s once and stops as soon as the last target has been seen.
func ContainsAll[T comparable](s *Sequence[T], targets ...T) (bool, error) {
	pending := make(map[T]struct{}, len(targets))
	for _, t := range targets {
		pending[t] = struct{}{}
	}
	if len(pending) == 0 {
		return true, nil
	}
	err := s.each(func(v T, _ int) bool {
		delete(pending, v)
		return len(pending) > 0
	})
	if err != nil {
		return false, err
	}
	return len(pending) == 0, nil
}

// IndexOf returns the position of the first value equal to target, or -1.
func IndexOf[T comparable](s *Sequence[T], target T) (int, error) {
	_, i, err := s.find(func(v T, _ int) bool { return v == target })
	return i, err
}

// LastIndexOf returns the position of the last value equal to target, or -1.
func LastIndexOf[T comparable](s *Sequence[T], target T) (int, error) {
	_, i, err := s.findLast(func(v T, _ int) bool { return v == target })
	return i, err
}
