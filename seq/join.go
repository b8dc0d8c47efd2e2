package seq

import (
	"fmt"
	"strings"
)

// JoinConfig holds the settings of a Join.
type JoinConfig struct {
	Separator string
	Prefix    string
	Postfix   string
	// Limit is the maximum number of values written. A negative Limit
	// means no limit.
	Limit     int
	Truncated string
}

// JoinOption configures a Join.
type JoinOption func(*JoinConfig)

// WithSeparator sets the text written between values. Default ", ".
func WithSeparator(sep string) JoinOption {
	return func(c *JoinConfig) { c.Separator = sep }
}

// WithPrefix sets the text written before the first value.
func WithPrefix(prefix string) JoinOption {
	return func(c *JoinConfig) { c.Prefix = prefix }
}

// WithPostfix sets the text written after the last value.
func WithPostfix(postfix string) JoinOption {
	return func(c *JoinConfig) { c.Postfix = postfix }
}

// WithLimit stops the join after n values and appends the truncation marker
// if more values follow.
func WithLimit(n int) JoinOption {
	return func(c *JoinConfig) { c.Limit = n }
}

// WithTruncated sets the truncation marker. Default "...".
func WithTruncated(marker string) JoinOption {
	return func(c *JoinConfig) { c.Truncated = marker }
}

// NewJoinConfig returns the defaults with opts applied.
func NewJoinConfig(opts ...JoinOption) JoinConfig {
	cfg := JoinConfig{
		Separator: ", ",
		Limit:     -1,
		Truncated: "...",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Joiner accumulates values into a joined string. It is shared by the
// synchronous and asynchronous Join implementations.
type Joiner[T any] struct {
	cfg       JoinConfig
	transform func(T) string
	b         strings.Builder
	count     int
}

// NewJoiner creates a Joiner. A nil transform formats values with fmt.Sprint.
func NewJoiner[T any](transform func(T) string, opts ...JoinOption) *Joiner[T] {
	if transform == nil {
		transform = func(v T) string { return fmt.Sprint(v) }
	}
	j := &Joiner[T]{cfg: NewJoinConfig(opts...), transform: transform}
	j.b.WriteString(j.cfg.Prefix)
	return j
}

// Add writes v. It returns false once the limit has been exceeded; the
// caller should stop pulling values at that point.
func (j *Joiner[T]) Add(v T) bool {
	j.count++
	if j.count > 1 {
		j.b.WriteString(j.cfg.Separator)
	}
	if j.cfg.Limit >= 0 && j.count > j.cfg.Limit {
		return false
	}
	j.b.WriteString(j.transform(v))
	return true
}

// String returns the joined text, including the truncation marker and
// postfix.
func (j *Joiner[T]) String() string {
	out := j.b.String()
	if j.cfg.Limit >= 0 && j.count > j.cfg.Limit {
		out += j.cfg.Truncated
	}
	return out + j.cfg.Postfix
}

// Join concatenates the values of s using fmt.Sprint. With a limit, exactly
// one value past the limit is pulled to decide whether to truncate.
func (s *Sequence[T]) Join(opts ...JoinOption) (string, error) {
	return s.JoinFunc(nil, opts...)
}

// JoinFunc is like Join but formats each value with transform.
func (s *Sequence[T]) JoinFunc(transform func(T) string, opts ...JoinOption) (string, error) {
	j := NewJoiner(transform, opts...)
	err := s.each(func(v T, _ int) bool {
		return j.Add(v)
	})
	if err != nil {
		return "", err
	}
	return j.String(), nil
}
