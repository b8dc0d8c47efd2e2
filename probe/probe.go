// Package probe answers capability questions about arbitrary values so that
// sequence factories can decide how to wrap them.
//
// The probes look at shape only (kinds and method sets); they never call
// Next or start an iteration.
package probe

import (
	"context"
	"reflect"
)

var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()

// IsCursor reports whether v is itself a pull-based cursor, i.e. it has a
// Next method. Factories must check this before IsIterable because a cursor
// may also be iterable over itself.
func IsCursor(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	return rv.MethodByName("Next").IsValid()
}

// IsIterable reports whether v can repeatedly produce independent cursors:
// slices, arrays, maps and strings, range-over-func iterators (iter.Seq and
// iter.Seq2), and values with an Iterator or All method.
func IsIterable(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return true
	case reflect.Func:
		return isRangeFunc(rv.Type())
	}
	if m := rv.MethodByName("Iterator"); m.IsValid() && m.Type().NumIn() == 0 {
		return true
	}
	if m := rv.MethodByName("All"); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
		return isRangeFunc(m.Type().Out(0))
	}
	return false
}

// IsAsyncIterable reports whether v produces context-aware cursors through an
// Iter(ctx) method.
func IsAsyncIterable(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	m := rv.MethodByName("Iter")
	if !m.IsValid() {
		return false
	}
	mt := m.Type()
	return mt.NumIn() >= 1 && mt.In(0).Implements(ctxType) && mt.NumOut() >= 1
}

// Size returns the element count v advertises, looking first for a length
// (builtin len for slices, arrays, maps and strings, then a Len or Length
// method or Length field) and then for a size (Size method or field). The
// boolean is false when v advertises neither.
func Size(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return 0, false
		}
	}
	for _, name := range []string{"Len", "Length"} {
		if n, ok := numericMethod(rv, name); ok {
			return n, true
		}
	}
	if n, ok := numericField(rv, "Length"); ok {
		return n, true
	}
	if n, ok := numericMethod(rv, "Size"); ok {
		return n, true
	}
	if n, ok := numericField(rv, "Size"); ok {
		return n, true
	}
	return 0, false
}

func isRangeFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumOut() == 1 && yield.Out(0).Kind() == reflect.Bool &&
		(yield.NumIn() == 1 || yield.NumIn() == 2)
}

func numericMethod(rv reflect.Value, name string) (int, bool) {
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return 0, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 {
		return 0, false
	}
	return toInt(m.Call(nil)[0])
}

func numericField(rv reflect.Value, name string) (int, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return 0, false
	}
	sf, ok := rv.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return 0, false
	}
	return toInt(rv.FieldByIndex(sf.Index))
}

func toInt(v reflect.Value) (int, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(v.Uint()), true
	}
	return 0, false
}
