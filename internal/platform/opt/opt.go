// Package opt models fields that may be legitimately absent.
//
// A Value is either Present(v) or Absent. Absent serializes to JSON null so a
// payload never silently drops a field and never fabricates a zero.
package opt

import (
	"bytes"

	sonic "github.com/bytedance/sonic"
)

var jsonNull = []byte("null")

type Value[T any] struct {
	value T
	ok    bool
}

func Present[T any](v T) Value[T] {
	return Value[T]{value: v, ok: true}
}

func Absent[T any]() Value[T] {
	return Value[T]{}
}

func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Absent[T]()
	}
	return Present(*p)
}

func (o Value[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Value[T]) IsPresent() bool {
	return o.ok
}

func (o Value[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}

func (o Value[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

func Map[T, U any](o Value[T], fn func(T) U) Value[U] {
	if !o.ok {
		return Absent[U]()
	}
	return Present(fn(o.value))
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return jsonNull, nil
	}
	return sonic.Marshal(o.value)
}

func (o *Value[T]) UnmarshalJSON(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		*o = Absent[T]()
		return nil
	}

	var v T
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return err
	}
	*o = Present(v)
	return nil
}
