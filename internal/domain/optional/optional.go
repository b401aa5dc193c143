// Package optional modela valores opcionales de forma explícita (presente / ausente)
// para los campos que la API remota puede omitir o enviar como null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value es un opcional etiquetado. El valor cero es None.
type Value[T any] struct {
	v  T
	ok bool
}

// Some construye un opcional presente.
func Some[T any](v T) Value[T] { return Value[T]{v: v, ok: true} }

// None construye un opcional ausente.
func None[T any]() Value[T] { return Value[T]{} }

// Get devuelve el valor y si está presente.
func (o Value[T]) Get() (T, bool) { return o.v, o.ok }

// IsSome indica si hay valor.
func (o Value[T]) IsSome() bool { return o.ok }

// OrElse devuelve el valor o def si está ausente.
func (o Value[T]) OrElse(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// MarshalJSON: None se serializa como null.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON: null se interpreta como None; un campo ausente deja el valor cero (None).
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
