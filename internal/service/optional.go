package service

import (
	"bytes"
	"encoding/json"
)

// Optional is an update field that distinguishes "not sent" from "sent as
// null". Set is true when the field was present; a nil Value clears it.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// apply overwrites *dst when the field was sent.
func (o Optional[T]) apply(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}
