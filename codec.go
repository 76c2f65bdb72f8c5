package serz

import "reflect"

// Codec converts between Go values of type T and DOM values.
//
// Parse reads v into *dst. On failure *dst may be partially assigned; callers
// that need all-or-nothing semantics parse into a scratch value.
//
// Serialize writes src into v through the Set* family, so the attribute flag
// already carried by v survives.
type Codec[T any] interface {
	// Name is the type name used in error messages, e.g. "u8" or "vector<i32>".
	Name() string
	Parse(dst *T, v Value) error
	Serialize(src T, v *Value)
}

// absentHandler is implemented by codecs that accept a missing object key.
// Absent assigns the value used for the missing key and reports whether
// absence is acceptable.
type absentHandler[T any] interface {
	Absent(dst *T) bool
}

// omitter is implemented by codecs whose values may be left out of an object.
type omitter[T any] interface {
	Omit(src T) bool
}

// Convertible is implemented by user aggregates, usually with AsObj and
// CreateObj chains.
type Convertible interface {
	ParseValue(v Value) error
	SerializeValue(v *Value)
}

type structCodec[T any, PT interface {
	*T
	Convertible
}] struct {
	name string
}

// Struct returns the codec for an aggregate whose pointer implements
// Convertible. The codec is named after the Go type.
func Struct[T any, PT interface {
	*T
	Convertible
}]() Codec[T] {
	return structCodec[T, PT]{name: reflect.TypeFor[T]().String()}
}

func (c structCodec[T, PT]) Name() string                { return c.name }
func (c structCodec[T, PT]) Parse(dst *T, v Value) error { return PT(dst).ParseValue(v) }
func (c structCodec[T, PT]) Serialize(src T, v *Value)   { PT(&src).SerializeValue(v) }

// ParseValue reads v into *dst using c.
func ParseValue[T any](dst *T, v Value, c Codec[T]) error {
	return c.Parse(dst, v)
}

// SerializeValue writes src into v using c and returns v.
func SerializeValue[T any](src T, v *Value, c Codec[T]) *Value {
	c.Serialize(src, v)
	return v
}

// ToValue serializes src into a fresh DOM value.
func ToValue[T any](src T, c Codec[T]) Value {
	var v Value
	c.Serialize(src, &v)
	return v
}

// FromValue parses v into a fresh T.
func FromValue[T any](v Value, c Codec[T]) (T, error) {
	var out T
	if err := c.Parse(&out, v); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
