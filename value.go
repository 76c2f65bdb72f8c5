package serz

import (
	"strconv"
	"strings"
)

// Kind enumerates the variants a DOM Value can hold.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindBool
	KindInt
	KindFloat
	KindString
	// KindNullOrEmpty marks a value that is absent, an empty string or an
	// empty object. Only adapters that cannot tell these apart produce it
	// (e.g. an XML element without children).
	KindNullOrEmpty
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindNullOrEmpty:
		return "null_or_empty"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the intermediate DOM node shared by every format adapter.
//
// Exactly one variant is active. The zero Value is Null. Objects and arrays
// own their children: every API that stores a Value into another tree stores a
// deep copy, and Clone produces an independent copy. Assigning one Value
// variable to another with = shares the object/array payload; use Clone when
// the copy is going to be mutated.
//
// The attribute flag is orthogonal to the active variant and only matters to
// adapters that distinguish attributes from child nodes.
type Value struct {
	kind Kind
	data any // bool | int64 | float64 | string | *Object | []Value
	attr bool
}

// NullValue returns a null value; it equals the zero Value.
func NullValue() Value { return Value{} }

// NullOrEmptyValue returns the marker for a present but empty value.
func NullOrEmptyValue() Value { return Value{kind: KindNullOrEmpty} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, data: b} }

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{kind: KindInt, data: i} }

// FloatValue returns a floating point value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, data: f} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, data: s} }

// ObjectValue returns an object holding a deep copy of o; nil gives an empty object.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, data: ownObject(o)} }

// ArrayValue returns an array holding deep copies of elems.
func ArrayValue(elems ...Value) Value { return Value{kind: KindArray, data: cloneValues(elems)} }

// EmptyObject returns an object with no entries.
func EmptyObject() Value { return Value{kind: KindObject, data: NewObject()} }

// EmptyArray returns an array with no elements.
func EmptyArray() Value { return Value{kind: KindArray, data: []Value{}} }

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// Is reports whether the active variant is k.
func (v Value) Is(k Kind) bool { return v.kind == k }

// IsAttribute reports whether v is flagged as an attribute.
func (v Value) IsAttribute() bool { return v.attr }

// WithAttribute returns v with the attribute flag set to attr.
func (v Value) WithAttribute(attr bool) Value {
	v.attr = attr
	return v
}

// SetAttribute sets the attribute flag in place.
func (v *Value) SetAttribute(attr bool) *Value {
	v.attr = attr
	return v
}

// ---- checked accessors ----

// AsBool returns the bool payload and whether v holds one.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok && v.kind == KindBool
}

// AsInt returns the int payload and whether v holds one.
func (v Value) AsInt() (int64, bool) {
	i, ok := v.data.(int64)
	return i, ok && v.kind == KindInt
}

// AsFloat returns the float payload and whether v holds one.
func (v Value) AsFloat() (float64, bool) {
	f, ok := v.data.(float64)
	return f, ok && v.kind == KindFloat
}

// AsString returns the string payload and whether v holds one.
func (v Value) AsString() (string, bool) {
	s, ok := v.data.(string)
	return s, ok && v.kind == KindString
}

// AsObject returns the live object payload. Mutations through the returned
// pointer are visible in v.
func (v Value) AsObject() (*Object, bool) {
	o, ok := v.data.(*Object)
	return o, ok && v.kind == KindObject
}

// AsArray returns the live array payload. Elements may be mutated in place;
// use Append to grow the array.
func (v Value) AsArray() ([]Value, bool) {
	a, ok := v.data.([]Value)
	return a, ok && v.kind == KindArray
}

// ---- unchecked accessors ----
//
// Callers must have established the variant with Is or a checked accessor.
// A mismatch panics.

func (v Value) MustBool() bool      { return v.data.(bool) }
func (v Value) MustInt() int64      { return v.data.(int64) }
func (v Value) MustFloat() float64  { return v.data.(float64) }
func (v Value) MustString() string  { return v.data.(string) }
func (v Value) MustObject() *Object { return v.data.(*Object) }
func (v Value) MustArray() []Value  { return v.data.([]Value) }

// ---- variant assignment ----
//
// The Set* family replaces the active variant and keeps the current attribute
// flag. Assign replaces everything, attribute flag included. Adapters rely on
// the flag surviving scalar re-assignment.

func (v *Value) SetNull() *Value           { return v.set(KindNull, nil) }
func (v *Value) SetNullOrEmpty() *Value    { return v.set(KindNullOrEmpty, nil) }
func (v *Value) SetBool(b bool) *Value     { return v.set(KindBool, b) }
func (v *Value) SetInt(i int64) *Value     { return v.set(KindInt, i) }
func (v *Value) SetFloat(f float64) *Value { return v.set(KindFloat, f) }
func (v *Value) SetString(s string) *Value { return v.set(KindString, s) }

// SetObject stores a deep copy of o (an empty object when o is nil).
func (v *Value) SetObject(o *Object) *Value { return v.set(KindObject, ownObject(o)) }

// SetArray stores a deep copy of elems.
func (v *Value) SetArray(elems []Value) *Value { return v.set(KindArray, cloneValues(elems)) }

// Assign makes v a deep copy of other, including its attribute flag.
func (v *Value) Assign(other Value) *Value {
	*v = other.Clone()
	return v
}

// Append adds a deep copy of elem to an array value. It reports false when v
// is not an array.
func (v *Value) Append(elem Value) bool {
	a, ok := v.AsArray()
	if !ok {
		return false
	}
	v.data = append(a, elem.Clone())
	return true
}

// appendOwned appends without copying; elem must not be referenced elsewhere.
func (v *Value) appendOwned(elem Value) {
	a, _ := v.data.([]Value)
	v.data = append(a, elem)
}

func (v *Value) set(k Kind, data any) *Value {
	v.kind = k
	v.data = data
	return v
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindObject:
		v.data = v.MustObject().Clone()
	case KindArray:
		v.data = cloneValues(v.MustArray())
	}
	return v
}

// Equal reports structural equality: same variant, payload and attribute flag.
// Objects compare their entries in insertion order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.attr != other.attr {
		return false
	}
	switch v.kind {
	case KindNull, KindNullOrEmpty:
		return true
	case KindObject:
		return v.MustObject().Equal(other.MustObject())
	case KindArray:
		a, b := v.MustArray(), other.MustArray()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	}
	return v.data == other.data
}

// String renders v in a compact JSON-like form for debugging.
func (v Value) String() string {
	var b strings.Builder
	v.writeDebug(&b)
	return b.String()
}

func (v Value) writeDebug(b *strings.Builder) {
	if v.attr {
		b.WriteByte('@')
	}
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindNullOrEmpty:
		b.WriteString("<null_or_empty>")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.MustBool()))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.MustInt(), 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.MustFloat(), 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.MustString()))
	case KindArray:
		b.WriteByte('[')
		for i, e := range v.MustArray() {
			if i > 0 {
				b.WriteByte(',')
			}
			e.writeDebug(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		i := 0
		for k, e := range v.MustObject().All() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			e.writeDebug(b)
			i++
		}
		b.WriteByte('}')
	}
}

func ownObject(o *Object) *Object {
	if o == nil {
		return NewObject()
	}
	return o.Clone()
}

func cloneValues(src []Value) []Value {
	out := make([]Value, len(src))
	for i := range src {
		out[i] = src[i].Clone()
	}
	return out
}
