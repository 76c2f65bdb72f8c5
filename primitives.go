package serz

import (
	"math"

	"github.com/guangie88/serz/fromstr"
)

// Integer lists the integer kinds the numeric and enum codecs accept.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ---- bool / string ----

type boolCodec struct{}

// Bool accepts the bool variant and the strings "true" and "false".
func Bool() Codec[bool] { return boolCodec{} }

func (boolCodec) Name() string { return "bool" }

func (boolCodec) Parse(dst *bool, v Value) error {
	if b, ok := v.AsBool(); ok {
		*dst = b
		return nil
	}
	if s, ok := v.AsString(); ok {
		if b, ok := fromstr.ParseBool(s); ok {
			*dst = b
			return nil
		}
	}
	return coercionFailed("bool")
}

func (boolCodec) Serialize(src bool, v *Value) { v.SetBool(src) }

type stringCodec struct{}

// String accepts the string variant. Null and null-or-empty read as "".
func String() Codec[string] { return stringCodec{} }

func (stringCodec) Name() string { return "string" }

func (stringCodec) Parse(dst *string, v Value) error {
	switch v.Kind() {
	case KindString:
		*dst = v.MustString()
	case KindNull, KindNullOrEmpty:
		*dst = ""
	default:
		return invalidType("string")
	}
	return nil
}

func (stringCodec) Serialize(src string, v *Value) { v.SetString(src) }

// ---- numbers ----

type intCodec[N Integer] struct {
	name  string
	parse func(string) (N, bool)
}

// Int converts int, range checked, from Int values or numeric strings.
func Int() Codec[int] { return intCodec[int]{"int", parseNarrow[int]} }

// Int8 converts int8, range checked, from Int values or numeric strings.
func Int8() Codec[int8] { return intCodec[int8]{"i8", fromstr.ParseI8} }

// Int16 converts int16, range checked, from Int values or numeric strings.
func Int16() Codec[int16] { return intCodec[int16]{"i16", fromstr.ParseI16} }

// Int32 converts int32, range checked, from Int values or numeric strings.
func Int32() Codec[int32] { return intCodec[int32]{"i32", fromstr.ParseI32} }

// Int64 converts int64, range checked, from Int values or numeric strings.
func Int64() Codec[int64] { return intCodec[int64]{"i64", fromstr.ParseI64} }

// Uint converts uint, range checked, from Int values or numeric strings.
func Uint() Codec[uint] { return intCodec[uint]{"uint", parseUint} }

// Uint8 converts uint8, range checked, from Int values or numeric strings.
func Uint8() Codec[uint8] { return intCodec[uint8]{"u8", fromstr.ParseU8} }

// Uint16 converts uint16, range checked, from Int values or numeric strings.
func Uint16() Codec[uint16] { return intCodec[uint16]{"u16", fromstr.ParseU16} }

// Uint32 converts uint32, range checked, from Int values or numeric strings.
func Uint32() Codec[uint32] { return intCodec[uint32]{"u32", fromstr.ParseU32} }

// Uint64 converts uint64, range checked, from Int values or numeric strings.
func Uint64() Codec[uint64] { return intCodec[uint64]{"u64", fromstr.ParseU64} }

func (c intCodec[N]) Name() string { return c.name }

// Parse takes an in-range int variant first, then a string holding a number
// of the target type.
func (c intCodec[N]) Parse(dst *N, v Value) error {
	if i, ok := v.AsInt(); ok {
		if n, ok := narrow[N](i); ok {
			*dst = n
			return nil
		}
	}
	if s, ok := v.AsString(); ok {
		if n, ok := c.parse(s); ok {
			*dst = n
			return nil
		}
	}
	return coercionFailed(c.name)
}

// Serialize stores src as an int variant. Unsigned values above
// math.MaxInt64 wrap around.
func (c intCodec[N]) Serialize(src N, v *Value) { v.SetInt(int64(src)) }

// narrow converts i to N when the value survives the conversion unchanged.
func narrow[N Integer](i int64) (N, bool) {
	n := N(i)
	return n, int64(n) == i && (n < 0) == (i < 0)
}

func parseNarrow[N Integer](s string) (N, bool) {
	i, ok := fromstr.ParseI64(s)
	if !ok {
		return 0, false
	}
	return narrow[N](i)
}

func parseUint(s string) (uint, bool) {
	u, ok := fromstr.ParseU64(s)
	if !ok || uint64(uint(u)) != u {
		return 0, false
	}
	return uint(u), true
}

type floatCodec[N float32 | float64] struct {
	name  string
	max   float64
	parse func(string) (N, bool)
}

// Float32 converts float32 from Float or Int values or numeric strings.
func Float32() Codec[float32] { return floatCodec[float32]{"f32", math.MaxFloat32, fromstr.ParseF32} }

// Float64 converts float64 from Float or Int values or numeric strings.
func Float64() Codec[float64] { return floatCodec[float64]{"f64", math.MaxFloat64, fromstr.ParseF64} }

func (c floatCodec[N]) Name() string { return c.name }

// Parse takes a float or int variant within the finite range of N, then a
// string holding a number.
func (c floatCodec[N]) Parse(dst *N, v Value) error {
	f, ok := v.AsFloat()
	if !ok {
		var i int64
		if i, ok = v.AsInt(); ok {
			f = float64(i)
		}
	}
	if ok && f >= -c.max && f <= c.max {
		*dst = N(f)
		return nil
	}
	if s, ok := v.AsString(); ok {
		if n, ok := c.parse(s); ok {
			*dst = n
			return nil
		}
	}
	return coercionFailed(c.name)
}

func (c floatCodec[N]) Serialize(src N, v *Value) { v.SetFloat(float64(src)) }

// ---- enum ----

type enumCodec[E Integer] struct{}

// Enum converts an integer-backed enumeration through the int variant. The
// integer is cast without range checks.
func Enum[E Integer]() Codec[E] { return enumCodec[E]{} }

func (enumCodec[E]) Name() string { return "enum" }

func (enumCodec[E]) Parse(dst *E, v Value) error {
	i, ok := v.AsInt()
	if !ok {
		return NewError(CodeInvalidEnum, nil)
	}
	*dst = E(i)
	return nil
}

func (enumCodec[E]) Serialize(src E, v *Value) { v.SetInt(int64(src)) }

// ---- dom / unit ----

type domCodec struct{}

// Dom passes DOM values through as deep copies.
func Dom() Codec[Value] { return domCodec{} }

func (domCodec) Name() string { return "dom" }

func (domCodec) Parse(dst *Value, v Value) error {
	*dst = v.Clone()
	return nil
}

// Serialize stores a deep copy of src. Like the Set* family it keeps the
// attribute flag of v.
func (domCodec) Serialize(src Value, v *Value) {
	attr := v.IsAttribute()
	v.Assign(src).SetAttribute(attr)
}

type unitCodec struct{}

// Unit maps struct{} to null.
func Unit() Codec[struct{}] { return unitCodec{} }

func (unitCodec) Name() string { return "unit" }

func (unitCodec) Parse(_ *struct{}, v Value) error {
	if v.Is(KindNull) || v.Is(KindNullOrEmpty) {
		return nil
	}
	return invalidType("null")
}

func (unitCodec) Serialize(_ struct{}, v *Value) { v.SetNull() }
