// Package fromstr converts text into primitive values, reporting absence
// instead of a reason when the text does not hold one.
//
// Numbers must span the whole input apart from surrounding whitespace:
// "12abc" is absent rather than 12. Integers are base 10 and must fit the
// target width. Booleans accept exactly "true" and "false".
package fromstr

import (
	"strconv"
	"strings"
)

// Primitive lists the types Parse supports.
type Primitive interface {
	uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		float32 | float64 | bool
}

// ParseU8 parses s as a base-10 uint8.
func ParseU8(s string) (uint8, bool) { return parseUint[uint8](s, 8) }

// ParseU16 parses s as a base-10 uint16.
func ParseU16(s string) (uint16, bool) { return parseUint[uint16](s, 16) }

// ParseU32 parses s as a base-10 uint32.
func ParseU32(s string) (uint32, bool) { return parseUint[uint32](s, 32) }

// ParseU64 parses s as a base-10 uint64.
func ParseU64(s string) (uint64, bool) { return parseUint[uint64](s, 64) }

// ParseI8 parses s as a base-10 int8.
func ParseI8(s string) (int8, bool) { return parseInt[int8](s, 8) }

// ParseI16 parses s as a base-10 int16.
func ParseI16(s string) (int16, bool) { return parseInt[int16](s, 16) }

// ParseI32 parses s as a base-10 int32.
func ParseI32(s string) (int32, bool) { return parseInt[int32](s, 32) }

// ParseI64 parses s as a base-10 int64.
func ParseI64(s string) (int64, bool) { return parseInt[int64](s, 64) }

// ParseF32 parses s as a float32.
func ParseF32(s string) (float32, bool) { return parseFloat[float32](s, 32) }

// ParseF64 parses s as a float64.
func ParseF64(s string) (float64, bool) { return parseFloat[float64](s, 64) }

// ParseBool accepts only the exact literals "true" and "false".
func ParseBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Parse dispatches to the parser for T.
func Parse[T Primitive](s string) (T, bool) {
	var zero T
	var out any
	var ok bool
	switch any(zero).(type) {
	case uint8:
		out, ok = ParseU8(s)
	case uint16:
		out, ok = ParseU16(s)
	case uint32:
		out, ok = ParseU32(s)
	case uint64:
		out, ok = ParseU64(s)
	case int8:
		out, ok = ParseI8(s)
	case int16:
		out, ok = ParseI16(s)
	case int32:
		out, ok = ParseI32(s)
	case int64:
		out, ok = ParseI64(s)
	case float32:
		out, ok = ParseF32(s)
	case float64:
		out, ok = ParseF64(s)
	case bool:
		out, ok = ParseBool(s)
	}
	if !ok {
		return zero, false
	}
	return out.(T), true
}

func parseUint[T uint8 | uint16 | uint32 | uint64](s string, bits int) (T, bool) {
	u, err := strconv.ParseUint(strings.TrimSpace(s), 10, bits)
	if err != nil {
		return 0, false
	}
	return T(u), true
}

func parseInt[T int8 | int16 | int32 | int64](s string, bits int) (T, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, bits)
	if err != nil {
		return 0, false
	}
	return T(i), true
}

func parseFloat[T float32 | float64](s string, bits int) (T, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), bits)
	if err != nil {
		return 0, false
	}
	return T(f), true
}
