package serz

import (
	"maps"
	"slices"
	"strconv"
)

// ---- sequences ----

type sliceCodec[E any] struct {
	elem Codec[E]
}

// Slice converts []E to and from an array.
//
// Parsing replaces the contents of the slice. An array is parsed element by
// element and stops at the first failure, keeping the elements parsed so far.
// Null and null-or-empty read as an empty slice; any other value is parsed as
// a single element.
func Slice[E any](elem Codec[E]) Codec[[]E] { return sliceCodec[E]{elem: elem} }

func (c sliceCodec[E]) Name() string { return "vector<" + c.elem.Name() + ">" }

func (c sliceCodec[E]) Parse(dst *[]E, v Value) error {
	switch v.Kind() {
	case KindArray:
		arr := v.MustArray()
		out := make([]E, 0, len(arr))
		for i := range arr {
			var e E
			if err := c.elem.Parse(&e, arr[i]); err != nil {
				*dst = out
				return WithPath(err, strconv.Itoa(i))
			}
			out = append(out, e)
		}
		*dst = out
	case KindNull, KindNullOrEmpty:
		*dst = []E{}
	default:
		var e E
		if err := c.elem.Parse(&e, v); err != nil {
			*dst = []E{}
			return err
		}
		*dst = []E{e}
	}
	return nil
}

func (c sliceCodec[E]) Serialize(src []E, v *Value) {
	arr := make([]Value, len(src))
	for i := range src {
		c.elem.Serialize(src[i], &arr[i])
	}
	v.set(KindArray, arr)
}

func (c sliceCodec[E]) Absent(dst *[]E) bool {
	if CurrentOptions().DisallowMissingContainers {
		return false
	}
	*dst = []E{}
	return true
}

// ---- string-keyed maps ----

type mapCodec[E any] struct {
	elem Codec[E]
}

// Map converts map[string]E to and from an object. Null and null-or-empty
// read as an empty map. Objects are written in sorted key order.
func Map[E any](elem Codec[E]) Codec[map[string]E] { return mapCodec[E]{elem: elem} }

func (c mapCodec[E]) Name() string { return "map<string, " + c.elem.Name() + ">" }

func (c mapCodec[E]) Parse(dst *map[string]E, v Value) error {
	switch v.Kind() {
	case KindObject:
		o := v.MustObject()
		out := make(map[string]E, o.Len())
		for k, child := range o.All() {
			var e E
			if err := c.elem.Parse(&e, *child); err != nil {
				*dst = out
				return WithPath(err, k)
			}
			out[k] = e
		}
		*dst = out
	case KindNull, KindNullOrEmpty:
		*dst = map[string]E{}
	default:
		return invalidType("object")
	}
	return nil
}

func (c mapCodec[E]) Serialize(src map[string]E, v *Value) {
	o := NewObject()
	for _, k := range slices.Sorted(maps.Keys(src)) {
		var child Value
		c.elem.Serialize(src[k], &child)
		o.emplaceOwned(k, child)
	}
	v.set(KindObject, o)
}

func (c mapCodec[E]) Absent(dst *map[string]E) bool {
	if CurrentOptions().DisallowMissingContainers {
		return false
	}
	*dst = map[string]E{}
	return true
}

// ---- optionals ----

type optionalCodec[E any] struct {
	elem Codec[E]
}

// Optional converts *E, with nil standing for an absent value. Null parses
// as nil. A nil field is left out of objects; outside a field chain it is
// written as null.
func Optional[E any](elem Codec[E]) Codec[*E] { return optionalCodec[E]{elem: elem} }

func (c optionalCodec[E]) Name() string { return "option<" + c.elem.Name() + ">" }

func (c optionalCodec[E]) Parse(dst **E, v Value) error {
	if v.Is(KindNull) {
		*dst = nil
		return nil
	}
	e := new(E)
	if err := c.elem.Parse(e, v); err != nil {
		return err
	}
	*dst = e
	return nil
}

func (c optionalCodec[E]) Serialize(src *E, v *Value) {
	if src == nil {
		v.SetNull()
		return
	}
	c.elem.Serialize(*src, v)
}

func (c optionalCodec[E]) Absent(dst **E) bool {
	*dst = nil
	return true
}

func (c optionalCodec[E]) Omit(src *E) bool { return src == nil }
