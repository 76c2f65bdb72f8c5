package serz

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// KeyCase names a preset key transformation for Rekey.
type KeyCase string

const (
	KeyCaseNone       KeyCase = ""
	KeyCaseSnake      KeyCase = "snake"
	KeyCaseCamel      KeyCase = "camel"
	KeyCaseLowerCamel KeyCase = "lower-camel"
	KeyCaseKebab      KeyCase = "kebab"
)

// KeyCases lists the accepted presets, KeyCaseNone excluded.
var KeyCases = []KeyCase{KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab}

// Func returns the key transformation for k, or nil for KeyCaseNone.
func (k KeyCase) Func() (func(string) string, error) {
	switch k {
	case KeyCaseNone:
		return nil, nil
	case KeyCaseSnake:
		return strcase.ToSnake, nil
	case KeyCaseCamel:
		return strcase.ToCamel, nil
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel, nil
	case KeyCaseKebab:
		return strcase.ToKebab, nil
	}
	return nil, fmt.Errorf("unknown key case %q", string(k))
}

// Rekey returns a deep copy of v with every object key passed through fn.
// When two keys map to the same name the first one wins. A nil fn copies v
// unchanged.
func Rekey(v Value, fn func(string) string) Value {
	if fn == nil {
		return v.Clone()
	}
	switch v.Kind() {
	case KindObject:
		src := v.MustObject()
		o := &Object{index: make(map[string]int, src.Len())}
		for k, child := range src.All() {
			o.emplaceOwned(fn(k), Rekey(*child, fn))
		}
		v.data = o
	case KindArray:
		src := v.MustArray()
		arr := make([]Value, len(src))
		for i := range src {
			arr[i] = Rekey(src[i], fn)
		}
		v.data = arr
	}
	return v
}
