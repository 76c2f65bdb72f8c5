// Package etor turns panicking computations into (value, error) results.
//
// Some libraries signal malformed input by panicking. serz commits to
// explicit error returns, so adapters run those libraries inside an Adapter:
// a single recover boundary that tries an ordered list of categories against
// the recovered value and reports the first match as an *Error. The catch-all
// category is always tried last, so every panic becomes an error.
package etor

import (
	"errors"
	"fmt"
	"reflect"
)

// Describer lets an error type customize the description placed in the error
// channel. Errors that do not implement it are described by Error().
type Describer interface {
	Describe() string
}

// DescribeError converts err to the description carried by *Error.
func DescribeError(err error) string {
	var d Describer
	if errors.As(err, &d) {
		return d.Describe()
	}
	return err.Error()
}

// Category matches a recovered panic value.
type Category interface {
	Name() string
	// Match reports whether r belongs to the category and, if so, its
	// description.
	Match(r any) (string, bool)
}

// Error is the error produced for a recovered panic.
type Error struct {
	Category    string
	Description string
	Value       any // the recovered panic value
}

func (e *Error) Error() string { return e.Description }

// Unwrap exposes the panic value when it was an error.
func (e *Error) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

type catchType[E error] struct{ name string }

// Catch matches panics whose value is, or wraps, an E.
func Catch[E error]() Category {
	return catchType[E]{name: reflect.TypeFor[E]().String()}
}

func (c catchType[E]) Name() string { return c.name }

func (c catchType[E]) Match(r any) (string, bool) {
	err, ok := r.(error)
	if !ok {
		return "", false
	}
	var target E
	if !errors.As(err, &target) {
		return "", false
	}
	return DescribeError(target), true
}

type catchFunc struct {
	name string
	fn   func(any) (string, bool)
}

// CatchFunc builds a category from a predicate.
func CatchFunc(name string, fn func(r any) (string, bool)) Category {
	return catchFunc{name: name, fn: fn}
}

func (c catchFunc) Name() string               { return c.name }
func (c catchFunc) Match(r any) (string, bool) { return c.fn(r) }

type anyCategory struct{}

// Any is the catch-all base category.
func Any() Category { return anyCategory{} }

func (anyCategory) Name() string { return "any" }

func (anyCategory) Match(r any) (string, bool) {
	switch v := r.(type) {
	case error:
		return DescribeError(v), true
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return fmt.Sprint(r), true
}

// Adapter holds the ordered categories tried for a recovered panic.
type Adapter struct {
	cats []Category
}

// New returns an Adapter trying cats in order, most specific first, followed
// by the catch-all category.
func New(cats ...Category) *Adapter {
	all := make([]Category, 0, len(cats)+1)
	all = append(all, cats...)
	all = append(all, Any())
	return &Adapter{cats: all}
}

// Default catches every panic with the catch-all category only.
var Default = New()

// Categories returns the category names in the order they are tried.
func (a *Adapter) Categories() []string {
	names := make([]string, len(a.cats))
	for i, c := range a.cats {
		names[i] = c.Name()
	}
	return names
}

func (a *Adapter) convert(r any, mapFn func(string) string) *Error {
	if a == nil {
		a = Default
	}
	for _, c := range a.cats {
		desc, ok := c.Match(r)
		if !ok {
			continue
		}
		if mapFn != nil {
			desc = mapFn(desc)
		}
		return &Error{Category: c.Name(), Description: desc, Value: r}
	}
	// only reached by a zero Adapter, which has no categories
	return &Error{Category: "any", Description: fmt.Sprint(r), Value: r}
}

// Run executes fn and wraps its value as success. A panic becomes an *Error.
func Run[T any](a *Adapter, fn func() T) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res, err = zero, a.convert(r, nil)
		}
	}()
	return fn(), nil
}

// Mix executes a computation that already returns a result. Its own errors
// pass through unchanged; only panics are converted.
func Mix[T any](a *Adapter, fn func() (T, error)) (T, error) {
	return MixMap(a, fn, nil)
}

// MixMap is Mix with the panic description passed through mapFn before it is
// placed in the error channel.
func MixMap[T any](a *Adapter, fn func() (T, error), mapFn func(string) string) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res, err = zero, a.convert(r, mapFn)
		}
	}()
	return fn()
}
