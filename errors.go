package serz

import (
	"errors"
	"strings"

	"github.com/guangie88/serz/i18n"
)

// Error codes. Messages are plain descriptions; the code only classifies the
// failure.
const (
	CodeInvalidType  = "invalid_type"  // DOM variant does not match the target
	CodeRequired     = "required"      // key missing during field chaining
	CodeCoercion     = "coercion"      // value present but not convertible
	CodeInvalidEnum  = "invalid_enum"  // enum target without an integer value
	CodeParseError   = "parse_error"   // format text is not well formed
	CodeIO           = "io"            // source or sink could not be opened
	CodeDuplicateKey = "duplicate_key" // duplicate object key under a strict policy
	CodeDepth        = "depth"         // nesting deeper than the configured limit
)

// Error is the failure type produced across serz. Path is a JSON Pointer to
// the offending DOM node ("" for the root).
type Error struct {
	Path    string
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an Error whose message comes from the i18n catalog.
func NewError(code string, data map[string]string) *Error {
	return &Error{Code: code, Message: i18n.T(code, data)}
}

// AsError extracts *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// there is none.
func CodeOf(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// WithPath prefixes the path of err with one JSON Pointer token. Errors that
// are not *Error are wrapped so the location is not lost.
func WithPath(err error, token string) error {
	if err == nil {
		return nil
	}
	e, ok := err.(*Error)
	if !ok {
		e = &Error{Message: err.Error(), Cause: err}
		if inner, ok := AsError(err); ok {
			e.Code = inner.Code
		}
	} else {
		cp := *e
		e = &cp
	}
	e.Path = joinPointer(token, e.Path)
	return e
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(token, rest string) string {
	return "/" + pointerEscaper.Replace(token) + rest
}

func invalidType(expected string) *Error {
	return NewError(CodeInvalidType, map[string]string{"expected": expected})
}

func missingKey(name string) *Error {
	return NewError(CodeRequired, map[string]string{"key": name})
}

func coercionFailed(typeName string) *Error {
	return NewError(CodeCoercion, map[string]string{"type": typeName})
}
