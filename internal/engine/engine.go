// Package engine turns token streams produced by format adapters into DOM
// values.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/guangie88/serz"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "'{'"
	case KindEndObject:
		return "'}'"
	case KindBeginArray:
		return "'['"
	case KindEndArray:
		return "']'"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "token(" + strconv.Itoa(int(k)) + ")"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // number text as written in the input
	Bool   bool
	Offset int64
}

// TokenSource yields tokens until io.EOF.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

var (
	// ErrTrailingData reports tokens after the top-level value.
	ErrTrailingData = errors.New("unexpected data after the top-level value")
	// ErrUnexpectedToken reports a token that cannot appear where it was read.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// Build reads one document from src. A source without tokens yields Null.
func Build(src TokenSource) (serz.Value, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return serz.NullValue(), nil
	}
	if err != nil {
		return serz.Value{}, err
	}
	b := builder{src: src}
	var root serz.Value
	if err := b.fill(&root, tok); err != nil {
		return serz.Value{}, err
	}
	extra, err := src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		return root, nil
	case err != nil:
		return serz.Value{}, err
	}
	return serz.Value{}, fmt.Errorf("%w: %s%s", ErrTrailingData, extra.Kind, at(extra))
}

type builder struct {
	src TokenSource
}

// next reads a token inside a document, where io.EOF means truncated input.
func (b *builder) next() (Token, error) {
	tok, err := b.src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

// fill writes the value starting at tok into dst. Containers are filled in
// place so no subtree is copied while building.
func (b *builder) fill(dst *serz.Value, tok Token) error {
	switch tok.Kind {
	case KindBeginObject:
		dst.SetObject(nil)
		o := dst.MustObject()
		for {
			kt, err := b.next()
			if err != nil {
				return err
			}
			if kt.Kind == KindEndObject {
				return nil
			}
			if kt.Kind != KindKey {
				return unexpected(kt)
			}
			vt, err := b.next()
			if err != nil {
				return err
			}
			pos, inserted := o.Emplace(kt.String, serz.NullValue())
			if !inserted {
				// first occurrence wins; the duplicate is consumed and dropped
				var discard serz.Value
				if err := b.fill(&discard, vt); err != nil {
					return err
				}
				continue
			}
			_, child := o.At(pos)
			if err := b.fill(child, vt); err != nil {
				return err
			}
		}
	case KindBeginArray:
		dst.SetArray(nil)
		for {
			et, err := b.next()
			if err != nil {
				return err
			}
			if et.Kind == KindEndArray {
				return nil
			}
			dst.Append(serz.NullValue())
			arr := dst.MustArray()
			if err := b.fill(&arr[len(arr)-1], et); err != nil {
				return err
			}
		}
	case KindString:
		dst.SetString(tok.String)
	case KindNumber:
		n, err := NumberValue(tok.Number)
		if err != nil {
			return err
		}
		dst.Assign(n)
	case KindBool:
		dst.SetBool(tok.Bool)
	case KindNull:
		dst.SetNull()
	default:
		return unexpected(tok)
	}
	return nil
}

func unexpected(tok Token) error {
	return fmt.Errorf("%w %s%s", ErrUnexpectedToken, tok.Kind, at(tok))
}

func at(tok Token) string {
	if tok.Offset < 0 {
		return ""
	}
	return " at offset " + strconv.FormatInt(tok.Offset, 10)
}

// NumberValue converts number text to a DOM value. Integers that fit int64
// become Int; larger unsigned integers wrap into Int; everything else becomes
// Float.
func NumberValue(text string) (serz.Value, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return serz.IntValue(i), nil
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return serz.IntValue(int64(u)), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return serz.FloatValue(f), nil
		}
		return serz.Value{}, fmt.Errorf("invalid number %q", text)
	}
	return serz.FloatValue(f), nil
}

// Tokens returns a TokenSource replaying toks. Adapters whose parser yields
// a tree rather than a stream flatten it into tokens to share enforcement.
func Tokens(toks []Token) TokenSource {
	return &sliceSource{toks: toks}
}

type sliceSource struct {
	toks []Token
	pos  int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, nil
}

func (s *sliceSource) Location() int64 { return int64(s.pos) }
