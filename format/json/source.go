package json

import (
	"io"

	j "github.com/goccy/go-json"

	"github.com/guangie88/serz/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// source yields engine tokens from a go-json Decoder. Object keys and string
// values share one token type in the decoder, so a frame stack tells them
// apart.
type source struct {
	dec   *j.Decoder
	stack []frame
}

func newSource(r io.Reader) engine.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

func (s *source) NextToken() (engine.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return engine.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return engine.Token{Kind: engine.KindBeginObject, Offset: -1}, nil
		case '}':
			s.pop()
			return engine.Token{Kind: engine.KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return engine.Token{Kind: engine.KindBeginArray, Offset: -1}, nil
		case ']':
			s.pop()
			return engine.Token{Kind: engine.KindEndArray, Offset: -1}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return engine.Token{Kind: engine.KindKey, String: v, Offset: -1}, nil
			}
		}
		s.valueDone()
		return engine.Token{Kind: engine.KindString, String: v, Offset: -1}, nil
	case bool:
		s.valueDone()
		return engine.Token{Kind: engine.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.valueDone()
		return engine.Token{Kind: engine.KindNumber, Number: string(v), Offset: -1}, nil
	}
	s.valueDone()
	return engine.Token{Kind: engine.KindNull, Offset: -1}, nil
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int64 { return -1 }
