// Package xml reads and writes XML documents as serz DOM values.
//
// The mapping is lossy in the way XML itself is:
//
//   - the root element becomes the returned value; its name is dropped
//   - attributes become string children flagged as attributes
//   - child elements become children; repeated names fold into an array
//   - an element with only text becomes a string, an empty element becomes
//     null-or-empty, and text mixed with children is kept under "#text"
//
// All scalars read back as strings. The codecs accept numeric and boolean
// strings, so typed conversion still works.
package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/etor"
	"github.com/guangie88/serz/internal/fileio"
)

const formatName = "XML"

// TextKey holds the character data of an element that also has children or
// attributes.
const TextKey = "#text"

type config struct {
	maxDepth int
}

// Option configures parsing.
type Option func(*config)

// WithMaxDepth rejects documents nested deeper than n elements. n <= 0
// disables the limit.
func WithMaxDepth(n int) Option { return func(c *config) { c.maxDepth = n } }

var adapter = etor.New(etor.Catch[*xml.SyntaxError](), etor.Catch[runtime.Error]())

var errTrailing = errors.New("unexpected element after the root element")

// Parse converts XML text into a DOM value. Input without a root element
// parses as null.
func Parse(content []byte, opts ...Option) (serz.Value, error) {
	return ParseReader(bytes.NewReader(content), opts...)
}

// ParseReader converts the XML document read from r into a DOM value.
func ParseReader(r io.Reader, opts ...Option) (serz.Value, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	v, err := etor.Mix(adapter, func() (serz.Value, error) {
		p := parser{dec: xml.NewDecoder(r), cfg: cfg}
		return p.document()
	})
	if err != nil {
		return serz.Value{}, parseError(err)
	}
	return v, nil
}

// ParseFile converts the XML file at path into a DOM value.
func ParseFile(path string, opts ...Option) (serz.Value, error) {
	f, err := fileio.Open(path, formatName)
	if err != nil {
		return serz.Value{}, err
	}
	defer f.Close()
	return ParseReader(f, opts...)
}

func parseError(err error) error {
	if _, ok := err.(*serz.Error); ok {
		return err
	}
	e := serz.NewError(serz.CodeParseError, map[string]string{"format": formatName, "detail": err.Error()})
	e.Cause = err
	return e
}

type element struct {
	name   string
	val    serz.Value // null until the first attribute or child
	folded map[string]bool
	text   strings.Builder
}

type parser struct {
	dec   *xml.Decoder
	cfg   config
	stack []*element
}

func (p *parser) document() (serz.Value, error) {
	var root serz.Value
	done := false
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			if len(p.stack) > 0 {
				return serz.Value{}, io.ErrUnexpectedEOF
			}
			if !done {
				return serz.NullValue(), nil
			}
			return root, nil
		}
		if err != nil {
			return serz.Value{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if done {
				return serz.Value{}, fmt.Errorf("%w <%s>", errTrailing, t.Name.Local)
			}
			if err := p.start(t); err != nil {
				return serz.Value{}, err
			}
		case xml.EndElement:
			e := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			v := e.value()
			if len(p.stack) == 0 {
				root, done = v, true
				continue
			}
			p.stack[len(p.stack)-1].add(e.name, v)
		case xml.CharData:
			if len(p.stack) > 0 {
				p.stack[len(p.stack)-1].text.Write(t)
			}
		}
	}
}

func (p *parser) start(t xml.StartElement) error {
	e := &element{name: t.Name.Local}
	p.stack = append(p.stack, e)
	if p.cfg.maxDepth > 0 && len(p.stack) > p.cfg.maxDepth {
		err := serz.NewError(serz.CodeDepth, nil)
		err.Path = p.path()
		return err
	}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		e.object().Emplace(a.Name.Local, serz.StringValue(a.Value).WithAttribute(true))
	}
	return nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// path renders the open elements below the root as a JSON Pointer.
func (p *parser) path() string {
	var b strings.Builder
	for _, e := range p.stack[1:] {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(e.name))
	}
	return b.String()
}

func (e *element) object() *serz.Object {
	if !e.val.Is(serz.KindObject) {
		e.val = serz.EmptyObject()
	}
	return e.val.MustObject()
}

// add stores child under name without copying it. A name seen before turns
// into an array holding every occurrence. A name already used by an
// attribute keeps the attribute.
func (e *element) add(name string, child serz.Value) {
	o := e.object()
	slot, ok := o.Get(name)
	if !ok {
		pos, _ := o.Emplace(name, serz.NullValue())
		_, slot = o.At(pos)
		*slot = child
		return
	}
	if slot.IsAttribute() {
		return
	}
	if !e.folded[name] {
		first := *slot
		*slot = serz.EmptyArray()
		appendShared(slot, first)
		if e.folded == nil {
			e.folded = make(map[string]bool)
		}
		e.folded[name] = true
	}
	appendShared(slot, child)
}

func appendShared(arr *serz.Value, v serz.Value) {
	arr.Append(serz.NullValue())
	a := arr.MustArray()
	a[len(a)-1] = v
}

func (e *element) value() serz.Value {
	text := strings.TrimSpace(e.text.String())
	if !e.val.Is(serz.KindObject) {
		if text == "" {
			return serz.NullOrEmptyValue()
		}
		return serz.StringValue(text)
	}
	if text != "" {
		e.val.MustObject().Emplace(TextKey, serz.StringValue(text))
	}
	return e.val
}
