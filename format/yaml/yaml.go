// Package yaml reads and writes YAML documents as serz DOM values using
// gopkg.in/yaml.v3.
//
// Mappings keep their key order. Scalars map by their resolved tag: !!null,
// !!bool, !!int and !!float become the matching variant and every other tag,
// timestamps included, becomes a string. Aliases are expanded. Only the
// first document of a stream is read; empty input parses as null.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/etor"
	"github.com/guangie88/serz/internal/engine"
	"github.com/guangie88/serz/internal/fileio"
)

const formatName = "YAML"

// DuplicatePolicy controls repeated mapping keys.
type DuplicatePolicy = engine.DuplicatePolicy

const (
	DuplicateFirstWins = engine.DupFirstWins
	DuplicateError     = engine.DupError
)

type config struct {
	maxDepth int
	dup      DuplicatePolicy
}

// Option configures parsing.
type Option func(*config)

// WithMaxDepth rejects documents nested deeper than n collections. n <= 0
// disables the limit.
func WithMaxDepth(n int) Option { return func(c *config) { c.maxDepth = n } }

// WithDuplicateKeys sets the repeated key policy; the default keeps the
// first occurrence.
func WithDuplicateKeys(p DuplicatePolicy) Option { return func(c *config) { c.dup = p } }

var adapter = etor.New(etor.Catch[*nodeError](), etor.Catch[*yaml.TypeError](), etor.Catch[runtime.Error]())

// Parse converts YAML text into a DOM value.
func Parse(content []byte, opts ...Option) (serz.Value, error) {
	return ParseReader(bytes.NewReader(content), opts...)
}

// ParseReader converts the first YAML document read from r into a DOM value.
func ParseReader(r io.Reader, opts ...Option) (serz.Value, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	root, err := etor.Mix(adapter, func() (*yaml.Node, error) {
		var doc yaml.Node
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
		return &doc, nil
	})
	if err != nil {
		return serz.Value{}, parseError(err)
	}
	if root == nil {
		return serz.NullValue(), nil
	}
	toks, err := etor.Run(adapter, func() []engine.Token {
		f := flattener{budget: max(minTokenBudget, tokensPerNode*countNodes(root))}
		f.node(root, 0)
		return f.toks
	})
	if err != nil {
		return serz.Value{}, parseError(err)
	}
	v, err := engine.Build(engine.WrapWithEnforcement(engine.Tokens(toks), engine.EnforceOptions{
		OnDuplicate: cfg.dup,
		MaxDepth:    cfg.maxDepth,
	}))
	if err != nil {
		return serz.Value{}, parseError(err)
	}
	return v, nil
}

// ParseFile converts the YAML file at path into a DOM value.
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

// nodeError is raised while flattening a node tree the DOM cannot hold.
type nodeError struct {
	Line, Column int
	Msg          string
}

func (e *nodeError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d column %d: %s", e.Line, e.Column, e.Msg)
}

// maxAliasDepth bounds alias expansion so self-referencing anchors fail
// instead of recursing forever.
const maxAliasDepth = 1000

// Expanded output is capped at tokensPerNode times the node count of the
// document, or minTokenBudget when that is larger, so nested aliases cannot
// grow a small input into a huge tree.
const (
	minTokenBudget = 400_000
	tokensPerNode  = 10
)

// countNodes counts the nodes written in the document; aliases count once.
func countNodes(n *yaml.Node) int {
	c := 1
	for _, k := range n.Content {
		c += countNodes(k)
	}
	return c
}

type flattener struct {
	toks   []engine.Token
	budget int
}

func (f *flattener) emit(t engine.Token) {
	if len(f.toks) >= f.budget {
		panic(&nodeError{Msg: fmt.Sprintf("document expands to more than %d values", f.budget)})
	}
	t.Offset = -1
	f.toks = append(f.toks, t)
}

func (f *flattener) node(n *yaml.Node, aliases int) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			f.emit(engine.Token{Kind: engine.KindNull})
			return
		}
		f.node(n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			panic(&nodeError{Line: n.Line, Column: n.Column, Msg: "alias expansion too deep"})
		}
		f.node(n.Alias, aliases+1)
	case yaml.MappingNode:
		f.emit(engine.Token{Kind: engine.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				panic(&nodeError{Line: k.Line, Column: k.Column, Msg: "mapping keys must be scalars"})
			}
			f.emit(engine.Token{Kind: engine.KindKey, String: k.Value})
			f.node(n.Content[i+1], aliases)
		}
		f.emit(engine.Token{Kind: engine.KindEndObject})
	case yaml.SequenceNode:
		f.emit(engine.Token{Kind: engine.KindBeginArray})
		for _, c := range n.Content {
			f.node(c, aliases)
		}
		f.emit(engine.Token{Kind: engine.KindEndArray})
	case yaml.ScalarNode:
		f.emit(scalarToken(n))
	default:
		panic(&nodeError{Line: n.Line, Column: n.Column, Msg: "unsupported node"})
	}
}

func scalarToken(n *yaml.Node) engine.Token {
	switch n.ShortTag() {
	case "!!null":
		return engine.Token{Kind: engine.KindNull}
	case "!!bool":
		var b bool
		decodeScalar(n, &b)
		return engine.Token{Kind: engine.KindBool, Bool: b}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return engine.Token{Kind: engine.KindNumber, Number: formatInt(i)}
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return engine.Token{Kind: engine.KindNumber, Number: formatUint(u)}
		}
		var fl float64
		decodeScalar(n, &fl)
		return engine.Token{Kind: engine.KindNumber, Number: formatFloat(fl)}
	case "!!float":
		var fl float64
		decodeScalar(n, &fl)
		return engine.Token{Kind: engine.KindNumber, Number: formatFloat(fl)}
	}
	return engine.Token{Kind: engine.KindString, String: n.Value}
}

func decodeScalar(n *yaml.Node, dst any) {
	if err := n.Decode(dst); err != nil {
		panic(&nodeError{Line: n.Line, Column: n.Column, Msg: err.Error()})
	}
}
