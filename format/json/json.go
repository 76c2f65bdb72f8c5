// Package json reads and writes JSON documents as serz DOM values using
// github.com/goccy/go-json.
//
// Object key order is preserved in both directions. Integers that fit int64
// become Int values; larger unsigned integers wrap into Int; every other
// number becomes Float. Empty input parses as null.
package json

import (
	"bytes"
	"errors"
	"io"
	"runtime"

	j "github.com/goccy/go-json"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/etor"
	"github.com/guangie88/serz/internal/engine"
	"github.com/guangie88/serz/internal/fileio"
)

const formatName = "JSON"

// DuplicatePolicy controls repeated object keys.
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

// WithMaxDepth rejects documents nested deeper than n containers. n <= 0
// disables the limit.
func WithMaxDepth(n int) Option { return func(c *config) { c.maxDepth = n } }

// WithDuplicateKeys sets the repeated key policy; the default keeps the
// first occurrence.
func WithDuplicateKeys(p DuplicatePolicy) Option { return func(c *config) { c.dup = p } }

// decoding runs behind one recover boundary; decoder panics surface as parse
// errors
var adapter = etor.New(etor.Catch[*j.SyntaxError](), etor.Catch[runtime.Error]())

// Parse converts JSON text into a DOM value.
func Parse(content []byte, opts ...Option) (serz.Value, error) {
	return parse(content, opts)
}

// ParseReader converts the JSON document read from r into a DOM value.
func ParseReader(r io.Reader, opts ...Option) (serz.Value, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return serz.Value{}, parseError(err)
	}
	return parse(content, opts)
}

// ParseFile converts the JSON file at path into a DOM value.
func ParseFile(path string, opts ...Option) (serz.Value, error) {
	content, err := fileio.ReadFile(path, formatName)
	if err != nil {
		return serz.Value{}, err
	}
	return parse(content, opts)
}

var errMalformed = errors.New("malformed JSON text")

// parse validates content as a whole before tokenizing it; the token
// decoder alone does not check separators.
func parse(content []byte, opts []Option) (serz.Value, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return serz.NullValue(), nil
	}
	v, err := etor.Mix(adapter, func() (serz.Value, error) {
		if !j.Valid(content) {
			if err := j.Unmarshal(content, new(any)); err != nil {
				return serz.Value{}, err
			}
			return serz.Value{}, errMalformed
		}
		src := engine.WrapWithEnforcement(newSource(bytes.NewReader(content)), engine.EnforceOptions{
			OnDuplicate: cfg.dup,
			MaxDepth:    cfg.maxDepth,
		})
		return engine.Build(src)
	})
	if err != nil {
		return serz.Value{}, parseError(err)
	}
	return v, nil
}

func parseError(err error) error {
	if _, ok := err.(*serz.Error); ok {
		return err
	}
	e := serz.NewError(serz.CodeParseError, map[string]string{"format": formatName, "detail": err.Error()})
	e.Cause = err
	return e
}
