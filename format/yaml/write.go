package yaml

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/internal/fileio"
)

// Serialize renders v as a YAML document with a two-space indent.
// Null-or-empty renders as null.
func Serialize(v serz.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeTo(v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeTo writes the rendering of v to w.
func SerializeTo(v serz.Value, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(v)); err != nil {
		return err
	}
	return enc.Close()
}

// SerializeFile writes the rendering of v to path.
func SerializeFile(v serz.Value, path string) error {
	return fileio.WriteFile(path, formatName, func(w io.Writer) error {
		return SerializeTo(v, w)
	})
}

func toNode(v serz.Value) *yaml.Node {
	switch v.Kind() {
	case serz.KindBool:
		return scalar("!!bool", strconv.FormatBool(v.MustBool()))
	case serz.KindInt:
		return scalar("!!int", formatInt(v.MustInt()))
	case serz.KindFloat:
		return scalar("!!float", yamlFloat(v.MustFloat()))
	case serz.KindString:
		return scalar("!!str", v.MustString())
	case serz.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.MustArray() {
			n.Content = append(n.Content, toNode(e))
		}
		return n
	case serz.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, e := range v.MustObject().All() {
			n.Content = append(n.Content, scalar("!!str", k), toNode(*e))
		}
		return n
	}
	return scalar("!!null", "null")
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func formatInt(i int64) string   { return strconv.FormatInt(i, 10) }
func formatUint(u uint64) string { return strconv.FormatUint(u, 10) }

// formatFloat renders f so that it reads back as a float token.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return formatFloat(f)
}
