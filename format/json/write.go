package json

import (
	"bytes"
	"io"
	"math"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/internal/fileio"
)

const indent = "    "

// Serialize renders v as indented JSON. Null-or-empty renders as null, as do
// non-finite floats.
func Serialize(v serz.Value) []byte {
	compact := SerializeCompact(v)
	var buf bytes.Buffer
	if err := j.Indent(&buf, compact, "", indent); err != nil {
		return compact
	}
	return buf.Bytes()
}

// SerializeCompact renders v as JSON without insignificant whitespace.
func SerializeCompact(v serz.Value) []byte {
	return appendValue(nil, v)
}

// SerializeTo writes the indented rendering of v to w.
func SerializeTo(v serz.Value, w io.Writer) error {
	_, err := w.Write(Serialize(v))
	return err
}

// SerializeFile writes the indented rendering of v to path.
func SerializeFile(v serz.Value, path string) error {
	return fileio.WriteFile(path, formatName, func(w io.Writer) error {
		return SerializeTo(v, w)
	})
}

func appendValue(b []byte, v serz.Value) []byte {
	switch v.Kind() {
	case serz.KindBool:
		return strconv.AppendBool(b, v.MustBool())
	case serz.KindInt:
		return strconv.AppendInt(b, v.MustInt(), 10)
	case serz.KindFloat:
		return appendFloat(b, v.MustFloat())
	case serz.KindString:
		return appendString(b, v.MustString())
	case serz.KindArray:
		b = append(b, '[')
		for i, e := range v.MustArray() {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendValue(b, e)
		}
		return append(b, ']')
	case serz.KindObject:
		b = append(b, '{')
		i := 0
		for k, e := range v.MustObject().All() {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendString(b, k)
			b = append(b, ':')
			b = appendValue(b, *e)
			i++
		}
		return append(b, '}')
	}
	return append(b, "null"...)
}

func appendString(b []byte, s string) []byte {
	q, err := j.MarshalNoEscape(s)
	if err != nil {
		return strconv.AppendQuote(b, s)
	}
	return append(b, q...)
}

// appendFloat keeps a fraction or exponent on every float so the value reads
// back as a float.
func appendFloat(b []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(b, "null"...)
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, 'g', -1, 64)
	if bytes.IndexAny(b[start:], ".e") < 0 {
		b = append(b, ".0"...)
	}
	return b
}
