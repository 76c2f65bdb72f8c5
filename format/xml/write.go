package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/internal/fileio"
)

// ItemName names the elements written for the entries of an array that is
// not an object member.
const ItemName = "item"

var errNoName = errors.New("element name must not be empty")

// Serialize renders v as an XML document whose root element is named root.
//
// Scalar children flagged as attributes become attributes and a scalar under
// TextKey becomes character data. Array members become repeated elements.
// Null and null-or-empty render as empty elements.
func Serialize(v serz.Value, root string) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeTo(v, root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeTo writes the rendering of v to w.
func SerializeTo(v serz.Value, root string, w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := writeElement(enc, root, v); err != nil {
		return err
	}
	return enc.Flush()
}

// SerializeFile writes the rendering of v to path.
func SerializeFile(v serz.Value, root, path string) error {
	return fileio.WriteFile(path, formatName, func(w io.Writer) error {
		return SerializeTo(v, root, w)
	})
}

func writeElement(enc *xml.Encoder, name string, v serz.Value) error {
	if name == "" {
		return errNoName
	}
	start := xml.StartElement{Name: xml.Name{Local: name}}
	switch v.Kind() {
	case serz.KindObject:
		o := v.MustObject()
		for k, c := range o.All() {
			if s, ok := scalarText(*c); ok && c.IsAttribute() {
				start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: s})
			}
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for k, c := range o.All() {
			s, scalar := scalarText(*c)
			switch {
			case scalar && c.IsAttribute():
			case scalar && k == TextKey:
				if err := enc.EncodeToken(xml.CharData(s)); err != nil {
					return err
				}
			case c.Is(serz.KindArray):
				for _, e := range c.MustArray() {
					if err := writeElement(enc, k, e); err != nil {
						return err
					}
				}
			default:
				if err := writeElement(enc, k, *c); err != nil {
					return err
				}
			}
		}
	case serz.KindArray:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, e := range v.MustArray() {
			if err := writeElement(enc, ItemName, e); err != nil {
				return err
			}
		}
	default:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if s, _ := scalarText(v); s != "" {
			if err := enc.EncodeToken(xml.CharData(s)); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(start.End())
}

// scalarText renders scalars as text; null variants render as "".
func scalarText(v serz.Value) (string, bool) {
	switch v.Kind() {
	case serz.KindString:
		return v.MustString(), true
	case serz.KindInt:
		return strconv.FormatInt(v.MustInt(), 10), true
	case serz.KindFloat:
		return strconv.FormatFloat(v.MustFloat(), 'g', -1, 64), true
	case serz.KindBool:
		return strconv.FormatBool(v.MustBool()), true
	case serz.KindNull, serz.KindNullOrEmpty:
		return "", true
	}
	return "", false
}
