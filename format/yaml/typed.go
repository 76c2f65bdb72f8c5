package yaml

import (
	"io"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/internal/fileio"
)

// ParseInto parses content and converts it into *dst. On a conversion
// failure *dst may be partially assigned.
func ParseInto[T any](dst *T, c serz.Codec[T], content []byte, opts ...Option) error {
	v, err := Parse(content, opts...)
	if err != nil {
		return err
	}
	return c.Parse(dst, v)
}

// ParseAndReturn parses content into a fresh T.
func ParseAndReturn[T any](c serz.Codec[T], content []byte, opts ...Option) (T, error) {
	v, err := Parse(content, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return serz.FromValue(v, c)
}

// ParseReaderInto reads the document from r and converts it into *dst.
func ParseReaderInto[T any](dst *T, c serz.Codec[T], r io.Reader, opts ...Option) error {
	v, err := ParseReader(r, opts...)
	if err != nil {
		return err
	}
	return c.Parse(dst, v)
}

// ParseReaderAndReturn reads the document from r into a fresh T.
func ParseReaderAndReturn[T any](c serz.Codec[T], r io.Reader, opts ...Option) (T, error) {
	v, err := ParseReader(r, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return serz.FromValue(v, c)
}

// ParseFileInto reads the file at path and converts it into *dst.
func ParseFileInto[T any](dst *T, c serz.Codec[T], path string, opts ...Option) error {
	v, err := ParseFile(path, opts...)
	if err != nil {
		return err
	}
	return c.Parse(dst, v)
}

// ParseFileAndReturn reads the file at path into a fresh T.
func ParseFileAndReturn[T any](c serz.Codec[T], path string, opts ...Option) (T, error) {
	v, err := ParseFile(path, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return serz.FromValue(v, c)
}

// SerializeInto renders src as a YAML document.
func SerializeInto[T any](src T, c serz.Codec[T]) ([]byte, error) {
	return Serialize(serz.ToValue(src, c))
}

// SerializeIntoWriter writes the rendering of src to w.
func SerializeIntoWriter[T any](src T, c serz.Codec[T], w io.Writer) error {
	return SerializeTo(serz.ToValue(src, c), w)
}

// SerializeIntoFile writes the rendering of src to path.
func SerializeIntoFile[T any](src T, c serz.Codec[T], path string) error {
	v := serz.ToValue(src, c)
	return fileio.WriteFile(path, formatName, func(w io.Writer) error {
		return SerializeTo(v, w)
	})
}
