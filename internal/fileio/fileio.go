// Package fileio opens the files behind the ParseFile and SerializeFile
// variants of the format adapters.
package fileio

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/guangie88/serz"
)

// Operations named in io error messages.
const (
	OpParse     = "parsing"
	OpSerialize = "serialization"
)

// Error builds the io error for path. The OS failure is kept as the cause.
func Error(path, format, op string, cause error) *serz.Error {
	e := serz.NewError(serz.CodeIO, map[string]string{"path": path, "format": format, "op": op})
	e.Cause = errors.WithStack(cause)
	return e
}

// Open opens path for reading.
func Open(path, format string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error(path, format, OpParse, err)
	}
	return f, nil
}

// ReadFile returns the contents of path.
func ReadFile(path, format string) ([]byte, error) {
	f, err := Open(path, format)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, Error(path, format, OpParse, errors.Wrap(err, "read"))
	}
	return b, nil
}

// WriteFile creates or truncates path and lets write fill it. Failures of the
// file itself are io errors; an error of write's own is returned unchanged.
// On any failure the partial file is removed.
func WriteFile(path, format string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return Error(path, format, OpSerialize, err)
	}
	rw := &recordingWriter{w: f}
	werr := write(rw)
	cerr := f.Close()
	switch {
	case rw.err != nil:
		err = Error(path, format, OpSerialize, errors.Wrap(rw.err, "write"))
	case werr != nil:
		err = werr
	case cerr != nil:
		err = Error(path, format, OpSerialize, errors.Wrap(cerr, "close"))
	}
	if err != nil {
		os.Remove(path)
	}
	return err
}

// recordingWriter keeps the first failure of the underlying writer so it can
// be told apart from encoding errors.
type recordingWriter struct {
	w   io.Writer
	err error
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	n, err := r.w.Write(p)
	if err != nil && r.err == nil {
		r.err = err
	}
	return n, err
}
