package json_test

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/guangie88/serz"
	sjson "github.com/guangie88/serz/format/json"
)

type sample struct {
	X int
	Y float64
	Z string
	A bool
}

func (s *sample) ParseValue(v serz.Value) error {
	return serz.AsObj(v).And(
		serz.ParseNVP(&s.X, "x", serz.Int()),
		serz.ParseNVP(&s.Y, "y", serz.Float64()),
		serz.ParseNVP(&s.Z, "z", serz.String()),
		serz.ParseNVP(&s.A, "a", serz.Bool()),
	).Done()
}

func (s *sample) SerializeValue(v *serz.Value) {
	serz.CreateObj(v).And(
		serz.SerializeNVP(s.X, "x", serz.Int()),
		serz.SerializeNVP(s.Y, "y", serz.Float64()),
		serz.SerializeNVP(s.Z, "z", serz.String()),
		serz.SerializeNVP(s.A, "a", serz.Bool()),
	)
}

const sampleJSON = `{"x": 777, "y": 0.5, "z": "Hello World", "a": false}`

func TestParseAndReturn_Sample(t *testing.T) {
	got, err := sjson.ParseAndReturn(serz.Struct[sample](), []byte(sampleJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(sample{X: 777, Y: 0.5, Z: "Hello World"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	out := sjson.SerializeCompact(serz.ToValue(got, serz.Struct[sample]()))
	if string(out) != `{"x":777,"y":0.5,"z":"Hello World","a":false}` {
		t.Fatalf("unexpected %s", out)
	}
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	v, err := sjson.Parse([]byte(`{"c":1,"a":{"z":null,"y":[true,"s"]},"b":2.5}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, v.MustObject().Keys()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got := string(sjson.SerializeCompact(v)); got != `{"c":1,"a":{"z":null,"y":[true,"s"]},"b":2.5}` {
		t.Fatalf("round trip %s", got)
	}
}

func TestParse_Numbers(t *testing.T) {
	v, err := sjson.Parse([]byte(`[1, -2, 1.0, 1e2, 18446744073709551615]`))
	if err != nil {
		t.Fatal(err)
	}
	want := serz.ArrayValue(
		serz.IntValue(1), serz.IntValue(-2), serz.FloatValue(1), serz.FloatValue(100), serz.IntValue(-1),
	)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParse_EmptyAndTrailing(t *testing.T) {
	v, err := sjson.Parse([]byte("  \n"))
	if err != nil || !v.Is(serz.KindNull) {
		t.Fatalf("empty input should be null: %v %v", v, err)
	}
	_, err = sjson.Parse([]byte(`1 2`))
	if serz.CodeOf(err) != serz.CodeParseError {
		t.Fatalf("trailing data should be a parse error, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := sjson.Parse([]byte(`{"a": }`))
	e, ok := serz.AsError(err)
	if !ok || e.Code != serz.CodeParseError {
		t.Fatalf("expected parse error, got %v", err)
	}
	if !strings.HasPrefix(e.Message, "error in parsing JSON content: ") {
		t.Fatalf("unexpected message %q", e.Message)
	}
	for _, doc := range []string{
		`{"a": [1, 2}`,
		`[1 2]`,
		`{"a" 1}`,
		`{"a":1 "b":2}`,
		`[1,,2]`,
		`{"a":1,}`,
		`[,1]`,
		`[1,]`,
		`{"a":1]`,
	} {
		_, err := sjson.Parse([]byte(doc))
		if serz.CodeOf(err) != serz.CodeParseError {
			t.Fatalf("%s: expected parse error, got %v", doc, err)
		}
	}
	if _, err := sjson.ParseReader(strings.NewReader(`{"a":1 "b":2}`)); serz.CodeOf(err) != serz.CodeParseError {
		t.Fatalf("reader: expected parse error, got %v", err)
	}
}

func TestParse_Options(t *testing.T) {
	doc := []byte(`{"a":1,"a":2}`)
	v, err := sjson.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := v.MustObject().Get("a"); a.MustInt() != 1 {
		t.Fatalf("first key should win by default, got %v", v)
	}
	_, err = sjson.Parse(doc, sjson.WithDuplicateKeys(sjson.DuplicateError))
	if e, ok := serz.AsError(err); !ok || e.Code != serz.CodeDuplicateKey || e.Path != "/a" {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	_, err = sjson.Parse([]byte(`[[[1]]]`), sjson.WithMaxDepth(2))
	if serz.CodeOf(err) != serz.CodeDepth {
		t.Fatalf("expected depth error, got %v", err)
	}
}

func TestSerialize_Pretty(t *testing.T) {
	o := serz.NewObject()
	o.Emplace("a", serz.ArrayValue(serz.IntValue(1), serz.FloatValue(2)))
	o.Emplace("b", serz.NullOrEmptyValue())
	got := string(sjson.Serialize(serz.ObjectValue(o)))
	want := "{\n    \"a\": [\n        1,\n        2.0\n    ],\n    \"b\": null\n}"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestSerialize_Scalars(t *testing.T) {
	cases := []struct {
		in   serz.Value
		want string
	}{
		{serz.StringValue(`<a href="x">&</a>`), `"<a href=\"x\">&</a>"`},
		{serz.StringValue("tab\there"), `"tab\there"`},
		{serz.FloatValue(1e21), `1e+21`},
		{serz.FloatValue(-0.25), `-0.25`},
		{serz.IntValue(-3), `-3`},
		{serz.NullValue(), `null`},
		{serz.EmptyObject(), `{}`},
		{serz.EmptyArray(), `[]`},
	}
	for _, c := range cases {
		if got := string(sjson.SerializeCompact(c.in)); got != c.want {
			t.Fatalf("serialize %v = %s want %s", c.in, got, c.want)
		}
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.json")
	in := sample{X: 1, Y: 2, Z: "z", A: true}
	if err := sjson.SerializeIntoFile(in, serz.Struct[sample](), path); err != nil {
		t.Fatal(err)
	}
	got, err := sjson.ParseFileAndReturn(serz.Struct[sample](), path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	missing := filepath.Join(dir, "missing.json")
	_, err = sjson.ParseFile(missing)
	e, ok := serz.AsError(err)
	if !ok || e.Code != serz.CodeIO || e.Message != "cannot open file at '"+missing+"' for JSON parsing" {
		t.Fatalf("unexpected %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("cause should be reachable")
	}
}

func TestReaderAndWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := sjson.SerializeIntoWriter(sample{X: 5}, serz.Struct[sample](), &buf); err != nil {
		t.Fatal(err)
	}
	var s sample
	if err := sjson.ParseReaderInto(&s, serz.Struct[sample](), &buf); err != nil {
		t.Fatal(err)
	}
	if s.X != 5 {
		t.Fatalf("unexpected %+v", s)
	}

	var p sample
	err := sjson.ParseInto(&p, serz.Struct[sample](), []byte(`{"x":1,"y":"oops","z":"","a":true}`))
	if e, _ := serz.AsError(err); e == nil || e.Path != "/y" || e.Code != serz.CodeCoercion {
		t.Fatalf("unexpected %v", err)
	}
	if p.X != 1 {
		t.Fatalf("fields before the failure stay assigned, got %+v", p)
	}
}
