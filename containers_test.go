package serz_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/guangie88/serz"
)

func TestSlice_Fallbacks(t *testing.T) {
	c := serz.Slice(serz.Int())

	var xs []int
	if err := c.Parse(&xs, serz.IntValue(5)); err != nil {
		t.Fatalf("single element fallback: %v", err)
	}
	if diff := cmp.Diff([]int{5}, xs); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	if err := c.Parse(&xs, serz.NullValue()); err != nil || len(xs) != 0 {
		t.Fatalf("null should read as empty: %v %v", xs, err)
	}
	xs = []int{9}
	if err := c.Parse(&xs, serz.NullOrEmptyValue()); err != nil || len(xs) != 0 {
		t.Fatalf("null-or-empty should read as empty: %v %v", xs, err)
	}
	if err := c.Parse(&xs, serz.StringValue("x")); err == nil {
		t.Fatalf("non-numeric scalar should fail the element codec")
	}
}

func TestSlice_ReplacesContents(t *testing.T) {
	xs := []int{100, 200, 300}
	if err := serz.Slice(serz.Int()).Parse(&xs, serz.ArrayValue(serz.IntValue(1), serz.IntValue(2))); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2}, xs); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSlice_StopsAtFirstFailure(t *testing.T) {
	var xs []uint8
	err := serz.Slice(serz.Uint8()).Parse(&xs, serz.ArrayValue(
		serz.IntValue(1), serz.IntValue(300), serz.IntValue(2),
	))
	e, ok := serz.AsError(err)
	if !ok || e.Path != "/1" {
		t.Fatalf("expected error at /1, got %v", err)
	}
	if diff := cmp.Diff([]uint8{1}, xs); diff != "" {
		t.Fatalf("elements before the failure are kept (-want +got):\n%s", diff)
	}
}

func TestSlice_Nested(t *testing.T) {
	c := serz.Slice(serz.Slice(serz.String()))
	src := [][]string{{"a"}, {}, {"b", "c"}}
	v := serz.ToValue(src, c)
	if got := v.String(); got != `[["a"],[],["b","c"]]` {
		t.Fatalf("unexpected %s", got)
	}
	got, err := serz.FromValue(v, c)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestMap_ParseAndSerialize(t *testing.T) {
	c := serz.Map(serz.Float64())
	o := serz.NewObject()
	o.Emplace("b", serz.IntValue(2))
	o.Emplace("a", serz.FloatValue(0.5))

	m, err := serz.FromValue(serz.ObjectValue(o), c)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]float64{"a": 0.5, "b": 2}, m); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	v := serz.ToValue(m, c)
	if diff := cmp.Diff([]string{"a", "b"}, v.MustObject().Keys()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	if m, err := serz.FromValue(serz.NullOrEmptyValue(), c); err != nil || len(m) != 0 {
		t.Fatalf("null-or-empty should read as empty map: %v %v", m, err)
	}
	_, err = serz.FromValue(serz.ArrayValue(), c)
	if serz.CodeOf(err) != serz.CodeInvalidType {
		t.Fatalf("array into map should fail, got %v", err)
	}

	o.Emplace("bad/key", serz.StringValue("x"))
	_, err = serz.FromValue(serz.ObjectValue(o), c)
	if e, _ := serz.AsError(err); e == nil || e.Path != "/bad~1key" {
		t.Fatalf("path should escape the key, got %v", err)
	}
}

func TestOptional(t *testing.T) {
	c := serz.Optional(serz.Int16())

	p, err := serz.FromValue(serz.IntValue(4), c)
	if err != nil || p == nil || *p != 4 {
		t.Fatalf("present: %v %v", p, err)
	}
	p, err = serz.FromValue(serz.NullValue(), c)
	if err != nil || p != nil {
		t.Fatalf("null should read as nil: %v %v", p, err)
	}
	if _, err := serz.FromValue(serz.StringValue("x"), c); err == nil {
		t.Fatalf("inner failure should surface")
	}

	if v := serz.ToValue[*int16](nil, c); !v.Is(serz.KindNull) {
		t.Fatalf("nil outside a field chain is null, got %v", v)
	}
	n := int16(-3)
	if v := serz.ToValue(&n, c); v.MustInt() != -3 {
		t.Fatalf("unexpected %v", v)
	}
}
