package serz_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/guangie88/serz"
)

type point struct {
	X, Y int32
}

func (p *point) ParseValue(v serz.Value) error {
	return serz.AsObj(v).And(
		serz.ParseNVP(&p.X, "x", serz.Int32()),
		serz.ParseNVP(&p.Y, "y", serz.Int32()),
	).Done()
}

func (p *point) SerializeValue(v *serz.Value) {
	serz.CreateObj(v).And(
		serz.SerializeNVP(p.X, "x", serz.Int32()),
		serz.SerializeNVP(p.Y, "y", serz.Int32()),
	)
}

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

type shape struct {
	ID     string
	Points []point
	Tags   map[string]string
	Label  *string
}

func (s *shape) ParseValue(v serz.Value) error {
	return serz.AsObj(v).And(
		serz.ParseNVP(&s.ID, "id", serz.String()),
		serz.ParseNVP(&s.Points, "points", serz.Slice(serz.Struct[point]())),
		serz.ParseNVP(&s.Tags, "tags", serz.Map(serz.String())),
		serz.ParseNVP(&s.Label, "label", serz.Optional(serz.String())),
	).Done()
}

func (s *shape) SerializeValue(v *serz.Value) {
	serz.CreateObj(v).And(
		serz.SerializeAttr(s.ID, "id", serz.String()),
		serz.SerializeNVP(s.Points, "points", serz.Slice(serz.Struct[point]())),
		serz.SerializeNVP(s.Tags, "tags", serz.Map(serz.String())),
		serz.SerializeNVP(s.Label, "label", serz.Optional(serz.String())),
	)
}

func object(kv ...any) serz.Value {
	o := serz.NewObject()
	for i := 0; i < len(kv); i += 2 {
		o.Emplace(kv[i].(string), kv[i+1].(serz.Value))
	}
	return serz.ObjectValue(o)
}

func TestFields_Sample(t *testing.T) {
	v := object(
		"x", serz.IntValue(777),
		"y", serz.FloatValue(0.5),
		"z", serz.StringValue("Hello World"),
		"a", serz.BoolValue(false),
	)
	got, err := serz.FromValue(v, serz.Struct[sample]())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(sample{X: 777, Y: 0.5, Z: "Hello World", A: false}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	back := serz.ToValue(got, serz.Struct[sample]())
	if diff := cmp.Diff(v, back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y", "z", "a"}, back.MustObject().Keys()); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}
}

func TestFields_NotAnObject(t *testing.T) {
	var p point
	err := p.ParseValue(serz.ArrayValue())
	if serz.CodeOf(err) != serz.CodeInvalidType || err.Error() != "unable to interpret DOM value as object" {
		t.Fatalf("unexpected %v", err)
	}
}

func TestFields_MissingKeyPolicy(t *testing.T) {
	var s shape
	s.Points = []point{{1, 2}}
	label := "old"
	s.Label = &label
	if err := s.ParseValue(object("id", serz.StringValue("a"))); err != nil {
		t.Fatalf("missing containers and optionals are accepted: %v", err)
	}
	want := shape{ID: "a", Points: []point{}, Tags: map[string]string{}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	err := s.ParseValue(object("points", serz.EmptyArray()))
	if serz.CodeOf(err) != serz.CodeRequired {
		t.Fatalf("missing scalar should be required, got %v", err)
	}
	if err.Error() != "unable to find key with name 'id'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFields_DisallowMissingContainers(t *testing.T) {
	serz.SetOptions(serz.Options{DisallowMissingContainers: true})
	defer serz.ResetOptions()

	var s shape
	err := s.ParseValue(object("id", serz.StringValue("a")))
	if serz.CodeOf(err) != serz.CodeRequired {
		t.Fatalf("expected required for the missing sequence, got %v", err)
	}
	if e, _ := serz.AsError(err); e.Message != "unable to find key with name 'points'" {
		t.Fatalf("unexpected %v", err)
	}
}

func TestFields_ErrorPathAndPartialMutation(t *testing.T) {
	v := object(
		"id", serz.StringValue("s1"),
		"points", serz.ArrayValue(
			object("x", serz.IntValue(1), "y", serz.IntValue(2)),
			object("x", serz.IntValue(3), "y", serz.StringValue("nope")),
		),
	)
	var s shape
	err := s.ParseValue(v)
	e, ok := serz.AsError(err)
	if !ok {
		t.Fatalf("expected *serz.Error, got %v", err)
	}
	if e.Path != "/points/1/y" || e.Code != serz.CodeCoercion {
		t.Fatalf("unexpected error %+v", e)
	}
	if err.Error() != "/points/1/y: unable to parse into value of type 'i32'" {
		t.Fatalf("unexpected rendering %q", err.Error())
	}
	// fields before the failure stay assigned
	if s.ID != "s1" || len(s.Points) != 1 || s.Points[0] != (point{1, 2}) {
		t.Fatalf("partial state lost: %+v", s)
	}
}

func TestFields_SerializeShape(t *testing.T) {
	s := shape{
		ID:     "s1",
		Points: []point{{1, 2}},
		Tags:   map[string]string{"b": "2", "a": "1"},
	}
	v := serz.ToValue(s, serz.Struct[shape]())
	o := v.MustObject()

	if diff := cmp.Diff([]string{"id", "points", "tags"}, o.Keys()); diff != "" {
		t.Fatalf("nil optional should be left out (-want +got):\n%s", diff)
	}
	id, _ := o.Get("id")
	if !id.IsAttribute() {
		t.Fatalf("id should be flagged as attribute")
	}
	tags, _ := o.Get("tags")
	if diff := cmp.Diff([]string{"a", "b"}, tags.MustObject().Keys()); diff != "" {
		t.Fatalf("map keys are written sorted (-want +got):\n%s", diff)
	}

	var back shape
	if err := back.ParseValue(v); err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if diff := cmp.Diff(s, back, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}

	label := "L"
	s.Label = &label
	v = serz.ToValue(s, serz.Struct[shape]())
	if l, ok := v.MustObject().Get("label"); !ok || l.MustString() != "L" {
		t.Fatalf("present optional should be written, got %v", v)
	}
}

func TestFields_SerializeDuplicateNameFirstWins(t *testing.T) {
	var v serz.Value
	serz.CreateObj(&v).And(
		serz.SerializeNVP(1, "n", serz.Int()),
		serz.SerializeNVP(2, "n", serz.Int()),
	)
	n, _ := v.MustObject().Get("n")
	if n.MustInt() != 1 || v.MustObject().Len() != 1 {
		t.Fatalf("first write should win, got %v", v)
	}
}

func TestFields_CreateObjKeepsExistingObject(t *testing.T) {
	v := object("keep", serz.BoolValue(true))
	w := serz.CreateObj(&v).And(serz.SerializeNVP("v", "new", serz.String()))
	if diff := cmp.Diff([]string{"keep", "new"}, w.Object().Keys()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	s := serz.StringValue("x").WithAttribute(true)
	serz.CreateObj(&s)
	if !s.Is(serz.KindObject) || !s.IsAttribute() {
		t.Fatalf("coercion to object should keep the flag, got %v", s)
	}
}
