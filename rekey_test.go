package serz_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/guangie88/serz"
)

func TestRekey(t *testing.T) {
	v := object(
		"UserName", serz.StringValue("x").WithAttribute(true),
		"Items", serz.ArrayValue(object("ItemID", serz.IntValue(1))),
	)
	fn, err := serz.KeyCaseSnake.Func()
	if err != nil {
		t.Fatal(err)
	}
	got := serz.Rekey(v, fn)
	want := object(
		"user_name", serz.StringValue("x").WithAttribute(true),
		"items", serz.ArrayValue(object("item_id", serz.IntValue(1))),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !v.MustObject().Has("UserName") {
		t.Fatalf("Rekey must not touch its input")
	}
}

func TestRekey_CollisionFirstWins(t *testing.T) {
	v := object("A", serz.IntValue(1), "a", serz.IntValue(2))
	got := serz.Rekey(v, strings.ToLower)
	if got.MustObject().Len() != 1 {
		t.Fatalf("expected one key, got %v", got)
	}
	a, _ := got.MustObject().Get("a")
	if a.MustInt() != 1 {
		t.Fatalf("first key should win, got %v", got)
	}
}

func TestKeyCase_Func(t *testing.T) {
	fn, err := serz.KeyCaseLowerCamel.Func()
	if err != nil || fn("user_name") != "userName" {
		t.Fatalf("lower camel: err=%v", err)
	}
	fn, _ = serz.KeyCaseKebab.Func()
	if fn("UserName") != "user-name" {
		t.Fatalf("kebab: %s", fn("UserName"))
	}
	if fn, err := serz.KeyCaseNone.Func(); fn != nil || err != nil {
		t.Fatalf("none should be nil")
	}
	if _, err := serz.KeyCase("shouty").Func(); err == nil {
		t.Fatalf("unknown key case should fail")
	}
}
