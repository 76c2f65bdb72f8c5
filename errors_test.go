package serz_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/guangie88/serz"
	"github.com/guangie88/serz/i18n"
)

func TestWithPath(t *testing.T) {
	base := serz.NewError(serz.CodeRequired, map[string]string{"key": "k"})
	err := serz.WithPath(serz.WithPath(base, "b"), "a")
	e, ok := serz.AsError(err)
	if !ok || e.Path != "/a/b" || e.Code != serz.CodeRequired {
		t.Fatalf("unexpected %+v", e)
	}
	if base.Path != "" {
		t.Fatalf("WithPath must not mutate its input")
	}
	if serz.WithPath(nil, "x") != nil {
		t.Fatalf("nil stays nil")
	}
	if e, _ := serz.AsError(serz.WithPath(base, "a~b")); e.Path != "/a~0b" {
		t.Fatalf("tilde should be escaped, got %q", e.Path)
	}
}

func TestWithPath_ForeignError(t *testing.T) {
	cause := errors.New("disk on fire")
	err := serz.WithPath(cause, "0")
	if !errors.Is(err, cause) {
		t.Fatalf("cause should stay reachable")
	}
	if err.Error() != "/0: disk on fire" {
		t.Fatalf("unexpected %q", err.Error())
	}

	wrapped := fmt.Errorf("ctx: %w", serz.NewError(serz.CodeDepth, nil))
	if serz.CodeOf(serz.WithPath(wrapped, "x")) != serz.CodeDepth {
		t.Fatalf("code of a wrapped *Error should be kept")
	}
	if serz.CodeOf(cause) != "" {
		t.Fatalf("plain errors have no code")
	}
}

func TestErrorMessagesFollowLanguage(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	var p point
	err := p.ParseValue(object())
	if err == nil || err.Error() != "キー 'x' が見つかりません" {
		t.Fatalf("unexpected %v", err)
	}
}
