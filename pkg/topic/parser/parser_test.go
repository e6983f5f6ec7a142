package parser

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParsePreservesPositions(t *testing.T) {
	src := []byte("kind: AdaptiveDialog\nbeginDialog:\n  kind: OnUnknownIntent\n")
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	begin, ok := MapGet(tree.Root, "beginDialog")
	if !ok {
		t.Fatal("beginDialog missing")
	}
	kind, ok := MapGet(begin, "kind")
	if !ok {
		t.Fatal("kind missing")
	}
	if kind.Line != 3 {
		t.Fatalf("kind line = %d, want 3", kind.Line)
	}
}

func TestParseAcceptsJSON(t *testing.T) {
	src := []byte(`{"kind": "AdaptiveDialog", "beginDialog": {"kind": "OnError", "id": "e1"}}`)
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v, _ := MapGet(tree.Root, "kind"); !IsScalar(v) {
		t.Fatal("kind should be a scalar")
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "bad indentation", src: "kind: AdaptiveDialog\n  oops: [\n"},
		{name: "unterminated string", src: "kind: \"AdaptiveDialog\n"},
		{name: "empty document", src: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected parse error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	src := "kind: AdaptiveDialog\nbeginDialog:\n  id: a\n  id: b\n"
	_, err := Parse([]byte(src))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 4 {
		t.Fatalf("duplicate key line = %d, want 4", pe.Line)
	}
	if !strings.Contains(pe.Message, `"id"`) {
		t.Fatalf("message should name the key, got %q", pe.Message)
	}
}

func TestScalarAccessors(t *testing.T) {
	src := "s: hello\nn: 42\nb: true\nnothing: null\nseq: [a, b]\n"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if v, ok := StringValue(mustField(t, tree, "s")); !ok || v != "hello" {
		t.Fatalf("StringValue = %q, %v", v, ok)
	}
	if _, ok := StringValue(mustField(t, tree, "n")); ok {
		t.Fatal("integer should not read as string")
	}
	if v, ok := IntValue(mustField(t, tree, "n")); !ok || v != 42 {
		t.Fatalf("IntValue = %d, %v", v, ok)
	}
	if v, ok := BoolValue(mustField(t, tree, "b")); !ok || !v {
		t.Fatalf("BoolValue = %v, %v", v, ok)
	}
	if !IsNull(mustField(t, tree, "nothing")) {
		t.Fatal("expected null node")
	}
	if items := Items(mustField(t, tree, "seq")); len(items) != 2 {
		t.Fatalf("Items len = %d", len(items))
	}
	if KindName(mustField(t, tree, "seq")) != "sequence" {
		t.Fatalf("KindName = %q", KindName(mustField(t, tree, "seq")))
	}
}

func TestAliasResolution(t *testing.T) {
	src := "anchor: &msg hello\nref: *msg\n"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v, ok := StringValue(mustField(t, tree, "ref")); !ok || v != "hello" {
		t.Fatalf("alias StringValue = %q, %v", v, ok)
	}
}

func mustField(t *testing.T, tree *Tree, key string) *yaml.Node {
	t.Helper()
	n, ok := MapGet(tree.Root, key)
	if !ok {
		t.Fatalf("field %q missing", key)
	}
	return n
}
