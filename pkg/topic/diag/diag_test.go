package diag

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(Diagnostic{Severity: Warning, Code: CodeMissingElseActions})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"severity":"warning"`) {
		t.Fatalf("expected lowercase severity name, got %s", data)
	}

	var d Diagnostic
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Severity != Warning {
		t.Fatalf("round-trip severity = %v", d.Severity)
	}
}

func TestSortOrdersErrorsFirst(t *testing.T) {
	list := []Diagnostic{
		{Severity: Warning, Code: CodeMissingElseActions, Path: "beginDialog.actions[0]"},
		{Severity: Error, Code: CodeDuplicateID, Path: "beginDialog.actions[2]"},
		{Severity: Error, Code: CodeDuplicateID, Path: "beginDialog.actions[1]"},
	}
	Sort(list)
	if list[0].Path != "beginDialog.actions[1]" || list[1].Path != "beginDialog.actions[2]" {
		t.Fatalf("unexpected order: %v", list)
	}
	if list[2].Severity != Warning {
		t.Fatal("warning should sort last")
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	list := []Diagnostic{
		{Severity: Error, Code: CodeDuplicateID, Path: "a", Message: "first"},
		{Severity: Error, Code: CodeDuplicateID, Path: "a", Message: "second"},
		{Severity: Error, Code: CodeDuplicateID, Path: "b", Message: "other path"},
	}
	out := Dedupe(list)
	if len(out) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(out))
	}
	if out[0].Message != "first" {
		t.Fatalf("expected first occurrence kept, got %q", out[0].Message)
	}
}

func TestDedupeLeavesInputIntact(t *testing.T) {
	list := []Diagnostic{
		{Severity: Error, Code: CodeDuplicateID, Path: "a", Message: "first"},
		{Severity: Error, Code: CodeDuplicateID, Path: "a", Message: "second"},
		{Severity: Warning, Code: CodeMissingElseActions, Path: "b", Message: "third"},
	}
	Dedupe(list)
	if list[1].Message != "second" || list[2].Message != "third" {
		t.Fatalf("input slice rewritten: %+v", list)
	}
}

func TestRenderText(t *testing.T) {
	out, err := Render([]Diagnostic{
		{Severity: Error, Code: CodeUnknownNodeKind, Path: "beginDialog", Message: "unknown node kind \"Wat\""},
	}, FormatText)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "error [unknown-node-kind] beginDialog: unknown node kind \"Wat\"\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors([]Diagnostic{{Severity: Warning}}) {
		t.Fatal("warnings alone should not count as errors")
	}
	if !HasErrors([]Diagnostic{{Severity: Warning}, {Severity: Error}}) {
		t.Fatal("expected error detected")
	}
}
