package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dialogkit/topiclint/pkg/topic"
	"github.com/dialogkit/topiclint/pkg/topic/diag"
)

const validTopic = `kind: AdaptiveDialog
beginDialog:
  kind: OnRecognizedIntent
  id: main
  intent:
    displayName: Greeting
    triggerQueries:
      - hello
  actions:
    - kind: SendMessage
      id: msg1
      message: Hello
`

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRoot()
	if cmd == nil || cmd.Use != "topiclint" {
		t.Fatalf("expected root command")
	}
	want := map[string]bool{
		"validate": false,
		"fmt":      false,
		"new":      false,
		"show":     false,
		"browse":   false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s command", name)
		}
	}
}

func TestBrowseCommandLaunchesTUI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.yaml")
	if err := os.WriteFile(path, []byte(validTopic), 0o644); err != nil {
		t.Fatal(err)
	}

	origRun := runTUI
	var gotDoc *topic.Document
	var gotDiags []diag.Diagnostic
	runTUI = func(filename string, doc *topic.Document, diags []diag.Diagnostic) error {
		gotDoc = doc
		gotDiags = diags
		return nil
	}
	defer func() { runTUI = origRun }()

	cmd := NewRoot()
	cmd.SetArgs([]string{"browse", path})
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDoc == nil {
		t.Fatalf("expected document passed to browser")
	}
	if len(gotDiags) != 0 {
		t.Fatalf("expected clean topic, got %v", gotDiags)
	}
}

func TestBrowseCommandPassesDiagnosticsForBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("kind: Wrong\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	origRun := runTUI
	var gotDoc *topic.Document
	var gotDiags []diag.Diagnostic
	runTUI = func(filename string, doc *topic.Document, diags []diag.Diagnostic) error {
		gotDoc = doc
		gotDiags = diags
		return nil
	}
	defer func() { runTUI = origRun }()

	cmd := NewRoot()
	cmd.SetArgs([]string{"browse", path})
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDoc != nil {
		t.Fatalf("expected nil document for invalid topic")
	}
	if !diag.HasErrors(gotDiags) {
		t.Fatalf("expected error diagnostics, got %v", gotDiags)
	}
}
