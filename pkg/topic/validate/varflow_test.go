package validate

import (
	"testing"

	"github.com/dialogkit/topiclint/pkg/topic/diag"
)

func TestVariableFlow(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantCodes map[string]int
	}{
		{
			name: "declaration precedes use",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SetVariable
      id: s1
      variable: init:Topic.Count
      value: "=1"
    - kind: SetVariable
      id: s2
      variable: Topic.Count
      value: "=Topic.Count + 1"
`,
			wantCodes: map[string]int{},
		},
		{
			name: "read before declaration warns",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SetVariable
      id: s1
      variable: init:Topic.Count
      value: "=Topic.Count + 1"
`,
			wantCodes: map[string]int{diag.CodeUndeclaredVariable: 1},
		},
		{
			name: "input parameters declare topic variables",
			src: `
kind: AdaptiveDialog
inputParameters:
  - name: OrderId
    type: string
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SendMessage
      id: m1
      message: ok
    - kind: SetVariable
      id: s1
      variable: init:Topic.Copy
      value: "=Topic.OrderId"
`,
			wantCodes: map[string]int{},
		},
		{
			name: "branch-only declaration not visible after the group",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: ConditionGroup
      id: c1
      conditions:
        - id: b1
          condition: "=System.Activity.Text = \"order\""
          actions:
            - kind: SetVariable
              id: s1
              variable: init:Topic.OrderId
              value: "=System.Activity.Text"
      elseActions: []
    - kind: SetVariable
      id: s2
      variable: init:Topic.Echo
      value: "=Topic.OrderId"
`,
			wantCodes: map[string]int{diag.CodeUndeclaredVariable: 1},
		},
		{
			name: "declaration before the group stays visible after it",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SetVariable
      id: s1
      variable: init:Topic.OrderId
      value: "=1"
    - kind: ConditionGroup
      id: c1
      conditions:
        - id: b1
          condition: "=Topic.OrderId > 0"
          actions: []
      elseActions: []
    - kind: SetVariable
      id: s2
      variable: init:Topic.Echo
      value: "=Topic.OrderId"
`,
			wantCodes: map[string]int{},
		},
		{
			name: "branch-local declaration invisible to sibling branch",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: ConditionGroup
      id: c1
      conditions:
        - id: b1
          condition: "=System.Activity.Text = \"a\""
          actions:
            - kind: SetVariable
              id: s1
              variable: init:Topic.A
              value: "=1"
        - id: b2
          condition: "=Topic.A > 0"
          actions: []
      elseActions: []
`,
			wantCodes: map[string]int{diag.CodeUndeclaredVariable: 1},
		},
		{
			name: "never declared on any path warns once per read",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: ClearVariable
      id: cl1
      variable: Topic.Ghost
`,
			wantCodes: map[string]int{diag.CodeUndeclaredVariable: 1},
		},
		{
			name: "foreach declares item and index",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SetVariable
      id: s1
      variable: init:Topic.Orders
      value: "=[1, 2, 3]"
    - kind: ForEach
      id: f1
      items: "=Topic.Orders"
      itemVariable: init:Topic.Order
      indexVariable: init:Topic.Index
      actions:
        - kind: SetVariable
          id: s2
          variable: init:Topic.Last
          value: "=Topic.Order"
`,
			wantCodes: map[string]int{},
		},
		{
			name: "foreach loop variable shadows existing",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SetVariable
      id: s1
      variable: init:Topic.Order
      value: "=1"
    - kind: SetVariable
      id: s2
      variable: init:Topic.Orders
      value: "=[1]"
    - kind: ForEach
      id: f1
      items: "=Topic.Orders"
      itemVariable: init:Topic.Order
      actions: []
`,
			wantCodes: map[string]int{diag.CodeVariableShadowed: 1},
		},
		{
			name: "unknown system variable in expression",
			src: `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SetVariable
      id: s1
      variable: init:Topic.Ch
      value: "=System.Activity.Secret"
`,
			wantCodes: map[string]int{diag.CodeInvalidVariableRef: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := check(t, tt.src, Options{})
			for code, want := range tt.wantCodes {
				if got := countCode(diags, code); got != want {
					t.Fatalf("code %s: got %d, want %d (diags %v)", code, got, want, diags)
				}
			}
			for _, d := range diags {
				if _, expected := tt.wantCodes[d.Code]; !expected {
					t.Fatalf("unexpected diagnostic %v", d)
				}
			}
		})
	}
}

func TestUndeclaredVariableNeverBlocks(t *testing.T) {
	src := `
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SendMessage
      id: m1
      message: ok
    - kind: ClearVariable
      id: cl1
      variable: Topic.External
`
	diags := check(t, src, Options{})
	if diag.HasErrors(diags) {
		t.Fatalf("undeclared variable must stay a warning, got %v", diags)
	}
	if countCode(diags, diag.CodeUndeclaredVariable) != 1 {
		t.Fatalf("expected one undeclared warning, got %v", diags)
	}
}
