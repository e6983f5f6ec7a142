package topic

import (
	"reflect"
	"testing"

	"github.com/dialogkit/topiclint/pkg/topic/diag"
)

func TestCheckMinimalScenario(t *testing.T) {
	src := []byte(`
kind: AdaptiveDialog
beginDialog:
  kind: OnRecognizedIntent
  id: main
  intent:
    displayName: Greet
    triggerQueries: [hi]
  actions:
    - kind: SendMessage
      id: m1
      message: Hello
`)
	doc, diags := Check(src, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", diags)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}
	if doc.BeginDialog.Kind != "OnRecognizedIntent" || doc.BeginDialog.ID != "main" {
		t.Fatalf("unexpected trigger %+v", doc.BeginDialog)
	}
	msg, ok := doc.BeginDialog.Actions[0].(SendMessage)
	if !ok {
		t.Fatalf("expected SendMessage, got %T", doc.BeginDialog.Actions[0])
	}
	if !reflect.DeepEqual(msg.Message, []string{"Hello"}) {
		t.Fatalf("message shorthand not canonicalized: %v", msg.Message)
	}
}

func TestCheckDuplicateIDScenario(t *testing.T) {
	src := []byte(`
kind: AdaptiveDialog
beginDialog:
  kind: OnRecognizedIntent
  id: main
  intent:
    displayName: Greet
    triggerQueries: [hi]
  actions:
    - kind: SendMessage
      id: m1
      message: Hello
    - kind: SendMessage
      id: m1
      message: Bye
`)
	doc, diags := Check(src, Options{})
	if doc != nil {
		t.Fatal("document must be nil when errors are present")
	}
	count := 0
	for _, d := range diags {
		if d.Code == diag.CodeDuplicateID && d.Severity == diag.Error {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one duplicate-id error, got %v", diags)
	}
}

func TestCheckParseError(t *testing.T) {
	doc, diags := Check([]byte("kind: [unterminated\n"), Options{})
	if doc != nil {
		t.Fatal("document must be nil on parse failure")
	}
	if len(diags) != 1 || diags[0].Code != diag.CodeParseError {
		t.Fatalf("expected single parse-error, got %v", diags)
	}
}

func TestMessageShorthandEquivalence(t *testing.T) {
	scalar := []byte(`
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SendMessage
      id: m1
      message: Hi
`)
	list := []byte(`
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: SendMessage
      id: m1
      message: [Hi]
`)
	docScalar, diags := Check(scalar, Options{})
	if docScalar == nil {
		t.Fatalf("scalar form rejected: %v", diags)
	}
	docList, diags := Check(list, Options{})
	if docList == nil {
		t.Fatalf("list form rejected: %v", diags)
	}
	if !reflect.DeepEqual(docScalar, docList) {
		t.Fatalf("shorthand forms differ:\n%+v\n%+v", docScalar, docList)
	}
}

func TestEntityShorthandNormalized(t *testing.T) {
	src := []byte(`
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: Question
      id: q1
      prompt: How many?
      variable: init:Topic.Count
      entity: Number
`)
	doc, diags := Check(src, Options{})
	if doc == nil {
		t.Fatalf("rejected: %v", diags)
	}
	q := doc.BeginDialog.Actions[0].(Question)
	want := Entity{Kind: "PrebuiltEntityRef", Name: "Number"}
	if !reflect.DeepEqual(q.Entity, want) {
		t.Fatalf("entity = %+v, want %+v", q.Entity, want)
	}
	if q.Variable.Scope != "Topic" || q.Variable.Name != "Count" || !q.Variable.Declare {
		t.Fatalf("variable ref not split: %+v", q.Variable)
	}
}

func TestRoundTrip(t *testing.T) {
	src := []byte(`
kind: AdaptiveDialog
startBehavior: CancelOtherTopics
inputParameters:
  - name: OrderId
    type: string
beginDialog:
  kind: OnRecognizedIntent
  id: main
  intent:
    displayName: Order status
    triggerQueries:
      - where is my order
      - order status
  priority: 10
  actions:
    - kind: Question
      id: q1
      prompt: Which order?
      variable: init:Topic.Order
      entity: Number
    - kind: ConditionGroup
      id: c1
      conditions:
        - id: b1
          condition: "=Topic.Order > 0"
          displayName: has order
          actions:
            - kind: SendMessage
              id: m1
              message: Looking it up
      elseActions:
        - kind: EndConversation
          id: end
`)
	doc, diags := Check(src, Options{})
	if doc == nil {
		t.Fatalf("rejected: %v", diags)
	}

	emitted, err := Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	doc2, diags2 := Check(emitted, Options{})
	if doc2 == nil {
		t.Fatalf("emitted document rejected: %v\n%s", diags2, emitted)
	}
	if !reflect.DeepEqual(doc, doc2) {
		t.Fatalf("round trip changed the document:\nfirst:  %+v\nsecond: %+v", doc, doc2)
	}

	// Canonical output is a fixed point.
	emitted2, err := Encode(doc2)
	if err != nil {
		t.Fatalf("encode second: %v", err)
	}
	if string(emitted) != string(emitted2) {
		t.Fatalf("emit not deterministic:\n%s\n---\n%s", emitted, emitted2)
	}
}

func TestUnknownEntityKindRoundTrip(t *testing.T) {
	src := []byte(`
kind: AdaptiveDialog
beginDialog:
  kind: OnUnknownIntent
  id: main
  actions:
    - kind: Question
      id: q1
      prompt: Which model?
      variable: init:Topic.Model
      entity:
        kind: MLEntity
        model: abc
        threshold: 0.5
`)
	doc, diags := Check(src, Options{AllowUnknownEntityKinds: true})
	if doc == nil {
		t.Fatalf("rejected: %v", diags)
	}

	q := doc.BeginDialog.Actions[0].(Question)
	if q.Entity.Kind != "MLEntity" {
		t.Fatalf("entity kind = %q", q.Entity.Kind)
	}
	if q.Entity.Attrs["model"] != "abc" {
		t.Fatalf("entity payload dropped: %+v", q.Entity)
	}

	emitted, err := Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	doc2, diags2 := Check(emitted, Options{AllowUnknownEntityKinds: true})
	if doc2 == nil {
		t.Fatalf("emitted document rejected: %v\n%s", diags2, emitted)
	}
	if !reflect.DeepEqual(doc, doc2) {
		t.Fatalf("round trip changed the entity:\nfirst:  %+v\nsecond: %+v", doc, doc2)
	}
}

func TestScaffoldValidatesClean(t *testing.T) {
	data, err := ScaffoldYAML("Greeting", []string{"hello", "hi"}, "Hello! How can I help?")
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	doc, diags := Check(data, Options{})
	if doc == nil || len(diags) != 0 {
		t.Fatalf("scaffold should validate clean, got %v\n%s", diags, data)
	}
	if doc.BeginDialog.Intent == nil || doc.BeginDialog.Intent.DisplayName != "Greeting" {
		t.Fatalf("unexpected intent %+v", doc.BeginDialog.Intent)
	}
}

func TestScaffoldRejectsEmptyInputs(t *testing.T) {
	if _, err := ScaffoldYAML("", []string{"hi"}, "msg"); err == nil {
		t.Fatal("empty name should fail")
	}
	if _, err := ScaffoldYAML("Name", nil, "msg"); err == nil {
		t.Fatal("missing triggers should fail")
	}
	if _, err := ScaffoldYAML("Name", []string{"hi"}, " "); err == nil {
		t.Fatal("blank message should fail")
	}
}

func TestExtractComponentYAML(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		want    string
		wantErr bool
	}{
		{
			name:   "content field",
			record: `{"name": "Greeting", "content": "kind: AdaptiveDialog\n"}`,
			want:   "kind: AdaptiveDialog\n",
		},
		{
			name:   "data fallback",
			record: `{"name": "Greeting", "data": "kind: AdaptiveDialog\n"}`,
			want:   "kind: AdaptiveDialog\n",
		},
		{
			name:    "no yaml field",
			record:  `{"name": "Greeting"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			record:  "kind: AdaptiveDialog",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractComponentYAML([]byte(tt.record))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
