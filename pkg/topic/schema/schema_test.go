package schema

import "testing"

func TestLookup(t *testing.T) {
	s, ok := Lookup(KindSendMessage)
	if !ok {
		t.Fatal("SendMessage should be registered")
	}
	if s.Class != ClassAction {
		t.Fatalf("SendMessage class = %v", s.Class)
	}
	if f, ok := s.Field("message"); !ok || f.Type != TypeStringOrList || !f.Required {
		t.Fatalf("unexpected message field spec: %+v", f)
	}

	if _, ok := Lookup("GotoAction"); ok {
		t.Fatal("GotoAction should not be registered")
	}
}

func TestTriggerKindsRegistered(t *testing.T) {
	for _, kind := range []string{
		KindOnRecognizedIntent, KindOnUnknownIntent, KindOnEscalate,
		KindOnConversationStart, KindOnError,
	} {
		s, ok := Lookup(kind)
		if !ok {
			t.Fatalf("%s not registered", kind)
		}
		if s.Class != ClassTrigger {
			t.Fatalf("%s class = %v, want trigger", kind, s.Class)
		}
		if _, ok := s.Field("actions"); !ok {
			t.Fatalf("%s has no actions field", kind)
		}
	}
}

func TestPriorityRange(t *testing.T) {
	s, _ := Lookup(KindOnUnknownIntent)
	f, ok := s.Field("priority")
	if !ok {
		t.Fatal("OnUnknownIntent has no priority field")
	}
	if !f.Ranged() || f.Min != -1 || f.Max != 100 {
		t.Fatalf("priority range = [%d, %d]", f.Min, f.Max)
	}
}

func TestParseVariableRef(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    VariableRef
		wantErr bool
	}{
		{name: "topic", in: "Topic.Answer", want: VariableRef{Scope: ScopeTopic, Name: "Answer"}},
		{name: "init topic", in: "init:Topic.Answer", want: VariableRef{Scope: ScopeTopic, Name: "Answer", Declare: true}},
		{name: "global", in: "Global.UserName", want: VariableRef{Scope: ScopeGlobal, Name: "UserName"}},
		{name: "system dotted", in: "System.Activity.Text", want: VariableRef{Scope: ScopeSystem, Name: "Activity.Text"}},
		{name: "unknown scope", in: "Bot.Name", wantErr: true},
		{name: "no dot", in: "Answer", wantErr: true},
		{name: "empty name", in: "Topic.", wantErr: true},
		{name: "dotted topic name", in: "Topic.A.B", wantErr: true},
		{name: "bad identifier", in: "Topic.1abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVariableRef(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVariableRef(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVariableRefString(t *testing.T) {
	ref := VariableRef{Scope: ScopeTopic, Name: "Answer", Declare: true}
	if ref.String() != "init:Topic.Answer" {
		t.Fatalf("String() = %q", ref.String())
	}
}

func TestPrebuiltEntities(t *testing.T) {
	if !IsPrebuiltEntity("Boolean") || !IsPrebuiltEntity("ZipCode") {
		t.Fatal("expected known prebuilt entities")
	}
	if IsPrebuiltEntity("FlightNumber") {
		t.Fatal("FlightNumber should not be prebuilt")
	}
}

func TestSystemVariables(t *testing.T) {
	if !IsSystemVariable("Activity.Text") {
		t.Fatal("Activity.Text should be a system variable")
	}
	if IsSystemVariable("Activity.Secret") {
		t.Fatal("Activity.Secret should not be a system variable")
	}
}
