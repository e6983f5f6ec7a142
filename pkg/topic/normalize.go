package topic

import (
	"github.com/dialogkit/topiclint/pkg/topic/parser"
	"github.com/dialogkit/topiclint/pkg/topic/schema"
	"gopkg.in/yaml.v3"
)

// Normalize rewrites a validator-approved tree into the canonical document
// form: message shorthand becomes a variant list, bare entity names become
// prebuilt references, and variable strings become structured references.
// It is a pure function with no failure path; malformed input never reaches
// it because Check gates on error-severity diagnostics first.
func Normalize(tree *parser.Tree) *Document {
	root := tree.Root
	doc := &Document{Kind: schema.RootKind}

	if n, ok := parser.MapGet(root, "startBehavior"); ok {
		doc.StartBehavior, _ = parser.StringValue(n)
	}
	doc.InputParameters = normalizeParameters(root, "inputParameters")
	doc.OutputParameters = normalizeParameters(root, "outputParameters")

	if begin, ok := parser.MapGet(root, "beginDialog"); ok {
		doc.BeginDialog = normalizeTrigger(begin)
	}
	return doc
}

func normalizeParameters(root *yaml.Node, field string) []Parameter {
	n, ok := parser.MapGet(root, field)
	if !ok {
		return nil
	}
	var params []Parameter
	for _, item := range parser.Items(n) {
		p := Parameter{}
		p.Name, _ = parser.StringValue(get(item, "name"))
		p.Type, _ = parser.StringValue(get(item, "type"))
		p.Description, _ = parser.StringValue(get(item, "description"))
		params = append(params, p)
	}
	return params
}

func normalizeTrigger(n *yaml.Node) Trigger {
	t := Trigger{}
	t.Kind, _ = parser.StringValue(get(n, "kind"))
	t.ID, _ = parser.StringValue(get(n, "id"))
	if v, ok := parser.IntValue(get(n, "priority")); ok {
		t.Priority = &v
	}
	if intent, ok := parser.MapGet(n, "intent"); ok {
		t.Intent = normalizeIntent(intent)
	}
	t.Actions = normalizeActions(get(n, "actions"))
	return t
}

func normalizeIntent(n *yaml.Node) *Intent {
	in := &Intent{}
	in.DisplayName, _ = parser.StringValue(get(n, "displayName"))
	for _, q := range parser.Items(get(n, "triggerQueries")) {
		if s, ok := parser.StringValue(q); ok {
			in.TriggerQueries = append(in.TriggerQueries, s)
		}
	}
	in.IncludeInOnSelectIntent, _ = parser.BoolValue(get(n, "includeInOnSelectIntent"))
	return in
}

func normalizeActions(n *yaml.Node) []Action {
	var actions []Action
	for _, item := range parser.Items(n) {
		if a := normalizeAction(item); a != nil {
			actions = append(actions, a)
		}
	}
	return actions
}

func normalizeAction(n *yaml.Node) Action {
	kind, _ := parser.StringValue(get(n, "kind"))
	id, _ := parser.StringValue(get(n, "id"))

	switch kind {
	case schema.KindSendMessage:
		return SendMessage{ID: id, Message: stringList(get(n, "message"))}
	case schema.KindQuestion:
		q := Question{ID: id, Prompt: stringList(get(n, "prompt"))}
		q.Variable = variableRef(get(n, "variable"))
		q.Entity = normalizeEntity(get(n, "entity"))
		q.AlwaysPrompt, _ = parser.BoolValue(get(n, "alwaysPrompt"))
		return q
	case schema.KindConditionGroup:
		g := ConditionGroup{ID: id}
		for _, branch := range parser.Items(get(n, "conditions")) {
			b := ConditionBranch{}
			b.ID, _ = parser.StringValue(get(branch, "id"))
			b.Condition, _ = parser.StringValue(get(branch, "condition"))
			b.DisplayName, _ = parser.StringValue(get(branch, "displayName"))
			b.Actions = normalizeActions(get(branch, "actions"))
			g.Conditions = append(g.Conditions, b)
		}
		if elseActions, ok := parser.MapGet(n, "elseActions"); ok {
			g.ElseActions = normalizeActions(elseActions)
		}
		return g
	case schema.KindSetVariable:
		return SetVariable{ID: id, Variable: variableRef(get(n, "variable")), Value: anyValue(get(n, "value"))}
	case schema.KindClearVariable:
		return ClearVariable{ID: id, Variable: variableRef(get(n, "variable"))}
	case schema.KindRedirectToTopic:
		a := RedirectToTopic{ID: id}
		a.TopicSchemaName, _ = parser.StringValue(get(n, "topicSchemaName"))
		a.InputMappings = mapValue(get(n, "inputMappings"))
		return a
	case schema.KindEndDialog:
		return EndDialog{ID: id}
	case schema.KindEndConversation:
		return EndConversation{ID: id}
	case schema.KindTransferConversationV2:
		a := TransferConversationV2{ID: id}
		a.Target, _ = parser.StringValue(get(n, "target"))
		a.MessageToAgent, _ = parser.StringValue(get(n, "messageToAgent"))
		return a
	case schema.KindSearchAndSummarizeContent:
		a := SearchAndSummarizeContent{ID: id, UserInput: anyValue(get(n, "userInput"))}
		a.Variable = optionalVariableRef(n, "variable")
		a.ModerationLevel, _ = parser.StringValue(get(n, "moderationLevel"))
		return a
	case schema.KindInvokeFlowAction:
		a := InvokeFlowAction{ID: id}
		a.FlowID, _ = parser.StringValue(get(n, "flowId"))
		a.Input = mapValue(get(n, "input"))
		a.Output = mapValue(get(n, "output"))
		return a
	case schema.KindInvokeHttpAction:
		a := InvokeHttpAction{ID: id}
		a.URL, _ = parser.StringValue(get(n, "url"))
		a.Method, _ = parser.StringValue(get(n, "method"))
		a.Headers = mapValue(get(n, "headers"))
		a.Body = anyValue(get(n, "body"))
		a.Response = optionalVariableRef(n, "response")
		return a
	case schema.KindParseJsonValue:
		return ParseJsonValue{ID: id, Value: anyValue(get(n, "value")), Variable: variableRef(get(n, "variable"))}
	case schema.KindAdaptiveCardPrompt:
		a := AdaptiveCardPrompt{ID: id, Card: mapValue(get(n, "card"))}
		a.Variable = optionalVariableRef(n, "variable")
		return a
	case schema.KindForEach:
		a := ForEach{ID: id, Items: anyValue(get(n, "items"))}
		a.ItemVariable = variableRef(get(n, "itemVariable"))
		a.IndexVariable = optionalVariableRef(n, "indexVariable")
		a.Actions = normalizeActions(get(n, "actions"))
		return a
	default:
		return nil
	}
}

func normalizeEntity(n *yaml.Node) Entity {
	if name, ok := parser.StringValue(n); ok {
		return Entity{Kind: schema.EntityKindPrebuiltRef, Name: name}
	}
	kind, _ := parser.StringValue(get(n, "kind"))
	e := Entity{Kind: kind}
	switch kind {
	case schema.EntityKindPrebuiltRef:
		e.Name, _ = parser.StringValue(get(n, "name"))
	case schema.EntityKindClosedList:
		for _, item := range parser.Items(get(n, "items")) {
			ci := ClosedListItem{}
			ci.DisplayName, _ = parser.StringValue(get(item, "displayName"))
			for _, v := range parser.Items(get(item, "values")) {
				if s, ok := parser.StringValue(v); ok {
					ci.Values = append(ci.Values, s)
				}
			}
			e.Items = append(e.Items, ci)
		}
	case schema.EntityKindRegex:
		e.Pattern, _ = parser.StringValue(get(n, "pattern"))
	default:
		// Unknown kinds only arrive here under allowUnknownEntityKinds.
		// Keep their payload so re-emitting is lossless.
		for _, key := range parser.MapKeys(n) {
			if key == "kind" {
				continue
			}
			if e.Attrs == nil {
				e.Attrs = map[string]any{}
			}
			e.Attrs[key] = anyValue(get(n, key))
		}
	}
	return e
}

func get(n *yaml.Node, key string) *yaml.Node {
	v, _ := parser.MapGet(n, key)
	return v
}

func stringList(n *yaml.Node) []string {
	if s, ok := parser.StringValue(n); ok {
		return []string{s}
	}
	var out []string
	for _, item := range parser.Items(n) {
		if s, ok := parser.StringValue(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func variableRef(n *yaml.Node) VariableRef {
	s, _ := parser.StringValue(n)
	ref, _ := schema.ParseVariableRef(s)
	return ref
}

func optionalVariableRef(n *yaml.Node, key string) *VariableRef {
	field, ok := parser.MapGet(n, key)
	if !ok {
		return nil
	}
	ref := variableRef(field)
	return &ref
}

func anyValue(n *yaml.Node) any {
	if n == nil {
		return nil
	}
	var v any
	if err := parser.Resolve(n).Decode(&v); err != nil {
		return nil
	}
	return v
}

func mapValue(n *yaml.Node) map[string]any {
	if n == nil {
		return nil
	}
	var v map[string]any
	if err := parser.Resolve(n).Decode(&v); err != nil {
		return nil
	}
	return v
}
