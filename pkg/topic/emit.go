package topic

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/dialogkit/topiclint/pkg/topic/schema"
	"gopkg.in/yaml.v3"
)

// Encode serializes a canonical document back to YAML with a stable field
// order, so emitting the same document always produces identical bytes.
func Encode(doc *Document) ([]byte, error) {
	root := newMapping()
	root.set("kind", valueNode(doc.Kind))
	if doc.StartBehavior != "" {
		root.set("startBehavior", valueNode(doc.StartBehavior))
	}
	if params := parametersNode(doc.InputParameters); params != nil {
		root.set("inputParameters", params)
	}
	if params := parametersNode(doc.OutputParameters); params != nil {
		root.set("outputParameters", params)
	}
	root.set("beginDialog", triggerNode(doc.BeginDialog))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root.node); err != nil {
		return nil, fmt.Errorf("encoding topic: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type mapping struct {
	node *yaml.Node
}

func newMapping() *mapping {
	return &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
}

func (m *mapping) set(key string, value *yaml.Node) {
	m.node.Content = append(m.node.Content, valueNode(key), value)
}

func valueNode(v any) *yaml.Node {
	n := &yaml.Node{}
	// Encode cannot fail for the scalar, map, and slice values emitted here.
	_ = n.Encode(v)
	return n
}

func sequenceNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func stringsNode(values []string) *yaml.Node {
	items := make([]*yaml.Node, len(values))
	for i, v := range values {
		items[i] = valueNode(v)
	}
	return sequenceNode(items...)
}

func parametersNode(params []Parameter) *yaml.Node {
	if len(params) == 0 {
		return nil
	}
	var items []*yaml.Node
	for _, p := range params {
		m := newMapping()
		m.set("name", valueNode(p.Name))
		m.set("type", valueNode(p.Type))
		if p.Description != "" {
			m.set("description", valueNode(p.Description))
		}
		items = append(items, m.node)
	}
	return sequenceNode(items...)
}

func triggerNode(t Trigger) *yaml.Node {
	m := newMapping()
	m.set("kind", valueNode(t.Kind))
	m.set("id", valueNode(t.ID))
	if t.Intent != nil {
		m.set("intent", intentNode(t.Intent))
	}
	if t.Priority != nil {
		m.set("priority", valueNode(*t.Priority))
	}
	m.set("actions", actionsNode(t.Actions))
	return m.node
}

func intentNode(in *Intent) *yaml.Node {
	m := newMapping()
	m.set("displayName", valueNode(in.DisplayName))
	m.set("triggerQueries", stringsNode(in.TriggerQueries))
	if in.IncludeInOnSelectIntent {
		m.set("includeInOnSelectIntent", valueNode(true))
	}
	return m.node
}

func actionsNode(actions []Action) *yaml.Node {
	items := make([]*yaml.Node, len(actions))
	for i, a := range actions {
		items[i] = actionNode(a)
	}
	return sequenceNode(items...)
}

func actionNode(a Action) *yaml.Node {
	m := newMapping()
	m.set("kind", valueNode(a.ActionKind()))
	m.set("id", valueNode(a.NodeID()))

	switch v := a.(type) {
	case SendMessage:
		m.set("message", stringsNode(v.Message))
	case Question:
		m.set("prompt", stringsNode(v.Prompt))
		m.set("variable", valueNode(v.Variable.String()))
		m.set("entity", entityNode(v.Entity))
		if v.AlwaysPrompt {
			m.set("alwaysPrompt", valueNode(true))
		}
	case ConditionGroup:
		var branches []*yaml.Node
		for _, b := range v.Conditions {
			bm := newMapping()
			bm.set("id", valueNode(b.ID))
			bm.set("condition", valueNode(b.Condition))
			if b.DisplayName != "" {
				bm.set("displayName", valueNode(b.DisplayName))
			}
			bm.set("actions", actionsNode(b.Actions))
			branches = append(branches, bm.node)
		}
		m.set("conditions", sequenceNode(branches...))
		if v.ElseActions != nil {
			m.set("elseActions", actionsNode(v.ElseActions))
		}
	case SetVariable:
		m.set("variable", valueNode(v.Variable.String()))
		m.set("value", valueNode(v.Value))
	case ClearVariable:
		m.set("variable", valueNode(v.Variable.String()))
	case RedirectToTopic:
		m.set("topicSchemaName", valueNode(v.TopicSchemaName))
		if len(v.InputMappings) > 0 {
			m.set("inputMappings", valueNode(v.InputMappings))
		}
	case TransferConversationV2:
		m.set("target", valueNode(v.Target))
		if v.MessageToAgent != "" {
			m.set("messageToAgent", valueNode(v.MessageToAgent))
		}
	case SearchAndSummarizeContent:
		m.set("userInput", valueNode(v.UserInput))
		if v.Variable != nil {
			m.set("variable", valueNode(v.Variable.String()))
		}
		if v.ModerationLevel != "" {
			m.set("moderationLevel", valueNode(v.ModerationLevel))
		}
	case InvokeFlowAction:
		m.set("flowId", valueNode(v.FlowID))
		if len(v.Input) > 0 {
			m.set("input", valueNode(v.Input))
		}
		if len(v.Output) > 0 {
			m.set("output", valueNode(v.Output))
		}
	case InvokeHttpAction:
		m.set("url", valueNode(v.URL))
		if v.Method != "" {
			m.set("method", valueNode(v.Method))
		}
		if len(v.Headers) > 0 {
			m.set("headers", valueNode(v.Headers))
		}
		if v.Body != nil {
			m.set("body", valueNode(v.Body))
		}
		if v.Response != nil {
			m.set("response", valueNode(v.Response.String()))
		}
	case ParseJsonValue:
		m.set("value", valueNode(v.Value))
		m.set("variable", valueNode(v.Variable.String()))
	case AdaptiveCardPrompt:
		m.set("card", valueNode(v.Card))
		if v.Variable != nil {
			m.set("variable", valueNode(v.Variable.String()))
		}
	case ForEach:
		m.set("items", valueNode(v.Items))
		m.set("itemVariable", valueNode(v.ItemVariable.String()))
		if v.IndexVariable != nil {
			m.set("indexVariable", valueNode(v.IndexVariable.String()))
		}
		m.set("actions", actionsNode(v.Actions))
	}
	return m.node
}

func entityNode(e Entity) *yaml.Node {
	m := newMapping()
	m.set("kind", valueNode(e.Kind))
	switch e.Kind {
	case schema.EntityKindPrebuiltRef:
		m.set("name", valueNode(e.Name))
	case schema.EntityKindClosedList:
		var items []*yaml.Node
		for _, item := range e.Items {
			im := newMapping()
			im.set("displayName", valueNode(item.DisplayName))
			im.set("values", stringsNode(item.Values))
			items = append(items, im.node)
		}
		m.set("items", sequenceNode(items...))
	case schema.EntityKindRegex:
		m.set("pattern", valueNode(e.Pattern))
	default:
		keys := make([]string, 0, len(e.Attrs))
		for k := range e.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.set(k, valueNode(e.Attrs[k]))
		}
	}
	return m.node
}
