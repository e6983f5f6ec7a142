// Package topic ties the dialect pieces together: it exposes the canonical
// document model, the normalizer that produces it, a YAML emitter, and the
// Check entry point that runs parse → validate → normalize in one call.
package topic

import "github.com/dialogkit/topiclint/pkg/topic/schema"

// VariableRef is a parsed Scope.Name variable reference.
type VariableRef = schema.VariableRef

// Document is the canonical, normalized form of a topic definition. It is
// built fresh per Check call and never mutated afterwards.
type Document struct {
	Kind             string
	StartBehavior    string
	InputParameters  []Parameter
	OutputParameters []Parameter
	BeginDialog      Trigger
}

// Parameter is an input or output parameter declaration.
type Parameter struct {
	Name        string
	Type        string
	Description string
}

// Trigger is the entry event of a topic.
type Trigger struct {
	Kind     string
	ID       string
	Intent   *Intent
	Priority *int
	Actions  []Action
}

// Intent describes the phrases that activate a recognized-intent trigger.
type Intent struct {
	DisplayName             string
	TriggerQueries          []string
	IncludeInOnSelectIntent bool
}

// Action is one step in a topic's execution tree. The concrete type is one
// of the variant structs below, discriminated by ActionKind.
type Action interface {
	ActionKind() string
	NodeID() string
}

// ClosedListItem is one choice of a closed list entity.
type ClosedListItem struct {
	DisplayName string
	Values      []string
}

// Entity is the canonical entity form: always a kind-discriminated struct,
// never a bare name.
type Entity struct {
	Kind    string           // PrebuiltEntityRef, ClosedListEntity, or RegexEntity
	Name    string           // prebuilt entity name when Kind == PrebuiltEntityRef
	Items   []ClosedListItem // when Kind == ClosedListEntity
	Pattern string           // when Kind == RegexEntity
	Attrs   map[string]any   // remaining fields of a kind outside the known set
}

// ConditionBranch is one arm of a ConditionGroup.
type ConditionBranch struct {
	ID          string
	Condition   string
	DisplayName string
	Actions     []Action
}

type SendMessage struct {
	ID      string
	Message []string
}

type Question struct {
	ID           string
	Prompt       []string
	Variable     VariableRef
	Entity       Entity
	AlwaysPrompt bool
}

type ConditionGroup struct {
	ID          string
	Conditions  []ConditionBranch
	ElseActions []Action
}

type SetVariable struct {
	ID       string
	Variable VariableRef
	Value    any
}

type ClearVariable struct {
	ID       string
	Variable VariableRef
}

type RedirectToTopic struct {
	ID              string
	TopicSchemaName string
	InputMappings   map[string]any
}

type EndDialog struct {
	ID string
}

type EndConversation struct {
	ID string
}

type TransferConversationV2 struct {
	ID             string
	Target         string
	MessageToAgent string
}

type SearchAndSummarizeContent struct {
	ID              string
	UserInput       any
	Variable        *VariableRef
	ModerationLevel string
}

type InvokeFlowAction struct {
	ID     string
	FlowID string
	Input  map[string]any
	Output map[string]any
}

type InvokeHttpAction struct {
	ID       string
	URL      string
	Method   string
	Headers  map[string]any
	Body     any
	Response *VariableRef
}

type ParseJsonValue struct {
	ID       string
	Value    any
	Variable VariableRef
}

type AdaptiveCardPrompt struct {
	ID       string
	Card     map[string]any
	Variable *VariableRef
}

type ForEach struct {
	ID            string
	Items         any
	ItemVariable  VariableRef
	IndexVariable *VariableRef
	Actions       []Action
}

func (a SendMessage) ActionKind() string               { return schema.KindSendMessage }
func (a Question) ActionKind() string                  { return schema.KindQuestion }
func (a ConditionGroup) ActionKind() string            { return schema.KindConditionGroup }
func (a SetVariable) ActionKind() string               { return schema.KindSetVariable }
func (a ClearVariable) ActionKind() string             { return schema.KindClearVariable }
func (a RedirectToTopic) ActionKind() string           { return schema.KindRedirectToTopic }
func (a EndDialog) ActionKind() string                 { return schema.KindEndDialog }
func (a EndConversation) ActionKind() string           { return schema.KindEndConversation }
func (a TransferConversationV2) ActionKind() string    { return schema.KindTransferConversationV2 }
func (a SearchAndSummarizeContent) ActionKind() string { return schema.KindSearchAndSummarizeContent }
func (a InvokeFlowAction) ActionKind() string          { return schema.KindInvokeFlowAction }
func (a InvokeHttpAction) ActionKind() string          { return schema.KindInvokeHttpAction }
func (a ParseJsonValue) ActionKind() string            { return schema.KindParseJsonValue }
func (a AdaptiveCardPrompt) ActionKind() string        { return schema.KindAdaptiveCardPrompt }
func (a ForEach) ActionKind() string                   { return schema.KindForEach }

func (a SendMessage) NodeID() string               { return a.ID }
func (a Question) NodeID() string                  { return a.ID }
func (a ConditionGroup) NodeID() string            { return a.ID }
func (a SetVariable) NodeID() string               { return a.ID }
func (a ClearVariable) NodeID() string             { return a.ID }
func (a RedirectToTopic) NodeID() string           { return a.ID }
func (a EndDialog) NodeID() string                 { return a.ID }
func (a EndConversation) NodeID() string           { return a.ID }
func (a TransferConversationV2) NodeID() string    { return a.ID }
func (a SearchAndSummarizeContent) NodeID() string { return a.ID }
func (a InvokeFlowAction) NodeID() string          { return a.ID }
func (a InvokeHttpAction) NodeID() string          { return a.ID }
func (a ParseJsonValue) NodeID() string            { return a.ID }
func (a AdaptiveCardPrompt) NodeID() string        { return a.ID }
func (a ForEach) NodeID() string                   { return a.ID }
