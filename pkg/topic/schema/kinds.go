package schema

// Trigger kind names.
const (
	KindOnRecognizedIntent  = "OnRecognizedIntent"
	KindOnUnknownIntent     = "OnUnknownIntent"
	KindOnEscalate          = "OnEscalate"
	KindOnConversationStart = "OnConversationStart"
	KindOnError             = "OnError"
)

// Action kind names.
const (
	KindSendMessage               = "SendMessage"
	KindQuestion                  = "Question"
	KindConditionGroup            = "ConditionGroup"
	KindSetVariable               = "SetVariable"
	KindClearVariable             = "ClearVariable"
	KindRedirectToTopic           = "RedirectToTopic"
	KindEndDialog                 = "EndDialog"
	KindEndConversation           = "EndConversation"
	KindTransferConversationV2    = "TransferConversationV2"
	KindSearchAndSummarizeContent = "SearchAndSummarizeContent"
	KindInvokeFlowAction          = "InvokeFlowAction"
	KindInvokeHttpAction          = "InvokeHttpAction"
	KindParseJsonValue            = "ParseJsonValue"
	KindAdaptiveCardPrompt        = "AdaptiveCardPrompt"
	KindForEach                   = "ForEach"
)

// PriorityMin and PriorityMax bound trigger priorities. -1 marks fallback
// triggers such as OnUnknownIntent.
const (
	PriorityMin = -1
	PriorityMax = 100
)

func idField() FieldSpec {
	return FieldSpec{Name: "id", Type: TypeString, Required: true}
}

func actionsField(required bool) FieldSpec {
	return FieldSpec{Name: "actions", Type: TypeActionList, Required: required}
}

func priorityField() FieldSpec {
	return FieldSpec{Name: "priority", Type: TypeInt, Min: PriorityMin, Max: PriorityMax}
}

func init() {
	register(
		NodeSchema{Kind: KindOnRecognizedIntent, Class: ClassTrigger, Fields: []FieldSpec{
			idField(),
			{Name: "intent", Type: TypeIntent, Required: true},
			priorityField(),
			actionsField(true),
		}},
		NodeSchema{Kind: KindOnUnknownIntent, Class: ClassTrigger, Fields: []FieldSpec{
			idField(),
			priorityField(),
			actionsField(true),
		}},
		NodeSchema{Kind: KindOnEscalate, Class: ClassTrigger, Fields: []FieldSpec{
			idField(),
			{Name: "intent", Type: TypeIntent},
			priorityField(),
			actionsField(true),
		}},
		NodeSchema{Kind: KindOnConversationStart, Class: ClassTrigger, Fields: []FieldSpec{
			idField(),
			actionsField(true),
		}},
		NodeSchema{Kind: KindOnError, Class: ClassTrigger, Fields: []FieldSpec{
			idField(),
			actionsField(true),
		}},
	)

	register(
		NodeSchema{Kind: KindSendMessage, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "message", Type: TypeStringOrList, Required: true},
		}},
		NodeSchema{Kind: KindQuestion, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "prompt", Type: TypeStringOrList, Required: true},
			{Name: "variable", Type: TypeVariable, Required: true, Declares: true},
			{Name: "entity", Type: TypeEntity, Required: true},
			{Name: "alwaysPrompt", Type: TypeBool},
		}},
		NodeSchema{Kind: KindConditionGroup, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "conditions", Type: TypeConditionList, Required: true},
			{Name: "elseActions", Type: TypeActionList},
		}},
		NodeSchema{Kind: KindSetVariable, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "variable", Type: TypeVariable, Required: true, Declares: true},
			{Name: "value", Type: TypeValue, Required: true},
		}},
		NodeSchema{Kind: KindClearVariable, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "variable", Type: TypeVariable, Required: true, Mutates: true},
		}},
		NodeSchema{Kind: KindRedirectToTopic, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "topicSchemaName", Type: TypeString, Required: true},
			{Name: "inputMappings", Type: TypeObject},
		}},
		NodeSchema{Kind: KindEndDialog, Class: ClassAction, Fields: []FieldSpec{
			idField(),
		}},
		NodeSchema{Kind: KindEndConversation, Class: ClassAction, Fields: []FieldSpec{
			idField(),
		}},
		NodeSchema{Kind: KindTransferConversationV2, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "target", Type: TypeString, Required: true},
			{Name: "messageToAgent", Type: TypeString},
		}},
		NodeSchema{Kind: KindSearchAndSummarizeContent, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "userInput", Type: TypeValue, Required: true},
			{Name: "variable", Type: TypeVariable, Declares: true},
			{Name: "moderationLevel", Type: TypeEnum, Enum: []string{"Low", "Medium", "High"}},
		}},
		NodeSchema{Kind: KindInvokeFlowAction, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "flowId", Type: TypeString, Required: true},
			{Name: "input", Type: TypeObject},
			{Name: "output", Type: TypeObject},
		}},
		NodeSchema{Kind: KindInvokeHttpAction, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "url", Type: TypeString, Required: true},
			{Name: "method", Type: TypeEnum, Enum: []string{"GET", "POST", "PUT", "PATCH", "DELETE"}},
			{Name: "headers", Type: TypeObject},
			{Name: "body", Type: TypeValue},
			{Name: "response", Type: TypeVariable, Declares: true},
		}},
		NodeSchema{Kind: KindParseJsonValue, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "value", Type: TypeValue, Required: true},
			{Name: "variable", Type: TypeVariable, Required: true, Declares: true},
		}},
		NodeSchema{Kind: KindAdaptiveCardPrompt, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "card", Type: TypeObject, Required: true},
			{Name: "variable", Type: TypeVariable, Declares: true},
		}},
		NodeSchema{Kind: KindForEach, Class: ClassAction, Fields: []FieldSpec{
			idField(),
			{Name: "items", Type: TypeValue, Required: true},
			{Name: "itemVariable", Type: TypeVariable, Required: true, Declares: true},
			{Name: "indexVariable", Type: TypeVariable, Declares: true},
			actionsField(true),
		}},
	)
}
