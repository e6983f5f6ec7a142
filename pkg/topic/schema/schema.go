// Package schema is the single source of truth for the AdaptiveDialog topic
// dialect: which node kinds exist, which fields each kind carries, prebuilt
// entities, and system variables.
//
// The registry is static data built once at package init. Adding a new node
// kind means adding a table entry, not touching validator control flow.
package schema

// NodeClass distinguishes trigger kinds from action kinds.
type NodeClass int

const (
	ClassTrigger NodeClass = iota
	ClassAction
)

func (c NodeClass) String() string {
	if c == ClassTrigger {
		return "trigger"
	}
	return "action"
}

// FieldType is the declared shape of a single node field.
type FieldType int

const (
	// TypeString is a scalar string.
	TypeString FieldType = iota
	// TypeStringOrList accepts a scalar string or a sequence of strings
	// (message shorthand); the normalizer canonicalizes to a list.
	TypeStringOrList
	// TypeBool is a scalar boolean.
	TypeBool
	// TypeInt is an integer, optionally range-constrained via Min/Max.
	TypeInt
	// TypeEnum is a string restricted to the Enum slice.
	TypeEnum
	// TypeExpression is a Power Fx expression string prefixed with "=".
	TypeExpression
	// TypeValue is a literal scalar or a "="-prefixed expression.
	TypeValue
	// TypeVariable is a variable reference such as "init:Topic.Answer".
	TypeVariable
	// TypeEntity is a prebuilt entity name or an embedded entity definition.
	TypeEntity
	// TypeIntent is the intent object carried by recognized-intent triggers.
	TypeIntent
	// TypeActionList is a sequence of child action nodes.
	TypeActionList
	// TypeConditionList is the branch sequence of a ConditionGroup.
	TypeConditionList
	// TypeObject is an arbitrary mapping, checked for shape only.
	TypeObject
)

// FieldSpec describes one field of a node kind.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	Enum     []string // valid values when Type == TypeEnum
	Min, Max int      // inclusive range when Type == TypeInt and Min <= Max
	Declares bool     // variable fields that assign (write position)
	Mutates  bool     // variable fields that write without declaring (ClearVariable)
}

// Ranged reports whether the int field carries a range constraint.
func (f FieldSpec) Ranged() bool { return f.Type == TypeInt && f.Min <= f.Max }

// NodeSchema describes one node kind: its class and field table.
type NodeSchema struct {
	Kind   string
	Class  NodeClass
	Fields []FieldSpec
}

// Field returns the spec for a named field, if declared.
func (n NodeSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

var registry = map[string]NodeSchema{}

func register(schemas ...NodeSchema) {
	for _, s := range schemas {
		registry[s.Kind] = s
	}
}

// Lookup returns the schema for a node kind.
func Lookup(kind string) (NodeSchema, bool) {
	s, ok := registry[kind]
	return s, ok
}

// Kinds returns all registered kind names for a class, unordered.
func Kinds(class NodeClass) []string {
	var out []string
	for k, s := range registry {
		if s.Class == class {
			out = append(out, k)
		}
	}
	return out
}

// RootKind is the only accepted document kind.
const RootKind = "AdaptiveDialog"

// StartBehaviors are the accepted values for the optional root
// startBehavior field.
var StartBehaviors = []string{"CancelOtherTopics", "RunSideBySide"}

// ParameterTypes are the accepted input/output parameter type names.
var ParameterTypes = []string{
	"string", "number", "boolean", "record", "table", "datetime", "choice",
}
