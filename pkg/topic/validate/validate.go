// Package validate walks a parsed topic tree and checks it against the
// dialect schema, accumulating diagnostics instead of stopping at the first
// defect. A single pass reports every problem it can reach; only a parse
// failure upstream prevents validation entirely.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dialogkit/topiclint/pkg/topic/diag"
	"github.com/dialogkit/topiclint/pkg/topic/parser"
	"github.com/dialogkit/topiclint/pkg/topic/schema"
	"gopkg.in/yaml.v3"
)

// Options tunes validation behavior.
type Options struct {
	// AllowUnknownEntityKinds accepts entity kinds beyond the prebuilt set
	// without diagnostics, for forward compatibility with new service
	// entity types.
	AllowUnknownEntityKinds bool
}

// Document validates the whole tree and returns every diagnostic found.
// The caller accepts the document only when no Error-severity diagnostics
// are present.
func Document(tree *parser.Tree, opts Options) []diag.Diagnostic {
	w := &walker{opts: opts, ids: map[string]string{}}

	root := tree.Root
	if !parser.IsMapping(root) {
		return diag.Errorf(nil, diag.CodeInvalidFieldType, "",
			"document root must be a mapping, got %s", parser.KindName(root))
	}

	kindNode, ok := parser.MapGet(root, "kind")
	kind, _ := parser.StringValue(kindNode)
	if !ok || kind != schema.RootKind {
		// Root kind mismatch is fatal for the whole subtree, which here is
		// the whole document.
		return diag.Errorf(nil, diag.CodeRootKindMismatch, "kind",
			"root kind must be %q, got %q", schema.RootKind, kind)
	}

	w.checkStartBehavior(root)
	w.checkParameters(root, "inputParameters")
	w.checkParameters(root, "outputParameters")

	begin, ok := parser.MapGet(root, "beginDialog")
	if !ok {
		w.diags = diag.Errorf(w.diags, diag.CodeMissingRequiredField, "beginDialog",
			"document requires a beginDialog trigger")
		return w.diags
	}
	w.node(begin, "beginDialog", schema.ClassTrigger)

	// Structure is known; run the declaration-precedes-use analysis.
	w.diags = append(w.diags, analyzeVariableFlow(root)...)

	return w.diags
}

type walker struct {
	opts  Options
	diags []diag.Diagnostic
	ids   map[string]string // id -> path of first occurrence
}

func (w *walker) errorf(code, path, format string, args ...any) {
	w.diags = diag.Errorf(w.diags, code, path, format, args...)
}

func (w *walker) warnf(code, path, format string, args ...any) {
	w.diags = diag.Warnf(w.diags, code, path, format, args...)
}

func (w *walker) checkStartBehavior(root *yaml.Node) {
	n, ok := parser.MapGet(root, "startBehavior")
	if !ok {
		return
	}
	v, isStr := parser.StringValue(n)
	if !isStr {
		w.errorf(diag.CodeInvalidFieldType, "startBehavior",
			"startBehavior must be a string, got %s", parser.KindName(n))
		return
	}
	for _, b := range schema.StartBehaviors {
		if v == b {
			return
		}
	}
	w.errorf(diag.CodeInvalidEnumValue, "startBehavior",
		"startBehavior must be one of %s, got %q",
		strings.Join(schema.StartBehaviors, ", "), v)
}

func (w *walker) checkParameters(root *yaml.Node, field string) {
	n, ok := parser.MapGet(root, field)
	if !ok {
		return
	}
	if !parser.IsSequence(n) {
		w.errorf(diag.CodeInvalidFieldType, field,
			"%s must be a sequence, got %s", field, parser.KindName(n))
		return
	}
	for i, item := range parser.Items(n) {
		path := fmt.Sprintf("%s[%d]", field, i)
		if !parser.IsMapping(item) {
			w.errorf(diag.CodeInvalidFieldType, path,
				"parameter must be a mapping, got %s", parser.KindName(item))
			continue
		}
		if name, ok := parser.MapGet(item, "name"); !ok {
			w.errorf(diag.CodeMissingRequiredField, path, "parameter requires a name")
		} else if _, isStr := parser.StringValue(name); !isStr {
			w.errorf(diag.CodeInvalidFieldType, path+".name",
				"parameter name must be a string, got %s", parser.KindName(name))
		}
		typNode, ok := parser.MapGet(item, "type")
		if !ok {
			w.errorf(diag.CodeMissingRequiredField, path, "parameter requires a type")
			continue
		}
		typ, isStr := parser.StringValue(typNode)
		if !isStr || !containsString(schema.ParameterTypes, typ) {
			w.errorf(diag.CodeInvalidEnumValue, path+".type",
				"parameter type must be one of %s, got %q",
				strings.Join(schema.ParameterTypes, ", "), typ)
		}
	}
}

// node validates a single trigger or action node against its registered
// schema. Unknown kinds skip the subtree but never abort the walk.
func (w *walker) node(n *yaml.Node, path string, class schema.NodeClass) {
	if !parser.IsMapping(n) {
		w.errorf(diag.CodeInvalidFieldType, path,
			"%s must be a mapping, got %s", class, parser.KindName(n))
		return
	}

	kindNode, ok := parser.MapGet(n, "kind")
	if !ok {
		w.errorf(diag.CodeMissingRequiredField, path, "node requires a kind")
		return
	}
	kind, _ := parser.StringValue(kindNode)
	ns, ok := schema.Lookup(kind)
	if !ok {
		w.errorf(diag.CodeUnknownNodeKind, path, "unknown node kind %q", kind)
		return
	}
	if ns.Class != class {
		w.errorf(diag.CodeUnknownNodeKind, path,
			"%s is %s kind, expected %s", kind, article(ns.Class), article(class))
		return
	}

	w.recordID(n, path)

	for _, f := range ns.Fields {
		fieldNode, present := parser.MapGet(n, f.Name)
		fieldPath := path + "." + f.Name
		if !present || parser.IsNull(fieldNode) {
			if f.Required {
				w.errorf(diag.CodeMissingRequiredField, path,
					"%s requires field %s", kind, f.Name)
			}
			continue
		}
		w.field(fieldNode, fieldPath, f)
	}

	if kind == schema.KindConditionGroup {
		if _, ok := parser.MapGet(n, "elseActions"); !ok {
			w.warnf(diag.CodeMissingElseActions, path,
				"ConditionGroup has no elseActions; unmatched input falls through silently")
		}
	}
}

func (w *walker) recordID(n *yaml.Node, path string) {
	idNode, ok := parser.MapGet(n, "id")
	if !ok {
		return
	}
	id, isStr := parser.StringValue(idNode)
	if !isStr || id == "" {
		return
	}
	if first, dup := w.ids[id]; dup {
		w.errorf(diag.CodeDuplicateID, path,
			"id %q already used at %s", id, first)
		return
	}
	w.ids[id] = path
}

func (w *walker) field(n *yaml.Node, path string, f schema.FieldSpec) {
	switch f.Type {
	case schema.TypeString:
		if _, ok := parser.StringValue(n); !ok {
			w.errorf(diag.CodeInvalidFieldType, path,
				"%s must be a string, got %s", f.Name, parser.KindName(n))
		}
	case schema.TypeStringOrList:
		w.stringOrList(n, path, f.Name)
	case schema.TypeBool:
		if _, ok := parser.BoolValue(n); !ok {
			w.errorf(diag.CodeInvalidFieldType, path,
				"%s must be a boolean, got %s", f.Name, parser.KindName(n))
		}
	case schema.TypeInt:
		v, ok := parser.IntValue(n)
		if !ok {
			w.errorf(diag.CodeInvalidFieldType, path,
				"%s must be an integer, got %s", f.Name, parser.KindName(n))
			return
		}
		if f.Ranged() && (v < f.Min || v > f.Max) {
			w.errorf(diag.CodeValueOutOfRange, path,
				"%s must be between %d and %d, got %d", f.Name, f.Min, f.Max, v)
		}
	case schema.TypeEnum:
		v, ok := parser.StringValue(n)
		if !ok || !containsString(f.Enum, v) {
			w.errorf(diag.CodeInvalidEnumValue, path,
				"%s must be one of %s, got %q", f.Name, strings.Join(f.Enum, ", "), v)
		}
	case schema.TypeExpression:
		w.expression(n, path, f.Name)
	case schema.TypeValue:
		// Literal scalar, expression string, or structured literal; any
		// present shape is acceptable at this level.
	case schema.TypeVariable:
		w.variable(n, path, f)
	case schema.TypeEntity:
		w.entity(n, path)
	case schema.TypeIntent:
		w.intent(n, path)
	case schema.TypeActionList:
		w.actionList(n, path)
	case schema.TypeConditionList:
		w.conditionList(n, path)
	case schema.TypeObject:
		if !parser.IsMapping(n) {
			w.errorf(diag.CodeInvalidFieldType, path,
				"%s must be a mapping, got %s", f.Name, parser.KindName(n))
		}
	}
}

func (w *walker) stringOrList(n *yaml.Node, path, name string) {
	if _, ok := parser.StringValue(n); ok {
		return
	}
	if parser.IsSequence(n) {
		items := parser.Items(n)
		if len(items) == 0 {
			w.errorf(diag.CodeInvalidFieldType, path,
				"%s must contain at least one variant", name)
			return
		}
		for i, item := range items {
			if _, ok := parser.StringValue(item); !ok {
				w.errorf(diag.CodeInvalidFieldType, fmt.Sprintf("%s[%d]", path, i),
					"%s variant must be a string, got %s", name, parser.KindName(item))
			}
		}
		return
	}
	w.errorf(diag.CodeInvalidFieldType, path,
		"%s must be a string or a sequence of strings, got %s", name, parser.KindName(n))
}

func (w *walker) expression(n *yaml.Node, path, name string) {
	v, ok := parser.StringValue(n)
	if !ok {
		w.errorf(diag.CodeInvalidCondition, path,
			"%s must be an expression string, got %s", name, parser.KindName(n))
		return
	}
	if strings.TrimSpace(v) == "" {
		w.errorf(diag.CodeInvalidCondition, path, "%s must not be empty", name)
		return
	}
	if !strings.HasPrefix(v, "=") {
		w.errorf(diag.CodeInvalidCondition, path,
			"%s must begin with %q, got %q", name, "=", v)
	}
}

func (w *walker) variable(n *yaml.Node, path string, f schema.FieldSpec) {
	v, ok := parser.StringValue(n)
	if !ok {
		w.errorf(diag.CodeInvalidVariableRef, path,
			"%s must be a variable reference string, got %s", f.Name, parser.KindName(n))
		return
	}
	ref, err := schema.ParseVariableRef(v)
	if err != nil {
		w.errorf(diag.CodeInvalidVariableRef, path, "%v", err)
		return
	}
	if ref.Scope == schema.ScopeSystem {
		// Clearing mutates the slot just as assignment does.
		if f.Declares || f.Mutates {
			w.errorf(diag.CodeReadonlySystemVariable, path,
				"System variables are read-only, cannot write %s", ref)
			return
		}
		if !schema.IsSystemVariable(ref.Name) {
			w.errorf(diag.CodeInvalidVariableRef, path,
				"unknown system variable System.%s", ref.Name)
		}
	}
}

func (w *walker) intent(n *yaml.Node, path string) {
	if !parser.IsMapping(n) {
		w.errorf(diag.CodeInvalidFieldType, path,
			"intent must be a mapping, got %s", parser.KindName(n))
		return
	}
	if dn, ok := parser.MapGet(n, "displayName"); !ok {
		w.errorf(diag.CodeMissingRequiredField, path, "intent requires a displayName")
	} else if _, isStr := parser.StringValue(dn); !isStr {
		w.errorf(diag.CodeInvalidFieldType, path+".displayName",
			"displayName must be a string, got %s", parser.KindName(dn))
	}
	tq, ok := parser.MapGet(n, "triggerQueries")
	if !ok {
		w.errorf(diag.CodeMissingRequiredField, path, "intent requires triggerQueries")
		return
	}
	if !parser.IsSequence(tq) {
		w.errorf(diag.CodeInvalidFieldType, path+".triggerQueries",
			"triggerQueries must be a sequence of strings, got %s", parser.KindName(tq))
		return
	}
	for i, q := range parser.Items(tq) {
		if _, ok := parser.StringValue(q); !ok {
			w.errorf(diag.CodeInvalidFieldType,
				fmt.Sprintf("%s.triggerQueries[%d]", path, i),
				"trigger query must be a string, got %s", parser.KindName(q))
		}
	}
	if inc, ok := parser.MapGet(n, "includeInOnSelectIntent"); ok {
		if _, isBool := parser.BoolValue(inc); !isBool {
			w.errorf(diag.CodeInvalidFieldType, path+".includeInOnSelectIntent",
				"includeInOnSelectIntent must be a boolean, got %s", parser.KindName(inc))
		}
	}
}

func (w *walker) actionList(n *yaml.Node, path string) {
	if !parser.IsSequence(n) {
		w.errorf(diag.CodeInvalidFieldType, path,
			"actions must be a sequence, got %s", parser.KindName(n))
		return
	}
	for i, item := range parser.Items(n) {
		w.node(item, fmt.Sprintf("%s[%d]", path, i), schema.ClassAction)
	}
}

func (w *walker) conditionList(n *yaml.Node, path string) {
	if !parser.IsSequence(n) {
		w.errorf(diag.CodeInvalidFieldType, path,
			"conditions must be a sequence, got %s", parser.KindName(n))
		return
	}
	for i, branch := range parser.Items(n) {
		branchPath := fmt.Sprintf("%s[%d]", path, i)
		if !parser.IsMapping(branch) {
			w.errorf(diag.CodeInvalidFieldType, branchPath,
				"condition branch must be a mapping, got %s", parser.KindName(branch))
			continue
		}
		w.recordID(branch, branchPath)
		cond, ok := parser.MapGet(branch, "condition")
		if !ok {
			w.errorf(diag.CodeMissingRequiredField, branchPath,
				"condition branch requires a condition")
		} else {
			w.expression(cond, branchPath+".condition", "condition")
		}
		if dn, ok := parser.MapGet(branch, "displayName"); ok {
			if _, isStr := parser.StringValue(dn); !isStr {
				w.errorf(diag.CodeInvalidFieldType, branchPath+".displayName",
					"displayName must be a string, got %s", parser.KindName(dn))
			}
		}
		if actions, ok := parser.MapGet(branch, "actions"); ok {
			w.actionList(actions, branchPath+".actions")
		}
	}
}

func (w *walker) entity(n *yaml.Node, path string) {
	if name, ok := parser.StringValue(n); ok {
		// Bare string shorthand for a prebuilt entity reference.
		if !schema.IsPrebuiltEntity(name) && !w.opts.AllowUnknownEntityKinds {
			w.errorf(diag.CodeUnknownEntity, path, "unknown prebuilt entity %q", name)
		}
		return
	}
	if !parser.IsMapping(n) {
		w.errorf(diag.CodeInvalidFieldType, path,
			"entity must be a name or an embedded definition, got %s", parser.KindName(n))
		return
	}
	kindNode, ok := parser.MapGet(n, "kind")
	kind, _ := parser.StringValue(kindNode)
	if !ok || kind == "" {
		w.errorf(diag.CodeMissingRequiredField, path, "embedded entity requires a kind")
		return
	}
	switch kind {
	case schema.EntityKindPrebuiltRef:
		name, _ := parser.StringValue(mustGet(n, "name"))
		if name == "" {
			w.errorf(diag.CodeMissingRequiredField, path, "PrebuiltEntityRef requires a name")
		} else if !schema.IsPrebuiltEntity(name) && !w.opts.AllowUnknownEntityKinds {
			w.errorf(diag.CodeUnknownEntity, path, "unknown prebuilt entity %q", name)
		}
	case schema.EntityKindClosedList:
		w.closedList(n, path)
	case schema.EntityKindRegex:
		pattern, ok := parser.StringValue(mustGet(n, "pattern"))
		if !ok {
			w.errorf(diag.CodeMissingRequiredField, path, "RegexEntity requires a pattern")
			return
		}
		if _, err := regexp.Compile(pattern); err != nil {
			w.errorf(diag.CodeInvalidRegexPattern, path+".pattern",
				"pattern does not compile: %v", err)
		}
	default:
		if !w.opts.AllowUnknownEntityKinds {
			w.errorf(diag.CodeUnknownEntity, path, "unknown entity kind %q", kind)
		}
	}
}

func (w *walker) closedList(n *yaml.Node, path string) {
	items, ok := parser.MapGet(n, "items")
	if !ok {
		w.errorf(diag.CodeMissingRequiredField, path, "ClosedListEntity requires items")
		return
	}
	list := parser.Items(items)
	if !parser.IsSequence(items) || len(list) == 0 {
		w.errorf(diag.CodeEmptyClosedList, path+".items",
			"ClosedListEntity requires at least one item")
		return
	}
	for i, item := range list {
		itemPath := fmt.Sprintf("%s.items[%d]", path, i)
		if !parser.IsMapping(item) {
			w.errorf(diag.CodeInvalidFieldType, itemPath,
				"closed list item must be a mapping, got %s", parser.KindName(item))
			continue
		}
		if dn, _ := parser.StringValue(mustGet(item, "displayName")); dn == "" {
			w.errorf(diag.CodeMissingRequiredField, itemPath,
				"closed list item requires a displayName")
		}
		values, ok := parser.MapGet(item, "values")
		if !ok || len(parser.Items(values)) == 0 {
			w.errorf(diag.CodeEmptyClosedList, itemPath,
				"closed list item requires at least one value")
			continue
		}
		for j, v := range parser.Items(values) {
			if _, ok := parser.StringValue(v); !ok {
				w.errorf(diag.CodeInvalidFieldType,
					fmt.Sprintf("%s.values[%d]", itemPath, j),
					"closed list value must be a string, got %s", parser.KindName(v))
			}
		}
	}
}

func mustGet(n *yaml.Node, key string) *yaml.Node {
	v, _ := parser.MapGet(n, key)
	return v
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func article(c schema.NodeClass) string {
	if c == schema.ClassAction {
		return "an action"
	}
	return "a trigger"
}
