package validate

import (
	"fmt"
	"regexp"

	"github.com/dialogkit/topiclint/pkg/topic/diag"
	"github.com/dialogkit/topiclint/pkg/topic/parser"
	"github.com/dialogkit/topiclint/pkg/topic/schema"
	"gopkg.in/yaml.v3"
)

// analyzeVariableFlow checks that every Topic-scoped variable read is
// preceded by a declaration on at least one execution path. The action tree
// is a forward-only DAG (there is no backward jump construct), so a single
// ordered walk with per-branch set copies suffices.
//
// Scoping policy: a declaration made only inside a ConditionGroup branch is
// NOT visible after the group. The runtime does not document branch scoping,
// so the conservative reading is kept until it does; a read after the group
// of a branch-only declaration warns. The warnings never become errors,
// because Power Fx expressions may legitimately reference variables bound by
// a calling topic through input parameters.
//
// ForEach item and index variables are treated as Topic-scoped; a collision
// with an already-declared name gets a shadowing warning, pending clearer
// scoping rules from the service.
func analyzeVariableFlow(root *yaml.Node) []diag.Diagnostic {
	a := &flowAnalyzer{}

	declared := map[string]bool{}
	if params, ok := parser.MapGet(root, "inputParameters"); ok {
		for _, p := range parser.Items(params) {
			if name, ok := parser.StringValue(mustGet(p, "name")); ok && name != "" {
				declared[name] = true
			}
		}
	}

	begin, ok := parser.MapGet(root, "beginDialog")
	if !ok {
		return nil
	}
	if actions, ok := parser.MapGet(begin, "actions"); ok {
		a.walkActions(actions, "beginDialog.actions", declared)
	}
	return a.diags
}

type flowAnalyzer struct {
	diags []diag.Diagnostic
}

var topicRefRe = regexp.MustCompile(`\bTopic\.([A-Za-z_][A-Za-z0-9_]*)`)
var systemRefRe = regexp.MustCompile(`\bSystem\.([A-Za-z_][A-Za-z0-9_.]*)`)

// walkActions processes a sequence in execution order, mutating declared.
func (a *flowAnalyzer) walkActions(actions *yaml.Node, path string, declared map[string]bool) {
	for i, action := range parser.Items(actions) {
		a.walkAction(action, fmt.Sprintf("%s[%d]", path, i), declared)
	}
}

func (a *flowAnalyzer) walkAction(n *yaml.Node, path string, declared map[string]bool) {
	kind, _ := parser.StringValue(mustGet(n, "kind"))
	ns, ok := schema.Lookup(kind)
	if !ok || !parser.IsMapping(n) {
		return
	}

	// Reads happen before this action's own assignment takes effect, so a
	// SetVariable value may not reference the variable it declares.
	for _, f := range ns.Fields {
		fieldNode, present := parser.MapGet(n, f.Name)
		if !present {
			continue
		}
		fieldPath := path + "." + f.Name
		switch f.Type {
		case schema.TypeExpression, schema.TypeValue:
			if expr, ok := parser.StringValue(fieldNode); ok && len(expr) > 0 && expr[0] == '=' {
				a.scanExpression(expr, fieldPath, declared)
			}
		case schema.TypeVariable:
			if f.Declares {
				continue
			}
			// Non-assigning variable fields (ClearVariable) read the slot.
			if ref, err := parseRefNode(fieldNode); err == nil &&
				ref.Scope == schema.ScopeTopic && !ref.Declare && !declared[ref.Name] {
				a.warnUndeclared(ref.Name, fieldPath)
			}
		}
	}

	switch kind {
	case schema.KindConditionGroup:
		a.walkConditionGroup(n, path, declared)
		return
	case schema.KindForEach:
		a.walkForEach(n, path, declared)
		return
	}

	// Assignments declare their Topic-scoped targets.
	for _, f := range ns.Fields {
		if !f.Declares {
			continue
		}
		fieldNode, present := parser.MapGet(n, f.Name)
		if !present {
			continue
		}
		if ref, err := parseRefNode(fieldNode); err == nil && ref.Scope == schema.ScopeTopic {
			declared[ref.Name] = true
		}
	}
}

func (a *flowAnalyzer) walkConditionGroup(n *yaml.Node, path string, declared map[string]bool) {
	conditions, _ := parser.MapGet(n, "conditions")

	for i, branch := range parser.Items(conditions) {
		branchPath := fmt.Sprintf("%s.conditions[%d]", path, i)
		if cond, ok := parser.StringValue(mustGet(branch, "condition")); ok {
			a.scanExpression(cond, branchPath+".condition", declared)
		}
		branchSet := copySet(declared)
		if actions, ok := parser.MapGet(branch, "actions"); ok {
			a.walkActions(actions, branchPath+".actions", branchSet)
		}
	}

	if elseActions, ok := parser.MapGet(n, "elseActions"); ok {
		elseSet := copySet(declared)
		a.walkActions(elseActions, path+".elseActions", elseSet)
	}
}

func (a *flowAnalyzer) walkForEach(n *yaml.Node, path string, declared map[string]bool) {
	// The items expression was already scanned by the shared read pass.
	for _, name := range []string{"itemVariable", "indexVariable"} {
		fieldNode, present := parser.MapGet(n, name)
		if !present {
			continue
		}
		ref, err := parseRefNode(fieldNode)
		if err != nil || ref.Scope != schema.ScopeTopic {
			continue
		}
		if declared[ref.Name] {
			a.diags = diag.Warnf(a.diags, diag.CodeVariableShadowed, path+"."+name,
				"loop variable Topic.%s shadows an existing Topic variable", ref.Name)
		}
		declared[ref.Name] = true
	}

	if actions, ok := parser.MapGet(n, "actions"); ok {
		a.walkActions(actions, path+".actions", declared)
	}
}

// scanExpression does a shallow lexical pass over a Power Fx expression,
// checking Topic references against the declared set and System references
// against the fixed system variable table.
func (a *flowAnalyzer) scanExpression(expr, path string, declared map[string]bool) {
	for _, m := range topicRefRe.FindAllStringSubmatch(expr, -1) {
		if !declared[m[1]] {
			a.warnUndeclared(m[1], path)
		}
	}
	for _, m := range systemRefRe.FindAllStringSubmatch(expr, -1) {
		if !schema.IsSystemVariable(m[1]) {
			a.diags = diag.Warnf(a.diags, diag.CodeInvalidVariableRef, path,
				"unknown system variable System.%s", m[1])
		}
	}
}

func (a *flowAnalyzer) warnUndeclared(name, path string) {
	a.diags = diag.Warnf(a.diags, diag.CodeUndeclaredVariable, path,
		"Topic.%s is read before any init: declaration or assignment", name)
}

func parseRefNode(n *yaml.Node) (schema.VariableRef, error) {
	v, ok := parser.StringValue(n)
	if !ok {
		return schema.VariableRef{}, fmt.Errorf("not a string")
	}
	return schema.ParseVariableRef(v)
}

func copySet(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k := range set {
		out[k] = true
	}
	return out
}
