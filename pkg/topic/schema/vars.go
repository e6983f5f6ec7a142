package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Variable scopes.
const (
	ScopeTopic  = "Topic"
	ScopeGlobal = "Global"
	ScopeSystem = "System"
)

// VariableRef is a parsed variable reference string such as
// "Topic.Answer" or "init:Global.UserName".
type VariableRef struct {
	Scope   string
	Name    string
	Declare bool // carried the init: prefix
}

func (r VariableRef) String() string {
	s := r.Scope + "." + r.Name
	if r.Declare {
		return "init:" + s
	}
	return s
}

var varNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// ParseVariableRef parses a variable reference string. System references may
// carry dotted names (System.Activity.Text); Topic and Global names are plain
// identifiers.
func ParseVariableRef(s string) (VariableRef, error) {
	ref := VariableRef{}
	rest := s
	if strings.HasPrefix(rest, "init:") {
		ref.Declare = true
		rest = strings.TrimPrefix(rest, "init:")
	}
	scope, name, ok := strings.Cut(rest, ".")
	if !ok || name == "" {
		return ref, fmt.Errorf("%q is not of the form Scope.Name", s)
	}
	switch scope {
	case ScopeTopic, ScopeGlobal, ScopeSystem:
		ref.Scope = scope
	default:
		return ref, fmt.Errorf("unknown scope %q (want Topic, Global, or System)", scope)
	}
	if !varNameRe.MatchString(name) {
		return ref, fmt.Errorf("invalid variable name %q", name)
	}
	if ref.Scope != ScopeSystem && strings.Contains(name, ".") {
		return ref, fmt.Errorf("%s variables take a plain name, got %q", ref.Scope, name)
	}
	ref.Name = name
	return ref, nil
}
