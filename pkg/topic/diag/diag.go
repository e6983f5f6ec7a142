// Package diag defines the diagnostic records produced by topic validation
// and the reporter that orders and renders them.
package diag

import "fmt"

// Severity is the weight of a diagnostic. Errors block acceptance of a
// document; warnings never do.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalJSON renders the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts "error" or "warning".
func (s *Severity) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"error"`:
		*s = Error
	case `"warning"`:
		*s = Warning
	default:
		return fmt.Errorf("unknown severity %s", data)
	}
	return nil
}

// Diagnostic codes. Stable identifiers, safe to match on in callers.
const (
	CodeParseError             = "parse-error"
	CodeRootKindMismatch       = "root-kind-mismatch"
	CodeUnknownNodeKind        = "unknown-node-kind"
	CodeDuplicateID            = "duplicate-id"
	CodeMissingRequiredField   = "missing-required-field"
	CodeInvalidFieldType       = "invalid-field-type"
	CodeInvalidEnumValue       = "invalid-enum-value"
	CodeValueOutOfRange        = "value-out-of-range"
	CodeInvalidCondition       = "invalid-condition"
	CodeMissingElseActions     = "missing-else-actions"
	CodeUnknownEntity          = "unknown-entity"
	CodeEmptyClosedList        = "empty-closed-list"
	CodeInvalidRegexPattern    = "invalid-regex-pattern"
	CodeInvalidVariableRef     = "invalid-variable-ref"
	CodeReadonlySystemVariable = "readonly-system-variable"
	CodeUndeclaredVariable     = "undeclared-variable"
	CodeVariableShadowed       = "variable-shadowed"
)

// Diagnostic is a single validation finding anchored to a node path such as
// "beginDialog.actions[2].conditions[0]".
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%s [%s]: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, d.Path, d.Message)
}

// Errorf appends an error diagnostic to list and returns the new slice.
func Errorf(list []Diagnostic, code, path, format string, args ...any) []Diagnostic {
	return append(list, Diagnostic{
		Severity: Error,
		Code:     code,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf appends a warning diagnostic to list and returns the new slice.
func Warnf(list []Diagnostic, code, path, format string, args ...any) []Diagnostic {
	return append(list, Diagnostic{
		Severity: Warning,
		Code:     code,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any diagnostic in list has Error severity.
func HasErrors(list []Diagnostic) bool {
	for _, d := range list {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
