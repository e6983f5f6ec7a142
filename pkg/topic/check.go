package topic

import (
	"errors"

	"github.com/dialogkit/topiclint/pkg/topic/diag"
	"github.com/dialogkit/topiclint/pkg/topic/parser"
	"github.com/dialogkit/topiclint/pkg/topic/validate"
)

// Options configures a Check call.
type Options struct {
	// AllowUnknownEntityKinds accepts entity kinds outside the prebuilt set.
	AllowUnknownEntityKinds bool
}

// Check runs the full pipeline on one topic definition: parse, validate,
// and normalize. The returned document is nil whenever any diagnostic has
// Error severity; the diagnostics list is always complete for the input,
// so callers can fix everything in one round.
//
// Check is safe to call concurrently; all registry data is read-only.
func Check(src []byte, opts Options) (*Document, []diag.Diagnostic) {
	tree, err := parser.Parse(src)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return nil, []diag.Diagnostic{{
				Severity: diag.Error,
				Code:     diag.CodeParseError,
				Message:  pe.Message,
				Line:     pe.Line,
				Column:   pe.Column,
			}}
		}
		return nil, diag.Errorf(nil, diag.CodeParseError, "", "%v", err)
	}

	diags := validate.Document(tree, validate.Options{
		AllowUnknownEntityKinds: opts.AllowUnknownEntityKinds,
	})
	if diag.HasErrors(diags) {
		return nil, diags
	}
	return Normalize(tree), diags
}
