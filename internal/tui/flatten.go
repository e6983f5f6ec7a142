// Package tui implements the interactive topic browser. It flattens a
// normalized document into rows and renders them with diagnostics attached.
package tui

import (
	"fmt"
	"strings"

	"github.com/dialogkit/topiclint/pkg/topic"
)

// Row is one line of the flattened topic tree.
type Row struct {
	Depth int
	Label string
	Path  string
	Kind  string
}

// Flatten turns a normalized document into display rows, depth-first in
// document order. Paths match the ones diagnostics carry so findings can
// be attached to rows.
func Flatten(doc *topic.Document) []Row {
	if doc == nil {
		return nil
	}

	rows := []Row{{Depth: 0, Label: doc.Kind, Path: "", Kind: doc.Kind}}

	if doc.StartBehavior != "" {
		rows = append(rows, Row{
			Depth: 1,
			Label: "startBehavior: " + doc.StartBehavior,
			Path:  "startBehavior",
		})
	}
	rows = appendParameters(rows, "inputParameters", doc.InputParameters)
	rows = appendParameters(rows, "outputParameters", doc.OutputParameters)

	trig := doc.BeginDialog
	label := trig.Kind
	if trig.ID != "" {
		label += " (" + trig.ID + ")"
	}
	rows = append(rows, Row{Depth: 1, Label: label, Path: "beginDialog", Kind: trig.Kind})

	if trig.Intent != nil {
		rows = append(rows, Row{
			Depth: 2,
			Label: fmt.Sprintf("intent: %d trigger phrases", len(trig.Intent.TriggerQueries)),
			Path:  "beginDialog.intent",
		})
	}
	rows = appendActions(rows, 2, "beginDialog.actions", trig.Actions)
	return rows
}

func appendParameters(rows []Row, field string, params []topic.Parameter) []Row {
	for i, p := range params {
		label := p.Name + ": " + p.Type
		rows = append(rows, Row{
			Depth: 1,
			Label: field + "[" + p.Name + "] " + label,
			Path:  fmt.Sprintf("%s[%d]", field, i),
		})
	}
	return rows
}

func appendActions(rows []Row, depth int, path string, actions []topic.Action) []Row {
	for i, a := range actions {
		p := fmt.Sprintf("%s[%d]", path, i)
		rows = append(rows, Row{
			Depth: depth,
			Label: actionLabel(a),
			Path:  p,
			Kind:  a.ActionKind(),
		})
		switch act := a.(type) {
		case topic.ConditionGroup:
			for j, branch := range act.Conditions {
				bp := fmt.Sprintf("%s.conditions[%d]", p, j)
				rows = append(rows, Row{
					Depth: depth + 1,
					Label: branchLabel(branch),
					Path:  bp,
					Kind:  "ConditionItem",
				})
				rows = appendActions(rows, depth+2, bp+".actions", branch.Actions)
			}
			if len(act.ElseActions) > 0 {
				rows = append(rows, Row{Depth: depth + 1, Label: "else", Path: p + ".elseActions"})
				rows = appendActions(rows, depth+2, p+".elseActions", act.ElseActions)
			}
		case topic.ForEach:
			rows = appendActions(rows, depth+1, p+".actions", act.Actions)
		}
	}
	return rows
}

func actionLabel(a topic.Action) string {
	label := a.ActionKind()
	if id := a.NodeID(); id != "" {
		label += " (" + id + ")"
	}
	switch act := a.(type) {
	case topic.SendMessage:
		if len(act.Message) > 0 {
			label += ": " + truncate(act.Message[0], 40)
		}
	case topic.Question:
		label += " -> " + act.Variable.String()
	case topic.SetVariable:
		label += " " + act.Variable.String()
	case topic.ClearVariable:
		label += " " + act.Variable.String()
	case topic.RedirectToTopic:
		label += " -> " + act.TopicSchemaName
	case topic.InvokeHttpAction:
		label += " " + act.Method + " " + truncate(act.URL, 40)
	case topic.ForEach:
		label += " over " + act.ItemVariable.String()
	}
	return label
}

func branchLabel(b topic.ConditionBranch) string {
	label := "condition"
	if b.ID != "" {
		label += " (" + b.ID + ")"
	}
	if b.Condition != "" {
		label += ": " + truncate(b.Condition, 40)
	}
	return label
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	return string(runes[:n-1]) + "…"
}
