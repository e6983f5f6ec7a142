package diag

import (
	"encoding/json"
	"sort"
	"strings"
)

// Format selects how Render serializes a diagnostics list.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Sort orders diagnostics by severity (errors first), then path, then code.
// The order is deterministic regardless of traversal order during validation.
func Sort(list []Diagnostic) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Severity != list[j].Severity {
			return list[i].Severity < list[j].Severity
		}
		if list[i].Path != list[j].Path {
			return list[i].Path < list[j].Path
		}
		return list[i].Code < list[j].Code
	})
}

// Dedupe removes diagnostics that repeat an earlier (code, path) pair.
// The first occurrence wins.
func Dedupe(list []Diagnostic) []Diagnostic {
	seen := make(map[string]bool, len(list))
	out := make([]Diagnostic, 0, len(list))
	for _, d := range list {
		key := d.Code + "\x00" + d.Path
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

// Render sorts, dedupes, and serializes diagnostics. Text format emits one
// "severity [code] path: message" line per diagnostic; JSON emits an array
// of structured records.
func Render(list []Diagnostic, format Format) (string, error) {
	list = Dedupe(list)
	Sort(list)

	switch format {
	case FormatJSON:
		if list == nil {
			list = []Diagnostic{}
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		var b strings.Builder
		for _, d := range list {
			b.WriteString(d.String())
			b.WriteString("\n")
		}
		return b.String(), nil
	}
}
