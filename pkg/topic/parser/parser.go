// Package parser turns raw YAML or JSON topic text into an untyped node
// tree that preserves source positions for diagnostics.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports malformed input. It is the only failure that stops
// processing entirely; there is no tree to validate.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return "parse error: " + e.Message
}

// Tree is a parsed document. Root is the top-level mapping node; yaml.v3
// nodes carry Line and Column, so the tree is its own source map.
type Tree struct {
	Root *yaml.Node
}

var yamlLineRe = regexp.MustCompile(`(?:^|\s)line (\d+):\s*(.*)`)

// Parse decodes UTF-8 YAML (or JSON, which yaml.v3 accepts) into a Tree.
// Duplicate mapping keys are rejected here rather than surfacing later as
// silently ignored fields.
func Parse(src []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, toParseError(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ParseError{Message: "empty document"}
	}
	root := doc.Content[0]
	if err := checkDuplicateKeys(root); err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

// toParseError extracts line information from a yaml.v3 error string.
func toParseError(err error) *ParseError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ParseError{Line: line, Message: m[2]}
	}
	return &ParseError{Message: msg}
}

func checkDuplicateKeys(n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		seen := make(map[string]bool, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind == yaml.ScalarNode {
				if seen[key.Value] {
					return &ParseError{
						Line:    key.Line,
						Column:  key.Column,
						Message: fmt.Sprintf("duplicate mapping key %q", key.Value),
					}
				}
				seen[key.Value] = true
			}
			if err := checkDuplicateKeys(n.Content[i+1]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if err := checkDuplicateKeys(c); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		// Alias targets are checked where they are anchored.
	}
	return nil
}
