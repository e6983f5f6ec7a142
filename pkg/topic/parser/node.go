package parser

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Node accessor helpers shared by the validator and normalizer. All of them
// resolve aliases so anchored content behaves like inline content.

// Resolve follows alias nodes to their anchor targets.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// IsMapping reports whether n is a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a sequence node.
func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsScalar reports whether n is a scalar node.
func IsScalar(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.ScalarNode
}

// IsNull reports whether n is an explicit null scalar.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// MapGet returns the value node for key within mapping n.
func MapGet(n *yaml.Node, key string) (*yaml.Node, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1], true
		}
	}
	return nil, false
}

// MapKeys returns the key names of mapping n in document order.
func MapKeys(n *yaml.Node) []string {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

// Items returns the elements of sequence n.
func Items(n *yaml.Node) []*yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return n.Content
}

// StringValue returns the string form of a scalar node. Quoted scalars and
// plain strings both qualify; numbers and booleans do not.
func StringValue(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	switch n.Tag {
	case "!!str", "":
		return n.Value, true
	}
	return "", false
}

// IntValue returns the integer value of a scalar node.
func IntValue(n *yaml.Node) (int, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!int" {
		return 0, false
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BoolValue returns the boolean value of a scalar node.
func BoolValue(n *yaml.Node) (bool, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false, false
	}
	v, err := strconv.ParseBool(n.Value)
	if err != nil {
		return false, false
	}
	return v, true
}

// KindName describes a node's shape for diagnostics ("string", "sequence", ...).
func KindName(n *yaml.Node) string {
	n = Resolve(n)
	if n == nil {
		return "missing"
	}
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int":
			return "integer"
		case "!!bool":
			return "boolean"
		case "!!float":
			return "number"
		case "!!null":
			return "null"
		default:
			return "string"
		}
	default:
		return "node"
	}
}
