package topic

import (
	"fmt"
	"strings"

	"github.com/dialogkit/topiclint/pkg/topic/schema"
	"github.com/google/uuid"
)

// Scaffold builds a minimal valid topic: one recognized-intent trigger with
// the given phrases and a single message action. This mirrors the simple
// topic form the service generates from a trigger list and a response.
func Scaffold(name string, triggerPhrases []string, message string) *Document {
	return &Document{
		Kind: schema.RootKind,
		BeginDialog: Trigger{
			Kind: schema.KindOnRecognizedIntent,
			ID:   "main",
			Intent: &Intent{
				DisplayName:    name,
				TriggerQueries: triggerPhrases,
			},
			Actions: []Action{
				SendMessage{ID: nodeID("sendMessage"), Message: []string{message}},
			},
		},
	}
}

// ScaffoldYAML renders a scaffolded topic as canonical YAML.
func ScaffoldYAML(name string, triggerPhrases []string, message string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("topic name must not be empty")
	}
	if len(triggerPhrases) == 0 {
		return nil, fmt.Errorf("at least one trigger phrase is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("message must not be empty")
	}
	return Encode(Scaffold(name, triggerPhrases, message))
}

// nodeID builds an id like sendMessage_8f14e45f, unique enough to survive
// later merges with other topic fragments.
func nodeID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}
