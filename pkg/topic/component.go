package topic

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ExtractComponentYAML pulls the topic YAML out of a Dataverse botcomponent
// JSON record, as returned by the agent API. Records store the dialog under
// "content"; older exports use "data".
func ExtractComponentYAML(record []byte) ([]byte, error) {
	if !gjson.ValidBytes(record) {
		return nil, fmt.Errorf("component record is not valid JSON")
	}
	for _, field := range []string{"content", "data"} {
		if v := gjson.GetBytes(record, field); v.Type == gjson.String && v.Str != "" {
			return []byte(v.Str), nil
		}
	}
	return nil, fmt.Errorf("component record has no content or data field")
}
