// Package schema contains the contracts and shared value types used across
// skillhub packages. Concrete implementations live in their own packages.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is a function the agent can call. Execute reports failures the model
// should see as "Error: ..." text and keeps the error return for failures of
// the host itself.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// ToolDefinition renders t in OpenAI function-calling format. A tool with
// an unparseable schema is advertised as taking an empty object.
func ToolDefinition(t Tool) map[string]any {
	var params any
	if err := json.Unmarshal(t.Parameters(), &params); err != nil {
		params = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        t.Name(),
			"description": t.Description(),
			"parameters":  params,
		},
	}
}
