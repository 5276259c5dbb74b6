package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// RememberTool appends a fact to the Remembered Facts section of MEMORY.md.
type RememberTool struct {
	store schema.MemoryStore
}

// NewRememberTool creates a RememberTool backed by the given MemoryStore.
func NewRememberTool(store schema.MemoryStore) *RememberTool {
	return &RememberTool{store: store}
}

func (t *RememberTool) Name() string { return string(ToolRemember) }
func (t *RememberTool) Description() string {
	return "Save important information to long-term memory. Use for preferences, facts, decisions, dates, people, or anything worth recalling later."
}

func (t *RememberTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"content": {
				"type": "string",
				"description": "Fact or information to remember"
			}
		},
		"required": ["content"]
	}`)
}

func (t *RememberTool) Execute(_ context.Context, params map[string]any) (string, error) {
	content, _ := params["content"].(string)
	content = strings.TrimSpace(content)
	if content == "" {
		return "Error: content cannot be empty", nil
	}
	if err := t.store.AppendRememberedFact(content); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	return "Remembered: " + content, nil
}
