package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

const (
	defaultMemoryResults = 6
	maxMemoryResults     = 20
)

// MemorySearchTool does a case-insensitive line search over the memory files.
type MemorySearchTool struct {
	store schema.MemoryStore
}

// NewMemorySearchTool creates a MemorySearchTool.
func NewMemorySearchTool(store schema.MemoryStore) *MemorySearchTool {
	return &MemorySearchTool{store: store}
}

func (t *MemorySearchTool) Name() string { return string(ToolMemorySearch) }
func (t *MemorySearchTool) Description() string {
	return "Search MEMORY.md and memory/*.md for prior work, decisions, dates, people, preferences, or todos. Returns matching lines with their file path."
}

func (t *MemorySearchTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "Keyword to look for"
			},
			"max_results": {
				"type": "integer",
				"description": "Max results to return (default 6, max 20)",
				"minimum": 1,
				"maximum": 20
			}
		},
		"required": ["query"]
	}`)
}

type memoryHit struct {
	Path    string `json:"path"`
	Snippet string `json:"snippet"`
}

func (t *MemorySearchTool) Execute(_ context.Context, params map[string]any) (string, error) {
	query, _ := params["query"].(string)
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return "Error: query is required", nil
	}
	limit := defaultMemoryResults
	if n, ok := intParam(params, "max_results"); ok && n > 0 {
		limit = min(n, maxMemoryResults)
	}

	hits := []memoryHit{}
search:
	for _, src := range t.store.Sources() {
		for _, line := range strings.Split(src.Content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			hits = append(hits, memoryHit{Path: src.Path, Snippet: line})
			if len(hits) >= limit {
				break search
			}
		}
	}

	out, err := json.MarshalIndent(map[string]any{"results": hits, "source": "file"}, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	return string(out), nil
}
