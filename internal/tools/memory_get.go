package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/memory"
	"github.com/crystaldolphin/skillhub/internal/schema"
)

// MemoryGetTool reads MEMORY.md or one dated notes file, optionally a line
// range of it.
type MemoryGetTool struct {
	store schema.MemoryStore
}

// NewMemoryGetTool creates a MemoryGetTool.
func NewMemoryGetTool(store schema.MemoryStore) *MemoryGetTool {
	return &MemoryGetTool{store: store}
}

func (t *MemoryGetTool) Name() string { return string(ToolMemoryGet) }
func (t *MemoryGetTool) Description() string {
	return "Read MEMORY.md or memory/YYYY-MM-DD.md by path. Use after memory_search to pull specific lines."
}

func (t *MemoryGetTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"path": {
				"type": "string",
				"description": "MEMORY.md or a date file like 2025-02-14.md"
			},
			"from": {
				"type": "integer",
				"description": "Start line (1-based)",
				"minimum": 1
			},
			"lines": {
				"type": "integer",
				"description": "Number of lines to read",
				"minimum": 1
			}
		},
		"required": ["path"]
	}`)
}

func (t *MemoryGetTool) Execute(_ context.Context, params map[string]any) (string, error) {
	name, _ := params["path"].(string)
	name = strings.TrimSpace(name)
	if !memory.AllowedPath(name) {
		return fmt.Sprintf("Error: path must be MEMORY.md or YYYY-MM-DD.md, got: %s", name), nil
	}

	data, err := os.ReadFile(filepath.Join(t.store.Dir(), name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("Error: file not found: %s", name), nil
	}
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err), nil
	}

	text := string(data)
	from, hasFrom := intParam(params, "from")
	n, hasLines := intParam(params, "lines")
	if hasFrom && hasLines {
		text = lineRange(text, from, n)
	}

	out, err := json.MarshalIndent(map[string]string{"path": name, "text": text}, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	return string(out), nil
}

// lineRange returns n lines of text starting at the 1-based line from.
func lineRange(text string, from, n int) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	start := max(from-1, 0)
	if start >= len(lines) || n <= 0 {
		return ""
	}
	end := min(start+n, len(lines))
	return strings.Join(lines[start:end], "\n")
}
