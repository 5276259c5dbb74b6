package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// ToolList holds a named set of tools and exposes them for LLM calls.
type ToolList struct {
	tools map[string]schema.Tool
}

func NewToolList(ts ...schema.Tool) *ToolList {
	list := ToolList{tools: make(map[string]schema.Tool, len(ts))}
	for _, t := range ts {
		list.tools[t.Name()] = t
	}

	return &list
}

// Get returns the tool with the given name, or nil if not found.
func (r *ToolList) Get(name string) schema.Tool {
	return r.tools[name]
}

// Names returns the tool names in sorted order.
func (r *ToolList) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Execute runs the named tool. An unknown tool is reported as "Error: ..."
// text like any other tool failure.
func (r *ToolList) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	t := r.Get(name)
	if t == nil {
		return fmt.Sprintf("Error: unknown tool: %s", name), nil
	}
	if params == nil {
		params = map[string]any{}
	}
	return t.Execute(ctx, params)
}

// Definitions returns all tool definitions in OpenAI function-calling format,
// ordered by tool name.
func (r *ToolList) Definitions() []map[string]any {
	list := make([]map[string]any, 0, len(r.tools))
	for _, name := range r.Names() {
		list = append(list, schema.ToolDefinition(r.tools[name]))
	}
	return list
}

// intParam converts a JSON number (or an int from Go callers) to int.
func intParam(params map[string]any, key string) (int, bool) {
	switch n := params[key].(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		v, err := n.Int64()
		return int(v), err == nil
	}
	return 0, false
}
