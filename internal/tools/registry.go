package tools

import (
	"slices"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolActivateSkill ToolName = "activate_skill"
	ToolSkillSearch   ToolName = "skill_search"
	ToolRemember      ToolName = "remember"
	ToolMemorySearch  ToolName = "memory_search"
	ToolMemoryGet     ToolName = "memory_get"
)

// RegistryDeps are the services the built-in tools run against. A nil
// field leaves out the tools that need it.
type RegistryDeps struct {
	Skills      schema.SkillCatalog
	Searcher    SkillSearcher
	SearchLimit int
	Memory      schema.MemoryStore
}

// Registry is the fixed set of tools offered to the agent.
type Registry struct {
	tools map[string]schema.Tool
}

// NewRegistry builds the built-in tools from deps.
func NewRegistry(deps RegistryDeps) *Registry {
	r := &Registry{tools: make(map[string]schema.Tool)}
	if deps.Skills != nil {
		r.register(NewActivateSkillTool(deps.Skills))
	}
	if deps.Searcher != nil {
		r.register(NewSkillSearchTool(deps.Searcher, deps.SearchLimit))
	}
	if deps.Memory != nil {
		r.register(NewRememberTool(deps.Memory))
		r.register(NewMemorySearchTool(deps.Memory))
		r.register(NewMemoryGetTool(deps.Memory))
	}
	return r
}

func (r *Registry) register(t schema.Tool) { r.tools[t.Name()] = t }

// GetTool returns the tool with the given name, or nil.
func (r *Registry) GetTool(name ToolName) schema.Tool {
	return r.tools[string(name)]
}

// Has reports whether every named tool is registered.
func (r *Registry) Has(names ...ToolName) bool {
	return !slices.ContainsFunc(names, func(n ToolName) bool {
		_, ok := r.tools[string(n)]
		return !ok
	})
}

// AllTools returns a copy of the registered tools as a ToolList.
func (r *Registry) AllTools() ToolList {
	list := ToolList{tools: make(map[string]schema.Tool, len(r.tools))}
	for k, t := range r.tools {
		list.tools[k] = t
	}
	return list
}
