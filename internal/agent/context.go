// Package agent assembles the agent-facing view of a workspace: the system
// prompt with memory and the skills catalog, and the tools it may call.
package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// ContextBuilder assembles the system prompt for the agent.
type ContextBuilder struct {
	workspace      string
	memory         schema.MemoryStore
	skills         schema.SkillCatalog
	maxMemoryChars int
	bootstrap      []string
	now            func() time.Time
}

// defaultBootstrapFiles are the workspace files injected into the system
// prompt, in order, unless the config lists its own.
var defaultBootstrapFiles = []string{"AGENTS.md", "SOUL.md", "USER.md", "TOOLS.md", "IDENTITY.md"}

// NewContextBuilder creates a ContextBuilder. memory and skills may be nil.
func NewContextBuilder(workspace string, memory schema.MemoryStore, skills schema.SkillCatalog, maxMemoryChars int) *ContextBuilder {
	return &ContextBuilder{
		workspace:      workspace,
		memory:         memory,
		skills:         skills,
		maxMemoryChars: maxMemoryChars,
		bootstrap:      defaultBootstrapFiles,
		now:            time.Now,
	}
}

// WithBootstrapFiles replaces the workspace files loaded into the prompt.
// An empty list keeps the current set.
func (cb *ContextBuilder) WithBootstrapFiles(names []string) *ContextBuilder {
	if len(names) > 0 {
		cb.bootstrap = names
	}
	return cb
}

// BuildSystemPrompt assembles the full system prompt: identity, bootstrap
// files, memory and the catalog of available skills.
func (cb *ContextBuilder) BuildSystemPrompt() string {
	var parts []string

	parts = append(parts, cb.buildIdentity())

	if bootstrap := cb.loadBootstrapFiles(); bootstrap != "" {
		parts = append(parts, bootstrap)
	}

	if cb.memory != nil {
		if mem := cb.memory.GetMemoryContext(cb.maxMemoryChars); mem != "" {
			parts = append(parts, "# Memory\n\n"+mem)
		}
	}

	if cb.skills != nil {
		if catalog := cb.skills.BuildCatalog(); catalog != "" {
			parts = append(parts, `# Skills

The following skills extend your capabilities. To use a skill, call the activate_skill tool with its name to load the full instructions.

`+catalog)
		}
	}

	return strings.Join(parts, "\n\n---\n\n")
}

// buildIdentity returns the core identity section of the system prompt.
func (cb *ContextBuilder) buildIdentity() string {
	now := cb.now()
	tz, _ := now.Zone()
	if tz == "" {
		tz = "UTC"
	}
	ws := expandHome(cb.workspace)
	osName := runtime.GOOS
	if osName == "darwin" {
		osName = "macOS"
	}

	return fmt.Sprintf(`# skillhub 🐬

You are a helpful AI assistant with installable skills.

## Current Time
%s (%s)

## Runtime
%s %s, Go %s

## Workspace
Your workspace is at: %s
- Long-term memory: %s/memory/MEMORY.md
- History log: %s/memory/HISTORY.md
- Custom skills: %s/skills/{skill-name}/SKILL.md

Use remember to store facts worth keeping and memory_search to recall them.`,
		now.Format("2006-01-02 15:04 (Monday)"), tz,
		osName, runtime.GOARCH, runtime.Version(),
		ws, ws, ws, ws,
	)
}

// loadBootstrapFiles reads all bootstrap markdown files from the workspace.
func (cb *ContextBuilder) loadBootstrapFiles() string {
	var parts []string
	for _, name := range cb.bootstrap {
		data, err := os.ReadFile(filepath.Join(cb.workspace, name))
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("## %s\n\n%s", name, string(data)))
	}
	return strings.Join(parts, "\n\n")
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
