// Package config defines the configuration schema for skillhub.
//
// The file is JSON with comments and trailing commas allowed (JWCC); keys
// use camelCase.
package config

import (
	"os"
	"path/filepath"

	"github.com/crystaldolphin/skillhub/internal/config/agent"
	"github.com/crystaldolphin/skillhub/internal/config/hub"
	"github.com/crystaldolphin/skillhub/internal/skills"
)

// SkillsConfig locates the skills roots. Empty values select the defaults:
// <workspace>/skills for installs and ~/.agents/skills for the personal root.
type SkillsConfig struct {
	InstallRoot  string `json:"installRoot,omitempty"`
	PersonalRoot string `json:"personalRoot,omitempty"`

	// DisablePersonal drops the personal root from the runtime catalog.
	DisablePersonal bool `json:"disablePersonal,omitempty"`
}

// MemoryConfig tunes how much memory is injected into the system prompt.
type MemoryConfig struct {
	MaxContextChars int `json:"maxContextChars"`
}

// Config is the root configuration object, loaded from ~/.skillhub/config.json.
type Config struct {
	Agents agent.AgentsConfig `json:"agents"`
	Hub    hub.HubConfig      `json:"hub"`
	Skills SkillsConfig       `json:"skills"`
	Memory MemoryConfig       `json:"memory"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents: agent.DefaultAgentsConfig(),
		Hub:    hub.DefaultHubConfig(),
		Memory: MemoryConfig{MaxContextChars: 8000},
	}
}

// WorkspacePath returns the expanded absolute path to the agent workspace.
func (c *Config) WorkspacePath() string {
	ws := c.Agents.Defaults.Workspace
	if ws == "" {
		ws = agent.DefaultWorkspace
	}
	return expandHome(ws)
}

// InstallRoot returns the directory skills are installed into.
func (c *Config) InstallRoot() string {
	if c.Skills.InstallRoot != "" {
		return expandHome(c.Skills.InstallRoot)
	}
	return filepath.Join(c.WorkspacePath(), "skills")
}

// SkillRoots returns the runtime skills roots in precedence order, lowest
// first. The install root is the workspace tier, so installed skills are
// always visible to the catalog.
func (c *Config) SkillRoots() []skills.Root {
	return skills.WorkspaceRoots(c.WorkspacePath(), c.personalRoot(), c.InstallRoot())
}

func (c *Config) personalRoot() string {
	if c.Skills.DisablePersonal {
		return ""
	}
	if c.Skills.PersonalRoot != "" {
		return expandHome(c.Skills.PersonalRoot)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return skills.PersonalRoot(home)
}

func expandHome(p string) string {
	if len(p) >= 2 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
