// Package agent holds the agent section of the skillhub config.
package agent

const DefaultWorkspace = "~/.skillhub/workspace"

// AgentDefaults configures the prompt context served to the agent.
type AgentDefaults struct {
	Workspace string `json:"workspace"`
	// BootstrapFiles replaces the workspace files injected into the system
	// prompt when non-empty.
	BootstrapFiles []string `json:"bootstrapFiles,omitempty"`
}

type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

func DefaultAgentsConfig() AgentsConfig {
	return AgentsConfig{Defaults: AgentDefaults{Workspace: DefaultWorkspace}}
}
