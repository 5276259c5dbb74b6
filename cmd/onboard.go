package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crystaldolphin/skillhub/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration and workspace",
	RunE:  runOnboard,
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	var cfg *config.Config
	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprint(out, "Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
			fmt.Scanln()
		}
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		cfg = existing
		fmt.Fprintf(out, "✓ Config refreshed at %s\n", cfgPath)
	} else {
		def := config.DefaultConfig()
		if err := config.Save(&def, cfgPath); err != nil {
			return err
		}
		cfg = &def
		fmt.Fprintf(out, "✓ Created config at %s\n", cfgPath)
	}

	workspace := cfg.WorkspacePath()
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	fmt.Fprintf(out, "✓ Workspace at %s\n", workspace)

	createWorkspaceTemplates(out, workspace, cfg.InstallRoot())

	fmt.Fprintf(out, "\n%s skillhub is ready!\n\n", logo)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Find a skill:    skillhub search pdf")
	fmt.Fprintln(out, "  2. Install it:      skillhub install anthropics/skills@pdf")
	fmt.Fprintln(out, "  3. Check the agent: skillhub prompt")
	return nil
}

// workspaceTemplates are written on onboarding, relative to the workspace,
// and never overwrite an existing file.
var workspaceTemplates = []struct {
	path    string
	content string
}{
	{"AGENTS.md", `# Agent Instructions

You are a helpful AI assistant. Be concise, accurate, and friendly.

## Guidelines

- Check the skills catalog before starting a task and activate a matching skill
- Use skill_search when no installed skill fits
- Remember durable facts about the user with the remember tool
`},
	{"USER.md", `# User

Information about the user goes here.

## Preferences

- Communication style: (casual/formal)
- Timezone: (your timezone)
`},
	{"TOOLS.md", `# Tools

- activate_skill: load a skill's full instructions by name
- skill_search: search the registry and skills.sh for installable skills
- remember: store a fact in long-term memory
- memory_search / memory_get: recall notes from memory files
`},
	{filepath.Join("memory", "MEMORY.md"), `# Long-term Memory

This file stores important information that should persist across sessions.
`},
	{filepath.Join("memory", "HISTORY.md"), ""},
}

func createWorkspaceTemplates(out io.Writer, workspace, skillsRoot string) {
	for _, tmpl := range workspaceTemplates {
		p := filepath.Join(workspace, tmpl.path)
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", tmpl.path, err)
			continue
		}
		if err := os.WriteFile(p, []byte(tmpl.content), 0o644); err != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", tmpl.path, err)
			continue
		}
		fmt.Fprintf(out, "  Created %s\n", filepath.ToSlash(tmpl.path))
	}

	if err := os.MkdirAll(skillsRoot, 0o755); err != nil {
		fmt.Fprintf(out, "  ✗ skills root %s: %v\n", skillsRoot, err)
	}
}
