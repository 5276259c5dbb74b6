package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/skillhub/internal/config"
	"github.com/crystaldolphin/skillhub/internal/skills"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show skillhub status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	fmt.Fprintf(out, "%s skillhub Status\n\n", logo)
	fmt.Fprintf(out, "Config:    %s %s\n", cfgPath, mark(cfgPath))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(out, "  (could not load config: %v)\n", err)
		return nil
	}

	ws := cfg.WorkspacePath()
	fmt.Fprintf(out, "Workspace: %s %s\n", ws, mark(ws))
	fmt.Fprintf(out, "Registry:  %s\n", cfg.Hub.RegistryBaseURL)
	fmt.Fprintf(out, "Catalog:   %s\n\n", cfg.Hub.CatalogBaseURL)

	roots := cfg.SkillRoots()
	mgr := skills.NewManager(roots)
	all := mgr.ListAll()
	fmt.Fprintf(out, "Skill roots (platform %s):\n", mgr.Platform())
	for _, r := range roots {
		n := len(skills.NewManager([]skills.Root{r}).ListAll())
		fmt.Fprintf(out, "  %-16s %s %s (%d)\n", r.Source, r.Path, mark(r.Path), n)
	}
	fmt.Fprintf(out, "\nSkills: %d installed, %d available\n", len(all), len(mgr.ListAvailable()))
	return nil
}

func mark(path string) string {
	if _, err := os.Stat(path); err == nil {
		return "✓"
	}
	return "✗"
}
