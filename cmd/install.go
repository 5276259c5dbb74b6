package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/skillhub/internal/skillhub"
)

var (
	installRegistry string
	installCatalog  string
	installVersion  string
	installTag      string
	installSkills   []string
	installRoot     string
	installForce    bool
	installJSON     bool
)

var installCmd = &cobra.Command{
	Use:   "install [source]",
	Short: "Install skills from a git or local source, the registry or skills.sh",
	Long: `Install skills into the workspace skills directory.

Sources:
  owner/repo[/path][@skill]        GitHub shorthand
  https://github.com/o/r/tree/ref  GitHub URL with optional ref and path
  ./dir, /abs/dir                  local directory
  any other git URL

Use --registry <slug> to install from the registry or --catalog <query> to
resolve a skills.sh entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installRegistry, "registry", "", "Install this registry slug")
	installCmd.Flags().StringVar(&installCatalog, "catalog", "", "Install the best skills.sh match for this slug or query")
	installCmd.Flags().StringVar(&installVersion, "version", "", "Registry version (with --registry)")
	installCmd.Flags().StringVar(&installTag, "tag", "", "Registry tag (with --registry)")
	installCmd.Flags().StringSliceVarP(&installSkills, "skill", "s", nil, "Only install skills with this name (repeatable)")
	installCmd.Flags().StringVar(&installRoot, "root", "", "Skills root to install into (default from config)")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Overwrite existing skill directories")
	installCmd.Flags().BoolVar(&installJSON, "json", false, "Print installed skills as JSON")
	installCmd.MarkFlagsMutuallyExclusive("registry", "catalog")
}

func runInstall(cmd *cobra.Command, args []string) error {
	modes := 0
	for _, set := range []bool{len(args) == 1, installRegistry != "", installCatalog != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return errors.New("give exactly one of: a source argument, --registry or --catalog")
	}

	c, err := newContainer()
	if err != nil {
		return err
	}
	root := installRoot
	if root == "" {
		root = c.Config().InstallRoot()
	}
	hub := c.Hub()
	ctx := cmd.Context()

	var installed []skillhub.InstalledSkill
	switch {
	case installRegistry != "":
		var one skillhub.InstalledSkill
		one, err = hub.InstallFromRegistry(ctx, skillhub.RegistryInstallRequest{
			Slug:       installRegistry,
			Version:    installVersion,
			Tag:        installTag,
			SkillsRoot: root,
			Force:      installForce,
		})
		if err == nil {
			installed = append(installed, one)
		}
	case installCatalog != "":
		installed, err = hub.InstallFromCatalog(ctx, skillhub.CatalogInstallRequest{
			SlugOrQuery: installCatalog,
			SkillsRoot:  root,
			Force:       installForce,
		})
	default:
		installed, err = hub.InstallFromSource(ctx, skillhub.SourceInstallRequest{
			Source:       args[0],
			SkillFilters: installSkills,
			SkillsRoot:   root,
			Force:        installForce,
		})
	}

	for _, s := range installed {
		entry := historyEntry(fmt.Sprintf("Installed skill %s from %s", s.InstallName, s.Source))
		if logErr := c.Memory().AppendHistory(entry); logErr != nil {
			slog.Warn("failed to record install in history", "skill", s.InstallName, "err", logErr)
		}
	}

	out := cmd.OutOrStdout()
	if installJSON {
		if jsonErr := writeJSON(out, installed); jsonErr != nil {
			return jsonErr
		}
		return err
	}
	for _, s := range installed {
		line := fmt.Sprintf("✓ Installed %s -> %s", s.InstallName, s.Path)
		if s.Version != "" {
			line += " (v" + s.Version + ")"
		}
		fmt.Fprintln(out, line)
	}
	return err
}
