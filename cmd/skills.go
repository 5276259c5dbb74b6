package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/skillhub/internal/shared/stringutils"
)

var skillsAll bool

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show the installed skills the agent can use",
	RunE:  runSkills,
}

func init() {
	skillsCmd.Flags().BoolVarP(&skillsAll, "all", "a", false, "Include skills that are unavailable on this machine")
}

func runSkills(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	mgr := c.SkillManager()
	out := cmd.OutOrStdout()

	list := mgr.ListAvailable()
	if skillsAll {
		list = mgr.ListAll()
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No skills installed.")
		return nil
	}

	fmt.Fprintf(out, "%-24s %-16s %-10s %s\n", "NAME", "SOURCE", "STATUS", "DESCRIPTION")
	for _, s := range list {
		status := "ready"
		if gateErr := mgr.CheckGates(s); gateErr != nil {
			status = "blocked"
			if missing := mgr.MissingDeps(s); len(missing) > 0 {
				status = "missing: " + strings.Join(missing, ",")
			}
		}
		fmt.Fprintf(out, "%-24s %-16s %-10s %s\n", column(s.Name, 23), column(s.Source, 15), status, s.Description)
	}
	return nil
}

// column fits s into a table column of width bytes without splitting a rune.
func column(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return stringutils.Truncate(s, width-3)
}
