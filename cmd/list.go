package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list <source>",
	Short: "List the skills a source provides without installing them",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print skills as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	found, err := c.Hub().ListSource(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		return writeJSON(out, found)
	}
	fmt.Fprintf(out, "%-30s %s\n", "NAME", "DIRECTORY")
	for _, s := range found {
		name := s.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(out, "%-30s %s\n", name, s.Directory)
	}
	return nil
}
