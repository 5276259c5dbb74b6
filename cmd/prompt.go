package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the system prompt with memory and the skills catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.ContextBuilder().BuildSystemPrompt())
		return nil
	},
}
