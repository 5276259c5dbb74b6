package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect and edit the agent's memory files",
}

var memoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the memory context injected into the system prompt",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		text := c.Memory().GetMemoryContext(c.Config().Memory.MaxContextChars)
		if text == "" {
			text = "(memory is empty)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var memoryNoteCmd = &cobra.Command{
	Use:   "note <fact>...",
	Short: "Add one dated note per argument to MEMORY.md",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		if err := c.Memory().AppendExtractedFacts(args); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Noted %d fact(s) in %s\n", len(args), c.Memory().Dir())
		return nil
	},
}

var memoryLogCmd = &cobra.Command{
	Use:   "log <entry>",
	Short: "Append a timestamped entry to HISTORY.md",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		if err := c.Memory().AppendHistory(historyEntry(strings.Join(args, " "))); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged")
		return nil
	},
}

func init() {
	memoryCmd.AddCommand(memoryShowCmd)
	memoryCmd.AddCommand(memoryNoteCmd)
	memoryCmd.AddCommand(memoryLogCmd)
}

func historyEntry(text string) string {
	return fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04"), text)
}
