package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	toolArgs string
	toolList bool
)

var toolCmd = &cobra.Command{
	Use:   "tool [name]",
	Short: "Run one of the agent's tools, or list their definitions",
	Example: `  skillhub tool --list
  skillhub tool remember --args '{"content":"Prefers Go"}'
  skillhub tool memory_search --args '{"query":"go"}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTool,
}

func init() {
	toolCmd.Flags().StringVar(&toolArgs, "args", "{}", "Tool arguments as a JSON object")
	toolCmd.Flags().BoolVar(&toolList, "list", false, "Print tool definitions in OpenAI function format")
}

func runTool(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	list := c.Tools().AllTools()
	out := cmd.OutOrStdout()

	if toolList || len(args) == 0 {
		return writeJSON(out, list.Definitions())
	}

	var params map[string]any
	if err := json.Unmarshal([]byte(toolArgs), &params); err != nil {
		return fmt.Errorf("invalid --args JSON: %w", err)
	}
	result, err := list.Execute(cmd.Context(), args[0], params)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result)
	return nil
}
