package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crystaldolphin/skillhub/internal/tools"
)

const defaultRenderWidth = 100

var activateRaw bool

var activateCmd = &cobra.Command{
	Use:   "activate <skill>",
	Short: "Print a skill's instructions exactly as the agent receives them",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivate,
}

func init() {
	activateCmd.Flags().BoolVar(&activateRaw, "raw", false, "Print plain markdown even on a terminal")
}

func runActivate(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	text, err := c.Tools().GetTool(tools.ToolActivateSkill).Execute(cmd.Context(), map[string]any{"skill_name": args[0]})
	if err != nil {
		return err
	}
	if msg, ok := strings.CutPrefix(text, "Error: "); ok {
		return errors.New(msg)
	}

	out := cmd.OutOrStdout()
	if !activateRaw && out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, renderErr := renderMarkdown(text, terminalWidth()); renderErr == nil {
			fmt.Fprint(out, rendered)
			return nil
		}
	}
	fmt.Fprintln(out, text)
	return nil
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultRenderWidth
	}
	return min(w, defaultRenderWidth)
}
