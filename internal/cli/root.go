// Package cli wires the topiclint commands together.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dialogkit/topiclint/internal/cli/commands"
	"github.com/dialogkit/topiclint/internal/tui"
	"github.com/dialogkit/topiclint/pkg/topic"
	"github.com/dialogkit/topiclint/pkg/topic/diag"
)

func Execute() error {
	return NewRoot().Execute()
}

var runTUI = func(filename string, doc *topic.Document, diags []diag.Diagnostic) error {
	m := tui.NewModel(filename, doc, diags)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "topiclint",
		Short:        "Validate and format Copilot Studio topic definitions",
		SilenceUsage: true,
	}
	root.AddCommand(
		commands.ValidateCmd(),
		commands.FmtCmd(),
		commands.NewCmd(),
		commands.ShowCmd(),
		BrowseCmd(),
	)
	return root
}

// BrowseCmd opens the interactive browser on a topic file. It lives here
// rather than in commands because it needs the bubbletea program hook.
func BrowseCmd() *cobra.Command {
	var allowUnknown bool
	var component bool
	cmd := &cobra.Command{
		Use:          "browse <file>",
		Short:        "Browse a topic interactively",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := commands.ReadTopicSource(args[0], component)
			if err != nil {
				return err
			}
			doc, diags := topic.Check(src, topic.Options{AllowUnknownEntityKinds: allowUnknown})
			diag.Sort(diags)
			return runTUI(args[0], doc, diags)
		},
	}
	cmd.Flags().BoolVar(&allowUnknown, "allow-unknown-entities", false, "Accept entity kinds outside the prebuilt set")
	cmd.Flags().BoolVar(&component, "component", false, "Input is a botcomponent JSON record")
	return cmd
}
