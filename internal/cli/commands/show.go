package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dialogkit/topiclint/internal/tui"
	"github.com/dialogkit/topiclint/pkg/topic"
	"github.com/dialogkit/topiclint/pkg/topic/diag"
)

func ShowCmd() *cobra.Command {
	var (
		allowUnknown bool
		component    bool
	)
	cmd := &cobra.Command{
		Use:          "show <file>",
		Short:        "Print a topic's structure as a tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ReadTopicSource(args[0], component)
			if err != nil {
				return err
			}

			doc, diags := topic.Check(src, topic.Options{
				AllowUnknownEntityKinds: envAllowUnknown(allowUnknown),
			})
			if doc == nil {
				out, rerr := diag.Render(diags, diag.FormatText)
				if rerr != nil {
					return rerr
				}
				fmt.Fprint(cmd.ErrOrStderr(), out)
				return fmt.Errorf("%s has errors", args[0])
			}

			byPath := make(map[string][]diag.Diagnostic)
			for _, d := range diags {
				byPath[d.Path] = append(byPath[d.Path], d)
			}

			for _, row := range tui.Flatten(doc) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n",
					strings.Repeat("  ", row.Depth), row.Label)
				for _, d := range byPath[row.Path] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  ^ %s [%s] %s\n",
						strings.Repeat("  ", row.Depth), d.Severity, d.Code, d.Message)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowUnknown, "allow-unknown-entities", false, "Accept entity kinds outside the prebuilt set")
	cmd.Flags().BoolVar(&component, "component", false, "Input is a botcomponent JSON record")
	return cmd
}
