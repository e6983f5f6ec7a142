package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialogkit/topiclint/pkg/topic"
)

func NewCmd() *cobra.Command {
	var (
		name     string
		triggers []string
		message  string
		output   string
	)
	cmd := &cobra.Command{
		Use:          "new",
		Short:        "Scaffold a minimal valid topic",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := topic.ScaffoldYAML(name, triggers, message)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), string(out))
				return nil
			}
			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("%s already exists", output)
			}
			return os.WriteFile(output, out, 0o644)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Topic display name")
	cmd.Flags().StringSliceVar(&triggers, "trigger", nil, "Trigger phrase (repeatable)")
	cmd.Flags().StringVar(&message, "message", "", "Initial message the topic sends")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("trigger")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
