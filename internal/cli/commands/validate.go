// Package commands implements the topiclint subcommands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialogkit/topiclint/pkg/topic"
	"github.com/dialogkit/topiclint/pkg/topic/diag"
)

// ReadTopicSource reads a topic file. When component is true the file is
// treated as a botcomponent JSON record and the embedded YAML is extracted.
func ReadTopicSource(path string, component bool) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if component {
		return topic.ExtractComponentYAML(src)
	}
	return src, nil
}

// envFormat resolves the output format: the --json flag wins, then the
// TOPICLINT_FORMAT environment variable, then text.
func envFormat(jsonFlag bool) diag.Format {
	if jsonFlag {
		return diag.FormatJSON
	}
	if os.Getenv("TOPICLINT_FORMAT") == "json" {
		return diag.FormatJSON
	}
	return diag.FormatText
}

func envAllowUnknown(flag bool) bool {
	if flag {
		return true
	}
	return os.Getenv("TOPICLINT_ALLOW_UNKNOWN_ENTITIES") == "1"
}

func ValidateCmd() *cobra.Command {
	var (
		jsonOut      bool
		quiet        bool
		allowUnknown bool
		component    bool
	)
	cmd := &cobra.Command{
		Use:          "validate <file>...",
		Short:        "Validate topic definitions",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := envFormat(jsonOut)
			opts := topic.Options{AllowUnknownEntityKinds: envAllowUnknown(allowUnknown)}

			failed := false
			for _, path := range args {
				src, err := ReadTopicSource(path, component)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed = true
					continue
				}

				_, diags := topic.Check(src, opts)
				if diag.HasErrors(diags) {
					failed = true
				}

				if quiet && !diag.HasErrors(diags) {
					continue
				}
				out, err := diag.Render(diags, format)
				if err != nil {
					return err
				}
				if len(args) > 1 && format == diag.FormatText && out != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", path)
				}
				if out != "" {
					fmt.Fprintln(cmd.OutOrStdout(), out)
				}
			}

			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit diagnostics as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report files with errors")
	cmd.Flags().BoolVar(&allowUnknown, "allow-unknown-entities", false, "Accept entity kinds outside the prebuilt set")
	cmd.Flags().BoolVar(&component, "component", false, "Inputs are botcomponent JSON records")
	return cmd
}
