package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aipaste/aipaste/internal/completion"
)

const (
	completionUse              = "completion <shell>"
	completionShortDescription = "print a shell completion script"
	completionLongDescription  = `Print the completion script for bash, zsh, or fish.
Load it from your shell profile, for example:
  source <(aipaste completion bash)`
)

// createCompletionCommand returns the completion subcommand serving the
// embedded per-shell scripts.
func createCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:       completionUse,
		Short:     completionShortDescription,
		Long:      completionLongDescription,
		ValidArgs: completion.Shells(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(command *cobra.Command, arguments []string) error {
			script, scriptError := completion.Script(arguments[0])
			if scriptError != nil {
				return scriptError
			}
			fmt.Fprint(command.OutOrStdout(), script)
			return nil
		},
	}
}
