// Package cli provides the aipaste command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aipaste/aipaste/internal/services/clipboard"
	"github.com/aipaste/aipaste/internal/snapshot"
	"github.com/aipaste/aipaste/internal/utils"
)

const (
	rootUse              = "aipaste"
	rootShortDescription = "format project source code for AI assistants"
	rootLongDescription  = `aipaste walks a project tree and emits a single markdown document:
a directory listing followed by every text file in a fenced code block.
Run it bare to copy a snapshot of the current directory to the clipboard.
Use snap to write a file, stream to write stdout, and tokens to estimate
how much of a model context window a snapshot consumes.`

	versionFlagName        = "version"
	versionFlagDescription = "display application version"
	versionTemplate        = "aipaste version: %s\n"

	configFlagName        = "config"
	configFlagDescription = "path to an explicit configuration file"

	defaultPath          = "."
	outputFileNameSuffix = "_source.md"

	clipboardSuccessMessage           = "Project snapshot copied to clipboard!"
	clipboardFallbackWarningFormat    = "Clipboard unavailable (%v); writing the snapshot to stdout"
	tokenizerUnavailableWarningFormat = "Token estimation unavailable: %v"
)

// Execute runs the aipaste application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(applicationLogger, clipboard.NewService())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root cobra command and attaches every verb.
// The generated cobra completion command is disabled; the completion verb
// serves the embedded scripts instead.
func createRootCommand(applicationLogger *zap.Logger, clipboardCopier clipboard.Copier) *cobra.Command {
	var showVersion bool
	var configurationFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runRootSnapshot(command, applicationLogger, clipboardCopier)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationFilePath, configFlagName, "", configFlagDescription)
	rootCommand.CompletionOptions.DisableDefaultCmd = true
	rootCommand.AddCommand(
		createSnapCommand(applicationLogger, &configurationFilePath),
		createStreamCommand(applicationLogger, &configurationFilePath),
		createTokensCommand(applicationLogger),
		createCompletionCommand(),
		createInitCommand(),
	)
	return rootCommand
}

// runRootSnapshot assembles a default snapshot of the current directory and
// places it on the clipboard. When no clipboard is reachable the document
// goes to stdout so the run still produces something usable.
func runRootSnapshot(command *cobra.Command, applicationLogger *zap.Logger, clipboardCopier clipboard.Copier) error {
	builder := snapshot.NewBuilder(applicationLogger, nil)
	result, buildError := builder.Build(snapshot.Options{ProjectRoot: defaultPath})
	if buildError != nil {
		return buildError
	}
	if copyError := clipboardCopier.Copy(result.Document); copyError != nil {
		applicationLogger.Warn(fmt.Sprintf(clipboardFallbackWarningFormat, copyError))
		fmt.Fprint(command.OutOrStdout(), result.Document)
		return nil
	}
	fmt.Fprintln(command.ErrOrStderr(), clipboardSuccessMessage)
	return nil
}
