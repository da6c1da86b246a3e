package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aipaste/aipaste/internal/config"
	"github.com/aipaste/aipaste/internal/detect"
	"github.com/aipaste/aipaste/internal/snapshot"
	"github.com/aipaste/aipaste/internal/utils"
)

const (
	streamUse              = "stream"
	streamShortDescription = "stream a project snapshot to stdout for piping"
	streamLongDescription  = `Write the snapshot document to stdout and nothing else.
Warnings go to stderr so the output stays safe to pipe or redirect.`
	streamUsageExample = `  # Pipe a snapshot straight into another tool
  aipaste stream | wl-copy

  # Redirect into a file
  aipaste stream --path ../service > service.md`
)

// streamFlagValues holds the stream command flags after configuration overlay.
type streamFlagValues struct {
	projectPath string
	maxFileSize int64
	skipCommon  bool
	skipFiles   []string
}

// createStreamCommand returns the stream subcommand.
func createStreamCommand(applicationLogger *zap.Logger, configurationFilePath *string) *cobra.Command {
	var flagValues streamFlagValues

	streamCommand := &cobra.Command{
		Use:     streamUse,
		Short:   streamShortDescription,
		Long:    streamLongDescription,
		Example: streamUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: *configurationFilePath})
			if configurationError != nil {
				return configurationError
			}
			applyStreamConfiguration(command, &flagValues, applicationConfiguration.Stream)

			builder := snapshot.NewBuilder(applicationLogger, nil)
			_, streamError := builder.Stream(command.OutOrStdout(), snapshot.Options{
				ProjectRoot:    flagValues.projectPath,
				SizeLimitBytes: flagValues.maxFileSize,
				SkipCommon:     flagValues.skipCommon,
				SkipFiles:      flagValues.skipFiles,
			})
			return streamError
		},
	}

	streamCommand.Flags().StringVarP(&flagValues.projectPath, pathFlagName, pathFlagShorthand, defaultPath, pathFlagDescription)
	streamCommand.Flags().Int64Var(&flagValues.maxFileSize, maxFileSizeFlagName, detect.DefaultSizeLimitBytes, maxFileSizeFlagDescription)
	registerBooleanFlag(streamCommand.Flags(), &flagValues.skipCommon, skipCommonFlagName, false, skipCommonFlagDescription)
	streamCommand.Flags().StringArrayVar(&flagValues.skipFiles, skipFilesFlagName, nil, skipFilesFlagDescription)
	return streamCommand
}

// applyStreamConfiguration fills flag values the user left untouched from
// the configuration file.
func applyStreamConfiguration(command *cobra.Command, flagValues *streamFlagValues, configuration config.StreamCommandConfiguration) {
	flags := command.Flags()
	if !flags.Changed(maxFileSizeFlagName) && configuration.MaxFileSize != nil {
		flagValues.maxFileSize = *configuration.MaxFileSize
	}
	if !flags.Changed(skipCommonFlagName) && configuration.SkipCommon != nil {
		flagValues.skipCommon = *configuration.SkipCommon
	}
	flagValues.skipFiles = utils.DeduplicatePatterns(append(append([]string{}, configuration.SkipFiles...), flagValues.skipFiles...))
}
