package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/aipaste/aipaste/internal/config"
	"github.com/aipaste/aipaste/internal/detect"
	"github.com/aipaste/aipaste/internal/snapshot"
	"github.com/aipaste/aipaste/internal/tokenizer"
	"github.com/aipaste/aipaste/internal/types"
	"github.com/aipaste/aipaste/internal/utils"
)

const (
	snapUse              = "snap"
	snapShortDescription = "save a project snapshot to a markdown file"
	snapLongDescription  = `Write the snapshot document to a markdown file.
The file name defaults to the project directory name with a _source.md
suffix. An existing file prompts for confirmation unless --force is given.`
	snapUsageExample = `  # Snapshot the current directory
  aipaste snap

  # Snapshot another project and append token estimates
  aipaste snap --path ../service --tokens`

	pathFlagName               = "path"
	pathFlagShorthand          = "p"
	pathFlagDescription        = "path to the project directory"
	outputFlagName             = "output"
	outputFlagShorthand        = "o"
	outputFlagDescription      = "output markdown file (default: {project-dir}_source.md)"
	summaryFlagName            = "summary"
	summaryFlagDescription     = "show project statistics after the run"
	tokensFlagName             = "tokens"
	tokensFlagDescription      = "append token estimates to the document"
	maxFileSizeFlagName        = "max-file-size"
	maxFileSizeFlagDescription = "maximum file size in bytes"
	forceFlagName              = "force"
	forceFlagShorthand         = "f"
	forceFlagDescription       = "overwrite an existing output file without asking"
	skipCommonFlagName         = "skip-common"
	skipCommonFlagDescription  = "skip commonly referenced files (LICENSE, CONTRIBUTING, etc.)"
	skipFilesFlagName          = "skip-files"
	skipFilesFlagDescription   = "additional files or patterns to skip"

	creatingSnapshotMessage     = "Creating project snapshot..."
	snapshotCreatedFormat       = "Snapshot created at %s\n"
	snapshotWriteErrorFormat    = "write snapshot to %s: %w"
	overwritePromptFormat       = "\nFile %s already exists. Overwrite? [y/N]: "
	operationCancelledMessage   = "Operation cancelled."
	overwriteRefusedErrorFormat = "output file %s already exists; pass --force to overwrite"

	statisticsHeading         = "\nProject Statistics:"
	statisticsTotalFormat     = "  • Total files scanned: %d\n"
	statisticsIncludedFormat  = "  • Files included: %d\n"
	statisticsBinaryFormat    = "  • Binary files: %d\n"
	statisticsIgnoredFormat   = "  • Ignored files: %d\n"
	statisticsSizeFormat      = "  • Total size: %s\n"
	statisticsLanguagesFormat = "  • Languages: %s\n"
)

// snapFlagValues holds the snap command flags after configuration overlay.
type snapFlagValues struct {
	projectPath string
	outputFile  string
	summary     bool
	tokens      bool
	maxFileSize int64
	force       bool
	skipCommon  bool
	skipFiles   []string
}

// createSnapCommand returns the snap subcommand.
func createSnapCommand(applicationLogger *zap.Logger, configurationFilePath *string) *cobra.Command {
	var flagValues snapFlagValues

	snapCommand := &cobra.Command{
		Use:     snapUse,
		Short:   snapShortDescription,
		Long:    snapLongDescription,
		Example: snapUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: *configurationFilePath})
			if configurationError != nil {
				return configurationError
			}
			applySnapConfiguration(command, &flagValues, applicationConfiguration.Snap)
			return runSnap(command, applicationLogger, flagValues)
		},
	}

	snapCommand.Flags().StringVarP(&flagValues.projectPath, pathFlagName, pathFlagShorthand, defaultPath, pathFlagDescription)
	snapCommand.Flags().StringVarP(&flagValues.outputFile, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	registerBooleanFlag(snapCommand.Flags(), &flagValues.summary, summaryFlagName, true, summaryFlagDescription)
	registerBooleanFlag(snapCommand.Flags(), &flagValues.tokens, tokensFlagName, false, tokensFlagDescription)
	snapCommand.Flags().Int64Var(&flagValues.maxFileSize, maxFileSizeFlagName, detect.DefaultSizeLimitBytes, maxFileSizeFlagDescription)
	snapCommand.Flags().BoolVarP(&flagValues.force, forceFlagName, forceFlagShorthand, false, forceFlagDescription)
	registerBooleanFlag(snapCommand.Flags(), &flagValues.skipCommon, skipCommonFlagName, false, skipCommonFlagDescription)
	snapCommand.Flags().StringArrayVar(&flagValues.skipFiles, skipFilesFlagName, nil, skipFilesFlagDescription)
	return snapCommand
}

// applySnapConfiguration fills flag values the user left untouched from the
// configuration file. Skip patterns accumulate instead of overriding.
func applySnapConfiguration(command *cobra.Command, flagValues *snapFlagValues, configuration config.SnapCommandConfiguration) {
	flags := command.Flags()
	if !flags.Changed(outputFlagName) && configuration.Output != "" {
		flagValues.outputFile = configuration.Output
	}
	if !flags.Changed(summaryFlagName) && configuration.Summary != nil {
		flagValues.summary = *configuration.Summary
	}
	if !flags.Changed(tokensFlagName) && configuration.Tokens != nil {
		flagValues.tokens = *configuration.Tokens
	}
	if !flags.Changed(maxFileSizeFlagName) && configuration.MaxFileSize != nil {
		flagValues.maxFileSize = *configuration.MaxFileSize
	}
	if !flags.Changed(skipCommonFlagName) && configuration.SkipCommon != nil {
		flagValues.skipCommon = *configuration.SkipCommon
	}
	flagValues.skipFiles = utils.DeduplicatePatterns(append(append([]string{}, configuration.SkipFiles...), flagValues.skipFiles...))
}

func runSnap(command *cobra.Command, applicationLogger *zap.Logger, flagValues snapFlagValues) error {
	outputPath, outputPathError := resolveSnapOutputPath(flagValues.projectPath, flagValues.outputFile)
	if outputPathError != nil {
		return outputPathError
	}

	if _, statError := os.Stat(outputPath); statError == nil && !flagValues.force {
		confirmed, confirmError := confirmOverwrite(command, outputPath)
		if confirmError != nil {
			return confirmError
		}
		if !confirmed {
			fmt.Fprintln(command.OutOrStdout(), operationCancelledMessage)
			return nil
		}
	}

	fmt.Fprintln(command.OutOrStdout(), creatingSnapshotMessage)

	builder := newSnapshotBuilder(applicationLogger, flagValues.tokens)
	result, buildError := builder.Build(snapshot.Options{
		ProjectRoot:    flagValues.projectPath,
		OutputFile:     outputPath,
		SizeLimitBytes: flagValues.maxFileSize,
		SkipCommon:     flagValues.skipCommon,
		SkipFiles:      flagValues.skipFiles,
		TokenEstimates: flagValues.tokens,
	})
	if buildError != nil {
		return buildError
	}

	if flagValues.summary {
		printRunSummary(command.OutOrStdout(), result.Statistics)
	}
	if writeError := os.WriteFile(outputPath, []byte(result.Document), 0o644); writeError != nil {
		return fmt.Errorf(snapshotWriteErrorFormat, outputPath, writeError)
	}
	fmt.Fprintf(command.OutOrStdout(), snapshotCreatedFormat, outputPath)
	return nil
}

// newSnapshotBuilder wires the token estimator when estimates were
// requested. Initialization failure degrades to a document without the
// estimates section.
func newSnapshotBuilder(applicationLogger *zap.Logger, tokenEstimatesEnabled bool) *snapshot.Builder {
	if !tokenEstimatesEnabled {
		return snapshot.NewBuilder(applicationLogger, nil)
	}
	estimator, estimatorError := tokenizer.NewEstimator()
	if estimatorError != nil {
		applicationLogger.Warn(fmt.Sprintf(tokenizerUnavailableWarningFormat, estimatorError))
		return snapshot.NewBuilder(applicationLogger, nil)
	}
	return snapshot.NewBuilder(applicationLogger, estimator)
}

// resolveSnapOutputPath derives the destination file, defaulting to the
// resolved project directory name with the _source.md suffix in the current
// working directory.
func resolveSnapOutputPath(projectPath string, outputFile string) (string, error) {
	if outputFile != "" {
		return outputFile, nil
	}
	absoluteProjectPath, absoluteError := filepath.Abs(projectPath)
	if absoluteError != nil {
		return "", fmt.Errorf("resolve project path %s: %w", projectPath, absoluteError)
	}
	return filepath.Base(absoluteProjectPath) + outputFileNameSuffix, nil
}

// confirmOverwrite asks before clobbering an existing output file. Runs
// without a terminal on stdin cannot ask and must pass --force instead.
func confirmOverwrite(command *cobra.Command, outputPath string) (bool, error) {
	standardInput, isFile := command.InOrStdin().(*os.File)
	if !isFile || !term.IsTerminal(int(standardInput.Fd())) {
		return false, fmt.Errorf(overwriteRefusedErrorFormat, outputPath)
	}
	fmt.Fprintf(command.OutOrStdout(), overwritePromptFormat, outputPath)
	answer, readError := bufio.NewReader(standardInput).ReadString('\n')
	if readError != nil && answer == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// printRunSummary renders the statistics block shown after a snap run.
func printRunSummary(writer io.Writer, statistics *types.SnapshotStatistics) {
	fmt.Fprintln(writer, statisticsHeading)
	fmt.Fprintf(writer, statisticsTotalFormat, statistics.TotalFiles)
	fmt.Fprintf(writer, statisticsIncludedFormat, statistics.IncludedFiles)
	fmt.Fprintf(writer, statisticsBinaryFormat, statistics.BinaryFiles)
	fmt.Fprintf(writer, statisticsIgnoredFormat, statistics.IgnoredFiles)
	fmt.Fprintf(writer, statisticsSizeFormat, utils.FormatFileSize(statistics.TotalSizeBytes))
	fmt.Fprintf(writer, statisticsLanguagesFormat, strings.Join(statistics.Languages(), ", "))
}
