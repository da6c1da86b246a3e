package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aipaste/aipaste/internal/tokenizer"
	"github.com/aipaste/aipaste/internal/utils"
)

const (
	tokensUse              = "tokens [file]"
	tokensShortDescription = "analyze a snapshot file and estimate token usage"
	tokensLongDescription  = `Read a snapshot produced by snap and print its size statistics along
with estimated token usage for each supported model. Without an argument
the default snapshot name of the current directory is assumed.`
	tokensUsageExample = `  # Analyze the default snapshot of the current directory
  aipaste tokens

  # Analyze a specific file
  aipaste tokens service_source.md`

	missingSnapshotErrorFormat = "no project snapshot found at '%s'; run `aipaste snap` or provide a file name"
	snapshotReadErrorFormat    = "read snapshot %s: %w"

	fileStatisticsHeading  = "\nProject File Statistics"
	fileNameLineFormat     = "  • File Name: %s\n"
	charactersLineFormat   = "  • Characters: %s\n"
	linesLineFormat        = "  • Lines: %s\n"
	codeBlocksLineFormat   = "  • Code Blocks: %d\n"
	modelEstimatesHeading  = "\nModel-Specific Token Estimates:"
	modelTokensLineFormat  = "  • %s: %s tokens\n"
	modelContextLineFormat = "     ↳ Max Context: %s  |  Usage: %.1f%%  |  Remaining: %s\n"
	tokenReportNote        = "\nNote: All values are approximate and may vary by actual model version or usage.\n"
)

// createTokensCommand returns the tokens subcommand.
func createTokensCommand(applicationLogger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     tokensUse,
		Short:   tokensShortDescription,
		Long:    tokensLongDescription,
		Example: tokensUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			snapshotPath, pathError := resolveTokensFilePath(arguments)
			if pathError != nil {
				return pathError
			}
			content, readError := os.ReadFile(snapshotPath)
			if readError != nil {
				if os.IsNotExist(readError) {
					return fmt.Errorf(missingSnapshotErrorFormat, snapshotPath)
				}
				return fmt.Errorf(snapshotReadErrorFormat, snapshotPath, readError)
			}

			text := string(content)
			printFileStatistics(command.OutOrStdout(), filepath.Base(snapshotPath), tokenizer.AnalyzeSnapshotText(text))

			estimator, estimatorError := tokenizer.NewEstimator()
			if estimatorError != nil {
				applicationLogger.Warn(fmt.Sprintf(tokenizerUnavailableWarningFormat, estimatorError))
				return nil
			}
			printTokenReport(command.OutOrStdout(), estimator.Estimate(text))
			return nil
		},
	}
}

// resolveTokensFilePath picks the explicit argument or the default snapshot
// name derived from the working directory.
func resolveTokensFilePath(arguments []string) (string, error) {
	if len(arguments) > 0 && arguments[0] != "" {
		return arguments[0], nil
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf("determine working directory: %w", workingDirectoryError)
	}
	return filepath.Base(workingDirectory) + outputFileNameSuffix, nil
}

// printFileStatistics renders the plain-text measurements of the snapshot.
func printFileStatistics(writer io.Writer, fileName string, analysis tokenizer.SnapshotAnalysis) {
	fmt.Fprintln(writer, fileStatisticsHeading)
	fmt.Fprintf(writer, fileNameLineFormat, fileName)
	fmt.Fprintf(writer, charactersLineFormat, utils.FormatThousands(analysis.Characters))
	fmt.Fprintf(writer, linesLineFormat, utils.FormatThousands(analysis.Lines))
	fmt.Fprintf(writer, codeBlocksLineFormat, analysis.CodeBlocks)
}

// printTokenReport renders the per-model estimate table with context usage.
func printTokenReport(writer io.Writer, report tokenizer.Report) {
	fmt.Fprintln(writer, modelEstimatesHeading)
	for _, estimate := range report {
		fmt.Fprintf(writer, modelTokensLineFormat, estimate.Model, utils.FormatThousands(estimate.Tokens))
		fmt.Fprintf(writer, modelContextLineFormat, utils.FormatThousands(estimate.MaxContext), estimate.UsagePercent, utils.FormatThousands(estimate.Remaining))
	}
	fmt.Fprintln(writer, tokenReportNote)
}
