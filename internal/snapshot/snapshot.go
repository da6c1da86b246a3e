// Package snapshot assembles the paste-ready markdown document from a
// project tree. One canonical byte format is shared by in-memory assembly
// and streaming; the document is the newline-join of ordered pieces.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/aipaste/aipaste/internal/config"
	"github.com/aipaste/aipaste/internal/detect"
	"github.com/aipaste/aipaste/internal/ignore"
	"github.com/aipaste/aipaste/internal/tokenizer"
	"github.com/aipaste/aipaste/internal/types"
	"github.com/aipaste/aipaste/internal/utils"
)

const (
	documentHeaderPiece       = "# Project Source Code\n"
	structureHeadingPiece     = "## Project Structure"
	fileHeadingFormat         = "\n## %s\n"
	fenceOpenFormat           = "```%s"
	fenceClosePiece           = "```\n"
	binaryPlaceholderPiece    = "*[Binary file]*\n"
	tokenHeadingPiece         = "\n## Token Estimates\n"
	tokenLineFormat           = "- %s: ~%s tokens"
	fileSkippedWarningFormat  = "Skipping %s: %v"
	fileEncodingWarningFormat = "Skipping %s: content is not valid UTF-8"
	estimatorUnavailableNote  = "Token estimation unavailable; omitting the estimates section"
)

// Options configures one snapshot run.
type Options struct {
	// ProjectRoot is the directory to snapshot; empty means the current
	// directory.
	ProjectRoot string
	// OutputFile is the destination the document will be written to, used
	// to exclude the file from its own snapshot. Empty when streaming.
	OutputFile string
	// SizeLimitBytes caps how large a file may be and still count as text.
	// Zero or negative selects the default limit.
	SizeLimitBytes int64
	// SkipCommon excludes well-known repository boilerplate by basename.
	SkipCommon bool
	// SkipFiles holds additional basename globs to exclude.
	SkipFiles []string
	// TokenEstimates appends the token-estimate section (Build only).
	TokenEstimates bool
}

// Result carries the document, its statistics, and the optional token
// report of one Build run.
type Result struct {
	Document   string
	Statistics *types.SnapshotStatistics
	Tokens     tokenizer.Report
}

// tokenEstimator is the slice of the tokenizer the assembler depends on.
type tokenEstimator interface {
	Estimate(text string) tokenizer.Report
}

// Builder assembles snapshot documents. The logger receives per-file
// warnings; the estimator may be nil when token estimates were not
// requested or could not be initialized.
type Builder struct {
	logger    *zap.Logger
	estimator tokenEstimator
}

// NewBuilder wires the assembler's collaborators.
func NewBuilder(logger *zap.Logger, estimator tokenEstimator) *Builder {
	return &Builder{logger: logger, estimator: estimator}
}

// pieceWriter emits document pieces separated by single newlines: nothing
// before the first piece, one separator between consecutive pieces,
// nothing after the last.
type pieceWriter struct {
	destination io.Writer
	wroteAny    bool
}

func (writer *pieceWriter) writePiece(piece string) error {
	if writer.wroteAny {
		if _, separatorError := io.WriteString(writer.destination, "\n"); separatorError != nil {
			return separatorError
		}
	}
	writer.wroteAny = true
	_, pieceError := io.WriteString(writer.destination, piece)
	return pieceError
}

// Stream writes the document to writer piece by piece and returns the run
// statistics. The bytes are identical to Build's document for the same
// options without token estimates.
func (builder *Builder) Stream(writer io.Writer, options Options) (*types.SnapshotStatistics, error) {
	return builder.assemble(&pieceWriter{destination: writer}, options)
}

// Build assembles the document in memory, appending the token-estimate
// section over the already assembled text when requested.
func (builder *Builder) Build(options Options) (Result, error) {
	var documentBuilder strings.Builder
	pieces := &pieceWriter{destination: &documentBuilder}
	statistics, assembleError := builder.assemble(pieces, options)
	if assembleError != nil {
		return Result{}, assembleError
	}
	result := Result{Statistics: statistics}
	if options.TokenEstimates {
		result.Tokens = builder.estimateTokens(documentBuilder.String())
		if sectionError := writeTokenSection(pieces, result.Tokens); sectionError != nil {
			return Result{}, sectionError
		}
	}
	result.Document = documentBuilder.String()
	return result, nil
}

func (builder *Builder) assemble(pieces *pieceWriter, options Options) (*types.SnapshotStatistics, error) {
	projectRoot, rootError := resolveProjectRoot(options.ProjectRoot)
	if rootError != nil {
		return nil, rootError
	}
	sizeLimit := options.SizeLimitBytes
	if sizeLimit <= 0 {
		sizeLimit = detect.DefaultSizeLimitBytes
	}

	gitignorePatterns, gitignoreError := config.LoadGitignorePatterns(projectRoot, builder.logger)
	if gitignoreError != nil {
		return nil, fmt.Errorf("read gitignore in %s: %w", projectRoot, gitignoreError)
	}
	matcher := ignore.NewMatcher(ignore.Options{
		ProjectRoot:   projectRoot,
		OutputFile:    options.OutputFile,
		SkipCommon:    options.SkipCommon,
		SkipFiles:     options.SkipFiles,
		ExtraPatterns: gitignorePatterns,
	})

	entries, collectError := builder.collectEntries(projectRoot)
	if collectError != nil {
		return nil, collectError
	}

	for _, headerPiece := range []string{documentHeaderPiece, structureHeadingPiece, renderTree(entries, matcher), ""} {
		if writeError := pieces.writePiece(headerPiece); writeError != nil {
			return nil, writeError
		}
	}

	statistics := types.NewSnapshotStatistics()
	for _, entry := range entries {
		if entry.IsDirectory {
			continue
		}
		statistics.TotalFiles++
		if matcher.IsExcluded(entry.RelativePath) {
			statistics.IgnoredFiles++
			continue
		}
		if sectionError := builder.writeFileSection(pieces, projectRoot, entry, sizeLimit, statistics); sectionError != nil {
			return nil, sectionError
		}
	}
	return statistics, nil
}

// collectEntries walks the whole project without pruning so the total file
// count reflects everything on disk, then sorts by relative path to fix
// the tree and section order.
func (builder *Builder) collectEntries(projectRoot string) ([]types.FileEntry, error) {
	var entries []types.FileEntry
	walkError := filepath.WalkDir(projectRoot, func(currentPath string, directoryEntry os.DirEntry, entryError error) error {
		if entryError != nil {
			if currentPath == projectRoot {
				return entryError
			}
			builder.logger.Warn(fmt.Sprintf(fileSkippedWarningFormat, currentPath, entryError))
			return nil
		}
		if currentPath == projectRoot {
			return nil
		}
		relativePath, relativeError := filepath.Rel(projectRoot, currentPath)
		if relativeError != nil {
			builder.logger.Warn(fmt.Sprintf(fileSkippedWarningFormat, currentPath, relativeError))
			return nil
		}
		entries = append(entries, types.FileEntry{
			RelativePath: filepath.ToSlash(relativePath),
			IsDirectory:  directoryEntry.IsDir(),
		})
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf("walk project %s: %w", projectRoot, walkError)
	}
	sort.Slice(entries, func(first, second int) bool {
		return entries[first].RelativePath < entries[second].RelativePath
	})
	return entries, nil
}

// writeFileSection classifies one file and emits its document section. A
// file whose full read fails or decodes as non-UTF-8 after a passing sniff
// gets no section and counts as ignored so the statistics still sum.
func (builder *Builder) writeFileSection(pieces *pieceWriter, projectRoot string, entry types.FileEntry, sizeLimit int64, statistics *types.SnapshotStatistics) error {
	absolutePath := filepath.Join(projectRoot, filepath.FromSlash(entry.RelativePath))
	if detect.Classify(absolutePath, sizeLimit) == types.ClassificationBinary {
		statistics.BinaryFiles++
		if headingError := pieces.writePiece(fmt.Sprintf(fileHeadingFormat, entry.RelativePath)); headingError != nil {
			return headingError
		}
		return pieces.writePiece(binaryPlaceholderPiece)
	}

	content, readError := os.ReadFile(absolutePath)
	if readError != nil {
		builder.logger.Warn(fmt.Sprintf(fileSkippedWarningFormat, entry.RelativePath, readError))
		statistics.IgnoredFiles++
		return nil
	}
	if !utf8.Valid(content) {
		builder.logger.Warn(fmt.Sprintf(fileEncodingWarningFormat, entry.RelativePath))
		statistics.IgnoredFiles++
		return nil
	}

	languageTag := detect.Language(absolutePath)
	statistics.IncludedFiles++
	statistics.TotalSizeBytes += int64(len(content))
	statistics.RecordLanguage(languageTag)

	for _, sectionPiece := range []string{
		fmt.Sprintf(fileHeadingFormat, entry.RelativePath),
		fmt.Sprintf(fenceOpenFormat, languageTag),
		string(content),
		fenceClosePiece,
	} {
		if writeError := pieces.writePiece(sectionPiece); writeError != nil {
			return writeError
		}
	}
	return nil
}

func (builder *Builder) estimateTokens(document string) tokenizer.Report {
	if builder.estimator == nil {
		builder.logger.Warn(estimatorUnavailableNote)
		return nil
	}
	return builder.estimator.Estimate(document)
}

// writeTokenSection appends the token heading and one line per model. An
// empty report writes nothing.
func writeTokenSection(pieces *pieceWriter, report tokenizer.Report) error {
	if len(report) == 0 {
		return nil
	}
	if headingError := pieces.writePiece(tokenHeadingPiece); headingError != nil {
		return headingError
	}
	for _, estimate := range report {
		line := fmt.Sprintf(tokenLineFormat, estimate.Model, utils.FormatThousands(estimate.Tokens))
		if lineError := pieces.writePiece(line); lineError != nil {
			return lineError
		}
	}
	return nil
}

func resolveProjectRoot(projectRoot string) (string, error) {
	if projectRoot == "" {
		projectRoot = "."
	}
	absoluteRoot, absoluteError := filepath.Abs(projectRoot)
	if absoluteError != nil {
		return "", fmt.Errorf("resolve project path %s: %w", projectRoot, absoluteError)
	}
	rootInformation, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return "", fmt.Errorf("project path %s is not accessible: %w", projectRoot, statError)
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf("project path %s is not a directory", projectRoot)
	}
	return absoluteRoot, nil
}
