// Package config loads aipaste's layered configuration files and the
// project's root gitignore patterns.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aipaste/aipaste/internal/utils"
)

// negatedPatternWarningFormat reports a gitignore negation that was dropped.
const negatedPatternWarningFormat = "Skipping unsupported negated pattern %q in %s"

// LoadGitignorePatterns reads the gitignore file at the project root and
// returns its patterns in file order. A missing file yields no patterns and
// no error. Blank lines and comments are skipped. Negated patterns are not
// supported; each one is logged and dropped.
//
// #nosec G304
func LoadGitignorePatterns(projectRoot string, logger *zap.Logger) ([]string, error) {
	gitignorePath := filepath.Join(projectRoot, utils.GitIgnoreFileName)
	fileHandle, openFileError := os.Open(gitignorePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", gitignorePath, closeError)
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		if strings.HasPrefix(trimmedLine, "!") {
			logger.Warn(fmt.Sprintf(negatedPatternWarningFormat, trimmedLine, gitignorePath))
			continue
		}
		patterns = append(patterns, strings.TrimPrefix(trimmedLine, "./"))
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}
