package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aipaste/aipaste/internal/utils"
)

func TestLoadGitignorePatterns(t *testing.T) {
	projectRoot := t.TempDir()
	gitignoreContent := "# build artifacts\n\nnode_modules/\n*.log\n!keep.log\n./relative.txt\n  spaced.txt  \n"
	if err := os.WriteFile(filepath.Join(projectRoot, utils.GitIgnoreFileName), []byte(gitignoreContent), 0o600); err != nil {
		t.Fatalf("write gitignore: %v", err)
	}

	patterns, err := LoadGitignorePatterns(projectRoot, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadGitignorePatterns error: %v", err)
	}

	expected := []string{"node_modules/", "*.log", "relative.txt", "spaced.txt"}
	if len(patterns) != len(expected) {
		t.Fatalf("expected patterns %v, got %v", expected, patterns)
	}
	for index, pattern := range expected {
		if patterns[index] != pattern {
			t.Fatalf("expected patterns %v, got %v", expected, patterns)
		}
	}
}

func TestLoadGitignorePatternsMissingFile(t *testing.T) {
	patterns, err := LoadGitignorePatterns(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("a missing gitignore is not an error: %v", err)
	}
	if patterns != nil {
		t.Fatalf("missing gitignore should yield no patterns, got %v", patterns)
	}
}
