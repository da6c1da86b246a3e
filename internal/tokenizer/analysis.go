package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// SnapshotAnalysis summarizes the raw shape of a snapshot document.
type SnapshotAnalysis struct {
	Characters int
	Lines      int
	CodeBlocks int
}

// AnalyzeSnapshotText computes document statistics for the tokens command.
// Characters count runes, not bytes. A trailing newline does not open a
// final empty line. Code blocks are counted as fence-marker lines halved.
func AnalyzeSnapshotText(text string) SnapshotAnalysis {
	analysis := SnapshotAnalysis{Characters: utf8.RuneCountInString(text)}
	if text == "" {
		return analysis
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	fenceLineCount := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fenceLineCount++
		}
	}
	analysis.Lines = len(lines)
	analysis.CodeBlocks = fenceLineCount / 2
	return analysis
}
