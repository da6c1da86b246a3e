// Package types defines every cross-package data structure used by the aipaste CLI.
package types

import "sort"

// Classification states how a discovered file is represented in the
// generated document.
type Classification string

const (
	// ClassificationText marks files whose contents are inlined verbatim.
	ClassificationText Classification = "text"
	// ClassificationBinary marks files represented by a placeholder section.
	ClassificationBinary Classification = "binary"
)

// FileEntry describes one path discovered during traversal, relative to the
// project root. Entries are created while walking and never mutated.
type FileEntry struct {
	RelativePath string
	IsDirectory  bool
}

// SnapshotStatistics accumulates aggregate counts for a single snapshot run.
// It is owned and mutated only by the assembler and reset per invocation.
type SnapshotStatistics struct {
	TotalFiles     int
	IncludedFiles  int
	BinaryFiles    int
	IgnoredFiles   int
	TotalSizeBytes int64
	languageTags   map[string]struct{}
}

// NewSnapshotStatistics returns a zeroed accumulator ready for one run.
func NewSnapshotStatistics() *SnapshotStatistics {
	return &SnapshotStatistics{languageTags: make(map[string]struct{})}
}

// RecordLanguage adds a language tag to the set of distinct tags encountered.
// Empty tags are not recorded.
func (statistics *SnapshotStatistics) RecordLanguage(languageTag string) {
	if languageTag == "" {
		return
	}
	if statistics.languageTags == nil {
		statistics.languageTags = make(map[string]struct{})
	}
	statistics.languageTags[languageTag] = struct{}{}
}

// Languages returns the distinct language tags encountered, sorted.
func (statistics *SnapshotStatistics) Languages() []string {
	languageNames := make([]string, 0, len(statistics.languageTags))
	for languageName := range statistics.languageTags {
		languageNames = append(languageNames, languageName)
	}
	sort.Strings(languageNames)
	return languageNames
}
