package snapshot

import (
	"path"
	"strings"

	"github.com/aipaste/aipaste/internal/ignore"
	"github.com/aipaste/aipaste/internal/types"
)

const (
	treeFenceLine    = "```"
	treeRootLine     = "."
	treeIndentMarker = "│   "
	treeBranchMarker = "├── "
)

// renderTree produces the fenced directory listing for every entry the
// matcher keeps. Entries must already be sorted by relative path; each
// line shows the basename, indented one marker per directory level, with a
// trailing slash on directories.
func renderTree(entries []types.FileEntry, matcher *ignore.Matcher) string {
	treeLines := []string{treeFenceLine, treeRootLine}
	for _, entry := range entries {
		if matcher.IsExcluded(entry.RelativePath) {
			continue
		}
		level := strings.Count(entry.RelativePath, "/")
		linePrefix := ""
		if level > 0 {
			linePrefix = strings.Repeat(treeIndentMarker, level-1) + treeBranchMarker
		}
		entryName := path.Base(entry.RelativePath)
		if entry.IsDirectory {
			entryName += "/"
		}
		treeLines = append(treeLines, linePrefix+entryName)
	}
	treeLines = append(treeLines, treeFenceLine)
	return strings.Join(treeLines, "\n")
}
