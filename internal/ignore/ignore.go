// Package ignore decides which paths are excluded from a snapshot. A Matcher
// combines built-in default patterns, patterns loaded from the project ignore
// file, explicit skip globs, and the snapshot's own destination file into a
// single exclusion check over root-relative paths.
package ignore

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultPatterns returns a fresh copy of the built-in exclusion list covering
// version-control directories, dependency directories, build output, lock
// files, environment files, compiled bytecode, and OS metadata. Callers may
// append to the result without affecting later runs.
func DefaultPatterns() []string {
	return []string{
		".git/**",
		"node_modules/",
		".git/",
		"dist/",
		"build/",
		"coverage/",
		".env*",
		".DS_Store",
		"*.log",
		"*.lock",
		"package-lock.json",
		"__pycache__/",
		"*.pyc",
		"*.pyo",
		"*.pyd",
		".Python",
		"env/",
		"venv/",
		".env/",
		".venv/",
		"ENV/",
		"env.bak/",
		"venv.bak/",
	}
}

// commonFileNames lists well-known project metadata files skipped when the
// skip-common option is enabled.
var commonFileNames = map[string]struct{}{
	"LICENSE":            {},
	"LICENSE.md":         {},
	"LICENSE.txt":        {},
	"CONTRIBUTING.md":    {},
	"CONTRIBUTING":       {},
	"CODE_OF_CONDUCT.md": {},
	"CODE_OF_CONDUCT":    {},
	"CHANGELOG.md":       {},
	"CHANGELOG":          {},
	"SECURITY.md":        {},
	"SECURITY":           {},
	".gitattributes":     {},
	".editorconfig":      {},
	".dockerignore":      {},
}

// Options configures a Matcher for one snapshot run.
type Options struct {
	// ProjectRoot is the absolute path of the directory being walked.
	ProjectRoot string
	// OutputFile is the snapshot destination. When set, the file is always
	// excluded from its own snapshot regardless of patterns.
	OutputFile string
	// SkipCommon excludes well-known metadata files by basename.
	SkipCommon bool
	// SkipFiles holds additional basename globs to exclude.
	SkipFiles []string
	// ExtraPatterns holds patterns appended after the defaults, typically
	// loaded from the project's ignore file.
	ExtraPatterns []string
}

// Matcher answers exclusion queries for root-relative paths. Decisions are
// pure functions of the path and the rule set fixed at construction.
type Matcher struct {
	projectRoot    string
	outputFilePath string
	skipCommon     bool
	skipFileRules  []*regexp.Regexp
	rules          []compiledRule
}

// compiledRule holds the regular expressions derived from one ignore pattern.
// directoryProbe tests the candidate path with a trailing slash appended and
// exists only for unanchored patterns ending in a slash. base tests the
// candidate path and each of its ancestor directories.
type compiledRule struct {
	directoryProbe *regexp.Regexp
	base           *regexp.Regexp
}

// NewMatcher builds a Matcher from the provided options. The default pattern
// list is rebuilt on every call so runs stay independent.
func NewMatcher(options Options) *Matcher {
	matcher := &Matcher{
		projectRoot: filepath.Clean(options.ProjectRoot),
		skipCommon:  options.SkipCommon,
	}

	if options.OutputFile != "" {
		absoluteOutputPath, absolutePathError := filepath.Abs(options.OutputFile)
		if absolutePathError != nil {
			absoluteOutputPath = options.OutputFile
		}
		matcher.outputFilePath = filepath.Clean(absoluteOutputPath)
	}

	for _, skipPattern := range options.SkipFiles {
		if compiledSkipRule := compileGlob(skipPattern); compiledSkipRule != nil {
			matcher.skipFileRules = append(matcher.skipFileRules, compiledSkipRule)
		}
	}

	allPatterns := append(DefaultPatterns(), options.ExtraPatterns...)
	for _, patternText := range allPatterns {
		matcher.rules = append(matcher.rules, compileRule(patternText))
	}

	return matcher
}

// compileRule prepares the matcher expressions for a single pattern. A leading
// slash anchors the pattern to the root and is stripped; otherwise a trailing
// slash produces a directory probe against the original pattern. Double
// wildcards collapse to a single wildcard before compilation because `*`
// already crosses path separators in these glob semantics.
func compileRule(patternText string) compiledRule {
	var rule compiledRule
	effectivePattern := patternText
	if strings.HasPrefix(patternText, "/") {
		effectivePattern = patternText[1:]
	} else if strings.HasSuffix(patternText, "/") {
		rule.directoryProbe = compileGlob(patternText)
	}
	effectivePattern = strings.ReplaceAll(effectivePattern, "**", "*")
	rule.base = compileGlob(effectivePattern)
	return rule
}

// IsExcluded reports whether the root-relative path is excluded from the
// snapshot. The destination file, the skip-common set, and the skip-files
// globs short-circuit before pattern evaluation.
func (matcher *Matcher) IsExcluded(relativePath string) bool {
	normalizedPath := filepath.ToSlash(relativePath)

	if matcher.isOwnOutputFile(normalizedPath) {
		return true
	}

	baseName := path.Base(normalizedPath)
	if matcher.skipCommon {
		if _, isCommonFile := commonFileNames[baseName]; isCommonFile {
			return true
		}
	}
	for _, skipRule := range matcher.skipFileRules {
		if skipRule.MatchString(baseName) {
			return true
		}
	}

	for _, rule := range matcher.rules {
		if rule.matches(normalizedPath) {
			return true
		}
	}
	return false
}

// isOwnOutputFile reports whether the candidate resolves to the snapshot's
// destination file.
func (matcher *Matcher) isOwnOutputFile(normalizedPath string) bool {
	if matcher.outputFilePath == "" {
		return false
	}
	absoluteCandidate := filepath.Join(matcher.projectRoot, filepath.FromSlash(normalizedPath))
	return absoluteCandidate == matcher.outputFilePath
}

// matches evaluates one compiled rule against a normalized relative path: the
// directory probe first, then the path itself, then every ancestor directory
// with a trailing slash appended.
func (rule compiledRule) matches(normalizedPath string) bool {
	if rule.directoryProbe != nil && rule.directoryProbe.MatchString(normalizedPath+"/") {
		return true
	}
	if rule.base == nil {
		return false
	}
	if rule.base.MatchString(normalizedPath) {
		return true
	}
	for ancestor := path.Dir(normalizedPath); ancestor != "." && ancestor != "/"; ancestor = path.Dir(ancestor) {
		if rule.base.MatchString(ancestor + "/") {
			return true
		}
	}
	return false
}
