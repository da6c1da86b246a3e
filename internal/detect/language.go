package detect

// languageByExtension maps lower-cased file extensions to the language tag
// emitted on the opening code fence.
var languageByExtension = map[string]string{
	".js":         "javascript",
	".jsx":        "javascript",
	".ts":         "typescript",
	".tsx":        "typescript",
	".py":         "python",
	".rb":         "ruby",
	".java":       "java",
	".cpp":        "cpp",
	".c":          "c",
	".cs":         "csharp",
	".php":        "php",
	".go":         "go",
	".rs":         "rust",
	".swift":      "swift",
	".kt":         "kotlin",
	".r":          "r",
	".sql":        "sql",
	".yaml":       "yaml",
	".yml":        "yaml",
	".json":       "json",
	".md":         "markdown",
	".html":       "html",
	".css":        "css",
	".scss":       "scss",
	".less":       "less",
	".sh":         "bash",
	".bash":       "bash",
	".dockerfile": "dockerfile",
}

// Language returns the fence language tag for the file, or an empty string
// when the extension has no known mapping or the name is a dotfile.
func Language(filePath string) string {
	return languageByExtension[fileExtension(filePath)]
}
