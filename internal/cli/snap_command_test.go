package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapWritesDefaultOutputFile(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)
	projectRoot := t.TempDir()
	writeTestFile(t, projectRoot, "main.go", []byte("package main\n"))

	standardOutput, _, executeError := executeRoot(t, &recordingCopier{}, "snap", "--path", projectRoot)
	if executeError != nil {
		t.Fatalf("execute error: %v", executeError)
	}

	expectedName := filepath.Base(projectRoot) + "_source.md"
	document, readError := os.ReadFile(filepath.Join(workingDirectory, expectedName))
	if readError != nil {
		t.Fatalf("read snapshot file: %v", readError)
	}
	if !strings.HasPrefix(string(document), "# Project Source Code\n") {
		t.Fatalf("unexpected document start: %q", document)
	}
	if !strings.Contains(string(document), "\n## main.go\n") {
		t.Fatalf("document misses the file section")
	}

	for _, expectedLine := range []string{
		creatingSnapshotMessage,
		"Snapshot created at " + expectedName,
		"Project Statistics:",
		"  • Total files scanned: 1",
		"  • Files included: 1",
		"  • Binary files: 0",
		"  • Ignored files: 0",
		"  • Languages: go",
	} {
		if !strings.Contains(standardOutput, expectedLine) {
			t.Fatalf("expected %q in snap output, got %q", expectedLine, standardOutput)
		}
	}
}

func TestSnapSummaryDisabled(t *testing.T) {
	isolateHome(t)
	t.Chdir(t.TempDir())
	projectRoot := t.TempDir()
	writeTestFile(t, projectRoot, "main.go", []byte("package main\n"))

	standardOutput, _, executeError := executeRoot(t, &recordingCopier{}, "snap", "--path", projectRoot, "--summary", "false")
	if executeError != nil {
		t.Fatalf("execute error: %v", executeError)
	}
	if strings.Contains(standardOutput, "Project Statistics:") {
		t.Fatalf("statistics must stay silent with --summary false, got %q", standardOutput)
	}
	if !strings.Contains(standardOutput, "Snapshot created at ") {
		t.Fatalf("created confirmation still expected, got %q", standardOutput)
	}
}

func TestSnapRefusesOverwriteWithoutTerminal(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)
	projectRoot := t.TempDir()
	writeTestFile(t, projectRoot, "main.go", []byte("package main\n"))
	outputPath := writeTestFile(t, workingDirectory, "out.md", []byte("previous content\n"))

	_, _, executeError := executeRoot(t, &recordingCopier{}, "snap", "--path", projectRoot, "--output", outputPath)
	if executeError == nil {
		t.Fatalf("expected an error for an existing output without --force")
	}
	if !strings.Contains(executeError.Error(), "--force") {
		t.Fatalf("error must point at --force, got %v", executeError)
	}
	content, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("read output file: %v", readError)
	}
	if string(content) != "previous content\n" {
		t.Fatalf("refused overwrite must leave the file untouched, got %q", content)
	}
}

func TestSnapForceOverwrites(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)
	projectRoot := t.TempDir()
	writeTestFile(t, projectRoot, "main.go", []byte("package main\n"))
	outputPath := writeTestFile(t, workingDirectory, "out.md", []byte("previous content\n"))

	_, _, executeError := executeRoot(t, &recordingCopier{}, "snap", "--path", projectRoot, "--output", outputPath, "--force")
	if executeError != nil {
		t.Fatalf("execute error: %v", executeError)
	}
	content, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("read output file: %v", readError)
	}
	if !strings.HasPrefix(string(content), "# Project Source Code\n") {
		t.Fatalf("forced run must replace the file, got %q", content)
	}
}

func TestSnapConfigurationSuppliesDefaults(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	writeTestFile(t, workingDirectory, ".aipaste.yaml", []byte("snap:\n  output: from_config.md\n  summary: false\n"))
	t.Chdir(workingDirectory)
	projectRoot := t.TempDir()
	writeTestFile(t, projectRoot, "main.go", []byte("package main\n"))

	standardOutput, _, executeError := executeRoot(t, &recordingCopier{}, "snap", "--path", projectRoot)
	if executeError != nil {
		t.Fatalf("execute error: %v", executeError)
	}
	if _, statError := os.Stat(filepath.Join(workingDirectory, "from_config.md")); statError != nil {
		t.Fatalf("expected the configured output name: %v", statError)
	}
	if strings.Contains(standardOutput, "Project Statistics:") {
		t.Fatalf("configured summary=false must suppress statistics")
	}

	// An explicit flag wins over the configured value.
	_, _, flaggedRunError := executeRoot(t, &recordingCopier{}, "snap", "--path", projectRoot, "--output", "from_flag.md")
	if flaggedRunError != nil {
		t.Fatalf("execute error: %v", flaggedRunError)
	}
	if _, statError := os.Stat(filepath.Join(workingDirectory, "from_flag.md")); statError != nil {
		t.Fatalf("expected the flag output name: %v", statError)
	}
}

func TestSnapExplicitConfigurationFile(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)
	configurationPath := writeTestFile(t, t.TempDir(), "custom.yaml", []byte("snap:\n  output: explicit.md\n"))
	projectRoot := t.TempDir()
	writeTestFile(t, projectRoot, "main.go", []byte("package main\n"))

	_, _, executeError := executeRoot(t, &recordingCopier{}, "--config", configurationPath, "snap", "--path", projectRoot)
	if executeError != nil {
		t.Fatalf("execute error: %v", executeError)
	}
	if _, statError := os.Stat(filepath.Join(workingDirectory, "explicit.md")); statError != nil {
		t.Fatalf("expected the explicitly configured output name: %v", statError)
	}
}

func TestSnapSkipFilesFlagExtendsConfiguration(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	writeTestFile(t, workingDirectory, ".aipaste.yaml", []byte("snap:\n  skip_files:\n    - '*.tmp'\n"))
	t.Chdir(workingDirectory)
	projectRoot := t.TempDir()
	writeTestFile(t, projectRoot, "keep.txt", []byte("kept\n"))
	writeTestFile(t, projectRoot, "junk.tmp", []byte("scratch\n"))
	writeTestFile(t, projectRoot, "draft.bak", []byte("backup\n"))

	_, _, executeError := executeRoot(t, &recordingCopier{}, "snap", "--path", projectRoot, "--skip-files", "*.bak")
	if executeError != nil {
		t.Fatalf("execute error: %v", executeError)
	}
	document, readError := os.ReadFile(filepath.Join(workingDirectory, filepath.Base(projectRoot)+"_source.md"))
	if readError != nil {
		t.Fatalf("read snapshot file: %v", readError)
	}
	if !strings.Contains(string(document), "\n## keep.txt\n") {
		t.Fatalf("expected keep.txt section")
	}
	if strings.Contains(string(document), "junk.tmp") || strings.Contains(string(document), "draft.bak") {
		t.Fatalf("both configured and flagged patterns must be excluded")
	}
}

func TestResolveSnapOutputPath(t *testing.T) {
	if resolved, resolveError := resolveSnapOutputPath("/srv/projects/demo", ""); resolveError != nil || resolved != "demo_source.md" {
		t.Fatalf("expected demo_source.md, got %q (%v)", resolved, resolveError)
	}
	if resolved, resolveError := resolveSnapOutputPath("/srv/projects/demo", "custom.md"); resolveError != nil || resolved != "custom.md" {
		t.Fatalf("an explicit output wins, got %q (%v)", resolved, resolveError)
	}
}
