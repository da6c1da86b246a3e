// Package completion serves the static shell completion scripts shipped
// inside the binary.
package completion

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/aipaste/aipaste/internal/utils"
)

// Shell names a completion script ships for.
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

//go:embed assets/aipaste.bash assets/aipaste.zsh assets/aipaste.fish
var embeddedScripts embed.FS

// Shells lists the supported shells in display order.
func Shells() []string {
	return []string{ShellBash, ShellZsh, ShellFish}
}

// Script returns the completion script for the named shell.
func Script(shellName string) (string, error) {
	if !utils.ContainsString(Shells(), shellName) {
		return "", fmt.Errorf("no completion script for shell %q", shellName)
	}
	content, readError := fs.ReadFile(embeddedScripts, "assets/aipaste."+shellName)
	if readError != nil {
		return "", fmt.Errorf("read embedded completion for %s: %w", shellName, readError)
	}
	return string(content), nil
}
