package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/assetsym/internal/adapters/emitter"
	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/pkg/config"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

// info prints a line unless --quiet is set
func info(msg string) {
	if !quiet {
		fmt.Println(msg)
	}
}

// reportError prints a styled explanation for the error classes users can act on
func reportError(action string, err error) {
	var collisions *domain.CollisionError

	switch {
	case errors.As(err, &collisions):
		fmt.Println(ui.FormatError("Duplicate identifiers, nothing was written"))
		lines := make([]string, len(collisions.Collisions))
		for i, c := range collisions.Collisions {
			lines[i] = c.String()
		}
		fmt.Print(ui.RenderSimpleList(lines))
		fmt.Println(ui.FormatInfo("Rename one of the assets in each group"))
	case errors.Is(err, domain.ErrCatalogNotFound):
		fmt.Println(ui.FormatError("Asset catalog not found: " + displayPath(catalogPath)))
		fmt.Println(ui.FormatInfo("Set 'catalog' in " + configFileName() + " or pass --catalog"))
	case errors.Is(err, domain.ErrEmptyName), errors.Is(err, domain.ErrEmptyIdentifier):
		fmt.Println(ui.FormatError("Invalid asset name: " + err.Error()))
	default:
		fmt.Println(ui.FormatError(action))
	}
}

// GetPreferredEditor returns $EDITOR, falling back to vi
func GetPreferredEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// OpenInEditor opens path in the preferred editor attached to the terminal
func OpenInEditor(path string) error {
	// $EDITOR may carry arguments, e.g. "code --wait"
	parts := strings.Fields(GetPreferredEditor())
	c := exec.Command(parts[0], append(parts[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// displayPath shortens path relative to the workspace when possible
func displayPath(path string) string {
	if appWorkspace == nil {
		return path
	}
	return appWorkspace.Rel(path)
}

func configFileName() string {
	if appWorkspace == nil {
		return config.FileName
	}
	return displayPath(appWorkspace.ConfigPath)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func joinFormats() string {
	return strings.Join(emitter.Formats(), ", ")
}
