package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/adapters/emitter"
	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/pkg/config"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

var (
	initForce bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an .assetsym.yaml in the current directory",
	Long: `Create a commented .assetsym.yaml in the current directory.

When no --catalog is given the first *.xcassets directory found here is
used. --format objc defaults the output to GeneratedAssetSymbols.h.

Examples:
  assetsym init
  assetsym init --catalog Resources/Assets.xcassets --output Sources/assets_gen.go
  assetsym init --format objc`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine working directory"))
		return err
	}

	path := filepath.Join(cwd, config.FileName)
	if flagConfig != "" {
		path = absPath(flagConfig)
	}

	if flagFormat != "" && !slices.Contains(emitter.Formats(), strings.ToLower(flagFormat)) {
		fmt.Println(ui.FormatError(fmt.Sprintf("Unsupported format %q", flagFormat)))
		fmt.Println(ui.FormatInfo("Supported formats: " + joinFormats()))
		return domain.ErrUnknownFormat
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Println(ui.FormatWarning("Config already exists"))
		fmt.Println(ui.FormatMuted("Location: " + path))
		fmt.Println(ui.FormatInfo("Use --force to overwrite it"))
		return nil
	}

	cfg := initialConfig(filepath.Dir(path))

	if err := os.WriteFile(path, []byte(renderConfig(cfg)), 0644); err != nil {
		fmt.Println(ui.FormatError("Failed to write config"))
		return err
	}

	// Never leave behind a file that Load rejects
	if _, err := config.Load(path); err != nil {
		fmt.Println(ui.FormatError("Generated config is invalid"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Config created: " + path))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Catalog", cfg.Catalog))
	fmt.Println(ui.RenderKeyValue("Output", cfg.Output))
	fmt.Println(ui.RenderKeyValue("Format", cfg.Format))
	fmt.Println()

	catalog := cfg.Catalog
	if !filepath.IsAbs(catalog) {
		catalog = filepath.Join(filepath.Dir(path), catalog)
	}
	if _, err := os.Stat(catalog); err != nil {
		fmt.Println(ui.FormatWarning("Catalog " + cfg.Catalog + " does not exist yet"))
	}

	fmt.Println(ui.FormatRocket("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Review the catalog: assetsym list"))
	fmt.Println(ui.FormatMuted("  2. Generate symbols:   assetsym generate"))
	fmt.Println(ui.FormatMuted("  3. Keep them fresh:    assetsym watch"))

	return nil
}

// initialConfig starts from the defaults, applies global flags and
// falls back to a catalog discovered in dir
func initialConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()

	if flagFormat != "" {
		cfg.Format = strings.ToLower(flagFormat)
	}
	if cfg.Format == emitter.FormatObjC {
		cfg.Output = "GeneratedAssetSymbols.h"
	}
	if flagPackage != "" {
		cfg.Package = flagPackage
	}
	if flagOutput != "" {
		cfg.Output = relTo(dir, flagOutput)
	}

	switch {
	case flagCatalog != "":
		cfg.Catalog = relTo(dir, flagCatalog)
	default:
		if found := findCatalog(dir); found != "" {
			cfg.Catalog = found
		}
	}

	return cfg
}

// findCatalog returns the first *.xcassets directory directly below dir
func findCatalog(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xcassets"))
	if err != nil {
		return ""
	}
	sort.Strings(matches)

	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			return filepath.Base(m)
		}
	}
	return ""
}

// relTo expresses a flag path relative to the config directory
func relTo(dir, path string) string {
	rel, err := filepath.Rel(dir, absPath(path))
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func renderConfig(cfg *config.Config) string {
	return fmt.Sprintf(`# assetsym configuration
# Paths are relative to this file. Command-line flags override these values.

# Asset catalog: an .xcassets directory, a plain folder of images,
# or a YAML manifest (assets: [{name: airplane}, {name: accent, kind: color}])
catalog: %q

# Generated file
output: %q

# Output format: go or objc
format: %s

# Go package clause of the generated file
package: %s

# Identifier prefixes per asset kind
image_prefix: %s
color_prefix: %s

# exported (ImageNameAirplane) or unexported (imageNameAirplane)
visibility: %s

# Objective-C constant prefix (ACImageNameAirplane)
objc_namespace: %s

# Delay before regenerating after a change in watch mode
watch_debounce_ms: %d

# Color theme: auto, dark or light
color_theme: %s
`,
		cfg.Catalog,
		cfg.Output,
		cfg.Format,
		cfg.Package,
		cfg.ImagePrefix,
		cfg.ColorPrefix,
		cfg.Visibility,
		cfg.ObjCNamespace,
		cfg.WatchDebounceMS,
		cfg.ColorTheme,
	)
}
