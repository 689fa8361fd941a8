package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/pkg/ui"
)

var (
	configEdit bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after defaults and command-line flags are applied.

Use --edit to open the config file in $EDITOR.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configEdit, "edit", "e", false, "Open the config file in $EDITOR")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := appWorkspace.ConfigPath

	if configEdit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println(ui.FormatError("Config file not found: " + path))
			fmt.Println(ui.FormatInfo("Run 'assetsym init' to create one"))
			return fmt.Errorf("config file not found at %s", path)
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))
		return OpenInEditor(path)
	}

	source := path
	if !appWorkspace.Exists() {
		source = path + " " + ui.FormatMuted("(not found, using defaults)")
	}

	fmt.Println(ui.FormatTitle("Configuration"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Config file", source))
	fmt.Println(ui.RenderKeyValue("Workspace", appWorkspace.RootPath))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("catalog", appConfig.Catalog+" "+ui.FormatMuted("→ "+catalogPath)))
	fmt.Println(ui.RenderKeyValue("output", appConfig.Output+" "+ui.FormatMuted("→ "+outputPath)))
	fmt.Println(ui.RenderKeyValue("format", appConfig.Format))
	fmt.Println(ui.RenderKeyValue("package", appConfig.Package))
	fmt.Println(ui.RenderKeyValue("image_prefix", appConfig.ImagePrefix))
	fmt.Println(ui.RenderKeyValue("color_prefix", appConfig.ColorPrefix))
	fmt.Println(ui.RenderKeyValue("visibility", appConfig.Visibility))
	fmt.Println(ui.RenderKeyValue("objc_namespace", appConfig.ObjCNamespace))
	fmt.Println(ui.RenderKeyValue("watch_debounce_ms", strconv.Itoa(appConfig.WatchDebounceMS)))
	fmt.Println(ui.RenderKeyValue("color_theme", appConfig.ColorTheme))

	return nil
}
