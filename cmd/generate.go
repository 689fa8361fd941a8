package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

var (
	generateDryRun bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "Generate the asset symbol file",
	Aliases: []string{"gen", "g"},
	Long: `Read the asset catalog and write one constant per asset.

The file is only rewritten when its content changes, and nothing is
written when two assets map to the same identifier.

Examples:
  assetsym generate
  assetsym generate --catalog Resources/Assets.xcassets --output Sources/assets_gen.go
  assetsym generate --format objc --output GeneratedAssetSymbols.h
  assetsym generate --dry-run`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVarP(&generateDryRun, "dry-run", "n", false, "Print the generated file instead of writing it")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := services.GenerateRequest{
		Output: outputPath,
		DryRun: generateDryRun,
	}

	resp, err := generateService.Execute(ctx, req)
	if err != nil {
		reportError("Generation failed", err)
		return err
	}

	if generateDryRun {
		// stdout carries only the rendered file so it can be redirected
		fmt.Fprint(cmd.OutOrStdout(), string(resp.Content))
		if !quiet {
			status := "is up to date"
			if resp.Changed {
				status = "would change"
			}
			fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatMuted("(dry run: "+displayPath(outputPath)+" "+status+")"))
		}
		return nil
	}

	if !resp.Written {
		info(ui.FormatSuccess(fmt.Sprintf("%s is up to date (%d symbols)", displayPath(outputPath), len(resp.Symbols))))
		return nil
	}

	info(ui.FormatSuccess(fmt.Sprintf("Generated %d symbols", len(resp.Symbols))))
	info(ui.RenderKeyValue("Catalog", displayPath(catalogPath)))
	info(ui.RenderKeyValue("Output", displayPath(outputPath)))

	return nil
}
