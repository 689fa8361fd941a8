package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

var (
	pickValue bool
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick [query]",
	Short: "Fuzzy-find an asset and copy its identifier",
	Long: `Pick an asset interactively and copy its generated identifier to the
clipboard, ready to paste into code.

When the query matches exactly one asset it is picked without prompting.

Examples:
  assetsym pick
  assetsym pick airplane
  assetsym pick --value letter box`,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVar(&pickValue, "value", false, "Copy the asset name instead of the identifier")
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := listService.Execute(ctx, services.ListRequest{Query: strings.Join(args, " ")})
	if err != nil {
		reportError("Failed to read catalog", err)
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No assets found"))
		return nil
	}

	var selected domain.AssetSymbol
	if resp.Total == 1 {
		selected = resp.Symbols[0]
	} else {
		idx, err := fuzzyfinder.Find(
			resp.Symbols,
			func(i int) string {
				return resp.Symbols[i].Identifier
			},
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				sym := resp.Symbols[i]
				preview := fmt.Sprintf("Identifier: %s\nAsset: %q\nKind: %s",
					sym.Identifier,
					sym.Value,
					sym.Kind)
				if path, ok := resp.Paths[sym.SourceName]; ok {
					preview += "\nPath: " + displayPath(path)
				}
				return preview
			}),
		)
		if err != nil {
			// User cancelled (Ctrl+C or ESC)
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil
		}
		selected = resp.Symbols[idx]
	}

	text := selected.Identifier
	if pickValue {
		text = selected.Value
	}

	fmt.Println(ui.FormatBold(text))

	// Clipboard is best effort: headless sessions have none
	if err := clipboard.WriteAll(text); err != nil {
		info(ui.FormatMuted("(Clipboard access failed, please copy manually)"))
		return nil
	}
	info(ui.FormatSuccess("Copied to clipboard"))

	return nil
}
