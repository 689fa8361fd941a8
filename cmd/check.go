package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

// errStale makes check exit non-zero
var errStale = errors.New("generated file is out of date")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated file matches the catalog",
	Long: `Regenerate in memory and compare with the file on disk.

Exits non-zero when the file is missing or stale, listing the symbols
that were added, removed or changed. Nothing is written.

Example (CI):
  assetsym check || { echo "run assetsym generate"; exit 1; }`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := checkService.Execute(ctx, services.CheckRequest{Output: outputPath})
	if err != nil {
		reportError("Check failed", err)
		return err
	}

	target := displayPath(outputPath)

	if resp.UpToDate {
		info(ui.FormatSuccess(target + " is up to date"))
		return nil
	}

	switch {
	case resp.Missing:
		fmt.Println(ui.FormatError(target + " does not exist"))
	case resp.Unparseable:
		fmt.Println(ui.FormatError(target + " is not a generated " + appConfig.Format + " file"))
	default:
		fmt.Println(ui.FormatError(target + " is out of date"))
		printSymbolDiff(resp)
	}

	fmt.Println(ui.FormatInfo("Run 'assetsym generate' to update it"))
	return errStale
}

func printSymbolDiff(resp *services.CheckResponse) {
	for _, sym := range resp.Added {
		fmt.Println(ui.FormatDiff("+", fmt.Sprintf("%s %s", sym.Identifier, ui.FormatMuted(fmt.Sprintf("%q", sym.Value)))))
	}
	for _, sym := range resp.Removed {
		fmt.Println(ui.FormatDiff("-", fmt.Sprintf("%s %s", sym.Identifier, ui.FormatMuted(fmt.Sprintf("%q", sym.Value)))))
	}
	for _, ch := range resp.Changed {
		fmt.Println(ui.FormatDiff("~", fmt.Sprintf("%s %s", ch.Identifier, ui.FormatMuted(fmt.Sprintf("%q -> %q", ch.Old, ch.New)))))
	}

	// Same symbols, different bytes: hand edits or formatting drift
	if len(resp.Added)+len(resp.Removed)+len(resp.Changed) == 0 {
		fmt.Println(ui.FormatMuted("  (declarations match, file content differs)"))
	}
}
