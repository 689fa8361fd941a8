package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/adapters/watcher"
	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the catalog changes",
	Long: `Watch the asset catalog and regenerate the symbol file on every change.

The catalog is watched recursively, including folders added later.
Bursts of changes (an export dropping many images at once) are
coalesced using watch_debounce_ms from the config.

Use --quiet to suppress regeneration notices; errors are still logged.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func(ctx context.Context) {
		resp, err := generateService.Execute(ctx, services.GenerateRequest{Output: outputPath})
		if err != nil {
			if !quiet {
				reportError("Generation failed: "+err.Error(), err)
			}
			log.Printf("Generation error: %v", err)
			return
		}

		if resp.Written {
			info(ui.FormatSuccess(fmt.Sprintf("%s Regenerated %s (%d symbols)",
				time.Now().Format("15:04:05"), displayPath(outputPath), len(resp.Symbols))))
		}
	}

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	w := watcher.New(catalogPath, debounce, regenerate)
	if err := w.Open(); err != nil {
		reportError("Failed to watch catalog", err)
		return err
	}

	info(ui.StyleInfo.Render(ui.IconWatch + " Watching asset catalog..."))
	info(ui.FormatMuted("Catalog: " + displayPath(catalogPath)))
	info(ui.FormatMuted("Output:  " + displayPath(outputPath)))
	info(ui.FormatMuted("Press Ctrl+C to stop"))
	info("")

	// Bring the output in line before waiting for changes
	regenerate(ctx)

	if err := w.Run(ctx); err != nil {
		return err
	}

	info("")
	info(ui.FormatMuted("Watch stopped"))
	return nil
}
