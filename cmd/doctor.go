package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

// errUnhealthy makes doctor exit non-zero when a required check fails
var errUnhealthy = errors.New("workspace has problems")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the assetsym workspace",
	Long: `Diagnose issues with your assetsym setup.

Checks for:
  - Configuration file existence
  - Asset catalog presence and duplicate identifiers
  - Output directory and freshness of the generated file
  - Editor and clipboard availability (optional)`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	failed := false

	fmt.Println(ui.FormatTitle("🏥 assetsym Doctor"))
	fmt.Println()

	// 1. Configuration
	checkStep("Configuration File", true, func() error {
		if !appWorkspace.Exists() {
			return fmt.Errorf("missing at %s (using defaults)", appWorkspace.ConfigPath)
		}
		return nil
	})

	// 2. Catalog
	var list *services.ListResponse
	failed = !checkStep("Asset Catalog", false, func() error {
		resp, err := listService.Execute(ctx, services.ListRequest{})
		if err != nil {
			return err
		}
		list = resp
		if resp.Total == 0 {
			return fmt.Errorf("no assets found in %s", displayPath(catalogPath))
		}
		return nil
	}) || failed

	if list != nil {
		failed = !checkStep("Unique Identifiers", false, func() error {
			if n := len(list.Collisions); n > 0 {
				for _, c := range list.Collisions {
					fmt.Printf("    %s\n", c.String())
				}
				return fmt.Errorf("found %d duplicate identifiers", n)
			}
			return nil
		}) || failed
	}

	// 3. Output
	failed = !checkStep("Output Directory", false, func() error {
		dir := filepath.Dir(outputPath)
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			// generate creates it
			return nil
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", displayPath(dir))
		}
		return nil
	}) || failed

	if list != nil && len(list.Collisions) == 0 {
		failed = !checkStep("Generated File", false, func() error {
			resp, err := checkService.Execute(ctx, services.CheckRequest{Output: outputPath})
			if err != nil {
				return err
			}
			switch {
			case resp.Missing:
				return fmt.Errorf("%s not generated yet", displayPath(outputPath))
			case !resp.UpToDate:
				return fmt.Errorf("%s is out of date (run 'assetsym generate')", displayPath(outputPath))
			}
			return nil
		}) || failed
	}

	// 4. Environment
	checkStep("EDITOR Variable", true, func() error {
		if os.Getenv("EDITOR") == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})

	checkStep("Clipboard (pick)", true, func() error {
		if clipboard.Unsupported {
			return fmt.Errorf("no clipboard utility found")
		}
		return nil
	})

	fmt.Println()
	if failed {
		fmt.Println(ui.FormatError("Some checks failed"))
		return errUnhealthy
	}
	fmt.Println(ui.FormatSuccess("All required checks passed"))
	return nil
}

// checkStep runs a check function and prints the result nicely.
// Optional checks print as warnings and never count as failures.
func checkStep(name string, optional bool, check func() error) bool {
	err := check()
	switch {
	case err == nil:
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
		return true
	case optional:
		fmt.Printf("%s %s\n", ui.FormatWarning("⚠"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
		return true
	default:
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
		return false
	}
}
