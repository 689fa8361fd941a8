package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/ui"
)

var (
	listKind string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list [query]",
	Short:   "List catalog assets and their identifiers",
	Aliases: []string{"ls"},
	Long: `List every asset in the catalog with the identifier it generates.

An optional query fuzzy-matches identifiers and asset names.

Examples:
  assetsym list
  assetsym list letter eyes
  assetsym list --kind color`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "Filter by kind (image, color)")
}

func runList(cmd *cobra.Command, args []string) error {
	req := services.ListRequest{
		Query: strings.Join(args, " "),
	}

	if listKind != "" {
		kind, err := domain.ParseKind(listKind)
		if err != nil {
			fmt.Println(ui.FormatError("Unknown kind: " + listKind))
			return err
		}
		req.Kind = kind
	}

	ctx := getContext()
	resp, err := listService.Execute(ctx, req)
	if err != nil {
		reportError("Failed to list assets", err)
		return err
	}

	// Handle empty results
	if resp.Total == 0 {
		if req.Query != "" {
			fmt.Println(ui.FormatWarning("No assets match: " + req.Query))
		} else {
			fmt.Println(ui.FormatWarning("No assets found in " + displayPath(catalogPath)))
		}
		return nil
	}

	if req.Query != "" {
		fmt.Println(ui.FormatTitle(fmt.Sprintf("Assets (matching: %s)", req.Query)))
	} else {
		fmt.Println(ui.FormatTitle("Assets"))
	}
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Identifier", MinWidth: 30},
		{Header: "Asset", MinWidth: 30, MaxWidth: 40},
		{Header: "Kind", MinWidth: 8},
		{Header: "Path", MinWidth: 20, MaxWidth: 50},
	})

	for _, sym := range resp.Symbols {
		path := ""
		if p, ok := resp.Paths[sym.SourceName]; ok {
			path = displayPath(p)
		}
		table.AddRow([]string{
			sym.Identifier,
			sym.SourceName,
			ui.KindIcon(string(sym.Kind)) + " " + string(sym.Kind),
			path,
		})
	}

	fmt.Print(table.Render())
	fmt.Println()

	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d assets", resp.Total)))

	if len(resp.Collisions) > 0 {
		fmt.Println()
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d duplicate identifiers, generate will fail:", len(resp.Collisions))))
		lines := make([]string, len(resp.Collisions))
		for i, c := range resp.Collisions {
			lines[i] = c.String()
		}
		fmt.Print(ui.RenderSimpleList(lines))
	}

	return nil
}
