package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/assetsym/internal/adapters/emitter"
	"github.com/kamal-hamza/assetsym/internal/adapters/repository"
	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/ports"
	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/config"
	"github.com/kamal-hamza/assetsym/pkg/ui"
	"github.com/kamal-hamza/assetsym/pkg/workspace"
)

var (
	// Global workspace and configuration
	appWorkspace *workspace.Workspace
	appConfig    *config.Config

	// Resolved paths
	catalogPath string
	outputPath  string

	// Services
	generateService *services.GenerateService
	checkService    *services.CheckService
	listService     *services.ListService

	// Repositories
	catalogRepo ports.CatalogRepository
	outputRepo  *repository.FileOutputRepository

	// Global flags
	flagConfig  string
	flagCatalog string
	flagOutput  string
	flagFormat  string
	flagPackage string
	quiet       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetsym",
	Short: "assetsym - typed constants for asset catalog names",
	Long: ui.StyleTitle.Render("assetsym") + " - Asset Symbol Generator\n\n" +
		"Turns the entries of an asset catalog into compile-time constants,\n" +
		"so a renamed or deleted image breaks the build instead of the app.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags override the config file
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: nearest "+config.FileName+")")
	rootCmd.PersistentFlags().StringVarP(&flagCatalog, "catalog", "c", "", "Asset catalog directory or YAML manifest")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Generated file path")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format (go, objc)")
	rootCmd.PersistentFlags().StringVar(&flagPackage, "package", "", "Go package name of the generated file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// init and version work without a configured workspace
	if cmd.Name() == "init" || cmd.Name() == "version" {
		return nil
	}

	ws, err := resolveWorkspace()
	if err != nil {
		return fmt.Errorf("failed to locate workspace: %w", err)
	}
	appWorkspace = ws

	cfg, err := config.Load(appWorkspace.ConfigPath)
	if err != nil {
		fmt.Println(ui.FormatError("Invalid configuration: " + appWorkspace.ConfigPath))
		return err
	}
	applyFlags(cfg)
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	catalogPath = appWorkspace.Resolve(appConfig.Catalog)
	outputPath = appWorkspace.Resolve(appConfig.Output)

	naming := domain.Naming{
		ImagePrefix: appConfig.ImagePrefix,
		ColorPrefix: appConfig.ColorPrefix,
		Visibility:  domain.Visibility(appConfig.Visibility),
	}

	em, err := emitter.New(appConfig.Format, emitter.Options{
		Package:   appConfig.Package,
		Namespace: appConfig.ObjCNamespace,
	})
	if err != nil {
		fmt.Println(ui.FormatError(fmt.Sprintf("Unsupported format %q", appConfig.Format)))
		fmt.Println(ui.FormatInfo("Supported formats: " + joinFormats()))
		return err
	}

	// Initialize repositories
	catalogRepo = repository.NewCatalogRepository(catalogPath)
	outputRepo = repository.NewFileOutputRepository()

	// Initialize services
	generateService = services.NewGenerateService(catalogRepo, em, outputRepo, naming)
	checkService = services.NewCheckService(catalogRepo, em, outputRepo, naming)
	listService = services.NewListService(catalogRepo, naming)

	return nil
}

// resolveWorkspace uses the --config file's directory when given,
// otherwise searches upwards from the working directory
func resolveWorkspace() (*workspace.Workspace, error) {
	if flagConfig != "" {
		abs, err := filepath.Abs(flagConfig)
		if err != nil {
			return nil, err
		}
		return &workspace.Workspace{RootPath: filepath.Dir(abs), ConfigPath: abs}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return workspace.New(cwd)
}

// applyFlags overrides config values with explicitly set global flags.
// Flag paths stay relative to the working directory.
func applyFlags(cfg *config.Config) {
	if flagCatalog != "" {
		cfg.Catalog = absPath(flagCatalog)
	}
	if flagOutput != "" {
		cfg.Output = absPath(flagOutput)
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagPackage != "" {
		cfg.Package = flagPackage
	}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
