package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/ports/mocks"
	"github.com/kamal-hamza/assetsym/internal/core/services"
	"github.com/kamal-hamza/assetsym/pkg/config"
)

// resetFlags restores flag variables left over from a previous run
func resetFlags() {
	flagConfig, flagCatalog, flagOutput, flagFormat, flagPackage = "", "", "", "", ""
	quiet = true
	generateDryRun = false
	listKind = ""
	initForce = false
	configEdit = false
	pickValue = false
}

// runCommand executes the root command with fresh flag values
func runCommand(t *testing.T, args ...string) error {
	t.Helper()

	resetFlags()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// newCatalog creates an .xcassets directory with one imageset per name
func newCatalog(t *testing.T, names ...string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "Assets.xcassets")
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name+".imageset"), 0755); err != nil {
			t.Fatalf("failed to create imageset %s: %v", name, err)
		}
	}
	return root
}

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"generate", "check", "list", "pick", "watch", "init", "config", "doctor", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Fatalf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "assetsym" {
		t.Errorf("Expected root command Use to be 'assetsym', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}

	for _, flag := range []string{"config", "catalog", "output", "format", "package", "quiet"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing global flag --%s", flag)
		}
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// TestServiceInitialization verifies services can be initialized with mocks
func TestServiceInitialization(t *testing.T) {
	catalog := mocks.NewMockCatalogRepository()
	output := mocks.NewMockOutputRepository()
	emitter := mocks.NewMockEmitter()
	naming := domain.DefaultNaming()

	if services.NewGenerateService(catalog, emitter, output, naming) == nil {
		t.Error("GenerateService is nil")
	}
	if services.NewCheckService(catalog, emitter, output, naming) == nil {
		t.Error("CheckService is nil")
	}
	if services.NewListService(catalog, naming) == nil {
		t.Error("ListService is nil")
	}
}

func TestGenerateAndCheck(t *testing.T) {
	catalog := newCatalog(t, "airplane", "letter_a_box", "letter-a-eyes-wide 1")
	output := filepath.Join(t.TempDir(), "assets", "assets_gen.go")

	if err := runCommand(t, "generate", "--catalog", catalog, "--output", output); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	for _, want := range []string{"ImageNameAirplane", "ImageNameLetterABox", "ImageNameLetterAEyesWide1", `"letter-a-eyes-wide 1"`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("output missing %s", want)
		}
	}

	if err := runCommand(t, "check", "--catalog", catalog, "--output", output); err != nil {
		t.Errorf("expected fresh output to pass check, got %v", err)
	}

	// A new asset makes the stored file stale
	if err := os.Mkdir(filepath.Join(catalog, "ant.imageset"), 0755); err != nil {
		t.Fatalf("failed to add imageset: %v", err)
	}
	if err := runCommand(t, "check", "--catalog", catalog, "--output", output); !errors.Is(err, errStale) {
		t.Errorf("expected stale error, got %v", err)
	}

	if err := runCommand(t, "generate", "--catalog", catalog, "--output", output); err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if err := runCommand(t, "check", "--catalog", catalog, "--output", output); err != nil {
		t.Errorf("expected regenerated output to pass check, got %v", err)
	}
}

func TestCheck_MissingOutput(t *testing.T) {
	catalog := newCatalog(t, "airplane")
	output := filepath.Join(t.TempDir(), "assets_gen.go")

	if err := runCommand(t, "check", "--catalog", catalog, "--output", output); !errors.Is(err, errStale) {
		t.Errorf("expected stale error for missing output, got %v", err)
	}
}

func TestGenerate_Collision(t *testing.T) {
	catalog := newCatalog(t, "letter-a", "letter_a", "airplane")
	output := filepath.Join(t.TempDir(), "assets_gen.go")

	err := runCommand(t, "generate", "--catalog", catalog, "--output", output)
	if !errors.Is(err, domain.ErrDuplicateIdentifier) {
		t.Fatalf("expected ErrDuplicateIdentifier, got %v", err)
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("nothing should be written when identifiers collide")
	}
}

func TestGenerate_DryRun(t *testing.T) {
	catalog := newCatalog(t, "airplane")
	output := filepath.Join(t.TempDir(), "assets_gen.go")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	if err := runCommand(t, "generate", "--dry-run", "--package", "images", "--catalog", catalog, "--output", output); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if !strings.Contains(buf.String(), "package images") {
		t.Errorf("expected rendered file on stdout, got:\n%s", buf.String())
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("dry run should not write the output")
	}
}

func TestGenerate_DryRunStdoutIsFileOnly(t *testing.T) {
	catalog := newCatalog(t, "airplane")
	output := filepath.Join(t.TempDir(), "assets_gen.go")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	resetFlags()
	quiet = false
	rootCmd.SetArgs([]string{"generate", "--dry-run", "--catalog", catalog, "--output", output})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if !strings.Contains(stderr.String(), "would change") {
		t.Errorf("expected status on stderr, got %q", stderr.String())
	}

	if err := runCommand(t, "generate", "--catalog", catalog, "--output", output); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}

	if stdout.String() != string(content) {
		t.Errorf("dry run stdout differs from the generated file:\n--- stdout ---\n%s\n--- file ---\n%s", stdout.String(), content)
	}
}

func TestGenerate_GroupsColorsBeforeImages(t *testing.T) {
	catalog := newCatalog(t, "apple", "zebra")
	if err := os.Mkdir(filepath.Join(catalog, "banana.colorset"), 0755); err != nil {
		t.Fatalf("failed to add colorset: %v", err)
	}
	output := filepath.Join(t.TempDir(), "assets_gen.go")

	if err := runCommand(t, "generate", "--catalog", catalog, "--output", output); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}

	banana := bytes.Index(content, []byte("ColorNameBanana ="))
	apple := bytes.Index(content, []byte("ImageNameApple ="))
	zebra := bytes.Index(content, []byte("ImageNameZebra ="))
	if banana < 0 || apple < 0 || zebra < 0 || !(banana < apple && apple < zebra) {
		t.Errorf("expected colors then images in name order:\n%s", content)
	}

	if err := runCommand(t, "check", "--catalog", catalog, "--output", output); err != nil {
		t.Errorf("expected grouped output to pass check, got %v", err)
	}
}

func TestGenerate_ObjC(t *testing.T) {
	catalog := newCatalog(t, "airplane")
	output := filepath.Join(t.TempDir(), "GeneratedAssetSymbols.h")

	if err := runCommand(t, "generate", "--format", "objc", "--catalog", catalog, "--output", output); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	for _, want := range []string{
		`static NSString * const ACImageNameAirplane AC_SWIFT_PRIVATE = @"airplane";`,
		"#undef AC_SWIFT_PRIVATE",
	} {
		if !strings.Contains(string(content), want) {
			t.Errorf("header missing %s", want)
		}
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	catalog := newCatalog(t, "airplane")

	err := runCommand(t, "generate", "--format", "swift", "--catalog", catalog, "--output", filepath.Join(t.TempDir(), "out"))
	if !errors.Is(err, domain.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestGenerate_CatalogNotFound(t *testing.T) {
	err := runCommand(t, "generate", "--catalog", filepath.Join(t.TempDir(), "missing.xcassets"), "--output", filepath.Join(t.TempDir(), "out.go"))
	if !errors.Is(err, domain.ErrCatalogNotFound) {
		t.Errorf("expected ErrCatalogNotFound, got %v", err)
	}
}

func TestList_UnknownKind(t *testing.T) {
	catalog := newCatalog(t, "airplane")

	err := runCommand(t, "list", "--kind", "sound", "--catalog", catalog)
	if !errors.Is(err, domain.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestDoctor(t *testing.T) {
	catalog := newCatalog(t, "airplane", "letter_a_box")
	output := filepath.Join(t.TempDir(), "assets_gen.go")

	// Not generated yet
	if err := runCommand(t, "doctor", "--catalog", catalog, "--output", output); !errors.Is(err, errUnhealthy) {
		t.Errorf("expected unhealthy before generate, got %v", err)
	}

	if err := runCommand(t, "generate", "--catalog", catalog, "--output", output); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := runCommand(t, "doctor", "--catalog", catalog, "--output", output); err != nil {
		t.Errorf("expected healthy workspace, got %v", err)
	}

	// Duplicate identifiers are reported
	if err := os.Mkdir(filepath.Join(catalog, "letter-a-box.imageset"), 0755); err != nil {
		t.Fatalf("failed to add imageset: %v", err)
	}
	if err := runCommand(t, "doctor", "--catalog", catalog, "--output", output); !errors.Is(err, errUnhealthy) {
		t.Errorf("expected unhealthy with collisions, got %v", err)
	}
}

func TestInitThenGenerate(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Media.xcassets", "airplane.imageset"), 0755); err != nil {
		t.Fatalf("failed to create catalog: %v", err)
	}
	chdir(t, dir)

	if err := runCommand(t, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Catalog != "Media.xcassets" {
		t.Errorf("expected discovered catalog, got %q", cfg.Catalog)
	}

	// Running init twice leaves the config alone
	if err := runCommand(t, "init"); err != nil {
		t.Errorf("second init should not fail: %v", err)
	}

	// Commands below the workspace root find the config
	sub := filepath.Join(dir, "Sources")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	chdir(t, sub)

	if err := runCommand(t, "generate"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, cfg.Output))
	if err != nil {
		t.Fatalf("output not written at workspace root: %v", err)
	}
	if !strings.Contains(string(content), "ImageNameAirplane") {
		t.Errorf("unexpected output:\n%s", content)
	}
}

// chdir changes the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})
}
