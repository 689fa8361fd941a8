package watcher

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()

	calls := make(chan struct{}, 16)
	w := New(path, 20*time.Millisecond, func(ctx context.Context) {
		calls <- struct{}{}
	})
	w.SetLogger(log.New(io.Discard, "", 0))

	if err := w.Open(); err != nil {
		t.Fatalf("failed to open watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return calls
}

func waitForCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called")
	}
}

func TestWatcher_DirectoryCatalog(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "Animals")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}

	calls := startWatcher(t, root)

	// Existing subfolders are watched
	if err := os.Mkdir(filepath.Join(nested, "ant.imageset"), 0755); err != nil {
		t.Fatalf("failed to create imageset: %v", err)
	}
	waitForCall(t, calls)

	// Folders created after start are watched too
	fresh := filepath.Join(root, "Plants")
	if err := os.Mkdir(fresh, 0755); err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	waitForCall(t, calls)

	// give the watch on the new folder time to register
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(fresh, "fern.png"), []byte("png"), 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	waitForCall(t, calls)
}

func TestWatcher_IgnoresHiddenFiles(t *testing.T) {
	root := t.TempDir()
	calls := startWatcher(t, root)

	if err := os.WriteFile(filepath.Join(root, ".DS_Store"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case <-calls:
		t.Fatal("handler called for hidden file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_ManifestCatalog(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "assets.yaml")
	if err := os.WriteFile(manifest, []byte("assets: []\n"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	calls := startWatcher(t, manifest)

	// Unrelated files next to the manifest are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	select {
	case <-calls:
		t.Fatal("handler called for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(manifest, []byte("assets:\n  - name: ant\n"), 0644); err != nil {
		t.Fatalf("failed to update manifest: %v", err)
	}
	waitForCall(t, calls)
}

func TestWatcher_Debounce(t *testing.T) {
	root := t.TempDir()

	calls := make(chan struct{}, 16)
	w := New(root, 150*time.Millisecond, func(ctx context.Context) {
		calls <- struct{}{}
	})
	if err := w.Open(); err != nil {
		t.Fatalf("failed to open watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "icon"+string(rune('a'+i))+".png")
		if err := os.WriteFile(name, []byte("png"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	waitForCall(t, calls)

	select {
	case <-calls:
		t.Error("expected a burst of changes to trigger a single call")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_OpenMissingCatalog(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing.xcassets"), time.Millisecond, func(context.Context) {})
	if err := w.Open(); err == nil {
		t.Fatal("expected error watching a missing catalog")
	}
}
