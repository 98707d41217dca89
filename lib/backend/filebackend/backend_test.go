package filebackend

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/rKV/lib/backend"
	backendtesting "github.com/ValentinKolb/rKV/lib/backend/testing"
)

func Test(t *testing.T) {
	root := t.TempDir()
	backendtesting.RunBackendTests(t, "FileBackend", func() backend.IBackend {
		dir, err := os.MkdirTemp(root, "backend-*")
		if err != nil {
			t.Fatalf("create temp dir: %v", err)
		}
		b, err := New(dir)
		if err != nil {
			t.Fatalf("create backend: %v", err)
		}
		return b
	})
}

func Benchmark(b *testing.B) {
	root := b.TempDir()
	backendtesting.RunBackendBenchmarks(b, "FileBackend", func() backend.IBackend {
		dir, err := os.MkdirTemp(root, "backend-*")
		if err != nil {
			b.Fatalf("create temp dir: %v", err)
		}
		bk, err := New(dir)
		if err != nil {
			b.Fatalf("create backend: %v", err)
		}
		return bk
	})
}

// TestPersistence verifies that values written by one backend instance are
// readable by a fresh instance over the same directory (simulated restart).
func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	b1, err := New(dir)
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	if err := b1.Set("persistent-key", []byte("persistent-value"), true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b1.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b2, err := New(dir)
	if err != nil {
		t.Fatalf("reopen backend: %v", err)
	}
	defer b2.Close()

	result, loaded, err := b2.Get("persistent-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded {
		t.Fatalf("Expected value to survive a restart")
	}
	if !bytes.Equal(result, []byte("persistent-value")) {
		t.Errorf("Expected persistent-value, got %s", result)
	}
}

// TestDestroySurvivesRestart verifies that a wipe is durable: a fresh
// instance over the same directory sees no data.
func TestDestroySurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	b1, err := New(dir)
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	if err := b1.Set("doomed-key", []byte("doomed-value"), true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b1.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	b1.Close()

	b2, err := New(dir)
	if err != nil {
		t.Fatalf("reopen backend: %v", err)
	}
	defer b2.Close()

	_, loaded, err := b2.Get("doomed-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded {
		t.Errorf("Expected wipe to survive a restart")
	}
}

// TestFileNaming verifies that entry files stay inside the data directory
// even for hostile key names.
func TestFileNaming(t *testing.T) {
	dir := t.TempDir()

	b, err := New(dir)
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	defer b.Close()

	if err := b.Set("../../outside", []byte("value"), false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected exactly one entry file, got %d", len(entries))
	}

	// nothing may have been written outside the data directory
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "outside")); !os.IsNotExist(err) {
		t.Errorf("Entry file escaped the data directory")
	}
}
