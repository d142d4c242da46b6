package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/relint/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "test.ts")
		content := []byte("const x = 1;\n")

		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)

		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.Mode != 0644 {
			t.Errorf("Mode = %o, want %o", info.Mode, 0644)
		}
	})

	t.Run("returns ErrNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), "/nonexistent/file.ts")

		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returns ErrIsDirectory for directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())

		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "irrelevant.ts")

		if err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file with given mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.ts")
		content := []byte("export {};\n")

		if err := fsutil.WriteAtomic(context.Background(), path, content, 0600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != 0600 {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), 0600)
		}
	})

	t.Run("replaces existing content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.ts")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("zero mode defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.ts")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.ts")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want 1", len(entries))
		}
	})
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("create restore remove round trip", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "file.ts")
		original := []byte("original content\n")
		if err := os.WriteFile(path, original, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()

		if err := fsutil.CreateSnapshot(ctx, path); err != nil {
			t.Fatalf("CreateSnapshot() error = %v", err)
		}
		if !fsutil.SnapshotExists(path) {
			t.Fatal("SnapshotExists() = false after create")
		}

		if err := os.WriteFile(path, []byte("mutated"), 0644); err != nil {
			t.Fatalf("mutate: %v", err)
		}

		restored, err := fsutil.RestoreSnapshot(ctx, path)
		if err != nil {
			t.Fatalf("RestoreSnapshot() error = %v", err)
		}
		if !restored {
			t.Fatal("RestoreSnapshot() = false, want true")
		}

		got, _ := os.ReadFile(path)
		if string(got) != string(original) {
			t.Errorf("content = %q, want byte-identical original", got)
		}

		removed, err := fsutil.RemoveSnapshot(path)
		if err != nil {
			t.Fatalf("RemoveSnapshot() error = %v", err)
		}
		if !removed {
			t.Error("RemoveSnapshot() = false, want true")
		}
		if fsutil.SnapshotExists(path) {
			t.Error("snapshot still exists after remove")
		}
	})

	t.Run("stale snapshot is replaced", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "file.ts")
		if err := os.WriteFile(path, []byte("current"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		// Sidecar left behind by an interrupted earlier run.
		if err := os.WriteFile(fsutil.SnapshotPath(path), []byte("stale"), 0644); err != nil {
			t.Fatalf("setup stale sidecar: %v", err)
		}

		if err := fsutil.CreateSnapshot(context.Background(), path); err != nil {
			t.Fatalf("CreateSnapshot() error = %v", err)
		}

		snapContent, _ := os.ReadFile(fsutil.SnapshotPath(path))
		if string(snapContent) != "current" {
			t.Errorf("snapshot = %q, want the file's current content", snapContent)
		}
	})

	t.Run("restore without snapshot is a no-op", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file.ts")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		restored, err := fsutil.RestoreSnapshot(context.Background(), path)
		if err != nil {
			t.Fatalf("RestoreSnapshot() error = %v", err)
		}
		if restored {
			t.Error("RestoreSnapshot() = true without a snapshot")
		}
	})

	t.Run("remove without snapshot is a no-op", func(t *testing.T) {
		t.Parallel()

		removed, err := fsutil.RemoveSnapshot(filepath.Join(t.TempDir(), "file.ts"))
		if err != nil {
			t.Fatalf("RemoveSnapshot() error = %v", err)
		}
		if removed {
			t.Error("RemoveSnapshot() = true without a snapshot")
		}
	})

	t.Run("snapshot path uses the sidecar suffix", func(t *testing.T) {
		t.Parallel()

		got := fsutil.SnapshotPath("/x/file.ts")
		want := "/x/file.ts" + fsutil.SnapshotSuffix
		if got != want {
			t.Errorf("SnapshotPath() = %q, want %q", got, want)
		}
	})
}
