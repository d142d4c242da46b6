package fsutil

import (
	"context"
	"fmt"
	"os"
)

// SnapshotSuffix is the suffix used for sidecar snapshot files.
const SnapshotSuffix = ".relint.bak"

// SnapshotPath returns the sidecar snapshot path for the given file.
func SnapshotPath(path string) string {
	return path + SnapshotSuffix
}

// CreateSnapshot copies the file at path to its sidecar snapshot location,
// replacing any sidecar already there. A stale sidecar left by an
// interrupted earlier run must not become this session's revert target, so
// the snapshot always reflects the file as it is right now.
func CreateSnapshot(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("create snapshot: %w", ctx.Err())
	default:
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("read original for snapshot: %w", err)
	}

	if err := WriteAtomic(ctx, SnapshotPath(path), content, info.Mode); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// RestoreSnapshot overwrites the file at path with its snapshot content.
// Returns true if the file was restored, false if no snapshot exists.
func RestoreSnapshot(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("restore snapshot: %w", ctx.Err())
	default:
	}

	snapPath := SnapshotPath(path)

	content, err := os.ReadFile(snapPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read snapshot: %w", err)
	}

	stat, err := os.Stat(snapPath)
	if err != nil {
		return false, fmt.Errorf("stat snapshot: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("restore from snapshot: %w", err)
	}

	return true, nil
}

// RemoveSnapshot removes the snapshot file for the given path if it exists.
// Returns true if a snapshot was removed, false if none existed.
func RemoveSnapshot(path string) (bool, error) {
	err := os.Remove(SnapshotPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove snapshot: %w", err)
	}

	return true, nil
}

// SnapshotExists checks if a snapshot file exists for the given path.
func SnapshotExists(path string) bool {
	_, err := os.Stat(SnapshotPath(path))
	return err == nil
}
