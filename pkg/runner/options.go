// Package runner provides multi-file repair orchestration.
//
// Files are processed strictly one at a time: the external checker is an
// expensive, often project-scoped resource, and sequential sessions make
// the snapshot/revert safety argument trivially correct. A run is
// cancellable only between sessions.
package runner

import "github.com/yaklabco/relint/pkg/repair"

// Options controls multi-file repair behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to
	// process. If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) considered repair targets. Defaults via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir.
	ExcludeGlobs []string

	// OnlyProblemFiles seeds the run from a single project-wide
	// measurement, repairing only files the checker already flagged.
	OnlyProblemFiles bool

	// Repair holds the per-session options forwarded to the controller.
	Repair repair.Options
}

// DefaultExtensions returns the default repair target extensions.
func DefaultExtensions() []string {
	return []string{".js", ".jsx", ".ts", ".tsx"}
}

// DefaultExcludeDirs are directory names never traversed.
//
//nolint:gochecknoglobals // Package-level default list is intentional
var DefaultExcludeDirs = []string{"node_modules", "dist", "build", "coverage"}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
