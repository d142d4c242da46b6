package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldChecker       = "checker"
	FieldDryRun        = "dry_run"
	FieldMaxIterations = "max_iterations"
	FieldKeepBackups   = "keep_backups"

	// Statistics fields.
	FieldFilesDiscovered   = "files_discovered"
	FieldFilesProcessed    = "files_processed"
	FieldFilesModified     = "files_modified"
	FieldDiagnosticsBefore = "diagnostics_before"
	FieldDiagnosticsAfter  = "diagnostics_after"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldKind        = "kind"
	FieldDescription = "description"
)
