// Package config defines core configuration types for relint.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies the output format for run reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is a known valid format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// MaxIterationsCeiling is the largest accepted iteration budget.
const MaxIterationsCeiling = 100

// DefaultMaxIterations is the default per-file iteration budget.
const DefaultMaxIterations = 20

// Config is the root configuration structure for relint.
type Config struct {
	// Checker is the external checker argv. The target path is appended
	// per measurement; an empty target measures the whole project.
	Checker []string `yaml:"checker"`

	// Extensions lists the file extensions treated as repair targets.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files and directories to skip.
	Ignore []string `yaml:"ignore"`

	// MaxIterations is the per-file repair loop ceiling.
	MaxIterations int `yaml:"max_iterations"`

	// KeepBackups leaves sidecar snapshots behind after a session
	// completes instead of removing them.
	KeepBackups bool `yaml:"keep_backups"`

	// DisableRules lists rewrite rule IDs excluded from the table.
	DisableRules []string `yaml:"disable_rules"`

	// CLI-level options (not persisted to config files).

	// DryRun previews rewrites without writing or looping.
	DryRun bool `yaml:"-"`

	// AllFiles repairs every discovered file instead of only the files
	// the checker flags in the seeding measurement.
	AllFiles bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Checker:       []string{"npx", "eslint", "--format", "json"},
		Extensions:    []string{".js", ".jsx", ".ts", ".tsx"},
		MaxIterations: DefaultMaxIterations,
		Format:        FormatText,
	}
}
