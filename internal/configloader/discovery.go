package configloader

import (
	"os"
	"path/filepath"
)

// Config file names probed during project discovery, in precedence order.
//
//nolint:gochecknoglobals // Package-level probe list is intentional
var configFileNames = []string{".relint.yml", ".relint.yaml", "relint.yml"}

// DiscoverProjectConfig walks upward from startDir looking for a config
// file. Returns the first match, or "" when none exists.
func DiscoverProjectConfig(startDir string) string {
	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
