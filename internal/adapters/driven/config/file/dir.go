package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the configuration directory.
const ConfigDirEnv = "TUBEQA_CONFIG_DIR"

// DefaultConfigDir returns $TUBEQA_CONFIG_DIR, or ~/.tubeqa when unset.
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".tubeqa"), nil
}
