package config

import (
	"os"
	"path/filepath"

	"github.com/prepstack/packman/pkg/fsutil"
)

// GetDefaultConfigPath returns the platform default config file location.
func GetDefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fsutil.AppName, "config.yaml"), nil
}
