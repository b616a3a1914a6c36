package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the configuration file runefmt looks for.
const ManifestName = "runefmt.toml"

// FindManifest walks up from startDir looking for runefmt.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadForDir discovers and loads the configuration governing startDir.
// Без манифеста действует Default.
func LoadForDir(startDir string) (Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
