package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// configFileNames lists the files searched for, in priority order.
var configFileNames = []string{
	filepath.Join(".github", "GitVersion.yml"),
	"GitVersion.yml",
	"gitversion.yml",
	"GitVersion.toml",
}

// FileLocator finds the configuration file for a working directory.
// FilePath, when set, takes precedence over discovery; a relative path is
// resolved against the working directory.
type FileLocator struct {
	FilePath string
}

// Locate returns the path of the configuration file for workDir, or "" if
// none exists.
func (l *FileLocator) Locate(workDir string) string {
	if l != nil && l.FilePath != "" {
		if filepath.IsAbs(l.FilePath) {
			return l.FilePath
		}
		return filepath.Join(workDir, l.FilePath)
	}
	for _, name := range configFileNames {
		path := filepath.Join(workDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ReadConfig loads the located file. A missing discovered file yields an
// empty Config; a missing explicit file is an error.
func (l *FileLocator) ReadConfig(workDir string) (*Config, error) {
	path := l.Locate(workDir)
	if path == "" {
		return &Config{}, nil
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return nil, err
	}
	return cfg, nil
}
