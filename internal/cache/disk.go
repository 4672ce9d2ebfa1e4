package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/output"
)

// DirName is the cache directory created inside the .git directory.
const DirName = "gitversion_cache"

// DiskCache stores one YAML file per key under <dotgit>/gitversion_cache.
type DiskCache struct {
	logger *log.Logger
}

// NewDiskCache creates a DiskCache. A nil logger uses log.Default().
func NewDiskCache(logger *log.Logger) *DiskCache {
	if logger == nil {
		logger = log.Default()
	}
	return &DiskCache{logger: logger}
}

// Dir returns the cache directory for p.
func Dir(p RepositoryInfo) string {
	return filepath.Join(p.DotGitDirectory(), DirName)
}

func cacheFile(p RepositoryInfo, key Key) string {
	return filepath.Join(Dir(p), key.Value+".yml")
}

// Load returns the cached variables for key. Missing and unreadable
// entries are both a miss; a file that does not decode is deleted.
func (c *DiskCache) Load(p RepositoryInfo, key Key) (output.VersionVariables, bool) {
	path := cacheFile(p, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("Could not read cache file", "path", path, "err", err)
		}
		return nil, false
	}

	var vars output.VersionVariables
	if err := yaml.Unmarshal(data, &vars); err != nil || len(vars) == 0 {
		c.logger.Warn("Deleting invalid cache file", "path", path, "err", err)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("Could not delete cache file", "path", path, "err", err)
		}
		return nil, false
	}

	c.logger.Debug("Loaded version variables from cache", "path", path)
	return vars, true
}

// Save writes vars under key. The file is written to a temporary name and
// renamed into place so concurrent readers never see a partial entry. All
// failures are returned joined.
func (c *DiskCache) Save(p RepositoryInfo, key Key, vars output.VersionVariables) error {
	dir := Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Join(fmt.Errorf("creating cache directory %s: %w", dir, err))
	}

	data, err := yaml.Marshal(vars)
	if err != nil {
		return errors.Join(fmt.Errorf("encoding version variables: %w", err))
	}

	tmp, err := os.CreateTemp(dir, key.Value+".*.tmp")
	if err != nil {
		return errors.Join(fmt.Errorf("creating cache file: %w", err))
	}

	var errs []error
	if _, err := tmp.Write(data); err != nil {
		errs = append(errs, fmt.Errorf("writing cache file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing cache file: %w", err))
	}
	if len(errs) == 0 {
		if err := os.Rename(tmp.Name(), cacheFile(p, key)); err != nil {
			errs = append(errs, fmt.Errorf("renaming cache file: %w", err))
		}
	}
	if len(errs) > 0 {
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing temporary cache file: %w", err))
		}
		return errors.Join(errs...)
	}

	c.logger.Debug("Wrote version variables to cache", "path", cacheFile(p, key))
	return nil
}
