// Package cache persists computed version variables on disk, keyed by a
// fingerprint of the repository and configuration state.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
)

// RepositoryInfo is the view of a prepared repository the cache needs.
type RepositoryInfo interface {
	DotGitDirectory() string
	ProjectRootDirectory() string
	TargetBranch() string
	CommitID() string
	WithRepository(fn func(git.Repository) error) error
}

// Key is an opaque fingerprint. Two computations with equal keys are
// assumed to produce the same variables.
type Key struct {
	Value string
}

// KeyFactory derives cache keys.
type KeyFactory struct {
	logger *log.Logger
}

// NewKeyFactory creates a KeyFactory. A nil logger uses log.Default().
func NewKeyFactory(logger *log.Logger) *KeyFactory {
	if logger == nil {
		logger = log.Default()
	}
	return &KeyFactory{logger: logger}
}

// Create fingerprints every ref (HEAD included), the requested branch and
// commit, the located configuration file and the override configuration.
func (f *KeyFactory) Create(p RepositoryInfo, override *config.Config, locator *config.FileLocator) (Key, error) {
	h := sha1.New()

	err := p.WithRepository(func(repo git.Repository) error {
		refs, err := repo.References()
		if err != nil {
			return err
		}
		for _, ref := range refs {
			writeField(h, ref.Name, ref.Hash)
		}
		return nil
	})
	if err != nil {
		return Key{}, fmt.Errorf("fingerprinting references: %w", err)
	}

	writeField(h, "branch", p.TargetBranch())
	writeField(h, "commit", p.CommitID())

	if path := locator.Locate(p.ProjectRootDirectory()); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			f.logger.Debug("Config file not found for cache key", "path", path)
		case err != nil:
			return Key{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			writeField(h, "config", string(data))
		}
	}

	if override != nil {
		data, err := yaml.Marshal(override)
		if err != nil {
			return Key{}, fmt.Errorf("encoding override config: %w", err)
		}
		writeField(h, "override", string(data))
	}

	key := Key{Value: hex.EncodeToString(h.Sum(nil))}
	f.logger.Debug("Computed cache key", "key", key.Value)
	return key, nil
}

func writeField(h hash.Hash, name, value string) {
	fmt.Fprintf(h, "%s=%d:%s\n", name, len(value), value)
}
