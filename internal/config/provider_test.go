package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileLocator_Discovery(t *testing.T) {
	dir := t.TempDir()
	l := &FileLocator{}
	require.Equal(t, "", l.Locate(dir))

	writeFile(t, filepath.Join(dir, "GitVersion.toml"), "")
	require.Equal(t, filepath.Join(dir, "GitVersion.toml"), l.Locate(dir))

	writeFile(t, filepath.Join(dir, "GitVersion.yml"), "")
	require.Equal(t, filepath.Join(dir, "GitVersion.yml"), l.Locate(dir))

	writeFile(t, filepath.Join(dir, ".github", "GitVersion.yml"), "")
	require.Equal(t, filepath.Join(dir, ".github", "GitVersion.yml"), l.Locate(dir))
}

func TestFileLocator_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "GitVersion.yml"), "")

	l := &FileLocator{FilePath: "custom.yml"}
	require.Equal(t, filepath.Join(dir, "custom.yml"), l.Locate(dir))

	abs := filepath.Join(t.TempDir(), "abs.yml")
	l = &FileLocator{FilePath: abs}
	require.Equal(t, abs, l.Locate(dir))
}

func TestFileLocator_ReadConfig(t *testing.T) {
	dir := t.TempDir()

	var nilLocator *FileLocator
	cfg, err := nilLocator.ReadConfig(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	_, err = (&FileLocator{FilePath: "missing.yml"}).ReadConfig(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")

	writeFile(t, filepath.Join(dir, "gitversion.yml"), "tag-prefix: x\n")
	cfg, err = (&FileLocator{}).ReadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, "x", *cfg.TagPrefix)
}

func TestProvide_FileAndOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "GitVersion.yml"), `
tag-prefix: file-
mode: ContinuousDeployment
branches:
  develop:
    tag: file-tag
    increment: Patch
`)
	mainline := semver.VersioningModeMainline
	override := &Config{
		VersioningMode: &mainline,
		Branches: map[string]*BranchConfig{
			"develop": {Tag: stringPtr("override-tag")},
			"docs":    {Regex: stringPtr(`^docs/`), SourceBranches: []string{"master"}},
		},
	}

	cfg, err := Provide(dir, override, &FileLocator{})
	require.NoError(t, err)

	require.Equal(t, "file-", *cfg.TagPrefix)
	require.Equal(t, semver.VersioningModeMainline, *cfg.VersioningMode)
	require.Equal(t, "override-tag", *cfg.Branches["develop"].Tag)
	require.Equal(t, semver.IncrementStrategyPatch, *cfg.Branches["develop"].Increment)
	require.Contains(t, cfg.Branches, "docs")

	// The override is left untouched.
	require.Nil(t, override.Branches["docs"].Tag)
}

func TestProvide_NoFile(t *testing.T) {
	cfg, err := Provide(t.TempDir(), nil, nil)
	require.NoError(t, err)
	require.Len(t, cfg.Branches, 7)
}

func TestProvide_ConfigurationError(t *testing.T) {
	override := &Config{Branches: map[string]*BranchConfig{"broken": {}}}

	_, err := Provide(t.TempDir(), override, nil)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "broken", cfgErr.BranchKey)
}

func TestProvide_InvalidRegex(t *testing.T) {
	override := &Config{Branches: map[string]*BranchConfig{
		"broken": {Regex: stringPtr(`^(docs`), SourceBranches: []string{"master"}},
	}}

	_, err := Provide(t.TempDir(), override, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid regex for branch "broken"`)

	_, err = Provide(t.TempDir(), &Config{TagPrefix: stringPtr("[")}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid tag-prefix")
}
