package config

import (
	"fmt"
	"regexp"
	"slices"
)

// Provide builds the resolved configuration for workDir: the located file
// (or an empty one), with override applied on top, run through Resolve.
func Provide(workDir string, override *Config, locator *FileLocator) (*Config, error) {
	cfg, err := locator.ReadConfig(workDir)
	if err != nil {
		return nil, err
	}
	cfg.merge(override)

	if err := Resolve(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validateRegexes(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays every set field of src onto cfg. Branch entries are
// merged per key.
func (cfg *Config) merge(src *Config) {
	if src == nil {
		return
	}
	overlay(&cfg.AssemblyVersioningScheme, src.AssemblyVersioningScheme)
	overlay(&cfg.AssemblyFileVersioningScheme, src.AssemblyFileVersioningScheme)
	overlay(&cfg.AssemblyInformationalFormat, src.AssemblyInformationalFormat)
	overlay(&cfg.AssemblyVersioningFormat, src.AssemblyVersioningFormat)
	overlay(&cfg.AssemblyFileVersioningFormat, src.AssemblyFileVersioningFormat)
	overlay(&cfg.TagPrefix, src.TagPrefix)
	overlay(&cfg.NextVersion, src.NextVersion)
	overlay(&cfg.VersioningMode, src.VersioningMode)
	overlay(&cfg.ContinuousDeploymentFallbackTag, src.ContinuousDeploymentFallbackTag)
	overlay(&cfg.Increment, src.Increment)
	overlay(&cfg.CommitMessageIncrementing, src.CommitMessageIncrementing)
	overlay(&cfg.MajorVersionBumpMessage, src.MajorVersionBumpMessage)
	overlay(&cfg.MinorVersionBumpMessage, src.MinorVersionBumpMessage)
	overlay(&cfg.PatchVersionBumpMessage, src.PatchVersionBumpMessage)
	overlay(&cfg.NoBumpMessage, src.NoBumpMessage)
	overlay(&cfg.LegacySemVerPadding, src.LegacySemVerPadding)
	overlay(&cfg.BuildMetaDataPadding, src.BuildMetaDataPadding)
	overlay(&cfg.CommitsSinceVersionSourcePadding, src.CommitsSinceVersionSourcePadding)
	overlay(&cfg.CommitDateFormat, src.CommitDateFormat)
	overlay(&cfg.UpdateBuildNumber, src.UpdateBuildNumber)
	overlay(&cfg.TagPreReleaseWeight, src.TagPreReleaseWeight)

	for key, bc := range src.Branches {
		if bc == nil {
			continue
		}
		if cfg.Branches == nil {
			cfg.Branches = make(map[string]*BranchConfig)
		}
		if existing := cfg.Branches[key]; existing != nil {
			bc.MergeTo(existing)
			continue
		}
		cfg.Branches[key] = bc.Clone()
	}
}

func (cfg *Config) validateRegexes() error {
	patterns := map[string]*string{
		"tag-prefix":                 cfg.TagPrefix,
		"major-version-bump-message": cfg.MajorVersionBumpMessage,
		"minor-version-bump-message": cfg.MinorVersionBumpMessage,
		"patch-version-bump-message": cfg.PatchVersionBumpMessage,
		"no-bump-message":            cfg.NoBumpMessage,
	}
	for _, name := range sortedKeys(patterns) {
		if p := patterns[name]; p != nil {
			if _, err := regexp.Compile(*p); err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
		}
	}
	for _, key := range sortedKeys(cfg.Branches) {
		bc := cfg.Branches[key]
		if _, err := regexp.Compile(*bc.Regex); err != nil {
			return fmt.Errorf("invalid regex for branch %q: %w", key, err)
		}
		if bc.TagNumberPattern != nil {
			if _, err := regexp.Compile(*bc.TagNumberPattern); err != nil {
				return fmt.Errorf("invalid tag-number-pattern for branch %q: %w", key, err)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
