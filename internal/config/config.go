// Package config holds the GitVersion configuration model and the
// resolution engine that turns a sparse user configuration into one where
// every built-in and custom branch has defined behaviour.
package config

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

// Config is the root configuration. All optional fields are pointers: nil
// means "not set" until Resolve fills it.
type Config struct {
	AssemblyVersioningScheme         *semver.AssemblyVersioningScheme     `yaml:"assembly-versioning-scheme,omitempty" toml:"assembly-versioning-scheme,omitempty" json:"assembly-versioning-scheme,omitempty"`
	AssemblyFileVersioningScheme     *semver.AssemblyFileVersioningScheme `yaml:"assembly-file-versioning-scheme,omitempty" toml:"assembly-file-versioning-scheme,omitempty" json:"assembly-file-versioning-scheme,omitempty"`
	AssemblyInformationalFormat      *string                              `yaml:"assembly-informational-format,omitempty" toml:"assembly-informational-format,omitempty" json:"assembly-informational-format,omitempty"`
	AssemblyVersioningFormat         *string                              `yaml:"assembly-versioning-format,omitempty" toml:"assembly-versioning-format,omitempty" json:"assembly-versioning-format,omitempty"`
	AssemblyFileVersioningFormat     *string                              `yaml:"assembly-file-versioning-format,omitempty" toml:"assembly-file-versioning-format,omitempty" json:"assembly-file-versioning-format,omitempty"`
	TagPrefix                        *string                              `yaml:"tag-prefix,omitempty" toml:"tag-prefix,omitempty" json:"tag-prefix,omitempty"`
	NextVersion                      *string                              `yaml:"next-version,omitempty" toml:"next-version,omitempty" json:"next-version,omitempty"`
	VersioningMode                   *semver.VersioningMode               `yaml:"mode,omitempty" toml:"mode,omitempty" json:"mode,omitempty"`
	ContinuousDeploymentFallbackTag  *string                              `yaml:"continuous-delivery-fallback-tag,omitempty" toml:"continuous-delivery-fallback-tag,omitempty" json:"continuous-delivery-fallback-tag,omitempty"`
	Increment                        *semver.IncrementStrategy            `yaml:"increment,omitempty" toml:"increment,omitempty" json:"increment,omitempty"`
	CommitMessageIncrementing        *semver.CommitMessageIncrementMode   `yaml:"commit-message-incrementing,omitempty" toml:"commit-message-incrementing,omitempty" json:"commit-message-incrementing,omitempty"`
	MajorVersionBumpMessage          *string                              `yaml:"major-version-bump-message,omitempty" toml:"major-version-bump-message,omitempty" json:"major-version-bump-message,omitempty"`
	MinorVersionBumpMessage          *string                              `yaml:"minor-version-bump-message,omitempty" toml:"minor-version-bump-message,omitempty" json:"minor-version-bump-message,omitempty"`
	PatchVersionBumpMessage          *string                              `yaml:"patch-version-bump-message,omitempty" toml:"patch-version-bump-message,omitempty" json:"patch-version-bump-message,omitempty"`
	NoBumpMessage                    *string                              `yaml:"no-bump-message,omitempty" toml:"no-bump-message,omitempty" json:"no-bump-message,omitempty"`
	LegacySemVerPadding              *int                                 `yaml:"legacy-semver-padding,omitempty" toml:"legacy-semver-padding,omitempty" json:"legacy-semver-padding,omitempty"`
	BuildMetaDataPadding             *int                                 `yaml:"build-metadata-padding,omitempty" toml:"build-metadata-padding,omitempty" json:"build-metadata-padding,omitempty"`
	CommitsSinceVersionSourcePadding *int                                 `yaml:"commits-since-version-source-padding,omitempty" toml:"commits-since-version-source-padding,omitempty" json:"commits-since-version-source-padding,omitempty"`
	CommitDateFormat                 *string                              `yaml:"commit-date-format,omitempty" toml:"commit-date-format,omitempty" json:"commit-date-format,omitempty"`
	UpdateBuildNumber                *bool                                `yaml:"update-build-number,omitempty" toml:"update-build-number,omitempty" json:"update-build-number,omitempty"`
	TagPreReleaseWeight              *int                                 `yaml:"tag-pre-release-weight,omitempty" toml:"tag-pre-release-weight,omitempty" json:"tag-pre-release-weight,omitempty"`
	Branches                         map[string]*BranchConfig             `yaml:"branches,omitempty" toml:"branches,omitempty" json:"branches,omitempty"`
}

// branchOrNil returns the entry for key, or nil.
func (cfg *Config) branchOrNil(key string) *BranchConfig {
	if cfg.Branches == nil {
		return nil
	}
	return cfg.Branches[key]
}
