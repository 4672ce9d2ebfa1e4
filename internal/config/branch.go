package config

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

// BranchConfig holds per-branch configuration. Scalar fields are pointers:
// nil means "not set". An empty SourceBranches list counts as unset.
type BranchConfig struct {
	Name                                  string                    `yaml:"-" toml:"-" json:"-"`
	Regex                                 *string                   `yaml:"regex,omitempty" toml:"regex,omitempty" json:"regex,omitempty"`
	SourceBranches                        []string                  `yaml:"source-branches,omitempty" toml:"source-branches,omitempty" json:"source-branches,omitempty"`
	IsSourceBranchFor                     []string                  `yaml:"is-source-branch-for,omitempty" toml:"is-source-branch-for,omitempty" json:"is-source-branch-for,omitempty"`
	Tag                                   *string                   `yaml:"tag,omitempty" toml:"tag,omitempty" json:"tag,omitempty"`
	TagNumberPattern                      *string                   `yaml:"tag-number-pattern,omitempty" toml:"tag-number-pattern,omitempty" json:"tag-number-pattern,omitempty"`
	Increment                             *semver.IncrementStrategy `yaml:"increment,omitempty" toml:"increment,omitempty" json:"increment,omitempty"`
	PreventIncrementOfMergedBranchVersion *bool                     `yaml:"prevent-increment-of-merged-branch-version,omitempty" toml:"prevent-increment-of-merged-branch-version,omitempty" json:"prevent-increment-of-merged-branch-version,omitempty"`
	TrackMergeTarget                      *bool                     `yaml:"track-merge-target,omitempty" toml:"track-merge-target,omitempty" json:"track-merge-target,omitempty"`
	VersioningMode                        *semver.VersioningMode    `yaml:"mode,omitempty" toml:"mode,omitempty" json:"mode,omitempty"`
	TracksReleaseBranches                 *bool                     `yaml:"tracks-release-branches,omitempty" toml:"tracks-release-branches,omitempty" json:"tracks-release-branches,omitempty"`
	IsReleaseBranch                       *bool                     `yaml:"is-release-branch,omitempty" toml:"is-release-branch,omitempty" json:"is-release-branch,omitempty"`
	IsMainline                            *bool                     `yaml:"is-mainline,omitempty" toml:"is-mainline,omitempty" json:"is-mainline,omitempty"`
	PreReleaseWeight                      *int                      `yaml:"pre-release-weight,omitempty" toml:"pre-release-weight,omitempty" json:"pre-release-weight,omitempty"`
}

// MergeTo copies set fields from bc into target. Used to overlay an
// override configuration on top of the file configuration.
func (bc *BranchConfig) MergeTo(target *BranchConfig) {
	if bc == nil || target == nil {
		return
	}
	overlay(&target.Regex, bc.Regex)
	if len(bc.SourceBranches) > 0 {
		target.SourceBranches = append([]string(nil), bc.SourceBranches...)
	}
	if len(bc.IsSourceBranchFor) > 0 {
		target.IsSourceBranchFor = append([]string(nil), bc.IsSourceBranchFor...)
	}
	overlay(&target.Tag, bc.Tag)
	overlay(&target.TagNumberPattern, bc.TagNumberPattern)
	overlay(&target.Increment, bc.Increment)
	overlay(&target.PreventIncrementOfMergedBranchVersion, bc.PreventIncrementOfMergedBranchVersion)
	overlay(&target.TrackMergeTarget, bc.TrackMergeTarget)
	overlay(&target.VersioningMode, bc.VersioningMode)
	overlay(&target.TracksReleaseBranches, bc.TracksReleaseBranches)
	overlay(&target.IsReleaseBranch, bc.IsReleaseBranch)
	overlay(&target.IsMainline, bc.IsMainline)
	overlay(&target.PreReleaseWeight, bc.PreReleaseWeight)
}

// Clone returns a deep copy of the branch configuration.
func (bc *BranchConfig) Clone() *BranchConfig {
	if bc == nil {
		return nil
	}
	c := &BranchConfig{Name: bc.Name}
	bc.MergeTo(c)
	return c
}
