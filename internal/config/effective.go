package config

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

// EffectiveConfiguration is the flattened view of a resolved Config for one
// branch. Every field has a concrete value.
type EffectiveConfiguration struct {
	// Global fields
	AssemblyVersioningScheme         semver.AssemblyVersioningScheme
	AssemblyFileVersioningScheme     semver.AssemblyFileVersioningScheme
	AssemblyInformationalFormat      string
	AssemblyVersioningFormat         string
	AssemblyFileVersioningFormat     string
	TagPrefix                        string
	NextVersion                      string
	ContinuousDeploymentFallbackTag  string
	CommitMessageIncrementing        semver.CommitMessageIncrementMode
	MajorVersionBumpMessage          string
	MinorVersionBumpMessage          string
	PatchVersionBumpMessage          string
	NoBumpMessage                    string
	LegacySemVerPadding              int
	BuildMetaDataPadding             int
	CommitsSinceVersionSourcePadding int
	CommitDateFormat                 string
	UpdateBuildNumber                bool
	TagPreReleaseWeight              int

	// Branch fields
	BranchKey                             string
	BranchRegex                           string
	SourceBranches                        []string
	Tag                                   string
	TagNumberPattern                      string
	Increment                             semver.IncrementStrategy
	VersioningMode                        semver.VersioningMode
	PreventIncrementOfMergedBranchVersion bool
	TrackMergeTarget                      bool
	TracksReleaseBranches                 bool
	IsReleaseBranch                       bool
	IsMainline                            bool
	PreReleaseWeight                      int
}

// NewEffectiveConfiguration flattens cfg and branch. Both are expected to
// have been through Resolve; anything still unset takes its zero value.
func NewEffectiveConfiguration(cfg *Config, key string, branch *BranchConfig) EffectiveConfiguration {
	ec := EffectiveConfiguration{
		AssemblyVersioningScheme:         deref(cfg.AssemblyVersioningScheme),
		AssemblyFileVersioningScheme:     deref(cfg.AssemblyFileVersioningScheme),
		AssemblyInformationalFormat:      deref(cfg.AssemblyInformationalFormat),
		AssemblyVersioningFormat:         deref(cfg.AssemblyVersioningFormat),
		AssemblyFileVersioningFormat:     deref(cfg.AssemblyFileVersioningFormat),
		TagPrefix:                        deref(cfg.TagPrefix),
		NextVersion:                      deref(cfg.NextVersion),
		ContinuousDeploymentFallbackTag:  deref(cfg.ContinuousDeploymentFallbackTag),
		CommitMessageIncrementing:        deref(cfg.CommitMessageIncrementing),
		MajorVersionBumpMessage:          deref(cfg.MajorVersionBumpMessage),
		MinorVersionBumpMessage:          deref(cfg.MinorVersionBumpMessage),
		PatchVersionBumpMessage:          deref(cfg.PatchVersionBumpMessage),
		NoBumpMessage:                    deref(cfg.NoBumpMessage),
		LegacySemVerPadding:              deref(cfg.LegacySemVerPadding),
		BuildMetaDataPadding:             deref(cfg.BuildMetaDataPadding),
		CommitsSinceVersionSourcePadding: deref(cfg.CommitsSinceVersionSourcePadding),
		CommitDateFormat:                 deref(cfg.CommitDateFormat),
		UpdateBuildNumber:                deref(cfg.UpdateBuildNumber),
		TagPreReleaseWeight:              deref(cfg.TagPreReleaseWeight),
		BranchKey:                        key,
	}

	if branch != nil {
		ec.BranchRegex = deref(branch.Regex)
		ec.SourceBranches = append([]string(nil), branch.SourceBranches...)
		ec.Tag = deref(branch.Tag)
		ec.TagNumberPattern = deref(branch.TagNumberPattern)
		ec.Increment = deref(branch.Increment)
		ec.VersioningMode = deref(branch.VersioningMode)
		ec.PreventIncrementOfMergedBranchVersion = deref(branch.PreventIncrementOfMergedBranchVersion)
		ec.TrackMergeTarget = deref(branch.TrackMergeTarget)
		ec.TracksReleaseBranches = deref(branch.TracksReleaseBranches)
		ec.IsReleaseBranch = deref(branch.IsReleaseBranch)
		ec.IsMainline = deref(branch.IsMainline)
		ec.PreReleaseWeight = deref(branch.PreReleaseWeight)
	}

	return ec
}

// ForBranch resolves the branch entry for branchName and flattens it.
func (cfg *Config) ForBranch(branchName string) (EffectiveConfiguration, error) {
	key, bc, err := cfg.GetBranchConfiguration(branchName)
	if err != nil {
		return EffectiveConfiguration{}, err
	}
	return NewEffectiveConfiguration(cfg, key, bc), nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
