package config

import (
	"slices"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// namedBranch is a (key, entry) pair captured before resolution mutates
// the branch map.
type namedBranch struct {
	key    string
	branch *BranchConfig
}

// Resolve fills every unset field of cfg in place: global defaults first,
// then the built-in branch profiles, then user-defined entries, and finally
// the is-source-branch-for declarations. Explicit values are never
// overwritten. A user entry without regex or source-branches, or one
// naming an unknown is-source-branch-for target, yields a
// *ConfigurationError naming its key.
//
// Propagation is set-like: a declaring key already present in the target's
// source-branches is not appended again, so resolving twice changes
// nothing. Duplicates the user wrote are kept as they are.
func Resolve(cfg *Config) error {
	// 1. Snapshot the entries supplied by the user.
	supplied := snapshotBranches(cfg)

	// 2. Global defaults.
	applyGlobalDefaults(cfg)

	// 3. Built-in branches, in fixed order.
	for _, p := range builtinProfiles {
		applyBranchDefaults(cfg, getOrCreateBranch(cfg, p.key), p.defaults(cfg))
	}

	// Branch increments fall back to the global increment, so it is only
	// defaulted once the built-ins have read it.
	fillIfAbsent(&cfg.Increment, defaultIncrementStrategy)

	// 4. User-supplied entries, defaulted against their own regex/sources.
	for _, nb := range supplied {
		bc := nb.branch
		if bc.Regex == nil || *bc.Regex == "" {
			return &ConfigurationError{BranchKey: nb.key, Field: "regex"}
		}
		if len(bc.SourceBranches) == 0 {
			return &ConfigurationError{BranchKey: nb.key, Field: "source-branches"}
		}
		applyBranchDefaults(cfg, bc, customDefaults(*bc.Regex, bc.SourceBranches))
	}

	// 5. Reciprocal source branches. Separate pass so the result does not
	// depend on declaration order.
	for _, nb := range supplied {
		for _, targetKey := range nb.branch.IsSourceBranchFor {
			target := cfg.branchOrNil(targetKey)
			if target == nil {
				return &ConfigurationError{BranchKey: nb.key, Field: "is-source-branch-for", UnknownKey: targetKey}
			}
			if slices.Contains(target.SourceBranches, nb.key) {
				continue
			}
			target.SourceBranches = append(target.SourceBranches, nb.key)
		}
	}

	return nil
}

func snapshotBranches(cfg *Config) []namedBranch {
	keys := sortedKeys(cfg.Branches)
	supplied := make([]namedBranch, 0, len(keys))
	for _, k := range keys {
		bc := cfg.Branches[k]
		if bc == nil {
			bc = &BranchConfig{}
			cfg.Branches[k] = bc
		}
		if bc.Name == "" {
			bc.Name = k
		}
		supplied = append(supplied, namedBranch{key: k, branch: bc})
	}
	return supplied
}

func applyGlobalDefaults(cfg *Config) {
	fillIfAbsent(&cfg.AssemblyVersioningScheme, semver.AssemblyVersioningSchemeMajorMinorPatch)
	fillIfAbsent(&cfg.AssemblyFileVersioningScheme, semver.AssemblyFileVersioningSchemeMajorMinorPatch)
	fillIfAbsent(&cfg.AssemblyInformationalFormat, "")
	fillIfAbsent(&cfg.AssemblyVersioningFormat, "")
	fillIfAbsent(&cfg.AssemblyFileVersioningFormat, "")
	fillIfAbsent(&cfg.TagPrefix, DefaultTagPrefix)
	fillIfAbsent(&cfg.VersioningMode, semver.VersioningModeContinuousDelivery)
	fillIfAbsent(&cfg.ContinuousDeploymentFallbackTag, DefaultContinuousDeploymentFallbackTag)
	fillIfAbsent(&cfg.MajorVersionBumpMessage, DefaultMajorPattern)
	fillIfAbsent(&cfg.MinorVersionBumpMessage, DefaultMinorPattern)
	fillIfAbsent(&cfg.PatchVersionBumpMessage, DefaultPatchPattern)
	fillIfAbsent(&cfg.NoBumpMessage, DefaultNoBumpPattern)
	fillIfAbsent(&cfg.CommitMessageIncrementing, semver.CommitMessageIncrementEnabled)
	fillIfAbsent(&cfg.LegacySemVerPadding, DefaultPadding)
	fillIfAbsent(&cfg.BuildMetaDataPadding, DefaultPadding)
	fillIfAbsent(&cfg.CommitsSinceVersionSourcePadding, DefaultPadding)
	fillIfAbsent(&cfg.CommitDateFormat, DefaultCommitDateFormat)
	fillIfAbsent(&cfg.UpdateBuildNumber, true)
	fillIfAbsent(&cfg.TagPreReleaseWeight, DefaultTagPreReleaseWeight)
}

func getOrCreateBranch(cfg *Config, key string) *BranchConfig {
	if cfg.Branches == nil {
		cfg.Branches = make(map[string]*BranchConfig)
	}
	if bc, ok := cfg.Branches[key]; ok && bc != nil {
		return bc
	}
	bc := &BranchConfig{Name: key}
	cfg.Branches[key] = bc
	return bc
}

// applyBranchDefaults is the single fill routine shared by the built-in
// and user-defined passes; only the defaults differ between them.
func applyBranchDefaults(cfg *Config, bc *BranchConfig, d branchDefaults) {
	if bc.Regex == nil || *bc.Regex == "" {
		bc.Regex = stringPtr(d.regex)
	}
	fillSliceIfEmpty(&bc.SourceBranches, d.sourceBranches)
	fillIfAbsent(&bc.Tag, d.tag)
	if bc.TagNumberPattern == nil && d.tagNumberPattern != nil {
		bc.TagNumberPattern = stringPtr(*d.tagNumberPattern)
	}

	increment := defaultIncrementStrategy
	switch {
	case d.increment != nil:
		increment = *d.increment
	case cfg.Increment != nil:
		increment = *cfg.Increment
	}
	fillIfAbsent(&bc.Increment, increment)

	fillIfAbsent(&bc.PreventIncrementOfMergedBranchVersion, d.preventIncrement)
	fillIfAbsent(&bc.TrackMergeTarget, d.trackMergeTarget)

	mode := semver.VersioningModeContinuousDelivery
	switch {
	case d.mode != nil:
		mode = *d.mode
	case cfg.VersioningMode != nil:
		mode = *cfg.VersioningMode
	}
	fillIfAbsent(&bc.VersioningMode, mode)

	fillIfAbsent(&bc.TracksReleaseBranches, d.tracksReleases)
	fillIfAbsent(&bc.IsReleaseBranch, d.isReleaseBranch)
	fillIfAbsent(&bc.IsMainline, d.isMainline)
	fillIfAbsent(&bc.PreReleaseWeight, defaultPreReleaseWeight[d.regex])
}
