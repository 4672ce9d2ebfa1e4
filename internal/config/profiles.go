package config

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

// Reserved branch keys.
const (
	DevelopBranchKey     = "develop"
	MasterBranchKey      = "master"
	ReleaseBranchKey     = "release"
	FeatureBranchKey     = "feature"
	PullRequestBranchKey = "pull-request"
	HotfixBranchKey      = "hotfix"
	SupportBranchKey     = "support"
)

// Built-in branch regexes. A custom branch reusing one of these verbatim
// inherits the matching pre-release weight.
const (
	DevelopBranchRegex = `^dev(elop)?(ment)?$`
	MasterBranchRegex  = `^master$|^main$`
	ReleaseBranchRegex = `^releases?[/-]`
	FeatureBranchRegex = `^features?[/-]`
	PullRequestRegex   = `^(pull|pull\-requests|pr)[/-]`
	HotfixBranchRegex  = `^hotfix(es)?[/-]`
	SupportBranchRegex = `^support[/-]`
)

// Global defaults.
const (
	DefaultTagPrefix                       = "[vV]"
	DefaultContinuousDeploymentFallbackTag = "ci"
	DefaultMajorPattern                    = `\+semver:\s?(breaking|major)`
	DefaultMinorPattern                    = `\+semver:\s?(feature|minor)`
	DefaultPatchPattern                    = `\+semver:\s?(fix|patch)`
	DefaultNoBumpPattern                   = `\+semver:\s?(none|skip)`
	DefaultPadding                         = 4
	DefaultCommitDateFormat                = "yyyy-MM-dd"
	DefaultTagPreReleaseWeight             = 60000
	DefaultBranchTag                       = "useBranchName"
	DefaultPullRequestTagNumberPattern     = `[/-](?<number>\d+)`

	defaultIncrementStrategy = semver.IncrementStrategyInherit
)

// branchProfile is one row of the built-in branch table.
type branchProfile struct {
	key              string
	regex            string
	sourceBranches   []string
	tag              string
	tagNumberPattern *string
	increment        semver.IncrementStrategy
	preventIncrement bool
	trackMergeTarget bool
	tracksReleases   bool
	isReleaseBranch  bool
	isMainline       bool
	preReleaseWeight int
	// mode derives the default versioning mode from the global mode; nil
	// means the branch follows the global mode.
	mode func(global semver.VersioningMode) semver.VersioningMode
}

// builtinProfiles is applied in this order by Resolve.
var builtinProfiles = [...]branchProfile{
	{
		key:              DevelopBranchKey,
		regex:            DevelopBranchRegex,
		sourceBranches:   []string{MasterBranchKey},
		tag:              "alpha",
		increment:        semver.IncrementStrategyMinor,
		trackMergeTarget: true,
		tracksReleases:   true,
		preReleaseWeight: 0,
		mode: func(global semver.VersioningMode) semver.VersioningMode {
			if global == semver.VersioningModeMainline {
				return semver.VersioningModeMainline
			}
			return semver.VersioningModeContinuousDeployment
		},
	},
	{
		key:              MasterBranchKey,
		regex:            MasterBranchRegex,
		sourceBranches:   []string{DevelopBranchKey, ReleaseBranchKey},
		tag:              "",
		increment:        semver.IncrementStrategyPatch,
		preventIncrement: true,
		isMainline:       true,
		preReleaseWeight: 55000,
	},
	{
		key:              ReleaseBranchKey,
		regex:            ReleaseBranchRegex,
		sourceBranches:   []string{DevelopBranchKey, MasterBranchKey, SupportBranchKey, ReleaseBranchKey},
		tag:              "beta",
		increment:        semver.IncrementStrategyNone,
		preventIncrement: true,
		isReleaseBranch:  true,
		preReleaseWeight: 30000,
	},
	{
		key:              FeatureBranchKey,
		regex:            FeatureBranchRegex,
		sourceBranches:   []string{DevelopBranchKey, MasterBranchKey, ReleaseBranchKey, FeatureBranchKey, SupportBranchKey, HotfixBranchKey},
		tag:              DefaultBranchTag,
		increment:        semver.IncrementStrategyInherit,
		preReleaseWeight: 30000,
	},
	{
		key:              PullRequestBranchKey,
		regex:            PullRequestRegex,
		sourceBranches:   []string{DevelopBranchKey, MasterBranchKey, ReleaseBranchKey, FeatureBranchKey, SupportBranchKey, HotfixBranchKey},
		tag:              "PullRequest",
		tagNumberPattern: stringPtr(DefaultPullRequestTagNumberPattern),
		increment:        semver.IncrementStrategyInherit,
		preReleaseWeight: 30000,
	},
	{
		key:              HotfixBranchKey,
		regex:            HotfixBranchRegex,
		sourceBranches:   []string{DevelopBranchKey, MasterBranchKey, SupportBranchKey},
		tag:              "beta",
		increment:        semver.IncrementStrategyPatch,
		preReleaseWeight: 30000,
	},
	{
		key:              SupportBranchKey,
		regex:            SupportBranchRegex,
		sourceBranches:   []string{MasterBranchKey},
		tag:              "",
		increment:        semver.IncrementStrategyPatch,
		preventIncrement: true,
		isMainline:       true,
		preReleaseWeight: 55000,
	},
}

// defaultPreReleaseWeight maps a built-in regex to its pre-release weight.
var defaultPreReleaseWeight = func() map[string]int {
	m := make(map[string]int, len(builtinProfiles))
	for _, p := range builtinProfiles {
		m[p.regex] = p.preReleaseWeight
	}
	return m
}()

// BuiltinBranchKeys returns the reserved keys in resolution order.
func BuiltinBranchKeys() []string {
	keys := make([]string, 0, len(builtinProfiles))
	for _, p := range builtinProfiles {
		keys = append(keys, p.key)
	}
	return keys
}

// IsBuiltinBranchKey reports whether key is one of the reserved keys.
func IsBuiltinBranchKey(key string) bool {
	for _, p := range builtinProfiles {
		if p.key == key {
			return true
		}
	}
	return false
}

// branchDefaults are the values the fill routine uses for one entry.
type branchDefaults struct {
	regex            string
	sourceBranches   []string
	tag              string
	tagNumberPattern *string
	// increment nil means: global increment, then Inherit.
	increment        *semver.IncrementStrategy
	preventIncrement bool
	// mode nil means: the global versioning mode.
	mode             *semver.VersioningMode
	trackMergeTarget bool
	tracksReleases   bool
	isReleaseBranch  bool
	isMainline       bool
}

// defaults turns a profile row into fill values for cfg.
func (p branchProfile) defaults(cfg *Config) branchDefaults {
	d := branchDefaults{
		regex:            p.regex,
		sourceBranches:   p.sourceBranches,
		tag:              p.tag,
		tagNumberPattern: p.tagNumberPattern,
		increment:        incrementPtr(p.increment),
		preventIncrement: p.preventIncrement,
		trackMergeTarget: p.trackMergeTarget,
		tracksReleases:   p.tracksReleases,
		isReleaseBranch:  p.isReleaseBranch,
		isMainline:       p.isMainline,
	}
	if p.mode != nil && cfg.VersioningMode != nil {
		d.mode = versioningModePtr(p.mode(*cfg.VersioningMode))
	}
	return d
}

// customDefaults are the fill values for a user-defined entry: its own
// regex and source branches, everything else generic.
func customDefaults(regex string, sourceBranches []string) branchDefaults {
	return branchDefaults{
		regex:          regex,
		sourceBranches: sourceBranches,
		tag:            DefaultBranchTag,
	}
}
