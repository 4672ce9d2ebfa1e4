package finder

import (
	"regexp"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// bumpPatterns are the compiled commit-message bump patterns of one
// effective configuration. A nil pattern never matches.
type bumpPatterns struct {
	major, minor, patch, none *regexp.Regexp
	mode                      semver.CommitMessageIncrementMode
}

func newBumpPatterns(ec config.EffectiveConfiguration) bumpPatterns {
	return bumpPatterns{
		major: compileOrNil(ec.MajorVersionBumpMessage),
		minor: compileOrNil(ec.MinorVersionBumpMessage),
		patch: compileOrNil(ec.PatchVersionBumpMessage),
		none:  compileOrNil(ec.NoBumpMessage),
		mode:  ec.CommitMessageIncrementing,
	}
}

func compileOrNil(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// analyze returns the bump a single commit asks for. found is false when
// the message carries no directive at all.
func (p bumpPatterns) analyze(c git.Commit) (field semver.VersionField, found bool) {
	switch {
	case p.mode == semver.CommitMessageIncrementDisabled:
		return semver.VersionFieldNone, false
	case p.mode == semver.CommitMessageIncrementMergeMessageOnly && !c.IsMerge():
		return semver.VersionFieldNone, false
	}

	switch {
	case matches(p.major, c.Message):
		return semver.VersionFieldMajor, true
	case matches(p.minor, c.Message):
		return semver.VersionFieldMinor, true
	case matches(p.patch, c.Message):
		return semver.VersionFieldPatch, true
	case matches(p.none, c.Message):
		return semver.VersionFieldNone, true
	}
	return semver.VersionFieldNone, false
}

func matches(re *regexp.Regexp, msg string) bool {
	return re != nil && re.MatchString(msg)
}

// branchIncrement returns the branch's configured increment. Inherit
// falls back to Patch.
func branchIncrement(ec config.EffectiveConfiguration) semver.VersionField {
	if ec.Increment == semver.IncrementStrategyInherit {
		return semver.VersionFieldPatch
	}
	return ec.Increment.ToVersionField()
}

// determineIncrement scans commits for the highest bump directive. The
// branch increment acts as a floor whenever the base version is
// incrementable, and versions below 1.0.0 never get a Major bump.
func determineIncrement(bv BaseVersion, commits []git.Commit, ec config.EffectiveConfiguration) semver.VersionField {
	patterns := newBumpPatterns(ec)
	highest, anyFound := semver.VersionFieldNone, false
	for _, c := range commits {
		field, found := patterns.analyze(c)
		if !found {
			continue
		}
		anyFound = true
		highest = max(highest, field)
	}

	defaultField := semver.VersionFieldNone
	if bv.ShouldIncrement {
		defaultField = branchIncrement(ec)
	}
	if !anyFound {
		return defaultField
	}

	if bv.SemanticVersion.Major == 0 && highest == semver.VersionFieldMajor {
		highest = semver.VersionFieldMinor
	}
	return max(highest, defaultField)
}

// incrementVersion applies field to ver. A numbered pre-release is
// advanced by bumping its number instead.
func incrementVersion(ver semver.SemanticVersion, field semver.VersionField, shouldIncrement bool) semver.SemanticVersion {
	ver.BuildMetaData = semver.BuildMetaData{}
	if !shouldIncrement {
		return ver
	}
	if ver.PreReleaseTag.Number != nil {
		return ver.WithPreReleaseTag(ver.PreReleaseTag.WithNumber(*ver.PreReleaseTag.Number + 1))
	}
	return ver.IncrementField(field)
}

// mainlineVersion increments once per commit since the base version,
// oldest first. A commit without a directive uses the branch increment.
// The first commit is skipped when the base version already names the
// release.
func mainlineVersion(bv BaseVersion, commits []git.Commit, ec config.EffectiveConfiguration) semver.SemanticVersion {
	patterns := newBumpPatterns(ec)
	ver := bv.SemanticVersion
	ver.BuildMetaData = semver.BuildMetaData{}

	skipFirst := !bv.ShouldIncrement
	for i := len(commits) - 1; i >= 0; i-- {
		if skipFirst {
			skipFirst = false
			continue
		}
		field, found := patterns.analyze(commits[i])
		if !found {
			field = branchIncrement(ec)
		}
		if ver.Major == 0 && field == semver.VersionFieldMajor {
			field = semver.VersionFieldMinor
		}
		ver = ver.IncrementField(field)
	}
	return ver
}
