// Package finder computes the semantic version of the current commit from
// version tags, branch names and commit messages.
package finder

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// VersionFinder is the default version-finding pipeline.
type VersionFinder struct {
	logger *log.Logger
}

// Option configures a VersionFinder.
type Option func(*VersionFinder)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(f *VersionFinder) { f.logger = logger }
}

// NewVersionFinder creates a VersionFinder.
func NewVersionFinder(opts ...Option) *VersionFinder {
	f := &VersionFinder{logger: log.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindVersion computes the version for ctx.CurrentCommit.
func (f *VersionFinder) FindVersion(ctx *context.GitVersionContext) (semver.SemanticVersion, error) {
	ec := ctx.Configuration
	branchName := ctx.BranchName()

	// A tagged commit is versioned by its tag.
	if ctx.IsCurrentCommitTagged {
		f.logger.Debug("current commit is tagged", "version", ctx.CurrentCommitTaggedVersion.SemVer())
		ver := ctx.CurrentCommitTaggedVersion
		ver.BuildMetaData = semver.BuildMetaData{
			Branch:             branchName,
			Sha:                ctx.CurrentCommit.Sha,
			ShortSha:           ctx.CurrentCommit.ShortSha(),
			VersionSourceSha:   ctx.CurrentCommit.Sha,
			CommitDate:         ctx.CurrentCommit.When,
			UncommittedChanges: int64(ctx.NumberOfUncommittedChanges),
		}
		return ver, nil
	}

	candidates, err := baseVersionCandidates(ctx)
	if err != nil {
		return semver.SemanticVersion{}, err
	}

	logs := make(map[string][]git.Commit, len(candidates))
	commitsSince := func(bv BaseVersion) []git.Commit {
		from := git.Commit{}
		if bv.BaseVersionSource != nil {
			from = *bv.BaseVersionSource
		}
		if commits, ok := logs[from.Sha]; ok {
			return commits
		}
		commits, err := ctx.Store.GetCommitLog(from, ctx.CurrentCommit)
		if err != nil {
			f.logger.Debug("could not read commit log", "from", from.Sha, "err", err)
		}
		logs[from.Sha] = commits
		return commits
	}

	next := func(bv BaseVersion) semver.SemanticVersion {
		commits := commitsSince(bv)
		if ec.VersioningMode == semver.VersioningModeMainline {
			return mainlineVersion(bv, commits, ec)
		}
		return incrementVersion(bv.SemanticVersion, determineIncrement(bv, commits, ec), bv.ShouldIncrement)
	}

	bv := selectBaseVersion(candidates, next)
	f.logger.Debug("selected base version", "source", bv.Source, "version", bv.SemanticVersion.SemVer())

	ver := next(bv)
	ver, err = f.applyPreReleaseTag(ctx, ver, branchName)
	if err != nil {
		return semver.SemanticVersion{}, err
	}

	count := int64(len(commitsSince(bv)))
	versionSourceSha := ""
	if bv.BaseVersionSource != nil {
		versionSourceSha = bv.BaseVersionSource.Sha
	}
	return ver.WithBuildMetaData(semver.BuildMetaData{
		CommitsSinceTag:           &count,
		Branch:                    branchName,
		Sha:                       ctx.CurrentCommit.Sha,
		ShortSha:                  ctx.CurrentCommit.ShortSha(),
		VersionSourceSha:          versionSourceSha,
		CommitDate:                ctx.CurrentCommit.When,
		CommitsSinceVersionSource: count,
		UncommittedChanges:        int64(ctx.NumberOfUncommittedChanges),
	}), nil
}

// applyPreReleaseTag labels ver with the branch's pre-release tag. The
// number comes from the tag-number-pattern, then from existing tags of the
// same label, then defaults to 1.
func (f *VersionFinder) applyPreReleaseTag(ctx *context.GitVersionContext, ver semver.SemanticVersion, branchName string) (semver.SemanticVersion, error) {
	ec := ctx.Configuration
	label := config.GetBranchSpecificTag(ec, branchName)
	if label == "" || ver.PreReleaseTag.Name == label {
		return ver, nil
	}

	if n, ok := config.ExtractTagNumber(ec.TagNumberPattern, branchName); ok {
		return ver.WithPreReleaseTag(semver.PreReleaseTag{Name: label, Number: &n}), nil
	}

	number := int64(1)
	tags, err := ctx.Store.GetValidVersionTags(ec.TagPrefix)
	if err != nil {
		return semver.SemanticVersion{}, fmt.Errorf("listing version tags: %w", err)
	}
	for _, vt := range tags {
		tv := vt.Version
		if tv.Major == ver.Major && tv.Minor == ver.Minor && tv.Patch == ver.Patch &&
			tv.PreReleaseTag.Name == label && tv.PreReleaseTag.Number != nil &&
			*tv.PreReleaseTag.Number >= number {
			number = *tv.PreReleaseTag.Number + 1
		}
	}
	return ver.WithPreReleaseTag(semver.PreReleaseTag{Name: label, Number: &number}), nil
}
