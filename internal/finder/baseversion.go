package finder

import (
	"fmt"
	"slices"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// fallbackVersion is used when nothing else yields a base version.
var fallbackVersion = semver.SemanticVersion{Minor: 1}

// BaseVersion is a candidate starting point for the computed version.
type BaseVersion struct {
	// Source describes where the version came from, for logging.
	Source          string
	SemanticVersion semver.SemanticVersion
	// ShouldIncrement is false for versions that already name the release
	// being built (branch names, next-version, the fallback).
	ShouldIncrement bool
	// BaseVersionSource is the commit the version was found on; nil means
	// the whole history counts.
	BaseVersionSource *git.Commit
}

// baseVersionCandidates collects every base version the context offers.
// The fallback is only returned when nothing else matched.
func baseVersionCandidates(ctx *context.GitVersionContext) ([]BaseVersion, error) {
	ec := ctx.Configuration
	var candidates []BaseVersion

	tagged, err := nearestVersionTag(ctx)
	if err != nil {
		return nil, err
	}
	if tagged != nil {
		candidates = append(candidates, *tagged)
	}

	if ec.IsReleaseBranch {
		if v, ok := git.ExtractVersionFromBranch(ctx.BranchName(), ec.TagPrefix); ok {
			if ver, err := semver.Parse(v, ""); err == nil {
				candidates = append(candidates, BaseVersion{
					Source:          fmt.Sprintf("version in branch name %q", ctx.BranchName()),
					SemanticVersion: ver,
				})
			}
		}
	}

	if ec.NextVersion != "" {
		ver, err := semver.Parse(ec.NextVersion, "")
		if err != nil {
			return nil, fmt.Errorf("parsing next-version %q: %w", ec.NextVersion, err)
		}
		candidates = append(candidates, BaseVersion{
			Source:          "next-version in configuration",
			SemanticVersion: ver,
		})
	}

	if len(candidates) == 0 {
		candidates = append(candidates, BaseVersion{
			Source:          "fallback base version",
			SemanticVersion: fallbackVersion,
		})
	}
	return candidates, nil
}

// nearestVersionTag walks history from the current commit, newest first,
// and returns the highest version tag on the first tagged commit found.
func nearestVersionTag(ctx *context.GitVersionContext) (*BaseVersion, error) {
	byCommit, err := ctx.Store.VersionTagsByCommit(ctx.Configuration.TagPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing version tags: %w", err)
	}
	if len(byCommit) == 0 {
		return nil, nil
	}

	commits, err := ctx.Store.GetCommitLog(git.Commit{}, ctx.CurrentCommit)
	if err != nil {
		return nil, fmt.Errorf("walking commit history: %w", err)
	}
	for _, c := range commits {
		group := byCommit[c.Sha]
		if len(group) == 0 {
			continue
		}
		source := c
		return &BaseVersion{
			Source:            fmt.Sprintf("git tag %q", group[0].Tag.Name.Friendly),
			SemanticVersion:   group[0].Version,
			ShouldIncrement:   true,
			BaseVersionSource: &source,
		}, nil
	}
	return nil, nil
}

// selectBaseVersion returns the candidate whose incremented version is
// highest. Earlier candidates win ties.
func selectBaseVersion(candidates []BaseVersion, next func(BaseVersion) semver.SemanticVersion) BaseVersion {
	return slices.MaxFunc(candidates, func(a, b BaseVersion) int {
		return next(a).CompareTo(next(b))
	})
}
