// Package context provides the GitVersionContext, the snapshot of git state
// and configuration a single version computation works from.
package context

import (
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// GitVersionContext holds the resolved state needed for version calculation.
// It is created once per computation and handed to the version finder.
type GitVersionContext struct {
	// Store answers version queries against the repository.
	Store *git.RepositoryStore

	// CurrentBranch is the branch being versioned.
	CurrentBranch git.Branch

	// CurrentCommit is the commit being versioned (branch tip or explicit SHA).
	CurrentCommit git.Commit

	// FullConfiguration is the resolved configuration.
	FullConfiguration *config.Config

	// Configuration is FullConfiguration flattened for CurrentBranch.
	Configuration config.EffectiveConfiguration

	// CurrentCommitTaggedVersion is the highest version tag on the current
	// commit. Only meaningful when IsCurrentCommitTagged is true.
	CurrentCommitTaggedVersion semver.SemanticVersion
	IsCurrentCommitTagged      bool

	NumberOfUncommittedChanges int
}

// BranchName returns the short name of the current branch, without any
// refs/ or remote prefix.
func (ctx *GitVersionContext) BranchName() string {
	return ctx.CurrentBranch.Name.WithoutRemote
}
