package context

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
)

// Options configures what the factory resolves.
type Options struct {
	// TargetBranch overrides HEAD. Empty string means use HEAD.
	TargetBranch string

	// CommitID overrides the branch tip. Empty string means use tip.
	CommitID string
}

// NewContext creates a GitVersionContext by resolving the target branch,
// current commit, effective configuration, version tag and uncommitted
// change count. cfg must already be resolved.
func NewContext(repo git.Repository, cfg *config.Config, opts Options) (*GitVersionContext, error) {
	store := git.NewRepositoryStore(repo)

	// 1. Resolve target branch (from option or HEAD).
	currentBranch, err := store.GetTargetBranch(opts.TargetBranch)
	if err != nil {
		return nil, fmt.Errorf("resolving target branch: %w", err)
	}

	// 2. Get current commit (from SHA option or branch tip).
	currentCommit, err := store.GetCurrentCommit(currentBranch, opts.CommitID)
	if err != nil {
		return nil, fmt.Errorf("resolving current commit: %w", err)
	}

	// 3. Detached HEAD: borrow the name of a branch pointing at the commit.
	if currentBranch.IsDetachedHead {
		branches, err := repo.Branches()
		if err != nil {
			return nil, fmt.Errorf("finding branches for detached HEAD: %w", err)
		}
		if best, ok := pickBranchAt(branches, currentCommit); ok {
			currentBranch = best
		}
	}

	// 4. Effective configuration for the branch.
	ec, err := cfg.ForBranch(currentBranch.Name.WithoutRemote)
	if err != nil {
		return nil, fmt.Errorf("resolving branch configuration: %w", err)
	}

	// 5. Check for version tag on current commit.
	taggedVersion, isTagged, err := store.GetCurrentCommitTaggedVersion(currentCommit, ec.TagPrefix)
	if err != nil {
		return nil, fmt.Errorf("checking version tag: %w", err)
	}

	// 6. Count uncommitted changes.
	uncommitted, err := store.GetNumberOfUncommittedChanges()
	if err != nil {
		return nil, fmt.Errorf("counting uncommitted changes: %w", err)
	}

	return &GitVersionContext{
		Store:                      store,
		CurrentBranch:              currentBranch,
		CurrentCommit:              currentCommit,
		FullConfiguration:          cfg,
		Configuration:              ec,
		CurrentCommitTaggedVersion: taggedVersion,
		IsCurrentCommitTagged:      isTagged,
		NumberOfUncommittedChanges: uncommitted,
	}, nil
}

// pickBranchAt returns the branch whose tip is commit. Local branches win
// over remote-tracking ones; ties are broken by name.
func pickBranchAt(branches []git.Branch, commit git.Commit) (git.Branch, bool) {
	var candidates []git.Branch
	for _, b := range branches {
		if b.Tip != nil && b.Tip.Sha == commit.Sha {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return git.Branch{}, false
	}

	slices.SortFunc(candidates, func(a, b git.Branch) int {
		if a.IsRemote != b.IsRemote {
			if a.IsRemote {
				return 1
			}
			return -1
		}
		return strings.Compare(a.Name.Canonical, b.Name.Canonical)
	})
	return candidates[0], true
}
