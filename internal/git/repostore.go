package git

import (
	"fmt"
	"slices"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// RepositoryStore provides version-oriented queries built on top of a
// Repository.
type RepositoryStore struct {
	repo Repository
}

// NewRepositoryStore creates a new RepositoryStore wrapping the given Repository.
func NewRepositoryStore(repo Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

// Repository returns the wrapped repository.
func (s *RepositoryStore) Repository() Repository {
	return s.repo
}

// --- Tag queries ---

// GetValidVersionTags returns all tags that parse as semantic versions with
// the given prefix, peeled to their commits.
func (s *RepositoryStore) GetValidVersionTags(tagPrefix string) ([]VersionTag, error) {
	tags, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var result []VersionTag
	for _, tag := range tags {
		ver, ok := semver.TryParse(tag.Name.Friendly, tagPrefix)
		if !ok {
			continue
		}

		commitSha, err := s.repo.PeelTagToCommit(tag)
		if err != nil {
			continue
		}

		commit, err := s.repo.CommitFromSha(commitSha)
		if err != nil {
			continue
		}

		result = append(result, VersionTag{Tag: tag, Version: ver, Commit: commit})
	}

	return result, nil
}

// VersionTagsByCommit groups version tags by commit SHA, highest version
// first within each group.
func (s *RepositoryStore) VersionTagsByCommit(tagPrefix string) (map[string][]VersionTag, error) {
	tags, err := s.GetValidVersionTags(tagPrefix)
	if err != nil {
		return nil, err
	}

	byCommit := make(map[string][]VersionTag)
	for _, vt := range tags {
		byCommit[vt.Commit.Sha] = append(byCommit[vt.Commit.Sha], vt)
	}
	for _, group := range byCommit {
		slices.SortFunc(group, func(a, b VersionTag) int {
			return b.Version.CompareTo(a.Version)
		})
	}
	return byCommit, nil
}

// GetCurrentCommitTaggedVersion returns the highest semantic version tag on
// the given commit. Returns false if the commit has no version tag.
func (s *RepositoryStore) GetCurrentCommitTaggedVersion(commit Commit, tagPrefix string) (semver.SemanticVersion, bool, error) {
	byCommit, err := s.VersionTagsByCommit(tagPrefix)
	if err != nil {
		return semver.SemanticVersion{}, false, err
	}

	group := byCommit[commit.Sha]
	if len(group) == 0 {
		return semver.SemanticVersion{}, false, nil
	}
	return group[0].Version, true, nil
}

// --- Branch queries ---

// GetTargetBranch resolves the target branch from a name or HEAD. A local
// branch wins over a remote-tracking one with the same short name.
func (s *RepositoryStore) GetTargetBranch(targetBranchName string) (Branch, error) {
	if targetBranchName == "" {
		return s.repo.Head()
	}

	branches, err := s.repo.Branches()
	if err != nil {
		return Branch{}, fmt.Errorf("listing branches: %w", err)
	}

	short := ShortBranchName(targetBranchName)
	var remote *Branch
	for i, b := range branches {
		if b.Name.WithoutRemote != short && b.FriendlyName() != targetBranchName {
			continue
		}
		if !b.IsRemote {
			return b, nil
		}
		if remote == nil {
			remote = &branches[i]
		}
	}
	if remote != nil {
		return *remote, nil
	}

	return Branch{}, fmt.Errorf("branch %q not found", targetBranchName)
}

// --- Commit queries ---

// GetCurrentCommit returns the commit from a SHA or the branch tip.
func (s *RepositoryStore) GetCurrentCommit(branch Branch, commitID string) (Commit, error) {
	if commitID != "" {
		return s.repo.CommitFromSha(commitID)
	}
	if branch.Tip == nil {
		return Commit{}, fmt.Errorf("branch %q has no tip commit", branch.FriendlyName())
	}
	return *branch.Tip, nil
}

// GetCommitLog returns commits between from and to, newest first.
func (s *RepositoryStore) GetCommitLog(from, to Commit) ([]Commit, error) {
	return s.repo.CommitLog(from.Sha, to.Sha)
}

// GetNumberOfUncommittedChanges returns the number of uncommitted changes.
func (s *RepositoryStore) GetNumberOfUncommittedChanges() (int, error) {
	return s.repo.NumberOfUncommittedChanges()
}
