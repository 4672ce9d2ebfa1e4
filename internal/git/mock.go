package git

import (
	"fmt"
	"slices"
	"strings"
)

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is an in-memory Repository for tests. The commit graph is
// described by Commits and their Parents; Err, when set, is returned by
// every method that can fail.
type MockRepository struct {
	DotGitPath         string
	WorkDir            string
	HeadBranch         Branch
	BranchList         []Branch
	TagList            []Tag
	Commits            map[string]Commit
	AnnotatedTags      map[string]string // tag object SHA -> commit SHA
	UncommittedChanges int
	Err                error
}

// AddCommit registers c and returns it.
func (m *MockRepository) AddCommit(c Commit) Commit {
	if m.Commits == nil {
		m.Commits = make(map[string]Commit)
	}
	m.Commits[c.Sha] = c
	return c
}

// AddTag adds a lightweight tag pointing at sha.
func (m *MockRepository) AddTag(name, sha string) {
	m.TagList = append(m.TagList, Tag{Name: NewReferenceName(tagRefPrefix + name), TargetSha: sha})
}

func (m *MockRepository) Path() string {
	return m.DotGitPath
}

func (m *MockRepository) WorkingDirectory() string {
	return m.WorkDir
}

func (m *MockRepository) Head() (Branch, error) {
	return m.HeadBranch, m.Err
}

func (m *MockRepository) Branches() ([]Branch, error) {
	return m.BranchList, m.Err
}

func (m *MockRepository) Tags() ([]Tag, error) {
	return m.TagList, m.Err
}

func (m *MockRepository) References() ([]Reference, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var refs []Reference
	for _, b := range m.BranchList {
		if b.Tip != nil {
			refs = append(refs, Reference{Name: b.Name.Canonical, Hash: b.Tip.Sha})
		}
	}
	for _, t := range m.TagList {
		refs = append(refs, Reference{Name: t.Name.Canonical, Hash: t.TargetSha})
	}
	slices.SortFunc(refs, func(a, b Reference) int {
		return strings.Compare(a.Name, b.Name)
	})
	return refs, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.Err != nil {
		return Commit{}, m.Err
	}
	if c, ok := m.Commits[sha]; ok {
		return c, nil
	}
	for full, c := range m.Commits {
		if sha != "" && strings.HasPrefix(full, sha) {
			return c, nil
		}
	}
	return Commit{}, fmt.Errorf("commit %s not found", sha)
}

func (m *MockRepository) CommitLog(from, to string) ([]Commit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	excluded := map[string]struct{}{}
	if from != "" {
		for _, c := range m.ancestors(from) {
			excluded[c.Sha] = struct{}{}
		}
	}

	var result []Commit
	for _, c := range m.ancestors(to) {
		if _, ok := excluded[c.Sha]; !ok {
			result = append(result, c)
		}
	}
	slices.SortStableFunc(result, func(a, b Commit) int {
		return b.When.Compare(a.When)
	})
	return result, nil
}

func (m *MockRepository) ancestors(sha string) []Commit {
	seen := map[string]struct{}{}
	var result []Commit
	queue := []string{sha}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		c, ok := m.Commits[cur]
		if !ok {
			continue
		}
		result = append(result, c)
		queue = append(queue, c.Parents...)
	}
	return result
}

func (m *MockRepository) NumberOfUncommittedChanges() (int, error) {
	return m.UncommittedChanges, m.Err
}

func (m *MockRepository) PeelTagToCommit(tag Tag) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if sha, ok := m.AnnotatedTags[tag.TargetSha]; ok {
		return sha, nil
	}
	if _, ok := m.Commits[tag.TargetSha]; !ok {
		return "", fmt.Errorf("tag %s does not point to a commit", tag.Name.Friendly)
	}
	return tag.TargetSha, nil
}
