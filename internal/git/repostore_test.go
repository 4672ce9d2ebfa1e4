package git

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// linearMock builds a -> b -> c on master.
func linearMock() *MockRepository {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &MockRepository{}
	a := m.AddCommit(Commit{Sha: "aaaaaaaa", When: base, Message: "a"})
	b := m.AddCommit(Commit{Sha: "bbbbbbbb", Parents: []string{a.Sha}, When: base.Add(time.Hour), Message: "b"})
	c := m.AddCommit(Commit{Sha: "cccccccc", Parents: []string{b.Sha}, When: base.Add(2 * time.Hour), Message: "c"})
	m.HeadBranch = Branch{Name: NewBranchReferenceName("master"), Tip: &c}
	m.BranchList = []Branch{
		{Name: NewReferenceName("refs/remotes/origin/develop"), Tip: &b, IsRemote: true},
		m.HeadBranch,
	}
	return m
}

func TestRepositoryStore_GetValidVersionTags(t *testing.T) {
	m := linearMock()
	m.AddTag("v1.0.0", "aaaaaaaa")
	m.AddTag("not-a-version", "bbbbbbbb")
	m.AddTag("v2.0.0", "missing")
	m.AddTag("V1.1.0", "bbbbbbbb")
	m.AddTag("1.2.0", "bbbbbbbb")

	tags, err := NewRepositoryStore(m).GetValidVersionTags("[vV]")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "1.0.0", tags[0].Version.SemVer())
	require.Equal(t, "aaaaaaaa", tags[0].Commit.Sha)
	require.Equal(t, "1.1.0", tags[1].Version.SemVer())
}

func TestRepositoryStore_AnnotatedTag(t *testing.T) {
	m := linearMock()
	m.AnnotatedTags = map[string]string{"tagobject": "cccccccc"}
	m.AddTag("v3.0.0", "tagobject")

	v, ok, err := NewRepositoryStore(m).GetCurrentCommitTaggedVersion(m.Commits["cccccccc"], "[vV]")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3.0.0", v.SemVer())
}

func TestRepositoryStore_GetCurrentCommitTaggedVersion_Highest(t *testing.T) {
	m := linearMock()
	m.AddTag("v1.0.0", "cccccccc")
	m.AddTag("v1.2.0", "cccccccc")
	m.AddTag("v1.1.0", "cccccccc")
	store := NewRepositoryStore(m)

	v, ok, err := store.GetCurrentCommitTaggedVersion(m.Commits["cccccccc"], "[vV]")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1.2.0", v.SemVer())

	_, ok, err = store.GetCurrentCommitTaggedVersion(m.Commits["bbbbbbbb"], "[vV]")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRepositoryStore_GetTargetBranch(t *testing.T) {
	m := linearMock()
	store := NewRepositoryStore(m)

	b, err := store.GetTargetBranch("")
	require.NoError(t, err)
	require.Equal(t, "master", b.FriendlyName())

	b, err = store.GetTargetBranch("develop")
	require.NoError(t, err)
	require.True(t, b.IsRemote)

	b, err = store.GetTargetBranch("refs/heads/master")
	require.NoError(t, err)
	require.False(t, b.IsRemote)

	_, err = store.GetTargetBranch("nope")
	require.Error(t, err)
}

func TestRepositoryStore_GetCurrentCommit(t *testing.T) {
	m := linearMock()
	store := NewRepositoryStore(m)

	c, err := store.GetCurrentCommit(m.HeadBranch, "")
	require.NoError(t, err)
	require.Equal(t, "cccccccc", c.Sha)

	c, err = store.GetCurrentCommit(m.HeadBranch, "bbbb")
	require.NoError(t, err)
	require.Equal(t, "bbbbbbbb", c.Sha)

	_, err = store.GetCurrentCommit(Branch{}, "")
	require.Error(t, err)
}

func TestRepositoryStore_GetCommitLog(t *testing.T) {
	m := linearMock()
	store := NewRepositoryStore(m)

	commits, err := store.GetCommitLog(m.Commits["aaaaaaaa"], m.Commits["cccccccc"])
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, "cccccccc", commits[0].Sha)
}

func TestRepositoryStore_Errors(t *testing.T) {
	m := linearMock()
	m.Err = errors.New("boom")
	m.UncommittedChanges = 3
	store := NewRepositoryStore(m)

	_, err := store.GetValidVersionTags("")
	require.ErrorIs(t, err, m.Err)

	_, err = store.GetNumberOfUncommittedChanges()
	require.ErrorIs(t, err, m.Err)
	require.Same(t, m, store.Repository())
}

func TestMockRepository_References(t *testing.T) {
	m := linearMock()
	m.AddTag("v1.0.0", "aaaaaaaa")

	refs, err := m.References()
	require.NoError(t, err)
	require.Equal(t, []Reference{
		{Name: "refs/heads/master", Hash: "cccccccc"},
		{Name: "refs/remotes/origin/develop", Hash: "bbbbbbbb"},
		{Name: "refs/tags/v1.0.0", Hash: "aaaaaaaa"},
	}, refs)
}
