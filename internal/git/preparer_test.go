package git

import (
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestPreparer_NoRepository(t *testing.T) {
	p := NewPreparer(PreparerOptions{TargetPath: t.TempDir()})

	require.NoError(t, p.Initialize(true, "main", true))
	require.Empty(t, p.DotGitDirectory())
	require.Empty(t, p.ProjectRootDirectory())

	err := p.WithRepository(func(Repository) error { return nil })
	require.Error(t, err)
}

func TestPreparer_TargetBranchFollowsInitialize(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("initial")

	p := NewPreparer(PreparerOptions{TargetPath: tr.Path(), TargetBranch: "master"})
	require.Equal(t, "master", p.TargetBranch())

	require.NoError(t, p.Initialize(false, "feature/ci", false))
	require.Equal(t, "feature/ci", p.TargetBranch())
}

func TestPreparer_LocatesRepository(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	sha := tr.AddCommit("initial")
	tr.WriteFile("nested/readme.md", "x")

	p := NewPreparer(PreparerOptions{
		TargetPath:   filepath.Join(tr.Path(), "nested"),
		TargetBranch: "master",
		CommitID:     sha,
	})
	require.NoError(t, p.Initialize(false, "master", false))

	require.Equal(t, tr.Path(), p.ProjectRootDirectory())
	require.Equal(t, filepath.Join(tr.Path(), ".git"), p.DotGitDirectory())
	require.Equal(t, "master", p.TargetBranch())
	require.Equal(t, sha, p.CommitID())
	require.False(t, p.IsDynamic())

	var headSha string
	err := p.WithRepository(func(repo Repository) error {
		head, err := repo.Head()
		if err != nil {
			return err
		}
		headSha = head.Tip.Sha
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, sha, headSha)
}

func TestPreparer_CleanupRemotes(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("initial")
	tr.AddRemote("origin", "https://example.com/origin.git")
	tr.AddRemote("upstream", "https://example.com/upstream.git")

	p := NewPreparer(PreparerOptions{TargetPath: tr.Path()})
	require.NoError(t, p.Initialize(false, "", true))

	require.Equal(t, []string{"origin"}, tr.Remotes())
}

func TestPreparer_NormalizeCreatesLocalBranchAndAttachesHead(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("initial")
	tip := tr.AddCommit("feature work")
	tr.CreateRemoteBranch("origin", "feature/x", tip)
	tr.DetachHead(tip)

	p := NewPreparer(PreparerOptions{TargetPath: tr.Path(), NoFetch: true})
	require.NoError(t, p.Initialize(true, "refs/heads/feature/x", false))

	require.True(t, tr.HasReference("refs/heads/feature/x"))
	require.Equal(t, "refs/heads/feature/x", tr.HeadRef())
}

func TestPreparer_NormalizeLeavesDetachedHeadElsewhere(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	first := tr.AddCommit("initial")
	tr.AddCommit("second")
	tr.DetachHead(first)

	p := NewPreparer(PreparerOptions{TargetPath: tr.Path(), NoFetch: true})
	require.NoError(t, p.Initialize(true, "master", false))

	require.Equal(t, "HEAD", tr.HeadRef())
}

func TestPreparer_NormalizeWithoutOrigin(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("initial")

	p := NewPreparer(PreparerOptions{TargetPath: tr.Path()})
	require.NoError(t, p.Initialize(true, "develop", false))

	// Created at HEAD since there is no tracking branch.
	require.True(t, tr.HasReference("refs/heads/develop"))
	require.Equal(t, "refs/heads/master", tr.HeadRef())
}

func TestPreparer_DynamicRepository(t *testing.T) {
	src := testutil.NewTestRepo(t)
	sha := src.AddCommit("initial")
	src.CreateTag("v1.0.0", sha)

	target := filepath.Join(t.TempDir(), "clone")
	p := NewPreparer(PreparerOptions{
		TargetURL:                 src.Path(),
		DynamicRepositoryLocation: target,
	})
	require.True(t, p.IsDynamic())
	require.NoError(t, p.Initialize(false, "", false))
	require.Equal(t, target, p.ProjectRootDirectory())

	err := p.WithRepository(func(repo Repository) error {
		tags, err := repo.Tags()
		require.NoError(t, err)
		require.Len(t, tags, 1)
		return nil
	})
	require.NoError(t, err)

	// A second run reuses the clone.
	again := NewPreparer(PreparerOptions{TargetURL: src.Path(), DynamicRepositoryLocation: target})
	require.NoError(t, again.Initialize(false, "", false))
	require.Equal(t, target, again.ProjectRootDirectory())
}
