package context

import (
	"errors"
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

	"github.com/stretchr/testify/require"
)

const (
	shaA = "aaaaaaa000000000000000000000000000000000"
	shaB = "bbbbbbb000000000000000000000000000000000"
)

func resolvedConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, config.Resolve(cfg))
	return cfg
}

func newBranch(name string, tip *git.Commit) git.Branch {
	return git.Branch{Name: git.NewBranchReferenceName(name), Tip: tip}
}

func newMock() (*git.MockRepository, git.Commit, git.Commit) {
	m := &git.MockRepository{}
	a := m.AddCommit(git.Commit{Sha: shaA, When: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Message: "initial"})
	b := m.AddCommit(git.Commit{Sha: shaB, Parents: []string{shaA}, When: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Message: "second"})
	return m, a, b
}

func TestNewContext_HeadBranch(t *testing.T) {
	m, _, b := newMock()
	m.HeadBranch = newBranch("main", &b)
	m.UncommittedChanges = 3

	ctx, err := NewContext(m, resolvedConfig(t), Options{})
	require.NoError(t, err)
	require.Equal(t, "main", ctx.BranchName())
	require.Equal(t, shaB, ctx.CurrentCommit.Sha)
	require.Equal(t, config.MasterBranchKey, ctx.Configuration.BranchKey)
	require.True(t, ctx.Configuration.IsMainline)
	require.False(t, ctx.IsCurrentCommitTagged)
	require.Equal(t, 3, ctx.NumberOfUncommittedChanges)
	require.NotNil(t, ctx.Store)
}

func TestNewContext_TargetBranch(t *testing.T) {
	m, a, b := newMock()
	m.HeadBranch = newBranch("main", &b)
	m.BranchList = []git.Branch{newBranch("main", &b), newBranch("feature/login", &a)}

	ctx, err := NewContext(m, resolvedConfig(t), Options{TargetBranch: "feature/login"})
	require.NoError(t, err)
	require.Equal(t, "feature/login", ctx.BranchName())
	require.Equal(t, shaA, ctx.CurrentCommit.Sha)
	require.Equal(t, config.FeatureBranchKey, ctx.Configuration.BranchKey)
}

func TestNewContext_CommitID(t *testing.T) {
	m, _, b := newMock()
	m.HeadBranch = newBranch("develop", &b)

	ctx, err := NewContext(m, resolvedConfig(t), Options{CommitID: "aaaaaaa"})
	require.NoError(t, err)
	require.Equal(t, shaA, ctx.CurrentCommit.Sha)
	require.Equal(t, config.DevelopBranchKey, ctx.Configuration.BranchKey)
}

func TestNewContext_TaggedCommit(t *testing.T) {
	m, _, b := newMock()
	m.HeadBranch = newBranch("main", &b)
	m.AddTag("v1.2.0", shaB)
	m.AddTag("v1.3.0", shaB)

	ctx, err := NewContext(m, resolvedConfig(t), Options{})
	require.NoError(t, err)
	require.True(t, ctx.IsCurrentCommitTagged)
	require.Equal(t, "1.3.0", ctx.CurrentCommitTaggedVersion.SemVer())
}

func TestNewContext_DetachedHeadUsesBranchAtCommit(t *testing.T) {
	m, _, b := newMock()
	m.HeadBranch = git.Branch{Name: git.NewReferenceName("HEAD"), Tip: &b, IsDetachedHead: true}
	remote := git.Branch{Name: git.NewReferenceName("refs/remotes/origin/release/1.0"), Tip: &b, IsRemote: true}
	m.BranchList = []git.Branch{remote, newBranch("release/1.0", &b)}

	ctx, err := NewContext(m, resolvedConfig(t), Options{})
	require.NoError(t, err)
	require.Equal(t, "release/1.0", ctx.BranchName())
	require.False(t, ctx.CurrentBranch.IsRemote)
	require.Equal(t, config.ReleaseBranchKey, ctx.Configuration.BranchKey)
}

func TestNewContext_DetachedHeadWithoutBranch(t *testing.T) {
	m, a, b := newMock()
	m.HeadBranch = git.Branch{Name: git.NewReferenceName("HEAD"), Tip: &b, IsDetachedHead: true}
	m.BranchList = []git.Branch{newBranch("main", &a)}

	ctx, err := NewContext(m, resolvedConfig(t), Options{})
	require.NoError(t, err)
	require.Equal(t, "HEAD", ctx.BranchName())
	require.Equal(t, config.UnknownBranchKey, ctx.Configuration.BranchKey)
}

func TestNewContext_CustomTagPrefix(t *testing.T) {
	m, _, b := newMock()
	m.HeadBranch = newBranch("main", &b)
	m.AddTag("v2.0.0", shaB)
	m.AddTag("release-1.0.0", shaB)

	prefix := "release-"
	cfg := &config.Config{TagPrefix: &prefix}
	require.NoError(t, config.Resolve(cfg))

	ctx, err := NewContext(m, cfg, Options{})
	require.NoError(t, err)
	require.True(t, ctx.IsCurrentCommitTagged)
	require.Equal(t, semver.SemanticVersion{Major: 1}, ctx.CurrentCommitTaggedVersion)
}

func TestNewContext_Errors(t *testing.T) {
	m, _, _ := newMock()
	m.Err = errors.New("boom")

	_, err := NewContext(m, resolvedConfig(t), Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "resolving target branch")

	m.Err = nil
	_, err = NewContext(m, resolvedConfig(t), Options{TargetBranch: "missing"})
	require.Error(t, err)
}
