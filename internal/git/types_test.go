package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommit_IsMerge(t *testing.T) {
	require.False(t, Commit{}.IsMerge())
	require.False(t, Commit{Parents: []string{"a"}}.IsMerge())
	require.True(t, Commit{Parents: []string{"a", "b"}}.IsMerge())
}

func TestCommit_ShortSha(t *testing.T) {
	require.Equal(t, "abc1234", Commit{Sha: "abc1234567890def"}.ShortSha())
	require.Equal(t, "abc", Commit{Sha: "abc"}.ShortSha())
	require.Empty(t, Commit{}.ShortSha())
}

func TestNewReferenceName(t *testing.T) {
	tests := []struct {
		canonical     string
		friendly      string
		withoutRemote string
		kind          RefKind
	}{
		{"refs/heads/feature/x", "feature/x", "feature/x", RefLocalBranch},
		{"refs/remotes/origin/main", "origin/main", "main", RefRemoteBranch},
		{"refs/remotes/upstream", "upstream", "upstream", RefRemoteBranch},
		{"refs/tags/v1.0.0", "v1.0.0", "v1.0.0", RefTag},
		{"HEAD", "HEAD", "HEAD", RefOther},
	}
	for _, tt := range tests {
		t.Run(tt.canonical, func(t *testing.T) {
			n := NewReferenceName(tt.canonical)
			require.Equal(t, tt.friendly, n.Friendly)
			require.Equal(t, tt.withoutRemote, n.WithoutRemote)
			require.Equal(t, tt.kind, n.Kind)
		})
	}
}

func TestShortBranchName(t *testing.T) {
	tests := map[string]string{
		"refs/heads/develop":            "develop",
		"refs/remotes/origin/feature/a": "feature/a",
		"origin/release/1.0":            "release/1.0",
		"main":                          "main",
		"":                              "",
	}
	for in, want := range tests {
		require.Equal(t, want, ShortBranchName(in), in)
	}
}

func TestExtractVersionFromBranch(t *testing.T) {
	tests := []struct {
		branch string
		prefix string
		want   string
		ok     bool
	}{
		{"release/1.2.0", "[vV]", "1.2.0", true},
		{"release/1.2", "[vV]", "1.2.0", true},
		{"release-2", "[vV]", "2.0.0", true},
		{"release/v3.1", "[vV]", "3.1.0", true},
		{"feature/JIRA-123", "[vV]", "", false},
		{"develop", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			v, ok := ExtractVersionFromBranch(tt.branch, tt.prefix)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, v)
		})
	}
}
