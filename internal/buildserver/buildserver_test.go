package buildserver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) Option {
	return WithLookupEnv(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
}

func TestResolver_NoBuildServer(t *testing.T) {
	r := NewResolver(envOf(nil))
	require.Nil(t, r.GetCurrentBuildServer())
}

func TestResolver_Detection(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"github", map[string]string{"GITHUB_ACTIONS": "true"}, "GitHubActions"},
		{"github disabled", map[string]string{"GITHUB_ACTIONS": "false"}, ""},
		{"gitlab", map[string]string{"GITLAB_CI": "true"}, "GitLabCi"},
		{"azure", map[string]string{"TF_BUILD": "True"}, "AzurePipelines"},
		{"jenkins", map[string]string{"JENKINS_URL": "http://ci"}, "Jenkins"},
		{"first wins", map[string]string{"GITHUB_ACTIONS": "true", "JENKINS_URL": "http://ci"}, "GitHubActions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := NewResolver(envOf(tt.env)).GetCurrentBuildServer()
			if tt.want == "" {
				require.Nil(t, bs)
				return
			}
			require.NotNil(t, bs)
			require.Equal(t, tt.want, bs.Name())
			require.True(t, bs.PreventFetch())
		})
	}
}

func TestGitHubActions_GetCurrentBranch(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"push", map[string]string{"GITHUB_REF": "refs/heads/feature/x"}, "feature/x"},
		{"pull request", map[string]string{"GITHUB_REF": "refs/pull/3/merge", "GITHUB_HEAD_REF": "feature/y"}, "feature/y"},
		{"tag", map[string]string{"GITHUB_REF": "refs/tags/v1.0.0"}, ""},
		{"nothing", map[string]string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.env["GITHUB_ACTIONS"] = "true"
			bs := NewResolver(envOf(tt.env)).GetCurrentBuildServer()
			require.Equal(t, tt.want, bs.GetCurrentBranch(false))
			require.False(t, bs.ShouldCleanUpRemotes())
		})
	}
}

func TestGitLabCI_GetCurrentBranch(t *testing.T) {
	bs := NewResolver(envOf(map[string]string{
		"GITLAB_CI":          "true",
		"CI_COMMIT_REF_NAME": "develop",
	})).GetCurrentBuildServer()
	require.Equal(t, "develop", bs.GetCurrentBranch(false))

	bs = NewResolver(envOf(map[string]string{
		"GITLAB_CI":          "true",
		"CI_COMMIT_REF_NAME": "v1.0.0",
		"CI_COMMIT_TAG":      "v1.0.0",
	})).GetCurrentBuildServer()
	require.Equal(t, "", bs.GetCurrentBranch(false))
}

func TestAzurePipelines_GetCurrentBranch(t *testing.T) {
	bs := NewResolver(envOf(map[string]string{
		"TF_BUILD":           "True",
		"BUILD_SOURCEBRANCH": "refs/heads/release/1.0",
	})).GetCurrentBuildServer()
	require.Equal(t, "release/1.0", bs.GetCurrentBranch(false))

	bs = NewResolver(envOf(map[string]string{
		"TF_BUILD":                        "True",
		"BUILD_SOURCEBRANCH":              "refs/pull/7/merge",
		"SYSTEM_PULLREQUEST_SOURCEBRANCH": "refs/heads/feature/z",
	})).GetCurrentBuildServer()
	require.Equal(t, "feature/z", bs.GetCurrentBranch(false))
}

func TestJenkins_GetCurrentBranch(t *testing.T) {
	pipeline := NewResolver(envOf(map[string]string{
		"JENKINS_URL": "http://ci",
		"BRANCH_NAME": "main",
	})).GetCurrentBuildServer()
	require.Equal(t, "main", pipeline.GetCurrentBranch(false))
	require.True(t, pipeline.ShouldCleanUpRemotes())

	freestyle := NewResolver(envOf(map[string]string{
		"JENKINS_URL":      "http://ci",
		"GIT_BRANCH":       "origin/develop",
		"GIT_LOCAL_BRANCH": "develop",
	})).GetCurrentBuildServer()
	require.Equal(t, "develop", freestyle.GetCurrentBranch(false))
	require.Equal(t, "origin/develop", freestyle.GetCurrentBranch(true))
	require.False(t, freestyle.ShouldCleanUpRemotes())
}
