package buildserver

import "strings"

// GitHubActions reads the GITHUB_* variables.
type GitHubActions struct {
	env environment
}

func detectGitHubActions(env environment) BuildServer {
	if !env.isTrue("GITHUB_ACTIONS") {
		return nil
	}
	return &GitHubActions{env: env}
}

func (g *GitHubActions) Name() string { return "GitHubActions" }

// GetCurrentBranch prefers the pull request head branch. Tag builds have
// no branch.
func (g *GitHubActions) GetCurrentBranch(bool) string {
	if head := g.env.get("GITHUB_HEAD_REF"); head != "" {
		return head
	}
	ref := g.env.get("GITHUB_REF")
	if strings.HasPrefix(ref, "refs/tags/") {
		return ""
	}
	return shortBranchName(ref)
}

func (g *GitHubActions) PreventFetch() bool         { return true }
func (g *GitHubActions) ShouldCleanUpRemotes() bool { return false }

// GitLabCI reads the CI_* variables.
type GitLabCI struct {
	env environment
}

func detectGitLabCI(env environment) BuildServer {
	if !env.isSet("GITLAB_CI") {
		return nil
	}
	return &GitLabCI{env: env}
}

func (g *GitLabCI) Name() string { return "GitLabCi" }

// GetCurrentBranch returns "" for tag pipelines, where CI_COMMIT_REF_NAME
// holds the tag.
func (g *GitLabCI) GetCurrentBranch(bool) string {
	if g.env.isSet("CI_COMMIT_TAG") {
		return ""
	}
	return g.env.get("CI_COMMIT_REF_NAME")
}

func (g *GitLabCI) PreventFetch() bool         { return true }
func (g *GitLabCI) ShouldCleanUpRemotes() bool { return false }

// AzurePipelines reads the BUILD_* and SYSTEM_* variables.
type AzurePipelines struct {
	env environment
}

func detectAzurePipelines(env environment) BuildServer {
	if !env.isSet("TF_BUILD") {
		return nil
	}
	return &AzurePipelines{env: env}
}

func (a *AzurePipelines) Name() string { return "AzurePipelines" }

func (a *AzurePipelines) GetCurrentBranch(bool) string {
	if pr := a.env.get("SYSTEM_PULLREQUEST_SOURCEBRANCH"); pr != "" {
		return shortBranchName(pr)
	}
	ref := a.env.get("BUILD_SOURCEBRANCH")
	if strings.HasPrefix(ref, "refs/tags/") {
		return ""
	}
	return shortBranchName(ref)
}

func (a *AzurePipelines) PreventFetch() bool         { return true }
func (a *AzurePipelines) ShouldCleanUpRemotes() bool { return false }

// Jenkins reads BRANCH_NAME for pipeline jobs and the git plugin
// variables otherwise.
type Jenkins struct {
	env environment
}

func detectJenkins(env environment) BuildServer {
	if !env.isSet("JENKINS_URL") {
		return nil
	}
	return &Jenkins{env: env}
}

func (j *Jenkins) Name() string { return "Jenkins" }

func (j *Jenkins) GetCurrentBranch(isDynamicRepo bool) string {
	if j.env.isSet("BRANCH_NAME") {
		return j.env.get("BRANCH_NAME")
	}
	if isDynamicRepo {
		return j.env.get("GIT_BRANCH")
	}
	if local := j.env.get("GIT_LOCAL_BRANCH"); local != "" {
		return local
	}
	return j.env.get("GIT_BRANCH")
}

func (j *Jenkins) PreventFetch() bool { return true }

// ShouldCleanUpRemotes is set for pipeline jobs, whose workspace may carry
// remotes left by earlier checkouts.
func (j *Jenkins) ShouldCleanUpRemotes() bool { return j.env.isSet("BRANCH_NAME") }
