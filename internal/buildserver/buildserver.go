// Package buildserver detects the CI system the process runs under and
// reports what it knows about the build: the branch being built and how the
// repository may be touched.
package buildserver

import (
	"os"
	"strings"
)

// BuildServer is a detected CI environment.
type BuildServer interface {
	// Name identifies the build server in logs.
	Name() string
	// GetCurrentBranch returns the branch being built, or "" if the build
	// server does not know it.
	GetCurrentBranch(isDynamicRepo bool) string
	// PreventFetch reports whether fetching from remotes must be skipped.
	PreventFetch() bool
	// ShouldCleanUpRemotes reports whether remotes other than origin should
	// be removed before calculating.
	ShouldCleanUpRemotes() bool
}

// LookupEnv matches the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

type detector func(env environment) BuildServer

// Resolver picks the first build server whose environment is present.
type Resolver struct {
	env       environment
	detectors []detector
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookupEnv replaces os.LookupEnv, mainly for tests.
func WithLookupEnv(fn LookupEnv) Option {
	return func(r *Resolver) {
		r.env = environment{lookup: fn}
	}
}

// NewResolver returns a Resolver over the supported build servers.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		env: environment{lookup: os.LookupEnv},
		detectors: []detector{
			detectGitHubActions,
			detectGitLabCI,
			detectAzurePipelines,
			detectJenkins,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetCurrentBuildServer returns the detected build server, or nil when
// running locally.
func (r *Resolver) GetCurrentBuildServer() BuildServer {
	for _, detect := range r.detectors {
		if bs := detect(r.env); bs != nil {
			return bs
		}
	}
	return nil
}

type environment struct {
	lookup LookupEnv
}

func (e environment) get(key string) string {
	v, _ := e.lookup(key)
	return strings.TrimSpace(v)
}

func (e environment) isSet(key string) bool {
	return e.get(key) != ""
}

func (e environment) isTrue(key string) bool {
	return strings.EqualFold(e.get(key), "true")
}

// shortBranchName strips the refs/heads/ prefix CI systems often report.
func shortBranchName(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}
