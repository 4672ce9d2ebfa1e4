// Package sdk provides a public Go API for computing GitVersion-style
// version variables from a git repository.
//
// Basic usage:
//
//	result, err := sdk.Calculate(sdk.Options{
//	    Path: "/path/to/repo",
//	})
//	fmt.Println(result.Variables["SemVer"]) // "1.2.3"
//
// Results are cached under the repository's .git directory and reused while
// the refs, target branch, commit and configuration are unchanged.
package sdk

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/computer"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
)

// Options configures a version computation.
type Options struct {
	// Path is a directory inside the working copy. Defaults to "." if empty.
	Path string

	// URL clones the repository into DynamicRepositoryLocation (or a
	// temporary directory) before computing.
	URL                       string
	DynamicRepositoryLocation string
	Username                  string
	Password                  string

	// Branch overrides the target branch. Empty means use HEAD.
	Branch string

	// Commit overrides the branch tip with a specific SHA. Empty means use tip.
	Commit string

	// ConfigPath is the path to a GitVersion YAML or TOML config file.
	// If empty, GitVersion.yml is searched for in the repository root.
	ConfigPath string

	// Overrides are "key=value" pairs applied on top of the config file,
	// e.g. "tag-prefix=release-".
	Overrides []string

	NoFetch     bool
	NoCache     bool
	NoNormalize bool

	// Logger receives progress output. Defaults to log.Default().
	Logger *log.Logger
}

// Result holds the computed version variables.
type Result struct {
	// Variables contains every output variable keyed by name.
	// Common keys: SemVer, FullSemVer, MajorMinorPatch, Major, Minor, Patch,
	// PreReleaseTag, PreReleaseNumber, CommitsSinceVersionSource, Sha,
	// ShortSha, BranchName, etc.
	Variables map[string]string
}

// Calculate computes the version variables for the repository described by
// opts.
func Calculate(opts Options) (*Result, error) {
	override, err := config.ParseOverrides(opts.Overrides)
	if err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		path = "."
	}

	vars, err := newComputer(opts.Logger).ComputeVersion(computer.Arguments{
		TargetPath:                path,
		TargetURL:                 opts.URL,
		DynamicRepositoryLocation: opts.DynamicRepositoryLocation,
		Username:                  opts.Username,
		Password:                  opts.Password,
		TargetBranch:              opts.Branch,
		CommitID:                  opts.Commit,
		ConfigFile:                opts.ConfigPath,
		OverrideConfig:            override,
		NoFetch:                   opts.NoFetch,
		NoCache:                   opts.NoCache,
		NoNormalize:               opts.NoNormalize,
	})
	if err != nil {
		return nil, fmt.Errorf("computing version: %w", err)
	}
	return &Result{Variables: vars}, nil
}

// TryCalculate computes the version for path and reports ok=false instead
// of an error when it cannot. The failure is logged as a warning.
func TryCalculate(path string, noFetch bool, logger *log.Logger) (*Result, bool) {
	vars, ok := newComputer(logger).TryComputeVersion(path, noFetch)
	if !ok {
		return nil, false
	}
	return &Result{Variables: vars}, true
}

func newComputer(logger *log.Logger) *computer.Computer {
	if logger == nil {
		return computer.New()
	}
	return computer.New(computer.WithLogger(logger))
}
