package computer

import (
	"github.com/MyCarrier-DevOps/go-gitversion/internal/buildserver"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/cache"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/finder"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/output"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// BuildServerResolver detects the CI environment. A nil BuildServer means
// the computation runs locally.
type BuildServerResolver interface {
	GetCurrentBuildServer() buildserver.BuildServer
}

// Preparer locates and normalises the working copy.
type Preparer interface {
	Initialize(normalize bool, currentBranch string, cleanupRemotes bool) error
	DotGitDirectory() string
	ProjectRootDirectory() string
	TargetBranch() string
	CommitID() string
	WithRepository(fn func(git.Repository) error) error
}

// PreparerFactory creates the Preparer for one computation.
type PreparerFactory func(args Arguments) Preparer

// CacheKeyFactory fingerprints the repository and configuration state.
type CacheKeyFactory interface {
	Create(p cache.RepositoryInfo, override *config.Config, locator *config.FileLocator) (cache.Key, error)
}

// Cache stores computed variables by key.
type Cache interface {
	Load(p cache.RepositoryInfo, key cache.Key) (output.VersionVariables, bool)
	Save(p cache.RepositoryInfo, key cache.Key, vars output.VersionVariables) error
}

// VersionFinder computes the version of the context's current commit.
type VersionFinder interface {
	FindVersion(ctx *context.GitVersionContext) (semver.SemanticVersion, error)
}

// VariableProvider formats a version into output variables.
type VariableProvider interface {
	GetVariablesFor(v semver.SemanticVersion, ec config.EffectiveConfiguration, isCurrentCommitTagged bool) output.VersionVariables
}

var (
	_ BuildServerResolver = (*buildserver.Resolver)(nil)
	_ Preparer            = (*git.Preparer)(nil)
	_ CacheKeyFactory     = (*cache.KeyFactory)(nil)
	_ Cache               = (*cache.DiskCache)(nil)
	_ VersionFinder       = (*finder.VersionFinder)(nil)
	_ VariableProvider    = (*output.VariableProvider)(nil)
)
