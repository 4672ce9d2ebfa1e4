// Package computer orchestrates a version computation: it prepares the
// repository, reuses a cached result when the repository and configuration
// are unchanged, and otherwise resolves the configuration and runs the
// version finder.
package computer

import (
	"fmt"
	"maps"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/buildserver"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/cache"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/finder"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/output"
)

// Arguments describe one computation.
type Arguments struct {
	// TargetPath is a directory inside the working copy.
	TargetPath string
	// TargetURL and DynamicRepositoryLocation describe a repository that is
	// cloned before computing.
	TargetURL                 string
	DynamicRepositoryLocation string
	Username                  string
	Password                  string

	TargetBranch string
	CommitID     string

	// ConfigFile overrides config file discovery.
	ConfigFile     string
	OverrideConfig *config.Config

	NoFetch     bool
	NoCache     bool
	NoNormalize bool
}

// Computer runs version computations. It is safe for concurrent use;
// concurrent misses on the same cache key are computed once.
type Computer struct {
	logger       *log.Logger
	buildServers BuildServerResolver
	newPreparer  PreparerFactory
	keys         CacheKeyFactory
	cache        Cache
	finder       VersionFinder
	variables    VariableProvider

	inflight singleflight.Group
}

// Option configures a Computer.
type Option func(*Computer)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Computer) { c.logger = logger }
}

// WithBuildServerResolver replaces build server detection.
func WithBuildServerResolver(r BuildServerResolver) Option {
	return func(c *Computer) { c.buildServers = r }
}

// WithPreparerFactory replaces repository preparation.
func WithPreparerFactory(f PreparerFactory) Option {
	return func(c *Computer) { c.newPreparer = f }
}

// WithCacheKeyFactory replaces cache key derivation.
func WithCacheKeyFactory(f CacheKeyFactory) Option {
	return func(c *Computer) { c.keys = f }
}

// WithCache replaces the disk cache.
func WithCache(store Cache) Option {
	return func(c *Computer) { c.cache = store }
}

// WithVersionFinder replaces the version finder.
func WithVersionFinder(f VersionFinder) Option {
	return func(c *Computer) { c.finder = f }
}

// WithVariableProvider replaces the variable formatter.
func WithVariableProvider(p VariableProvider) Option {
	return func(c *Computer) { c.variables = p }
}

// New creates a Computer. Collaborators not supplied through options use
// the default implementations.
func New(opts ...Option) *Computer {
	c := &Computer{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.buildServers == nil {
		c.buildServers = buildserver.NewResolver()
	}
	if c.newPreparer == nil {
		c.newPreparer = c.defaultPreparer
	}
	if c.keys == nil {
		c.keys = cache.NewKeyFactory(c.logger)
	}
	if c.cache == nil {
		c.cache = cache.NewDiskCache(c.logger)
	}
	if c.finder == nil {
		c.finder = finder.NewVersionFinder(finder.WithLogger(c.logger))
	}
	if c.variables == nil {
		c.variables = output.NewVariableProvider()
	}
	return c
}

func (c *Computer) defaultPreparer(args Arguments) Preparer {
	return git.NewPreparer(git.PreparerOptions{
		TargetPath:                args.TargetPath,
		TargetURL:                 args.TargetURL,
		DynamicRepositoryLocation: args.DynamicRepositoryLocation,
		TargetBranch:              args.TargetBranch,
		CommitID:                  args.CommitID,
		NoFetch:                   args.NoFetch,
		Username:                  args.Username,
		Password:                  args.Password,
		Logger:                    c.logger,
	})
}

// ComputeVersion computes the version variables for args. A repository
// that cannot be located yields a *RepositoryLocationError. Cache write
// failures are logged and never change the result.
func (c *Computer) ComputeVersion(args Arguments) (output.VersionVariables, error) {
	bs := c.buildServers.GetCurrentBuildServer()

	normalize := !args.NoNormalize && bs != nil
	args.NoFetch = args.NoFetch || (bs != nil && bs.PreventFetch())
	cleanupRemotes := bs != nil && bs.ShouldCleanUpRemotes()

	p := c.newPreparer(args)
	currentBranch := c.resolveCurrentBranch(bs, args.TargetBranch, args.DynamicRepositoryLocation != "")

	if err := p.Initialize(normalize, currentBranch, cleanupRemotes); err != nil {
		return nil, fmt.Errorf("preparing repository: %w", err)
	}

	dotGitDir, projectRoot := p.DotGitDirectory(), p.ProjectRootDirectory()
	c.logger.Info("Project root is", "path", projectRoot)
	c.logger.Info("DotGit directory is", "path", dotGitDir)
	if dotGitDir == "" || projectRoot == "" {
		return nil, &RepositoryLocationError{TargetPath: args.TargetPath}
	}

	locator := &config.FileLocator{FilePath: args.ConfigFile}
	key, err := c.keys.Create(p, args.OverrideConfig, locator)
	if err != nil {
		return nil, fmt.Errorf("creating cache key: %w", err)
	}

	if args.NoCache {
		return c.compute(p, currentBranch, args, locator)
	}

	v, err, _ := c.inflight.Do(key.Value, func() (any, error) {
		if vars, ok := c.cache.Load(p, key); ok {
			c.logger.Debug("Cache hit", "key", key.Value)
			return vars, nil
		}
		c.logger.Debug("Cache miss", "key", key.Value)

		vars, err := c.compute(p, currentBranch, args, locator)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Save(p, key, vars); err != nil {
			c.logger.Warn("One or more errors during cache write", "err", err)
		}
		return vars, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers sharing a flight must not share the map.
	return maps.Clone(v.(output.VersionVariables)), nil
}

// TryComputeVersion computes the version for directory and reports failure
// as ok=false instead of an error. Panics are recovered as well.
func (c *Computer) TryComputeVersion(directory string, noFetch bool) (vars output.VersionVariables, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("Could not determine assembly version", "err", r)
			vars, ok = nil, false
		}
	}()

	vars, err := c.ComputeVersion(Arguments{TargetPath: directory, NoFetch: noFetch})
	if err != nil {
		c.logger.Warn("Could not determine assembly version", "err", err)
		return nil, false
	}
	return vars, true
}

func (c *Computer) resolveCurrentBranch(bs buildserver.BuildServer, targetBranch string, isDynamicRepo bool) string {
	if bs == nil {
		return targetBranch
	}
	currentBranch := bs.GetCurrentBranch(isDynamicRepo)
	if currentBranch == "" {
		currentBranch = targetBranch
	}
	c.logger.Info("Branch from build environment", "server", bs.Name(), "branch", currentBranch)
	return currentBranch
}

// compute resolves the configuration and runs the finder and formatter
// against the prepared repository.
func (c *Computer) compute(p Preparer, branch string, args Arguments, locator *config.FileLocator) (output.VersionVariables, error) {
	cfg, err := config.Provide(p.ProjectRootDirectory(), args.OverrideConfig, locator)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	var vars output.VersionVariables
	err = p.WithRepository(func(repo git.Repository) error {
		ctx, err := context.NewContext(repo, cfg, context.Options{
			TargetBranch: branch,
			CommitID:     args.CommitID,
		})
		if err != nil {
			return err
		}

		ver, err := c.finder.FindVersion(ctx)
		if err != nil {
			return fmt.Errorf("finding version: %w", err)
		}

		vars = c.variables.GetVariablesFor(ver, ctx.Configuration, ctx.IsCurrentCommitTagged)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vars, nil
}
