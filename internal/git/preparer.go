package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

const originRemote = "origin"

// PreparerOptions describes where the working copy is and how it may be
// touched.
type PreparerOptions struct {
	// TargetPath is a directory inside the working copy.
	TargetPath string
	// TargetURL, when set, is cloned into DynamicRepositoryLocation (or a
	// temporary directory) before anything else happens.
	TargetURL                 string
	DynamicRepositoryLocation string
	TargetBranch              string
	CommitID                  string
	NoFetch                   bool
	Username                  string
	Password                  string
	Logger                    *log.Logger
}

// Preparer locates and normalises the working copy the version is computed
// for. A path without a repository is not an error: the directories stay
// empty and the caller decides how to report it.
type Preparer struct {
	opts          PreparerOptions
	logger        *log.Logger
	dotGitDir     string
	projectRoot   string
	currentBranch string
}

// NewPreparer creates a Preparer.
func NewPreparer(opts PreparerOptions) *Preparer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Preparer{opts: opts, logger: logger}
}

// DotGitDirectory returns the .git directory found by Initialize.
func (p *Preparer) DotGitDirectory() string { return p.dotGitDir }

// ProjectRootDirectory returns the working copy root found by Initialize.
func (p *Preparer) ProjectRootDirectory() string { return p.projectRoot }

// TargetBranch returns the branch the version is computed for: the
// current branch passed to Initialize, or the requested branch before that.
func (p *Preparer) TargetBranch() string {
	if p.currentBranch != "" {
		return p.currentBranch
	}
	return p.opts.TargetBranch
}

// CommitID returns the commit requested by the caller.
func (p *Preparer) CommitID() string { return p.opts.CommitID }

// IsDynamic reports whether the working copy is cloned from TargetURL.
func (p *Preparer) IsDynamic() bool { return p.opts.TargetURL != "" }

// Initialize locates the repository, cloning it first for dynamic
// repositories, then optionally removes extra remotes and normalises it
// for currentBranch.
func (p *Preparer) Initialize(normalize bool, currentBranch string, cleanupRemotes bool) error {
	p.currentBranch = currentBranch
	path := p.opts.TargetPath
	if p.IsDynamic() {
		cloned, err := p.cloneDynamic(currentBranch)
		if err != nil {
			return err
		}
		path = cloned
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		p.logger.Debug("No git repository found", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wrapped, err := wrap(repo)
	if errors.Is(err, gogit.ErrIsBareRepository) {
		p.logger.Debug("Bare repository has no working copy", "path", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer wrapped.Close()

	if cleanupRemotes {
		if err := p.cleanupRemotes(repo); err != nil {
			return err
		}
	}
	if normalize {
		if err := p.normalize(repo, currentBranch); err != nil {
			return err
		}
	}

	p.dotGitDir = wrapped.Path()
	p.projectRoot = wrapped.WorkingDirectory()
	return nil
}

// WithRepository opens the located repository, passes it to fn and closes
// it again whatever fn returns.
func (p *Preparer) WithRepository(fn func(Repository) error) error {
	if p.projectRoot == "" {
		return errors.New("repository has not been located")
	}
	repo, err := Open(p.projectRoot)
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(repo)
}

func (p *Preparer) auth() transport.AuthMethod {
	if p.opts.Username == "" && p.opts.Password == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: p.opts.Username, Password: p.opts.Password}
}

func (p *Preparer) cloneDynamic(currentBranch string) (string, error) {
	dir := p.opts.DynamicRepositoryLocation
	if dir == "" {
		tmp, err := os.MkdirTemp("", "gitversion-")
		if err != nil {
			return "", fmt.Errorf("creating dynamic repository directory: %w", err)
		}
		dir = tmp
	}

	if _, err := gogit.PlainOpen(dir); err == nil {
		p.logger.Info("Using existing dynamic repository", "path", dir)
		return dir, nil
	}

	opts := &gogit.CloneOptions{
		URL:  p.opts.TargetURL,
		Auth: p.auth(),
		Tags: gogit.AllTags,
	}
	if branch := ShortBranchName(currentBranch); branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	p.logger.Info("Cloning dynamic repository", "url", p.opts.TargetURL, "path", dir)
	if _, err := gogit.PlainClone(dir, false, opts); err != nil {
		return "", fmt.Errorf("cloning %s: %w", p.opts.TargetURL, err)
	}
	return dir, nil
}

func (p *Preparer) cleanupRemotes(repo *gogit.Repository) error {
	remotes, err := repo.Remotes()
	if err != nil {
		return fmt.Errorf("listing remotes: %w", err)
	}
	for _, r := range remotes {
		name := r.Config().Name
		if name == originRemote {
			continue
		}
		p.logger.Info("Removing remote", "name", name)
		if err := repo.DeleteRemote(name); err != nil {
			return fmt.Errorf("removing remote %s: %w", name, err)
		}
	}
	return nil
}

// normalize fetches origin, makes sure a local branch exists for
// currentBranch and re-attaches a detached HEAD that sits on its tip.
func (p *Preparer) normalize(repo *gogit.Repository, currentBranch string) error {
	if !p.opts.NoFetch {
		err := repo.Fetch(&gogit.FetchOptions{
			RemoteName: originRemote,
			Auth:       p.auth(),
			Tags:       gogit.AllTags,
		})
		switch {
		case err == nil, errors.Is(err, gogit.NoErrAlreadyUpToDate):
		case errors.Is(err, gogit.ErrRemoteNotFound):
			p.logger.Debug("No origin remote to fetch from")
		default:
			return fmt.Errorf("fetching %s: %w", originRemote, err)
		}
	}

	branch := ShortBranchName(currentBranch)
	if branch == "" {
		return nil
	}
	local := plumbing.NewBranchReferenceName(branch)

	localRef, err := repo.Reference(local, true)
	if err != nil {
		hash, err := p.branchStart(repo, branch)
		if err != nil {
			return err
		}
		localRef = plumbing.NewHashReference(local, hash)
		p.logger.Info("Creating local branch", "branch", branch, "sha", hash.String())
		if err := repo.Storer.SetReference(localRef); err != nil {
			return fmt.Errorf("creating local branch %s: %w", branch, err)
		}
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}
	if !head.Name().IsBranch() && head.Hash() == localRef.Hash() {
		p.logger.Info("Attaching detached HEAD", "branch", branch)
		if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, local)); err != nil {
			return fmt.Errorf("attaching HEAD to %s: %w", branch, err)
		}
	}
	return nil
}

// branchStart picks the commit a missing local branch is created at: the
// origin tracking branch if there is one, otherwise HEAD.
func (p *Preparer) branchStart(repo *gogit.Repository, branch string) (plumbing.Hash, error) {
	if ref, err := repo.Reference(plumbing.NewRemoteReferenceName(originRemote, branch), true); err == nil {
		return ref.Hash(), nil
	}
	head, err := repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Hash(), nil
}
