package git

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	path    string
	workDir string
}

// Open opens the git repository containing path, walking up to find it.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}
	return wrap(r)
}

func wrap(r *gogit.Repository) (*GoGitRepository, error) {
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	dotGit := filepath.Join(root, ".git")
	if fs, ok := r.Storer.(*filesystem.Storage); ok {
		dotGit = fs.Filesystem().Root()
	}

	return &GoGitRepository{
		repo:    r,
		path:    dotGit,
		workDir: root,
	}, nil
}

// Close releases file handles held by the object storage.
func (r *GoGitRepository) Close() error {
	if c, ok := r.repo.Storer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *GoGitRepository) Path() string {
	return r.path
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) Head() (Branch, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.commitFromHash(ref.Hash())
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}

	return Branch{
		Name:           NewReferenceName(string(ref.Name())),
		Tip:            &commit,
		IsDetachedHead: !ref.Name().IsBranch(),
	}, nil
}

// collectRefs returns the references keep accepts, in iteration order.
func (r *GoGitRepository) collectRefs(keep func(*plumbing.Reference) bool) ([]*plumbing.Reference, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	defer iter.Close()

	var refs []*plumbing.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if keep(ref) {
			refs = append(refs, ref)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}
	return refs, nil
}

// Branches lists local and remote-tracking branches. Symbolic refs such as
// refs/remotes/origin/HEAD and branches whose tip cannot be loaded are
// skipped.
func (r *GoGitRepository) Branches() ([]Branch, error) {
	refs, err := r.collectRefs(func(ref *plumbing.Reference) bool {
		return ref.Type() == plumbing.HashReference && (ref.Name().IsBranch() || ref.Name().IsRemote())
	})
	if err != nil {
		return nil, err
	}

	branches := make([]Branch, 0, len(refs))
	for _, ref := range refs {
		tip, err := r.commitFromHash(ref.Hash())
		if err != nil {
			continue
		}
		branches = append(branches, Branch{
			Name:     NewReferenceName(ref.Name().String()),
			Tip:      &tip,
			IsRemote: ref.Name().IsRemote(),
		})
	}
	return branches, nil
}

func (r *GoGitRepository) Tags() ([]Tag, error) {
	refs, err := r.collectRefs(func(ref *plumbing.Reference) bool {
		return ref.Name().IsTag()
	})
	if err != nil {
		return nil, err
	}

	tags := make([]Tag, 0, len(refs))
	for _, ref := range refs {
		tags = append(tags, Tag{
			Name:      NewReferenceName(ref.Name().String()),
			TargetSha: ref.Hash().String(),
		})
	}
	return tags, nil
}

// References lists every ref sorted by name. Symbolic refs report their
// target name instead of a hash.
func (r *GoGitRepository) References() ([]Reference, error) {
	refs, err := r.collectRefs(func(*plumbing.Reference) bool { return true })
	if err != nil {
		return nil, err
	}

	out := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		target := ref.Hash().String()
		if ref.Type() == plumbing.SymbolicReference {
			target = ref.Target().String()
		}
		out = append(out, Reference{Name: ref.Name().String(), Hash: target})
	}
	slices.SortFunc(out, func(a, b Reference) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (r *GoGitRepository) CommitFromSha(sha string) (Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(sha))
	if err != nil {
		return Commit{}, fmt.Errorf("resolving commit %s: %w", sha, err)
	}
	return r.commitFromHash(*hash)
}

func (r *GoGitRepository) CommitLog(from, to string) ([]Commit, error) {
	excluded := make(map[plumbing.Hash]struct{})
	if from != "" {
		err := r.walk(plumbing.NewHash(from), func(c *object.Commit) {
			excluded[c.Hash] = struct{}{}
		})
		if err != nil {
			return nil, fmt.Errorf("walking history of %s: %w", from, err)
		}
	}

	var commits []Commit
	err := r.walk(plumbing.NewHash(to), func(c *object.Commit) {
		if _, ok := excluded[c.Hash]; !ok {
			commits = append(commits, convertCommit(c))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("getting commit log: %w", err)
	}

	return commits, nil
}

func (r *GoGitRepository) walk(from plumbing.Hash, fn func(*object.Commit)) error {
	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  from,
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		fn(c)
		return nil
	})
}

func (r *GoGitRepository) NumberOfUncommittedChanges() (int, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return 0, fmt.Errorf("getting worktree status: %w", err)
	}

	count := 0
	for _, s := range status {
		if s.Staging != gogit.Unmodified || s.Worktree != gogit.Unmodified {
			count++
		}
	}

	return count, nil
}

func (r *GoGitRepository) PeelTagToCommit(tag Tag) (string, error) {
	hash := plumbing.NewHash(tag.TargetSha)

	tagObj, err := r.repo.TagObject(hash)
	if err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return "", fmt.Errorf("peeling annotated tag %s: %w", tag.Name.Friendly, err)
		}
		return commit.Hash.String(), nil
	}
	if !errors.Is(err, plumbing.ErrObjectNotFound) {
		return "", fmt.Errorf("reading tag %s: %w", tag.Name.Friendly, err)
	}

	if _, err := r.repo.CommitObject(hash); err != nil {
		return "", fmt.Errorf("tag %s does not point to a commit: %w", tag.Name.Friendly, err)
	}

	return tag.TargetSha, nil
}

// commitFromHash loads a go-git commit and converts it to our Commit type.
func (r *GoGitRepository) commitFromHash(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, fmt.Errorf("loading commit %s: %w", hash.String(), err)
	}
	return convertCommit(c), nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Sha:     c.Hash.String(),
		Parents: parents,
		When:    c.Committer.When,
		Message: c.Message,
	}
}
