// Package git provides the repository access layer: concrete entity types
// (Commit, Branch, Tag), a Repository interface backed by go-git, the
// Preparer that locates and normalises a working copy, and
// version-oriented queries via RepositoryStore.
package git

import (
	"strings"
	"time"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

const (
	localBranchPrefix          = "refs/heads/"
	remoteTrackingBranchPrefix = "refs/remotes/"
	tagRefPrefix               = "refs/tags/"

	shortShaLength = 7
)

// Commit is a commit as seen by the version finder.
type Commit struct {
	Sha     string
	Parents []string
	When    time.Time
	Message string
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ShortSha returns the abbreviated SHA used in version variables.
func (c Commit) ShortSha() string {
	return c.Sha[:min(len(c.Sha), shortShaLength)]
}

// RefKind classifies a reference by its namespace.
type RefKind int

const (
	RefOther RefKind = iota
	RefLocalBranch
	RefRemoteBranch
	RefTag
)

var refNamespaces = []struct {
	prefix string
	kind   RefKind
}{
	{localBranchPrefix, RefLocalBranch},
	{remoteTrackingBranchPrefix, RefRemoteBranch},
	{tagRefPrefix, RefTag},
}

// ReferenceName is a ref in its canonical and display forms.
//
//	refs/heads/main          → Friendly "main",        WithoutRemote "main"
//	refs/remotes/origin/main → Friendly "origin/main", WithoutRemote "main"
type ReferenceName struct {
	Canonical     string
	Friendly      string
	WithoutRemote string
	Kind          RefKind
}

// NewReferenceName parses a canonical ref path. Names outside the known
// namespaces (e.g. "HEAD") keep their value in every form.
func NewReferenceName(canonical string) ReferenceName {
	n := ReferenceName{Canonical: canonical, Friendly: canonical, WithoutRemote: canonical}
	for _, ns := range refNamespaces {
		short, ok := strings.CutPrefix(canonical, ns.prefix)
		if !ok {
			continue
		}
		n.Kind, n.Friendly, n.WithoutRemote = ns.kind, short, short
		if ns.kind == RefRemoteBranch {
			if _, rest, found := strings.Cut(short, "/"); found {
				n.WithoutRemote = rest
			}
		}
		break
	}
	return n
}

// NewBranchReferenceName creates a ReferenceName for a local branch.
func NewBranchReferenceName(name string) ReferenceName {
	return NewReferenceName(localBranchPrefix + name)
}

// ShortBranchName strips refs/heads/, refs/remotes/<remote>/ and a leading
// "origin/" from a branch name as reported by users or CI systems.
func ShortBranchName(name string) string {
	switch n := NewReferenceName(name); n.Kind {
	case RefLocalBranch, RefRemoteBranch:
		return n.WithoutRemote
	default:
		return strings.TrimPrefix(name, "origin/")
	}
}

// Branch is a local or remote-tracking branch. A detached HEAD is
// reported as a Branch named "HEAD".
type Branch struct {
	Name           ReferenceName
	Tip            *Commit
	IsRemote       bool
	IsDetachedHead bool
}

// FriendlyName returns the friendly name of the branch.
func (b Branch) FriendlyName() string {
	return b.Name.Friendly
}

// Tag is a tag ref. TargetSha is the tag object for annotated tags and the
// commit for lightweight ones.
type Tag struct {
	Name      ReferenceName
	TargetSha string
}

// Reference is a raw ref and the hash it resolves to. The cache key is
// built from these.
type Reference struct {
	Name string
	Hash string
}

// VersionTag is a tag whose name parsed as a version, with the commit it
// peels to.
type VersionTag struct {
	Tag     Tag
	Version semver.SemanticVersion
	Commit  Commit
}
