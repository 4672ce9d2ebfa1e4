package git

// Repository provides the low-level git operations used to compute a
// version. GoGitRepository is the production implementation; MockRepository
// backs unit tests.
type Repository interface {
	// Path returns the path to the .git directory.
	Path() string

	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// Head returns the current HEAD branch. IsDetachedHead is set when HEAD
	// does not point to a branch.
	Head() (Branch, error)

	// Branches returns local and remote-tracking branches.
	Branches() ([]Branch, error)

	// Tags returns all tags in the repository.
	Tags() ([]Tag, error)

	// References returns every ref with its target hash, sorted by name.
	References() ([]Reference, error)

	// CommitFromSha returns the commit for a full or abbreviated SHA.
	CommitFromSha(sha string) (Commit, error)

	// CommitLog returns commits reachable from 'to' but not from 'from',
	// newest first. If from is empty, all ancestors of 'to' are returned.
	CommitLog(from, to string) ([]Commit, error)

	// NumberOfUncommittedChanges returns the count of uncommitted changes
	// in the working directory.
	NumberOfUncommittedChanges() (int, error)

	// PeelTagToCommit resolves a tag to its target commit SHA.
	PeelTagToCommit(tag Tag) (string, error)
}
