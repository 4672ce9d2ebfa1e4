package computer

import "fmt"

// RepositoryLocationError reports that no .git directory or working copy
// root could be found for TargetPath.
type RepositoryLocationError struct {
	TargetPath string
}

func (e *RepositoryLocationError) Error() string {
	return fmt.Sprintf("failed to prepare or find the .git directory in path '%s'", e.TargetPath)
}
