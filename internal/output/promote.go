// Package output turns a computed version into the named output variables
// and writes them in the supported formats.
package output

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

// PromoteCommitsToPreRelease applies ContinuousDeployment semantics: the
// number of commits since the version source becomes the pre-release
// number, so every commit gets a distinct, ordered version.
//
//	1.2.0+5      → 1.2.0-ci.5 (using fallback tag "ci")
//	1.2.0-beta+5 → 1.2.0-beta.5
//
// A version that already carries a pre-release number is returned unchanged.
func PromoteCommitsToPreRelease(ver semver.SemanticVersion, fallbackTag string) semver.SemanticVersion {
	if ver.PreReleaseTag.Number != nil {
		return ver
	}

	commitsSince := int64(0)
	if ver.BuildMetaData.CommitsSinceTag != nil {
		commitsSince = *ver.BuildMetaData.CommitsSinceTag
	}

	tagName := ver.PreReleaseTag.Name
	if tagName == "" {
		tagName = fallbackTag
	}

	ver.BuildMetaData.CommitsSinceTag = nil
	return ver.WithPreReleaseTag(semver.PreReleaseTag{
		Name:   tagName,
		Number: &commitsSince,
	})
}
