package git

import (
	"regexp"
	"strings"
)

// versionSegmentRe matches a semantic version segment (e.g., "1.2.0", "1.2", "2").
var versionSegmentRe = regexp.MustCompile(`^\d+(\.\d+){0,2}$`)

// ExtractVersionFromBranch attempts to extract a semantic version string from
// a branch name such as "release/1.2" or "release-1.3.0". The result is
// padded to Major.Minor.Patch. Segments like "JIRA-123" are not matched
// because the pre-dash portion is non-numeric.
func ExtractVersionFromBranch(branchName, tagPrefix string) (string, bool) {
	var prefixRe *regexp.Regexp
	if tagPrefix != "" {
		prefixRe, _ = regexp.Compile("^(?:" + tagPrefix + ")")
	}

	for _, part := range strings.Split(branchName, "/") {
		if v, ok := tryExtractVersion(part, prefixRe); ok {
			return v, true
		}
		if _, rest, ok := strings.Cut(part, "-"); ok {
			if v, ok := tryExtractVersion(rest, prefixRe); ok {
				return v, true
			}
		}
	}

	return "", false
}

func tryExtractVersion(s string, prefixRe *regexp.Regexp) (string, bool) {
	cleaned := s
	if prefixRe != nil {
		cleaned = prefixRe.ReplaceAllString(s, "")
	}
	if !versionSegmentRe.MatchString(cleaned) {
		return "", false
	}
	parts := strings.Split(cleaned, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(parts, "."), true
}
