package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	mmsemver "github.com/Masterminds/semver/v3"
)

// SemanticVersion represents a semantic version.
// This type is immutable: all methods return new values.
type SemanticVersion struct {
	Major         int64
	Minor         int64
	Patch         int64
	PreReleaseTag PreReleaseTag
	BuildMetaData BuildMetaData
}

// PreReleaseTag is the pre-release portion of a version, e.g. "beta.4".
type PreReleaseTag struct {
	Name   string
	Number *int64
}

// BuildMetaData carries the build metadata of a computed version.
type BuildMetaData struct {
	CommitsSinceTag           *int64
	Branch                    string
	Sha                       string
	ShortSha                  string
	VersionSourceSha          string
	CommitDate                time.Time
	CommitsSinceVersionSource int64
	UncommittedChanges        int64
}

// TryParse attempts to parse a version string with an optional tag prefix regex.
func TryParse(s, tagPrefix string) (SemanticVersion, bool) {
	v, err := Parse(s, tagPrefix)
	if err != nil {
		return SemanticVersion{}, false
	}
	return v, true
}

// Parse parses a version string with an optional tag prefix regex.
// If tagPrefix is non-empty, the string must start with a match for the prefix.
func Parse(s, tagPrefix string) (SemanticVersion, error) {
	remaining := s

	if tagPrefix != "" {
		prefixRegex, err := regexp.Compile("^(?:" + tagPrefix + ")")
		if err != nil {
			return SemanticVersion{}, fmt.Errorf("invalid tag prefix regex: %w", err)
		}
		loc := prefixRegex.FindStringIndex(remaining)
		if loc == nil {
			return SemanticVersion{}, errors.New("version string does not match tag prefix: " + s)
		}
		remaining = remaining[loc[1]:]
	}

	// Masterminds accepts a leading "v"; the prefix regex owns that decision.
	if strings.HasPrefix(remaining, "v") || strings.HasPrefix(remaining, "V") {
		return SemanticVersion{}, errors.New("invalid version format: " + s)
	}

	parsed, err := mmsemver.NewVersion(remaining)
	if err != nil {
		return SemanticVersion{}, fmt.Errorf("invalid version format %q: %w", s, err)
	}

	v := SemanticVersion{
		Major:         int64(parsed.Major()),
		Minor:         int64(parsed.Minor()),
		Patch:         int64(parsed.Patch()),
		PreReleaseTag: parsePreReleaseTag(parsed.Prerelease()),
	}
	if n, err := strconv.ParseInt(parsed.Metadata(), 10, 64); err == nil {
		v.BuildMetaData = BuildMetaData{CommitsSinceTag: &n}
	}
	return v, nil
}

// parsePreReleaseTag handles "beta.4", "beta", "4" and "alpha.1".
func parsePreReleaseTag(s string) PreReleaseTag {
	if s == "" {
		return PreReleaseTag{}
	}

	if lastDot := strings.LastIndex(s, "."); lastDot >= 0 {
		if num, err := strconv.ParseInt(s[lastDot+1:], 10, 64); err == nil {
			return PreReleaseTag{Name: s[:lastDot], Number: &num}
		}
	}

	if num, err := strconv.ParseInt(s, 10, 64); err == nil {
		return PreReleaseTag{Number: &num}
	}

	return PreReleaseTag{Name: s}
}

// CompareTo compares two SemanticVersions. Build metadata is ignored.
func (v SemanticVersion) CompareTo(other SemanticVersion) int {
	for _, pair := range [][2]int64{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	} {
		if pair[0] != pair[1] {
			if pair[0] > pair[1] {
				return 1
			}
			return -1
		}
	}
	return v.PreReleaseTag.CompareTo(other.PreReleaseTag)
}

// IncrementField bumps the specified version field. Lower fields are
// zeroed; pre-release tag and build metadata are cleared.
func (v SemanticVersion) IncrementField(field VersionField) SemanticVersion {
	switch field {
	case VersionFieldMajor:
		return SemanticVersion{Major: v.Major + 1}
	case VersionFieldMinor:
		return SemanticVersion{Major: v.Major, Minor: v.Minor + 1}
	case VersionFieldPatch:
		return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// WithPreReleaseTag returns a copy with the given pre-release tag.
func (v SemanticVersion) WithPreReleaseTag(tag PreReleaseTag) SemanticVersion {
	v.PreReleaseTag = tag
	return v
}

// WithBuildMetaData returns a copy with the given build metadata.
func (v SemanticVersion) WithBuildMetaData(meta BuildMetaData) SemanticVersion {
	v.BuildMetaData = meta
	return v
}

// MajorMinorPatch returns "1.2.3".
func (v SemanticVersion) MajorMinorPatch() string {
	return strconv.FormatInt(v.Major, 10) + "." +
		strconv.FormatInt(v.Minor, 10) + "." +
		strconv.FormatInt(v.Patch, 10)
}

// SemVer returns the SemVer 2.0 format (e.g., "1.2.3" or "1.2.3-beta.4").
func (v SemanticVersion) SemVer() string {
	if tag := v.PreReleaseTag.String(); tag != "" {
		return v.MajorMinorPatch() + "-" + tag
	}
	return v.MajorMinorPatch()
}

// FullSemVer returns the SemVer with build metadata (e.g., "1.2.3-beta.4+5").
func (v SemanticVersion) FullSemVer() string {
	if meta := v.BuildMetaData.String(); meta != "" {
		return v.SemVer() + "+" + meta
	}
	return v.SemVer()
}

// LegacySemVer returns the format without dots in pre-release (e.g., "1.2.3-beta4").
func (v SemanticVersion) LegacySemVer() string {
	if tag := v.PreReleaseTag.Legacy(); tag != "" {
		return v.MajorMinorPatch() + "-" + tag
	}
	return v.MajorMinorPatch()
}

// LegacySemVerPadded returns the padded legacy format (e.g., "1.2.3-beta0004").
func (v SemanticVersion) LegacySemVerPadded(pad int) string {
	if tag := v.PreReleaseTag.LegacyPadded(pad); tag != "" {
		return v.MajorMinorPatch() + "-" + tag
	}
	return v.MajorMinorPatch()
}

// InformationalVersion returns e.g. "1.2.3-beta.4+5.Branch.main.Sha.abc1234".
func (v SemanticVersion) InformationalVersion() string {
	if meta := v.BuildMetaData.FullString(); meta != "" {
		return v.SemVer() + "+" + meta
	}
	return v.SemVer()
}

// HasTag returns true when the pre-release tag has a name or number.
func (t PreReleaseTag) HasTag() bool {
	return t.Name != "" || t.Number != nil
}

// WithNumber returns a new PreReleaseTag with the given number.
func (t PreReleaseTag) WithNumber(n int64) PreReleaseTag {
	return PreReleaseTag{Name: t.Name, Number: &n}
}

// CompareTo orders pre-release tags. A stable version (no tag) sorts after
// any pre-release; otherwise names compare case-insensitively, then numbers.
func (t PreReleaseTag) CompareTo(other PreReleaseTag) int {
	switch {
	case !t.HasTag() && !other.HasTag():
		return 0
	case !t.HasTag():
		return 1
	case !other.HasTag():
		return -1
	}

	if c := strings.Compare(strings.ToLower(t.Name), strings.ToLower(other.Name)); c != 0 {
		return c
	}

	tNum, oNum := t.number(), other.number()
	switch {
	case tNum < oNum:
		return -1
	case tNum > oNum:
		return 1
	default:
		return 0
	}
}

func (t PreReleaseTag) number() int64 {
	if t.Number == nil {
		return 0
	}
	return *t.Number
}

// String returns the dotted pre-release string (e.g., "beta.4").
func (t PreReleaseTag) String() string {
	return t.join(".", func(n int64) string { return strconv.FormatInt(n, 10) })
}

// Legacy returns the pre-release string without a dot separator (e.g., "beta4").
func (t PreReleaseTag) Legacy() string {
	return t.join("", func(n int64) string { return strconv.FormatInt(n, 10) })
}

// LegacyPadded returns the legacy format with zero-padded number (e.g., "beta0004").
func (t PreReleaseTag) LegacyPadded(pad int) string {
	return t.join("", func(n int64) string { return fmt.Sprintf("%0*d", pad, n) })
}

func (t PreReleaseTag) join(sep string, num func(int64) string) string {
	switch {
	case !t.HasTag():
		return ""
	case t.Number == nil:
		return t.Name
	case t.Name == "":
		return num(*t.Number)
	default:
		return t.Name + sep + num(*t.Number)
	}
}

// String returns the short metadata string (commits since tag count).
func (m BuildMetaData) String() string {
	if m.CommitsSinceTag == nil {
		return ""
	}
	return strconv.FormatInt(*m.CommitsSinceTag, 10)
}

// FullString returns e.g. "5.Branch.main.Sha.abc1234".
func (m BuildMetaData) FullString() string {
	var parts []string
	if m.CommitsSinceTag != nil {
		parts = append(parts, strconv.FormatInt(*m.CommitsSinceTag, 10))
	}
	if m.Branch != "" {
		parts = append(parts, "Branch."+escapeMetaData(m.Branch))
	}
	if m.Sha != "" {
		parts = append(parts, "Sha."+m.Sha)
	}
	return strings.Join(parts, ".")
}

// Padded returns the metadata string with zero-padded commits since tag.
func (m BuildMetaData) Padded(pad int) string {
	if m.CommitsSinceTag == nil {
		return ""
	}
	return fmt.Sprintf("%0*d", pad, *m.CommitsSinceTag)
}

var metaDataEscaper = regexp.MustCompile(`[^0-9A-Za-z-]`)

func escapeMetaData(s string) string {
	return metaDataEscaper.ReplaceAllString(s, "-")
}
