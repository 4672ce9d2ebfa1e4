package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// paddings holds the zero-padding widths of the padded variables.
type paddings struct {
	legacySemVer              int
	buildMetaData             int
	commitsSinceVersionSource int
}

var branchNameEscaper = regexp.MustCompile(`[^a-zA-Z0-9-]`)

func escapeBranchName(name string) string {
	return branchNameEscaper.ReplaceAllString(name, "-")
}

// formatValues computes the version-derived variables. Assembly and
// weighted values are added by the provider.
func formatValues(ver semver.SemanticVersion, pad paddings, commitDateFormat string) VersionVariables {
	vals := make(VersionVariables, 40)

	vals[Major] = strconv.FormatInt(ver.Major, 10)
	vals[Minor] = strconv.FormatInt(ver.Minor, 10)
	vals[Patch] = strconv.FormatInt(ver.Patch, 10)
	vals[MajorMinorPatch] = ver.MajorMinorPatch()

	vals[SemVer] = ver.SemVer()
	vals[FullSemVer] = ver.FullSemVer()
	vals[LegacySemVer] = ver.LegacySemVer()
	vals[LegacySemVerPadded] = ver.LegacySemVerPadded(pad.legacySemVer)
	vals[InformationalVersion] = ver.InformationalVersion()

	vals[PreReleaseTag] = ver.PreReleaseTag.String()
	vals[PreReleaseTagWithDash] = withDash(vals[PreReleaseTag])
	vals[PreReleaseLabel] = ver.PreReleaseTag.Name
	vals[PreReleaseLabelWithDash] = withDash(ver.PreReleaseTag.Name)
	vals[PreReleaseNumber] = ""
	if ver.PreReleaseTag.Number != nil {
		vals[PreReleaseNumber] = strconv.FormatInt(*ver.PreReleaseTag.Number, 10)
	}

	vals[BuildMetaData] = ver.BuildMetaData.String()
	vals[BuildMetaDataPadded] = ver.BuildMetaData.Padded(pad.buildMetaData)
	vals[FullBuildMetaData] = ver.BuildMetaData.FullString()

	vals[BranchName] = ver.BuildMetaData.Branch
	vals[EscapedBranchName] = escapeBranchName(ver.BuildMetaData.Branch)
	vals[Sha] = ver.BuildMetaData.Sha
	vals[ShortSha] = ver.BuildMetaData.ShortSha

	vals[VersionSourceSha] = ver.BuildMetaData.VersionSourceSha
	vals[CommitsSinceVersionSource] = strconv.FormatInt(ver.BuildMetaData.CommitsSinceVersionSource, 10)
	vals[CommitsSinceVersionSourcePadded] = fmt.Sprintf("%0*d", pad.commitsSinceVersionSource, ver.BuildMetaData.CommitsSinceVersionSource)
	vals[UncommittedChanges] = strconv.FormatInt(ver.BuildMetaData.UncommittedChanges, 10)

	vals[CommitDate] = ""
	if !ver.BuildMetaData.CommitDate.IsZero() {
		vals[CommitDate] = ver.BuildMetaData.CommitDate.Format(translateDateFormat(commitDateFormat))
	}

	nuget := ver.LegacySemVerPadded(pad.legacySemVer)
	nugetPreRelease := ver.PreReleaseTag.LegacyPadded(pad.legacySemVer)
	vals[NuGetVersionV2] = nuget
	vals[NuGetVersion] = nuget
	vals[NuGetPreReleaseTagV2] = nugetPreRelease
	vals[NuGetPreReleaseTag] = nugetPreRelease

	return vals
}

func withDash(s string) string {
	if s == "" {
		return ""
	}
	return "-" + s
}

// dateFormatReplacements maps .NET/Java date format tokens to Go reference time tokens.
// Order matters: longer tokens must be replaced before shorter ones (e.g. "yyyy" before "yy").
var dateFormatReplacements = []struct{ from, to string }{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"tt", "PM"},
	{"fff", "000"},
	{"ff", "00"},
	{"f", "0"},
}

// translateDateFormat converts a .NET-style date format (e.g. "yyyy-MM-dd")
// to a Go time layout. A format that already contains the reference year
// "2006" is returned as-is.
func translateDateFormat(format string) string {
	if format == "" {
		return "2006-01-02"
	}
	if strings.Contains(format, "2006") {
		return format
	}
	result := format
	for _, r := range dateFormatReplacements {
		result = strings.ReplaceAll(result, r.from, r.to)
	}
	return result
}
