package output

import (
	"regexp"
	"strconv"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// VersionVariables are the named output values of a computation.
type VersionVariables map[string]string

// Variable names.
const (
	Major                           = "Major"
	Minor                           = "Minor"
	Patch                           = "Patch"
	MajorMinorPatch                 = "MajorMinorPatch"
	SemVer                          = "SemVer"
	FullSemVer                      = "FullSemVer"
	LegacySemVer                    = "LegacySemVer"
	LegacySemVerPadded              = "LegacySemVerPadded"
	InformationalVersion            = "InformationalVersion"
	PreReleaseTag                   = "PreReleaseTag"
	PreReleaseTagWithDash           = "PreReleaseTagWithDash"
	PreReleaseLabel                 = "PreReleaseLabel"
	PreReleaseLabelWithDash         = "PreReleaseLabelWithDash"
	PreReleaseNumber                = "PreReleaseNumber"
	WeightedPreReleaseNumber        = "WeightedPreReleaseNumber"
	BuildMetaData                   = "BuildMetaData"
	BuildMetaDataPadded             = "BuildMetaDataPadded"
	FullBuildMetaData               = "FullBuildMetaData"
	BranchName                      = "BranchName"
	EscapedBranchName               = "EscapedBranchName"
	Sha                             = "Sha"
	ShortSha                        = "ShortSha"
	VersionSourceSha                = "VersionSourceSha"
	CommitsSinceVersionSource       = "CommitsSinceVersionSource"
	CommitsSinceVersionSourcePadded = "CommitsSinceVersionSourcePadded"
	UncommittedChanges              = "UncommittedChanges"
	CommitDate                      = "CommitDate"
	AssemblySemVer                  = "AssemblySemVer"
	AssemblySemFileVer              = "AssemblySemFileVer"
	AssemblyInformationalVersion    = "AssemblyInformationalVersion"
	NuGetVersionV2                  = "NuGetVersionV2"
	NuGetVersion                    = "NuGetVersion"
	NuGetPreReleaseTagV2            = "NuGetPreReleaseTagV2"
	NuGetPreReleaseTag              = "NuGetPreReleaseTag"
)

// VariableProvider converts a computed version into VersionVariables.
type VariableProvider struct{}

// NewVariableProvider returns a VariableProvider.
func NewVariableProvider() *VariableProvider {
	return &VariableProvider{}
}

// GetVariablesFor computes every output variable for ver. In
// ContinuousDeployment mode the commit count is promoted to the
// pre-release number, unless the current commit is itself tagged.
func (p *VariableProvider) GetVariablesFor(ver semver.SemanticVersion, ec config.EffectiveConfiguration, isCurrentCommitTagged bool) VersionVariables {
	if ec.VersioningMode == semver.VersioningModeContinuousDeployment && !isCurrentCommitTagged {
		ver = PromoteCommitsToPreRelease(ver, ec.ContinuousDeploymentFallbackTag)
	}

	vals := formatValues(ver, paddings{
		legacySemVer:              ec.LegacySemVerPadding,
		buildMetaData:             ec.BuildMetaDataPadding,
		commitsSinceVersionSource: ec.CommitsSinceVersionSourcePadding,
	}, ec.CommitDateFormat)

	vals[WeightedPreReleaseNumber] = strconv.Itoa(ec.TagPreReleaseWeight)
	if ver.PreReleaseTag.HasTag() && ver.PreReleaseTag.Number != nil {
		vals[WeightedPreReleaseNumber] = strconv.FormatInt(*ver.PreReleaseTag.Number+int64(ec.PreReleaseWeight), 10)
	}

	vals[AssemblySemVer] = assemblyVersion(ver, ec.AssemblyVersioningScheme)
	vals[AssemblySemFileVer] = assemblyVersion(ver, semver.AssemblyVersioningScheme(ec.AssemblyFileVersioningScheme))
	vals[AssemblyInformationalVersion] = vals[InformationalVersion]

	// Format strings are applied last so they can reference everything above.
	if ec.AssemblyVersioningFormat != "" {
		vals[AssemblySemVer] = vals.Format(ec.AssemblyVersioningFormat)
	}
	if ec.AssemblyFileVersioningFormat != "" {
		vals[AssemblySemFileVer] = vals.Format(ec.AssemblyFileVersioningFormat)
	}
	if ec.AssemblyInformationalFormat != "" {
		vals[AssemblyInformationalVersion] = vals.Format(ec.AssemblyInformationalFormat)
	}

	return vals
}

func assemblyVersion(ver semver.SemanticVersion, scheme semver.AssemblyVersioningScheme) string {
	major := strconv.FormatInt(ver.Major, 10)
	minor := strconv.FormatInt(ver.Minor, 10)
	patch := strconv.FormatInt(ver.Patch, 10)

	switch scheme {
	case semver.AssemblyVersioningSchemeMajorMinorPatchTag:
		tag := int64(0)
		if ver.PreReleaseTag.Number != nil {
			tag = *ver.PreReleaseTag.Number
		}
		return major + "." + minor + "." + patch + "." + strconv.FormatInt(tag, 10)
	case semver.AssemblyVersioningSchemeMajorMinorPatch:
		return major + "." + minor + "." + patch + ".0"
	case semver.AssemblyVersioningSchemeMajorMinor:
		return major + "." + minor + ".0.0"
	case semver.AssemblyVersioningSchemeMajor:
		return major + ".0.0.0"
	default:
		return ""
	}
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Format substitutes {Name} placeholders with variable values. Unknown
// names are left in place.
func (v VersionVariables) Format(template string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		if val, ok := v[m[1:len(m)-1]]; ok {
			return val
		}
		return m
	})
}
