package output

import (
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleVersion() semver.SemanticVersion {
	return semver.SemanticVersion{
		Major: 1, Minor: 2, Patch: 3,
		PreReleaseTag: semver.PreReleaseTag{Name: "beta", Number: int64Ptr(4)},
		BuildMetaData: semver.BuildMetaData{
			CommitsSinceTag:           int64Ptr(5),
			Branch:                    "feature/login",
			Sha:                       "abcdef1234567890",
			ShortSha:                  "abcdef1",
			VersionSourceSha:          "0123456789",
			CommitDate:                time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC),
			CommitsSinceVersionSource: 5,
			UncommittedChanges:        2,
		},
	}
}

func sampleEffective() config.EffectiveConfiguration {
	return config.EffectiveConfiguration{
		AssemblyVersioningScheme:         semver.AssemblyVersioningSchemeMajorMinorPatch,
		AssemblyFileVersioningScheme:     semver.AssemblyFileVersioningSchemeMajorMinorPatch,
		VersioningMode:                   semver.VersioningModeContinuousDelivery,
		ContinuousDeploymentFallbackTag:  "ci",
		LegacySemVerPadding:              4,
		BuildMetaDataPadding:             4,
		CommitsSinceVersionSourcePadding: 4,
		CommitDateFormat:                 "yyyy-MM-dd",
		TagPreReleaseWeight:              60000,
		PreReleaseWeight:                 30000,
	}
}

func TestGetVariablesFor_VersionValues(t *testing.T) {
	vars := NewVariableProvider().GetVariablesFor(sampleVersion(), sampleEffective(), false)

	expected := map[string]string{
		Major:                           "1",
		Minor:                           "2",
		Patch:                           "3",
		MajorMinorPatch:                 "1.2.3",
		SemVer:                          "1.2.3-beta.4",
		FullSemVer:                      "1.2.3-beta.4+5",
		LegacySemVer:                    "1.2.3-beta4",
		LegacySemVerPadded:              "1.2.3-beta0004",
		InformationalVersion:            "1.2.3-beta.4+5.Branch.feature-login.Sha.abcdef1234567890",
		PreReleaseTag:                   "beta.4",
		PreReleaseTagWithDash:           "-beta.4",
		PreReleaseLabel:                 "beta",
		PreReleaseLabelWithDash:         "-beta",
		PreReleaseNumber:                "4",
		WeightedPreReleaseNumber:        "30004",
		BuildMetaData:                   "5",
		BuildMetaDataPadded:             "0005",
		BranchName:                      "feature/login",
		EscapedBranchName:               "feature-login",
		Sha:                             "abcdef1234567890",
		ShortSha:                        "abcdef1",
		VersionSourceSha:                "0123456789",
		CommitsSinceVersionSource:       "5",
		CommitsSinceVersionSourcePadded: "0005",
		UncommittedChanges:              "2",
		CommitDate:                      "2025-03-09",
		AssemblySemVer:                  "1.2.3.0",
		AssemblySemFileVer:              "1.2.3.0",
		NuGetVersionV2:                  "1.2.3-beta0004",
		NuGetPreReleaseTagV2:            "beta0004",
	}
	for name, want := range expected {
		require.Equal(t, want, vars[name], name)
	}
	require.Equal(t, vars[InformationalVersion], vars[AssemblyInformationalVersion])
}

func TestGetVariablesFor_StableVersionUsesTagWeight(t *testing.T) {
	ver := semver.SemanticVersion{Major: 2}

	vars := NewVariableProvider().GetVariablesFor(ver, sampleEffective(), true)
	require.Equal(t, "60000", vars[WeightedPreReleaseNumber])
	require.Empty(t, vars[PreReleaseTag])
	require.Empty(t, vars[PreReleaseTagWithDash])
	require.Empty(t, vars[PreReleaseNumber])
	require.Empty(t, vars[CommitDate])
}

func TestGetVariablesFor_ContinuousDeploymentPromotes(t *testing.T) {
	ec := sampleEffective()
	ec.VersioningMode = semver.VersioningModeContinuousDeployment
	ver := semver.SemanticVersion{
		Major: 1, Minor: 3,
		BuildMetaData: semver.BuildMetaData{CommitsSinceTag: int64Ptr(7)},
	}

	vars := NewVariableProvider().GetVariablesFor(ver, ec, false)
	require.Equal(t, "1.3.0-ci.7", vars[SemVer])
	require.Equal(t, "1.3.0-ci.7", vars[FullSemVer])
}

func TestGetVariablesFor_TaggedCommitNotPromoted(t *testing.T) {
	ec := sampleEffective()
	ec.VersioningMode = semver.VersioningModeContinuousDeployment

	vars := NewVariableProvider().GetVariablesFor(semver.SemanticVersion{Major: 1, Minor: 3}, ec, true)
	require.Equal(t, "1.3.0", vars[SemVer])
}

func TestGetVariablesFor_AssemblySchemes(t *testing.T) {
	tests := []struct {
		scheme semver.AssemblyVersioningScheme
		want   string
	}{
		{semver.AssemblyVersioningSchemeMajorMinorPatchTag, "1.2.3.4"},
		{semver.AssemblyVersioningSchemeMajorMinorPatch, "1.2.3.0"},
		{semver.AssemblyVersioningSchemeMajorMinor, "1.2.0.0"},
		{semver.AssemblyVersioningSchemeMajor, "1.0.0.0"},
		{semver.AssemblyVersioningSchemeNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			ec := sampleEffective()
			ec.AssemblyVersioningScheme = tt.scheme
			ec.AssemblyFileVersioningScheme = semver.AssemblyFileVersioningScheme(tt.scheme)

			vars := NewVariableProvider().GetVariablesFor(sampleVersion(), ec, false)
			require.Equal(t, tt.want, vars[AssemblySemVer])
			require.Equal(t, tt.want, vars[AssemblySemFileVer])
		})
	}
}

func TestGetVariablesFor_FormatStrings(t *testing.T) {
	ec := sampleEffective()
	ec.AssemblyVersioningFormat = "{Major}.{Minor}.{Patch}.{CommitsSinceVersionSource}"
	ec.AssemblyFileVersioningFormat = "{MajorMinorPatch}.{Unknown}"
	ec.AssemblyInformationalFormat = "{SemVer}+{ShortSha}"

	vars := NewVariableProvider().GetVariablesFor(sampleVersion(), ec, false)
	require.Equal(t, "1.2.3.5", vars[AssemblySemVer])
	require.Equal(t, "1.2.3.{Unknown}", vars[AssemblySemFileVer])
	require.Equal(t, "1.2.3-beta.4+abcdef1", vars[AssemblyInformationalVersion])
}

func TestTranslateDateFormat(t *testing.T) {
	require.Equal(t, "2006-01-02", translateDateFormat(""))
	require.Equal(t, "2006-01-02", translateDateFormat("yyyy-MM-dd"))
	require.Equal(t, "02/01/06 15:04", translateDateFormat("dd/MM/yy HH:mm"))
	require.Equal(t, "2006.01", translateDateFormat("2006.01"))
}
