// Package semver provides immutable semantic versioning types and the
// enumerations shared by configuration and version calculation.
package semver

import (
	"fmt"
	"strings"
)

// VersionField represents which field of a semantic version to increment.
type VersionField int

const (
	VersionFieldNone VersionField = iota
	VersionFieldPatch
	VersionFieldMinor
	VersionFieldMajor
)

func (f VersionField) String() string {
	switch f {
	case VersionFieldNone:
		return "None"
	case VersionFieldPatch:
		return "Patch"
	case VersionFieldMinor:
		return "Minor"
	case VersionFieldMajor:
		return "Major"
	default:
		return "Unknown"
	}
}

// IncrementStrategy is the configured increment for a branch.
type IncrementStrategy int

const (
	IncrementStrategyNone IncrementStrategy = iota
	IncrementStrategyMajor
	IncrementStrategyMinor
	IncrementStrategyPatch
	IncrementStrategyInherit
)

var incrementStrategyNames = map[IncrementStrategy]string{
	IncrementStrategyNone:    "None",
	IncrementStrategyMajor:   "Major",
	IncrementStrategyMinor:   "Minor",
	IncrementStrategyPatch:   "Patch",
	IncrementStrategyInherit: "Inherit",
}

func (s IncrementStrategy) String() string {
	return nameOf(incrementStrategyNames, s)
}

// ToVersionField converts an IncrementStrategy to a VersionField.
// Inherit and None both map to VersionFieldNone.
func (s IncrementStrategy) ToVersionField() VersionField {
	switch s {
	case IncrementStrategyMajor:
		return VersionFieldMajor
	case IncrementStrategyMinor:
		return VersionFieldMinor
	case IncrementStrategyPatch:
		return VersionFieldPatch
	default:
		return VersionFieldNone
	}
}

// ParseIncrementStrategy parses an increment strategy name, case-insensitively.
func ParseIncrementStrategy(s string) (IncrementStrategy, error) {
	v, ok := parseName(incrementStrategyNames, s)
	if !ok {
		return 0, fmt.Errorf("unknown increment strategy %q", s)
	}
	return v, nil
}

// VersioningMode is the versioning mode of a branch or of the whole config.
type VersioningMode int

const (
	VersioningModeContinuousDelivery VersioningMode = iota
	VersioningModeContinuousDeployment
	VersioningModeMainline
)

var versioningModeNames = map[VersioningMode]string{
	VersioningModeContinuousDelivery:   "ContinuousDelivery",
	VersioningModeContinuousDeployment: "ContinuousDeployment",
	VersioningModeMainline:             "Mainline",
}

func (m VersioningMode) String() string {
	return nameOf(versioningModeNames, m)
}

// ParseVersioningMode parses a versioning mode name, case-insensitively.
func ParseVersioningMode(s string) (VersioningMode, error) {
	v, ok := parseName(versioningModeNames, s)
	if !ok {
		return 0, fmt.Errorf("unknown versioning mode %q", s)
	}
	return v, nil
}

// CommitMessageIncrementMode controls how commit messages affect version incrementing.
type CommitMessageIncrementMode int

const (
	CommitMessageIncrementEnabled CommitMessageIncrementMode = iota
	CommitMessageIncrementDisabled
	CommitMessageIncrementMergeMessageOnly
)

var commitMessageIncrementNames = map[CommitMessageIncrementMode]string{
	CommitMessageIncrementEnabled:          "Enabled",
	CommitMessageIncrementDisabled:         "Disabled",
	CommitMessageIncrementMergeMessageOnly: "MergeMessageOnly",
}

func (m CommitMessageIncrementMode) String() string {
	return nameOf(commitMessageIncrementNames, m)
}

// ParseCommitMessageIncrementMode parses a commit message increment mode name.
func ParseCommitMessageIncrementMode(s string) (CommitMessageIncrementMode, error) {
	v, ok := parseName(commitMessageIncrementNames, s)
	if !ok {
		return 0, fmt.Errorf("unknown commit message increment mode %q", s)
	}
	return v, nil
}

// AssemblyVersioningScheme selects which version parts make up the
// AssemblySemVer output variable.
type AssemblyVersioningScheme int

const (
	AssemblyVersioningSchemeMajorMinorPatchTag AssemblyVersioningScheme = iota
	AssemblyVersioningSchemeMajorMinorPatch
	AssemblyVersioningSchemeMajorMinor
	AssemblyVersioningSchemeMajor
	AssemblyVersioningSchemeNone
)

var assemblySchemeNames = map[AssemblyVersioningScheme]string{
	AssemblyVersioningSchemeMajorMinorPatchTag: "MajorMinorPatchTag",
	AssemblyVersioningSchemeMajorMinorPatch:    "MajorMinorPatch",
	AssemblyVersioningSchemeMajorMinor:         "MajorMinor",
	AssemblyVersioningSchemeMajor:              "Major",
	AssemblyVersioningSchemeNone:               "None",
}

func (s AssemblyVersioningScheme) String() string {
	return nameOf(assemblySchemeNames, s)
}

// ParseAssemblyVersioningScheme parses an assembly versioning scheme name.
func ParseAssemblyVersioningScheme(s string) (AssemblyVersioningScheme, error) {
	v, ok := parseName(assemblySchemeNames, s)
	if !ok {
		return 0, fmt.Errorf("unknown assembly versioning scheme %q", s)
	}
	return v, nil
}

// AssemblyFileVersioningScheme selects which version parts make up the
// AssemblySemFileVer output variable. It accepts the same names as
// AssemblyVersioningScheme.
type AssemblyFileVersioningScheme int

const (
	AssemblyFileVersioningSchemeMajorMinorPatchTag AssemblyFileVersioningScheme = iota
	AssemblyFileVersioningSchemeMajorMinorPatch
	AssemblyFileVersioningSchemeMajorMinor
	AssemblyFileVersioningSchemeMajor
	AssemblyFileVersioningSchemeNone
)

func (s AssemblyFileVersioningScheme) String() string {
	return AssemblyVersioningScheme(s).String()
}

// ParseAssemblyFileVersioningScheme parses an assembly file versioning scheme name.
func ParseAssemblyFileVersioningScheme(s string) (AssemblyFileVersioningScheme, error) {
	v, ok := parseName(assemblySchemeNames, s)
	if !ok {
		return 0, fmt.Errorf("unknown assembly file versioning scheme %q", s)
	}
	return AssemblyFileVersioningScheme(v), nil
}

func nameOf[T comparable](names map[T]string, v T) string {
	if n, ok := names[v]; ok {
		return n
	}
	return "Unknown"
}

func parseName[T comparable](names map[T]string, s string) (T, bool) {
	for v, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
