package config

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
	"github.com/stretchr/testify/require"
)

func TestBranchConfig_MergeTo(t *testing.T) {
	target := &BranchConfig{
		Name:           "develop",
		Regex:          stringPtr("^dev$"),
		SourceBranches: []string{"master"},
		Tag:            stringPtr("alpha"),
	}
	src := &BranchConfig{
		Tag:            stringPtr("beta"),
		Increment:      incrementPtr(semver.IncrementStrategyMajor),
		SourceBranches: []string{},
	}

	src.MergeTo(target)

	require.Equal(t, "develop", target.Name)
	require.Equal(t, "^dev$", *target.Regex)
	require.Equal(t, []string{"master"}, target.SourceBranches)
	require.Equal(t, "beta", *target.Tag)
	require.Equal(t, semver.IncrementStrategyMajor, *target.Increment)

	*src.Tag = "gamma"
	require.Equal(t, "beta", *target.Tag)
}

func TestBranchConfig_MergeTo_Nil(t *testing.T) {
	var src *BranchConfig
	target := &BranchConfig{Tag: stringPtr("x")}
	src.MergeTo(target)
	require.Equal(t, "x", *target.Tag)

	(&BranchConfig{Tag: stringPtr("y")}).MergeTo(nil)
}

func TestBranchConfig_Clone(t *testing.T) {
	orig := &BranchConfig{
		Name:              "docs",
		Regex:             stringPtr("^docs/"),
		SourceBranches:    []string{"master"},
		IsSourceBranchFor: []string{"feature"},
		IsMainline:        boolPtr(true),
		PreReleaseWeight:  intPtr(5),
	}

	c := orig.Clone()
	require.Equal(t, orig, c)

	c.SourceBranches[0] = "develop"
	*c.IsMainline = false
	require.Equal(t, "master", orig.SourceBranches[0])
	require.True(t, *orig.IsMainline)

	var nilBranch *BranchConfig
	require.Nil(t, nilBranch.Clone())
}
