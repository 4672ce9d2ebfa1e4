package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UnknownBranchKey is returned by GetBranchConfiguration when no entry
// matches the branch name.
const UnknownBranchKey = "unknown"

// GetBranchConfiguration returns the key and entry whose regex matches
// branchName. Custom entries are tried first in key order, then the
// built-ins in resolution order. cfg must already be resolved.
func (cfg *Config) GetBranchConfiguration(branchName string) (string, *BranchConfig, error) {
	var custom []string
	for _, key := range sortedKeys(cfg.Branches) {
		if !IsBuiltinBranchKey(key) {
			custom = append(custom, key)
		}
	}

	for _, key := range append(custom, BuiltinBranchKeys()...) {
		bc := cfg.branchOrNil(key)
		if bc == nil || bc.Regex == nil {
			continue
		}
		re, err := regexp.Compile(*bc.Regex)
		if err != nil {
			return "", nil, fmt.Errorf("invalid regex for branch %q: %w", key, err)
		}
		if re.MatchString(branchName) {
			return key, bc, nil
		}
	}

	return UnknownBranchKey, cfg.unknownBranch(), nil
}

// unknownBranch is the entry used for branches no regex matches.
func (cfg *Config) unknownBranch() *BranchConfig {
	bc := &BranchConfig{
		Name:           UnknownBranchKey,
		Regex:          stringPtr(".*"),
		SourceBranches: BuiltinBranchKeys(),
	}
	applyBranchDefaults(cfg, bc, customDefaults(*bc.Regex, bc.SourceBranches))
	return bc
}

var branchPrefixes = []string{
	"feature/", "features/",
	"hotfix/", "hotfixes/",
	"release/", "releases/",
	"support/",
	"pull/", "pull-requests/", "pr/",
}

var branchNameCleaner = regexp.MustCompile(`[^0-9A-Za-z-]`)

// GetBranchSpecificTag resolves the pre-release label for branchName.
// "useBranchName" becomes the cleaned branch name and "{BranchName}" is
// substituted in place.
func GetBranchSpecificTag(ec EffectiveConfiguration, branchName string) string {
	tag := ec.Tag
	if tag != DefaultBranchTag && !strings.Contains(tag, "{BranchName}") {
		return tag
	}
	cleaned := branchNameCleaner.ReplaceAllString(stripBranchPrefix(branchName), "-")
	if tag == DefaultBranchTag {
		return cleaned
	}
	return strings.ReplaceAll(tag, "{BranchName}", cleaned)
}

func stripBranchPrefix(name string) string {
	for _, prefix := range branchPrefixes {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}
	return name
}

// ExtractTagNumber applies pattern to branchName and returns the value of
// its "number" capture group.
func ExtractTagNumber(pattern, branchName string) (int64, bool) {
	if pattern == "" {
		return 0, false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, false
	}
	m := re.FindStringSubmatch(branchName)
	idx := re.SubexpIndex("number")
	if m == nil || idx < 0 || m[idx] == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m[idx], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
