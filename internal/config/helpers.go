package config

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

func stringPtr(s string) *string { return &s }
func intPtr(n int) *int          { return &n }
func boolPtr(b bool) *bool       { return &b }

func incrementPtr(s semver.IncrementStrategy) *semver.IncrementStrategy {
	return &s
}

func versioningModePtr(m semver.VersioningMode) *semver.VersioningMode {
	return &m
}

// fillIfAbsent sets *field to a fresh copy of value only when it is unset.
func fillIfAbsent[T any](field **T, value T) {
	if *field == nil {
		*field = &value
	}
}

// fillSliceIfEmpty treats an empty list the same as a missing one.
func fillSliceIfEmpty(field *[]string, value []string) {
	if len(*field) == 0 {
		*field = append([]string(nil), value...)
	}
}

// overlay replaces *dst with a copy of src when src is set.
func overlay[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
