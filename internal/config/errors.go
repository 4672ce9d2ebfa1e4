package config

import "fmt"

// DocumentationURL is referenced by configuration errors.
const DocumentationURL = "https://gitversion.net/docs/configuration/"

// ConfigurationError reports a user branch entry that is missing a
// required field, or that names an unknown branch in Field. It is not
// retryable: the configuration must be fixed.
type ConfigurationError struct {
	BranchKey string
	Field     string
	// UnknownKey is the branch key Field refers to that does not exist.
	UnknownKey string
}

func (e *ConfigurationError) Error() string {
	if e.UnknownKey != "" {
		return fmt.Sprintf("branch configuration '%s' refers to unknown branch '%s' in '%s'\nSee %s for more info",
			e.BranchKey, e.UnknownKey, e.Field, DocumentationURL)
	}
	return fmt.Sprintf("branch configuration '%s' is missing required configuration '%s'\nSee %s for more info",
		e.BranchKey, e.Field, DocumentationURL)
}
