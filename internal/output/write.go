package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Format selects how Write renders a set of variables.
type Format string

const (
	// FormatDotEnv prints one Name=Value line per variable.
	FormatDotEnv Format = ""
	// FormatJSON prints a single indented JSON object.
	FormatJSON Format = "json"
)

// ParseFormat validates a user supplied output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatDotEnv, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Write renders every variable in the given format. Keys are sorted in
// both formats.
func Write(w io.Writer, variables VersionVariables, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(variables); err != nil {
			return fmt.Errorf("encoding variables as JSON: %w", err)
		}
		return nil
	case FormatDotEnv:
		for _, k := range slices.Sorted(maps.Keys(variables)) {
			if _, err := fmt.Fprintf(w, "%s=%s\n", k, variables[k]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", string(format))
	}
}

// WriteVariable prints the value of a single variable.
func WriteVariable(w io.Writer, variables VersionVariables, name string) error {
	val, ok := variables[name]
	if !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	_, err := fmt.Fprintln(w, val)
	return err
}
