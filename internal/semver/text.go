package semver

// The enums serialise as their names. yaml.v3, go-toml/v2 and encoding/json
// all honour encoding.TextMarshaler / TextUnmarshaler, so one pair of
// methods per type covers every config format.

func (s IncrementStrategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *IncrementStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseIncrementStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (m VersioningMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *VersioningMode) UnmarshalText(text []byte) error {
	parsed, err := ParseVersioningMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m CommitMessageIncrementMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *CommitMessageIncrementMode) UnmarshalText(text []byte) error {
	parsed, err := ParseCommitMessageIncrementMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (s AssemblyVersioningScheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AssemblyVersioningScheme) UnmarshalText(text []byte) error {
	parsed, err := ParseAssemblyVersioningScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s AssemblyFileVersioningScheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AssemblyFileVersioningScheme) UnmarshalText(text []byte) error {
	parsed, err := ParseAssemblyFileVersioningScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
