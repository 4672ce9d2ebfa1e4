package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsStampedVersion(t *testing.T) {
	Version = "1.0.0-test"
	t.Cleanup(func() { Version = "dev" })

	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "gitversion 1.0.0-test\n", out)
}

func TestVersionCmd_RejectsArguments(t *testing.T) {
	_, err := run(t, "version", "extra")
	require.Error(t, err)
}
