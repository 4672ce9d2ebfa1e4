package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns its stdout.
// Flag state is reset first since rootCmd is a package-level singleton.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, name := range []string{
		flagPath, flagURL, flagDynamicRepo, flagUsername, flagPassword,
		flagBranch, flagCommit, flagConfig, flagOverrideConfig,
		flagNoFetch, flagNoCache, flagNoNormalize,
		flagOutput, flagShowVariable, flagShowConfig, flagVerbosity,
	} {
		require.NotNil(t, flags.Lookup(name), name)
	}
	require.Equal(t, "p", flags.Lookup(flagPath).Shorthand)
	require.Equal(t, "v", flags.Lookup(flagVerbosity).Shorthand)
}

func TestRootCmd_HasVersionSubcommand(t *testing.T) {
	found := false
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "version" {
			found = true
			break
		}
	}
	require.True(t, found, "version subcommand should be registered")
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		verbosity string
		want      log.Level
	}{
		{"quiet", log.ErrorLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.verbosity, func(t *testing.T) {
			logger, err := newLogger(io.Discard, tt.verbosity)
			require.NoError(t, err)
			require.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewLogger_UnknownVerbosity(t *testing.T) {
	_, err := newLogger(io.Discard, "loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown verbosity")
}

func TestRootCmd_UnknownVerbosity(t *testing.T) {
	_, err := run(t, "-v", "loud")
	require.Error(t, err)
}
