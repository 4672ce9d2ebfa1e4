package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag names. Each is also read from GITVERSION_<NAME>, with dashes
// replaced by underscores.
const (
	flagPath           = "path"
	flagURL            = "url"
	flagDynamicRepo    = "dynamic-repo-location"
	flagUsername       = "username"
	flagPassword       = "password"
	flagBranch         = "branch"
	flagCommit         = "commit"
	flagConfig         = "config"
	flagOverrideConfig = "override-config"
	flagNoFetch        = "no-fetch"
	flagNoCache        = "no-cache"
	flagNoNormalize    = "no-normalize"
	flagOutput         = "output"
	flagShowVariable   = "show-variable"
	flagShowConfig     = "show-config"
	flagVerbosity      = "verbosity"
)

// envPrefix namespaces the environment variables bound to flags.
const envPrefix = "GITVERSION"

// settings merges flags and environment variables. Flags win.
var settings = viper.New()

// rootCmd is the top-level command for gitversion.
var rootCmd = &cobra.Command{
	Use:   "gitversion",
	Short: "Semantic versioning from git history",
	Long: "gitversion computes semantic version variables from git history, tags and branch " +
		"conventions, configured through GitVersion.yml.",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default action is calculate.
	RunE: calculateRunE,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP(flagPath, "p", ".", "path to a directory inside the git repository")
	flags.String(flagURL, "", "clone this repository URL before computing")
	flags.String(flagDynamicRepo, "", "where to clone --url (default: a temporary directory)")
	flags.String(flagUsername, "", "username for cloning and fetching")
	flags.String(flagPassword, "", "password or token for cloning and fetching")
	flags.StringP(flagBranch, "b", "", "target branch (default: current HEAD)")
	flags.StringP(flagCommit, "c", "", "target commit SHA (default: branch tip)")
	flags.String(flagConfig, "", "path to config file (default: auto-detect GitVersion.yml)")
	flags.StringSlice(flagOverrideConfig, nil, "override a config value, e.g. tag-prefix=release- (repeatable)")
	flags.Bool(flagNoFetch, false, "do not fetch from remotes")
	flags.Bool(flagNoCache, false, "bypass the version cache")
	flags.Bool(flagNoNormalize, false, "do not normalize the repository on build servers")
	flags.StringP(flagOutput, "o", "", "output format: json, or empty for key=value")
	flags.String(flagShowVariable, "", "output a single variable (e.g. SemVer, FullSemVer)")
	flags.Bool(flagShowConfig, false, "display the resolved configuration and exit")
	flags.StringP(flagVerbosity, "v", "info", "log verbosity: quiet, info, debug")

	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	if err := settings.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("binding flags: %v", err))
	}
}

// newLogger builds the stderr logger for the given verbosity.
func newLogger(w io.Writer, verbosity string) (*log.Logger, error) {
	var level log.Level
	switch strings.ToLower(verbosity) {
	case "quiet":
		level = log.ErrorLevel
	case "", "info":
		level = log.InfoLevel
	case "debug":
		level = log.DebugLevel
	default:
		return nil, fmt.Errorf("unknown verbosity %q: expected quiet, info or debug", verbosity)
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "gitversion",
	}), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
