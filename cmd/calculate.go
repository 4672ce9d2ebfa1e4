package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/computer"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/output"
)

func calculateRunE(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), settings.GetString(flagVerbosity))
	if err != nil {
		return err
	}

	override, err := config.ParseOverrides(settings.GetStringSlice(flagOverrideConfig))
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(settings.GetString(flagOutput))
	if err != nil {
		return err
	}

	if settings.GetBool(flagShowConfig) {
		return showConfig(cmd.OutOrStdout(), settings.GetString(flagPath), settings.GetString(flagConfig), override)
	}

	c := computer.New(computer.WithLogger(logger))
	vars, err := c.ComputeVersion(arguments(override))
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), vars, format, settings.GetString(flagShowVariable))
}

// arguments collects the computation arguments from flags and environment.
func arguments(override *config.Config) computer.Arguments {
	return computer.Arguments{
		TargetPath:                settings.GetString(flagPath),
		TargetURL:                 settings.GetString(flagURL),
		DynamicRepositoryLocation: settings.GetString(flagDynamicRepo),
		Username:                  settings.GetString(flagUsername),
		Password:                  settings.GetString(flagPassword),
		TargetBranch:              settings.GetString(flagBranch),
		CommitID:                  settings.GetString(flagCommit),
		ConfigFile:                settings.GetString(flagConfig),
		OverrideConfig:            override,
		NoFetch:                   settings.GetBool(flagNoFetch),
		NoCache:                   settings.GetBool(flagNoCache),
		NoNormalize:               settings.GetBool(flagNoNormalize),
	}
}

// showConfig prints the resolved configuration for the repository at path
// as YAML.
func showConfig(w io.Writer, path, configFile string, override *config.Config) error {
	repo, err := git.Open(path)
	if err != nil {
		return err
	}
	workDir := repo.WorkingDirectory()
	if err := repo.Close(); err != nil {
		return fmt.Errorf("closing repository: %w", err)
	}

	cfg, err := config.Provide(workDir, override, &config.FileLocator{FilePath: configFile})
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// writeOutput writes the version variables in the requested format.
func writeOutput(w io.Writer, vars output.VersionVariables, format output.Format, variable string) error {
	if variable != "" {
		return output.WriteVariable(w, vars, variable)
	}
	return output.Write(w, vars, format)
}
