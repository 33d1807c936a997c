package cmd

import (
	"github.com/heroku/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/internal/commands"
	"github.com/buildpacks/stager/internal/commands/writer"
	"github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/pkg/client"
	"github.com/buildpacks/stager/pkg/logging"
)

// Version of stager, set at build time.
var Version = "0.0.0"

// ConfigurableLogger defines behavior required by the StagerCommand
type ConfigurableLogger interface {
	logging.Logger
	WantTime(f bool)
	WantQuiet(f bool)
	WantVerbose(f bool)
}

// NewStagerCommand generates a Stager command
func NewStagerCommand(logger ConfigurableLogger) (*cobra.Command, error) {
	cobra.EnableCommandSorting = false
	cfg, cfgPath, err := initConfig()
	if err != nil {
		return nil, err
	}

	stagerClient, err := initClient(logger, cfg)
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:   "stager",
		Short: "CLI for building images in cached stages",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fs := cmd.Flags(); fs != nil {
				if flag, err := fs.GetBool("no-color"); err == nil && flag {
					color.Disable(flag)
				}
				if flag, err := fs.GetBool("quiet"); err == nil {
					logger.WantQuiet(flag)
				}
				if flag, err := fs.GetBool("verbose"); err == nil {
					logger.WantVerbose(flag)
				}
				if flag, err := fs.GetBool("timestamps"); err == nil {
					logger.WantTime(flag)
				}
			}
		},
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("timestamps", false, "Enable timestamps in output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Show less output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more output")
	rootCmd.Flags().Bool("version", false, "Show current 'stager' version")

	commands.AddHelpFlag(rootCmd, "stager")

	rootCmd.AddCommand(commands.Build(logger, cfg, stagerClient))
	rootCmd.AddCommand(commands.Stages(logger, stagerClient, writer.NewFactory()))
	rootCmd.AddCommand(commands.NewConfigCommand(logger, cfg, cfgPath))
	rootCmd.AddCommand(commands.Version(logger, Version))

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{.Version}}{{"\n"}}`)
	rootCmd.SetOut(logging.GetWriterForLevel(logger, logging.InfoLevel))
	rootCmd.SetErr(logging.GetWriterForLevel(logger, logging.ErrorLevel))

	return rootCmd, nil
}

func initConfig() (config.Config, string, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.Config{}, "", errors.Wrap(err, "getting config path")
	}

	cfg, err := config.Read(path)
	if err != nil {
		return config.Config{}, "", errors.Wrap(err, "reading stager config")
	}
	return cfg, path, nil
}

func initClient(logger logging.Logger, cfg config.Config) (*client.Client, error) {
	return client.NewClient(
		client.WithLogger(logger),
		client.WithStagesRepo(cfg.GetStagesRepo()),
		client.WithParallelism(cfg.GetParallelism()),
		client.WithRegistryMirrors(cfg.RegistryMirrors),
	)
}
