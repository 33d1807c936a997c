package commands

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/logging"
)

func ConfigRegistryMirrors(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry-mirrors",
		Args:  cobra.NoArgs,
		Short: "List, add and remove registry mirrors used to pull base images",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			listRegistryMirrors(logger, cfg)
			return nil
		}),
	}

	var mirror string
	addCmd := &cobra.Command{
		Use:     "add <registry>",
		Args:    cobra.ExactArgs(1),
		Short:   "Set the mirror for a registry",
		Long:    "Set the mirror for a registry. Use '*' to mirror every registry.",
		Example: "stager config registry-mirrors add index.docker.io --mirror 10.0.0.1",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			if mirror == "" {
				return errors.New("a mirror must be provided with --mirror")
			}

			registry := args[0]
			if cfg.RegistryMirrors == nil {
				cfg.RegistryMirrors = map[string]string{}
			}
			cfg.RegistryMirrors[registry] = mirror
			if err := config.Write(cfg, cfgPath); err != nil {
				return errors.Wrapf(err, "writing config to %s", cfgPath)
			}
			logger.Infof("Registry %s configured with mirror %s", style.Symbol(registry), style.Symbol(mirror))
			return nil
		}),
	}
	addCmd.Flags().StringVarP(&mirror, "mirror", "m", "", "Registry mirror")
	AddHelpFlag(addCmd, "add")
	cmd.AddCommand(addCmd)

	removeCmd := &cobra.Command{
		Use:   "remove <registry>",
		Args:  cobra.ExactArgs(1),
		Short: "Remove the mirror for a registry",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			registry := args[0]
			if _, ok := cfg.RegistryMirrors[registry]; !ok {
				logger.Infof("No mirror has been set for %s", style.Symbol(registry))
				return nil
			}

			delete(cfg.RegistryMirrors, registry)
			if err := config.Write(cfg, cfgPath); err != nil {
				return errors.Wrapf(err, "writing config to %s", cfgPath)
			}
			logger.Infof("Removed mirror for %s", style.Symbol(registry))
			return nil
		}),
	}
	AddHelpFlag(removeCmd, "remove")
	cmd.AddCommand(removeCmd)

	AddHelpFlag(cmd, "registry-mirrors")
	return cmd
}

func listRegistryMirrors(logger logging.Logger, cfg config.Config) {
	if len(cfg.RegistryMirrors) == 0 {
		logger.Info("No registry mirrors have been set")
		return
	}

	registries := make([]string, 0, len(cfg.RegistryMirrors))
	for registry := range cfg.RegistryMirrors {
		registries = append(registries, registry)
	}
	sort.Strings(registries)

	logger.Info("Registry Mirrors:")
	for _, registry := range registries {
		logger.Infof("  %s: %s", style.Symbol(registry), cfg.RegistryMirrors[registry])
	}
}
