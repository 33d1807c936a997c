package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/pkg/logging"
)

func NewConfigCommand(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Interact with your local stager config file",
		RunE:  nil,
	}

	cmd.AddCommand(ConfigStagesRepo(logger, cfg, cfgPath))
	cmd.AddCommand(ConfigPullPolicy(logger, cfg, cfgPath))
	cmd.AddCommand(ConfigParallelism(logger, cfg, cfgPath))
	cmd.AddCommand(ConfigRegistryMirrors(logger, cfg, cfgPath))

	AddHelpFlag(cmd, "config")
	return cmd
}
