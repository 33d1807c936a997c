package commands

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/logging"
)

func ConfigParallelism(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parallelism [<count>]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Show or set how many images are built at the same time",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				logger.Infof("The current parallelism is %s", style.Symbol(strconv.Itoa(cfg.GetParallelism())))
				return nil
			}

			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return errors.Errorf("parallelism must be a non-negative number, got %s", style.Symbol(args[0]))
			}

			cfg.Parallelism = n
			if err := config.Write(cfg, cfgPath); err != nil {
				return errors.Wrapf(err, "writing config to %s", cfgPath)
			}
			logger.Infof("Parallelism set to %s", style.Symbol(strconv.Itoa(cfg.GetParallelism())))
			return nil
		}),
	}

	AddHelpFlag(cmd, "parallelism")
	return cmd
}
