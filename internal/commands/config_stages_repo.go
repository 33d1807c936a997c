package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/logging"
)

func ConfigStagesRepo(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "stages-repo [<repository>]",
		Args:  cobra.MaximumNArgs(1),
		Short: "List, set and unset the repository stage images are stored in",
		Long: "Every built stage is tagged in the stages repository with its signature. " +
			"Stages are only rebuilt when no image with their signature exists in that repository.",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			switch {
			case unset:
				if len(args) > 0 {
					return errors.Errorf("stages repository and --unset cannot be specified simultaneously")
				}
				if cfg.StagesRepo == "" {
					logger.Infof("No stages repository was set, using %s", style.Symbol(cfg.GetStagesRepo()))
					return nil
				}
				oldRepo := cfg.StagesRepo
				cfg.StagesRepo = ""
				if err := config.Write(cfg, cfgPath); err != nil {
					return errors.Wrapf(err, "writing config to %s", cfgPath)
				}
				logger.Infof("Successfully unset stages repository %s", style.Symbol(oldRepo))
			case len(args) == 0:
				logger.Infof("The current stages repository is %s", style.Symbol(cfg.GetStagesRepo()))
			default:
				cfg.StagesRepo = args[0]
				if err := config.Write(cfg, cfgPath); err != nil {
					return errors.Wrapf(err, "writing config to %s", cfgPath)
				}
				logger.Infof("Stages repository set to %s", style.Symbol(cfg.StagesRepo))
			}
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&unset, "unset", "u", false, "Unset the stages repository, and set it back to the default, "+config.DefaultStagesRepo)
	AddHelpFlag(cmd, "stages-repo")
	return cmd
}
