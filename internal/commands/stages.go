package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/pkg/client"
	"github.com/buildpacks/stager/pkg/logging"
)

type StagesFlags struct {
	ProjectDir     string
	DescriptorPath string
	Repository     string
	OutputFormat   string
	CheckCache     bool
	Changed        bool
	ExitCode       bool
}

func Stages(logger logging.Logger, stagerClient StagerClient, writerFactory StagesWriterFactory) *cobra.Command {
	var flags StagesFlags

	cmd := &cobra.Command{
		Use:   "stages [image-name...]",
		Short: "Show the stages of the images of a project and their signatures",
		Example: "stager stages web\n" +
			"stager stages --output json\n" +
			"stager stages --changed --exit-code",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			writer, err := writerFactory.Writer(flags.OutputFormat)
			if err != nil {
				return err
			}

			plans, err := stagerClient.Plan(cmd.Context(), client.PlanOptions{
				ProjectOptions: client.ProjectOptions{
					ProjectDir:     flags.ProjectDir,
					DescriptorPath: flags.DescriptorPath,
					Images:         args,
				},
				CheckCache:      flags.CheckCache,
				Repository:      flags.Repository,
				CompareExported: flags.Changed || flags.ExitCode,
			})
			if err != nil {
				return err
			}

			if err := writer.Print(logger, plans); err != nil {
				return err
			}

			if flags.ExitCode {
				for _, plan := range plans {
					if len(plan.Stale) > 0 {
						return MakeSoftError()
					}
				}
			}
			return nil
		}),
	}

	projectFlags(cmd, &flags.ProjectDir, &flags.DescriptorPath)
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "human-readable", "Output format to display stages (Must be one of human-readable, json, yaml, toml)")
	cmd.Flags().StringVarP(&flags.Repository, "repository", "r", "", "Repository the images were tagged in by 'stager build'")
	cmd.Flags().BoolVar(&flags.CheckCache, "check-cache", false, "Show whether the image of each stage already exists")
	cmd.Flags().BoolVar(&flags.Changed, "changed", false, "Show the stages that changed since the images were last built")
	cmd.Flags().BoolVar(&flags.ExitCode, "exit-code", false, "Exit with a non-zero status when any stage changed since the images were last built")
	AddHelpFlag(cmd, "stages")
	return cmd
}
