package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/client"
	pubcfg "github.com/buildpacks/stager/pkg/config"
	"github.com/buildpacks/stager/pkg/logging"
)

type BuildFlags struct {
	ProjectDir     string
	DescriptorPath string
	Repository     string
	PullPolicy     string
	NoCache        bool
}

func Build(logger logging.Logger, cfg config.Config, stagerClient StagerClient) *cobra.Command {
	var flags BuildFlags

	cmd := &cobra.Command{
		Use:   "build [image-name...]",
		Short: "Build the images of a project stage by stage",
		Long: "Build the images declared in the project descriptor. Stages whose image already exists " +
			"in the stages repository are reused unless --no-cache is given.",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			pullPolicy, err := resolvePullPolicy(flags.PullPolicy, cfg)
			if err != nil {
				return err
			}

			results, err := stagerClient.Build(cmd.Context(), client.BuildOptions{
				ProjectOptions: client.ProjectOptions{
					ProjectDir:     flags.ProjectDir,
					DescriptorPath: flags.DescriptorPath,
					Images:         args,
				},
				PullPolicy: pullPolicy,
				NoCache:    flags.NoCache,
				Repository: flags.Repository,
			})
			if err != nil {
				return err
			}

			for _, result := range results {
				built, cached := 0, 0
				for _, s := range result.Stages {
					switch {
					case s.Cached:
						cached++
					case !s.Empty:
						built++
					}
				}
				logger.Infof("%s: %d stages built, %d cached in %s",
					style.Symbol(result.Tag), built, cached, result.Duration.Round(time.Millisecond))
			}
			return nil
		}),
	}

	projectFlags(cmd, &flags.ProjectDir, &flags.DescriptorPath)
	cmd.Flags().StringVarP(&flags.Repository, "repository", "r", "", "Repository the built images are tagged in")
	cmd.Flags().StringVar(&flags.PullPolicy, "pull-policy", "", "Pull policy to use for base images. Accepted values are always, never, and if-not-present. The default is the configured pull policy.")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Rebuild every stage")
	AddHelpFlag(cmd, "build")
	return cmd
}

func projectFlags(cmd *cobra.Command, projectDir, descriptorPath *string) {
	cmd.Flags().StringVarP(projectDir, "path", "p", "", "Path to the project directory (defaults to current working directory)")
	cmd.Flags().StringVarP(descriptorPath, "descriptor", "d", "", "Path to the project descriptor file (defaults to stager.toml or stager.yaml in the project directory)")
}

func resolvePullPolicy(flag string, cfg config.Config) (pubcfg.PullPolicy, error) {
	if flag == "" {
		return cfg.GetPullPolicy()
	}
	return pubcfg.ParsePullPolicy(flag)
}
