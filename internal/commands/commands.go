package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/pkg/client"
	"github.com/buildpacks/stager/pkg/logging"
)

//go:generate mockgen -package testmocks -destination testmocks/mock_stager_client.go github.com/buildpacks/stager/internal/commands StagerClient
type StagerClient interface {
	Build(context.Context, client.BuildOptions) ([]client.BuildResult, error)
	Plan(context.Context, client.PlanOptions) ([]client.ApplicationPlan, error)
}

// StagesWriter prints stage plans in one output format.
type StagesWriter interface {
	Print(logger logging.Logger, plans []client.ApplicationPlan) error
}

type StagesWriterFactory interface {
	Writer(kind string) (StagesWriter, error)
}

func AddHelpFlag(cmd *cobra.Command, commandName string) {
	cmd.Flags().BoolP("help", "h", false, fmt.Sprintf("Help for '%s'", commandName))
}

func CreateCancellableContext() context.Context {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-signals
		cancel()
	}()

	return ctx
}

func logError(logger logging.Logger, f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		err := f(cmd, args)
		if err != nil {
			if !IsSoftError(err) {
				logger.Error(err.Error())
			}
			return err
		}
		return nil
	}
}
