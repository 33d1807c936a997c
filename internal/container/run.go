package container

import (
	"context"
	"fmt"
	"io"

	dcontainer "github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/pkg/errors"
)

// Client is the part of the Docker API needed to run a created container.
type Client interface {
	ContainerWait(ctx context.Context, container string, condition dcontainer.WaitCondition) (<-chan dcontainer.WaitResponse, <-chan error)
	ContainerStart(ctx context.Context, container string, options dcontainer.StartOptions) error
	ContainerLogs(ctx context.Context, container string, options dcontainer.LogsOptions) (io.ReadCloser, error)
}

// ExitError reports a container that exited with a non-zero status.
type ExitError struct {
	StatusCode int64
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("failed with status code: %d", e.StatusCode)
}

// Run starts the container, streams its output to out and errOut and waits for it to exit.
func Run(ctx context.Context, docker Client, containerID string, out, errOut io.Writer) error {
	bodyChan, errChan := docker.ContainerWait(ctx, containerID, dcontainer.WaitConditionNextExit)

	if err := docker.ContainerStart(ctx, containerID, dcontainer.StartOptions{}); err != nil {
		return errors.Wrap(err, "container start")
	}
	logs, err := docker.ContainerLogs(ctx, containerID, dcontainer.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		return errors.Wrap(err, "container logs stdout")
	}
	defer logs.Close()

	copyErr := make(chan error, 1)
	go func() {
		_, err := stdcopy.StdCopy(out, errOut, logs)
		copyErr <- err
	}()

	select {
	case body := <-bodyChan:
		if body.StatusCode != 0 {
			return &ExitError{StatusCode: body.StatusCode}
		}
		if body.Error != nil {
			return errors.New(body.Error.Message)
		}
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-copyErr
}
