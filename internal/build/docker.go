package build

import (
	"context"
	"io"

	"github.com/docker/docker/api/types"
	dcontainer "github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

//go:generate mockgen -package testmocks -destination ../../testmocks/mock_docker_client.go github.com/buildpacks/stager/internal/build DockerClient

// DockerClient is the part of the Docker API used to build stage images.
type DockerClient interface {
	ContainerCreate(ctx context.Context, config *dcontainer.Config, hostConfig *dcontainer.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (dcontainer.CreateResponse, error)
	ContainerStart(ctx context.Context, container string, options dcontainer.StartOptions) error
	ContainerWait(ctx context.Context, container string, condition dcontainer.WaitCondition) (<-chan dcontainer.WaitResponse, <-chan error)
	ContainerLogs(ctx context.Context, container string, options dcontainer.LogsOptions) (io.ReadCloser, error)
	ContainerCommit(ctx context.Context, container string, options dcontainer.CommitOptions) (types.IDResponse, error)
	ContainerRemove(ctx context.Context, container string, options dcontainer.RemoveOptions) error
	ImageInspectWithRaw(ctx context.Context, image string) (types.ImageInspect, []byte, error)
	ImagePull(ctx context.Context, ref string, options image.PullOptions) (io.ReadCloser, error)
	ImageTag(ctx context.Context, image, ref string) error
}
